package outreach

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/painel/painel/internal/domain/appointment"
	"github.com/painel/painel/internal/domain/reconcile"
	"github.com/painel/painel/internal/platform/auditlog"
	"github.com/painel/painel/internal/platform/sheetstore"
)

func newTestService(t *testing.T, audit auditlog.Sink) (*Service, *sheetstore.MemStore) {
	t.Helper()
	store := sheetstore.NewMemStore(
		[]string{"CPF", "Nome", "Telefone", "Especialidade", "Medico", "Data", "Status"},
		[][]string{
			{"111", "Ana", "(11) 99999-0001", "Cardiologia", "Dr. A", "2023-01-15", ""},
			{"222", "Bruno", "(11) 99999-0002", "Cardiologia", "Dr. A", "2024-06-20", ""},
			{"333", "Clara", "", "Cardiologia", "Dr. A", "2022-11-01", ""},
		},
	)
	engine := reconcile.NewEngine(appointment.NewSheetRepo(store), nil, zerolog.Nop())
	if audit == nil {
		audit = auditlog.SinkFunc(func(auditlog.Entry) error { return nil })
	}
	svc := NewService(engine, audit, "55").WithClock(func() time.Time {
		return day(2024, 7, 1)
	})
	return svc, store
}

func TestServiceTargets(t *testing.T) {
	svc, _ := newTestService(t, nil)

	targets, err := svc.Targets(context.Background(), "Cardiologia", 12)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(targets) != 2 {
		t.Fatalf("expected 2 targets, got %d", len(targets))
	}
	if targets[0].CPF != "333" || targets[1].CPF != "111" {
		t.Errorf("unexpected order: %s, %s", targets[0].CPF, targets[1].CPF)
	}
	if !strings.HasPrefix(targets[1].Link, "https://wa.me/5511999990001?text=") {
		t.Errorf("unexpected link: %s", targets[1].Link)
	}
	// No phone: no link, but the patient still appears.
	if targets[0].Link != "" {
		t.Errorf("expected empty link without phone, got %s", targets[0].Link)
	}
}

func TestServiceMarkMessageSent(t *testing.T) {
	var logged []auditlog.Entry
	sink := auditlog.SinkFunc(func(e auditlog.Entry) error {
		logged = append(logged, e)
		return nil
	})
	svc, store := newTestService(t, sink)
	ctx := context.Background()

	err := svc.MarkMessageSent(ctx, "111", day(2023, 1, 15), "Cardiologia", "operador")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, rows, _ := store.LoadAll(ctx)
	if rows[0][6] != "Mensagem enviada" {
		t.Errorf("status cell = %q", rows[0][6])
	}

	if len(logged) != 1 {
		t.Fatalf("expected 1 audit entry, got %d", len(logged))
	}
	e := logged[0]
	if e.CPF != "111" || e.Name != "Ana" || e.Specialty != "Cardiologia" || e.Operator != "operador" {
		t.Errorf("unexpected audit entry: %+v", e)
	}
	if !e.Timestamp.Equal(day(2024, 7, 1)) {
		t.Errorf("audit timestamp = %v", e.Timestamp)
	}
}

func TestServiceMarkMessageSent_NoMatch(t *testing.T) {
	svc, _ := newTestService(t, nil)
	err := svc.MarkMessageSent(context.Background(), "999", day(2023, 1, 15), "Cardiologia", "operador")
	if err == nil {
		t.Fatal("expected error for unknown patient")
	}
}
