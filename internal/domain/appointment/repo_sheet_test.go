package appointment

import (
	"context"
	"testing"

	"github.com/painel/painel/internal/platform/sheetstore"
)

func newTestRepo(t *testing.T) (Repository, *sheetstore.MemStore) {
	t.Helper()
	store := sheetstore.NewMemStore(
		[]string{"CPF", "Nome", "Telefone", "Especialidade", "Medico", "Data", "Status", "Obs"},
		[][]string{
			{"111", "Ana", "1199990001", "Cardiologia", "Dr. A", "2024-01-15", "", "anotação livre"},
			{"222", "Bruno", "1199990002", "Dermatologia", "Dra. B", "bad-date", "", ""},
			{"333", "Clara", "2198880003", "Cardiologia", "Dr. A", "2024-03-01", "Reagendou", ""},
		},
	)
	return NewSheetRepo(store), store
}

func TestSheetRepoLoad(t *testing.T) {
	repo, _ := newTestRepo(t)
	snap, err := repo.Load(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(snap.Raw) != 3 {
		t.Errorf("expected all 3 raw rows preserved, got %d", len(snap.Raw))
	}
	if len(snap.Records) != 2 {
		t.Fatalf("expected 2 normalized records, got %d", len(snap.Records))
	}
	if snap.Records[0].Ref != 2 || snap.Records[1].Ref != 4 {
		t.Errorf("unexpected refs: %d, %d", snap.Records[0].Ref, snap.Records[1].Ref)
	}
	if snap.Cols.Status != 6 {
		t.Errorf("expected status column 6, got %d", snap.Cols.Status)
	}
}

func TestSheetRepoUpdateStatus(t *testing.T) {
	repo, store := newTestRepo(t)
	ctx := context.Background()
	snap, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := repo.UpdateStatus(ctx, snap, snap.Records[0].Ref, StatusMessageSent); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, rows, _ := store.LoadAll(ctx)
	if rows[0][6] != "Mensagem enviada" {
		t.Errorf("expected status cell written, got %q", rows[0][6])
	}
	// Only the status cell changes.
	if rows[0][7] != "anotação livre" {
		t.Errorf("unrelated cell changed: %q", rows[0][7])
	}
}

func TestSheetRepoUpdateStatus_NoStatusColumn(t *testing.T) {
	store := sheetstore.NewMemStore(
		[]string{"CPF", "Data"},
		[][]string{{"111", "2024-01-15"}},
	)
	repo := NewSheetRepo(store)
	ctx := context.Background()
	snap, _ := repo.Load(ctx)

	if err := repo.UpdateStatus(ctx, snap, snap.Records[0].Ref, StatusRescheduled); err == nil {
		t.Error("expected error when sheet has no status column")
	}
}

func TestSheetRepoReplaceAll(t *testing.T) {
	repo, store := newTestRepo(t)
	ctx := context.Background()
	snap, _ := repo.Load(ctx)

	snap.Records[0].Status = StatusWillNotReschedule
	snap.Records[1].Status = StatusChangedDoctor
	if err := repo.ReplaceAll(ctx, snap); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, rows, _ := store.LoadAll(ctx)
	if len(rows) != 3 {
		t.Fatalf("expected the dropped row to survive a bulk save, got %d rows", len(rows))
	}
	if rows[0][6] != "Não quer reagendar" {
		t.Errorf("row 1 status = %q", rows[0][6])
	}
	if rows[1][6] != "" {
		t.Errorf("dropped row gained a status: %q", rows[1][6])
	}
	if rows[2][6] != "Mudou de médico" {
		t.Errorf("row 3 status = %q", rows[2][6])
	}
	if rows[0][7] != "anotação livre" {
		t.Errorf("unrecognized column lost on bulk save: %q", rows[0][7])
	}
}

func TestSheetRepoReplaceAll_AddsStatusColumn(t *testing.T) {
	store := sheetstore.NewMemStore(
		[]string{"CPF", "Data"},
		[][]string{{"111", "2024-01-15"}},
	)
	repo := NewSheetRepo(store)
	ctx := context.Background()
	snap, _ := repo.Load(ctx)

	snap.Records[0].Status = StatusRescheduled
	if err := repo.ReplaceAll(ctx, snap); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	header, rows, _ := store.LoadAll(ctx)
	if header[len(header)-1] != "Status" {
		t.Fatalf("expected appended Status column, got header %v", header)
	}
	if rows[0][2] != "Reagendou" {
		t.Errorf("expected status written to new column, got %q", rows[0][2])
	}
	if snap.Cols.Status != 2 {
		t.Errorf("snapshot status column not updated, got %d", snap.Cols.Status)
	}

	// A single-cell write against the same snapshot now has a column to
	// address.
	if err := repo.UpdateStatus(ctx, snap, snap.Records[0].Ref, StatusMessageSent); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, rows, _ = store.LoadAll(ctx)
	if rows[0][2] != "Mensagem enviada" {
		t.Errorf("follow-up status write failed, got %q", rows[0][2])
	}
}
