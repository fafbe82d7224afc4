package auditlog

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestFileSink_CreatesWithHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log", "outreach.csv")
	s := NewFileSink(path)

	err := s.Append(Entry{
		CPF:       "111",
		Name:      "Ana",
		Specialty: "Cardiologia",
		Status:    "Mensagem enviada",
		Operator:  "operador",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open log: %v", err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected header + 1 entry, got %d records", len(records))
	}
	if records[0][0] != "CPF" || len(records[0]) != 6 {
		t.Errorf("unexpected header %v", records[0])
	}
	if records[1][0] != "111" || records[1][4] != "operador" {
		t.Errorf("unexpected entry %v", records[1])
	}
}

func TestFileSink_AppendOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "outreach.csv")
	s := NewFileSink(path)

	for _, cpf := range []string{"111", "222", "333"} {
		if err := s.Append(Entry{CPF: cpf, Status: "Reagendou", Operator: "op", Timestamp: time.Now()}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	f, _ := os.Open(path)
	defer f.Close()
	records, _ := csv.NewReader(f).ReadAll()
	if len(records) != 4 {
		t.Fatalf("expected header + 3 entries, got %d", len(records))
	}
	// Header written exactly once.
	for _, r := range records[1:] {
		if r[0] == "CPF" {
			t.Error("header repeated in log body")
		}
	}
}

func TestLogSink(t *testing.T) {
	s := LogSink(zerolog.Nop())
	if err := s.Append(Entry{CPF: "111"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
