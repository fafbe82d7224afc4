package report

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/painel/painel/internal/domain/appointment"
)

func TestWriteCSV(t *testing.T) {
	records := []appointment.Record{
		{
			CPF: "111", Name: "Ana, Souza", Phone: "1199990001",
			Specialty: "Cardiologia", Doctor: "Dr. A",
			VisitDate: day(2024, 1, 15), Status: appointment.StatusRescheduled,
		},
		{CPF: "222", VisitDate: day(2024, 2, 3)},
	}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, records); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(rows))
	}
	if rows[0][0] != "CPF" || rows[0][6] != "Status" {
		t.Errorf("unexpected header: %v", rows[0])
	}
	// The comma in the name survives quoting.
	if rows[1][1] != "Ana, Souza" {
		t.Errorf("name = %q", rows[1][1])
	}
	if rows[1][5] != "2024-01-15" || rows[1][6] != "Reagendou" {
		t.Errorf("unexpected row: %v", rows[1])
	}
	if rows[2][6] != "" {
		t.Errorf("unset status exported as %q", rows[2][6])
	}
}

func TestWriteCSV_EmptyStillWritesHeader(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rows, _ := csv.NewReader(&buf).ReadAll()
	if len(rows) != 1 {
		t.Errorf("expected header only, got %d rows", len(rows))
	}
}
