package report

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/painel/painel/internal/domain/appointment"
)

var exportHeader = []string{"CPF", "Nome", "Telefone", "Especialidade", "Medico", "Data", "Status"}

// WriteCSV serializes the records as UTF-8 comma-delimited CSV with a
// header row, the panel's export format.
func WriteCSV(w io.Writer, records []appointment.Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeader); err != nil {
		return fmt.Errorf("write export header: %w", err)
	}
	for _, rec := range records {
		row := []string{
			rec.CPF,
			rec.Name,
			rec.Phone,
			rec.Specialty,
			rec.Doctor,
			rec.VisitDate.Format("2006-01-02"),
			rec.Status.Label(),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write export row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush export: %w", err)
	}
	return nil
}
