package outreach

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"
)

// WritePDF renders the overdue-patient list as a printable table, the
// hand-out format the contact team works from when off-screen.
func WritePDF(w io.Writer, summaries []Summary, specialty string, months int) error {
	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(12, 12, 12)
	pdf.SetAutoPageBreak(true, 12)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 14)
	title := fmt.Sprintf("Pacientes sem retorno há mais de %d meses - %s", months, specialty)
	pdf.CellFormat(0, 10, translate(pdf, title), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	headers := []string{"CPF", "Nome", "Telefone", "Médico", "Última consulta", "Status"}
	widths := []float64{35, 75, 40, 55, 35, 33}

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 8, translate(pdf, h), "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	for _, s := range summaries {
		cells := []string{
			s.CPF,
			s.Name,
			s.Phone,
			s.Doctor,
			s.LastVisit.Format("02/01/2006"),
			s.Status.Label(),
		}
		for i, cellText := range cells {
			pdf.CellFormat(widths[i], 7, translate(pdf, cellText), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

// translate maps UTF-8 to the built-in font's cp1252 so accented
// Portuguese text renders correctly.
func translate(pdf *fpdf.Fpdf, s string) string {
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	return tr(s)
}
