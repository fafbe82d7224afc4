package appointment

import (
	"strings"
	"time"
)

// Columns holds the 0-based indices of the recognized sheet columns.
// An index of -1 means the column is absent.
type Columns struct {
	CPF       int
	Name      int
	Phone     int
	Specialty int
	Doctor    int
	Date      int
	Status    int
}

// ResolveColumns locates the recognized columns in a header row. Header
// matching is case-insensitive and accepts both the accented and plain
// spellings the legacy sheets use.
func ResolveColumns(header []string) Columns {
	cols := Columns{CPF: -1, Name: -1, Phone: -1, Specialty: -1, Doctor: -1, Date: -1, Status: -1}
	for i, h := range header {
		switch normalizeHeader(h) {
		case "cpf":
			cols.CPF = i
		case "nome", "name":
			cols.Name = i
		case "telefone", "phone":
			cols.Phone = i
		case "especialidade", "specialty":
			cols.Specialty = i
		case "medico", "médico", "doctor":
			cols.Doctor = i
		case "data", "date":
			cols.Date = i
		case "status":
			cols.Status = i
		}
	}
	return cols
}

func normalizeHeader(h string) string {
	return strings.ToLower(strings.TrimSpace(h))
}

// dateLayouts are tried in order. The legacy sheet mixes ISO dates,
// Brazilian day-first dates, and occasional full timestamps.
var dateLayouts = []string{
	"2006-01-02",
	"02/01/2006",
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02 15:04:05",
	"02/01/2006 15:04",
}

// ParseDate parses a visit date with the tolerant layout list. The time
// portion, when present, is discarded.
func ParseDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
		}
	}
	return time.Time{}, false
}

// Normalize converts raw sheet rows into typed records. Rows with an
// unparseable date or an empty CPF are silently dropped; they never take
// part in reporting or reconciliation. A missing Status column defaults
// every record's status to StatusNone. Pure: the inputs are not mutated.
func Normalize(header []string, rows [][]string) []Record {
	cols := ResolveColumns(header)
	return normalizeWith(cols, rows)
}

func normalizeWith(cols Columns, rows [][]string) []Record {
	if cols.CPF < 0 || cols.Date < 0 {
		// Without identity columns no row can be normalized.
		return nil
	}

	records := make([]Record, 0, len(rows))
	for i, row := range rows {
		cpf := strings.TrimSpace(cell(row, cols.CPF))
		if cpf == "" {
			continue
		}
		date, ok := ParseDate(cell(row, cols.Date))
		if !ok {
			continue
		}

		rec := Record{
			CPF:       cpf,
			Name:      strings.TrimSpace(cell(row, cols.Name)),
			Phone:     strings.TrimSpace(cell(row, cols.Phone)),
			Specialty: strings.TrimSpace(cell(row, cols.Specialty)),
			Doctor:    strings.TrimSpace(cell(row, cols.Doctor)),
			VisitDate: date,
			Status:    ParseStatus(cell(row, cols.Status)),
			Ref:       RowRef(headerOffset + i + 1),
		}
		records = append(records, rec)
	}
	return records
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}
