package outreach

import (
	"sort"
	"time"

	"github.com/painel/painel/internal/domain/appointment"
)

// Summary is one patient overdue for return contact in a specialty.
type Summary struct {
	CPF       string             `json:"cpf"`
	Name      string             `json:"name,omitempty"`
	Phone     string             `json:"phone,omitempty"`
	Specialty string             `json:"specialty"`
	Doctor    string             `json:"doctor,omitempty"`
	LastVisit time.Time          `json:"last_visit"`
	Status    appointment.Status `json:"status"`
	Ref       appointment.RowRef `json:"-"`
	Link      string             `json:"whatsapp_link,omitempty"`
}

// CutoffDate computes the return-contact cutoff as today minus
// months of a fixed 30 days each. The 30-day month is what the panel has
// always used; it is not calendar-accurate and must stay that way so
// existing target lists don't shift.
func CutoffDate(today time.Time, months int) time.Time {
	return today.AddDate(0, 0, -months*30)
}

// SelectOverdue groups records by (CPF, specialty), represents each group
// by its most recent visit (ties broken by first occurrence in input
// order), and returns the groups in the requested specialty whose
// representative visit is strictly before the cutoff. Output is sorted
// ascending by last visit, most-overdue first.
func SelectOverdue(records []appointment.Record, specialty string, months int, today time.Time) []Summary {
	cutoff := CutoffDate(today, months)

	type groupKey struct{ cpf, specialty string }
	latest := make(map[groupKey]appointment.Record)
	var order []groupKey

	for _, rec := range records {
		if rec.Specialty != specialty {
			continue
		}
		key := groupKey{cpf: rec.CPF, specialty: rec.Specialty}
		cur, seen := latest[key]
		if !seen {
			latest[key] = rec
			order = append(order, key)
			continue
		}
		if rec.VisitDate.After(cur.VisitDate) {
			latest[key] = rec
		}
	}

	var out []Summary
	for _, key := range order {
		rec := latest[key]
		if !rec.VisitDate.Before(cutoff) {
			continue
		}
		out = append(out, Summary{
			CPF:       rec.CPF,
			Name:      rec.Name,
			Phone:     rec.Phone,
			Specialty: rec.Specialty,
			Doctor:    rec.Doctor,
			LastVisit: rec.VisitDate,
			Status:    rec.Status,
			Ref:       rec.Ref,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].LastVisit.Before(out[j].LastVisit)
	})
	return out
}
