package appointment

import (
	"sort"
	"time"
)

// Query is a conjunction of independent predicates. An empty specialty or
// status set means "no restriction": selecting nothing matches everything,
// which is the selection default the panel has always had.
type Query struct {
	From        time.Time
	To          time.Time
	Specialties []string
	Statuses    []Status
}

// Filter returns the records matching the query, preserving input order.
// The date range is inclusive on both ends; a zero From or To leaves that
// end unbounded.
func Filter(records []Record, q Query) []Record {
	specialties := make(map[string]bool, len(q.Specialties))
	for _, s := range q.Specialties {
		specialties[s] = true
	}
	statuses := make(map[Status]bool, len(q.Statuses))
	for _, s := range q.Statuses {
		statuses[s] = true
	}

	out := make([]Record, 0, len(records))
	for _, rec := range records {
		if !q.From.IsZero() && rec.VisitDate.Before(q.From) {
			continue
		}
		if !q.To.IsZero() && rec.VisitDate.After(q.To) {
			continue
		}
		if len(specialties) > 0 && !specialties[rec.Specialty] {
			continue
		}
		if len(statuses) > 0 && !statuses[rec.Status] {
			continue
		}
		out = append(out, rec)
	}
	return out
}

// Specialties returns the distinct non-empty specialties, sorted.
func Specialties(records []Record) []string {
	seen := make(map[string]bool)
	var out []string
	for _, rec := range records {
		if rec.Specialty == "" || seen[rec.Specialty] {
			continue
		}
		seen[rec.Specialty] = true
		out = append(out, rec.Specialty)
	}
	sort.Strings(out)
	return out
}

// SortByDate returns a copy of records in ascending visit-date order.
// The sort is stable so equal dates keep their input order.
func SortByDate(records []Record) []Record {
	out := make([]Record, len(records))
	copy(out, records)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].VisitDate.Before(out[j].VisitDate)
	})
	return out
}
