package report

import (
	"github.com/painel/painel/internal/domain/appointment"
)

// KPIs are the headline numbers on the productivity dashboard.
type KPIs struct {
	TotalVisits       int `json:"total_visits"`
	UniquePatients    int `json:"unique_patients"`
	ReturningPatients int `json:"returning_patients"`
	Rescheduled       int `json:"rescheduled"`
	Declined          int `json:"declined"`
	MessagesSent      int `json:"messages_sent"`
}

// Compute derives the KPIs from a record set. A returning patient is one
// with more than one visit in the set.
func Compute(records []appointment.Record) KPIs {
	visits := make(map[string]int)
	k := KPIs{TotalVisits: len(records)}
	for _, rec := range records {
		visits[rec.CPF]++
		switch rec.Status {
		case appointment.StatusRescheduled:
			k.Rescheduled++
		case appointment.StatusWillNotReschedule:
			k.Declined++
		case appointment.StatusMessageSent:
			k.MessagesSent++
		}
	}
	k.UniquePatients = len(visits)
	for _, n := range visits {
		if n > 1 {
			k.ReturningPatients++
		}
	}
	return k
}

// StatusCount is one bar of the status distribution chart.
type StatusCount struct {
	Status appointment.Status `json:"status"`
	Label  string             `json:"label"`
	Count  int                `json:"count"`
}

// StatusHistogram counts records per status, in the panel's fixed
// presentation order, with unset statuses last.
func StatusHistogram(records []appointment.Record) []StatusCount {
	counts := make(map[appointment.Status]int)
	for _, rec := range records {
		counts[rec.Status]++
	}

	out := make([]StatusCount, 0, len(appointment.AllStatuses)+1)
	for _, st := range appointment.AllStatuses {
		out = append(out, StatusCount{Status: st, Label: st.Label(), Count: counts[st]})
	}
	out = append(out, StatusCount{Status: appointment.StatusNone, Label: "Sem status", Count: counts[appointment.StatusNone]})
	return out
}
