package report

import (
	"testing"
	"time"

	"github.com/painel/painel/internal/domain/appointment"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestCompute(t *testing.T) {
	records := []appointment.Record{
		{CPF: "1", VisitDate: day(2024, 1, 1), Status: appointment.StatusRescheduled},
		{CPF: "1", VisitDate: day(2024, 6, 1), Status: appointment.StatusMessageSent},
		{CPF: "2", VisitDate: day(2024, 2, 1), Status: appointment.StatusWillNotReschedule},
		{CPF: "3", VisitDate: day(2024, 3, 1)},
	}

	k := Compute(records)
	if k.TotalVisits != 4 {
		t.Errorf("TotalVisits = %d", k.TotalVisits)
	}
	if k.UniquePatients != 3 {
		t.Errorf("UniquePatients = %d", k.UniquePatients)
	}
	if k.ReturningPatients != 1 {
		t.Errorf("ReturningPatients = %d", k.ReturningPatients)
	}
	if k.Rescheduled != 1 || k.Declined != 1 || k.MessagesSent != 1 {
		t.Errorf("status counts: %+v", k)
	}
}

func TestCompute_Empty(t *testing.T) {
	k := Compute(nil)
	if k != (KPIs{}) {
		t.Errorf("expected zero KPIs, got %+v", k)
	}
}

func TestStatusHistogram(t *testing.T) {
	records := []appointment.Record{
		{CPF: "1", Status: appointment.StatusRescheduled},
		{CPF: "2", Status: appointment.StatusRescheduled},
		{CPF: "3"},
	}

	bars := StatusHistogram(records)
	if len(bars) != len(appointment.AllStatuses)+1 {
		t.Fatalf("expected %d bars, got %d", len(appointment.AllStatuses)+1, len(bars))
	}

	counts := make(map[appointment.Status]int)
	for _, b := range bars {
		counts[b.Status] = b.Count
	}
	if counts[appointment.StatusRescheduled] != 2 {
		t.Errorf("rescheduled = %d", counts[appointment.StatusRescheduled])
	}
	if counts[appointment.StatusNone] != 1 {
		t.Errorf("unset = %d", counts[appointment.StatusNone])
	}

	last := bars[len(bars)-1]
	if last.Status != appointment.StatusNone || last.Label != "Sem status" {
		t.Errorf("expected unset bar last, got %+v", last)
	}
}
