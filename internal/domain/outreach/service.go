package outreach

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/painel/painel/internal/domain/appointment"
	"github.com/painel/painel/internal/domain/reconcile"
	"github.com/painel/painel/internal/platform/auditlog"
)

// ErrNotFound marks a contact action addressing a visit that no record
// matches.
var ErrNotFound = errors.New("outreach: no matching appointment")

type Service struct {
	engine      *reconcile.Engine
	audit       auditlog.Sink
	countryCode string
	now         func() time.Time
}

func NewService(engine *reconcile.Engine, audit auditlog.Sink, countryCode string) *Service {
	return &Service{engine: engine, audit: audit, countryCode: countryCode, now: time.Now}
}

// WithClock overrides the time source; used by tests and nothing else.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Targets returns the patients overdue for return contact in the given
// specialty, each with a ready-to-open WhatsApp link.
func (s *Service) Targets(ctx context.Context, specialty string, months int) ([]Summary, error) {
	snap, err := s.engine.Load(ctx)
	if err != nil {
		return nil, err
	}
	summaries := SelectOverdue(snap.Records, specialty, months, s.now())
	for i := range summaries {
		summaries[i].Link = MessageLink(
			summaries[i].Name,
			summaries[i].Specialty,
			summaries[i].Phone,
			summaries[i].LastVisit,
			s.countryCode,
		)
	}
	return summaries, nil
}

// MarkMessageSent records that the operator contacted the patient: the
// visit's status cell is set to "message sent" through the single-cell
// path and the action is appended to the outreach log.
func (s *Service) MarkMessageSent(ctx context.Context, cpf string, date time.Time, specialty, operator string) error {
	snap, err := s.engine.Load(ctx)
	if err != nil {
		return err
	}
	i := reconcile.FindByKey(snap.Records, cpf, date, specialty)
	if i < 0 {
		return fmt.Errorf("cpf %s on %s for %s: %w", cpf, date.Format("2006-01-02"), specialty, ErrNotFound)
	}
	rec := snap.Records[i]

	if err := s.engine.PersistStatus(ctx, snap, rec, appointment.StatusMessageSent); err != nil {
		return err
	}

	entry := auditlog.Entry{
		CPF:       rec.CPF,
		Name:      rec.Name,
		Specialty: rec.Specialty,
		Status:    appointment.StatusMessageSent.Label(),
		Operator:  operator,
		Timestamp: s.now(),
	}
	if err := s.audit.Append(entry); err != nil {
		return fmt.Errorf("append outreach log: %w", err)
	}
	return nil
}
