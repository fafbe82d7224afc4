package appointment

import "context"

// Loader supplies the current snapshot. In the wired server this is the
// reconciliation engine, so listings already include ledger statuses.
type Loader interface {
	Load(ctx context.Context) (*Snapshot, error)
}

type Service struct {
	loader Loader
}

func NewService(loader Loader) *Service {
	return &Service{loader: loader}
}

// List re-reads the backing store and returns the records matching the
// query, in sheet order.
func (s *Service) List(ctx context.Context, q Query) ([]Record, error) {
	snap, err := s.loader.Load(ctx)
	if err != nil {
		return nil, err
	}
	return Filter(snap.Records, q), nil
}

// ListSpecialties returns the distinct specialties over the whole sheet.
func (s *Service) ListSpecialties(ctx context.Context) ([]string, error) {
	snap, err := s.loader.Load(ctx)
	if err != nil {
		return nil, err
	}
	return Specialties(snap.Records), nil
}
