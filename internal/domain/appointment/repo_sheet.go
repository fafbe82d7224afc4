package appointment

import (
	"context"
	"fmt"

	"github.com/painel/painel/internal/platform/sheetstore"
)

// sheetRepo adapts a sheetstore.Store to the appointment repository.
type sheetRepo struct {
	store sheetstore.Store
}

func NewSheetRepo(store sheetstore.Store) Repository {
	return &sheetRepo{store: store}
}

func (r *sheetRepo) Load(ctx context.Context) (*Snapshot, error) {
	header, rows, err := r.store.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load appointments: %w", err)
	}
	cols := ResolveColumns(header)
	return &Snapshot{
		Header:  header,
		Raw:     rows,
		Records: normalizeWith(cols, rows),
		Cols:    cols,
	}, nil
}

func (r *sheetRepo) UpdateStatus(ctx context.Context, snap *Snapshot, ref RowRef, status Status) error {
	if snap.Cols.Status < 0 {
		return fmt.Errorf("sheet has no status column; run a bulk save first")
	}
	return r.store.UpdateCell(ctx, int(ref), snap.Cols.Status+1, status.Label())
}

func (r *sheetRepo) ReplaceAll(ctx context.Context, snap *Snapshot) error {
	header := snap.Header
	statusCol := snap.Cols.Status
	if statusCol < 0 {
		// The sheet never had a status column; the bulk path adds it.
		header = append(cloneStrings(header), "Status")
		statusCol = len(header) - 1
	}

	rows := make([][]string, len(snap.Raw))
	for i, raw := range snap.Raw {
		row := cloneStrings(raw)
		for len(row) < len(header) {
			row = append(row, "")
		}
		rows[i] = row
	}
	for _, rec := range snap.Records {
		i := int(rec.Ref) - headerOffset - 1
		if i < 0 || i >= len(rows) {
			return fmt.Errorf("record %s: %w", rec.CPF, sheetstore.ErrStaleRef)
		}
		rows[i][statusCol] = rec.Status.Label()
	}

	if err := r.store.ReplaceAll(ctx, header, rows); err != nil {
		return err
	}
	// The snapshot keeps addressing the sheet it just wrote, so a newly
	// appended status column must be visible to later single-cell writes.
	snap.Header = header
	snap.Cols.Status = statusCol
	return nil
}

func cloneStrings(s []string) []string {
	out := make([]string, len(s))
	copy(out, s)
	return out
}
