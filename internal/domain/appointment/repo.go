package appointment

import "context"

// Snapshot is one load cycle of the backing sheet. Raw preserves every
// data row exactly as loaded (including rows Normalize dropped and
// columns the panel does not recognize) so a bulk rewrite never discards
// data it did not understand. Row i of Raw is sheet row i+2.
type Snapshot struct {
	Header  []string
	Raw     [][]string
	Records []Record
	Cols    Columns
}

// Repository loads appointment snapshots and persists status changes.
// All row references are interpreted against the snapshot they came
// from; a fresh Load invalidates them.
type Repository interface {
	Load(ctx context.Context) (*Snapshot, error)
	// UpdateStatus writes a single status cell (the cheap path).
	UpdateStatus(ctx context.Context, snap *Snapshot, ref RowRef, status Status) error
	// ReplaceAll rewrites the whole sheet from the snapshot, applying the
	// statuses currently held by snap.Records (the bulk path).
	ReplaceAll(ctx context.Context, snap *Snapshot) error
}
