package reconcile

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/painel/painel/internal/domain/appointment"
)

// PersistError is surfaced when a status write to the backing store
// fails. The in-memory edit is kept so the operator can retry; nothing
// retries automatically.
type PersistError struct {
	Op  string
	Err error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("persist (%s): %v", e.Op, e.Err)
}

func (e *PersistError) Unwrap() error { return e.Err }

// Edit is a CPF-keyed status change from the operator panel's save-all
// flow.
type Edit struct {
	CPF    string             `json:"cpf"`
	Status appointment.Status `json:"status"`
}

// ApplyEdit applies a CPF-keyed edit to the last record for that CPF in
// the date-ascending ordering of the loaded set; among records sharing
// that latest date the one loaded last wins. The CPF-only key is a
// leftover of the legacy panel and cannot distinguish specialties; the
// triple-keyed path should be preferred for new callers. Returns false
// when no record matches. The input slice is mutated in place.
func ApplyEdit(records []appointment.Record, cpf string, status appointment.Status) bool {
	target := -1
	for i := range records {
		if records[i].CPF != cpf {
			continue
		}
		if target < 0 || !records[i].VisitDate.Before(records[target].VisitDate) {
			target = i
		}
	}
	if target < 0 {
		return false
	}
	records[target].Status = status
	return true
}

// FindByKey locates the record with the exact (CPF, visit date,
// specialty) triple. Returns the index or -1.
func FindByKey(records []appointment.Record, cpf string, date time.Time, specialty string) int {
	for i := range records {
		if records[i].CPF == cpf && records[i].Specialty == specialty && records[i].VisitDate.Equal(date) {
			return i
		}
	}
	return -1
}

// Engine reconciles operator status edits against the authoritative
// sheet. Every load takes a full snapshot; every persist is
// last-write-wins with no concurrency token, so overlapping operator
// sessions can silently overwrite each other. That is the panel's
// documented consistency model, not an oversight.
type Engine struct {
	repo   appointment.Repository
	ledger LedgerStore
	logger zerolog.Logger
}

// NewEngine builds an engine. ledger may be nil when statuses live only
// in the sheet itself.
func NewEngine(repo appointment.Repository, ledger LedgerStore, logger zerolog.Logger) *Engine {
	return &Engine{repo: repo, ledger: ledger, logger: logger}
}

// Load takes a fresh snapshot and, when a ledger is configured, overlays
// its statuses onto the records.
func (e *Engine) Load(ctx context.Context) (*appointment.Snapshot, error) {
	snap, err := e.repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	if e.ledger != nil {
		entries, err := e.ledger.Load(ctx)
		if err != nil {
			return nil, fmt.Errorf("load ledger: %w", err)
		}
		snap.Records = MergeLedger(snap.Records, entries)
	}
	return snap, nil
}

// PersistStatus writes a single record's status cell (the cheap path,
// used for immediate single actions). Idempotent: repeating the same
// write leaves the store in the same state.
func (e *Engine) PersistStatus(ctx context.Context, snap *appointment.Snapshot, rec appointment.Record, status appointment.Status) error {
	if !status.Valid() {
		return fmt.Errorf("unknown status %q", status)
	}
	if err := e.repo.UpdateStatus(ctx, snap, rec.Ref, status); err != nil {
		return &PersistError{Op: "update cell", Err: err}
	}
	if e.ledger != nil {
		entry := LedgerEntry{CPF: rec.CPF, VisitDate: rec.VisitDate, Specialty: rec.Specialty, Status: status}
		if err := e.ledger.Append(ctx, entry); err != nil {
			// The sheet write already landed; losing the ledger copy is
			// recoverable on the next bulk save, so log and continue.
			e.logger.Error().Err(err).Str("cpf", rec.CPF).Msg("ledger append failed")
		}
	}
	e.logger.Info().
		Str("cpf", rec.CPF).
		Str("specialty", rec.Specialty).
		Str("status", string(status)).
		Int("row", int(rec.Ref)).
		Msg("status persisted")
	return nil
}

// PersistAll rewrites the whole sheet from the snapshot (the bulk path,
// used by save-all). Last-write-wins: a concurrent single-cell edit made
// since this snapshot was loaded is reverted by the rewrite. The rewrite
// folds every status the snapshot carries, ledger overlays included,
// into the sheet itself, so the ledger is reset afterwards; keeping the
// old entries would replay them over any status the rewrite changed.
func (e *Engine) PersistAll(ctx context.Context, snap *appointment.Snapshot) error {
	if err := e.repo.ReplaceAll(ctx, snap); err != nil {
		return &PersistError{Op: "replace all", Err: err}
	}
	if e.ledger != nil {
		if err := e.ledger.Reset(ctx); err != nil {
			return &PersistError{Op: "reset ledger", Err: err}
		}
	}
	e.logger.Info().Int("rows", len(snap.Raw)).Msg("sheet rewritten")
	return nil
}

// ApplyEdits applies a batch of CPF-keyed edits to the snapshot in
// memory and returns the CPFs that matched no record. Nothing is
// persisted; call PersistAll afterwards.
func (e *Engine) ApplyEdits(snap *appointment.Snapshot, edits []Edit) (missed []string) {
	for _, edit := range edits {
		if !ApplyEdit(snap.Records, edit.CPF, edit.Status) {
			missed = append(missed, edit.CPF)
		}
	}
	return missed
}
