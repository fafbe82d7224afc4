package reconcile

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/painel/painel/internal/domain/appointment"
)

// LedgerEntry is a status fact kept in a store separate from the
// appointment sheet. Only an entry matching a record's full
// (CPF, visit date, specialty) triple is authoritative for that record.
type LedgerEntry struct {
	CPF       string
	VisitDate time.Time
	Specialty string
	Status    appointment.Status
}

type ledgerKey struct {
	cpf       string
	date      string
	specialty string
}

func keyOf(cpf string, date time.Time, specialty string) ledgerKey {
	return ledgerKey{cpf: cpf, date: date.Format("2006-01-02"), specialty: specialty}
}

// MergeLedger overlays ledger statuses onto records: a record whose exact
// triple has a ledger entry takes the ledger's status, all other records
// keep their own. The merge is a pure left join on the triple; there is
// deliberately no fallback to a CPF-only match, which would bleed one
// specialty's status onto another. When the ledger holds several entries
// for the same triple the last one wins. The input slice is not mutated.
func MergeLedger(records []appointment.Record, ledger []LedgerEntry) []appointment.Record {
	byKey := make(map[ledgerKey]appointment.Status, len(ledger))
	for _, e := range ledger {
		byKey[keyOf(e.CPF, e.VisitDate, e.Specialty)] = e.Status
	}

	out := make([]appointment.Record, len(records))
	copy(out, records)
	for i := range out {
		if st, ok := byKey[keyOf(out[i].CPF, out[i].VisitDate, out[i].Specialty)]; ok {
			out[i].Status = st
		}
	}
	return out
}

// LedgerStore persists ledger entries. Reset discards every entry; it is
// called after a bulk sheet rewrite, which folds all ledger statuses into
// the sheet and would otherwise leave stale entries to replay over any
// status the rewrite changed.
type LedgerStore interface {
	Load(ctx context.Context) ([]LedgerEntry, error)
	Append(ctx context.Context, e LedgerEntry) error
	Reset(ctx context.Context) error
}

var ledgerHeader = []string{"CPF", "Data", "Especialidade", "Status"}

// FileLedger is a CSV-backed ledger store, append-only like the audit
// log; Load replays the file so later entries override earlier ones via
// MergeLedger's last-wins map.
type FileLedger struct {
	mu   sync.Mutex
	path string
}

func NewFileLedger(path string) *FileLedger {
	return &FileLedger{path: path}
}

func (l *FileLedger) Load(_ context.Context) ([]LedgerEntry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := os.Open(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("open ledger: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read ledger: %w", err)
	}

	var entries []LedgerEntry
	for i, row := range rows {
		if i == 0 || len(row) < 4 {
			continue
		}
		date, ok := appointment.ParseDate(row[1])
		if !ok {
			continue
		}
		entries = append(entries, LedgerEntry{
			CPF:       row[0],
			VisitDate: date,
			Specialty: row[2],
			Status:    appointment.ParseStatus(row[3]),
		})
	}
	return entries, nil
}

func (l *FileLedger) Append(_ context.Context, e LedgerEntry) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return fmt.Errorf("create ledger dir: %w", err)
	}
	_, statErr := os.Stat(l.path)
	fresh := os.IsNotExist(statErr)

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open ledger: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if fresh {
		if err := w.Write(ledgerHeader); err != nil {
			return fmt.Errorf("write ledger header: %w", err)
		}
	}
	row := []string{e.CPF, e.VisitDate.Format("2006-01-02"), e.Specialty, e.Status.Label()}
	if err := w.Write(row); err != nil {
		return fmt.Errorf("write ledger entry: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush ledger: %w", err)
	}
	return nil
}

func (l *FileLedger) Reset(_ context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := os.Remove(l.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("reset ledger: %w", err)
	}
	return nil
}
