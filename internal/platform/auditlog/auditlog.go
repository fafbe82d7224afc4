// Package auditlog records every outreach action taken by an operator.
// Entries are append-only and never mutated.
package auditlog

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Entry is one outreach action.
type Entry struct {
	ID        string    `json:"id"`
	CPF       string    `json:"cpf"`
	Name      string    `json:"name"`
	Specialty string    `json:"specialty"`
	Status    string    `json:"status"`
	Operator  string    `json:"operator"`
	Timestamp time.Time `json:"timestamp"`
}

// Sink persists audit entries.
type Sink interface {
	Append(e Entry) error
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(e Entry) error

func (f SinkFunc) Append(e Entry) error { return f(e) }

var fileHeader = []string{"CPF", "Nome", "Especialidade", "Status", "Operador", "DataHora"}

// FileSink appends entries to a CSV file, creating it with the fixed
// header when absent.
type FileSink struct {
	mu   sync.Mutex
	path string
}

func NewFileSink(path string) *FileSink {
	return &FileSink{path: path}
}

func (s *FileSink) Append(e Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now()
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create audit log dir: %w", err)
	}

	_, statErr := os.Stat(s.path)
	fresh := os.IsNotExist(statErr)

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open audit log: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if fresh {
		if err := w.Write(fileHeader); err != nil {
			return fmt.Errorf("write audit header: %w", err)
		}
	}
	record := []string{e.CPF, e.Name, e.Specialty, e.Status, e.Operator, e.Timestamp.Format(time.RFC3339)}
	if err := w.Write(record); err != nil {
		return fmt.Errorf("write audit entry: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush audit log: %w", err)
	}
	return nil
}

// LogSink writes audit entries to the structured log. It is the fallback
// when no file target is configured.
func LogSink(logger zerolog.Logger) Sink {
	return SinkFunc(func(e Entry) error {
		logger.Info().
			Str("cpf", e.CPF).
			Str("name", e.Name).
			Str("specialty", e.Specialty).
			Str("status", e.Status).
			Str("operator", e.Operator).
			Time("timestamp", e.Timestamp).
			Msg("outreach action")
		return nil
	})
}
