package sheetstore

import (
	"context"
	"fmt"
	"sync"
)

// MemStore is an in-memory Store used in tests and the seed command.
type MemStore struct {
	mu     sync.Mutex
	header []string
	rows   [][]string
}

func NewMemStore(header []string, rows [][]string) *MemStore {
	return &MemStore{header: cloneRow(header), rows: cloneRows(rows)}
}

func (s *MemStore) LoadAll(_ context.Context) ([]string, [][]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneRow(s.header), cloneRows(s.rows), nil
}

func (s *MemStore) UpdateCell(_ context.Context, rowIndex, colIndex int, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if rowIndex < 2 || colIndex < 1 {
		return fmt.Errorf("cell (%d,%d): %w", rowIndex, colIndex, ErrStaleRef)
	}
	i := rowIndex - 2
	if i >= len(s.rows) {
		return fmt.Errorf("row %d beyond sheet extent %d: %w", rowIndex, len(s.rows)+1, ErrStaleRef)
	}
	if colIndex > len(s.header) {
		return fmt.Errorf("column %d beyond header width %d: %w", colIndex, len(s.header), ErrStaleRef)
	}
	for len(s.rows[i]) < len(s.header) {
		s.rows[i] = append(s.rows[i], "")
	}
	s.rows[i][colIndex-1] = value
	return nil
}

func (s *MemStore) ReplaceAll(_ context.Context, header []string, rows [][]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.header = cloneRow(header)
	s.rows = cloneRows(rows)
	return nil
}

func cloneRow(r []string) []string {
	if r == nil {
		return nil
	}
	out := make([]string, len(r))
	copy(out, r)
	return out
}

func cloneRows(rows [][]string) [][]string {
	if rows == nil {
		return nil
	}
	out := make([][]string, len(rows))
	for i, r := range rows {
		out[i] = cloneRow(r)
	}
	return out
}
