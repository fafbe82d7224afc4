package sheetstore

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
)

// FileStore keeps the sheet in a single UTF-8, comma-delimited CSV file.
// Writes go through a temp file and rename so a crash mid-write never
// leaves a half-written sheet behind.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) LoadAll(_ context.Context) ([]string, [][]string, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, nil
		}
		return nil, nil, fmt.Errorf("open sheet: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("read sheet: %w", err)
	}
	if len(records) == 0 {
		return nil, nil, nil
	}
	return records[0], records[1:], nil
}

func (s *FileStore) UpdateCell(ctx context.Context, rowIndex, colIndex int, value string) error {
	if rowIndex < 2 || colIndex < 1 {
		return fmt.Errorf("cell (%d,%d): %w", rowIndex, colIndex, ErrStaleRef)
	}

	header, rows, err := s.LoadAll(ctx)
	if err != nil {
		return err
	}
	// rowIndex is sheet-absolute; data rows start at 2.
	i := rowIndex - 2
	if i >= len(rows) {
		return fmt.Errorf("row %d beyond sheet extent %d: %w", rowIndex, len(rows)+1, ErrStaleRef)
	}
	if colIndex > len(header) {
		return fmt.Errorf("column %d beyond header width %d: %w", colIndex, len(header), ErrStaleRef)
	}
	for len(rows[i]) < len(header) {
		rows[i] = append(rows[i], "")
	}
	rows[i][colIndex-1] = value

	return s.write(header, rows)
}

func (s *FileStore) ReplaceAll(_ context.Context, header []string, rows [][]string) error {
	return s.write(header, rows)
}

func (s *FileStore) write(header []string, rows [][]string) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create sheet dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".sheet-*.csv")
	if err != nil {
		return fmt.Errorf("create temp sheet: %w", err)
	}
	defer os.Remove(tmp.Name())

	w := csv.NewWriter(tmp)
	if err := w.Write(header); err != nil {
		tmp.Close()
		return fmt.Errorf("write header: %w", err)
	}
	if err := w.WriteAll(rows); err != nil {
		tmp.Close()
		return fmt.Errorf("write rows: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		tmp.Close()
		return fmt.Errorf("flush sheet: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp sheet: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace sheet: %w", err)
	}
	return nil
}
