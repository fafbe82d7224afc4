// Package sheetstore provides tabular backing stores with spreadsheet
// addressing: rows and columns are 1-based and row 1 is the header.
// No implementation offers locking or optimistic concurrency; concurrent
// writers are last-write-wins, which matches the operational model of the
// panel (a handful of back-office operators).
package sheetstore

import (
	"context"
	"errors"
)

// ErrStaleRef is returned when a cell write addresses a row or column
// that no longer exists in the store, typically because the sheet was
// rewritten since the reference was taken.
var ErrStaleRef = errors.New("sheetstore: row reference no longer valid")

// Store is the record store adapter. LoadAll returns a full snapshot;
// UpdateCell touches a single cell (rowIndex >= 2, colIndex >= 1);
// ReplaceAll rewrites the whole table.
type Store interface {
	LoadAll(ctx context.Context) (header []string, rows [][]string, err error)
	UpdateCell(ctx context.Context, rowIndex, colIndex int, value string) error
	ReplaceAll(ctx context.Context, header []string, rows [][]string) error
}
