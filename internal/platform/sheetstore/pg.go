package sheetstore

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PGStore keeps the sheet in a single Postgres table while preserving
// positional-row semantics: row_idx 1 is the header, data rows follow.
type PGStore struct {
	pool *pgxpool.Pool
}

func NewPGStore(pool *pgxpool.Pool) *PGStore {
	return &PGStore{pool: pool}
}

// EnsureSchema creates the sheet table if it does not exist.
func (s *PGStore) EnsureSchema(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS sheet_rows (
			row_idx INT PRIMARY KEY,
			cells   TEXT[] NOT NULL
		)`)
	if err != nil {
		return fmt.Errorf("create sheet_rows: %w", err)
	}
	return nil
}

func (s *PGStore) LoadAll(ctx context.Context) ([]string, [][]string, error) {
	rows, err := s.pool.Query(ctx, `SELECT row_idx, cells FROM sheet_rows ORDER BY row_idx`)
	if err != nil {
		return nil, nil, fmt.Errorf("load sheet: %w", err)
	}
	defer rows.Close()

	var header []string
	var data [][]string
	for rows.Next() {
		var idx int
		var cells []string
		if err := rows.Scan(&idx, &cells); err != nil {
			return nil, nil, fmt.Errorf("scan sheet row: %w", err)
		}
		if idx == 1 {
			header = cells
		} else {
			data = append(data, cells)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("iterate sheet rows: %w", err)
	}
	return header, data, nil
}

func (s *PGStore) UpdateCell(ctx context.Context, rowIndex, colIndex int, value string) error {
	if rowIndex < 2 || colIndex < 1 {
		return fmt.Errorf("cell (%d,%d): %w", rowIndex, colIndex, ErrStaleRef)
	}
	tag, err := s.pool.Exec(ctx, `
		UPDATE sheet_rows SET cells[$2] = $3
		WHERE row_idx = $1 AND cardinality(cells) >= $2`,
		rowIndex, colIndex, value)
	if err != nil {
		return fmt.Errorf("update cell (%d,%d): %w", rowIndex, colIndex, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("cell (%d,%d): %w", rowIndex, colIndex, ErrStaleRef)
	}
	return nil
}

func (s *PGStore) ReplaceAll(ctx context.Context, header []string, rows [][]string) error {
	return pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `TRUNCATE sheet_rows`); err != nil {
			return fmt.Errorf("truncate sheet: %w", err)
		}
		if _, err := tx.Exec(ctx, `INSERT INTO sheet_rows (row_idx, cells) VALUES (1, $1)`, header); err != nil {
			return fmt.Errorf("insert header: %w", err)
		}
		for i, row := range rows {
			if _, err := tx.Exec(ctx, `INSERT INTO sheet_rows (row_idx, cells) VALUES ($1, $2)`, i+2, row); err != nil {
				return fmt.Errorf("insert row %d: %w", i+2, err)
			}
		}
		return nil
	})
}
