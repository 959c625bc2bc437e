package roster

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrDBRequired is returned when the postgres driver has no connection.
var ErrDBRequired = errors.New("roster: postgres connection is required")

// DB is the subset of pgxpool.Pool the postgres driver needs.
type DB interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

const (
	queryLookupColumn = `SELECT row_no, value FROM access_roster_cells WHERE col_no = $1 ORDER BY row_no`

	queryUpdateCell = `INSERT INTO access_roster_cells (row_no, col_no, value)
VALUES ($1, $2, $3)
ON CONFLICT (col_no, row_no) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`

	queryAppendEntry = `INSERT INTO access_entry_logs (reg_no, entered_at) VALUES ($1, $2)`
)

// Postgres is a Roster stored in the access_roster_cells and
// access_entry_logs tables.
type Postgres struct {
	db DB
}

// NewPostgres wraps db.
func NewPostgres(db DB) (*Postgres, error) {
	if db == nil {
		return nil, ErrDBRequired
	}
	return &Postgres{db: db}, nil
}

type cell struct {
	Row   int
	Value string
}

// LookupColumn returns col densely from row 0 to the highest stored row.
func (p *Postgres) LookupColumn(ctx context.Context, col int) ([]string, error) {
	if err := checkCell(0, col); err != nil {
		return nil, err
	}

	rows, err := p.db.Query(ctx, queryLookupColumn, col)
	if err != nil {
		return nil, fmt.Errorf("roster: query column %d: %w", col, err)
	}

	cells, err := pgx.CollectRows(rows, pgx.RowToStructByPos[cell])
	if err != nil {
		return nil, fmt.Errorf("roster: scan column %d: %w", col, err)
	}
	if len(cells) == 0 {
		return []string{}, nil
	}

	out := make([]string, cells[len(cells)-1].Row+1)
	for _, c := range cells {
		out[c.Row] = c.Value
	}
	return out, nil
}

// UpdateCell upserts one cell.
func (p *Postgres) UpdateCell(ctx context.Context, row, col int, value string) error {
	if err := checkCell(row, col); err != nil {
		return err
	}

	if _, err := p.db.Exec(ctx, queryUpdateCell, row, col, value); err != nil {
		return fmt.Errorf("roster: update cell (%d,%d): %w", row, col, err)
	}
	return nil
}

// AppendEntry inserts an entry log row.
func (p *Postgres) AppendEntry(ctx context.Context, regNo string, at time.Time) error {
	if _, err := p.db.Exec(ctx, queryAppendEntry, regNo, at); err != nil {
		return fmt.Errorf("roster: append entry: %w", err)
	}
	return nil
}
