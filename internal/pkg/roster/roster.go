// Package roster reads and writes the club roster: a column-oriented table of
// string cells addressed by 0-based data row and column, plus an append-only
// entry log. Header rows are hidden by the drivers.
package roster

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	// DriverSheets stores the roster in a Google Sheets spreadsheet.
	DriverSheets = "sheets"
	// DriverPostgres stores the roster in PostgreSQL.
	DriverPostgres = "postgres"
)

var (
	// ErrInvalidCell is returned for negative row or column indices.
	ErrInvalidCell = errors.New("roster: row and column must not be negative")
	// ErrUnknownDriver indicates an unsupported roster driver.
	ErrUnknownDriver = errors.New("roster: unknown driver")
)

// Roster is the row store the access module works against.
type Roster interface {
	// LookupColumn returns every data cell of col, ordered by row. Missing
	// cells inside the range are returned as "".
	LookupColumn(ctx context.Context, col int) ([]string, error)
	// UpdateCell overwrites one data cell.
	UpdateCell(ctx context.Context, row, col int, value string) error
	// AppendEntry records that regNo entered at the given time.
	AppendEntry(ctx context.Context, regNo string, at time.Time) error
}

// FactoryOptions carries the per-driver configuration.
type FactoryOptions struct {
	Sheets   SheetsConfig
	Postgres DB
}

// NewFromDriver builds the Roster named by driver.
func NewFromDriver(ctx context.Context, driver string, opts FactoryOptions) (Roster, error) {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case DriverSheets:
		return NewSheets(ctx, opts.Sheets)
	case DriverPostgres:
		return NewPostgres(opts.Postgres)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownDriver, driver)
	}
}

func checkCell(row, col int) error {
	if row < 0 || col < 0 {
		return ErrInvalidCell
	}
	return nil
}
