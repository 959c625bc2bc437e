package roster

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// ErrSpreadsheetIDRequired is returned when the spreadsheet id is empty.
var ErrSpreadsheetIDRequired = errors.New("roster: sheets spreadsheet id is required")

// SheetsConfig configures the Google Sheets driver.
type SheetsConfig struct {
	SpreadsheetID string
	// RosterSheet is the tab holding the roster columns.
	RosterSheet string
	// EntrySheet is the tab receiving entry log rows.
	EntrySheet string
	// HeaderRows is the number of rows above the first data row.
	HeaderRows int
	// CredentialsJSON is a service account key. Empty means application
	// default credentials.
	CredentialsJSON []byte
	// ClientOptions are appended after the credential option.
	ClientOptions []option.ClientOption
}

// Sheets is a Roster backed by the Sheets v4 values API.
type Sheets struct {
	values        *sheets.SpreadsheetsValuesService
	spreadsheetID string
	rosterSheet   string
	entrySheet    string
	headerRows    int
}

// NewSheets builds the Sheets client.
func NewSheets(ctx context.Context, cfg SheetsConfig) (*Sheets, error) {
	if cfg.SpreadsheetID == "" {
		return nil, ErrSpreadsheetIDRequired
	}

	var opts []option.ClientOption
	if len(cfg.CredentialsJSON) > 0 {
		creds, err := google.CredentialsFromJSON(ctx, cfg.CredentialsJSON, sheets.SpreadsheetsScope)
		if err != nil {
			return nil, fmt.Errorf("roster: parse sheets credentials: %w", err)
		}
		opts = append(opts, option.WithCredentials(creds))
	}
	opts = append(opts, cfg.ClientOptions...)

	srv, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("roster: init sheets service: %w", err)
	}

	s := &Sheets{
		values:        srv.Spreadsheets.Values,
		spreadsheetID: cfg.SpreadsheetID,
		rosterSheet:   cfg.RosterSheet,
		entrySheet:    cfg.EntrySheet,
		headerRows:    max(cfg.HeaderRows, 0),
	}
	if s.rosterSheet == "" {
		s.rosterSheet = "Sheet1"
	}
	if s.entrySheet == "" {
		s.entrySheet = "Entries"
	}

	return s, nil
}

// LookupColumn reads col from the first data row down.
func (s *Sheets) LookupColumn(ctx context.Context, col int) ([]string, error) {
	if err := checkCell(0, col); err != nil {
		return nil, err
	}

	letter := columnName(col)
	rng := a1(s.rosterSheet, letter+strconv.Itoa(s.headerRows+1)+":"+letter)

	resp, err := s.values.Get(s.spreadsheetID, rng).MajorDimension("COLUMNS").Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("roster: read %s: %w", rng, err)
	}
	if len(resp.Values) == 0 {
		return []string{}, nil
	}

	out := make([]string, len(resp.Values[0]))
	for i, v := range resp.Values[0] {
		out[i] = fmt.Sprint(v)
	}
	return out, nil
}

// UpdateCell writes value as a raw string.
func (s *Sheets) UpdateCell(ctx context.Context, row, col int, value string) error {
	if err := checkCell(row, col); err != nil {
		return err
	}

	rng := a1(s.rosterSheet, columnName(col)+strconv.Itoa(row+s.headerRows+1))
	_, err := s.values.
		Update(s.spreadsheetID, rng, &sheets.ValueRange{Values: [][]any{{value}}}).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("roster: write %s: %w", rng, err)
	}
	return nil
}

// AppendEntry appends a (reg_no, RFC 3339 time) row to the entry tab.
func (s *Sheets) AppendEntry(ctx context.Context, regNo string, at time.Time) error {
	rng := a1(s.entrySheet, "A:B")
	_, err := s.values.
		Append(s.spreadsheetID, rng, &sheets.ValueRange{Values: [][]any{{regNo, at.Format(time.RFC3339)}}}).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("roster: append entry: %w", err)
	}
	return nil
}

// columnName converts a 0-based column index to its A1 letters.
func columnName(col int) string {
	var b []byte
	for n := col + 1; n > 0; n = (n - 1) / 26 {
		b = append([]byte{byte('A' + (n-1)%26)}, b...)
	}
	return string(b)
}

func a1(sheet, cells string) string {
	return "'" + strings.ReplaceAll(sheet, "'", "''") + "'!" + cells
}
