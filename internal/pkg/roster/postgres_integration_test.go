//go:build integration

package roster_test

import (
	"context"
	"testing"
	"time"

	"github.com/Rishu9835/DOORWISE/internal/pkg/roster"
	"github.com/Rishu9835/DOORWISE/internal/pkg/testutil/containers"
	"github.com/stretchr/testify/suite"
)

type PostgresRosterSuite struct {
	suite.Suite
	pg     *containers.PostgresContainer
	roster *roster.Postgres
}

func TestPostgresRosterSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresRosterSuite))
}

func (s *PostgresRosterSuite) SetupSuite() {
	s.pg = containers.GetManager().GetPostgres(s.T())

	r, err := roster.NewPostgres(s.pg.Pool)
	s.Require().NoError(err)
	s.roster = r
}

func (s *PostgresRosterSuite) SetupTest() {
	s.Require().NoError(s.pg.TruncateTables(context.Background(), "access_roster_cells", "access_entry_logs"))
}

func (s *PostgresRosterSuite) TestUpdateAndLookup() {
	ctx := context.Background()

	s.Require().NoError(s.roster.UpdateCell(ctx, 0, 1, "a@x.org"))
	s.Require().NoError(s.roster.UpdateCell(ctx, 2, 1, "c@x.org"))
	s.Require().NoError(s.roster.UpdateCell(ctx, 0, 2, "other column"))

	got, err := s.roster.LookupColumn(ctx, 1)
	s.Require().NoError(err)
	s.Equal([]string{"a@x.org", "", "c@x.org"}, got)

	s.Require().NoError(s.roster.UpdateCell(ctx, 0, 1, "z@x.org"))
	got, err = s.roster.LookupColumn(ctx, 1)
	s.Require().NoError(err)
	s.Equal("z@x.org", got[0])
}

func (s *PostgresRosterSuite) TestLookupEmptyColumn() {
	got, err := s.roster.LookupColumn(context.Background(), 9)
	s.Require().NoError(err)
	s.Empty(got)
}

func (s *PostgresRosterSuite) TestAppendEntry() {
	ctx := context.Background()
	at := time.Date(2026, 3, 4, 9, 30, 0, 0, time.UTC)

	s.Require().NoError(s.roster.AppendEntry(ctx, "21BCE0001", at))
	s.Require().NoError(s.roster.AppendEntry(ctx, "21BCE0002", at.Add(time.Minute)))

	var count int
	s.Require().NoError(s.pg.Pool.QueryRow(ctx, `SELECT count(*) FROM access_entry_logs`).Scan(&count))
	s.Equal(2, count)
}
