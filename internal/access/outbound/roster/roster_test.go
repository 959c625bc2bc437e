package roster

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Rishu9835/DOORWISE/internal/pkg/instrument"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cellWrite struct {
	row, col int
	value    string
}

type fakeRoster struct {
	columns map[int][]string
	writes  []cellWrite
	entries []string
	err     error
}

func (f *fakeRoster) LookupColumn(_ context.Context, col int) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.columns[col], nil
}

func (f *fakeRoster) UpdateCell(_ context.Context, row, col int, value string) error {
	if f.err != nil {
		return f.err
	}
	f.writes = append(f.writes, cellWrite{row: row, col: col, value: value})
	return nil
}

func (f *fakeRoster) AppendEntry(_ context.Context, regNo string, _ time.Time) error {
	if f.err != nil {
		return f.err
	}
	f.entries = append(f.entries, regNo)
	return nil
}

var testLayout = Layout{
	AdminCol:          0,
	MemberEmailCol:    1,
	MemberRegNoCol:    2,
	MemberPasswordCol: 3,
	DoorOTPCol:        5,
	DoorOTPRow:        0,
}

func TestRoster_ColumnsFollowLayout(t *testing.T) {
	client := &fakeRoster{columns: map[int][]string{
		0: {"admin@club.org"},
		1: {"a@club.org"},
		2: {"RA1"},
		3: {"pw"},
	}}
	r := NewRoster(client, testLayout, instrument.NewNoop())
	ctx := context.Background()

	admins, err := r.AdminEmails(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"admin@club.org"}, admins)

	emails, err := r.MemberEmails(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a@club.org"}, emails)

	regNos, err := r.MemberRegNos(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"RA1"}, regNos)

	passwords, err := r.MemberPasswords(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"pw"}, passwords)
}

func TestRoster_Writes(t *testing.T) {
	client := &fakeRoster{}
	r := NewRoster(client, testLayout, instrument.NewNoop())
	ctx := context.Background()

	require.NoError(t, r.WriteDoorCode(ctx, "123456"))
	require.NoError(t, r.WritePassword(ctx, 4, "01231042"))
	require.NoError(t, r.AppendEntry(ctx, "RA1", time.Now()))

	assert.Equal(t, []cellWrite{
		{row: 0, col: 5, value: "123456"},
		{row: 4, col: 3, value: "01231042"},
	}, client.writes)
	assert.Equal(t, []string{"RA1"}, client.entries)
}

func TestRoster_PropagatesErrors(t *testing.T) {
	boom := errors.New("sheets down")
	r := NewRoster(&fakeRoster{err: boom}, testLayout, instrument.NewNoop())
	ctx := context.Background()

	_, err := r.AdminEmails(ctx)
	assert.ErrorIs(t, err, boom)
	assert.ErrorIs(t, r.WriteDoorCode(ctx, ""), boom)
	assert.ErrorIs(t, r.AppendEntry(ctx, "RA1", time.Now()), boom)
}
