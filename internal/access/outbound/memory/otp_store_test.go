package memory

import (
	"sync"
	"testing"
	"time"

	"github.com/Rishu9835/DOORWISE/internal/access/entity"
	"github.com/Rishu9835/DOORWISE/internal/pkg/clock"
	"github.com/Rishu9835/DOORWISE/internal/pkg/hash"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func newStore() (*OTPStore, *clock.Manual) {
	clk := clock.NewManual(t0)
	return NewOTPStore(hash.NewHMACSHA256("test-secret"), clk), clk
}

func record(id int64, code string, p entity.Purpose, ttl time.Duration) entity.OTPRecord {
	return entity.OTPRecord{ID: id, Code: code, Purpose: p, ExpiresAt: t0.Add(ttl)}
}

func requireReason(t *testing.T, err error, want entity.Reason) {
	t.Helper()

	reason, ok := entity.OTPReason(err)
	require.True(t, ok, "expected OTPError, got %v", err)
	assert.Equal(t, want, reason)
}

func TestOTPStore_VerifyConsumes(t *testing.T) {
	s, _ := newStore()

	_, err := s.Save(record(1, "123456", entity.PurposeAdmin, 5*time.Minute))
	require.NoError(t, err)

	rec, err := s.Verify("123456", entity.PurposeAdmin)
	require.NoError(t, err)
	assert.Equal(t, int64(1), rec.ID)

	_, err = s.Verify("123456", entity.PurposeAdmin)
	requireReason(t, err, entity.ReasonNotFound)
}

func TestOTPStore_CodeStoredAsDigest(t *testing.T) {
	s, _ := newStore()

	_, err := s.Save(record(1, "123456", entity.PurposeDoor, time.Minute))
	require.NoError(t, err)

	s.mu.Lock()
	stored := s.slots[entity.PurposeDoor].Code
	s.mu.Unlock()

	assert.NotEqual(t, "123456", stored)
	assert.NotEmpty(t, stored)
}

func TestOTPStore_PurposeIsolation(t *testing.T) {
	s, _ := newStore()

	_, err := s.Save(record(1, "111111", entity.PurposeAdmin, 5*time.Minute))
	require.NoError(t, err)

	_, err = s.Verify("111111", entity.PurposeDoor)
	requireReason(t, err, entity.ReasonNotFound)

	_, err = s.Verify("111111", entity.PurposeAdmin)
	require.NoError(t, err)
}

func TestOTPStore_SaveSupersedes(t *testing.T) {
	s, _ := newStore()

	prev, err := s.Save(record(1, "111111", entity.PurposeDoor, 15*time.Minute))
	require.NoError(t, err)
	assert.Nil(t, prev)

	prev, err = s.Save(record(2, "222222", entity.PurposeDoor, 15*time.Minute))
	require.NoError(t, err)
	require.NotNil(t, prev)
	assert.Equal(t, int64(1), prev.ID)

	_, err = s.Verify("111111", entity.PurposeDoor)
	requireReason(t, err, entity.ReasonMismatch)

	_, err = s.Verify("222222", entity.PurposeDoor)
	require.NoError(t, err)
}

func TestOTPStore_MismatchKeepsSlot(t *testing.T) {
	s, _ := newStore()

	_, err := s.Save(record(1, "123456", entity.PurposeReset, 5*time.Minute))
	require.NoError(t, err)

	_, err = s.Verify("654321", entity.PurposeReset)
	requireReason(t, err, entity.ReasonMismatch)

	_, err = s.Verify("123456", entity.PurposeReset)
	require.NoError(t, err)
}

func TestOTPStore_ExpiredClearsSlot(t *testing.T) {
	s, clk := newStore()

	_, err := s.Save(record(1, "123456", entity.PurposeAdmin, 5*time.Minute))
	require.NoError(t, err)

	clk.Advance(5 * time.Minute)
	_, err = s.Verify("654321", entity.PurposeAdmin)
	requireReason(t, err, entity.ReasonMismatch)

	clk.Advance(time.Second)
	_, err = s.Verify("123456", entity.PurposeAdmin)
	requireReason(t, err, entity.ReasonExpired)

	_, err = s.Verify("123456", entity.PurposeAdmin)
	requireReason(t, err, entity.ReasonNotFound)
}

func TestOTPStore_Sweep(t *testing.T) {
	s, clk := newStore()

	_, err := s.Save(record(1, "111111", entity.PurposeAdmin, 5*time.Minute))
	require.NoError(t, err)
	_, err = s.Save(record(2, "222222", entity.PurposeDoor, 15*time.Minute))
	require.NoError(t, err)

	assert.Equal(t, 0, s.Sweep())

	clk.Advance(10 * time.Minute)
	assert.Equal(t, 1, s.Sweep())
	assert.Equal(t, 0, s.Sweep())
	assert.Equal(t, 1, s.Len())

	_, err = s.Verify("222222", entity.PurposeDoor)
	require.NoError(t, err)
}

func TestOTPStore_ConcurrentVerifySucceedsOnce(t *testing.T) {
	s, _ := newStore()

	_, err := s.Save(record(1, "123456", entity.PurposeDoor, 15*time.Minute))
	require.NoError(t, err)

	var (
		wg sync.WaitGroup
		mu sync.Mutex
		ok int
	)
	for range 32 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := s.Verify("123456", entity.PurposeDoor); err == nil {
				mu.Lock()
				ok++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, ok)
}

func TestOTPStore_ComparesVerbatim(t *testing.T) {
	s, _ := newStore()

	_, err := s.Save(record(1, "000042", entity.PurposeAdmin, 5*time.Minute))
	require.NoError(t, err)

	for _, code := range []string{" 000042 ", "42", "000042\n"} {
		_, err = s.Verify(code, entity.PurposeAdmin)
		requireReason(t, err, entity.ReasonMismatch)
	}

	_, err = s.Verify("000042", entity.PurposeAdmin)
	require.NoError(t, err)
}

func TestOTPStore_Discard(t *testing.T) {
	s, _ := newStore()

	first := record(1, "111111", entity.PurposeDoor, 15*time.Minute)
	second := record(2, "222222", entity.PurposeDoor, 15*time.Minute)

	_, err := s.Save(first)
	require.NoError(t, err)
	_, err = s.Save(second)
	require.NoError(t, err)

	assert.False(t, s.Discard(first), "a superseded record must not clear its successor")
	assert.Equal(t, 1, s.Len())

	assert.True(t, s.Discard(second))
	assert.Equal(t, 0, s.Len())
	assert.False(t, s.Discard(second))

	_, err = s.Verify("222222", entity.PurposeDoor)
	requireReason(t, err, entity.ReasonNotFound)
}
