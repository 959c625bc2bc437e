package otp

import (
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/Rishu9835/DOORWISE/internal/pkg/clock"
	"github.com/pquerna/otp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedDraw(v int64) DrawFunc {
	return func(int64) (int64, error) { return v, nil }
}

func TestNumeric_Generate_Padding(t *testing.T) {
	tests := []struct {
		name string
		draw int64
		want string
	}{
		{name: "two digits", draw: 42, want: "000042"},
		{name: "single digit", draw: 7, want: "000007"},
		{name: "zero", draw: 0, want: "000000"},
		{name: "upper bound", draw: 999999, want: "999999"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := NewNumeric(otp.DigitsSix, clock.New(), WithDraw(fixedDraw(tt.draw)))

			got, err := gen.Generate()

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNumeric_Generate_Random(t *testing.T) {
	gen := NewNumeric(otp.DigitsSix, clock.New())
	re := regexp.MustCompile(`^[0-9]{6}$`)

	for range 500 {
		code, err := gen.Generate()
		require.NoError(t, err)
		assert.Regexp(t, re, code)
	}
}

func TestNumeric_Generate_DrawBound(t *testing.T) {
	var bound int64
	gen := NewNumeric(otp.DigitsEight, clock.New(), WithDraw(func(n int64) (int64, error) {
		bound = n
		return 5, nil
	}))

	code, err := gen.Generate()

	require.NoError(t, err)
	assert.Equal(t, int64(100000000), bound)
	assert.Equal(t, "00000005", code)
}

func TestNumeric_Generate_DrawError(t *testing.T) {
	errDraw := errors.New("entropy exhausted")
	gen := NewNumeric(otp.DigitsSix, clock.New(), WithDraw(func(int64) (int64, error) { return 0, errDraw }))

	_, err := gen.Generate()

	assert.ErrorIs(t, err, errDraw)
}

func TestNumeric_ExpiryFrom(t *testing.T) {
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	gen := NewNumeric(otp.DigitsSix, clock.NewManual(now))

	assert.Equal(t, now.Add(5*time.Minute), gen.ExpiryFrom(5*time.Minute))
	assert.Equal(t, now.Add(15*time.Minute), gen.ExpiryFrom(15*time.Minute))
}

func TestNumeric_Between(t *testing.T) {
	gen := NewNumeric(otp.DigitsSix, clock.New())

	for range 1000 {
		v, err := gen.Between(1000, 9999)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, v, int64(1000))
		assert.LessOrEqual(t, v, int64(9999))
	}

	_, err := gen.Between(10, 1)
	assert.ErrorIs(t, err, ErrInvalidRange)

	v, err := gen.Between(5, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(5), v)
}

func TestNewNumeric_InvalidWidthFallsBack(t *testing.T) {
	gen := NewNumeric(otp.Digits(12), clock.New(), WithDraw(fixedDraw(1)))

	code, err := gen.Generate()

	require.NoError(t, err)
	assert.Equal(t, "000001", code)
}
