// Package otp generates fixed-width numeric one-time passcodes and the
// bounded random integers used when deriving member credentials.
package otp

import (
	"crypto/rand"
	"errors"
	"math/big"
	"time"

	"github.com/Rishu9835/DOORWISE/internal/pkg/clock"
	"github.com/pquerna/otp"
)

// ErrInvalidRange is returned by Between when min is greater than max.
var ErrInvalidRange = errors.New("otp: invalid range")

// Generator produces numeric codes and expiry instants.
type Generator interface {
	// Generate returns a zero-padded numeric code of the configured width.
	Generate() (string, error)
	// ExpiryFrom returns now plus ttl.
	ExpiryFrom(ttl time.Duration) time.Time
	// Between returns a uniform integer in [min, max].
	Between(min, max int64) (int64, error)
}

// DrawFunc returns a uniform integer in [0, n).
type DrawFunc func(n int64) (int64, error)

// Option customizes a Numeric generator.
type Option func(*Numeric)

// WithDraw replaces the crypto/rand source.
func WithDraw(fn DrawFunc) Option {
	return func(n *Numeric) {
		if fn != nil {
			n.draw = fn
		}
	}
}

// Numeric implements Generator with crypto/rand.
type Numeric struct {
	digits otp.Digits
	clock  clock.Clocker
	draw   DrawFunc
}

// NewNumeric builds a generator for codes of the given width. Widths outside
// 1..9 fall back to six digits.
func NewNumeric(digits otp.Digits, clk clock.Clocker, opts ...Option) *Numeric {
	if digits < 1 || digits > 9 {
		digits = otp.DigitsSix
	}

	n := &Numeric{
		digits: digits,
		clock:  clk,
		draw:   cryptoDraw,
	}
	for _, opt := range opts {
		opt(n)
	}

	return n
}

// Generate draws from [0, 10^width) and pads with leading zeros.
func (n *Numeric) Generate() (string, error) {
	v, err := n.draw(pow10(n.digits.Length()))
	if err != nil {
		return "", err
	}

	return n.digits.Format(int32(v)), nil
}

// ExpiryFrom returns the clock's now plus ttl.
func (n *Numeric) ExpiryFrom(ttl time.Duration) time.Time {
	return n.clock.Now().Add(ttl)
}

// Between returns a uniform integer in [min, max].
func (n *Numeric) Between(min, max int64) (int64, error) {
	if min > max {
		return 0, ErrInvalidRange
	}

	v, err := n.draw(max - min + 1)
	if err != nil {
		return 0, err
	}

	return min + v, nil
}

func cryptoDraw(n int64) (int64, error) {
	v, err := rand.Int(rand.Reader, big.NewInt(n))
	if err != nil {
		return 0, err
	}
	return v.Int64(), nil
}

func pow10(width int) int64 {
	v := int64(1)
	for range width {
		v *= 10
	}
	return v
}
