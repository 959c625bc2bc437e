package messaging

import (
	"context"
	"time"
)

// Noop accepts and discards every message.
type Noop struct{}

// NewNoop returns a publisher that drops messages.
func NewNoop() Noop { return Noop{} }

// Publish validates the destination and drops msg.
func (Noop) Publish(ctx context.Context, destination string, _ Message) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	if destination == "" {
		return Result{}, ErrDestinationRequired
	}
	return Result{Destination: destination, Timestamp: time.Now()}, nil
}

// Close is a no-op.
func (Noop) Close() error { return nil }
