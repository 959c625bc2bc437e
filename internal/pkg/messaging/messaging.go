package messaging

import (
	"context"
	"errors"
	"io"
	"time"
)

var (
	// ErrDestinationRequired is returned when Publish gets an empty topic or subject.
	ErrDestinationRequired = errors.New("messaging: destination is required")
	// ErrClosed is returned when publishing on a closed publisher.
	ErrClosed = errors.New("messaging: publisher is closed")
)

// Publisher sends messages to a destination (Kafka topic or NATS subject).
type Publisher interface {
	io.Closer
	Publish(ctx context.Context, destination string, msg Message) (Result, error)
}

// Message is a broker-agnostic outgoing message.
type Message struct {
	// Key is used for partitioning where the broker supports it.
	Key []byte
	// Body is the payload.
	Body []byte
	// Headers are copied to broker headers.
	Headers map[string]string
}

// Result describes an accepted publish.
type Result struct {
	Destination string
	Timestamp   time.Time
}
