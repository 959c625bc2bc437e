package messaging

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/nats-io/nats.go"
)

// ErrNATSURLRequired is returned when the NATS server URL is missing.
var ErrNATSURLRequired = errors.New("messaging: nats url is required")

// NATSConfig configures the NATS publisher.
type NATSConfig struct {
	URL     string
	Options []nats.Option
}

// NATS publishes core NATS messages and flushes after each publish.
type NATS struct {
	conn *nats.Conn

	mu     sync.RWMutex
	closed bool
}

// NewNATS connects to the NATS server.
func NewNATS(cfg NATSConfig) (*NATS, error) {
	if cfg.URL == "" {
		return nil, ErrNATSURLRequired
	}

	conn, err := nats.Connect(cfg.URL, cfg.Options...)
	if err != nil {
		return nil, fmt.Errorf("messaging: nats connect: %w", err)
	}

	return &NATS{conn: conn}, nil
}

// Publish sends msg to the subject destination.
func (n *NATS) Publish(ctx context.Context, destination string, msg Message) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	if destination == "" {
		return Result{}, ErrDestinationRequired
	}

	n.mu.RLock()
	defer n.mu.RUnlock()
	if n.closed {
		return Result{}, ErrClosed
	}

	if err := n.conn.PublishMsg(natsMsg(destination, msg)); err != nil {
		return Result{}, fmt.Errorf("messaging: nats publish: %w", err)
	}
	if err := n.conn.Flush(); err != nil {
		return Result{}, fmt.Errorf("messaging: nats flush: %w", err)
	}

	return Result{Destination: destination, Timestamp: time.Now()}, nil
}

// Close drains and closes the connection.
func (n *NATS) Close() error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.closed {
		return nil
	}
	n.closed = true

	err := n.conn.Drain()
	n.conn.Close()
	return err
}

func natsMsg(subject string, msg Message) *nats.Msg {
	out := nats.NewMsg(subject)
	out.Data = msg.Body
	for k, v := range msg.Headers {
		if k != "" {
			out.Header.Set(k, v)
		}
	}
	return out
}
