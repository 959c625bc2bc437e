// Package idempotency guards one-at-a-time operations with a Redis key whose
// value records the operation state.
package idempotency

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	// ErrAlreadyInProgress is returned when another caller holds the key.
	ErrAlreadyInProgress = errors.New("operation already in progress")
	// ErrAlreadyCompleted is returned while a completed state is retained.
	ErrAlreadyCompleted = errors.New("operation already completed")
	// ErrInvalidState is returned when the key holds an unknown value.
	ErrInvalidState = errors.New("invalid state")
)

// State is the value stored under a tracked key.
type State string

const (
	StateNone       State = "none"
	StateInProgress State = "in_progress"
	StateCompleted  State = "completed"
	StateError      State = "error"
)

func (s State) String() string {
	return string(s)
}

// Idempotency runs fn at most once per key at a time.
type Idempotency interface {
	Exec(ctx context.Context, key string, fn func(context.Context) error, opts ...Option) error
}

const (
	defaultPrefix       = "idempotency:"
	defaultLockDuration = time.Minute
	defaultStateTTL     = time.Minute
)

// StateTracker implements Idempotency on Redis.
type StateTracker struct {
	client redis.UniversalClient
	prefix string
}

// TrackerOption configures a StateTracker.
type TrackerOption func(*StateTracker)

// WithPrefix sets the namespace prepended to every key.
func WithPrefix(prefix string) TrackerOption {
	return func(s *StateTracker) {
		if prefix != "" {
			s.prefix = prefix
		}
	}
}

// New returns a StateTracker using client.
func New(client redis.UniversalClient, opts ...TrackerOption) *StateTracker {
	s := &StateTracker{client: client, prefix: defaultPrefix}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type execOptions struct {
	lockDuration time.Duration
	stateTTL     time.Duration
}

// Option configures a single Exec call.
type Option func(*execOptions)

// WithLockDuration bounds how long the in-progress state lives if the caller dies.
func WithLockDuration(d time.Duration) Option {
	return func(o *execOptions) { o.lockDuration = d }
}

// WithStateTTL sets how long the completed state is kept. A negative value
// releases the key right after success.
func WithStateTTL(d time.Duration) Option {
	return func(o *execOptions) { o.stateTTL = d }
}

// Acquire marks key in progress when it is free and otherwise reports the
// state currently held.
func (s *StateTracker) Acquire(ctx context.Context, key string, lockDuration time.Duration) (State, error) {
	fk := s.prefix + key

	for range 2 {
		ok, err := s.client.SetNX(ctx, fk, StateInProgress.String(), lockDuration).Result()
		if err != nil {
			return StateError, err
		}
		if ok {
			return StateNone, nil
		}

		current, err := s.client.Get(ctx, fk).Result()
		if errors.Is(err, redis.Nil) {
			// expired between SETNX and GET
			continue
		}
		if err != nil {
			return StateError, err
		}

		switch State(current) {
		case StateInProgress, StateCompleted:
			return State(current), nil
		default:
			return StateError, ErrInvalidState
		}
	}

	return StateError, ErrInvalidState
}

// MarkCompleted stores the completed state for ttl.
func (s *StateTracker) MarkCompleted(ctx context.Context, key string, ttl time.Duration) error {
	return s.client.Set(ctx, s.prefix+key, StateCompleted.String(), ttl).Err()
}

// Release deletes key so the operation can run again.
func (s *StateTracker) Release(ctx context.Context, key string) error {
	return s.client.Del(ctx, s.prefix+key).Err()
}

// Exec runs fn when key is free. A failed fn releases the key so the caller
// may retry; a successful one keeps the completed state for the state TTL.
func (s *StateTracker) Exec(ctx context.Context, key string, fn func(context.Context) error, opts ...Option) error {
	o := execOptions{lockDuration: defaultLockDuration, stateTTL: defaultStateTTL}
	for _, opt := range opts {
		opt(&o)
	}
	if o.lockDuration <= 0 {
		o.lockDuration = defaultLockDuration
	}
	if o.stateTTL == 0 {
		o.stateTTL = defaultStateTTL
	}

	state, err := s.Acquire(ctx, key, o.lockDuration)
	if err != nil {
		return err
	}
	switch state {
	case StateInProgress:
		return ErrAlreadyInProgress
	case StateCompleted:
		return ErrAlreadyCompleted
	}

	if err := fn(ctx); err != nil {
		// the caller's context may already be done; release regardless
		if relErr := s.Release(context.WithoutCancel(ctx), key); relErr != nil {
			return errors.Join(err, relErr)
		}
		return err
	}

	if o.stateTTL < 0 {
		return s.Release(context.WithoutCancel(ctx), key)
	}
	return s.MarkCompleted(context.WithoutCancel(ctx), key, o.stateTTL)
}
