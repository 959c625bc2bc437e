package delay

import (
	"context"
	"testing"
	"time"

	"github.com/Rishu9835/DOORWISE/internal/pkg/goroutine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduler_Fires(t *testing.T) {
	s := New(context.Background(), goroutine.NewManager(2))
	done := make(chan string, 1)

	s.Schedule("a", 10*time.Millisecond, func(context.Context) error {
		done <- "a"
		return nil
	})
	assert.Equal(t, int64(1), s.Pending())

	select {
	case got := <-done:
		assert.Equal(t, "a", got)
	case <-time.After(2 * time.Second):
		t.Fatal("task did not fire")
	}

	assert.Eventually(t, func() bool { return s.Fired() == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, int64(0), s.Pending())
}

func TestScheduler_Cancel(t *testing.T) {
	s := New(context.Background(), goroutine.NewManager(2))
	fired := make(chan struct{}, 1)

	s.Schedule("a", 30*time.Millisecond, func(context.Context) error {
		fired <- struct{}{}
		return nil
	})

	assert.True(t, s.Cancel("a"))
	assert.False(t, s.Cancel("a"))
	assert.Equal(t, int64(0), s.Pending())

	select {
	case <-fired:
		t.Fatal("cancelled task fired")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestScheduler_RescheduleReplaces(t *testing.T) {
	s := New(context.Background(), goroutine.NewManager(2))
	got := make(chan int, 2)

	s.Schedule("door", 20*time.Millisecond, func(context.Context) error {
		got <- 1
		return nil
	})
	s.Schedule("door", 20*time.Millisecond, func(context.Context) error {
		got <- 2
		return nil
	})
	assert.Equal(t, int64(1), s.Pending())

	select {
	case v := <-got:
		assert.Equal(t, 2, v)
	case <-time.After(2 * time.Second):
		t.Fatal("task did not fire")
	}

	select {
	case v := <-got:
		t.Fatalf("replaced task fired: %d", v)
	case <-time.After(80 * time.Millisecond):
	}
}

func TestScheduler_Close(t *testing.T) {
	s := New(context.Background(), goroutine.NewManager(2))
	fired := make(chan struct{}, 1)

	s.Schedule("a", 20*time.Millisecond, func(context.Context) error {
		fired <- struct{}{}
		return nil
	})
	require.NoError(t, s.Close())
	s.Schedule("b", time.Millisecond, func(context.Context) error {
		fired <- struct{}{}
		return nil
	})

	assert.Equal(t, int64(0), s.Pending())
	select {
	case <-fired:
		t.Fatal("task fired after close")
	case <-time.After(80 * time.Millisecond):
	}
}
