package goroutine

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_GoAndWait(t *testing.T) {
	m := NewManager(4)
	errBoom := errors.New("boom")

	var mu sync.Mutex
	done := 0
	for i := range 3 {
		started := m.Go(context.Background(), func(context.Context) error {
			mu.Lock()
			done++
			mu.Unlock()
			if i == 1 {
				return errBoom
			}
			return nil
		})
		require.True(t, started)
	}

	err := m.Wait()

	assert.ErrorIs(t, err, errBoom)
	assert.Equal(t, 3, done)
	assert.Equal(t, int64(0), m.Running())
}

func TestManager_ClosedRejects(t *testing.T) {
	m := NewManager(1)
	require.NoError(t, m.Wait())

	assert.False(t, m.Go(context.Background(), func(context.Context) error { return nil }))
}

func TestManager_CapacityRejects(t *testing.T) {
	m := NewManager(1)
	release := make(chan struct{})
	started := make(chan struct{})

	require.True(t, m.Go(context.Background(), func(context.Context) error {
		close(started)
		<-release
		return nil
	}))
	<-started

	assert.False(t, m.Go(context.Background(), func(context.Context) error { return nil }))
	assert.Equal(t, int64(1), m.Running())

	close(release)
	require.NoError(t, m.Wait())
}

func TestManager_RecoversPanic(t *testing.T) {
	m := NewManager(1)

	require.True(t, m.Go(context.Background(), func(context.Context) error {
		panic("unexpected")
	}))

	assert.NoError(t, m.Wait())
}

func TestManager_CanceledContextSkipsTask(t *testing.T) {
	m := NewManager(1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ran := false
	m.Go(ctx, func(context.Context) error {
		ran = true
		return nil
	})

	require.NoError(t, m.Wait())
	assert.False(t, ran)
}

func TestManager_Nil(t *testing.T) {
	var m *Manager
	assert.False(t, m.Go(context.Background(), func(context.Context) error { return nil }))
	assert.NoError(t, m.Wait())
	assert.Equal(t, int64(0), m.Running())
}
