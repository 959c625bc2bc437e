package inbound

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Rishu9835/DOORWISE/internal/pkg/config"
	"github.com/Rishu9835/DOORWISE/internal/pkg/goroutine"
	"github.com/Rishu9835/DOORWISE/internal/pkg/instrument"
	"github.com/Rishu9835/DOORWISE/internal/pkg/uid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingSweeper struct {
	calls atomic.Int64
	cids  chan string
}

func (c *countingSweeper) SweepExpired(ctx context.Context) int {
	c.calls.Add(1)
	select {
	case c.cids <- instrument.GetCorrelationID(ctx):
	default:
	}
	return 0
}

func TestRunSweeper(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	sw := &countingSweeper{cids: make(chan string, 1)}

	done := make(chan struct{})
	go func() {
		runSweeper(ctx, time.NewTicker(5*time.Millisecond), uid.NewUUID(), sw)
		close(done)
	}()

	select {
	case cid := <-sw.cids:
		assert.NotEmpty(t, cid)
	case <-time.After(time.Second):
		t.Fatal("sweeper never ran")
	}

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop on cancel")
	}
	assert.GreaterOrEqual(t, sw.calls.Load(), int64(1))
}

func TestRegisterSweepWorker_StopsWithContext(t *testing.T) {
	cfg, err := config.NewViperFromBytes("yaml", []byte("app: {}"))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	routine := goroutine.NewManager(2)

	RegisterSweepWorker(ctx, cfg, routine, uid.NewUUID(), &countingSweeper{cids: make(chan string, 1)})
	assert.Equal(t, int64(1), routine.Running())

	cancel()
	require.NoError(t, routine.Wait())
}
