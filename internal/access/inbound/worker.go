package inbound

import (
	"context"
	"log/slog"
	"time"

	"github.com/Rishu9835/DOORWISE/internal/pkg/config"
	"github.com/Rishu9835/DOORWISE/internal/pkg/goroutine"
	"github.com/Rishu9835/DOORWISE/internal/pkg/instrument"
	"github.com/Rishu9835/DOORWISE/internal/pkg/uid"
)

const defaultSweepInterval = 10 * time.Minute

// RegisterSweepWorker periodically removes expired codes until ctx is done.
func RegisterSweepWorker(ctx context.Context, cfg config.Config, routine *goroutine.Manager, uuid uid.StringID, uc ucSweeper) {
	interval := cfg.GetMinute("modules.access.otp.sweep_interval_minutes")
	if interval <= 0 {
		interval = defaultSweepInterval
	}

	ok := routine.Go(ctx, func(ctx context.Context) error {
		slog.InfoContext(ctx, "Running job for sweeping expired otp", "interval", interval.String())
		runSweeper(ctx, time.NewTicker(interval), uuid, uc)
		return nil
	})
	if !ok {
		slog.ErrorContext(ctx, "failed to start otp sweep worker")
	}
}

func runSweeper(ctx context.Context, ticker *time.Ticker, uuid uid.StringID, uc ucSweeper) {
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			uc.SweepExpired(instrument.SetCorrelationID(ctx, uuid.Generate()))
		}
	}
}
