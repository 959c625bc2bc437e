package usecase

import (
	"context"
	"log/slog"
)

// SweepExpired drops expired codes from the store.
func (s *Usecase) SweepExpired(ctx context.Context) int {
	ctx, span := s.startSpan(ctx, "SweepExpired")
	defer span.End()

	removed := s.store.Sweep()
	if removed > 0 {
		slog.InfoContext(ctx, "expired otp records swept", "removed", removed)
	}

	return removed
}
