package usecase

import (
	"context"
	"log/slog"
	"strings"

	"github.com/Rishu9835/DOORWISE/internal/pkg/goerror"
)

type LogEntryInput struct {
	RegNo string `validate:"required,regno"`
}

// LogEntry appends a member entry to the roster log.
func (s *Usecase) LogEntry(ctx context.Context, in LogEntryInput) error {
	ctx, span := s.startSpan(ctx, "LogEntry")
	defer span.End()

	in.RegNo = strings.TrimSpace(in.RegNo)

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	at := s.clock.Now()
	if err := s.repoRoster.AppendEntry(ctx, in.RegNo, at); err != nil {
		slog.ErrorContext(ctx, "failed to repo append entry", "reg_no", in.RegNo, "error", err)
		return rosterError(err)
	}

	if err := s.repoMessaging.PublishEntryLogged(ctx, EntryLoggedEvent{RegNo: in.RegNo, EnteredAt: at}); err != nil {
		slog.ErrorContext(ctx, "failed to publish entry logged", "reg_no", in.RegNo, "error", err)
	}

	return nil
}
