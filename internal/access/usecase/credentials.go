package usecase

import (
	"context"
	"log/slog"
)

type ListCredentialsOutput struct {
	Passwords []string
}

// ListCredentials returns the member password column as stored in the roster.
func (s *Usecase) ListCredentials(ctx context.Context) (*ListCredentialsOutput, error) {
	ctx, span := s.startSpan(ctx, "ListCredentials")
	defer span.End()

	admin, err := s.requireAdmin(ctx)
	if err != nil {
		return nil, err
	}

	passwords, err := s.repoRoster.MemberPasswords(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get member passwords", "error", err)
		return nil, rosterError(err)
	}

	slog.InfoContext(ctx, "member credentials viewed", "admin", admin, "rows", len(passwords))

	return &ListCredentialsOutput{Passwords: passwords}, nil
}
