package inbound

import (
	"context"

	"github.com/Rishu9835/DOORWISE/internal/access/usecase"
)

type ucSweeper interface {
	SweepExpired(ctx context.Context) int
}

type uc interface {
	ucSweeper

	AdminLogin(ctx context.Context, in usecase.AdminLoginInput) (*usecase.AdminLoginOutput, error)
	AdminLogout(ctx context.Context, in usecase.AdminLogoutInput) error

	DoorOTP(ctx context.Context) (*usecase.DoorOTPOutput, error)
	DoorUnlock(ctx context.Context, in usecase.DoorUnlockInput) error

	PasswordChange(ctx context.Context, in usecase.PasswordChangeInput) (*usecase.PasswordChangeOutput, error)
	ListCredentials(ctx context.Context) (*usecase.ListCredentialsOutput, error)

	LogEntry(ctx context.Context, in usecase.LogEntryInput) error
}
