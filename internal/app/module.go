package app

import (
	"log/slog"
	"os"

	"github.com/Rishu9835/DOORWISE/internal/access"
)

func (a *App) initModules() {
	if err := access.New(access.Dependency{
		Ctx:         a.ctx,
		Roster:      a.roster,
		Mail:        a.mail,
		Messaging:   a.messaging,
		Scheduler:   a.scheduler,
		Goroutine:   a.goroutine,
		Router:      a.router,
		Idempotency: a.idemp,
		Config:      a.config,
		Instrument:  a.ins,
		UID:         a.uid,
		UUID:        a.uuid,
		HMAC:        a.hmac,
		Bcrypt:      a.bcrypt,
		Clock:       a.clock,
		OTP:         a.otp,
		Validator:   a.validator,
		JWT:         a.jwt,
	}); err != nil {
		slog.Error("failed to init module access", "error", err)
		os.Exit(1)
	}
}
