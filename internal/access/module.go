package access

import (
	"context"

	"github.com/Rishu9835/DOORWISE/internal/access/inbound"
	"github.com/Rishu9835/DOORWISE/internal/access/outbound/email"
	"github.com/Rishu9835/DOORWISE/internal/access/outbound/memory"
	"github.com/Rishu9835/DOORWISE/internal/access/outbound/mq"
	accessroster "github.com/Rishu9835/DOORWISE/internal/access/outbound/roster"
	"github.com/Rishu9835/DOORWISE/internal/access/usecase"
	"github.com/Rishu9835/DOORWISE/internal/pkg/clock"
	"github.com/Rishu9835/DOORWISE/internal/pkg/config"
	"github.com/Rishu9835/DOORWISE/internal/pkg/delay"
	"github.com/Rishu9835/DOORWISE/internal/pkg/goroutine"
	"github.com/Rishu9835/DOORWISE/internal/pkg/hash"
	"github.com/Rishu9835/DOORWISE/internal/pkg/idempotency"
	"github.com/Rishu9835/DOORWISE/internal/pkg/instrument"
	"github.com/Rishu9835/DOORWISE/internal/pkg/jwt"
	"github.com/Rishu9835/DOORWISE/internal/pkg/mail"
	"github.com/Rishu9835/DOORWISE/internal/pkg/messaging"
	"github.com/Rishu9835/DOORWISE/internal/pkg/otp"
	"github.com/Rishu9835/DOORWISE/internal/pkg/roster"
	"github.com/Rishu9835/DOORWISE/internal/pkg/router"
	"github.com/Rishu9835/DOORWISE/internal/pkg/uid"
	"github.com/Rishu9835/DOORWISE/internal/pkg/validator"
)

type Dependency struct {
	Ctx         context.Context
	Roster      roster.Roster              `validate:"required"`
	Mail        mail.Mail                  `validate:"required"`
	Messaging   messaging.Publisher        `validate:"required"`
	Scheduler   *delay.Scheduler           `validate:"required"`
	Goroutine   *goroutine.Manager         `validate:"required"`
	Router      *router.Router             `validate:"required"`
	Idempotency idempotency.Idempotency    `validate:"required"`
	Config      config.Config              `validate:"required"`
	Instrument  instrument.Instrumentation `validate:"required"`
	UID         uid.NumberID               `validate:"required"`
	UUID        uid.StringID               `validate:"required"`
	HMAC        hash.Hash                  `validate:"required"`
	Bcrypt      hash.Hash                  `validate:"required"`
	Clock       clock.Clocker              `validate:"required"`
	OTP         otp.Generator              `validate:"required"`
	Validator   validator.Validator        `validate:"required"`
	JWT         jwt.JWT                    `validate:"required"`
}

func New(dep Dependency) error {
	if err := dep.Validator.Validate(dep); err != nil {
		return err
	}

	repoRoster := accessroster.NewRoster(dep.Roster, layout(dep.Config), dep.Instrument)
	repoMail := email.New(dep.Mail, dep.Instrument)
	repoMsg := mq.NewMessaging(dep.Messaging, dep.Config.GetString("messaging.topic_prefix"), dep.Instrument)

	uc := usecase.New(usecase.Dependency{
		RepoRoster:    repoRoster,
		RepoMail:      repoMail,
		RepoMessaging: repoMsg,
		Store:         memory.NewOTPStore(dep.HMAC, dep.Clock),
		Sessions:      memory.NewSessionRegistry(),
		Scheduler:     dep.Scheduler,
		Idempotency:   dep.Idempotency,
		Validator:     dep.Validator,
		Config:        dep.Config,
		OTP:           dep.OTP,
		Bcrypt:        dep.Bcrypt,
		UID:           dep.UID,
		Clock:         dep.Clock,
		JWT:           dep.JWT,
		Instrument:    dep.Instrument,
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc)
	if dep.Ctx != nil {
		inbound.RegisterSweepWorker(dep.Ctx, dep.Config, dep.Goroutine, dep.UUID, uc)
	}

	return nil
}

func layout(cfg config.Config) accessroster.Layout {
	return accessroster.Layout{
		AdminCol:          cfg.GetInt("modules.access.admin.column"),
		MemberEmailCol:    cfg.GetInt("modules.access.member.email_column"),
		MemberRegNoCol:    cfg.GetInt("modules.access.member.reg_no_column"),
		MemberPasswordCol: cfg.GetInt("modules.access.member.password_column"),
		DoorOTPCol:        cfg.GetInt("modules.access.door.otp_column"),
		DoorOTPRow:        cfg.GetInt("modules.access.door.otp_row"),
	}
}
