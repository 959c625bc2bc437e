package usecase

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/Rishu9835/DOORWISE/internal/access/entity"
	"github.com/Rishu9835/DOORWISE/internal/pkg/clock"
	"github.com/Rishu9835/DOORWISE/internal/pkg/config"
	"github.com/Rishu9835/DOORWISE/internal/pkg/delay"
	"github.com/Rishu9835/DOORWISE/internal/pkg/goerror"
	"github.com/Rishu9835/DOORWISE/internal/pkg/hash"
	"github.com/Rishu9835/DOORWISE/internal/pkg/idempotency"
	"github.com/Rishu9835/DOORWISE/internal/pkg/instrument"
	"github.com/Rishu9835/DOORWISE/internal/pkg/jwt"
	"github.com/Rishu9835/DOORWISE/internal/pkg/mail"
	"github.com/Rishu9835/DOORWISE/internal/pkg/otp"
	"github.com/Rishu9835/DOORWISE/internal/pkg/uid"
	"github.com/Rishu9835/DOORWISE/internal/pkg/validator"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
)

type DoorIssuedEvent struct {
	OTPID      int64
	IssuedBy   string
	ExpiresAt  time.Time
	Recipients int
}

type DoorUnlockedEvent struct {
	OTPID      int64
	UnlockedAt time.Time
}

type EntryLoggedEvent struct {
	RegNo     string
	EnteredAt time.Time
}

type CredentialsRotatedEvent struct {
	Trigger   string
	Report    entity.RotationReport
	RotatedAt time.Time
}

type repoMessaging interface {
	PublishDoorIssued(ctx context.Context, msg DoorIssuedEvent) error
	PublishDoorUnlocked(ctx context.Context, msg DoorUnlockedEvent) error
	PublishEntryLogged(ctx context.Context, msg EntryLoggedEvent) error
	PublishCredentialsRotated(ctx context.Context, msg CredentialsRotatedEvent) error
}

type repoRoster interface {
	AdminEmails(ctx context.Context) ([]string, error)
	MemberEmails(ctx context.Context) ([]string, error)
	MemberRegNos(ctx context.Context) ([]string, error)
	MemberPasswords(ctx context.Context) ([]string, error)

	WriteDoorCode(ctx context.Context, code string) error
	WritePassword(ctx context.Context, row int, password string) error
	AppendEntry(ctx context.Context, regNo string, at time.Time) error
}

type repoMail interface {
	Send(ctx context.Context, msg mail.Message) error
}

type otpStore interface {
	Save(rec entity.OTPRecord) (*entity.OTPRecord, error)
	Verify(code string, purpose entity.Purpose) (entity.OTPRecord, error)
	Discard(rec entity.OTPRecord) bool
	Sweep() int
}

type sessionRegistry interface {
	Login(email string)
	Logout(email string) error
	IsAuthenticated(email string) bool
}

type scheduler interface {
	Schedule(key string, d time.Duration, task delay.Task)
	Cancel(key string) bool
}

type Usecase struct {
	repoRoster    repoRoster
	repoMail      repoMail
	repoMessaging repoMessaging
	store         otpStore
	sessions      sessionRegistry
	scheduler     scheduler
	idemp         idempotency.Idempotency
	validator     validator.Validator
	cfg           config.Config
	otp           otp.Generator
	bcrypt        hash.Hash
	uid           uid.NumberID
	clock         clock.Clocker
	jwt           jwt.JWT
	ins           instrument.Instrumentation

	otpIssued   metric.Int64Counter
	otpVerified metric.Int64Counter
}

type Dependency struct {
	RepoRoster    repoRoster
	RepoMail      repoMail
	RepoMessaging repoMessaging
	Store         otpStore
	Sessions      sessionRegistry
	Scheduler     scheduler
	Idempotency   idempotency.Idempotency
	Validator     validator.Validator
	Config        config.Config
	OTP           otp.Generator
	Bcrypt        hash.Hash
	UID           uid.NumberID
	Clock         clock.Clocker
	JWT           jwt.JWT
	Instrument    instrument.Instrumentation
}

func New(dep Dependency) *Usecase {
	meter := dep.Instrument.Meter("access.usecase")

	issued, err := meter.Int64Counter("access.otp.issued", metric.WithDescription("OTP codes issued, by purpose"))
	if err != nil {
		slog.Warn("failed to create otp issued counter", "error", err)
		issued = noop.Int64Counter{}
	}

	verified, err := meter.Int64Counter("access.otp.verified", metric.WithDescription("OTP verification attempts, by purpose and result"))
	if err != nil {
		slog.Warn("failed to create otp verified counter", "error", err)
		verified = noop.Int64Counter{}
	}

	return &Usecase{
		repoRoster:    dep.RepoRoster,
		repoMail:      dep.RepoMail,
		repoMessaging: dep.RepoMessaging,
		store:         dep.Store,
		sessions:      dep.Sessions,
		scheduler:     dep.Scheduler,
		idemp:         dep.Idempotency,
		validator:     dep.Validator,
		cfg:           dep.Config,
		otp:           dep.OTP,
		bcrypt:        dep.Bcrypt,
		uid:           dep.UID,
		clock:         dep.Clock,
		jwt:           dep.JWT,
		ins:           dep.Instrument,
		otpIssued:     issued,
		otpVerified:   verified,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("access.usecase").Start(ctx, name)
}

// requireAdmin returns the email of the caller when it carries a valid token
// and still holds a session.
func (s *Usecase) requireAdmin(ctx context.Context) (string, error) {
	clm := jwt.GetAuth(ctx)
	if clm == nil {
		return "", goerror.NewBusinessWrap(entity.ErrUnauthorized, "unauthorized", goerror.CodeUnauthorized)
	}

	if !s.sessions.IsAuthenticated(clm.AdminEmail) {
		slog.WarnContext(ctx, "token presented without an active admin session", "email", clm.AdminEmail)
		return "", goerror.NewBusinessWrap(entity.ErrUnauthorized, "unauthorized", goerror.CodeUnauthorized)
	}

	return clm.AdminEmail, nil
}

// adminEmails reads the admin column. When the roster is unreachable the
// configured fallback list is used instead, if there is one.
func (s *Usecase) adminEmails(ctx context.Context) ([]string, error) {
	admins, err := s.repoRoster.AdminEmails(ctx)
	if err == nil {
		return admins, nil
	}

	fallback := s.cfg.GetArray("modules.access.admin.fallback_emails")
	if len(fallback) == 0 {
		slog.ErrorContext(ctx, "failed to repo get admin emails", "error", err)
		return nil, rosterError(err)
	}

	slog.WarnContext(ctx, "roster admin lookup failed, using fallback admin list", "admins", len(fallback), "error", err)

	return fallback, nil
}

func isAdmin(admins []string, email string) bool {
	for _, a := range admins {
		if strings.EqualFold(strings.TrimSpace(a), email) {
			return true
		}
	}
	return false
}
