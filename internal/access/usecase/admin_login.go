package usecase

import (
	"context"
	"log/slog"
	"strings"

	"github.com/Rishu9835/DOORWISE/internal/access/entity"
	"github.com/Rishu9835/DOORWISE/internal/pkg/goerror"
	"github.com/Rishu9835/DOORWISE/internal/pkg/jwt"
)

type AdminLoginInput struct {
	Email string `validate:"required,email"`
	// OTP is compared verbatim against the issued code.
	OTP string
}

type AdminLoginOutput struct {
	// Sent is true when a code was mailed and the caller must come back with it.
	Sent        bool
	AccessToken string
}

// AdminLogin is the two-phase admin sign in. Without an OTP a code is mailed
// to the admin; with one, the code is redeemed and a session is opened.
func (s *Usecase) AdminLogin(ctx context.Context, in AdminLoginInput) (*AdminLoginOutput, error) {
	ctx, span := s.startSpan(ctx, "AdminLogin")
	defer span.End()

	in.Email = strings.TrimSpace(in.Email)

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	admins, err := s.adminEmails(ctx)
	if err != nil {
		return nil, err
	}

	if !isAdmin(admins, in.Email) {
		slog.WarnContext(ctx, "admin login attempted by non admin", "email", in.Email)
		return nil, goerror.NewBusinessWrap(entity.ErrNotAdmin, "You are not an admin", goerror.CodeBadRequest)
	}

	if in.OTP == "" {
		return s.adminLoginChallenge(ctx, in.Email)
	}

	if _, err := s.verifyOTP(ctx, in.OTP, entity.PurposeAdmin); err != nil {
		return nil, err
	}

	s.sessions.Login(in.Email)

	token, err := s.jwt.Generate(in.Email)
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate admin access token", "email", in.Email, "error", err)
		return nil, goerror.NewServer(err)
	}

	slog.InfoContext(ctx, "admin logged in", "email", in.Email)

	return &AdminLoginOutput{AccessToken: token}, nil
}

func (s *Usecase) adminLoginChallenge(ctx context.Context, email string) (*AdminLoginOutput, error) {
	ttl := s.cfg.GetMinute("modules.access.otp.admin_ttl_minutes")

	rec, err := s.newOTP(ctx, entity.PurposeAdmin, ttl)
	if err != nil {
		return nil, err
	}

	if err := s.saveOTP(ctx, rec); err != nil {
		return nil, err
	}

	msg, err := s.adminOTPMail(email, rec.Code, ttl)
	if err != nil {
		slog.ErrorContext(ctx, "failed to compose admin otp email", "error", err)
		return nil, goerror.NewServer(err)
	}

	if err := s.repoMail.Send(ctx, msg); err != nil {
		slog.ErrorContext(ctx, "failed to send admin otp email", "email", email, "error", err)
		return nil, deliveryError(err)
	}

	return &AdminLoginOutput{Sent: true}, nil
}

type AdminLogoutInput struct {
	Email string `validate:"required,email"`
}

// AdminLogout ends the session of the admin named in the bearer token. The
// body email must be that admin.
func (s *Usecase) AdminLogout(ctx context.Context, in AdminLogoutInput) error {
	ctx, span := s.startSpan(ctx, "AdminLogout")
	defer span.End()

	in.Email = strings.TrimSpace(in.Email)

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	clm := jwt.GetAuth(ctx)
	if clm == nil || !strings.EqualFold(strings.TrimSpace(clm.AdminEmail), in.Email) {
		slog.WarnContext(ctx, "logout requested for another admin", "email", in.Email)
		return goerror.NewBusinessWrap(entity.ErrUnauthorized, "unauthorized", goerror.CodeUnauthorized)
	}

	if err := s.sessions.Logout(in.Email); err != nil {
		slog.WarnContext(ctx, "logout for admin without session", "email", in.Email)
		return goerror.NewBusinessWrap(err, "Admin is not logged in", goerror.CodeBadRequest)
	}

	slog.InfoContext(ctx, "admin logged out", "email", in.Email)

	return nil
}
