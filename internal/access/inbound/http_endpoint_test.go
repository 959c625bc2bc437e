package inbound

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Rishu9835/DOORWISE/internal/access/entity"
	"github.com/Rishu9835/DOORWISE/internal/access/usecase"
	"github.com/Rishu9835/DOORWISE/internal/pkg/clock"
	"github.com/Rishu9835/DOORWISE/internal/pkg/config"
	"github.com/Rishu9835/DOORWISE/internal/pkg/goerror"
	"github.com/Rishu9835/DOORWISE/internal/pkg/jwt"
	"github.com/Rishu9835/DOORWISE/internal/pkg/router"
	"github.com/Rishu9835/DOORWISE/internal/pkg/uid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockUC struct{ mock.Mock }

func (m *mockUC) SweepExpired(ctx context.Context) int {
	return m.Called(ctx).Int(0)
}

func (m *mockUC) AdminLogin(ctx context.Context, in usecase.AdminLoginInput) (*usecase.AdminLoginOutput, error) {
	args := m.Called(ctx, in)
	out, _ := args.Get(0).(*usecase.AdminLoginOutput)
	return out, args.Error(1)
}

func (m *mockUC) AdminLogout(ctx context.Context, in usecase.AdminLogoutInput) error {
	return m.Called(ctx, in).Error(0)
}

func (m *mockUC) DoorOTP(ctx context.Context) (*usecase.DoorOTPOutput, error) {
	args := m.Called(ctx)
	out, _ := args.Get(0).(*usecase.DoorOTPOutput)
	return out, args.Error(1)
}

func (m *mockUC) DoorUnlock(ctx context.Context, in usecase.DoorUnlockInput) error {
	return m.Called(ctx, in).Error(0)
}

func (m *mockUC) PasswordChange(ctx context.Context, in usecase.PasswordChangeInput) (*usecase.PasswordChangeOutput, error) {
	args := m.Called(ctx, in)
	out, _ := args.Get(0).(*usecase.PasswordChangeOutput)
	return out, args.Error(1)
}

func (m *mockUC) ListCredentials(ctx context.Context) (*usecase.ListCredentialsOutput, error) {
	args := m.Called(ctx)
	out, _ := args.Get(0).(*usecase.ListCredentialsOutput)
	return out, args.Error(1)
}

func (m *mockUC) LogEntry(ctx context.Context, in usecase.LogEntryInput) error {
	return m.Called(ctx, in).Error(0)
}

type envelope struct {
	Message string            `json:"message"`
	Data    json.RawMessage   `json:"data"`
	Error   map[string]string `json:"error"`
}

func setup(t *testing.T) (*router.Router, *mockUC, jwt.JWT) {
	t.Helper()

	cfg, err := config.NewViperFromBytes("yaml", []byte("app: {}"))
	require.NoError(t, err)

	tokens, err := jwt.NewHS512(jwt.Config{
		Secret: []byte(strings.Repeat("x", 64)),
		Issuer: "doorwise",
		TTL:    time.Hour,
		Clock:  clock.New(),
		UUID:   uid.NewUUID(),
	})
	require.NoError(t, err)

	r := router.NewRouter(router.Config{Config: cfg, UUID: uid.NewUUID(), JWT: tokens})
	uc := new(mockUC)
	RegisterHTTPEndpoint(r, uc)

	return r, uc, tokens
}

func do(t *testing.T, h http.Handler, method, path, body, token string) (int, envelope) {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())

	return rec.Code, env
}

func TestAdminLogin(t *testing.T) {
	r, uc, _ := setup(t)

	uc.On("AdminLogin", mock.Anything, usecase.AdminLoginInput{Email: "admin@club.org"}).
		Return(&usecase.AdminLoginOutput{Sent: true}, nil)
	uc.On("AdminLogin", mock.Anything, usecase.AdminLoginInput{Email: "admin@club.org", OTP: "123456"}).
		Return(&usecase.AdminLoginOutput{AccessToken: "tok"}, nil)

	code, env := do(t, r, http.MethodPost, "/api/v1/access/admin/login", `{"email":"admin@club.org"}`, "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "OTP sent to your email", env.Message)

	code, env = do(t, r, http.MethodPost, "/api/v1/access/admin/login", `{"email":"admin@club.org","otp":"123456"}`, "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Logged in", env.Message)
	assert.JSONEq(t, `{"access_token":"tok"}`, string(env.Data))
}

func TestAdminLogin_NotAdmin(t *testing.T) {
	r, uc, _ := setup(t)

	uc.On("AdminLogin", mock.Anything, mock.Anything).
		Return(nil, goerror.NewBusinessWrap(entity.ErrNotAdmin, "You are not an admin", goerror.CodeBadRequest))

	code, env := do(t, r, http.MethodPost, "/api/v1/access/admin/login", `{"email":"guest@club.org"}`, "")

	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "You are not an admin", env.Message)
}

func TestAdminLogin_UnknownField(t *testing.T) {
	r, uc, _ := setup(t)

	code, _ := do(t, r, http.MethodPost, "/api/v1/access/admin/login", `{"email":"a@club.org","password":"x"}`, "")

	assert.Equal(t, http.StatusBadRequest, code)
	uc.AssertNotCalled(t, "AdminLogin", mock.Anything, mock.Anything)
}

func TestAdminLogout(t *testing.T) {
	r, uc, tokens := setup(t)

	code, _ := do(t, r, http.MethodPost, "/api/v1/access/admin/logout", `{"email":"admin@club.org"}`, "")
	assert.Equal(t, http.StatusUnauthorized, code)
	uc.AssertNotCalled(t, "AdminLogout", mock.Anything, mock.Anything)

	token, err := tokens.Generate("admin@club.org")
	require.NoError(t, err)

	uc.On("AdminLogout", mock.MatchedBy(func(ctx context.Context) bool {
		clm := jwt.GetAuth(ctx)
		return clm != nil && clm.AdminEmail == "admin@club.org"
	}), usecase.AdminLogoutInput{Email: "admin@club.org"}).Return(nil)

	code, env := do(t, r, http.MethodPost, "/api/v1/access/admin/logout", `{"email":"admin@club.org"}`, token)

	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Logged out", env.Message)
}

func TestDoorOTP_RequiresToken(t *testing.T) {
	r, uc, tokens := setup(t)

	code, _ := do(t, r, http.MethodPost, "/api/v1/access/door/otp", "", "")
	assert.Equal(t, http.StatusUnauthorized, code)
	uc.AssertNotCalled(t, "DoorOTP", mock.Anything)

	token, err := tokens.Generate("admin@club.org")
	require.NoError(t, err)

	exp := time.Date(2026, 5, 4, 8, 15, 0, 0, time.UTC)
	uc.On("DoorOTP", mock.MatchedBy(func(ctx context.Context) bool {
		clm := jwt.GetAuth(ctx)
		return clm != nil && clm.AdminEmail == "admin@club.org"
	})).Return(&usecase.DoorOTPOutput{ExpiresAt: exp, Recipients: 2}, nil)

	code, env := do(t, r, http.MethodPost, "/api/v1/access/door/otp", "", token)
	assert.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"expires_at":"2026-05-04T08:15:00Z","recipients":2}`, string(env.Data))
}

func TestDoorUnlock(t *testing.T) {
	r, uc, _ := setup(t)

	uc.On("DoorUnlock", mock.Anything, usecase.DoorUnlockInput{OTP: "123456"}).Return(nil)
	uc.On("DoorUnlock", mock.Anything, usecase.DoorUnlockInput{OTP: "000000"}).
		Return(goerror.NewBusinessWrap(entity.NewOTPError(entity.ReasonMismatch), "Wrong OTP", goerror.CodeBadRequest, "reason", "MISMATCH"))

	code, env := do(t, r, http.MethodPost, "/api/v1/access/door/unlock", `{"otp":"123456"}`, "")
	assert.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"success":true}`, string(env.Data))

	code, env = do(t, r, http.MethodPost, "/api/v1/access/door/unlock", `{"otp":"000000"}`, "")
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, map[string]string{"reason": "MISMATCH"}, env.Error)
}

func TestLogEntry(t *testing.T) {
	r, uc, _ := setup(t)

	uc.On("LogEntry", mock.Anything, usecase.LogEntryInput{RegNo: "RA2211003010123"}).Return(nil)

	code, env := do(t, r, http.MethodPost, "/api/v1/access/entries", `{"reg_no":"RA2211003010123"}`, "")

	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "User entered", env.Message)
}

func TestPasswordChange(t *testing.T) {
	r, uc, _ := setup(t)

	uc.On("PasswordChange", mock.Anything, usecase.PasswordChangeInput{CronJobPass: "secret"}).
		Return(&usecase.PasswordChangeOutput{Report: &entity.RotationReport{Total: 3, Rotated: 2, Skipped: 1}}, nil)
	uc.On("PasswordChange", mock.Anything, usecase.PasswordChangeInput{}).
		Return(&usecase.PasswordChangeOutput{Sent: true}, nil)

	code, env := do(t, r, http.MethodPost, "/api/v1/access/password/change", `{"cron_job_pass":"secret"}`, "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Password changed successfully", env.Message)
	assert.JSONEq(t, `{"total":3,"rotated":2,"skipped":1,"failed":0}`, string(env.Data))

	code, env = do(t, r, http.MethodPost, "/api/v1/access/password/change", `{}`, "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Reset OTP sent to admins", env.Message)
}

func TestPasswordChange_Conflict(t *testing.T) {
	r, uc, _ := setup(t)

	uc.On("PasswordChange", mock.Anything, mock.Anything).
		Return(nil, goerror.NewBusinessWrap(entity.ErrRotationRunning, "Credential rotation already running, try again later", goerror.CodeConflict))

	code, _ := do(t, r, http.MethodPost, "/api/v1/access/password/change", `{"cron_job_pass":"secret"}`, "")

	assert.Equal(t, http.StatusConflict, code)
}

func TestListCredentials(t *testing.T) {
	r, uc, tokens := setup(t)

	token, err := tokens.Generate("admin@club.org")
	require.NoError(t, err)

	uc.On("ListCredentials", mock.Anything).Return(&usecase.ListCredentialsOutput{Passwords: []string{"01231042"}}, nil)

	code, env := do(t, r, http.MethodGet, "/api/v1/access/credentials", "", token)

	assert.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"passwords":["01231042"]}`, string(env.Data))
}
