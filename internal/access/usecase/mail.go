package usecase

import (
	"bytes"
	"html/template"
	"strings"
	"time"

	"github.com/Rishu9835/DOORWISE/internal/pkg/mail"
	"github.com/samber/lo"
)

const (
	tplAdminOTP = `<html>
  <body>
    <h3>Email Verification</h3>
    <p>The verification code for your email is: <b>{{.code}}</b></p>
    <p>It expires in {{.minutes}} minutes. If you did not request this code, please ignore this email.</p>
  </body>
</html>`

	tplDoorOTP = `<html>
  <body>
    <h3>Door Access Code</h3>
    <p>A door code was requested by {{.issued_by}}: <b>{{.code}}</b></p>
    <p>It can be used once within {{.minutes}} minutes.</p>
  </body>
</html>`

	tplResetOTP = `<html>
  <body>
    <h3>Password Reset Verification</h3>
    <p>{{.issued_by}} asked to rotate every member password. Confirm with code: <b>{{.code}}</b></p>
    <p>It expires in {{.minutes}} minutes. If this was not expected, ignore this email.</p>
  </body>
</html>`

	tplMemberPassword = `<html>
  <body>
    <p>Hello,</p>
    <p>Your new password is: <b>{{.password}}</b></p>
    <p>Please keep it safe.</p>
    <p>- {{.sender_name}}</p>
  </body>
</html>`
)

var mailTemplates = template.Must(template.New("mail").Option("missingkey=zero").Parse(
	`{{define "admin_otp"}}` + tplAdminOTP + `{{end}}` +
		`{{define "door_otp"}}` + tplDoorOTP + `{{end}}` +
		`{{define "reset_otp"}}` + tplResetOTP + `{{end}}` +
		`{{define "member_password"}}` + tplMemberPassword + `{{end}}`,
))

func (s *Usecase) senderName() string {
	if name := strings.TrimSpace(s.cfg.GetString("modules.access.sender_name")); name != "" {
		return name
	}
	return "Robotics Club"
}

func (s *Usecase) composeMail(to, subject, tpl string, data map[string]any) (mail.Message, error) {
	data["sender_name"] = s.senderName()

	var buf bytes.Buffer
	if err := mailTemplates.ExecuteTemplate(&buf, tpl, data); err != nil {
		return mail.Message{}, err
	}

	return mail.Message{
		To:       []string{to},
		Subject:  subject,
		HTMLBody: buf.String(),
	}, nil
}

func (s *Usecase) adminOTPMail(to, code string, ttl time.Duration) (mail.Message, error) {
	return s.composeMail(to, "Email Verification - Admin "+s.senderName(), "admin_otp", map[string]any{
		"code":    code,
		"minutes": int(ttl.Minutes()),
	})
}

func (s *Usecase) doorOTPMail(to, issuedBy, code string, ttl time.Duration) (mail.Message, error) {
	return s.composeMail(to, "Door Access Code - "+s.senderName(), "door_otp", map[string]any{
		"code":      code,
		"issued_by": issuedBy,
		"minutes":   int(ttl.Minutes()),
	})
}

func (s *Usecase) resetOTPMail(to, issuedBy, code string, ttl time.Duration) (mail.Message, error) {
	return s.composeMail(to, "Password Reset Verification - "+s.senderName(), "reset_otp", map[string]any{
		"code":      code,
		"issued_by": issuedBy,
		"minutes":   int(ttl.Minutes()),
	})
}

func (s *Usecase) memberPasswordMail(to, password string) (mail.Message, error) {
	return s.composeMail(to, "Your "+s.senderName()+" Password", "member_password", map[string]any{
		"password": password,
	})
}

// validAddresses keeps roster values that contain an "@". Header cells and
// blanks are dropped.
func validAddresses(values []string) []string {
	return lo.Uniq(lo.FilterMap(values, func(v string, _ int) (string, bool) {
		v = strings.TrimSpace(v)
		return v, strings.Contains(v, "@")
	}))
}
