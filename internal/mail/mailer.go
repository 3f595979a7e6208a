// Package mail delivers transactional email over SMTP.
package mail

import (
	"context"
	"fmt"

	gomail "github.com/wneessen/go-mail"
)

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	// ClientURL is the public origin embedded in reset links.
	ClientURL string
}

type SMTPMailer struct {
	client *gomail.Client
	cfg    SMTPConfig
}

func NewSMTPMailer(cfg SMTPConfig) (*SMTPMailer, error) {
	client, err := gomail.NewClient(cfg.Host,
		gomail.WithPort(cfg.Port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(cfg.Username),
		gomail.WithPassword(cfg.Password))
	if err != nil {
		return nil, fmt.Errorf("failed to create mail client: %w", err)
	}

	return &SMTPMailer{client: client, cfg: cfg}, nil
}

// SendResetPassword emails a single-use reset link to the given address.
func (m *SMTPMailer) SendResetPassword(ctx context.Context, to, token string) error {
	resetPasswordURL := fmt.Sprintf("%s/api/auth/reset-password?token=%s", m.cfg.ClientURL, token)

	html := fmt.Sprintf(`<div style="padding:10px;">
    <p>Dear user,</p>
    <p>We have received a request to reset the password for your account. To proceed with the password reset, please click on the following link: <a href="%[1]s">%[1]s</a></p>
    <p>If you did not initiate this password reset request, please disregard this email and take appropriate security measures to ensure the safety of your account.</p>
    <p>Thanks,</p>
    <p><strong>Address Book Support Team</strong></p>
    </div>`, resetPasswordURL)

	msg := gomail.NewMsg()
	if err := msg.From(m.cfg.From); err != nil {
		return err
	}
	if err := msg.To(to); err != nil {
		return err
	}
	msg.Subject("Reset password")
	msg.SetBodyString(gomail.TypeTextHTML, html)

	return m.client.DialAndSendWithContext(ctx, msg)
}
