// Package mail implements outbound transactional email over SMTP.
package mail

import (
	"context"
	"fmt"
	"log/slog"

	gomail "github.com/wneessen/go-mail"

	"voyage/config"
	"voyage/internal/domain/service"
	"voyage/internal/errors"
	"voyage/internal/util"
)

// smtpMailer sends mail through a configured SMTP relay. Without a host it
// degrades to logging the message payload so local development needs no
// mail server.
type smtpMailer struct {
	cfg    *config.SMTPConfig
	logger *slog.Logger
}

// NewSMTPMailer is the constructor for smtpMailer.
func NewSMTPMailer(cfg *config.Config, logger *slog.Logger) service.Mailer {
	return &smtpMailer{
		cfg:    cfg.SMTP,
		logger: logger,
	}
}

// SendVerificationCode delivers a 6-digit email verification code.
func (m *smtpMailer) SendVerificationCode(ctx context.Context, to, name, code string) error {
	subject := "Your verification code"
	body := fmt.Sprintf(
		"Hi %s,\n\nYour verification code is: %s\n\nIt expires in 10 minutes. If you did not request this, you can ignore this email.\n",
		displayName(name), code)

	if !m.enabled() {
		m.logger.LogAttrs(ctx, slog.LevelInfo, "SMTP not configured, logging verification code instead",
			slog.String("to", util.MaskEmail(to)),
			slog.String("code", code),
		)

		return nil
	}

	return m.send(ctx, to, subject, body)
}

// SendPasswordReset delivers a password reset link.
func (m *smtpMailer) SendPasswordReset(ctx context.Context, to, name, resetURL string) error {
	subject := "Reset your password"
	body := fmt.Sprintf(
		"Hi %s,\n\nFollow this link to reset your password:\n\n%s\n\nThe link expires in 1 hour. If you did not request a reset, you can ignore this email.\n",
		displayName(name), resetURL)

	if !m.enabled() {
		m.logger.LogAttrs(ctx, slog.LevelInfo, "SMTP not configured, logging reset link instead",
			slog.String("to", util.MaskEmail(to)),
			slog.String("resetUrl", resetURL),
		)

		return nil
	}

	return m.send(ctx, to, subject, body)
}

func (m *smtpMailer) enabled() bool {
	return m.cfg != nil && m.cfg.Host != ""
}

func (m *smtpMailer) send(ctx context.Context, to, subject, body string) error {
	msg := gomail.NewMsg()
	if err := msg.From(m.cfg.From); err != nil {
		return errors.Wrap(err, "invalid from address")
	}
	if err := msg.To(to); err != nil {
		return errors.Wrap(err, "invalid recipient address")
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextPlain, body)

	opts := []gomail.Option{
		gomail.WithPort(m.cfg.Port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(m.cfg.Username),
		gomail.WithPassword(m.cfg.Password),
	}
	if m.cfg.UseTLS {
		opts = append(opts, gomail.WithTLSPolicy(gomail.TLSMandatory))
	} else {
		opts = append(opts, gomail.WithTLSPolicy(gomail.TLSOpportunistic))
	}

	client, err := gomail.NewClient(m.cfg.Host, opts...)
	if err != nil {
		return errors.Wrap(err, "failed to create SMTP client")
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return errors.Wrap(err, "failed to send mail")
	}

	return nil
}

func displayName(name string) string {
	if name == "" {
		return "there"
	}

	return name
}
