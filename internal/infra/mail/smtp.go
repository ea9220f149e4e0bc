package mail

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	gomail "gopkg.in/gomail.v2"

	"github.com/gutscas/santo-dashboard/internal/core/port"
	"github.com/gutscas/santo-dashboard/internal/infra/config"
	"github.com/gutscas/santo-dashboard/internal/infra/logger"
)

const resetSubject = "Password Reset OTP"

// SMTPMailer delivers password reset codes over SMTP using gomail.
type SMTPMailer struct {
	cfg config.SMTPSettings
}

// NewSMTPMailer constructs an SMTP-backed mailer.
func NewSMTPMailer(cfg config.SMTPSettings) *SMTPMailer {
	return &SMTPMailer{cfg: cfg}
}

// SendPasswordResetCode mails the one-time code to the recipient.
func (m *SMTPMailer) SendPasswordResetCode(ctx context.Context, to, code string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.From)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", resetSubject)
	msg.SetBody("text/plain", fmt.Sprintf("Your OTP for password reset is: %s\n\nThis OTP will expire in 10 minutes.", code))

	dialer := gomail.NewDialer(m.cfg.Host, m.cfg.Port, m.cfg.Username, m.cfg.Password)

	done := make(chan error, 1)
	go func() {
		done <- dialer.DialAndSend(msg)
	}()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("send reset mail: %w", err)
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// LoggingMailer logs reset codes instead of sending them. Useful for
// development environments without an SMTP relay.
type LoggingMailer struct {
	logger *zap.Logger
}

// NewLoggingMailer constructs a development-friendly mailer.
func NewLoggingMailer(log *zap.Logger) *LoggingMailer {
	if log == nil {
		log = zap.NewNop()
	}
	return &LoggingMailer{logger: log}
}

// SendPasswordResetCode records the dispatch in the log. The code itself is
// masked.
func (m *LoggingMailer) SendPasswordResetCode(_ context.Context, to, code string) error {
	m.logger.Info("password reset code issued",
		zap.String("to", logger.MaskEmail(to)),
		zap.String("code", logger.MaskString(code)),
	)
	return nil
}

var (
	_ port.Mailer = (*SMTPMailer)(nil)
	_ port.Mailer = (*LoggingMailer)(nil)
)
