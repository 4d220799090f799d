package mailer

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/orderhub/orderhub-backend/pkg/config"
	pkgerrors "github.com/orderhub/orderhub-backend/pkg/errors"
	"github.com/orderhub/orderhub-backend/pkg/logger"
)

// Mailer delivers transactional email over SMTP. When SMTP is not configured
// it degrades to logging so local environments work without a mail server.
type Mailer struct {
	cfg  config.SMTPConfig
	logg *logger.Logger

	// Injectable for tests.
	sendMail func(addr string, auth smtp.Auth, from string, to []string, msg []byte) error
}

// New builds the mailer from configuration.
func New(cfg config.SMTPConfig, logg *logger.Logger) (*Mailer, error) {
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &Mailer{cfg: cfg, logg: logg, sendMail: smtp.SendMail}, nil
}

// SendPasswordReset emails the reset token to the account holder.
func (m *Mailer) SendPasswordReset(ctx context.Context, email, token string) error {
	subject := "Redefinição de senha"
	body := fmt.Sprintf("Use o código abaixo para redefinir sua senha. Ele expira em breve.\r\n\r\n%s\r\n", token)
	return m.send(ctx, email, subject, body)
}

func (m *Mailer) send(ctx context.Context, to, subject, body string) error {
	to = strings.TrimSpace(to)
	if to == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "recipient email is required")
	}

	if !m.cfg.Enabled() {
		m.logg.Warn(m.logg.WithField(ctx, "email", to), "smtp disabled, skipping outbound email")
		return nil
	}

	msg := strings.Join([]string{
		"From: " + m.cfg.From,
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=utf-8",
		"",
		body,
	}, "\r\n")

	var auth smtp.Auth
	if m.cfg.Username != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	}

	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)
	if err := m.sendMail(addr, auth, m.cfg.From, []string{to}, []byte(msg)); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "sending email")
	}
	m.logg.Info(m.logg.WithField(ctx, "email", to), "email delivered")
	return nil
}
