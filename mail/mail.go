package mail

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/smtp"

	"github.com/albashop/alba/config"
	"github.com/albashop/alba/notify"
	"github.com/domodwyer/mailyak/v3"
)

// Mailer sends transactional email over SMTP. It implements
// notify.Notifier; a nil Send return means the SMTP server accepted the
// message.
type Mailer struct {
	configProvider *config.Provider
}

// New creates a new Mailer instance
func New(configProvider *config.Provider) (*Mailer, error) {
	cfg := configProvider.Get().Smtp
	if !cfg.Enabled {
		return nil, fmt.Errorf("mail: smtp is not enabled")
	}
	return &Mailer{configProvider: configProvider}, nil
}

func (m *Mailer) client() (*mailyak.MailYak, error) {
	cfg := m.configProvider.Get().Smtp

	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)

	var auth smtp.Auth
	switch cfg.AuthMethod {
	case "", "plain":
		auth = smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)
	case "cram-md5":
		auth = smtp.CRAMMD5Auth(cfg.Username, cfg.Password)
	default:
		return nil, fmt.Errorf("mail: unsupported auth method %q", cfg.AuthMethod)
	}

	if cfg.UseTLS {
		return mailyak.NewWithTLS(addr, auth, &tls.Config{ServerName: cfg.Host})
	}
	return mailyak.New(addr, auth), nil
}

// Send implements notify.Notifier.
func (m *Mailer) Send(ctx context.Context, msg notify.Message) error {
	cfg := m.configProvider.Get().Smtp

	mail, err := m.client()
	if err != nil {
		return err
	}

	mail.To(msg.Recipient)
	mail.From(cfg.FromAddress)
	mail.FromName(cfg.FromName)

	switch msg.Kind {
	case notify.VerificationCode:
		mail.Subject("Your verification code")
		mail.HTML().Set(fmt.Sprintf(`
			<h1>Email Verification</h1>
			<p>Your verification code is:</p>
			<h2>%s</h2>
			<p>The code expires in 5 minutes. If you did not request it, ignore this message.</p>
		`, msg.Code))
	case notify.ForgotPasswordCode:
		mail.Subject("Your password reset code")
		mail.HTML().Set(fmt.Sprintf(`
			<h1>Password Reset</h1>
			<p>Your password reset code is:</p>
			<h2>%s</h2>
			<p>The code expires in 5 minutes. If you did not request it, ignore this message.</p>
		`, msg.Code))
	case notify.VerificationLink:
		mail.Subject("Verify your email address")
		mail.HTML().Set(fmt.Sprintf(`
			<h1>Email Verification</h1>
			<p>Please click the link below to verify your email address:</p>
			<p><a href="%s">Verify Email</a></p>
		`, msg.URL))
	default:
		return fmt.Errorf("mail: unknown message kind %v", msg.Kind)
	}

	// mailyak has no context support; run the send in a goroutine so a
	// canceled context does not keep the caller waiting.
	done := make(chan error, 1)
	go func() {
		done <- mail.Send()
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-done:
		if err != nil {
			return fmt.Errorf("mail: failed to send %s to %s: %w", msg.Kind, msg.Recipient, err)
		}
	}
	return nil
}
