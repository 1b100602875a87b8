package email

import (
	"context"
	"errors"
	"fmt"

	"gopkg.in/gomail.v2"
)

// SMTPProvider отправляет письма через gomail
type SMTPProvider struct {
	config SMTPConfig
	dialer *gomail.Dialer
}

func NewSMTPProvider(config SMTPConfig) (*SMTPProvider, error) {
	if config.Host == "" {
		return nil, errors.New("SMTP host is required")
	}
	if config.Port <= 0 || config.Port > 65535 {
		return nil, fmt.Errorf("invalid SMTP port: %d", config.Port)
	}
	if config.FromEmail == "" {
		return nil, errors.New("from email is required")
	}

	return &SMTPProvider{
		config: config,
		dialer: gomail.NewDialer(config.Host, config.Port, config.Username, config.Password),
	}, nil
}

// Send не поддерживает отмену: gomail работает без context
func (p *SMTPProvider) Send(ctx context.Context, email *Email) error {
	if len(email.To) == 0 {
		return errors.New("no recipients specified")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetAddressHeader("From", p.config.FromEmail, p.config.FromName)
	m.SetHeader("To", email.To...)
	m.SetHeader("Subject", email.Subject)

	switch {
	case email.Body != "" && email.HTMLBody != "":
		m.SetBody("text/plain", email.Body)
		m.AddAlternative("text/html", email.HTMLBody)
	case email.HTMLBody != "":
		m.SetBody("text/html", email.HTMLBody)
	default:
		m.SetBody("text/plain", email.Body)
	}

	if err := p.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	return nil
}

func (p *SMTPProvider) Close() error {
	return nil
}
