package email

import (
	"context"
	"strings"

	"smarthire_backend/internal/logger"
)

// LogProvider пишет письма в лог вместо отправки, когда SMTP отключен
type LogProvider struct{}

func NewLogProvider() *LogProvider {
	return &LogProvider{}
}

func (p *LogProvider) Send(ctx context.Context, email *Email) error {
	logger.CtxInfo(ctx, "Email suppressed",
		"to", strings.Join(email.To, ","),
		"subject", email.Subject,
	)
	return nil
}

func (p *LogProvider) Close() error { return nil }
