package email

import "context"

// Provider отправляет письма
type Provider interface {
	Send(ctx context.Context, email *Email) error
	Close() error
}

// TemplateRenderer рендерит шаблоны писем
type TemplateRenderer interface {
	Render(templateName string, data TemplateData) (string, error)
}
