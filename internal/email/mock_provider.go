package email

import (
	"context"
	"sync"
)

// MockProvider используется для тестов и локальной разработки: письма только запоминаются.
type MockProvider struct {
	mu   sync.Mutex
	sent []Email
}

func NewMockProvider() *MockProvider {
	return &MockProvider{}
}

func (m *MockProvider) Send(_ context.Context, email *Email) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, *email)
	return nil
}

func (m *MockProvider) Close() error { return nil }

// Sent возвращает копию отправленных писем
func (m *MockProvider) Sent() []Email {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Email(nil), m.sent...)
}
