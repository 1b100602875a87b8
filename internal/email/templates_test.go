package email

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplateManager_RendersRejectionReason(t *testing.T) {
	tm, err := NewTemplateManager()
	require.NoError(t, err)

	html, err := tm.Render(TemplateJobRejected, TemplateData{"Name": "Acme", "Title": "Go <Dev>", "Reason": "No salary"})
	require.NoError(t, err)

	assert.Contains(t, html, "No salary")
	assert.Contains(t, html, "Go &lt;Dev&gt;")

	_, err = tm.Render("missing", nil)
	assert.Error(t, err)
}

func TestMockProvider_RecordsMessages(t *testing.T) {
	p := NewMockProvider()
	require.NoError(t, p.Send(context.Background(), &Email{To: []string{"a@example.com"}, Subject: "hi"}))

	sent := p.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, "hi", sent[0].Subject)
}

func TestNewSMTPProvider_ValidatesConfig(t *testing.T) {
	_, err := NewSMTPProvider(SMTPConfig{Port: 587, FromEmail: "a@example.com"})
	assert.Error(t, err)

	_, err = NewSMTPProvider(SMTPConfig{Host: "smtp.example.com", Port: 0, FromEmail: "a@example.com"})
	assert.Error(t, err)

	p, err := NewSMTPProvider(SMTPConfig{Host: "smtp.example.com", Port: 587, FromEmail: "a@example.com"})
	require.NoError(t, err)
	assert.NoError(t, p.Close())
}
