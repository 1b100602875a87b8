package email

import (
	"fmt"
	"html/template"
	"strings"
	"sync"
)

const (
	TemplateJobApproved = "job_approved"
	TemplateJobRejected = "job_rejected"
)

var builtinTemplates = map[string]string{
	TemplateJobApproved: `<p>Hello {{.Name}},</p>
<p>Your job posting <strong>{{.Title}}</strong> has been approved and is now visible to job seekers.</p>
<p>SmartHire Hub</p>`,
	TemplateJobRejected: `<p>Hello {{.Name}},</p>
<p>Your job posting <strong>{{.Title}}</strong> was not approved.</p>
{{if .Reason}}<p>Reason: {{.Reason}}</p>{{end}}
<p>You can edit the posting and it will be reviewed again.</p>
<p>SmartHire Hub</p>`,
}

// TemplateManager реализует TemplateRenderer
type TemplateManager struct {
	templates map[string]*template.Template
	mutex     sync.RWMutex
}

// NewTemplateManager загружает встроенные шаблоны
func NewTemplateManager() (*TemplateManager, error) {
	tm := &TemplateManager{templates: make(map[string]*template.Template)}
	for name, body := range builtinTemplates {
		if err := tm.AddTemplate(name, body); err != nil {
			return nil, err
		}
	}
	return tm, nil
}

func (tm *TemplateManager) Render(templateName string, data TemplateData) (string, error) {
	tm.mutex.RLock()
	tpl, exists := tm.templates[templateName]
	tm.mutex.RUnlock()

	if !exists {
		return "", fmt.Errorf("template not found: %s", templateName)
	}

	var buf strings.Builder
	if err := tpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.String(), nil
}

func (tm *TemplateManager) AddTemplate(name, body string) error {
	tpl, err := template.New(name).Parse(body)
	if err != nil {
		return fmt.Errorf("failed to parse template %s: %w", name, err)
	}

	tm.mutex.Lock()
	tm.templates[name] = tpl
	tm.mutex.Unlock()
	return nil
}
