package services

import (
	"context"

	"smarthire_backend/internal/email"
	"smarthire_backend/internal/logger"
	"smarthire_backend/internal/models"
)

// NotificationService уведомляет работодателя о результате модерации.
// Ошибки доставки только логируются.
type NotificationService interface {
	JobReviewed(ctx context.Context, job *models.Job, employer *models.User)
}

type EmailNotificationService struct {
	provider  email.Provider
	templates email.TemplateRenderer
}

func NewEmailNotificationService(provider email.Provider, templates email.TemplateRenderer) NotificationService {
	return &EmailNotificationService{provider: provider, templates: templates}
}

func (s *EmailNotificationService) JobReviewed(ctx context.Context, job *models.Job, employer *models.User) {
	var (
		tpl     string
		subject string
	)
	switch job.Status {
	case models.JobStatusApproved:
		tpl, subject = email.TemplateJobApproved, "Your job posting was approved"
	case models.JobStatusRejected:
		tpl, subject = email.TemplateJobRejected, "Your job posting was not approved"
	default:
		return
	}

	body, err := s.templates.Render(tpl, email.TemplateData{
		"Name":   employer.Name,
		"Title":  job.Title,
		"Reason": job.RejectedReason,
	})
	if err != nil {
		logger.CtxWithError(ctx, "Failed to render notification", err, "template", tpl)
		return
	}

	msg := &email.Email{To: []string{employer.Email}, Subject: subject, HTMLBody: body}
	if err := s.provider.Send(ctx, msg); err != nil {
		logger.CtxWithError(ctx, "Failed to send notification", err, "job_id", job.ID, "to", employer.Email)
		return
	}
	logger.CtxInfo(ctx, "Notification sent", "job_id", job.ID, "template", tpl)
}
