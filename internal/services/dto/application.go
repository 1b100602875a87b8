package dto

import (
	"time"

	"smarthire_backend/internal/models"
)

type ResumeInput struct {
	Filename string `json:"filename" validate:"required,max=255"`
	Path     string `json:"path" validate:"required,max=500"`
}

type ApplyRequest struct {
	CoverLetter string       `json:"coverLetter,omitempty" validate:"omitempty,max=1000"`
	Resume      *ResumeInput `json:"resume,omitempty" validate:"omitempty"`
}

type UpdateApplicationStatusRequest struct {
	Status          string     `json:"status" validate:"required,is-application-status"`
	Notes           *string    `json:"notes,omitempty" validate:"omitempty,max=2000"`
	InterviewDate   *time.Time `json:"interviewDate,omitempty"`
	InterviewNotes  *string    `json:"interviewNotes,omitempty" validate:"omitempty,max=2000"`
	RejectionReason *string    `json:"rejectionReason,omitempty" validate:"omitempty,max=500"`
}

type ApplicationListResponse struct {
	Applications []*models.Application `json:"applications"`
	Total        int                   `json:"total"`
}
