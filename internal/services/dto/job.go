package dto

import (
	"time"

	"smarthire_backend/internal/models"
)

type JobLocationInput struct {
	City    string `json:"city" validate:"required,max=100"`
	Country string `json:"country" validate:"required,max=100"`
	Remote  bool   `json:"remote"`
}

type SalaryInput struct {
	Min        float64 `json:"min" validate:"gte=0"`
	Max        float64 `json:"max" validate:"gte=0,gtefield=Min"`
	Currency   string  `json:"currency" validate:"omitempty,len=3"`
	Negotiable bool    `json:"negotiable"`
}

// --- Job Requests ---

type CreateJobRequest struct {
	Title           string           `json:"title" validate:"required,notblank,min=5,max=100"`
	Description     string           `json:"description" validate:"required,notblank,min=50,max=2000"`
	CompanyName     string           `json:"companyName" validate:"required,notblank,min=2,max=100"`
	Location        JobLocationInput `json:"location"`
	JobType         string           `json:"jobType" validate:"required,is-job-type"`
	ExperienceLevel string           `json:"experienceLevel" validate:"required,is-experience-level"`
	Salary          *SalaryInput     `json:"salary,omitempty" validate:"omitempty"`
	SkillsRequired  []string         `json:"skillsRequired" validate:"required,min=1,dive,required,max=50"`
	Requirements    []string         `json:"requirements,omitempty" validate:"omitempty,dive,required,max=500"`
	Benefits        []string         `json:"benefits,omitempty" validate:"omitempty,dive,required,max=500"`
	ExpiryDate      time.Time        `json:"expiryDate" validate:"required,future"`
}

// UpdateJobRequest - частичное обновление; nil означает "не менять".
type UpdateJobRequest struct {
	Title           *string           `json:"title,omitempty" validate:"omitempty,notblank,min=5,max=100"`
	Description     *string           `json:"description,omitempty" validate:"omitempty,notblank,min=50,max=2000"`
	CompanyName     *string           `json:"companyName,omitempty" validate:"omitempty,notblank,min=2,max=100"`
	Location        *JobLocationInput `json:"location,omitempty" validate:"omitempty"`
	JobType         *string           `json:"jobType,omitempty" validate:"omitempty,is-job-type"`
	ExperienceLevel *string           `json:"experienceLevel,omitempty" validate:"omitempty,is-experience-level"`
	Salary          *SalaryInput      `json:"salary,omitempty" validate:"omitempty"`
	SkillsRequired  *[]string         `json:"skillsRequired,omitempty" validate:"omitempty,min=1,dive,required,max=50"`
	Requirements    *[]string         `json:"requirements,omitempty" validate:"omitempty,dive,required,max=500"`
	Benefits        *[]string         `json:"benefits,omitempty" validate:"omitempty,dive,required,max=500"`
	ExpiryDate      *time.Time        `json:"expiryDate,omitempty" validate:"omitempty,future"`
	IsActive        *bool             `json:"isActive,omitempty"`
}

// JobListQuery - фильтры публичного списка вакансий
type JobListQuery struct {
	JobType         string `form:"jobType" json:"jobType" validate:"omitempty,is-job-type"`
	ExperienceLevel string `form:"experienceLevel" json:"experienceLevel" validate:"omitempty,is-experience-level"`
	Remote          *bool  `form:"remote" json:"remote"`
	Page            int    `form:"page" json:"page" validate:"omitempty,min=1"`
	Limit           int    `form:"limit" json:"limit" validate:"omitempty,min=1,max=100"`
}

type UpdateJobStatusRequest struct {
	Status string `json:"status" validate:"required,is-job-status"`
	Reason string `json:"reason,omitempty" validate:"omitempty,max=500"`
	// Старое имя поля, его шлют существующие клиенты
	RejectedReason string `json:"rejectedReason,omitempty" validate:"omitempty,max=500"`
}

// RejectionReason возвращает reason, если он пуст - rejectedReason
func (r *UpdateJobStatusRequest) RejectionReason() string {
	if r.Reason != "" {
		return r.Reason
	}
	return r.RejectedReason
}

// --- Job Responses ---

type JobListResponse struct {
	Jobs  []*models.Job `json:"jobs"`
	Total int64         `json:"total"`
	Page  int           `json:"page"`
	Limit int           `json:"limit"`
}
