package models

import (
	"errors"
	"time"

	"gorm.io/datatypes"
)

// ErrInvalidTransition возвращается, когда переход статуса вакансии запрещен
var ErrInvalidTransition = errors.New("invalid job status transition")

type JobLocation struct {
	City    string `gorm:"size:100" json:"city"`
	Country string `gorm:"size:100" json:"country"`
	Remote  bool   `json:"remote"`
}

type Salary struct {
	Min        float64 `json:"min"`
	Max        float64 `json:"max"`
	Currency   string  `gorm:"size:3" json:"currency"`
	Negotiable bool    `json:"negotiable"`
}

type Job struct {
	BaseModel
	Title           string                      `gorm:"size:100;not null" json:"title"`
	Slug            string                      `gorm:"size:160;index" json:"slug"`
	Description     string                      `gorm:"type:text;not null" json:"description"`
	CompanyName     string                      `gorm:"size:100;not null" json:"companyName"`
	Location        JobLocation                 `gorm:"embedded;embeddedPrefix:location_" json:"location"`
	JobType         JobType                     `gorm:"type:varchar(20);not null;index" json:"jobType"`
	ExperienceLevel ExperienceLevel             `gorm:"type:varchar(20);not null;index" json:"experienceLevel"`
	Salary          Salary                      `gorm:"embedded;embeddedPrefix:salary_" json:"salary"`
	SkillsRequired  datatypes.JSONSlice[string] `json:"skillsRequired"`
	Requirements    datatypes.JSONSlice[string] `json:"requirements"`
	Benefits        datatypes.JSONSlice[string] `json:"benefits"`

	EmployerID     string     `gorm:"type:varchar(36);not null;index" json:"employer"`
	Status         JobStatus  `gorm:"type:varchar(20);not null;index" json:"status"`
	ApprovedBy     *string    `gorm:"type:varchar(36)" json:"approvedBy"`
	ApprovedAt     *time.Time `json:"approvedAt"`
	RejectedReason string     `gorm:"size:500" json:"rejectedReason,omitempty"`
	PostedDate     time.Time  `gorm:"not null;index" json:"postedDate"`
	ExpiryDate     time.Time  `gorm:"not null;index" json:"expiryDate"`
	IsActive       bool       `gorm:"not null" json:"isActive"`
}

// IsOwnedBy сообщает, является ли пользователь владельцем вакансии
func (j *Job) IsOwnedBy(userID string) bool {
	return userID != "" && j.EmployerID == userID
}

// IsListed - вакансия попадает в публичный список
func (j *Job) IsListed(now time.Time) bool {
	return j.Status == JobStatusApproved && j.IsActive && !j.ExpiryDate.Before(now)
}

// AcceptsApplications - на вакансию можно откликнуться
func (j *Job) AcceptsApplications(now time.Time) bool {
	return j.IsListed(now)
}

// CanTransition описывает конечный автомат статусов вакансии.
// Expired - терминальный статус.
func CanTransition(from, to JobStatus) bool {
	if from == JobStatusExpired {
		return false
	}
	switch to {
	case JobStatusApproved:
		return from == JobStatusPending
	case JobStatusRejected:
		return from == JobStatusPending || from == JobStatusApproved
	case JobStatusPending:
		return true
	case JobStatusExpired:
		return true
	}
	return false
}

// Approve переводит вакансию в approved и записывает проверяющего
func (j *Job) Approve(adminID string, now time.Time) error {
	if !CanTransition(j.Status, JobStatusApproved) {
		return ErrInvalidTransition
	}
	j.Status = JobStatusApproved
	j.ApprovedBy = &adminID
	j.ApprovedAt = &now
	j.RejectedReason = ""
	return nil
}

// Reject отклоняет вакансию. ApprovedAt хранит время проверки.
func (j *Job) Reject(reason string, now time.Time) error {
	if !CanTransition(j.Status, JobStatusRejected) {
		return ErrInvalidTransition
	}
	j.Status = JobStatusRejected
	j.ApprovedBy = nil
	j.ApprovedAt = &now
	j.RejectedReason = reason
	return nil
}

func (j *Job) Expire() error {
	if !CanTransition(j.Status, JobStatusExpired) {
		return ErrInvalidTransition
	}
	j.Status = JobStatusExpired
	return nil
}

// Resubmit возвращает вакансию на модерацию после правки работодателем
func (j *Job) Resubmit() error {
	if !CanTransition(j.Status, JobStatusPending) {
		return ErrInvalidTransition
	}
	j.Status = JobStatusPending
	j.ApprovedBy = nil
	j.ApprovedAt = nil
	j.RejectedReason = ""
	return nil
}
