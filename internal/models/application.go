package models

import (
	"time"
)

type Resume struct {
	Filename   string     `gorm:"size:255" json:"filename,omitempty"`
	Path       string     `gorm:"size:500" json:"path,omitempty"`
	UploadedAt *time.Time `json:"uploadedAt,omitempty"`
}

// Application - отклик соискателя на вакансию. Пара (job, jobSeeker) уникальна.
type Application struct {
	BaseModel
	JobID           string            `gorm:"type:varchar(36);not null;uniqueIndex:idx_applications_job_seeker" json:"job"`
	JobSeekerID     string            `gorm:"type:varchar(36);not null;uniqueIndex:idx_applications_job_seeker;index" json:"jobSeeker"`
	Status          ApplicationStatus `gorm:"type:varchar(20);not null;index" json:"status"`
	CoverLetter     string            `gorm:"size:1000" json:"coverLetter,omitempty"`
	Resume          Resume            `gorm:"embedded;embeddedPrefix:resume_" json:"resume"`
	AppliedAt       time.Time         `gorm:"not null" json:"appliedAt"`
	Notes           string            `gorm:"type:text" json:"notes,omitempty"`
	InterviewDate   *time.Time        `json:"interviewDate,omitempty"`
	InterviewNotes  string            `gorm:"type:text" json:"interviewNotes,omitempty"`
	RejectionReason string            `gorm:"size:500" json:"rejectionReason,omitempty"`
}

var applicationTransitions = map[ApplicationStatus][]ApplicationStatus{
	ApplicationStatusApplied:     {ApplicationStatusShortlisted, ApplicationStatusInterviewed, ApplicationStatusRejected, ApplicationStatusHired},
	ApplicationStatusShortlisted: {ApplicationStatusInterviewed, ApplicationStatusRejected, ApplicationStatusHired},
	ApplicationStatusInterviewed: {ApplicationStatusRejected, ApplicationStatusHired},
}

// CanTransitionApplication - rejected и hired терминальные
func CanTransitionApplication(from, to ApplicationStatus) bool {
	for _, next := range applicationTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
