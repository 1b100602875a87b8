package models

type UserRole string
type JobStatus string
type JobType string
type ExperienceLevel string
type CompanySize string
type Plan string
type PaymentStatus string
type ApplicationStatus string

const (
	UserRoleJobSeeker UserRole = "jobseeker"
	UserRoleEmployer  UserRole = "employer"
	UserRoleAdmin     UserRole = "admin"

	JobStatusPending  JobStatus = "pending"
	JobStatusApproved JobStatus = "approved"
	JobStatusRejected JobStatus = "rejected"
	JobStatusExpired  JobStatus = "expired"

	JobTypeFullTime   JobType = "full-time"
	JobTypePartTime   JobType = "part-time"
	JobTypeContract   JobType = "contract"
	JobTypeInternship JobType = "internship"
	JobTypeFreelance  JobType = "freelance"

	ExperienceEntry     ExperienceLevel = "entry"
	ExperienceMid       ExperienceLevel = "mid"
	ExperienceSenior    ExperienceLevel = "senior"
	ExperienceExecutive ExperienceLevel = "executive"

	CompanySizeTiny   CompanySize = "1-10"
	CompanySizeSmall  CompanySize = "11-50"
	CompanySizeMedium CompanySize = "51-200"
	CompanySizeLarge  CompanySize = "201-500"
	CompanySizeHuge   CompanySize = "500+"

	PlanFree     Plan = "free"
	PlanStandard Plan = "standard"
	PlanPremium  Plan = "premium"

	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusRefunded  PaymentStatus = "refunded"
	PaymentStatusExpired   PaymentStatus = "expired"

	ApplicationStatusApplied     ApplicationStatus = "applied"
	ApplicationStatusShortlisted ApplicationStatus = "shortlisted"
	ApplicationStatusInterviewed ApplicationStatus = "interviewed"
	ApplicationStatusRejected    ApplicationStatus = "rejected"
	ApplicationStatusHired       ApplicationStatus = "hired"
)

// IsValid сообщает, относится ли роль к известным
func (r UserRole) IsValid() bool {
	switch r {
	case UserRoleJobSeeker, UserRoleEmployer, UserRoleAdmin:
		return true
	}
	return false
}

func (s JobStatus) IsValid() bool {
	switch s {
	case JobStatusPending, JobStatusApproved, JobStatusRejected, JobStatusExpired:
		return true
	}
	return false
}

func (p Plan) IsValid() bool {
	switch p {
	case PlanFree, PlanStandard, PlanPremium:
		return true
	}
	return false
}
