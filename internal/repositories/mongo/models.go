package mongo

import (
	"time"

	"smarthire_backend/internal/models"
)

// Документы хранятся в snake_case; доменные модели не несут bson-тегов.

type locationDoc struct {
	City    string `bson:"city,omitempty"`
	Country string `bson:"country,omitempty"`
	Remote  bool   `bson:"remote"`
}

type userDoc struct {
	ID             string                 `bson:"_id"`
	Name           string                 `bson:"name"`
	Email          string                 `bson:"email"`
	PasswordHash   string                 `bson:"password_hash"`
	Role           string                 `bson:"role"`
	IsActive       bool                   `bson:"is_active"`
	Skills         []string               `bson:"skills,omitempty"`
	Education      []models.Education     `bson:"education,omitempty"`
	Experience     []models.Experience    `bson:"experience,omitempty"`
	Certifications []models.Certification `bson:"certifications,omitempty"`
	Location       locationDoc            `bson:"location"`
	Phone          string                 `bson:"phone,omitempty"`
	CompanyName    string                 `bson:"company_name,omitempty"`
	CompanySize    string                 `bson:"company_size,omitempty"`
	Industry       string                 `bson:"industry,omitempty"`
	Website        string                 `bson:"website,omitempty"`
	CreatedAt      time.Time              `bson:"created_at"`
	UpdatedAt      time.Time              `bson:"updated_at"`
}

func toUserDoc(u *models.User) *userDoc {
	return &userDoc{
		ID:             u.ID,
		Name:           u.Name,
		Email:          u.Email,
		PasswordHash:   u.PasswordHash,
		Role:           string(u.Role),
		IsActive:       u.IsActive,
		Skills:         u.Skills,
		Education:      u.Education,
		Experience:     u.Experience,
		Certifications: u.Certifications,
		Location:       locationDoc{City: u.Location.City, Country: u.Location.Country},
		Phone:          u.Phone,
		CompanyName:    u.CompanyName,
		CompanySize:    string(u.CompanySize),
		Industry:       u.Industry,
		Website:        u.Website,
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
}

func fromUserDoc(d *userDoc) *models.User {
	return &models.User{
		BaseModel:      models.BaseModel{ID: d.ID, CreatedAt: d.CreatedAt, UpdatedAt: d.UpdatedAt},
		Name:           d.Name,
		Email:          d.Email,
		PasswordHash:   d.PasswordHash,
		Role:           models.UserRole(d.Role),
		IsActive:       d.IsActive,
		Skills:         d.Skills,
		Education:      d.Education,
		Experience:     d.Experience,
		Certifications: d.Certifications,
		Location:       models.Location{City: d.Location.City, Country: d.Location.Country},
		Phone:          d.Phone,
		CompanyName:    d.CompanyName,
		CompanySize:    models.CompanySize(d.CompanySize),
		Industry:       d.Industry,
		Website:        d.Website,
	}
}

type salaryDoc struct {
	Min        float64 `bson:"min"`
	Max        float64 `bson:"max"`
	Currency   string  `bson:"currency"`
	Negotiable bool    `bson:"negotiable"`
}

type jobDoc struct {
	ID              string      `bson:"_id"`
	Title           string      `bson:"title"`
	Slug            string      `bson:"slug"`
	Description     string      `bson:"description"`
	CompanyName     string      `bson:"company_name"`
	Location        locationDoc `bson:"location"`
	JobType         string      `bson:"job_type"`
	ExperienceLevel string      `bson:"experience_level"`
	Salary          salaryDoc   `bson:"salary"`
	SkillsRequired  []string    `bson:"skills_required"`
	Requirements    []string    `bson:"requirements,omitempty"`
	Benefits        []string    `bson:"benefits,omitempty"`
	EmployerID      string      `bson:"employer_id"`
	Status          string      `bson:"status"`
	ApprovedBy      *string     `bson:"approved_by"`
	ApprovedAt      *time.Time  `bson:"approved_at"`
	RejectedReason  string      `bson:"rejected_reason,omitempty"`
	PostedDate      time.Time   `bson:"posted_date"`
	ExpiryDate      time.Time   `bson:"expiry_date"`
	IsActive        bool        `bson:"is_active"`
	CreatedAt       time.Time   `bson:"created_at"`
	UpdatedAt       time.Time   `bson:"updated_at"`
}

func toJobDoc(j *models.Job) *jobDoc {
	return &jobDoc{
		ID:              j.ID,
		Title:           j.Title,
		Slug:            j.Slug,
		Description:     j.Description,
		CompanyName:     j.CompanyName,
		Location:        locationDoc{City: j.Location.City, Country: j.Location.Country, Remote: j.Location.Remote},
		JobType:         string(j.JobType),
		ExperienceLevel: string(j.ExperienceLevel),
		Salary: salaryDoc{
			Min:        j.Salary.Min,
			Max:        j.Salary.Max,
			Currency:   j.Salary.Currency,
			Negotiable: j.Salary.Negotiable,
		},
		SkillsRequired: j.SkillsRequired,
		Requirements:   j.Requirements,
		Benefits:       j.Benefits,
		EmployerID:     j.EmployerID,
		Status:         string(j.Status),
		ApprovedBy:     j.ApprovedBy,
		ApprovedAt:     j.ApprovedAt,
		RejectedReason: j.RejectedReason,
		PostedDate:     j.PostedDate,
		ExpiryDate:     j.ExpiryDate,
		IsActive:       j.IsActive,
		CreatedAt:      j.CreatedAt,
		UpdatedAt:      j.UpdatedAt,
	}
}

func fromJobDoc(d *jobDoc) *models.Job {
	return &models.Job{
		BaseModel:       models.BaseModel{ID: d.ID, CreatedAt: d.CreatedAt, UpdatedAt: d.UpdatedAt},
		Title:           d.Title,
		Slug:            d.Slug,
		Description:     d.Description,
		CompanyName:     d.CompanyName,
		Location:        models.JobLocation{City: d.Location.City, Country: d.Location.Country, Remote: d.Location.Remote},
		JobType:         models.JobType(d.JobType),
		ExperienceLevel: models.ExperienceLevel(d.ExperienceLevel),
		Salary: models.Salary{
			Min:        d.Salary.Min,
			Max:        d.Salary.Max,
			Currency:   d.Salary.Currency,
			Negotiable: d.Salary.Negotiable,
		},
		SkillsRequired: d.SkillsRequired,
		Requirements:   d.Requirements,
		Benefits:       d.Benefits,
		EmployerID:     d.EmployerID,
		Status:         models.JobStatus(d.Status),
		ApprovedBy:     d.ApprovedBy,
		ApprovedAt:     d.ApprovedAt,
		RejectedReason: d.RejectedReason,
		PostedDate:     d.PostedDate,
		ExpiryDate:     d.ExpiryDate,
		IsActive:       d.IsActive,
	}
}

type subscriptionDoc struct {
	ID            string          `bson:"_id"`
	EmployerID    string          `bson:"employer_id"`
	Plan          string          `bson:"plan"`
	StartDate     time.Time       `bson:"start_date"`
	EndDate       time.Time       `bson:"end_date"`
	PaymentStatus string          `bson:"payment_status"`
	PaymentID     string          `bson:"payment_id,omitempty"`
	Amount        float64         `bson:"amount"`
	Currency      string          `bson:"currency"`
	IsActive      bool            `bson:"is_active"`
	AutoRenew     bool            `bson:"auto_renew"`
	TrialUsed     bool            `bson:"trial_used"`
	Features      models.Features `bson:"features"`
	CreatedAt     time.Time       `bson:"created_at"`
	UpdatedAt     time.Time       `bson:"updated_at"`
}

func toSubscriptionDoc(s *models.Subscription) *subscriptionDoc {
	return &subscriptionDoc{
		ID:            s.ID,
		EmployerID:    s.EmployerID,
		Plan:          string(s.Plan),
		StartDate:     s.StartDate,
		EndDate:       s.EndDate,
		PaymentStatus: string(s.PaymentStatus),
		PaymentID:     s.PaymentID,
		Amount:        s.Amount,
		Currency:      s.Currency,
		IsActive:      s.IsActive,
		AutoRenew:     s.AutoRenew,
		TrialUsed:     s.TrialUsed,
		Features:      s.Features,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
}

func fromSubscriptionDoc(d *subscriptionDoc) *models.Subscription {
	return &models.Subscription{
		BaseModel:     models.BaseModel{ID: d.ID, CreatedAt: d.CreatedAt, UpdatedAt: d.UpdatedAt},
		EmployerID:    d.EmployerID,
		Plan:          models.Plan(d.Plan),
		StartDate:     d.StartDate,
		EndDate:       d.EndDate,
		PaymentStatus: models.PaymentStatus(d.PaymentStatus),
		PaymentID:     d.PaymentID,
		Amount:        d.Amount,
		Currency:      d.Currency,
		IsActive:      d.IsActive,
		AutoRenew:     d.AutoRenew,
		TrialUsed:     d.TrialUsed,
		Features:      d.Features,
	}
}

type applicationDoc struct {
	ID              string        `bson:"_id"`
	JobID           string        `bson:"job_id"`
	JobSeekerID     string        `bson:"job_seeker_id"`
	Status          string        `bson:"status"`
	CoverLetter     string        `bson:"cover_letter,omitempty"`
	Resume          models.Resume `bson:"resume"`
	AppliedAt       time.Time     `bson:"applied_at"`
	Notes           string        `bson:"notes,omitempty"`
	InterviewDate   *time.Time    `bson:"interview_date,omitempty"`
	InterviewNotes  string        `bson:"interview_notes,omitempty"`
	RejectionReason string        `bson:"rejection_reason,omitempty"`
	CreatedAt       time.Time     `bson:"created_at"`
	UpdatedAt       time.Time     `bson:"updated_at"`
}

func toApplicationDoc(a *models.Application) *applicationDoc {
	return &applicationDoc{
		ID:              a.ID,
		JobID:           a.JobID,
		JobSeekerID:     a.JobSeekerID,
		Status:          string(a.Status),
		CoverLetter:     a.CoverLetter,
		Resume:          a.Resume,
		AppliedAt:       a.AppliedAt,
		Notes:           a.Notes,
		InterviewDate:   a.InterviewDate,
		InterviewNotes:  a.InterviewNotes,
		RejectionReason: a.RejectionReason,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
}

func fromApplicationDoc(d *applicationDoc) *models.Application {
	return &models.Application{
		BaseModel:       models.BaseModel{ID: d.ID, CreatedAt: d.CreatedAt, UpdatedAt: d.UpdatedAt},
		JobID:           d.JobID,
		JobSeekerID:     d.JobSeekerID,
		Status:          models.ApplicationStatus(d.Status),
		CoverLetter:     d.CoverLetter,
		Resume:          d.Resume,
		AppliedAt:       d.AppliedAt,
		Notes:           d.Notes,
		InterviewDate:   d.InterviewDate,
		InterviewNotes:  d.InterviewNotes,
		RejectionReason: d.RejectionReason,
	}
}
