package dto

import (
	"time"

	"smarthire_backend/internal/models"
)

// RegisterRequest - запрос регистрации. Администратор через API не регистрируется.
type RegisterRequest struct {
	Name        string          `json:"name" validate:"required,min=2,max=50"`
	Email       string          `json:"email" validate:"required,email,max=255"`
	Password    string          `json:"password" validate:"required,min=6,max=128"`
	Role        models.UserRole `json:"role" validate:"required,oneof=jobseeker employer"`
	CompanyName string          `json:"companyName,omitempty" validate:"omitempty,min=2,max=100"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6,max=128"`
}

type EducationInput struct {
	Degree      string  `json:"degree" validate:"required,max=100"`
	Institution string  `json:"institution" validate:"required,max=100"`
	Year        int     `json:"year" validate:"omitempty,year"`
	GPA         float64 `json:"gpa" validate:"omitempty,min=0,max=10"`
}

type ExperienceInput struct {
	Company     string     `json:"company" validate:"required,max=100"`
	Position    string     `json:"position" validate:"required,max=100"`
	StartDate   *time.Time `json:"startDate" validate:"required,not-future"`
	EndDate     *time.Time `json:"endDate" validate:"omitempty,gtefield=StartDate"`
	Description string     `json:"description" validate:"omitempty,max=500"`
	Current     bool       `json:"current"`
}

type CertificationInput struct {
	Name       string     `json:"name" validate:"required,max=100"`
	Issuer     string     `json:"issuer" validate:"required,max=100"`
	Date       *time.Time `json:"date" validate:"omitempty,not-future"`
	ExpiryDate *time.Time `json:"expiryDate" validate:"omitempty,gtefield=Date"`
}

type LocationInput struct {
	City    string `json:"city" validate:"omitempty,max=100"`
	Country string `json:"country" validate:"omitempty,max=100"`
}

// UpdateProfileRequest - разрешенный набор изменяемых полей профиля.
// email, password и role здесь не меняются: неизвестные поля отклоняются при декодировании.
type UpdateProfileRequest struct {
	Name           *string               `json:"name,omitempty" validate:"omitempty,min=2,max=50"`
	Skills         *[]string             `json:"skills,omitempty" validate:"omitempty,dive,required,max=50"`
	Education      *[]EducationInput     `json:"education,omitempty" validate:"omitempty,dive"`
	Experience     *[]ExperienceInput    `json:"experience,omitempty" validate:"omitempty,dive"`
	Certifications *[]CertificationInput `json:"certifications,omitempty" validate:"omitempty,dive"`
	Location       *LocationInput        `json:"location,omitempty" validate:"omitempty"`
	Phone          *string               `json:"phone,omitempty" validate:"omitempty,phone"`
	CompanyName    *string               `json:"companyName,omitempty" validate:"omitempty,min=2,max=100"`
	CompanySize    *string               `json:"companySize,omitempty" validate:"omitempty,is-company-size"`
	Industry       *string               `json:"industry,omitempty" validate:"omitempty,max=100"`
	Website        *string               `json:"website,omitempty" validate:"omitempty,url"`
}

// AuthResponse - пользователь и access-токен
type AuthResponse struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}
