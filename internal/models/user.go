package models

import (
	"time"

	"gorm.io/datatypes"
)

type Location struct {
	City    string `gorm:"size:100" json:"city,omitempty"`
	Country string `gorm:"size:100" json:"country,omitempty"`
}

type Education struct {
	Degree      string  `json:"degree,omitempty"`
	Institution string  `json:"institution,omitempty"`
	Year        int     `json:"year,omitempty"`
	GPA         float64 `json:"gpa,omitempty"`
}

type Experience struct {
	Company     string     `json:"company,omitempty"`
	Position    string     `json:"position,omitempty"`
	StartDate   *time.Time `json:"startDate,omitempty"`
	EndDate     *time.Time `json:"endDate,omitempty"`
	Description string     `json:"description,omitempty"`
	Current     bool       `json:"current"`
}

type Certification struct {
	Name       string     `json:"name,omitempty"`
	Issuer     string     `json:"issuer,omitempty"`
	Date       *time.Time `json:"date,omitempty"`
	ExpiryDate *time.Time `json:"expiryDate,omitempty"`
}

type User struct {
	BaseModel
	Name         string   `gorm:"size:50;not null" json:"name"`
	Email        string   `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash string   `gorm:"not null" json:"-"`
	Role         UserRole `gorm:"type:varchar(20);not null;index" json:"role"`
	IsActive     bool     `gorm:"not null" json:"isActive"`

	// Профиль соискателя
	Skills         datatypes.JSONSlice[string]        `json:"skills"`
	Education      datatypes.JSONSlice[Education]     `json:"education"`
	Experience     datatypes.JSONSlice[Experience]    `json:"experience"`
	Certifications datatypes.JSONSlice[Certification] `json:"certifications"`
	Location       Location                           `gorm:"embedded;embeddedPrefix:location_" json:"location"`
	Phone          string                             `gorm:"size:20" json:"phone,omitempty"`

	// Профиль работодателя
	CompanyName string      `gorm:"size:100" json:"companyName,omitempty"`
	CompanySize CompanySize `gorm:"type:varchar(20)" json:"companySize,omitempty"`
	Industry    string      `gorm:"size:100" json:"industry,omitempty"`
	Website     string      `gorm:"size:255" json:"website,omitempty"`
}

func (u *User) IsAdmin() bool {
	return u.Role == UserRoleAdmin
}

func (u *User) IsEmployer() bool {
	return u.Role == UserRoleEmployer
}
