package models

import (
	"time"
)

const (
	// TrialPeriod - длительность бесплатного периода для нового работодателя
	TrialPeriod = 7 * 24 * time.Hour

	DefaultCurrency = "NPR"

	// Unlimited в лимитах тарифа
	Unlimited = -1
)

type Features struct {
	MaxJobPostings    int  `json:"maxJobPostings"`
	MaxApplications   int  `json:"maxApplications"`
	PrioritySupport   bool `json:"prioritySupport"`
	AdvancedAnalytics bool `json:"advancedAnalytics"`
}

// PlanFeatures вычисляет лимиты тарифа. Неизвестный тариф получает лимиты free.
func PlanFeatures(plan Plan) Features {
	switch plan {
	case PlanStandard:
		return Features{MaxJobPostings: 10, MaxApplications: 100}
	case PlanPremium:
		return Features{
			MaxJobPostings:    Unlimited,
			MaxApplications:   Unlimited,
			PrioritySupport:   true,
			AdvancedAnalytics: true,
		}
	default:
		return Features{MaxJobPostings: 1, MaxApplications: 10}
	}
}

type Subscription struct {
	BaseModel
	EmployerID    string        `gorm:"type:varchar(36);uniqueIndex;not null" json:"employer"`
	Plan          Plan          `gorm:"type:varchar(20);not null" json:"plan"`
	StartDate     time.Time     `gorm:"not null" json:"startDate"`
	EndDate       time.Time     `gorm:"not null;index" json:"endDate"`
	PaymentStatus PaymentStatus `gorm:"type:varchar(20);not null;index" json:"paymentStatus"`
	PaymentID     string        `gorm:"size:100" json:"paymentId,omitempty"`
	Amount        float64       `json:"amount"`
	Currency      string        `gorm:"size:3;not null" json:"currency"`
	IsActive      bool          `gorm:"not null" json:"isActive"`
	AutoRenew     bool          `gorm:"not null" json:"autoRenew"`
	TrialUsed     bool          `gorm:"not null" json:"trialUsed"`
	Features      Features      `gorm:"embedded;embeddedPrefix:feature_" json:"features"`
}

// NewTrialSubscription создает бесплатную подписку на TrialPeriod
func NewTrialSubscription(employerID string, now time.Time) *Subscription {
	return &Subscription{
		EmployerID:    employerID,
		Plan:          PlanFree,
		StartDate:     now,
		EndDate:       now.Add(TrialPeriod),
		PaymentStatus: PaymentStatusPending,
		Currency:      DefaultCurrency,
		IsActive:      true,
		TrialUsed:     true,
		Features:      PlanFeatures(PlanFree),
	}
}

// IsUsable - подписка дает право публиковать вакансии
func (s *Subscription) IsUsable(now time.Time) bool {
	return s.IsActive && s.PaymentStatus != PaymentStatusExpired && !s.EndDate.Before(now)
}

// AllowsJobPostings проверяет лимит по количеству неистекших вакансий
func (s *Subscription) AllowsJobPostings(current int64) bool {
	return withinLimit(s.Features.MaxJobPostings, current)
}

func (s *Subscription) AllowsApplications(current int64) bool {
	return withinLimit(s.Features.MaxApplications, current)
}

// AssignPlan меняет тариф и пересчитывает лимиты
func (s *Subscription) AssignPlan(plan Plan, duration time.Duration, amount float64, status PaymentStatus, now time.Time) {
	s.Plan = plan
	s.Features = PlanFeatures(plan)
	s.StartDate = now
	s.EndDate = now.Add(duration)
	s.Amount = amount
	s.PaymentStatus = status
	s.IsActive = true
}

func withinLimit(limit int, current int64) bool {
	if limit == Unlimited {
		return true
	}
	return current < int64(limit)
}
