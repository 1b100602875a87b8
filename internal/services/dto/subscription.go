package dto

import (
	"smarthire_backend/internal/models"
)

// PlanInfo - элемент каталога тарифов
type PlanInfo struct {
	Plan     models.Plan     `json:"plan"`
	Features models.Features `json:"features"`
}

type AssignPlanRequest struct {
	Plan          string  `json:"plan" validate:"required,is-plan"`
	DurationDays  int     `json:"durationDays" validate:"omitempty,min=1,max=366"`
	Amount        float64 `json:"amount" validate:"gte=0"`
	PaymentStatus string  `json:"paymentStatus" validate:"omitempty,is-payment-status"`
	PaymentID     string  `json:"paymentId" validate:"omitempty,max=100"`
}

type UpdateUserStatusRequest struct {
	IsActive *bool `json:"isActive" validate:"required"`
}

// SweepResult - итог прогона истечения сроков
type SweepResult struct {
	JobsExpired          int64 `json:"jobsExpired"`
	SubscriptionsExpired int64 `json:"subscriptionsExpired"`
}
