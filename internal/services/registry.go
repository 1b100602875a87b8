package services

import (
	"time"

	"smarthire_backend/internal/auth"
	"smarthire_backend/internal/repositories"
)

// ServiceContainer содержит все сервисы приложения.
type ServiceContainer struct {
	AuthService         AuthService
	JobService          JobService
	ApplicationService  ApplicationService
	SubscriptionService SubscriptionService
	AdminService        AdminService
	SweepService        SweepService
	NotificationService NotificationService
}

// NewServiceContainer собирает сервисы над одним хранилищем.
// notifier может быть nil; now по умолчанию time.Now.
func NewServiceContainer(
	store repositories.Store,
	tokens *auth.TokenManager,
	notifier NotificationService,
	now func() time.Time,
) *ServiceContainer {
	if now == nil {
		now = time.Now
	}

	sweep := NewSweepService(store, now)

	return &ServiceContainer{
		AuthService:         NewAuthService(store, tokens, now),
		JobService:          NewJobService(store, now),
		ApplicationService:  NewApplicationService(store, now),
		SubscriptionService: NewSubscriptionService(store, now),
		AdminService:        NewAdminService(store, notifier, sweep, now),
		SweepService:        sweep,
		NotificationService: notifier,
	}
}
