package handlers

import (
	"smarthire_backend/internal/services"
	"smarthire_backend/internal/validator"
)

// AppHandlers содержит все хэндлеры приложения.
type AppHandlers struct {
	HealthHandler       *HealthHandler
	AuthHandler         *AuthHandler
	JobHandler          *JobHandler
	ApplicationHandler  *ApplicationHandler
	SubscriptionHandler *SubscriptionHandler
	AdminHandler        *AdminHandler
}

func NewAppHandlers(svc *services.ServiceContainer, v *validator.Validator, store Pinger) *AppHandlers {
	base := NewBaseHandler(v)
	authn := svc.AuthService

	return &AppHandlers{
		HealthHandler:       NewHealthHandler(store),
		AuthHandler:         NewAuthHandler(base, svc.AuthService),
		JobHandler:          NewJobHandler(base, svc.JobService, svc.ApplicationService, authn),
		ApplicationHandler:  NewApplicationHandler(base, svc.ApplicationService, authn),
		SubscriptionHandler: NewSubscriptionHandler(base, svc.SubscriptionService, authn),
		AdminHandler:        NewAdminHandler(base, svc.AdminService, authn),
	}
}
