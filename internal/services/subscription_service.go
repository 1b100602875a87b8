package services

import (
	"context"
	"time"

	"smarthire_backend/internal/auth"
	"smarthire_backend/internal/models"
	"smarthire_backend/internal/repositories"
	"smarthire_backend/internal/services/dto"
	"smarthire_backend/pkg/apperrors"
)

type SubscriptionService interface {
	Plans() []dto.PlanInfo
	Mine(ctx context.Context, actor auth.Identity) (*models.Subscription, error)
}

type SubscriptionServiceImpl struct {
	store repositories.Store
	now   func() time.Time
}

func NewSubscriptionService(store repositories.Store, now func() time.Time) SubscriptionService {
	return &SubscriptionServiceImpl{store: store, now: now}
}

// Plans - каталог тарифов с лимитами
func (s *SubscriptionServiceImpl) Plans() []dto.PlanInfo {
	plans := []models.Plan{models.PlanFree, models.PlanStandard, models.PlanPremium}
	out := make([]dto.PlanInfo, 0, len(plans))
	for _, p := range plans {
		out = append(out, dto.PlanInfo{Plan: p, Features: models.PlanFeatures(p)})
	}
	return out
}

func (s *SubscriptionServiceImpl) Mine(ctx context.Context, actor auth.Identity) (*models.Subscription, error) {
	sub, err := s.store.Subscriptions().FindByEmployer(ctx, actor.UserID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrSubscriptionNotFound) {
			return nil, apperrors.ErrSubscriptionNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	return sub, nil
}
