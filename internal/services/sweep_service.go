package services

import (
	"context"
	"time"

	"smarthire_backend/internal/logger"
	"smarthire_backend/internal/repositories"
	"smarthire_backend/internal/services/dto"
)

// SweepService истекает просроченные вакансии и подписки.
// Повторный прогон ничего не меняет.
type SweepService interface {
	Run(ctx context.Context) *dto.SweepResult
}

type SweepServiceImpl struct {
	store repositories.Store
	now   func() time.Time
}

func NewSweepService(store repositories.Store, now func() time.Time) SweepService {
	return &SweepServiceImpl{store: store, now: now}
}

// Run выполняет оба шага независимо; ошибка одного шага логируется и не прерывает другой
func (s *SweepServiceImpl) Run(ctx context.Context) *dto.SweepResult {
	now := s.now()
	result := &dto.SweepResult{}

	jobs, err := s.store.Jobs().ExpireBefore(ctx, now)
	if err != nil {
		logger.WorkerLog("expiry_sweep", "expire_jobs", err)
	} else {
		result.JobsExpired = jobs
		logger.WorkerLog("expiry_sweep", "expire_jobs", nil, "affected", jobs)
	}

	subs, err := s.store.Subscriptions().ExpireBefore(ctx, now)
	if err != nil {
		logger.WorkerLog("expiry_sweep", "expire_subscriptions", err)
	} else {
		result.SubscriptionsExpired = subs
		logger.WorkerLog("expiry_sweep", "expire_subscriptions", nil, "affected", subs)
	}

	return result
}
