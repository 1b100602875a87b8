package services

import (
	"context"
	"time"

	"smarthire_backend/internal/auth"
	"smarthire_backend/internal/logger"
	"smarthire_backend/internal/models"
	"smarthire_backend/internal/repositories"
	"smarthire_backend/internal/services/dto"
	"smarthire_backend/pkg/apperrors"
)

// DefaultPlanDuration - срок тарифа, если durationDays не задан
const DefaultPlanDuration = 30 * 24 * time.Hour

type AdminService interface {
	ChangeJobStatus(ctx context.Context, actor auth.Identity, jobID string, req *dto.UpdateJobStatusRequest) (*models.Job, error)
	ListJobs(ctx context.Context, status models.JobStatus) ([]*models.Job, error)
	SetUserActive(ctx context.Context, actor auth.Identity, userID string, active bool) (*models.User, error)
	AssignPlan(ctx context.Context, userID string, req *dto.AssignPlanRequest) (*models.Subscription, error)
	RunSweep(ctx context.Context) *dto.SweepResult
}

type AdminServiceImpl struct {
	store    repositories.Store
	notifier NotificationService
	sweep    SweepService
	now      func() time.Time
}

func NewAdminService(store repositories.Store, notifier NotificationService, sweep SweepService, now func() time.Time) AdminService {
	return &AdminServiceImpl{store: store, notifier: notifier, sweep: sweep, now: now}
}

// ChangeJobStatus - модерация: approved, rejected или expired
func (s *AdminServiceImpl) ChangeJobStatus(ctx context.Context, actor auth.Identity, jobID string, req *dto.UpdateJobStatusRequest) (*models.Job, error) {
	job, err := s.store.Jobs().FindByID(ctx, jobID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrJobNotFound) {
			return nil, apperrors.ErrJobNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	now := s.now()
	switch models.JobStatus(req.Status) {
	case models.JobStatusApproved:
		err = job.Approve(actor.UserID, now)
	case models.JobStatusRejected:
		err = job.Reject(req.RejectionReason(), now)
	case models.JobStatusExpired:
		err = job.Expire()
	default:
		return nil, apperrors.ErrInvalidJobStatus
	}
	if err != nil {
		return nil, apperrors.ErrInvalidStatus("job",
			"Cannot change job status from "+string(job.Status)+" to "+req.Status)
	}

	if err := s.store.Jobs().Update(ctx, job); err != nil {
		if apperrors.Is(err, repositories.ErrJobNotFound) {
			return nil, apperrors.ErrJobNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "Job reviewed", "job_id", job.ID, "status", job.Status, "admin_id", actor.UserID)
	s.notifyEmployer(ctx, job)
	return job, nil
}

func (s *AdminServiceImpl) ListJobs(ctx context.Context, status models.JobStatus) ([]*models.Job, error) {
	if status != "" && !status.IsValid() {
		return nil, apperrors.ErrInvalidJobStatus
	}
	jobs, err := s.store.Jobs().ListByStatus(ctx, status)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return nonNilJobs(jobs), nil
}

// SetUserActive включает или отключает учетную запись. Себя отключить нельзя.
func (s *AdminServiceImpl) SetUserActive(ctx context.Context, actor auth.Identity, userID string, active bool) (*models.User, error) {
	if actor.UserID == userID {
		return nil, apperrors.ErrCannotModifySelf
	}

	user, err := s.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.IsActive = active
	if err := s.store.Users().Update(ctx, user); err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "User status changed", "user_id", user.ID, "is_active", active, "admin_id", actor.UserID)
	return user, nil
}

// AssignPlan назначает работодателю тариф и пересчитывает лимиты
func (s *AdminServiceImpl) AssignPlan(ctx context.Context, userID string, req *dto.AssignPlanRequest) (*models.Subscription, error) {
	plan := models.Plan(req.Plan)
	if !plan.IsValid() {
		return nil, apperrors.ErrInvalidPlan
	}

	user, err := s.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.IsEmployer() {
		return nil, apperrors.ErrInvalidUserRole
	}

	duration := DefaultPlanDuration
	if req.DurationDays > 0 {
		duration = time.Duration(req.DurationDays) * 24 * time.Hour
	}
	status := models.PaymentStatusCompleted
	if req.PaymentStatus != "" {
		status = models.PaymentStatus(req.PaymentStatus)
	}

	var sub *models.Subscription
	err = s.store.WithTx(ctx, func(tx repositories.Store) error {
		existing, err := tx.Subscriptions().FindByEmployer(ctx, userID)
		if err != nil && !apperrors.Is(err, repositories.ErrSubscriptionNotFound) {
			return err
		}

		if existing == nil {
			sub = &models.Subscription{EmployerID: userID, Currency: models.DefaultCurrency}
		} else {
			sub = existing
		}
		sub.AssignPlan(plan, duration, req.Amount, status, s.now())
		if req.PaymentID != "" {
			sub.PaymentID = req.PaymentID
		}

		if existing == nil {
			return tx.Subscriptions().Create(ctx, sub)
		}
		return tx.Subscriptions().Update(ctx, sub)
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "Plan assigned", "employer_id", userID, "plan", plan)
	return sub, nil
}

func (s *AdminServiceImpl) RunSweep(ctx context.Context) *dto.SweepResult {
	return s.sweep.Run(ctx)
}

func (s *AdminServiceImpl) findUser(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.store.Users().FindByID(ctx, userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	return user, nil
}

func (s *AdminServiceImpl) notifyEmployer(ctx context.Context, job *models.Job) {
	if s.notifier == nil {
		return
	}
	employer, err := s.store.Users().FindByID(ctx, job.EmployerID)
	if err != nil {
		logger.CtxWithError(ctx, "Failed to load employer for notification", err, "job_id", job.ID)
		return
	}
	s.notifier.JobReviewed(ctx, job, employer)
}
