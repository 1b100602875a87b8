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

type ApplicationService interface {
	Apply(ctx context.Context, actor auth.Identity, jobID string, req *dto.ApplyRequest) (*models.Application, error)
	ListMine(ctx context.Context, actor auth.Identity) (*dto.ApplicationListResponse, error)
	ListForJob(ctx context.Context, actor auth.Identity, jobID string) (*dto.ApplicationListResponse, error)
	UpdateStatus(ctx context.Context, actor auth.Identity, applicationID string, req *dto.UpdateApplicationStatusRequest) (*models.Application, error)
}

type ApplicationServiceImpl struct {
	store repositories.Store
	now   func() time.Time
}

func NewApplicationService(store repositories.Store, now func() time.Time) ApplicationService {
	return &ApplicationServiceImpl{store: store, now: now}
}

// Apply - отклик соискателя. Повторный отклик на ту же вакансию отклоняется хранилищем.
func (s *ApplicationServiceImpl) Apply(ctx context.Context, actor auth.Identity, jobID string, req *dto.ApplyRequest) (*models.Application, error) {
	if !actor.HasRole(models.UserRoleJobSeeker) {
		return nil, apperrors.ErrInsufficientPermissions
	}

	job, err := s.findJob(ctx, jobID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	if !job.AcceptsApplications(now) {
		return nil, apperrors.ErrJobClosed
	}

	if err := s.checkApplicationQuota(ctx, job); err != nil {
		return nil, err
	}

	app := &models.Application{
		JobID:       job.ID,
		JobSeekerID: actor.UserID,
		Status:      models.ApplicationStatusApplied,
		CoverLetter: req.CoverLetter,
		AppliedAt:   now,
	}
	if req.Resume != nil {
		app.Resume = models.Resume{Filename: req.Resume.Filename, Path: req.Resume.Path, UploadedAt: &now}
	}

	if err := s.store.Applications().Create(ctx, app); err != nil {
		if apperrors.Is(err, repositories.ErrDuplicateApplication) {
			return nil, apperrors.ErrAlreadyApplied
		}
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "Application submitted", "application_id", app.ID, "job_id", job.ID)
	return app, nil
}

func (s *ApplicationServiceImpl) ListMine(ctx context.Context, actor auth.Identity) (*dto.ApplicationListResponse, error) {
	apps, err := s.store.Applications().ListBySeeker(ctx, actor.UserID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return applicationList(apps), nil
}

func (s *ApplicationServiceImpl) ListForJob(ctx context.Context, actor auth.Identity, jobID string) (*dto.ApplicationListResponse, error) {
	job, err := s.findJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if !actor.CanManage(job.EmployerID) {
		return nil, apperrors.ErrNotJobOwner
	}

	apps, err := s.store.Applications().ListByJob(ctx, job.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return applicationList(apps), nil
}

// UpdateStatus - рассмотрение отклика владельцем вакансии или администратором
func (s *ApplicationServiceImpl) UpdateStatus(ctx context.Context, actor auth.Identity, applicationID string, req *dto.UpdateApplicationStatusRequest) (*models.Application, error) {
	app, err := s.store.Applications().FindByID(ctx, applicationID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrApplicationNotFound) {
			return nil, apperrors.ErrApplicationNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	job, err := s.findJob(ctx, app.JobID)
	if err != nil {
		return nil, err
	}
	if !actor.CanManage(job.EmployerID) {
		return nil, apperrors.ErrNotJobOwner
	}

	next := models.ApplicationStatus(req.Status)
	if !models.CanTransitionApplication(app.Status, next) {
		return nil, apperrors.ErrInvalidStatus("application",
			"Cannot change application status from "+string(app.Status)+" to "+string(next))
	}

	app.Status = next
	if req.Notes != nil {
		app.Notes = *req.Notes
	}
	if req.InterviewDate != nil {
		app.InterviewDate = req.InterviewDate
	}
	if req.InterviewNotes != nil {
		app.InterviewNotes = *req.InterviewNotes
	}
	if req.RejectionReason != nil {
		app.RejectionReason = *req.RejectionReason
	}

	if err := s.store.Applications().Update(ctx, app); err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "Application status changed", "application_id", app.ID, "status", app.Status)
	return app, nil
}

func (s *ApplicationServiceImpl) findJob(ctx context.Context, jobID string) (*models.Job, error) {
	job, err := s.store.Jobs().FindByID(ctx, jobID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrJobNotFound) {
			return nil, apperrors.ErrJobNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	return job, nil
}

// checkApplicationQuota ограничивает число откликов на вакансию тарифом владельца
func (s *ApplicationServiceImpl) checkApplicationQuota(ctx context.Context, job *models.Job) error {
	features := models.PlanFeatures(models.PlanFree)
	sub, err := s.store.Subscriptions().FindByEmployer(ctx, job.EmployerID)
	switch {
	case err == nil:
		features = sub.Features
	case !apperrors.Is(err, repositories.ErrSubscriptionNotFound):
		return apperrors.InternalError(err)
	}

	count, err := s.store.Applications().CountByJob(ctx, job.ID)
	if err != nil {
		return apperrors.InternalError(err)
	}

	limited := &models.Subscription{Features: features}
	if !limited.AllowsApplications(count) {
		return apperrors.ErrApplicationLimitReached
	}
	return nil
}

func applicationList(apps []*models.Application) *dto.ApplicationListResponse {
	if apps == nil {
		apps = []*models.Application{}
	}
	return &dto.ApplicationListResponse{Applications: apps, Total: len(apps)}
}
