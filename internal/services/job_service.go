package services

import (
	"context"
	"strings"
	"time"

	"github.com/gosimple/slug"

	"smarthire_backend/internal/auth"
	"smarthire_backend/internal/logger"
	"smarthire_backend/internal/models"
	"smarthire_backend/internal/repositories"
	"smarthire_backend/internal/services/dto"
	"smarthire_backend/pkg/apperrors"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

type JobService interface {
	Create(ctx context.Context, actor auth.Identity, req *dto.CreateJobRequest) (*models.Job, error)
	// Get возвращает вакансию с учетом видимости; actor может быть nil
	Get(ctx context.Context, actor *auth.Identity, jobID string) (*models.Job, error)
	ListApproved(ctx context.Context, query *dto.JobListQuery) (*dto.JobListResponse, error)
	ListForEmployer(ctx context.Context, actor auth.Identity) ([]*models.Job, error)
	Update(ctx context.Context, actor auth.Identity, jobID string, req *dto.UpdateJobRequest) (*models.Job, error)
	Delete(ctx context.Context, actor auth.Identity, jobID string) error
}

type JobServiceImpl struct {
	store repositories.Store
	now   func() time.Time
}

func NewJobService(store repositories.Store, now func() time.Time) JobService {
	return &JobServiceImpl{store: store, now: now}
}

// Create публикует вакансию на модерацию в пределах лимита тарифа
func (s *JobServiceImpl) Create(ctx context.Context, actor auth.Identity, req *dto.CreateJobRequest) (*models.Job, error) {
	if !actor.HasRole(models.UserRoleEmployer) {
		return nil, apperrors.ErrInsufficientPermissions
	}

	now := s.now()
	if err := s.checkPostingQuota(ctx, actor.UserID, now); err != nil {
		return nil, err
	}

	job := &models.Job{
		Title:           strings.TrimSpace(req.Title),
		Description:     req.Description,
		CompanyName:     strings.TrimSpace(req.CompanyName),
		Location:        models.JobLocation{City: req.Location.City, Country: req.Location.Country, Remote: req.Location.Remote},
		JobType:         models.JobType(req.JobType),
		ExperienceLevel: models.ExperienceLevel(req.ExperienceLevel),
		SkillsRequired:  append([]string(nil), req.SkillsRequired...),
		Requirements:    append([]string(nil), req.Requirements...),
		Benefits:        append([]string(nil), req.Benefits...),
		EmployerID:      actor.UserID,
		Status:          models.JobStatusPending,
		PostedDate:      now,
		ExpiryDate:      req.ExpiryDate,
		IsActive:        true,
	}
	job.ID = models.NewID()
	job.Slug = jobSlug(job.Title, job.ID)
	if req.Salary != nil {
		job.Salary = salaryFromInput(req.Salary)
	} else {
		job.Salary.Currency = models.DefaultCurrency
	}

	if err := s.store.Jobs().Create(ctx, job); err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "Job created", "job_id", job.ID, "employer_id", job.EmployerID)
	return job, nil
}

func (s *JobServiceImpl) Get(ctx context.Context, actor *auth.Identity, jobID string) (*models.Job, error) {
	job, err := s.findJob(ctx, jobID)
	if err != nil {
		return nil, err
	}

	if job.Status == models.JobStatusApproved {
		return job, nil
	}
	if actor != nil && actor.CanManage(job.EmployerID) {
		return job, nil
	}
	return nil, apperrors.ErrJobNotAvailable
}

func (s *JobServiceImpl) ListApproved(ctx context.Context, query *dto.JobListQuery) (*dto.JobListResponse, error) {
	page, limit := normalizePage(query.Page, query.Limit)

	filter := repositories.JobFilter{
		JobType:         models.JobType(query.JobType),
		ExperienceLevel: models.ExperienceLevel(query.ExperienceLevel),
		Remote:          query.Remote,
		Offset:          (page - 1) * limit,
		Limit:           limit,
	}

	jobs, total, err := s.store.Jobs().ListApproved(ctx, filter, s.now())
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.JobListResponse{Jobs: nonNilJobs(jobs), Total: total, Page: page, Limit: limit}, nil
}

func (s *JobServiceImpl) ListForEmployer(ctx context.Context, actor auth.Identity) ([]*models.Job, error) {
	jobs, err := s.store.Jobs().ListByEmployer(ctx, actor.UserID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return nonNilJobs(jobs), nil
}

// Update применяет частичную правку. Правка владельца возвращает вакансию на модерацию,
// правка администратора статус не меняет.
func (s *JobServiceImpl) Update(ctx context.Context, actor auth.Identity, jobID string, req *dto.UpdateJobRequest) (*models.Job, error) {
	job, err := s.findJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if !actor.CanManage(job.EmployerID) {
		return nil, apperrors.ErrNotJobOwner
	}
	if job.Status == models.JobStatusExpired {
		return nil, apperrors.ErrJobExpired
	}

	applyJobPatch(job, req)

	if !actor.IsAdmin() {
		if err := job.Resubmit(); err != nil {
			return nil, apperrors.ErrJobExpired
		}
	}

	if err := s.store.Jobs().Update(ctx, job); err != nil {
		if apperrors.Is(err, repositories.ErrJobNotFound) {
			return nil, apperrors.ErrJobNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "Job updated", "job_id", job.ID, "status", job.Status, "by", actor.UserID)
	return job, nil
}

func (s *JobServiceImpl) Delete(ctx context.Context, actor auth.Identity, jobID string) error {
	job, err := s.findJob(ctx, jobID)
	if err != nil {
		return err
	}
	if !actor.CanManage(job.EmployerID) {
		return apperrors.ErrNotJobOwner
	}

	if err := s.store.Jobs().Delete(ctx, job.ID); err != nil {
		if apperrors.Is(err, repositories.ErrJobNotFound) {
			return apperrors.ErrJobNotFound
		}
		return apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "Job deleted", "job_id", job.ID, "by", actor.UserID)
	return nil
}

// --- helpers ---

func (s *JobServiceImpl) findJob(ctx context.Context, jobID string) (*models.Job, error) {
	job, err := s.store.Jobs().FindByID(ctx, jobID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrJobNotFound) {
			return nil, apperrors.ErrJobNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	return job, nil
}

func (s *JobServiceImpl) checkPostingQuota(ctx context.Context, employerID string, now time.Time) error {
	sub, err := s.store.Subscriptions().FindByEmployer(ctx, employerID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrSubscriptionNotFound) {
			return apperrors.ErrNoActiveSubscription
		}
		return apperrors.InternalError(err)
	}
	if !sub.IsUsable(now) {
		return apperrors.ErrNoActiveSubscription
	}

	open, err := s.store.Jobs().CountOpenByEmployer(ctx, employerID)
	if err != nil {
		return apperrors.InternalError(err)
	}
	if !sub.AllowsJobPostings(open) {
		return apperrors.ErrJobLimitReached.WithDetails(map[string]interface{}{
			"plan":  sub.Plan,
			"limit": sub.Features.MaxJobPostings,
		})
	}
	return nil
}

func applyJobPatch(job *models.Job, req *dto.UpdateJobRequest) {
	if req.Title != nil {
		job.Title = strings.TrimSpace(*req.Title)
		job.Slug = jobSlug(job.Title, job.ID)
	}
	if req.Description != nil {
		job.Description = *req.Description
	}
	if req.CompanyName != nil {
		job.CompanyName = strings.TrimSpace(*req.CompanyName)
	}
	if req.Location != nil {
		job.Location = models.JobLocation{City: req.Location.City, Country: req.Location.Country, Remote: req.Location.Remote}
	}
	if req.JobType != nil {
		job.JobType = models.JobType(*req.JobType)
	}
	if req.ExperienceLevel != nil {
		job.ExperienceLevel = models.ExperienceLevel(*req.ExperienceLevel)
	}
	if req.Salary != nil {
		job.Salary = salaryFromInput(req.Salary)
	}
	if req.SkillsRequired != nil {
		job.SkillsRequired = append([]string(nil), (*req.SkillsRequired)...)
	}
	if req.Requirements != nil {
		job.Requirements = append([]string(nil), (*req.Requirements)...)
	}
	if req.Benefits != nil {
		job.Benefits = append([]string(nil), (*req.Benefits)...)
	}
	if req.ExpiryDate != nil {
		job.ExpiryDate = *req.ExpiryDate
	}
	if req.IsActive != nil {
		job.IsActive = *req.IsActive
	}
}

func salaryFromInput(in *dto.SalaryInput) models.Salary {
	currency := strings.ToUpper(in.Currency)
	if currency == "" {
		currency = models.DefaultCurrency
	}
	return models.Salary{Min: in.Min, Max: in.Max, Currency: currency, Negotiable: in.Negotiable}
}

// jobSlug - читаемый slug с коротким суффиксом id для уникальности
func jobSlug(title, id string) string {
	base := slug.Make(title)
	if len(id) >= 8 {
		id = id[:8]
	}
	if base == "" {
		return id
	}
	return base + "-" + id
}

func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	return page, limit
}

func nonNilJobs(jobs []*models.Job) []*models.Job {
	if jobs == nil {
		return []*models.Job{}
	}
	return jobs
}
