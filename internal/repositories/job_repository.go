package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"smarthire_backend/internal/models"
)

type JobRepositoryImpl struct {
	db *gorm.DB
}

func NewJobRepository(db *gorm.DB) JobRepository {
	return &JobRepositoryImpl{db: db}
}

func (r *JobRepositoryImpl) Create(ctx context.Context, job *models.Job) error {
	return r.db.WithContext(ctx).Create(job).Error
}

func (r *JobRepositoryImpl) FindByID(ctx context.Context, id string) (*models.Job, error) {
	var job models.Job
	err := r.db.WithContext(ctx).First(&job, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}
	return &job, nil
}

func (r *JobRepositoryImpl) Update(ctx context.Context, job *models.Job) error {
	res := r.db.WithContext(ctx).Model(job).Select("*").Updates(job)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrJobNotFound
	}
	return nil
}

func (r *JobRepositoryImpl) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&models.Job{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrJobNotFound
	}
	return nil
}

func (r *JobRepositoryImpl) ListApproved(ctx context.Context, filter JobFilter, now time.Time) ([]*models.Job, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Job{}).
		Where("status = ? AND is_active = ? AND expiry_date >= ?", models.JobStatusApproved, true, now)

	if filter.JobType != "" {
		query = query.Where("job_type = ?", filter.JobType)
	}
	if filter.ExperienceLevel != "" {
		query = query.Where("experience_level = ?", filter.ExperienceLevel)
	}
	if filter.Remote != nil {
		query = query.Where("location_remote = ?", *filter.Remote)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var jobs []*models.Job
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit).Offset(filter.Offset)
	}
	if err := query.Order("posted_date DESC").Find(&jobs).Error; err != nil {
		return nil, 0, err
	}
	return jobs, total, nil
}

func (r *JobRepositoryImpl) ListByEmployer(ctx context.Context, employerID string) ([]*models.Job, error) {
	var jobs []*models.Job
	err := r.db.WithContext(ctx).
		Where("employer_id = ?", employerID).
		Order("posted_date DESC").
		Find(&jobs).Error
	return jobs, err
}

func (r *JobRepositoryImpl) ListByStatus(ctx context.Context, status models.JobStatus) ([]*models.Job, error) {
	query := r.db.WithContext(ctx).Model(&models.Job{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var jobs []*models.Job
	err := query.Order("posted_date DESC").Find(&jobs).Error
	return jobs, err
}

func (r *JobRepositoryImpl) CountOpenByEmployer(ctx context.Context, employerID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Job{}).
		Where("employer_id = ? AND status <> ?", employerID, models.JobStatusExpired).
		Count(&count).Error
	return count, err
}

func (r *JobRepositoryImpl) ExpireBefore(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Model(&models.Job{}).
		Where("expiry_date < ? AND status <> ?", now, models.JobStatusExpired).
		Updates(map[string]interface{}{
			"status":     models.JobStatusExpired,
			"updated_at": now,
		})
	return res.RowsAffected, res.Error
}
