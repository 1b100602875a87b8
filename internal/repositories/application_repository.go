package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"smarthire_backend/internal/models"
)

type ApplicationRepositoryImpl struct {
	db *gorm.DB
}

func NewApplicationRepository(db *gorm.DB) ApplicationRepository {
	return &ApplicationRepositoryImpl{db: db}
}

// Create полагается на уникальный индекс (job_id, job_seeker_id)
func (r *ApplicationRepositoryImpl) Create(ctx context.Context, app *models.Application) error {
	if err := r.db.WithContext(ctx).Create(app).Error; err != nil {
		if isDuplicateKey(err) {
			return ErrDuplicateApplication
		}
		return err
	}
	return nil
}

func (r *ApplicationRepositoryImpl) FindByID(ctx context.Context, id string) (*models.Application, error) {
	var app models.Application
	err := r.db.WithContext(ctx).First(&app, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, err
	}
	return &app, nil
}

func (r *ApplicationRepositoryImpl) Update(ctx context.Context, app *models.Application) error {
	res := r.db.WithContext(ctx).Model(app).Select("*").Updates(app)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrApplicationNotFound
	}
	return nil
}

func (r *ApplicationRepositoryImpl) ListByJob(ctx context.Context, jobID string) ([]*models.Application, error) {
	var apps []*models.Application
	err := r.db.WithContext(ctx).
		Where("job_id = ?", jobID).
		Order("applied_at DESC").
		Find(&apps).Error
	return apps, err
}

func (r *ApplicationRepositoryImpl) ListBySeeker(ctx context.Context, seekerID string) ([]*models.Application, error) {
	var apps []*models.Application
	err := r.db.WithContext(ctx).
		Where("job_seeker_id = ?", seekerID).
		Order("applied_at DESC").
		Find(&apps).Error
	return apps, err
}

func (r *ApplicationRepositoryImpl) CountByJob(ctx context.Context, jobID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Application{}).Where("job_id = ?", jobID).Count(&count).Error
	return count, err
}
