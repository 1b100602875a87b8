package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"smarthire_backend/internal/models"
)

type SubscriptionRepositoryImpl struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &SubscriptionRepositoryImpl{db: db}
}

func (r *SubscriptionRepositoryImpl) Create(ctx context.Context, sub *models.Subscription) error {
	if err := r.db.WithContext(ctx).Create(sub).Error; err != nil {
		if isDuplicateKey(err) {
			return ErrSubscriptionExists
		}
		return err
	}
	return nil
}

func (r *SubscriptionRepositoryImpl) FindByEmployer(ctx context.Context, employerID string) (*models.Subscription, error) {
	var sub models.Subscription
	err := r.db.WithContext(ctx).First(&sub, "employer_id = ?", employerID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubscriptionNotFound
		}
		return nil, err
	}
	return &sub, nil
}

func (r *SubscriptionRepositoryImpl) Update(ctx context.Context, sub *models.Subscription) error {
	res := r.db.WithContext(ctx).Model(sub).Select("*").Updates(sub)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrSubscriptionNotFound
	}
	return nil
}

func (r *SubscriptionRepositoryImpl) ExpireBefore(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Model(&models.Subscription{}).
		Where("end_date < ? AND payment_status <> ?", now, models.PaymentStatusExpired).
		Updates(map[string]interface{}{
			"payment_status": models.PaymentStatusExpired,
			"updated_at":     now,
		})
	return res.RowsAffected, res.Error
}
