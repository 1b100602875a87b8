package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	mongod "go.mongodb.org/mongo-driver/v2/mongo"

	"smarthire_backend/internal/models"
	"smarthire_backend/internal/repositories"
)

type subscriptionRepo struct {
	col   *mongod.Collection
	txCtx context.Context
}

func (r *subscriptionRepo) Create(ctx context.Context, sub *models.Subscription) error {
	sub.Prepare(time.Now().UTC())
	if _, err := r.col.InsertOne(pick(ctx, r.txCtx), toSubscriptionDoc(sub)); err != nil {
		if isDuplicateKey(err) {
			return repositories.ErrSubscriptionExists
		}
		return fmt.Errorf("smarthire/mongo: create subscription: %w", err)
	}
	return nil
}

func (r *subscriptionRepo) FindByEmployer(ctx context.Context, employerID string) (*models.Subscription, error) {
	var d subscriptionDoc
	if err := r.col.FindOne(pick(ctx, r.txCtx), bson.M{"employer_id": employerID}).Decode(&d); err != nil {
		if isNoDocuments(err) {
			return nil, repositories.ErrSubscriptionNotFound
		}
		return nil, fmt.Errorf("smarthire/mongo: find subscription: %w", err)
	}
	return fromSubscriptionDoc(&d), nil
}

func (r *subscriptionRepo) Update(ctx context.Context, sub *models.Subscription) error {
	sub.UpdatedAt = time.Now().UTC()
	res, err := r.col.ReplaceOne(pick(ctx, r.txCtx), bson.M{"_id": sub.ID}, toSubscriptionDoc(sub))
	if err != nil {
		return fmt.Errorf("smarthire/mongo: update subscription: %w", err)
	}
	if res.MatchedCount == 0 {
		return repositories.ErrSubscriptionNotFound
	}
	return nil
}

func (r *subscriptionRepo) ExpireBefore(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.col.UpdateMany(pick(ctx, r.txCtx),
		bson.M{
			"end_date":       bson.M{"$lt": now},
			"payment_status": bson.M{"$ne": string(models.PaymentStatusExpired)},
		},
		bson.M{"$set": bson.M{
			"payment_status": string(models.PaymentStatusExpired),
			"updated_at":     now,
		}},
	)
	if err != nil {
		return 0, fmt.Errorf("smarthire/mongo: expire subscriptions: %w", err)
	}
	return res.ModifiedCount, nil
}
