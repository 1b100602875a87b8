package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	mongod "go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"smarthire_backend/internal/models"
	"smarthire_backend/internal/repositories"
)

type applicationRepo struct {
	col   *mongod.Collection
	txCtx context.Context
}

// Create полагается на уникальный индекс (job_id, job_seeker_id)
func (r *applicationRepo) Create(ctx context.Context, app *models.Application) error {
	app.Prepare(time.Now().UTC())
	if _, err := r.col.InsertOne(pick(ctx, r.txCtx), toApplicationDoc(app)); err != nil {
		if isDuplicateKey(err) {
			return repositories.ErrDuplicateApplication
		}
		return fmt.Errorf("smarthire/mongo: create application: %w", err)
	}
	return nil
}

func (r *applicationRepo) FindByID(ctx context.Context, id string) (*models.Application, error) {
	var d applicationDoc
	if err := r.col.FindOne(pick(ctx, r.txCtx), bson.M{"_id": id}).Decode(&d); err != nil {
		if isNoDocuments(err) {
			return nil, repositories.ErrApplicationNotFound
		}
		return nil, fmt.Errorf("smarthire/mongo: find application: %w", err)
	}
	return fromApplicationDoc(&d), nil
}

func (r *applicationRepo) Update(ctx context.Context, app *models.Application) error {
	app.UpdatedAt = time.Now().UTC()
	res, err := r.col.ReplaceOne(pick(ctx, r.txCtx), bson.M{"_id": app.ID}, toApplicationDoc(app))
	if err != nil {
		return fmt.Errorf("smarthire/mongo: update application: %w", err)
	}
	if res.MatchedCount == 0 {
		return repositories.ErrApplicationNotFound
	}
	return nil
}

func (r *applicationRepo) ListByJob(ctx context.Context, jobID string) ([]*models.Application, error) {
	return r.find(pick(ctx, r.txCtx), bson.M{"job_id": jobID})
}

func (r *applicationRepo) ListBySeeker(ctx context.Context, seekerID string) ([]*models.Application, error) {
	return r.find(pick(ctx, r.txCtx), bson.M{"job_seeker_id": seekerID})
}

func (r *applicationRepo) CountByJob(ctx context.Context, jobID string) (int64, error) {
	n, err := r.col.CountDocuments(pick(ctx, r.txCtx), bson.M{"job_id": jobID})
	if err != nil {
		return 0, fmt.Errorf("smarthire/mongo: count applications: %w", err)
	}
	return n, nil
}

func (r *applicationRepo) find(ctx context.Context, q bson.M) ([]*models.Application, error) {
	cursor, err := r.col.Find(ctx, q, options.Find().SetSort(bson.D{{Key: "applied_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("smarthire/mongo: list applications: %w", err)
	}

	var docs []applicationDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("smarthire/mongo: decode applications: %w", err)
	}

	apps := make([]*models.Application, 0, len(docs))
	for i := range docs {
		apps = append(apps, fromApplicationDoc(&docs[i]))
	}
	return apps, nil
}
