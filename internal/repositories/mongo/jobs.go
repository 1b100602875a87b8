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

var newestFirst = bson.D{{Key: "posted_date", Value: -1}, {Key: "_id", Value: -1}}

type jobRepo struct {
	col   *mongod.Collection
	txCtx context.Context
}

func (r *jobRepo) Create(ctx context.Context, job *models.Job) error {
	job.Prepare(time.Now().UTC())
	if _, err := r.col.InsertOne(pick(ctx, r.txCtx), toJobDoc(job)); err != nil {
		return fmt.Errorf("smarthire/mongo: create job: %w", err)
	}
	return nil
}

func (r *jobRepo) FindByID(ctx context.Context, id string) (*models.Job, error) {
	var d jobDoc
	if err := r.col.FindOne(pick(ctx, r.txCtx), bson.M{"_id": id}).Decode(&d); err != nil {
		if isNoDocuments(err) {
			return nil, repositories.ErrJobNotFound
		}
		return nil, fmt.Errorf("smarthire/mongo: find job: %w", err)
	}
	return fromJobDoc(&d), nil
}

func (r *jobRepo) Update(ctx context.Context, job *models.Job) error {
	job.UpdatedAt = time.Now().UTC()
	res, err := r.col.ReplaceOne(pick(ctx, r.txCtx), bson.M{"_id": job.ID}, toJobDoc(job))
	if err != nil {
		return fmt.Errorf("smarthire/mongo: update job: %w", err)
	}
	if res.MatchedCount == 0 {
		return repositories.ErrJobNotFound
	}
	return nil
}

func (r *jobRepo) Delete(ctx context.Context, id string) error {
	res, err := r.col.DeleteOne(pick(ctx, r.txCtx), bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("smarthire/mongo: delete job: %w", err)
	}
	if res.DeletedCount == 0 {
		return repositories.ErrJobNotFound
	}
	return nil
}

func (r *jobRepo) ListApproved(ctx context.Context, filter repositories.JobFilter, now time.Time) ([]*models.Job, int64, error) {
	ctx = pick(ctx, r.txCtx)

	q := bson.M{
		"status":      string(models.JobStatusApproved),
		"is_active":   true,
		"expiry_date": bson.M{"$gte": now},
	}
	if filter.JobType != "" {
		q["job_type"] = string(filter.JobType)
	}
	if filter.ExperienceLevel != "" {
		q["experience_level"] = string(filter.ExperienceLevel)
	}
	if filter.Remote != nil {
		q["location.remote"] = *filter.Remote
	}

	total, err := r.col.CountDocuments(ctx, q)
	if err != nil {
		return nil, 0, fmt.Errorf("smarthire/mongo: count jobs: %w", err)
	}

	opts := options.Find().SetSort(newestFirst)
	if filter.Limit > 0 {
		opts.SetSkip(int64(filter.Offset)).SetLimit(int64(filter.Limit))
	}

	jobs, err := r.find(ctx, q, opts)
	if err != nil {
		return nil, 0, err
	}
	return jobs, total, nil
}

func (r *jobRepo) ListByEmployer(ctx context.Context, employerID string) ([]*models.Job, error) {
	return r.find(pick(ctx, r.txCtx), bson.M{"employer_id": employerID}, options.Find().SetSort(newestFirst))
}

func (r *jobRepo) ListByStatus(ctx context.Context, status models.JobStatus) ([]*models.Job, error) {
	q := bson.M{}
	if status != "" {
		q["status"] = string(status)
	}
	return r.find(pick(ctx, r.txCtx), q, options.Find().SetSort(newestFirst))
}

func (r *jobRepo) CountOpenByEmployer(ctx context.Context, employerID string) (int64, error) {
	n, err := r.col.CountDocuments(pick(ctx, r.txCtx), bson.M{
		"employer_id": employerID,
		"status":      bson.M{"$ne": string(models.JobStatusExpired)},
	})
	if err != nil {
		return 0, fmt.Errorf("smarthire/mongo: count employer jobs: %w", err)
	}
	return n, nil
}

func (r *jobRepo) ExpireBefore(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.col.UpdateMany(pick(ctx, r.txCtx),
		bson.M{
			"expiry_date": bson.M{"$lt": now},
			"status":      bson.M{"$ne": string(models.JobStatusExpired)},
		},
		bson.M{"$set": bson.M{
			"status":     string(models.JobStatusExpired),
			"updated_at": now,
		}},
	)
	if err != nil {
		return 0, fmt.Errorf("smarthire/mongo: expire jobs: %w", err)
	}
	return res.ModifiedCount, nil
}

func (r *jobRepo) find(ctx context.Context, q bson.M, opts *options.FindOptionsBuilder) ([]*models.Job, error) {
	cursor, err := r.col.Find(ctx, q, opts)
	if err != nil {
		return nil, fmt.Errorf("smarthire/mongo: list jobs: %w", err)
	}

	var docs []jobDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("smarthire/mongo: decode jobs: %w", err)
	}

	jobs := make([]*models.Job, 0, len(docs))
	for i := range docs {
		jobs = append(jobs, fromJobDoc(&docs[i]))
	}
	return jobs, nil
}
