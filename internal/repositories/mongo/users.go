package mongo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	mongod "go.mongodb.org/mongo-driver/v2/mongo"

	"smarthire_backend/internal/models"
	"smarthire_backend/internal/repositories"
)

type userRepo struct {
	col   *mongod.Collection
	txCtx context.Context
}

func (r *userRepo) Create(ctx context.Context, user *models.User) error {
	user.Email = strings.ToLower(user.Email)
	user.Prepare(time.Now().UTC())

	if _, err := r.col.InsertOne(pick(ctx, r.txCtx), toUserDoc(user)); err != nil {
		if isDuplicateKey(err) {
			return repositories.ErrUserAlreadyExists
		}
		return fmt.Errorf("smarthire/mongo: create user: %w", err)
	}
	return nil
}

func (r *userRepo) FindByID(ctx context.Context, id string) (*models.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *userRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findOne(ctx, bson.M{"email": strings.ToLower(email)})
}

func (r *userRepo) findOne(ctx context.Context, filter bson.M) (*models.User, error) {
	var d userDoc
	if err := r.col.FindOne(pick(ctx, r.txCtx), filter).Decode(&d); err != nil {
		if isNoDocuments(err) {
			return nil, repositories.ErrUserNotFound
		}
		return nil, fmt.Errorf("smarthire/mongo: find user: %w", err)
	}
	return fromUserDoc(&d), nil
}

func (r *userRepo) Update(ctx context.Context, user *models.User) error {
	user.UpdatedAt = time.Now().UTC()

	res, err := r.col.ReplaceOne(pick(ctx, r.txCtx), bson.M{"_id": user.ID}, toUserDoc(user))
	if err != nil {
		if isDuplicateKey(err) {
			return repositories.ErrUserAlreadyExists
		}
		return fmt.Errorf("smarthire/mongo: update user: %w", err)
	}
	if res.MatchedCount == 0 {
		return repositories.ErrUserNotFound
	}
	return nil
}
