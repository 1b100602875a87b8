// Package mongo - реализация repositories.Store поверх MongoDB.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	mongod "go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"smarthire_backend/internal/repositories"
)

// Имена коллекций
const (
	colUsers         = "users"
	colJobs          = "jobs"
	colSubscriptions = "subscriptions"
	colApplications  = "applications"
)

var _ repositories.Store = (*Store)(nil)

// Store владеет *mongo.Client и закрывает его в Close
type Store struct {
	client *mongod.Client
	db     *mongod.Database
	useTx  bool
}

// Option настраивает Store
type Option func(*Store)

// WithTransactions включает многодокументные транзакции (нужен replica set)
func WithTransactions(enabled bool) Option {
	return func(s *Store) {
		s.useTx = enabled
	}
}

// Connect подключается к MongoDB и проверяет соединение
func Connect(ctx context.Context, uri, database string, opts ...Option) (*Store, error) {
	client, err := mongod.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("smarthire/mongo: connect: %w", err)
	}

	s := &Store{client: client, db: client.Database(database)}
	for _, opt := range opts {
		opt(s)
	}

	if err := s.Ping(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	return s, nil
}

func (s *Store) Users() repositories.UserRepository {
	return &userRepo{col: s.db.Collection(colUsers)}
}

func (s *Store) Jobs() repositories.JobRepository {
	return &jobRepo{col: s.db.Collection(colJobs)}
}

func (s *Store) Subscriptions() repositories.SubscriptionRepository {
	return &subscriptionRepo{col: s.db.Collection(colSubscriptions)}
}

func (s *Store) Applications() repositories.ApplicationRepository {
	return &applicationRepo{col: s.db.Collection(colApplications)}
}

// WithTx запускает fn в сессионной транзакции, если они включены.
// Без транзакций операции выполняются последовательно.
func (s *Store) WithTx(ctx context.Context, fn func(tx repositories.Store) error) error {
	if !s.useTx {
		return fn(s)
	}

	session, err := s.client.StartSession()
	if err != nil {
		return fmt.Errorf("smarthire/mongo: start session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(txCtx context.Context) (any, error) {
		return nil, fn(&txStore{Store: s, ctx: txCtx})
	})
	return err
}

// Migrate создает индексы, в том числе уникальные email и (job, jobSeeker)
func (s *Store) Migrate(ctx context.Context) error {
	for col, models := range migrationIndexes() {
		if _, err := s.db.Collection(col).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("smarthire/mongo: migrate %s indexes: %w", col, err)
		}
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx, nil); err != nil {
		return fmt.Errorf("smarthire/mongo: ping: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

// txStore прокидывает контекст сессии в репозитории
type txStore struct {
	*Store
	ctx context.Context
}

func (t *txStore) WithTx(_ context.Context, fn func(tx repositories.Store) error) error {
	return fn(t)
}

func (t *txStore) Users() repositories.UserRepository {
	return &userRepo{col: t.db.Collection(colUsers), txCtx: t.ctx}
}

func (t *txStore) Jobs() repositories.JobRepository {
	return &jobRepo{col: t.db.Collection(colJobs), txCtx: t.ctx}
}

func (t *txStore) Subscriptions() repositories.SubscriptionRepository {
	return &subscriptionRepo{col: t.db.Collection(colSubscriptions), txCtx: t.ctx}
}

func (t *txStore) Applications() repositories.ApplicationRepository {
	return &applicationRepo{col: t.db.Collection(colApplications), txCtx: t.ctx}
}

// ── helpers ──────────────────────────────────────────────────────

// pick возвращает контекст транзакции, если он есть
func pick(ctx, txCtx context.Context) context.Context {
	if txCtx != nil {
		return txCtx
	}
	return ctx
}

func isNoDocuments(err error) bool {
	return errors.Is(err, mongod.ErrNoDocuments)
}

func isDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if mongod.IsDuplicateKeyError(err) {
		return true
	}
	return strings.Contains(err.Error(), "E11000")
}

func migrationIndexes() map[string][]mongod.IndexModel {
	return map[string][]mongod.IndexModel{
		colUsers: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		colJobs: {
			// Публичный список: status + is_active + expiry_date, сортировка по posted_date
			{Keys: bson.D{
				{Key: "status", Value: 1},
				{Key: "is_active", Value: 1},
				{Key: "expiry_date", Value: 1},
				{Key: "posted_date", Value: -1},
			}},
			{Keys: bson.D{{Key: "employer_id", Value: 1}, {Key: "posted_date", Value: -1}}},
		},
		colSubscriptions: {
			{Keys: bson.D{{Key: "employer_id", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "end_date", Value: 1}}},
		},
		colApplications: {
			{Keys: bson.D{{Key: "job_id", Value: 1}, {Key: "job_seeker_id", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "job_seeker_id", Value: 1}}},
		},
	}
}
