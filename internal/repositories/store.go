package repositories

import (
	"context"
	"errors"
	"time"

	"smarthire_backend/internal/models"
)

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrUserAlreadyExists    = errors.New("user already exists")
	ErrJobNotFound          = errors.New("job not found")
	ErrSubscriptionNotFound = errors.New("subscription not found")
	ErrSubscriptionExists   = errors.New("subscription already exists")
	ErrApplicationNotFound  = errors.New("application not found")
	ErrDuplicateApplication = errors.New("application already exists")
)

// Store объединяет репозитории одного хранилища
type Store interface {
	Users() UserRepository
	Jobs() JobRepository
	Subscriptions() SubscriptionRepository
	Applications() ApplicationRepository

	// WithTx выполняет fn атомарно, если хранилище поддерживает транзакции
	WithTx(ctx context.Context, fn func(tx Store) error) error

	Migrate(ctx context.Context) error
	Ping(ctx context.Context) error
	Close() error
}

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
}

// JobFilter - фильтр публичного списка вакансий
type JobFilter struct {
	JobType         models.JobType
	ExperienceLevel models.ExperienceLevel
	Remote          *bool
	Offset          int
	Limit           int
}

type JobRepository interface {
	Create(ctx context.Context, job *models.Job) error
	FindByID(ctx context.Context, id string) (*models.Job, error)
	Update(ctx context.Context, job *models.Job) error
	Delete(ctx context.Context, id string) error

	// ListApproved - approved, активные и не истекшие на момент now, новые первыми
	ListApproved(ctx context.Context, filter JobFilter, now time.Time) ([]*models.Job, int64, error)
	ListByEmployer(ctx context.Context, employerID string) ([]*models.Job, error)
	// ListByStatus с пустым статусом возвращает все вакансии
	ListByStatus(ctx context.Context, status models.JobStatus) ([]*models.Job, error)
	CountOpenByEmployer(ctx context.Context, employerID string) (int64, error)

	// ExpireBefore помечает expired все вакансии с expiryDate < now
	ExpireBefore(ctx context.Context, now time.Time) (int64, error)
}

type SubscriptionRepository interface {
	Create(ctx context.Context, sub *models.Subscription) error
	FindByEmployer(ctx context.Context, employerID string) (*models.Subscription, error)
	Update(ctx context.Context, sub *models.Subscription) error

	// ExpireBefore ставит paymentStatus=expired подпискам с endDate < now
	ExpireBefore(ctx context.Context, now time.Time) (int64, error)
}

type ApplicationRepository interface {
	Create(ctx context.Context, app *models.Application) error
	FindByID(ctx context.Context, id string) (*models.Application, error)
	Update(ctx context.Context, app *models.Application) error
	ListByJob(ctx context.Context, jobID string) ([]*models.Application, error)
	ListBySeeker(ctx context.Context, seekerID string) ([]*models.Application, error)
	CountByJob(ctx context.Context, jobID string) (int64, error)
}
