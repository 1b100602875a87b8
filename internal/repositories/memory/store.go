// Package memory - хранилище в памяти процесса для разработки и тестов.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"smarthire_backend/internal/models"
	"smarthire_backend/internal/repositories"
)

var (
	_ repositories.Store                  = (*Store)(nil)
	_ repositories.Store                  = (*txStore)(nil)
	_ repositories.UserRepository         = (*userRepo)(nil)
	_ repositories.JobRepository          = (*jobRepo)(nil)
	_ repositories.SubscriptionRepository = (*subscriptionRepo)(nil)
	_ repositories.ApplicationRepository  = (*applicationRepo)(nil)
)

type state struct {
	users         map[string]*models.User
	jobs          map[string]*models.Job
	subscriptions map[string]*models.Subscription
	applications  map[string]*models.Application
}

// Store хранит данные в map под RWMutex. Уникальность email, подписки работодателя
// и пары (job, jobSeeker) проверяется под блокировкой записи.
type Store struct {
	mu   sync.RWMutex
	txMu sync.Mutex
	data state
	now  func() time.Time
}

func New() *Store {
	return &Store{
		data: state{
			users:         make(map[string]*models.User),
			jobs:          make(map[string]*models.Job),
			subscriptions: make(map[string]*models.Subscription),
			applications:  make(map[string]*models.Application),
		},
		now: time.Now,
	}
}

func (s *Store) Users() repositories.UserRepository                 { return &userRepo{s: s} }
func (s *Store) Jobs() repositories.JobRepository                   { return &jobRepo{s: s} }
func (s *Store) Subscriptions() repositories.SubscriptionRepository { return &subscriptionRepo{s: s} }
func (s *Store) Applications() repositories.ApplicationRepository   { return &applicationRepo{s: s} }

// WithTx сериализует транзакции. Записи внутри fn попадают в журнал отката;
// при ошибке откатываются только они, чужие записи за это время сохраняются.
func (s *Store) WithTx(ctx context.Context, fn func(tx repositories.Store) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	tx := &txStore{Store: s, log: &undoLog{}}
	if err := fn(tx); err != nil {
		s.mu.Lock()
		tx.log.rollback(&s.data)
		s.mu.Unlock()
		return err
	}
	return nil
}

func (s *Store) Migrate(context.Context) error { return nil }
func (s *Store) Ping(context.Context) error    { return nil }
func (s *Store) Close() error                  { return nil }

// txStore - представление Store внутри WithTx
type txStore struct {
	*Store
	log *undoLog
}

func (t *txStore) Users() repositories.UserRepository { return &userRepo{t.Store, t.log} }
func (t *txStore) Jobs() repositories.JobRepository   { return &jobRepo{t.Store, t.log} }
func (t *txStore) Subscriptions() repositories.SubscriptionRepository {
	return &subscriptionRepo{t.Store, t.log}
}
func (t *txStore) Applications() repositories.ApplicationRepository {
	return &applicationRepo{t.Store, t.log}
}

// WithTx внутри транзакции присоединяется к ней
func (t *txStore) WithTx(_ context.Context, fn func(tx repositories.Store) error) error {
	return fn(t)
}

// undoLog хранит обратные операции в порядке записи.
// Пополняется и применяется под s.mu.
type undoLog struct {
	steps []func(st *state)
}

func (l *undoLog) rollback(st *state) {
	for i := len(l.steps) - 1; i >= 0; i-- {
		l.steps[i](st)
	}
	l.steps = nil
}

// prev == nil: записи до транзакции не было
func (l *undoLog) user(id string, prev *models.User) {
	if l == nil {
		return
	}
	l.steps = append(l.steps, func(st *state) {
		if prev == nil {
			delete(st.users, id)
			return
		}
		st.users[id] = prev
	})
}

func (l *undoLog) job(id string, prev *models.Job) {
	if l == nil {
		return
	}
	l.steps = append(l.steps, func(st *state) {
		if prev == nil {
			delete(st.jobs, id)
			return
		}
		st.jobs[id] = prev
	})
}

func (l *undoLog) subscription(id string, prev *models.Subscription) {
	if l == nil {
		return
	}
	l.steps = append(l.steps, func(st *state) {
		if prev == nil {
			delete(st.subscriptions, id)
			return
		}
		st.subscriptions[id] = prev
	})
}

func (l *undoLog) application(id string, prev *models.Application) {
	if l == nil {
		return
	}
	l.steps = append(l.steps, func(st *state) {
		if prev == nil {
			delete(st.applications, id)
			return
		}
		st.applications[id] = prev
	})
}

// ── users ──────────────────────────────────────────────────────

type userRepo struct {
	s  *Store
	tx *undoLog
}

func (r *userRepo) Create(_ context.Context, user *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, u := range r.s.data.users {
		if strings.EqualFold(u.Email, user.Email) {
			return repositories.ErrUserAlreadyExists
		}
	}
	user.Prepare(r.s.now())
	r.tx.user(user.ID, nil)
	r.s.data.users[user.ID] = cloneUser(user)
	return nil
}

func (r *userRepo) FindByID(_ context.Context, id string) (*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	u, ok := r.s.data.users[id]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *userRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, u := range r.s.data.users {
		if strings.EqualFold(u.Email, email) {
			return cloneUser(u), nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *userRepo) Update(_ context.Context, user *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	prev, ok := r.s.data.users[user.ID]
	if !ok {
		return repositories.ErrUserNotFound
	}
	for id, u := range r.s.data.users {
		if id != user.ID && strings.EqualFold(u.Email, user.Email) {
			return repositories.ErrUserAlreadyExists
		}
	}
	user.UpdatedAt = r.s.now()
	r.tx.user(user.ID, prev)
	r.s.data.users[user.ID] = cloneUser(user)
	return nil
}

// ── jobs ───────────────────────────────────────────────────────

type jobRepo struct {
	s  *Store
	tx *undoLog
}

func (r *jobRepo) Create(_ context.Context, job *models.Job) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	job.Prepare(r.s.now())
	r.tx.job(job.ID, nil)
	r.s.data.jobs[job.ID] = cloneJob(job)
	return nil
}

func (r *jobRepo) FindByID(_ context.Context, id string) (*models.Job, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	j, ok := r.s.data.jobs[id]
	if !ok {
		return nil, repositories.ErrJobNotFound
	}
	return cloneJob(j), nil
}

func (r *jobRepo) Update(_ context.Context, job *models.Job) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	prev, ok := r.s.data.jobs[job.ID]
	if !ok {
		return repositories.ErrJobNotFound
	}
	job.UpdatedAt = r.s.now()
	r.tx.job(job.ID, prev)
	r.s.data.jobs[job.ID] = cloneJob(job)
	return nil
}

func (r *jobRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	prev, ok := r.s.data.jobs[id]
	if !ok {
		return repositories.ErrJobNotFound
	}
	r.tx.job(id, prev)
	delete(r.s.data.jobs, id)
	return nil
}

func (r *jobRepo) ListApproved(_ context.Context, filter repositories.JobFilter, now time.Time) ([]*models.Job, int64, error) {
	matched := r.collect(func(j *models.Job) bool {
		if !j.IsListed(now) {
			return false
		}
		if filter.JobType != "" && j.JobType != filter.JobType {
			return false
		}
		if filter.ExperienceLevel != "" && j.ExperienceLevel != filter.ExperienceLevel {
			return false
		}
		if filter.Remote != nil && j.Location.Remote != *filter.Remote {
			return false
		}
		return true
	})

	total := int64(len(matched))
	if filter.Offset >= len(matched) {
		return []*models.Job{}, total, nil
	}
	matched = matched[filter.Offset:]
	if filter.Limit > 0 && filter.Limit < len(matched) {
		matched = matched[:filter.Limit]
	}
	return matched, total, nil
}

func (r *jobRepo) ListByEmployer(_ context.Context, employerID string) ([]*models.Job, error) {
	return r.collect(func(j *models.Job) bool { return j.EmployerID == employerID }), nil
}

func (r *jobRepo) ListByStatus(_ context.Context, status models.JobStatus) ([]*models.Job, error) {
	return r.collect(func(j *models.Job) bool { return status == "" || j.Status == status }), nil
}

func (r *jobRepo) CountOpenByEmployer(_ context.Context, employerID string) (int64, error) {
	jobs := r.collect(func(j *models.Job) bool {
		return j.EmployerID == employerID && j.Status != models.JobStatusExpired
	})
	return int64(len(jobs)), nil
}

func (r *jobRepo) ExpireBefore(_ context.Context, now time.Time) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var n int64
	for _, j := range r.s.data.jobs {
		if j.ExpiryDate.Before(now) && j.Status != models.JobStatusExpired {
			r.tx.job(j.ID, cloneJob(j))
			j.Status = models.JobStatusExpired
			j.UpdatedAt = now
			n++
		}
	}
	return n, nil
}

// collect возвращает копии подходящих вакансий, новые первыми
func (r *jobRepo) collect(match func(*models.Job) bool) []*models.Job {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*models.Job, 0)
	for _, j := range r.s.data.jobs {
		if match(j) {
			out = append(out, cloneJob(j))
		}
	}
	sort.SliceStable(out, func(a, b int) bool {
		if out[a].PostedDate.Equal(out[b].PostedDate) {
			return out[a].ID > out[b].ID
		}
		return out[a].PostedDate.After(out[b].PostedDate)
	})
	return out
}

// ── subscriptions ──────────────────────────────────────────────

type subscriptionRepo struct {
	s  *Store
	tx *undoLog
}

func (r *subscriptionRepo) Create(_ context.Context, sub *models.Subscription) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.data.subscriptions {
		if existing.EmployerID == sub.EmployerID {
			return repositories.ErrSubscriptionExists
		}
	}
	sub.Prepare(r.s.now())
	r.tx.subscription(sub.ID, nil)
	c := *sub
	r.s.data.subscriptions[sub.ID] = &c
	return nil
}

func (r *subscriptionRepo) FindByEmployer(_ context.Context, employerID string) (*models.Subscription, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, sub := range r.s.data.subscriptions {
		if sub.EmployerID == employerID {
			c := *sub
			return &c, nil
		}
	}
	return nil, repositories.ErrSubscriptionNotFound
}

func (r *subscriptionRepo) Update(_ context.Context, sub *models.Subscription) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	prev, ok := r.s.data.subscriptions[sub.ID]
	if !ok {
		return repositories.ErrSubscriptionNotFound
	}
	sub.UpdatedAt = r.s.now()
	r.tx.subscription(sub.ID, prev)
	c := *sub
	r.s.data.subscriptions[sub.ID] = &c
	return nil
}

func (r *subscriptionRepo) ExpireBefore(_ context.Context, now time.Time) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var n int64
	for _, sub := range r.s.data.subscriptions {
		if sub.EndDate.Before(now) && sub.PaymentStatus != models.PaymentStatusExpired {
			c := *sub
			r.tx.subscription(sub.ID, &c)
			sub.PaymentStatus = models.PaymentStatusExpired
			sub.UpdatedAt = now
			n++
		}
	}
	return n, nil
}

// ── applications ───────────────────────────────────────────────

type applicationRepo struct {
	s  *Store
	tx *undoLog
}

func (r *applicationRepo) Create(_ context.Context, app *models.Application) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.data.applications {
		if existing.JobID == app.JobID && existing.JobSeekerID == app.JobSeekerID {
			return repositories.ErrDuplicateApplication
		}
	}
	app.Prepare(r.s.now())
	r.tx.application(app.ID, nil)
	c := *app
	r.s.data.applications[app.ID] = &c
	return nil
}

func (r *applicationRepo) FindByID(_ context.Context, id string) (*models.Application, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	app, ok := r.s.data.applications[id]
	if !ok {
		return nil, repositories.ErrApplicationNotFound
	}
	c := *app
	return &c, nil
}

func (r *applicationRepo) Update(_ context.Context, app *models.Application) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	prev, ok := r.s.data.applications[app.ID]
	if !ok {
		return repositories.ErrApplicationNotFound
	}
	app.UpdatedAt = r.s.now()
	r.tx.application(app.ID, prev)
	c := *app
	r.s.data.applications[app.ID] = &c
	return nil
}

func (r *applicationRepo) ListByJob(_ context.Context, jobID string) ([]*models.Application, error) {
	return r.collect(func(a *models.Application) bool { return a.JobID == jobID }), nil
}

func (r *applicationRepo) ListBySeeker(_ context.Context, seekerID string) ([]*models.Application, error) {
	return r.collect(func(a *models.Application) bool { return a.JobSeekerID == seekerID }), nil
}

func (r *applicationRepo) CountByJob(_ context.Context, jobID string) (int64, error) {
	return int64(len(r.collect(func(a *models.Application) bool { return a.JobID == jobID }))), nil
}

func (r *applicationRepo) collect(match func(*models.Application) bool) []*models.Application {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*models.Application, 0)
	for _, a := range r.s.data.applications {
		if match(a) {
			c := *a
			out = append(out, &c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].AppliedAt.After(out[j].AppliedAt) })
	return out
}

// ── copies ─────────────────────────────────────────────────────

func cloneUser(u *models.User) *models.User {
	c := *u
	c.Skills = append(c.Skills[:0:0], u.Skills...)
	c.Education = append(c.Education[:0:0], u.Education...)
	c.Experience = append(c.Experience[:0:0], u.Experience...)
	c.Certifications = append(c.Certifications[:0:0], u.Certifications...)
	return &c
}

func cloneJob(j *models.Job) *models.Job {
	c := *j
	c.SkillsRequired = append(c.SkillsRequired[:0:0], j.SkillsRequired...)
	c.Requirements = append(c.Requirements[:0:0], j.Requirements...)
	c.Benefits = append(c.Benefits[:0:0], j.Benefits...)
	if j.ApprovedBy != nil {
		v := *j.ApprovedBy
		c.ApprovedBy = &v
	}
	if j.ApprovedAt != nil {
		v := *j.ApprovedAt
		c.ApprovedAt = &v
	}
	return &c
}
