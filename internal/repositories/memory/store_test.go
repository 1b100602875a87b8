package memory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smarthire_backend/internal/models"
	"smarthire_backend/internal/repositories"
)

func TestUsers_EmailIsUnique(t *testing.T) {
	ctx := context.Background()
	s := New()

	require.NoError(t, s.Users().Create(ctx, &models.User{Name: "A", Email: "a@example.com"}))
	err := s.Users().Create(ctx, &models.User{Name: "B", Email: "A@example.com"})

	assert.ErrorIs(t, err, repositories.ErrUserAlreadyExists)
}

func TestApplications_ConcurrentDuplicateOnlyOneWins(t *testing.T) {
	ctx := context.Background()
	s := New()

	var wg sync.WaitGroup
	errs := make([]error, 10)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = s.Applications().Create(ctx, &models.Application{JobID: "job-1", JobSeekerID: "seeker-1"})
		}(i)
	}
	wg.Wait()

	var ok, dup int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, repositories.ErrDuplicateApplication):
			dup++
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, 9, dup)
}

func TestJobs_ListApprovedFiltersAndOrders(t *testing.T) {
	ctx := context.Background()
	s := New()
	now := time.Now()

	mk := func(title string, status models.JobStatus, active bool, posted, expiry time.Time) {
		require.NoError(t, s.Jobs().Create(ctx, &models.Job{
			Title: title, Status: status, IsActive: active, PostedDate: posted, ExpiryDate: expiry,
		}))
	}
	mk("old", models.JobStatusApproved, true, now.Add(-2*time.Hour), now.Add(time.Hour))
	mk("new", models.JobStatusApproved, true, now.Add(-time.Hour), now.Add(time.Hour))
	mk("pending", models.JobStatusPending, true, now, now.Add(time.Hour))
	mk("inactive", models.JobStatusApproved, false, now, now.Add(time.Hour))
	mk("stale", models.JobStatusApproved, true, now, now.Add(-time.Minute))

	jobs, total, err := s.Jobs().ListApproved(ctx, repositories.JobFilter{}, now)
	require.NoError(t, err)

	assert.Equal(t, int64(2), total)
	require.Len(t, jobs, 2)
	assert.Equal(t, "new", jobs[0].Title)
	assert.Equal(t, "old", jobs[1].Title)

	page, total, err := s.Jobs().ListApproved(ctx, repositories.JobFilter{Offset: 1, Limit: 1}, now)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, page, 1)
	assert.Equal(t, "old", page[0].Title)
}

func TestJobs_ExpireBeforeIsIdempotent(t *testing.T) {
	ctx := context.Background()
	s := New()
	now := time.Now()

	past := &models.Job{Status: models.JobStatusApproved, ExpiryDate: now.Add(-time.Hour)}
	rejected := &models.Job{Status: models.JobStatusRejected, ExpiryDate: now.Add(-time.Hour)}
	future := &models.Job{Status: models.JobStatusApproved, ExpiryDate: now.Add(time.Hour)}
	require.NoError(t, s.Jobs().Create(ctx, past))
	require.NoError(t, s.Jobs().Create(ctx, rejected))
	require.NoError(t, s.Jobs().Create(ctx, future))

	n, err := s.Jobs().ExpireBefore(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	n, err = s.Jobs().ExpireBefore(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)

	got, err := s.Jobs().FindByID(ctx, past.ID)
	require.NoError(t, err)
	assert.Equal(t, models.JobStatusExpired, got.Status)

	got, err = s.Jobs().FindByID(ctx, rejected.ID)
	require.NoError(t, err)
	assert.Equal(t, models.JobStatusExpired, got.Status)

	got, err = s.Jobs().FindByID(ctx, future.ID)
	require.NoError(t, err)
	assert.Equal(t, models.JobStatusApproved, got.Status)
}

func TestJobs_UpdateAfterDeleteIsNotFound(t *testing.T) {
	ctx := context.Background()
	s := New()

	job := &models.Job{Title: "Backend Engineer", Status: models.JobStatusPending}
	require.NoError(t, s.Jobs().Create(ctx, job))
	require.NoError(t, s.Jobs().Delete(ctx, job.ID))

	job.Status = models.JobStatusApproved
	err := s.Jobs().Update(ctx, job)
	assert.ErrorIs(t, err, repositories.ErrJobNotFound)

	_, err = s.Jobs().FindByID(ctx, job.ID)
	assert.ErrorIs(t, err, repositories.ErrJobNotFound)
}

func TestWithTx_RollsBackOnError(t *testing.T) {
	ctx := context.Background()
	s := New()
	boom := errors.New("boom")

	err := s.WithTx(ctx, func(tx repositories.Store) error {
		require.NoError(t, tx.Users().Create(ctx, &models.User{Email: "tx@example.com"}))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	_, err = s.Users().FindByEmail(ctx, "tx@example.com")
	assert.ErrorIs(t, err, repositories.ErrUserNotFound)
}

func TestWithTx_RollbackRestoresOwnUpdates(t *testing.T) {
	ctx := context.Background()
	s := New()

	job := &models.Job{Title: "before", Status: models.JobStatusApproved}
	require.NoError(t, s.Jobs().Create(ctx, job))

	err := s.WithTx(ctx, func(tx repositories.Store) error {
		changed := *job
		changed.Title = "after"
		require.NoError(t, tx.Jobs().Update(ctx, &changed))
		require.NoError(t, tx.Jobs().Delete(ctx, job.ID))
		return errors.New("abort")
	})
	require.Error(t, err)

	got, err := s.Jobs().FindByID(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, "before", got.Title)
}

func TestWithTx_RollbackKeepsConcurrentWrites(t *testing.T) {
	ctx := context.Background()
	s := New()

	entered := make(chan struct{})
	release := make(chan struct{})
	done := make(chan error, 1)

	go func() {
		done <- s.WithTx(ctx, func(tx repositories.Store) error {
			if err := tx.Users().Create(ctx, &models.User{Email: "tx@example.com"}); err != nil {
				return err
			}
			close(entered)
			<-release
			return repositories.ErrUserAlreadyExists
		})
	}()

	<-entered
	outside := &models.Job{Title: "written outside the transaction"}
	require.NoError(t, s.Jobs().Create(ctx, outside))
	close(release)

	assert.ErrorIs(t, <-done, repositories.ErrUserAlreadyExists)

	_, err := s.Jobs().FindByID(ctx, outside.ID)
	assert.NoError(t, err, "concurrent write must survive the rollback")

	_, err = s.Users().FindByEmail(ctx, "tx@example.com")
	assert.ErrorIs(t, err, repositories.ErrUserNotFound)
}

func TestReturnedValuesAreCopies(t *testing.T) {
	ctx := context.Background()
	s := New()

	job := &models.Job{Title: "original", SkillsRequired: []string{"go"}}
	require.NoError(t, s.Jobs().Create(ctx, job))

	got, err := s.Jobs().FindByID(ctx, job.ID)
	require.NoError(t, err)
	got.Title = "changed"
	got.SkillsRequired[0] = "rust"

	again, err := s.Jobs().FindByID(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, "original", again.Title)
	assert.Equal(t, "go", again.SkillsRequired[0])
}
