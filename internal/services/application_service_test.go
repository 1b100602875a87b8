package services

import (
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smarthire_backend/internal/models"
	"smarthire_backend/internal/services/dto"
	"smarthire_backend/pkg/apperrors"
)

func TestApplicationService_DuplicateApplication(t *testing.T) {
	env := newTestEnv(t)
	admin := env.seedAdmin(t)
	employer := env.registerEmployer(t, "Acme")
	seeker := env.registerSeeker(t, "Sita")
	job := env.approvedJob(t, employer, admin, "Backend Engineer")

	app, err := env.services.ApplicationService.Apply(env.ctx, seeker, job.ID, &dto.ApplyRequest{CoverLetter: "Hello"})
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationStatusApplied, app.Status)
	assert.Equal(t, env.clock.Now(), app.AppliedAt)

	_, err = env.services.ApplicationService.Apply(env.ctx, seeker, job.ID, &dto.ApplyRequest{CoverLetter: "Hello again"})
	requireAppError(t, err, apperrors.CodeConflict, http.StatusConflict)

	mine, err := env.services.ApplicationService.ListMine(env.ctx, seeker)
	require.NoError(t, err)
	assert.Equal(t, 1, mine.Total)
}

func TestApplicationService_ConcurrentApplyOnlyOneWins(t *testing.T) {
	env := newTestEnv(t)
	admin := env.seedAdmin(t)
	employer := env.registerEmployer(t, "Acme")
	seeker := env.registerSeeker(t, "Sita")
	job := env.approvedJob(t, employer, admin, "Backend Engineer")

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
	)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := env.services.ApplicationService.Apply(env.ctx, seeker, job.ID, &dto.ApplyRequest{}); err == nil {
				mu.Lock()
				successes++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, successes)
}

func TestApplicationService_JobMustBeOpen(t *testing.T) {
	env := newTestEnv(t)
	admin := env.seedAdmin(t)
	employer := env.registerEmployer(t, "Acme")
	seeker := env.registerSeeker(t, "Sita")

	pending, err := env.services.JobService.Create(env.ctx, employer, env.jobRequest("Backend Engineer"))
	require.NoError(t, err)

	_, err = env.services.ApplicationService.Apply(env.ctx, seeker, pending.ID, &dto.ApplyRequest{})
	requireAppError(t, err, apperrors.CodeBadRequest, http.StatusBadRequest)

	_, err = env.services.AdminService.ChangeJobStatus(env.ctx, admin, pending.ID, &dto.UpdateJobStatusRequest{Status: "approved"})
	require.NoError(t, err)

	env.clock.Advance(31 * 24 * time.Hour)
	_, err = env.services.ApplicationService.Apply(env.ctx, seeker, pending.ID, &dto.ApplyRequest{})
	requireAppError(t, err, apperrors.CodeBadRequest, http.StatusBadRequest)

	_, err = env.services.ApplicationService.Apply(env.ctx, seeker, "missing", &dto.ApplyRequest{})
	requireAppError(t, err, apperrors.CodeNotFound, http.StatusNotFound)
}

func TestApplicationService_ApplicationQuota(t *testing.T) {
	env := newTestEnv(t)
	admin := env.seedAdmin(t)
	employer := env.registerEmployer(t, "Acme")
	job := env.approvedJob(t, employer, admin, "Backend Engineer")

	limit := models.PlanFeatures(models.PlanFree).MaxApplications
	for i := 0; i < limit; i++ {
		seeker := models.NewID()
		_, err := env.services.ApplicationService.Apply(env.ctx, identityOfSeeker(seeker), job.ID, &dto.ApplyRequest{})
		require.NoError(t, err)
	}

	_, err := env.services.ApplicationService.Apply(env.ctx, identityOfSeeker(models.NewID()), job.ID, &dto.ApplyRequest{})
	requireAppError(t, err, apperrors.CodeLimitExceeded, http.StatusForbidden)
}

func TestApplicationService_StatusTransitions(t *testing.T) {
	env := newTestEnv(t)
	admin := env.seedAdmin(t)
	employer := env.registerEmployer(t, "Acme")
	other := env.registerEmployer(t, "Globex")
	seeker := env.registerSeeker(t, "Sita")
	job := env.approvedJob(t, employer, admin, "Backend Engineer")

	app, err := env.services.ApplicationService.Apply(env.ctx, seeker, job.ID, &dto.ApplyRequest{})
	require.NoError(t, err)

	_, err = env.services.ApplicationService.UpdateStatus(env.ctx, other, app.ID, &dto.UpdateApplicationStatusRequest{Status: "shortlisted"})
	requireAppError(t, err, apperrors.CodeForbidden, http.StatusForbidden)

	interview := env.clock.Now().Add(48 * time.Hour)
	app, err = env.services.ApplicationService.UpdateStatus(env.ctx, employer, app.ID, &dto.UpdateApplicationStatusRequest{
		Status:        "interviewed",
		InterviewDate: &interview,
		Notes:         ptr("Strong Go background"),
	})
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationStatusInterviewed, app.Status)
	assert.Equal(t, "Strong Go background", app.Notes)

	_, err = env.services.ApplicationService.UpdateStatus(env.ctx, employer, app.ID, &dto.UpdateApplicationStatusRequest{Status: "shortlisted"})
	requireAppError(t, err, apperrors.CodeInvalidStatus, http.StatusConflict)

	app, err = env.services.ApplicationService.UpdateStatus(env.ctx, admin, app.ID, &dto.UpdateApplicationStatusRequest{Status: "hired"})
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationStatusHired, app.Status)

	_, err = env.services.ApplicationService.UpdateStatus(env.ctx, employer, app.ID, &dto.UpdateApplicationStatusRequest{Status: "rejected"})
	requireAppError(t, err, apperrors.CodeInvalidStatus, http.StatusConflict)

	list, err := env.services.ApplicationService.ListForJob(env.ctx, employer, job.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, list.Total)

	_, err = env.services.ApplicationService.ListForJob(env.ctx, other, job.ID)
	requireAppError(t, err, apperrors.CodeForbidden, http.StatusForbidden)
}
