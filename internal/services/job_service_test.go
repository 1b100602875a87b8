package services

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smarthire_backend/internal/auth"
	"smarthire_backend/internal/models"
	"smarthire_backend/internal/services/dto"
	"smarthire_backend/pkg/apperrors"
)

func TestEmployerJobLifecycle(t *testing.T) {
	env := newTestEnv(t)
	admin := env.seedAdmin(t)
	employer := env.registerEmployer(t, "Acme")

	// Пробная подписка
	sub, err := env.services.SubscriptionService.Mine(env.ctx, employer)
	require.NoError(t, err)
	assert.Equal(t, models.PlanFree, sub.Plan)
	assert.Equal(t, env.clock.Now().Add(7*24*time.Hour), sub.EndDate)
	assert.Equal(t, models.PaymentStatusPending, sub.PaymentStatus)
	assert.True(t, sub.TrialUsed)

	// Публикация
	job, err := env.services.JobService.Create(env.ctx, employer, env.jobRequest("Backend Engineer"))
	require.NoError(t, err)
	assert.Equal(t, models.JobStatusPending, job.Status)
	assert.Equal(t, employer.UserID, job.EmployerID)
	assert.True(t, job.IsActive)
	assert.Contains(t, job.Slug, "backend-engineer")

	// Модерация
	job, err = env.services.AdminService.ChangeJobStatus(env.ctx, admin, job.ID, &dto.UpdateJobStatusRequest{Status: "approved"})
	require.NoError(t, err)
	assert.Equal(t, models.JobStatusApproved, job.Status)
	require.NotNil(t, job.ApprovedBy)
	assert.Equal(t, admin.UserID, *job.ApprovedBy)

	// Правка владельца возвращает на модерацию
	job, err = env.services.JobService.Update(env.ctx, employer, job.ID, &dto.UpdateJobRequest{Title: ptr("Senior Backend Engineer")})
	require.NoError(t, err)
	assert.Equal(t, models.JobStatusPending, job.Status)
	assert.Nil(t, job.ApprovedBy)
	assert.Nil(t, job.ApprovedAt)
	assert.Contains(t, job.Slug, "senior-backend-engineer")

	// Истечение срока
	env.clock.Advance(31 * 24 * time.Hour)
	result := env.services.SweepService.Run(env.ctx)
	assert.Equal(t, int64(1), result.JobsExpired)
	assert.Equal(t, int64(1), result.SubscriptionsExpired)

	stored, err := env.store.Jobs().FindByID(env.ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, models.JobStatusExpired, stored.Status)

	// Повторный прогон
	result = env.services.SweepService.Run(env.ctx)
	assert.Equal(t, &dto.SweepResult{}, result)

	stored, err = env.store.Jobs().FindByID(env.ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, models.JobStatusExpired, stored.Status)

	// Истекшая вакансия не редактируется
	_, err = env.services.JobService.Update(env.ctx, employer, job.ID, &dto.UpdateJobRequest{Title: ptr("Another title")})
	requireAppError(t, err, apperrors.CodeInvalidStatus, http.StatusConflict)
}

func TestJobService_AdminEditKeepsStatus(t *testing.T) {
	env := newTestEnv(t)
	admin := env.seedAdmin(t)
	employer := env.registerEmployer(t, "Acme")
	job := env.approvedJob(t, employer, admin, "Backend Engineer")

	updated, err := env.services.JobService.Update(env.ctx, admin, job.ID, &dto.UpdateJobRequest{Description: ptr("Updated by moderation team to fix formatting of the description text.")})
	require.NoError(t, err)

	assert.Equal(t, models.JobStatusApproved, updated.Status)
	require.NotNil(t, updated.ApprovedBy)
	assert.Equal(t, admin.UserID, *updated.ApprovedBy)
}

func TestJobService_UpdateByStrangerForbidden(t *testing.T) {
	env := newTestEnv(t)
	owner := env.registerEmployer(t, "Acme")
	other := env.registerEmployer(t, "Globex")

	job, err := env.services.JobService.Create(env.ctx, owner, env.jobRequest("Backend Engineer"))
	require.NoError(t, err)

	_, err = env.services.JobService.Update(env.ctx, other, job.ID, &dto.UpdateJobRequest{Title: ptr("Hijacked title")})
	requireAppError(t, err, apperrors.CodeForbidden, http.StatusForbidden)

	err = env.services.JobService.Delete(env.ctx, other, job.ID)
	requireAppError(t, err, apperrors.CodeForbidden, http.StatusForbidden)

	require.NoError(t, env.services.JobService.Delete(env.ctx, owner, job.ID))
	_, err = env.services.JobService.Get(env.ctx, &owner, job.ID)
	requireAppError(t, err, apperrors.CodeNotFound, http.StatusNotFound)
}

func TestJobService_PostingQuota(t *testing.T) {
	env := newTestEnv(t)
	employer := env.registerEmployer(t, "Acme")

	_, err := env.services.JobService.Create(env.ctx, employer, env.jobRequest("Backend Engineer"))
	require.NoError(t, err)

	// free: одна неистекшая вакансия
	_, err = env.services.JobService.Create(env.ctx, employer, env.jobRequest("Frontend Engineer"))
	requireAppError(t, err, apperrors.CodeLimitExceeded, http.StatusForbidden)

	// просроченная подписка
	env.clock.Advance(8 * 24 * time.Hour)
	_, err = env.services.JobService.Create(env.ctx, employer, env.jobRequest("Frontend Engineer"))
	requireAppError(t, err, apperrors.CodeLimitExceeded, http.StatusForbidden)
}

func TestJobService_Visibility(t *testing.T) {
	env := newTestEnv(t)
	admin := env.seedAdmin(t)
	owner := env.registerEmployer(t, "Acme")
	seeker := env.registerSeeker(t, "Sita")

	job, err := env.services.JobService.Create(env.ctx, owner, env.jobRequest("Backend Engineer"))
	require.NoError(t, err)

	tests := []struct {
		name    string
		actor   *auth.Identity
		wantErr bool
	}{
		{name: "anonymous", actor: nil, wantErr: true},
		{name: "job seeker", actor: &seeker, wantErr: true},
		{name: "owner", actor: &owner},
		{name: "admin", actor: &admin},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := env.services.JobService.Get(env.ctx, tt.actor, job.ID)
			if tt.wantErr {
				requireAppError(t, err, apperrors.CodeForbidden, http.StatusForbidden)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, job.ID, got.ID)
		})
	}

	_, err = env.services.JobService.Get(env.ctx, nil, "missing")
	requireAppError(t, err, apperrors.CodeNotFound, http.StatusNotFound)
}

func TestJobService_ListApprovedFilters(t *testing.T) {
	env := newTestEnv(t)
	admin := env.seedAdmin(t)
	employer := env.registerEmployer(t, "Acme")

	_, err := env.services.AdminService.AssignPlan(env.ctx, employer.UserID, &dto.AssignPlanRequest{Plan: "premium"})
	require.NoError(t, err)

	onsite := env.approvedJob(t, employer, admin, "Onsite Engineer")

	remoteReq := env.jobRequest("Remote Engineer")
	remoteReq.Location.Remote = true
	remote, err := env.services.JobService.Create(env.ctx, employer, remoteReq)
	require.NoError(t, err)
	_, err = env.services.AdminService.ChangeJobStatus(env.ctx, admin, remote.ID, &dto.UpdateJobStatusRequest{Status: "approved"})
	require.NoError(t, err)

	_, err = env.services.JobService.Create(env.ctx, employer, env.jobRequest("Pending Engineer"))
	require.NoError(t, err)

	inactive := env.approvedJob(t, employer, admin, "Inactive Engineer")
	_, err = env.services.JobService.Update(env.ctx, admin, inactive.ID, &dto.UpdateJobRequest{IsActive: ptr(false)})
	require.NoError(t, err)

	all, err := env.services.JobService.ListApproved(env.ctx, &dto.JobListQuery{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), all.Total)
	assert.Equal(t, 1, all.Page)
	assert.Equal(t, DefaultPageSize, all.Limit)

	remoteOnly, err := env.services.JobService.ListApproved(env.ctx, &dto.JobListQuery{Remote: ptr(true)})
	require.NoError(t, err)
	require.Len(t, remoteOnly.Jobs, 1)
	assert.Equal(t, remote.ID, remoteOnly.Jobs[0].ID)

	paged, err := env.services.JobService.ListApproved(env.ctx, &dto.JobListQuery{Page: 2, Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(2), paged.Total)
	require.Len(t, paged.Jobs, 1)

	ids := []string{all.Jobs[0].ID, all.Jobs[1].ID}
	assert.ElementsMatch(t, []string{onsite.ID, remote.ID}, ids)

	// После даты истечения вакансии пропадают из списка еще до прогона sweep
	env.clock.Advance(31 * 24 * time.Hour)
	none, err := env.services.JobService.ListApproved(env.ctx, &dto.JobListQuery{})
	require.NoError(t, err)
	assert.Empty(t, none.Jobs)
}

func TestNormalizePage(t *testing.T) {
	page, limit := normalizePage(0, 0)
	assert.Equal(t, 1, page)
	assert.Equal(t, DefaultPageSize, limit)

	page, limit = normalizePage(3, 500)
	assert.Equal(t, 3, page)
	assert.Equal(t, MaxPageSize, limit)
}
