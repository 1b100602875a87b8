package services

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smarthire_backend/internal/models"
	"smarthire_backend/internal/services/dto"
	"smarthire_backend/pkg/apperrors"
)

func TestAdminService_ChangeJobStatus(t *testing.T) {
	env := newTestEnv(t)
	admin := env.seedAdmin(t)
	employer := env.registerEmployer(t, "Acme")

	job, err := env.services.JobService.Create(env.ctx, employer, env.jobRequest("Backend Engineer"))
	require.NoError(t, err)

	rejected, err := env.services.AdminService.ChangeJobStatus(env.ctx, admin, job.ID, &dto.UpdateJobStatusRequest{Status: "rejected", Reason: "Missing salary details"})
	require.NoError(t, err)
	assert.Equal(t, models.JobStatusRejected, rejected.Status)
	assert.Equal(t, "Missing salary details", rejected.RejectedReason)
	assert.Nil(t, rejected.ApprovedBy)
	require.NotNil(t, rejected.ApprovedAt)

	// Отклоненную вакансию нельзя сразу одобрить
	_, err = env.services.AdminService.ChangeJobStatus(env.ctx, admin, job.ID, &dto.UpdateJobStatusRequest{Status: "approved"})
	requireAppError(t, err, apperrors.CodeInvalidStatus, http.StatusConflict)

	_, err = env.services.AdminService.ChangeJobStatus(env.ctx, admin, job.ID, &dto.UpdateJobStatusRequest{Status: "pending"})
	requireAppError(t, err, apperrors.CodeBadRequest, http.StatusBadRequest)

	_, err = env.services.AdminService.ChangeJobStatus(env.ctx, admin, "missing", &dto.UpdateJobStatusRequest{Status: "approved"})
	requireAppError(t, err, apperrors.CodeNotFound, http.StatusNotFound)

	expired, err := env.services.AdminService.ChangeJobStatus(env.ctx, admin, job.ID, &dto.UpdateJobStatusRequest{Status: "expired"})
	require.NoError(t, err)
	assert.Equal(t, models.JobStatusExpired, expired.Status)

	_, err = env.services.AdminService.ChangeJobStatus(env.ctx, admin, job.ID, &dto.UpdateJobStatusRequest{Status: "expired"})
	requireAppError(t, err, apperrors.CodeInvalidStatus, http.StatusConflict)
}

func TestAdminService_RejectAcceptsLegacyReasonKey(t *testing.T) {
	env := newTestEnv(t)
	admin := env.seedAdmin(t)
	employer := env.registerEmployer(t, "Acme")

	job, err := env.services.JobService.Create(env.ctx, employer, env.jobRequest("Backend Engineer"))
	require.NoError(t, err)

	var req dto.UpdateJobStatusRequest
	require.NoError(t, json.Unmarshal([]byte(`{"status":"rejected","rejectedReason":"Salary is missing"}`), &req))

	rejected, err := env.services.AdminService.ChangeJobStatus(env.ctx, admin, job.ID, &req)
	require.NoError(t, err)
	assert.Equal(t, "Salary is missing", rejected.RejectedReason)

	both := dto.UpdateJobStatusRequest{Reason: "new key", RejectedReason: "old key"}
	assert.Equal(t, "new key", both.RejectionReason())
}

func TestAdminService_ReviewNotifiesEmployer(t *testing.T) {
	env := newTestEnv(t)
	admin := env.seedAdmin(t)
	employer := env.registerEmployer(t, "Acme")

	job := env.approvedJob(t, employer, admin, "Backend Engineer")
	_, err := env.services.AdminService.ChangeJobStatus(env.ctx, admin, job.ID, &dto.UpdateJobStatusRequest{Status: "rejected", Reason: "Duplicate posting"})
	require.NoError(t, err)

	sent := env.mail.Sent()
	require.Len(t, sent, 2)
	assert.Equal(t, []string{employer.Email}, sent[0].To)
	assert.Contains(t, sent[0].Subject, "approved")
	assert.Contains(t, sent[1].HTMLBody, "Duplicate posting")
}

func TestAdminService_ListJobs(t *testing.T) {
	env := newTestEnv(t)
	admin := env.seedAdmin(t)
	employer := env.registerEmployer(t, "Acme")

	_, err := env.services.AdminService.AssignPlan(env.ctx, employer.UserID, &dto.AssignPlanRequest{Plan: "standard"})
	require.NoError(t, err)

	env.approvedJob(t, employer, admin, "Approved Engineer")
	_, err = env.services.JobService.Create(env.ctx, employer, env.jobRequest("Pending Engineer"))
	require.NoError(t, err)

	pending, err := env.services.AdminService.ListJobs(env.ctx, models.JobStatusPending)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "Pending Engineer", pending[0].Title)

	all, err := env.services.AdminService.ListJobs(env.ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	_, err = env.services.AdminService.ListJobs(env.ctx, "archived")
	requireAppError(t, err, apperrors.CodeBadRequest, http.StatusBadRequest)
}

func TestAdminService_SetUserActive(t *testing.T) {
	env := newTestEnv(t)
	admin := env.seedAdmin(t)
	seeker := env.registerSeeker(t, "Sita")

	_, err := env.services.AdminService.SetUserActive(env.ctx, admin, admin.UserID, false)
	requireAppError(t, err, apperrors.CodeForbidden, http.StatusForbidden)

	_, err = env.services.AdminService.SetUserActive(env.ctx, admin, "missing", false)
	requireAppError(t, err, apperrors.CodeNotFound, http.StatusNotFound)

	user, err := env.services.AdminService.SetUserActive(env.ctx, admin, seeker.UserID, false)
	require.NoError(t, err)
	assert.False(t, user.IsActive)

	user, err = env.services.AdminService.SetUserActive(env.ctx, admin, seeker.UserID, true)
	require.NoError(t, err)
	assert.True(t, user.IsActive)
}

func TestAdminService_AssignPlan(t *testing.T) {
	env := newTestEnv(t)
	employer := env.registerEmployer(t, "Acme")
	seeker := env.registerSeeker(t, "Sita")

	// Подписка истекла и была помечена sweep
	env.clock.Advance(10 * 24 * time.Hour)
	env.services.SweepService.Run(env.ctx)

	sub, err := env.services.AdminService.AssignPlan(env.ctx, employer.UserID, &dto.AssignPlanRequest{
		Plan:      "premium",
		Amount:    4999,
		PaymentID: "txn-1",
	})
	require.NoError(t, err)

	assert.Equal(t, models.PlanPremium, sub.Plan)
	assert.Equal(t, models.PlanFeatures(models.PlanPremium), sub.Features)
	assert.Equal(t, models.PaymentStatusCompleted, sub.PaymentStatus)
	assert.Equal(t, env.clock.Now().Add(DefaultPlanDuration), sub.EndDate)
	assert.True(t, sub.IsUsable(env.clock.Now()))
	assert.Equal(t, "txn-1", sub.PaymentID)

	_, err = env.services.AdminService.AssignPlan(env.ctx, seeker.UserID, &dto.AssignPlanRequest{Plan: "premium"})
	requireAppError(t, err, apperrors.CodeInvalidOperation, http.StatusBadRequest)

	_, err = env.services.AdminService.AssignPlan(env.ctx, employer.UserID, &dto.AssignPlanRequest{Plan: "gold"})
	requireAppError(t, err, apperrors.CodeBadRequest, http.StatusBadRequest)
}

func TestSubscriptionService_Plans(t *testing.T) {
	env := newTestEnv(t)

	plans := env.services.SubscriptionService.Plans()
	require.Len(t, plans, 3)
	assert.Equal(t, models.PlanFree, plans[0].Plan)
	assert.Equal(t, models.Unlimited, plans[2].Features.MaxJobPostings)
}
