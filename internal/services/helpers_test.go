package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"smarthire_backend/internal/auth"
	"smarthire_backend/internal/email"
	"smarthire_backend/internal/models"
	"smarthire_backend/internal/repositories/memory"
	"smarthire_backend/internal/services/dto"
	"smarthire_backend/pkg/apperrors"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

type testEnv struct {
	ctx      context.Context
	clock    *fakeClock
	store    *memory.Store
	mail     *email.MockProvider
	services *ServiceContainer
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	clock := &fakeClock{t: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)}
	store := memory.New()
	mail := email.NewMockProvider()
	templates, err := email.NewTemplateManager()
	require.NoError(t, err)

	tokens := auth.NewTokenManager("test-secret", time.Hour)
	notifier := NewEmailNotificationService(mail, templates)

	return &testEnv{
		ctx:      context.Background(),
		clock:    clock,
		store:    store,
		mail:     mail,
		services: NewServiceContainer(store, tokens, notifier, clock.Now),
	}
}

func identityOf(u *models.User) auth.Identity {
	return auth.Identity{UserID: u.ID, Role: u.Role, Email: u.Email}
}

func (e *testEnv) registerEmployer(t *testing.T, company string) auth.Identity {
	t.Helper()
	resp, err := e.services.AuthService.Register(e.ctx, &dto.RegisterRequest{
		Name:        company + " HR",
		Email:       strings.ToLower(company) + "@example.com",
		Password:    "secret123",
		Role:        models.UserRoleEmployer,
		CompanyName: company,
	})
	require.NoError(t, err)
	return identityOf(resp.User)
}

func (e *testEnv) registerSeeker(t *testing.T, name string) auth.Identity {
	t.Helper()
	resp, err := e.services.AuthService.Register(e.ctx, &dto.RegisterRequest{
		Name:     name,
		Email:    strings.ToLower(name) + "@example.com",
		Password: "secret123",
		Role:     models.UserRoleJobSeeker,
	})
	require.NoError(t, err)
	return identityOf(resp.User)
}

func (e *testEnv) seedAdmin(t *testing.T) auth.Identity {
	t.Helper()
	created, err := e.services.AuthService.SeedAdmin(e.ctx, "admin@example.com", "admin123", "Admin")
	require.NoError(t, err)
	require.True(t, created)

	admin, err := e.store.Users().FindByEmail(e.ctx, "admin@example.com")
	require.NoError(t, err)
	return identityOf(admin)
}

func (e *testEnv) jobRequest(title string) *dto.CreateJobRequest {
	return &dto.CreateJobRequest{
		Title:           title,
		Description:     strings.Repeat("We are looking for an engineer. ", 3),
		CompanyName:     "Acme",
		Location:        dto.JobLocationInput{City: "Kathmandu", Country: "Nepal"},
		JobType:         string(models.JobTypeFullTime),
		ExperienceLevel: string(models.ExperienceMid),
		Salary:          &dto.SalaryInput{Min: 1000, Max: 2000},
		SkillsRequired:  []string{"go"},
		ExpiryDate:      e.clock.Now().Add(30 * 24 * time.Hour),
	}
}

// approvedJob создает и одобряет вакансию
func (e *testEnv) approvedJob(t *testing.T, employer, admin auth.Identity, title string) *models.Job {
	t.Helper()
	job, err := e.services.JobService.Create(e.ctx, employer, e.jobRequest(title))
	require.NoError(t, err)
	job, err = e.services.AdminService.ChangeJobStatus(e.ctx, admin, job.ID, &dto.UpdateJobStatusRequest{Status: "approved"})
	require.NoError(t, err)
	return job
}

func requireAppError(t *testing.T, err error, code apperrors.ErrorCode, httpCode int) {
	t.Helper()
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok, "expected AppError, got %T: %v", err, err)
	require.Equal(t, code, appErr.Code)
	require.Equal(t, httpCode, appErr.HTTPCode)
}

func ptr[T any](v T) *T { return &v }

func identityOfSeeker(id string) auth.Identity {
	return auth.Identity{UserID: id, Role: models.UserRoleJobSeeker}
}
