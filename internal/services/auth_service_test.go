package services

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smarthire_backend/internal/models"
	"smarthire_backend/internal/repositories"
	"smarthire_backend/internal/services/dto"
	"smarthire_backend/pkg/apperrors"
)

func TestAuthService_RegisterAndLogin(t *testing.T) {
	env := newTestEnv(t)

	resp, err := env.services.AuthService.Register(env.ctx, &dto.RegisterRequest{
		Name:     "Sita",
		Email:    "  Sita@Example.com ",
		Password: "secret123",
		Role:     models.UserRoleJobSeeker,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "sita@example.com", resp.User.Email)
	assert.True(t, resp.User.IsActive)

	// Соискатель подписку не получает
	_, err = env.store.Subscriptions().FindByEmployer(env.ctx, resp.User.ID)
	assert.ErrorIs(t, err, repositories.ErrSubscriptionNotFound)

	login, err := env.services.AuthService.Login(env.ctx, &dto.LoginRequest{Email: "sita@example.com", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, login.User.ID)

	_, err = env.services.AuthService.Login(env.ctx, &dto.LoginRequest{Email: "sita@example.com", Password: "wrong"})
	requireAppError(t, err, apperrors.CodeInvalidCredentials, http.StatusUnauthorized)

	_, err = env.services.AuthService.Login(env.ctx, &dto.LoginRequest{Email: "nobody@example.com", Password: "secret123"})
	requireAppError(t, err, apperrors.CodeInvalidCredentials, http.StatusUnauthorized)
}

func TestAuthService_RegisterRules(t *testing.T) {
	env := newTestEnv(t)
	env.registerSeeker(t, "Sita")

	tests := []struct {
		name     string
		req      dto.RegisterRequest
		code     apperrors.ErrorCode
		httpCode int
	}{
		{
			name:     "duplicate email",
			req:      dto.RegisterRequest{Name: "Sita", Email: "SITA@example.com", Password: "secret123", Role: models.UserRoleJobSeeker},
			code:     apperrors.CodeAlreadyExists,
			httpCode: http.StatusConflict,
		},
		{
			name:     "employer without company",
			req:      dto.RegisterRequest{Name: "Ram", Email: "ram@example.com", Password: "secret123", Role: models.UserRoleEmployer},
			code:     apperrors.CodeValidationFailed,
			httpCode: http.StatusBadRequest,
		},
		{
			name:     "admin self registration",
			req:      dto.RegisterRequest{Name: "Eve", Email: "eve@example.com", Password: "secret123", Role: models.UserRoleAdmin},
			code:     apperrors.CodeInvalidOperation,
			httpCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.services.AuthService.Register(env.ctx, &tt.req)
			requireAppError(t, err, tt.code, tt.httpCode)
		})
	}
}

func TestAuthService_DeactivatedUser(t *testing.T) {
	env := newTestEnv(t)
	admin := env.seedAdmin(t)

	resp, err := env.services.AuthService.Register(env.ctx, &dto.RegisterRequest{
		Name: "Sita", Email: "sita@example.com", Password: "secret123", Role: models.UserRoleJobSeeker,
	})
	require.NoError(t, err)

	identity, err := env.services.AuthService.Authenticate(env.ctx, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, identity.UserID)
	assert.Equal(t, models.UserRoleJobSeeker, identity.Role)

	_, err = env.services.AdminService.SetUserActive(env.ctx, admin, resp.User.ID, false)
	require.NoError(t, err)

	_, err = env.services.AuthService.Authenticate(env.ctx, resp.Token)
	requireAppError(t, err, apperrors.CodeAccountDisabled, http.StatusUnauthorized)

	_, err = env.services.AuthService.Login(env.ctx, &dto.LoginRequest{Email: "sita@example.com", Password: "secret123"})
	requireAppError(t, err, apperrors.CodeAccountDisabled, http.StatusUnauthorized)

	_, err = env.services.AuthService.Authenticate(env.ctx, "not-a-token")
	requireAppError(t, err, apperrors.CodeInvalidToken, http.StatusUnauthorized)
}

func TestAuthService_ProfileAndPassword(t *testing.T) {
	env := newTestEnv(t)
	seeker := env.registerSeeker(t, "Sita")

	user, err := env.services.AuthService.UpdateProfile(env.ctx, seeker.UserID, &dto.UpdateProfileRequest{
		Skills:    &[]string{"go", "sql"},
		Education: &[]dto.EducationInput{{Degree: "BSc", Institution: "TU", Year: 2020}},
		Location:  &dto.LocationInput{City: "Pokhara", Country: "Nepal"},
		Phone:     ptr("+9779800000000"),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"go", "sql"}, []string(user.Skills))

	profile, err := env.services.AuthService.GetProfile(env.ctx, seeker.UserID)
	require.NoError(t, err)
	assert.Equal(t, "Pokhara", profile.Location.City)
	require.Len(t, profile.Education, 1)
	assert.Equal(t, 2020, profile.Education[0].Year)
	assert.Equal(t, "Sita", profile.Name)

	err = env.services.AuthService.ChangePassword(env.ctx, seeker.UserID, &dto.ChangePasswordRequest{CurrentPassword: "bad", NewPassword: "newsecret"})
	requireAppError(t, err, apperrors.CodeBadRequest, http.StatusBadRequest)

	require.NoError(t, env.services.AuthService.ChangePassword(env.ctx, seeker.UserID, &dto.ChangePasswordRequest{CurrentPassword: "secret123", NewPassword: "newsecret"}))

	_, err = env.services.AuthService.Login(env.ctx, &dto.LoginRequest{Email: seeker.Email, Password: "newsecret"})
	assert.NoError(t, err)
}

func TestAuthService_SeedAdminIsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	env.seedAdmin(t)

	created, err := env.services.AuthService.SeedAdmin(env.ctx, "admin@example.com", "admin123", "Admin")
	require.NoError(t, err)
	assert.False(t, created)

	created, err = env.services.AuthService.SeedAdmin(env.ctx, "", "", "Admin")
	require.NoError(t, err)
	assert.False(t, created)
}
