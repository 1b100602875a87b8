package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smarthire_backend/internal/models"
)

func TestTokenManager_RoundTrip(t *testing.T) {
	m := NewTokenManager("test-secret", time.Hour)
	user := &models.User{BaseModel: models.BaseModel{ID: "user-1"}, Role: models.UserRoleEmployer}

	token, err := m.Generate(user)
	require.NoError(t, err)

	claims, err := m.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, models.UserRoleEmployer, claims.Role)
}

func TestTokenManager_Expired(t *testing.T) {
	m := NewTokenManager("test-secret", time.Hour)
	m.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	token, err := m.Generate(&models.User{BaseModel: models.BaseModel{ID: "user-1"}})
	require.NoError(t, err)

	m.now = time.Now
	_, err = m.Parse(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestTokenManager_WrongSecret(t *testing.T) {
	token, err := NewTokenManager("one", time.Hour).Generate(&models.User{BaseModel: models.BaseModel{ID: "user-1"}})
	require.NoError(t, err)

	_, err = NewTokenManager("two", time.Hour).Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = NewTokenManager("two", time.Hour).Parse("garbage")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("secret1")
	require.NoError(t, err)

	assert.True(t, CheckPasswordHash("secret1", hash))
	assert.False(t, CheckPasswordHash("secret2", hash))
}

func TestIdentity_CanManage(t *testing.T) {
	owner := Identity{UserID: "e1", Role: models.UserRoleEmployer}
	other := Identity{UserID: "e2", Role: models.UserRoleEmployer}
	admin := Identity{UserID: "a1", Role: models.UserRoleAdmin}

	assert.True(t, owner.CanManage("e1"))
	assert.False(t, other.CanManage("e1"))
	assert.True(t, admin.CanManage("e1"))
	assert.False(t, Identity{}.CanManage(""))
}
