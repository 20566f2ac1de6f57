package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gega19/barber-app-backoffice-sub001/internal/models"
)

func testUser() *models.User {
	return &models.User{ID: "user-1", Role: models.RoleAdmin}
}

func TestAccessTokenRoundTrip(t *testing.T) {
	svc := New("secret", time.Hour, 24*time.Hour)

	token, err := svc.GenerateAccessToken(testUser())
	require.NoError(t, err)

	claims, err := svc.ValidateAccess(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, models.RoleAdmin, claims.Role)
	assert.Equal(t, "access", claims.Use)
}

func TestRefreshTokenIsNotAnAccessToken(t *testing.T) {
	svc := New("secret", time.Hour, 24*time.Hour)

	refresh, err := svc.GenerateRefreshToken(testUser())
	require.NoError(t, err)

	_, err = svc.ValidateAccess(refresh)
	assert.ErrorIs(t, err, ErrWrongUse)

	_, err = svc.ValidateRefresh(refresh)
	assert.NoError(t, err)

	access, err := svc.GenerateAccessToken(testUser())
	require.NoError(t, err)
	_, err = svc.ValidateRefresh(access)
	assert.ErrorIs(t, err, ErrWrongUse)
}

func TestValidate_WrongSecret(t *testing.T) {
	svc := New("secret", time.Hour, 24*time.Hour)
	other := New("other-secret", time.Hour, 24*time.Hour)

	token, err := svc.GenerateAccessToken(testUser())
	require.NoError(t, err)

	_, err = other.ValidateAccess(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidate_ExpiredToken(t *testing.T) {
	svc := New("secret", -time.Minute, 24*time.Hour)

	token, err := svc.GenerateAccessToken(testUser())
	require.NoError(t, err)

	_, err = svc.ValidateAccess(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidate_Garbage(t *testing.T) {
	svc := New("secret", time.Hour, 24*time.Hour)

	_, err := svc.ValidateAccess("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
