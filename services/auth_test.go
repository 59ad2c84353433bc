package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/b4uspend/b4uspend-api/config"
	"github.com/b4uspend/b4uspend-api/models"
	"github.com/b4uspend/b4uspend-api/utils"
)

func testAuthConfig() config.AppConfig {
	return config.AppConfig{
		JWTSecret:                "unit-test-secret",
		AccessTokenExpireMinutes: 15,
		RefreshTokenExpireDays:   30,
	}
}

func TestRegisterSeedsChecklist(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, testAuthConfig())

	user, err := svc.Register("9876501234", "Asha", "secret123")
	require.NoError(t, err)
	require.NotZero(t, user.ID)

	var items []models.UserChecklistItem
	require.NoError(t, db.Where("user_id = ?", user.ID).Find(&items).Error)
	require.Len(t, items, len(models.ChecklistItemTypes()))
	for _, item := range items {
		assert.Equal(t, models.ChecklistMissing, item.Status)
		assert.Nil(t, item.CompletedAt)
	}
}

func TestRegisterDuplicatePhone(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, testAuthConfig())

	_, err := svc.Register("9876501235", "First", "secret123")
	require.NoError(t, err)

	_, err = svc.Register("9876501235", "Second", "secret456")
	assert.ErrorIs(t, err, ErrConflict)
}

func TestAuthenticate(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, testAuthConfig())

	_, err := svc.Register("9876501236", "Ravi", "secret123")
	require.NoError(t, err)

	user, err := svc.Authenticate("9876501236", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "Ravi", user.Name)

	_, err = svc.Authenticate("9876501236", "wrong-password")
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = svc.Authenticate("0000000000", "secret123")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestRefreshTokenRotation(t *testing.T) {
	db := newTestDB(t)
	cfg := testAuthConfig()
	svc := NewAuthService(db, cfg)

	user, err := svc.Register("9876501237", "Meera", "secret123")
	require.NoError(t, err)
	tokens, err := svc.IssueTokens(user.ID)
	require.NoError(t, err)

	rotated, err := svc.Refresh(tokens.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, tokens.RefreshToken, rotated.RefreshToken)

	// The old token was deleted on first use; replay must fail.
	_, err = svc.Refresh(tokens.RefreshToken)
	assert.ErrorIs(t, err, ErrUnauthorized)

	// The new token still works.
	_, err = svc.Refresh(rotated.RefreshToken)
	assert.NoError(t, err)
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	db := newTestDB(t)
	cfg := testAuthConfig()
	svc := NewAuthService(db, cfg)

	user, err := svc.Register("9876501238", "Kiran", "secret123")
	require.NoError(t, err)
	tokens, err := svc.IssueTokens(user.ID)
	require.NoError(t, err)

	_, err = svc.Refresh(tokens.AccessToken)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestRefreshExpiredRowDeleted(t *testing.T) {
	db := newTestDB(t)
	cfg := testAuthConfig()
	svc := NewAuthService(db, cfg)

	user, err := svc.Register("9876501239", "Dev", "secret123")
	require.NoError(t, err)
	tokens, err := svc.IssueTokens(user.ID)
	require.NoError(t, err)

	// Expire the stored row without touching the signed payload.
	require.NoError(t, db.Model(&models.RefreshToken{}).
		Where("token = ?", tokens.RefreshToken).
		Update("expires_at", time.Now().Add(-time.Hour)).Error)

	_, err = svc.Refresh(tokens.RefreshToken)
	assert.ErrorIs(t, err, ErrUnauthorized)

	// Expiry detection deletes the row.
	var count int64
	require.NoError(t, db.Model(&models.RefreshToken{}).
		Where("token = ?", tokens.RefreshToken).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestLogoutIdempotent(t *testing.T) {
	db := newTestDB(t)
	cfg := testAuthConfig()
	svc := NewAuthService(db, cfg)

	user, err := svc.Register("9876501240", "Nisha", "secret123")
	require.NoError(t, err)
	tokens, err := svc.IssueTokens(user.ID)
	require.NoError(t, err)

	require.NoError(t, svc.Logout(tokens.AccessToken, tokens.RefreshToken))
	// Second logout with the same tokens is a no-op.
	require.NoError(t, svc.Logout(tokens.AccessToken, tokens.RefreshToken))
	// Unknown tokens are also fine.
	require.NoError(t, svc.Logout("", "never-issued"))

	_, err = svc.Refresh(tokens.RefreshToken)
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.True(t, utils.IsTokenBlacklisted(tokens.AccessToken))
}
