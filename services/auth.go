package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/b4uspend/b4uspend-api/config"
	"github.com/b4uspend/b4uspend-api/models"
	"github.com/b4uspend/b4uspend-api/utils"
)

// TokenPair is returned on register, login and refresh.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

type AuthService struct {
	db  *gorm.DB
	cfg config.AppConfig
}

func NewAuthService(db *gorm.DB, cfg config.AppConfig) *AuthService {
	return &AuthService{db: db, cfg: cfg}
}

// Register creates a user with a hashed password and seeds one checklist item
// per known item type, all in one transaction.
func (s *AuthService) Register(phone, name, password string) (*models.User, error) {
	var count int64
	if err := s.db.Model(&models.User{}).Where("phone = ?", phone).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrConflict
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Phone:        phone,
		Name:         name,
		PasswordHash: hash,
	}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		items := make([]models.UserChecklistItem, 0, len(models.ChecklistItemTypes()))
		for _, it := range models.ChecklistItemTypes() {
			items = append(items, models.UserChecklistItem{
				UserID:   user.ID,
				ItemType: it,
				Status:   models.ChecklistMissing,
			})
		}
		return tx.Create(&items).Error
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Authenticate verifies phone and password.
func (s *AuthService) Authenticate(phone, password string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("phone = ?", phone).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, err
	}
	if !utils.CheckPassword(user.PasswordHash, password) {
		return nil, ErrUnauthorized
	}
	return &user, nil
}

// IssueTokens generates an access/refresh pair and persists the refresh token.
func (s *AuthService) IssueTokens(userID uint) (*TokenPair, error) {
	access, _, err := utils.GenerateAccessToken(s.cfg, userID)
	if err != nil {
		return nil, err
	}
	refresh, refreshExp, err := utils.GenerateRefreshToken(s.cfg, userID)
	if err != nil {
		return nil, err
	}
	row := models.RefreshToken{
		UserID:    userID,
		Token:     refresh,
		ExpiresAt: refreshExp,
	}
	if err := s.db.Create(&row).Error; err != nil {
		return nil, err
	}
	return &TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "bearer",
	}, nil
}

// Refresh rotates a refresh token: the presented token must parse as a
// refresh-type JWT and exist in storage. The stored row is deleted and a new
// pair is issued, so each refresh token is single-use.
func (s *AuthService) Refresh(refreshToken string) (*TokenPair, error) {
	claims, err := utils.ParseToken(s.cfg, refreshToken)
	if err != nil || claims.TokenType != utils.TokenTypeRefresh {
		return nil, ErrUnauthorized
	}

	var row models.RefreshToken
	if err := s.db.Where("token = ?", refreshToken).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, err
	}
	if time.Now().After(row.ExpiresAt) {
		s.db.Delete(&row)
		return nil, ErrUnauthorized
	}
	if err := s.db.Delete(&row).Error; err != nil {
		return nil, err
	}
	return s.IssueTokens(row.UserID)
}

// Logout revokes the refresh token if present and blacklists the access token
// until it would expire. Unknown refresh tokens are ignored so logout is
// idempotent.
func (s *AuthService) Logout(accessToken, refreshToken string) error {
	if refreshToken != "" {
		if err := s.db.Where("token = ?", refreshToken).
			Delete(&models.RefreshToken{}).Error; err != nil {
			return err
		}
	}
	if accessToken != "" {
		if claims, err := utils.ParseToken(s.cfg, accessToken); err == nil && claims.ExpiresAt != nil {
			utils.BlacklistToken(accessToken, claims.ExpiresAt.Time)
		}
	}
	return nil
}
