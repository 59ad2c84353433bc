package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/b4uspend/b4uspend-api/config"
	"github.com/b4uspend/b4uspend-api/services"
	"github.com/b4uspend/b4uspend-api/utils"
)

// AuthController handles registration, login and token lifecycle.
type AuthController struct {
	auth *services.AuthService
}

func NewAuthController(db *gorm.DB, cfg config.AppConfig) *AuthController {
	return &AuthController{auth: services.NewAuthService(db, cfg)}
}

// Register creates a new account and returns an initial token pair.
func (a *AuthController) Register(ctx *gin.Context) {
	var req struct {
		Phone    string `json:"phone" binding:"required,min=8,max=20"`
		Name     string `json:"name" binding:"required,min=1,max=120"`
		Password string `json:"password" binding:"required,min=6,max=72"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40001, "invalid request payload")
		return
	}

	user, err := a.auth.Register(strings.TrimSpace(req.Phone), strings.TrimSpace(req.Name), req.Password)
	if err != nil {
		if errors.Is(err, services.ErrConflict) {
			utils.Error(ctx, http.StatusConflict, 40901, "phone already registered")
			return
		}
		utils.Sugar.Errorf("register failed: %v", err)
		utils.Error(ctx, http.StatusInternalServerError, 50010, "failed to register user")
		return
	}

	tokens, err := a.auth.IssueTokens(user.ID)
	if err != nil {
		utils.Sugar.Errorf("issue tokens failed: %v", err)
		utils.Error(ctx, http.StatusInternalServerError, 50011, "failed to issue tokens")
		return
	}
	utils.Created(ctx, gin.H{"user": user, "tokens": tokens})
}

// Login verifies credentials and issues a fresh token pair.
func (a *AuthController) Login(ctx *gin.Context) {
	var req struct {
		Phone    string `json:"phone" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40002, "invalid request payload")
		return
	}

	user, err := a.auth.Authenticate(strings.TrimSpace(req.Phone), req.Password)
	if err != nil {
		if errors.Is(err, services.ErrUnauthorized) {
			utils.Error(ctx, http.StatusUnauthorized, 40110, "invalid phone or password")
			return
		}
		utils.Sugar.Errorf("login failed: %v", err)
		utils.Error(ctx, http.StatusInternalServerError, 50012, "failed to login")
		return
	}

	tokens, err := a.auth.IssueTokens(user.ID)
	if err != nil {
		utils.Sugar.Errorf("issue tokens failed: %v", err)
		utils.Error(ctx, http.StatusInternalServerError, 50011, "failed to issue tokens")
		return
	}
	utils.Success(ctx, gin.H{"user": user, "tokens": tokens})
}

// Refresh rotates a refresh token; the presented token is single-use.
func (a *AuthController) Refresh(ctx *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40003, "invalid request payload")
		return
	}

	tokens, err := a.auth.Refresh(req.RefreshToken)
	if err != nil {
		if errors.Is(err, services.ErrUnauthorized) {
			utils.Error(ctx, http.StatusUnauthorized, 40111, "invalid or expired refresh token")
			return
		}
		utils.Sugar.Errorf("refresh failed: %v", err)
		utils.Error(ctx, http.StatusInternalServerError, 50013, "failed to refresh tokens")
		return
	}
	utils.Success(ctx, tokens)
}

// Logout revokes the refresh token and blacklists the presented access token.
func (a *AuthController) Logout(ctx *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token"`
	}
	_ = ctx.ShouldBindJSON(&req)

	accessToken := ""
	if header := ctx.GetHeader("Authorization"); header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			accessToken = strings.TrimSpace(parts[1])
		}
	}

	if err := a.auth.Logout(accessToken, req.RefreshToken); err != nil {
		utils.Sugar.Errorf("logout failed: %v", err)
		utils.Error(ctx, http.StatusInternalServerError, 50014, "failed to logout")
		return
	}
	utils.Success(ctx, gin.H{"message": "logged out"})
}
