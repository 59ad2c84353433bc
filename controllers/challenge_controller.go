package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/b4uspend/b4uspend-api/models"
	"github.com/b4uspend/b4uspend-api/services"
	"github.com/b4uspend/b4uspend-api/utils"
)

const challengeCatalogCacheKey = "cache:challenges:catalog"

// ChallengeController handles challenge catalog, enrollment and ranking.
type ChallengeController struct {
	challenges *services.ChallengeService
}

func NewChallengeController(db *gorm.DB) *ChallengeController {
	return &ChallengeController{challenges: services.NewChallengeService(db)}
}

// ListAvailable returns the active catalog. The catalog rarely changes, so
// responses are cached for a few minutes.
func (c *ChallengeController) ListAvailable(ctx *gin.Context) {
	if b, ok := utils.CacheGetBytes(challengeCatalogCacheKey); ok {
		ctx.Data(http.StatusOK, "application/json", b)
		return
	}

	items, total, err := c.challenges.ListAvailable()
	if err != nil {
		utils.Sugar.Errorf("list challenges failed: %v", err)
		utils.Error(ctx, http.StatusInternalServerError, 50070, "failed to list challenges")
		return
	}
	payload := gin.H{"items": items, "total": total}
	wrapper := utils.JSONResponse{Code: 0, Message: "success", Data: payload}
	utils.CacheSetJSON(challengeCatalogCacheKey, wrapper, 5*time.Minute)
	utils.Success(ctx, payload)
}

func (c *ChallengeController) Join(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40100, "unauthorized")
		return
	}
	var req struct {
		ChallengeID uint `json:"challenge_id" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40070, "invalid challenge id")
		return
	}
	uc, err := c.challenges.Join(userID, req.ChallengeID)
	if err != nil {
		serviceError(ctx, err, "challenge not found", "already joined this challenge", "")
		return
	}
	utils.Created(ctx, uc)
}

// ListMine returns the user's enrollments with progress, re-evaluating
// completion for each on the way out.
func (c *ChallengeController) ListMine(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40100, "unauthorized")
		return
	}
	var statusFilter models.ChallengeStatus
	if raw := ctx.Query("status"); raw != "" {
		statusFilter = models.ChallengeStatus(raw)
		if !statusFilter.Valid() {
			utils.Error(ctx, http.StatusBadRequest, 40071, "invalid status filter")
			return
		}
	}

	items, total, err := c.challenges.ListMine(userID, statusFilter)
	if err != nil {
		utils.Sugar.Errorf("list user challenges failed: %v", err)
		utils.Error(ctx, http.StatusInternalServerError, 50071, "failed to list user challenges")
		return
	}

	views := make([]services.UserChallengeView, 0, len(items))
	for i := range items {
		if err := c.challenges.CheckAndComplete(&items[i]); err != nil {
			utils.Sugar.Errorf("challenge completion check failed: %v", err)
			utils.Error(ctx, http.StatusInternalServerError, 50072, "failed to evaluate challenge")
			return
		}
		progress, err := c.challenges.Progress(&items[i])
		if err != nil {
			utils.Sugar.Errorf("challenge progress failed: %v", err)
			utils.Error(ctx, http.StatusInternalServerError, 50072, "failed to evaluate challenge")
			return
		}
		views = append(views, services.UserChallengeView{UserChallenge: items[i], ChallengeProgress: *progress})
	}
	utils.Success(ctx, gin.H{"items": views, "total": total})
}

// MyProgress aggregates active challenges, completed count and badges.
func (c *ChallengeController) MyProgress(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40100, "unauthorized")
		return
	}
	overview, err := c.challenges.UserProgress(userID)
	if err != nil {
		utils.Sugar.Errorf("user progress failed: %v", err)
		utils.Error(ctx, http.StatusInternalServerError, 50073, "failed to build progress overview")
		return
	}
	utils.Success(ctx, overview)
}

// Leaderboard ranks participants of one challenge with pseudonymized names.
func (c *ChallengeController) Leaderboard(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40100, "unauthorized")
		return
	}
	challengeID, ok := parseUintParam(ctx, "id")
	if !ok {
		utils.Error(ctx, http.StatusBadRequest, 40070, "invalid challenge id")
		return
	}
	limit := 10
	if v, err := strconv.Atoi(ctx.Query("limit")); err == nil && v > 0 && v <= 100 {
		limit = v
	}

	board, err := c.challenges.GetLeaderboard(challengeID, userID, limit)
	if err != nil {
		serviceError(ctx, err, "challenge not found", "", "")
		return
	}
	utils.Success(ctx, board)
}

// GetMine returns one enrollment with progress after a completion check.
func (c *ChallengeController) GetMine(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40100, "unauthorized")
		return
	}
	userChallengeID, ok := parseUintParam(ctx, "id")
	if !ok {
		utils.Error(ctx, http.StatusBadRequest, 40072, "invalid enrollment id")
		return
	}
	uc, err := c.challenges.GetMine(userID, userChallengeID)
	if err != nil {
		serviceError(ctx, err, "challenge not found", "", "")
		return
	}
	if err := c.challenges.CheckAndComplete(uc); err != nil {
		utils.Sugar.Errorf("challenge completion check failed: %v", err)
		utils.Error(ctx, http.StatusInternalServerError, 50072, "failed to evaluate challenge")
		return
	}
	progress, err := c.challenges.Progress(uc)
	if err != nil {
		utils.Sugar.Errorf("challenge progress failed: %v", err)
		utils.Error(ctx, http.StatusInternalServerError, 50072, "failed to evaluate challenge")
		return
	}
	utils.Success(ctx, services.UserChallengeView{UserChallenge: *uc, ChallengeProgress: *progress})
}

// Abandon marks an ACTIVE enrollment abandoned.
func (c *ChallengeController) Abandon(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40100, "unauthorized")
		return
	}
	userChallengeID, ok := parseUintParam(ctx, "id")
	if !ok {
		utils.Error(ctx, http.StatusBadRequest, 40072, "invalid enrollment id")
		return
	}
	if err := c.challenges.Abandon(userID, userChallengeID); err != nil {
		serviceError(ctx, err, "challenge not found", "", "can only abandon active challenges")
		return
	}
	utils.Success(ctx, gin.H{"message": "challenge abandoned"})
}
