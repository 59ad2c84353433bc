package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/b4uspend/b4uspend-api/middleware"
	"github.com/b4uspend/b4uspend-api/services"
	"github.com/b4uspend/b4uspend-api/utils"
)

func getUserID(ctx *gin.Context) (uint, bool) {
	value, exists := ctx.Get(middleware.ContextUserIDKey)
	if !exists {
		return 0, false
	}

	switch v := value.(type) {
	case uint:
		return v, true
	case int:
		return uint(v), true
	case int64:
		return uint(v), true
	case float64:
		return uint(v), true
	default:
		return 0, false
	}
}

func parsePagination(pageStr, sizeStr string) (int, int) {
	page := 1
	pageSize := 20
	if p, err := strconv.Atoi(pageStr); err == nil && p > 0 {
		page = p
	}
	if s, err := strconv.Atoi(sizeStr); err == nil && s > 0 && s <= 100 {
		pageSize = s
	}
	return page, pageSize
}

func parseUintParam(ctx *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// serviceError maps service sentinel errors onto HTTP responses. The notFound
// message names the resource so clients get a useful detail without leaking
// cross-user existence.
func serviceError(ctx *gin.Context, err error, notFoundMsg, conflictMsg, invalidMsg string) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		utils.Error(ctx, http.StatusNotFound, 40400, notFoundMsg)
	case errors.Is(err, services.ErrConflict):
		utils.Error(ctx, http.StatusConflict, 40900, conflictMsg)
	case errors.Is(err, services.ErrInvalidState):
		utils.Error(ctx, http.StatusBadRequest, 40000, invalidMsg)
	case errors.Is(err, services.ErrUnauthorized):
		utils.Error(ctx, http.StatusUnauthorized, 40100, "unauthorized")
	default:
		utils.Sugar.Errorf("unexpected service error: %v", err)
		utils.Error(ctx, http.StatusInternalServerError, 50000, "internal server error")
	}
}
