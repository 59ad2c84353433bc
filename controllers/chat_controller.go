package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/b4uspend/b4uspend-api/services"
	"github.com/b4uspend/b4uspend-api/utils"
)

// ChatController handles the rule-based advisor chat.
type ChatController struct {
	chat *services.ChatService
}

func NewChatController(db *gorm.DB) *ChatController {
	return &ChatController{chat: services.NewChatService(db)}
}

func (c *ChatController) History(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40100, "unauthorized")
		return
	}
	limit := 50
	if v, err := strconv.Atoi(ctx.Query("limit")); err == nil && v > 0 && v <= 200 {
		limit = v
	}
	messages, err := c.chat.History(userID, limit)
	if err != nil {
		utils.Sugar.Errorf("chat history failed: %v", err)
		utils.Error(ctx, http.StatusInternalServerError, 50080, "failed to load chat history")
		return
	}
	utils.Success(ctx, gin.H{"messages": messages})
}

// Send stores the user's message and returns it with the generated reply.
func (c *ChatController) Send(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40100, "unauthorized")
		return
	}
	var req struct {
		Content string `json:"content" binding:"required,min=1,max=2000"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40080, "invalid request payload")
		return
	}

	userMsg, botMsg, err := c.chat.Send(userID, utils.Sanitize(req.Content))
	if err != nil {
		utils.Sugar.Errorf("chat send failed: %v", err)
		utils.Error(ctx, http.StatusInternalServerError, 50081, "failed to send message")
		return
	}
	utils.Created(ctx, gin.H{"messages": []interface{}{userMsg, botMsg}})
}

func (c *ChatController) Clear(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40100, "unauthorized")
		return
	}
	if err := c.chat.Clear(userID); err != nil {
		utils.Sugar.Errorf("chat clear failed: %v", err)
		utils.Error(ctx, http.StatusInternalServerError, 50082, "failed to clear chat history")
		return
	}
	utils.Success(ctx, gin.H{"message": "chat history cleared"})
}
