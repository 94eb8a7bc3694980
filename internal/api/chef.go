package api

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/smartchef/ai-service/internal/service"
	"github.com/smartchef/ai-service/internal/types"
)

// maxImageSize caps uploaded detection images at 10 MiB.
const maxImageSize = 10 << 20

// ChefHandler serves the detect-and-suggest pipeline and follow-up chat.
type ChefHandler struct {
	chef service.IChefService
}

// NewChefHandler creates a new ChefHandler instance
func NewChefHandler(chef service.IChefService) *ChefHandler {
	return &ChefHandler{chef: chef}
}

// RegisterRoutes registers predict and chat routes
func (h *ChefHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/predict", h.Predict)
	router.POST("/chat", h.Chat)
}

// Predict accepts an ingredient photo, detects ingredients and returns
// ranked recipes plus cooking advice. Starts a session when the caller
// doesn't name one.
func (h *ChefHandler) Predict(c *gin.Context) {
	file, _, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}
	defer func() { _ = file.Close() }()

	image, err := io.ReadAll(io.LimitReader(file, maxImageSize+1))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read uploaded file"})
		return
	}
	if len(image) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Uploaded file is empty"})
		return
	}
	if len(image) > maxImageSize {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "Uploaded file is too large"})
		return
	}

	sessionID := c.PostForm("session_id")
	if sessionID == "" {
		sessionID = uuid.New().String()
	}

	result, err := h.chef.Suggest(c.Request.Context(), image, sessionID)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Suggestion pipeline failed"})
		return
	}

	c.JSON(http.StatusOK, result)
}

// Chat answers a follow-up question within an existing session
func (h *ChefHandler) Chat(c *gin.Context) {
	var req types.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reply, err := h.chef.Chat(c.Request.Context(), req.SessionID, req.Message)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Chat failed"})
		return
	}

	c.JSON(http.StatusOK, types.ChatResponse{
		SessionID: req.SessionID,
		Reply:     reply,
	})
}
