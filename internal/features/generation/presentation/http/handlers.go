package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/phrazzld/scry-sub004/internal/features/generation/application"
)

// QuizHandler holds the generation service.
type QuizHandler struct {
	service application.GenerationService
}

// NewQuizHandler creates a new QuizHandler.
func NewQuizHandler(service application.GenerationService) *QuizHandler {
	return &QuizHandler{service: service}
}

type generateRequest struct {
	Topic string `json:"topic" binding:"required"`
}

// GenerateHandler handles the request to generate a quiz for a topic. The
// engine degrades internally, so clients get a question set for any
// generation-class failure; only engine misconfiguration surfaces as 500.
func (h *QuizHandler) GenerateHandler(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if strings.TrimSpace(req.Topic) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "topic must not be empty"})
		return
	}

	questions, err := h.service.GenerateQuestions(c.Request.Context(), req.Topic)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate questions: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"questions": questions})
}
