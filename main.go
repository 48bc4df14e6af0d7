package main

import (
	"context"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/phrazzld/scry-sub004/internal/features/generation/application"
	"github.com/phrazzld/scry-sub004/internal/features/generation/domain"
	"github.com/phrazzld/scry-sub004/internal/features/generation/infrastructure"
	quiz_http "github.com/phrazzld/scry-sub004/internal/features/generation/presentation/http"
	"github.com/phrazzld/scry-sub004/internal/platform/logger"
)

func main() {
	// Load .env file; absent files mean plain environment variables.
	_ = godotenv.Load()

	log, err := logger.New(os.Getenv("APP_ENV"))
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	r := gin.Default()

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	clients := func(ctx context.Context, provider domain.ProviderConfig) (infrastructure.AIClient, error) {
		return infrastructure.NewAIClient(ctx, provider, log)
	}
	service := application.NewGenerationService(clients, application.NewLogRecorder(log), log)

	// Quiz API routes. The experimentation harness (ExecuteConfig) is not
	// mounted; it is reachable through the quizlab CLI only.
	quizGroup := r.Group("/api/quiz")
	{
		handler := quiz_http.NewQuizHandler(service)
		quizGroup.POST("/generate", handler.GenerateHandler)
	}

	if err := r.Run(":8080"); err != nil {
		log.Fatal("server stopped", "error", err)
	}
}
