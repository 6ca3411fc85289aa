package routes

import (
	"context"
	"errors"
	"net/http"

	"studentvoice-backend/internal/config"
	"studentvoice-backend/internal/logger"
	"studentvoice-backend/internal/telemetry"
	"studentvoice-backend/middleware"
	"studentvoice-backend/models"
	"studentvoice-backend/utils"

	"github.com/gin-gonic/gin"
)

// AdviceGenerator turns a prompt into model text. *ai.GeminiClient implements it.
type AdviceGenerator interface {
	GenerateAdvice(ctx context.Context, prompt string) (string, error)
}

func SetupAdviceRoutes(router *gin.Engine, cfg *config.Config, generator AdviceGenerator, metrics *telemetry.Metrics) {
	router.POST("/generate-advice", middleware.RequestSizeLimit(cfg.MaxRequestSize), func(c *gin.Context) {
		var req models.AdviceRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				metrics.RecordAdvice("too_large")
				utils.RespondWithError(c, http.StatusRequestEntityTooLarge, utils.MsgRequestTooLarge)
				return
			}
			metrics.RecordAdvice("invalid")
			utils.RespondWithBadRequest(c, utils.MsgPromptRequired)
			return
		}

		advice, err := generator.GenerateAdvice(c.Request.Context(), req.Prompt)
		if err != nil {
			logger.Error("Error calling Gemini API from backend",
				"request_id", middleware.GetRequestID(c),
				"error", err,
			)
			_ = c.Error(err)
			metrics.RecordAdvice("upstream_error")
			utils.RespondWithInternalError(c, utils.MsgAdviceFailed)
			return
		}

		metrics.RecordAdvice("success")
		c.JSON(http.StatusOK, models.AdviceResponse{Advice: advice})
	})
}
