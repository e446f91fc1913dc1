package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/ppiankov/verdict/internal/model"
	"github.com/ppiankov/verdict/internal/pipeline"
	"go.uber.org/zap"
)

type handlers struct {
	analyzer Analyzer
	logger   *zap.Logger
}

// analyzeRequest keeps "text" untyped so non-string values reach the
// validator and are rejected there.
type analyzeRequest struct {
	Text interface{} `json:"text"`
}

func (h *handlers) analyze(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.logger, model.NewError(model.KindInvalidInput, err))
		return
	}

	result, err := h.analyzer.Analyze(c.Request.Context(), req.Text)
	if err != nil {
		respondError(c, h.logger, pipeline.AsPipelineError(err))
		return
	}

	c.JSON(http.StatusOK, result)
}

// preflight answers OPTIONS requests that carry no Origin header; the cors
// middleware handles the rest before this runs.
func (h *handlers) preflight(c *gin.Context) {
	c.Header("Access-Control-Allow-Origin", "*")
	c.Header("Access-Control-Allow-Headers", strings.Join(allowedHeaders, ", "))
	c.Header("Access-Control-Allow-Methods", "POST, OPTIONS")
	c.Status(http.StatusOK)
}

func (h *handlers) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":     "ok",
		"classifier": h.analyzer.ClassifierName(),
	})
}

// respondError writes the stable {error} body with the mapped status
func respondError(c *gin.Context, logger *zap.Logger, perr *model.PipelineError) {
	if perr.Kind.Internal() {
		logger.Error("request failed",
			zap.String("request_id", c.GetString(requestIDKey)),
			zap.String("kind", string(perr.Kind)),
			zap.Error(perr.Err))
	} else {
		logger.Debug("request rejected",
			zap.String("request_id", c.GetString(requestIDKey)),
			zap.String("kind", string(perr.Kind)),
			zap.Error(perr.Err))
	}
	c.AbortWithStatusJSON(perr.Status(), perr.Body())
}
