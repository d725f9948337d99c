package handler

import (
	"context"
	"io"
	"net/http"

	"setu-signal-bot/internal/domain"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"
)

const defaultMaxBodyBytes = 10 << 20

type Analyzer interface {
	Analyze(ctx context.Context, source string, r io.Reader) (*domain.Analysis, error)
}

type Handler struct {
	tracer       trace.Tracer
	analyzer     Analyzer
	maxBodyBytes int64
}

func New(tracer trace.Tracer, analyzer Analyzer, maxBodyBytes int64) *Handler {
	if tracer == nil {
		tracer = trace.NewNoopTracerProvider().Tracer("handler")
	}
	if maxBodyBytes <= 0 {
		maxBodyBytes = defaultMaxBodyBytes
	}
	return &Handler{
		tracer:       tracer,
		analyzer:     analyzer,
		maxBodyBytes: maxBodyBytes,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", h.Health)
	r.POST("/api/analyze", h.AnalyzeChart)
}

// Health godoc
// @Summary      Health check
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
