package handler

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"setu-signal-bot/internal/analysis"
	"setu-signal-bot/internal/service"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var errEmptyUpload = errors.New("image is required")

// AnalyzeChart godoc
// @Summary      Analyze a chart screenshot
// @Description  Accepts a PNG, JPEG or GIF screenshot either as the "image" multipart field or as the raw request body and returns the synthesized analysis with its rendered report
// @Tags         analysis
// @Accept       multipart/form-data
// @Accept       image/png
// @Accept       image/jpeg
// @Produce      json
// @Param        image  formData  file  false  "Chart screenshot"
// @Success      200  {object}  domain.Analysis
// @Failure      400  {object}  map[string]string
// @Failure      413  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/analyze [post]
func (h *Handler) AnalyzeChart(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.analyze-chart")
	defer span.End()

	if c.Request.ContentLength > h.maxBodyBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": tooLargeMessage(h.maxBodyBytes)})
		return
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBodyBytes)

	data, err := readUpload(c)
	if err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": tooLargeMessage(h.maxBodyBytes)})
		case errors.Is(err, http.ErrMissingFile), errors.Is(err, errEmptyUpload):
			c.JSON(http.StatusBadRequest, gin.H{"error": errEmptyUpload.Error()})
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		}
		return
	}
	span.SetAttributes(attribute.Int("upload.bytes", len(data)))

	result, err := h.analyzer.Analyze(ctx, service.SourceHTTP, bytes.NewReader(data))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		if errors.Is(err, analysis.ErrInputDecode) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "analysis failed"})
		return
	}

	span.SetAttributes(attribute.String("analysis.action", string(result.Record.RecommendedAction())))
	c.JSON(http.StatusOK, result)
}

// readUpload takes the "image" field of a multipart form, or the raw body for
// any other content type.
func readUpload(c *gin.Context) ([]byte, error) {
	var r io.Reader = c.Request.Body
	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		fh, err := c.FormFile("image")
		if err != nil {
			return nil, err
		}
		f, err := fh.Open()
		if err != nil {
			return nil, fmt.Errorf("open upload: %w", err)
		}
		defer f.Close()
		r = f
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, errEmptyUpload
	}
	return data, nil
}

func tooLargeMessage(limit int64) string {
	return fmt.Sprintf("image exceeds %d bytes", limit)
}
