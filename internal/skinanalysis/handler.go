package skinanalysis

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"skincare-backend/internal/shared/server/middleware"
	"skincare-backend/internal/shared/server/respond"
)

// DefaultMaxUploadBytes bounds the multipart request body.
const DefaultMaxUploadBytes = 6 << 20

// Handler wires HTTP handlers to the analysis service.
type Handler struct {
	Svc            *Service
	MaxUploadBytes int64
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service, maxUploadBytes int64) *Handler {
	if maxUploadBytes <= 0 {
		maxUploadBytes = DefaultMaxUploadBytes
	}
	return &Handler{Svc: svc, MaxUploadBytes: maxUploadBytes}
}

// RegisterRoutes attaches the analysis route; mw runs before the handler.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, mw ...gin.HandlerFunc) {
	handlers := append(append([]gin.HandlerFunc{}, mw...), h.analyze)
	rg.POST("/skin-analysis", handlers...)
}

func (h *Handler) analyze(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.MaxUploadBytes)

	fileHeader, err := c.FormFile("image")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			respond.Error(c, http.StatusRequestEntityTooLarge, "validation_error", "image is too large", nil)
			return
		}
		respond.Error(c, http.StatusBadRequest, "validation_error", "image is required", nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read image", nil)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read image", nil)
		return
	}

	ctx := WithRequestID(c.Request.Context(), c.GetString("requestId"))
	result, err := h.Svc.Analyze(ctx, AnalyzeInput{
		Image:    data,
		FileName: fileHeader.Filename,
		CallerID: userID,
	})
	if err != nil {
		message := err.Error()
		var aerr *AnalysisError
		if errors.As(err, &aerr) {
			message = aerr.Err.Error()
			if aerr.ID != "" {
				c.Set("analysisId", aerr.ID)
			}
		}
		switch {
		case errors.Is(err, ErrValidation):
			respond.Error(c, http.StatusBadRequest, "validation_error", message, nil)
		case errors.Is(err, ErrConfiguration):
			respond.Error(c, http.StatusInternalServerError, "configuration_error", "skin analysis is not available", nil)
		default:
			respond.Error(c, http.StatusBadGateway, "analysis_failed", "skin analysis failed, please try again", nil)
		}
		return
	}

	c.Set("analysisId", result.ID)
	respond.JSON(c, http.StatusOK, result)
}
