package extract

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"resume-studio/internal/shared/server/middleware"
	"resume-studio/internal/shared/server/respond"
	"resume-studio/internal/shared/storage/object"
	"resume-studio/internal/shared/telemetry"
)

const maxImportBytes = 5 << 20

// Handler accepts resume PDF uploads and returns their extracted text so the
// builder form can be prefilled.
type Handler struct {
	Store object.ObjectStore
}

// NewHandler constructs a Handler.
func NewHandler(store object.ObjectStore) *Handler {
	return &Handler{Store: store}
}

// RegisterRoutes attaches the import route to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/analysis/import", h.importResume)
}

func (h *Handler) importResume(c *gin.Context) {
	file, header, err := c.Request.FormFile("resume")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "resume file is required", nil)
		return
	}
	defer file.Close()

	if header.Size <= 0 || header.Size > maxImportBytes {
		respond.Error(c, http.StatusBadRequest, "validation_error", "resume file exceeds size limit", nil)
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, maxImportBytes+1))
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to read upload", nil)
		return
	}
	if len(data) > maxImportBytes {
		respond.Error(c, http.StatusBadRequest, "validation_error", "resume file exceeds size limit", nil)
		return
	}

	mimeType := header.Header.Get("Content-Type")
	if strings.TrimSpace(mimeType) == "" {
		mimeType = http.DetectContentType(data)
	}

	ctx := c.Request.Context()
	text, err := ExtractTextFromBytes(ctx, data, mimeType)
	if err != nil {
		if errors.Is(err, ErrUnsupportedType) {
			respond.Error(c, http.StatusBadRequest, "validation_error", "only PDF resumes are supported", nil)
			return
		}
		respond.Error(c, http.StatusUnprocessableEntity, "extract_failed", "could not read text from the PDF", nil)
		return
	}

	// Keep the original for troubleshooting; losing it must not fail the
	// import.
	userID := middleware.UserIDFromContext(c)
	if h.Store != nil {
		if _, _, _, err := h.Store.Save(ctx, userID, header.Filename, strings.NewReader(string(data))); err != nil {
			telemetry.Error("resume import archive failed", map[string]any{
				"userId": userID,
				"error":  err.Error(),
			})
		}
	}

	respond.JSON(c, http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"fileName": header.Filename,
			"text":     text,
			"length":   len(text),
		},
	})
}
