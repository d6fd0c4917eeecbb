package analysis

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"resume-studio/internal/resume"
	"resume-studio/internal/shared/server/middleware"
	"resume-studio/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the analysis service. The analyze, save,
// history and lookup bodies follow the resume builder's wire contract, so
// they are written out literally instead of through respond.Error.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches analysis routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/analysis/analyze", h.analyze)
	rg.POST("/analysis/save", h.save)
	rg.GET("/analysis/history", h.history)
	rg.GET("/analysis/providers", h.providers)
	rg.GET("/analysis/:id", h.get)
}

type analyzeRequest struct {
	ResumeData   resume.RawSnapshot `json:"resumeData"`
	AnalysisType string             `json:"analysisType"`
	Provider     string             `json:"provider"`
}

func (h *Handler) analyze(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid resume data",
			"details": []string{"Request body must be valid JSON"},
		})
		return
	}

	userID := middleware.UserIDFromContext(c)
	guest := middleware.GuestFromContext(c)

	out, err := h.Svc.Analyze(c.Request.Context(), userID, guest, req.ResumeData, req.AnalysisType, req.Provider)
	if err != nil {
		var vErr *ValidationError
		if errors.As(err, &vErr) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "Invalid resume data",
				"details": vErr.Details,
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":        "Analysis failed",
			"message":      err.Error(),
			"fallbackUsed": false,
		})
		return
	}

	var analysisID any
	if out.AnalysisID != "" {
		analysisID = out.AnalysisID
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    out.Result,
		"metadata": gin.H{
			"analysisId": analysisID,
			"analyzedAt": out.AnalyzedAt,
		},
	})
}

type saveRequest struct {
	AnalysisResult json.RawMessage `json:"analysisResult"`
	Timestamp      string          `json:"timestamp"`
}

// save is the explicit best-effort save endpoint. It always reports
// success; the archive write may silently no-op.
func (h *Handler) save(c *gin.Context) {
	var req saveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid resume data",
			"details": []string{"Request body must be valid JSON"},
		})
		return
	}

	userID := middleware.UserIDFromContext(c)
	h.Svc.Archive(c.Request.Context(), userID, req.AnalysisResult)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Analysis saved successfully",
		"savedAt": time.Now().UTC(),
	})
}

func (h *Handler) history(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	if userID == "" || middleware.GuestFromContext(c) {
		respond.Error(c, http.StatusUnauthorized, "unauthorized", "Sign in to view analysis history", nil)
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	summaries, pagination, err := h.Svc.History(c.Request.Context(), userID, page, limit)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch history", nil)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"data":       summaries,
		"pagination": pagination,
	})
}

func (h *Handler) providers(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"providers": h.Svc.Providers(),
		"default":   h.Svc.DefaultProvider(),
	})
}

func (h *Handler) get(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	if userID == "" || middleware.GuestFromContext(c) {
		respond.Error(c, http.StatusUnauthorized, "unauthorized", "Sign in to view analyses", nil)
		return
	}

	analysis, err := h.Svc.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Analysis not found"})
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch analysis", nil)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    analysis,
	})
}
