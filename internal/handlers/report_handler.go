package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Aradhik11/task-management-api/internal/services"
)

// ReportHandler serves the /report endpoints.
type ReportHandler struct {
	reports *services.ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reports *services.ReportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// Completion handles GET /report.
func (h *ReportHandler) Completion(c *gin.Context) {
	stats, err := h.reports.CompletionStats(readScope(c))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"completionStats": stats,
		"generatedAt":     time.Now(),
		"userRole":        c.GetString(CtxUserRole),
	})
}

// Time handles GET /report/report-time.
func (h *ReportHandler) Time(c *gin.Context) {
	stats, err := h.reports.TimeStats(readScope(c))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"timeStats":   stats,
		"generatedAt": time.Now(),
		"userRole":    c.GetString(CtxUserRole),
	})
}
