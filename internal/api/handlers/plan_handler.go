package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/craftplan/backend-go/internal/domain"
	"github.com/craftplan/backend-go/internal/export"
	"github.com/craftplan/backend-go/internal/service"
)

type PlanHandler struct {
	service  *service.PlanningService
	archiver *export.Archiver
}

// NewPlanHandler builds the planning handler. archiver may be nil when object
// storage is disabled; the export endpoint then only streams the CSV.
func NewPlanHandler(service *service.PlanningService, archiver *export.Archiver) *PlanHandler {
	return &PlanHandler{service: service, archiver: archiver}
}

func (h *PlanHandler) parseFilter(c *gin.Context) domain.PlanFilter {
	filter := domain.PlanFilter{}

	if category := strings.TrimSpace(c.Query("category")); category != "" {
		filter.Category = category
	}

	if raw := strings.TrimSpace(c.Query("status")); raw != "" {
		if status, ok := domain.ParseStockStatus(raw); ok {
			filter.Status = status
		}
	}

	if raw := strings.TrimSpace(c.Query("needs_reorder")); raw != "" {
		filter.NeedsReorder = domain.ParseTruthy(raw)
	}

	if horizon, err := strconv.Atoi(c.DefaultQuery("horizon_days", "0")); err == nil && horizon > 0 {
		filter.HorizonDays = horizon
	}

	return filter
}

// GetItems returns the current replenishment plan.
func (h *PlanHandler) GetItems(c *gin.Context) {
	filter := h.parseFilter(c)
	items, err := h.service.Plan(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute plan", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items": items,
		"total": len(items),
	})
}

// GetSchedule returns the plan bucketed into procurement windows.
func (h *PlanHandler) GetSchedule(c *gin.Context) {
	schedule, err := h.service.Schedule(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute schedule", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, schedule)
}

// GetProjection returns the plan recomputed under a forward horizon.
func (h *PlanHandler) GetProjection(c *gin.Context) {
	filter := h.parseFilter(c)
	horizon, _ := strconv.Atoi(c.DefaultQuery("horizon_days", "30"))

	items, err := h.service.Project(c.Request.Context(), horizon, filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute projection", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"horizon_days": horizon,
		"items":        items,
		"total":        len(items),
	})
}

// GetDashboard returns the aggregated plan summary.
func (h *PlanHandler) GetDashboard(c *gin.Context) {
	filter := h.parseFilter(c)
	summary, err := h.service.Dashboard(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute dashboard", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, summary)
}

// ExportPlan streams the plan as a CSV attachment. With ?archive=true and
// object storage configured, the same file is also archived.
func (h *PlanHandler) ExportPlan(c *gin.Context) {
	filter := h.parseFilter(c)
	items, err := h.service.Plan(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute plan", "details": err.Error()})
		return
	}

	var buf bytes.Buffer
	if err := export.WritePlanCSV(&buf, items); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to render csv", "details": err.Error()})
		return
	}

	archived := ""
	if truthy := domain.ParseTruthy(c.Query("archive")); truthy != nil && *truthy && h.archiver != nil {
		key, err := h.archiver.Archive(c.Request.Context(), items)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to archive plan", "details": err.Error()})
			return
		}
		archived = key
	}
	if archived != "" {
		c.Header("X-Archive-Key", archived)
	}

	filename := fmt.Sprintf("replenishment-plan-%s.csv", time.Now().UTC().Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/csv", buf.Bytes())
}
