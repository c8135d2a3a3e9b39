package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/craftplan/backend-go/internal/service"
)

type MaterialsHandler struct {
	service *service.PlanningService
}

func NewMaterialsHandler(service *service.PlanningService) *MaterialsHandler {
	return &MaterialsHandler{service: service}
}

// GetMaterials lists the raw material master data behind the plan.
func (h *MaterialsHandler) GetMaterials(c *gin.Context) {
	materials, err := h.service.Materials(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch materials", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"materials": materials,
		"total":     len(materials),
	})
}
