// internal/api/api.go
package api

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/craftplan/backend-go/internal/api/handlers"
	"github.com/craftplan/backend-go/internal/api/middleware"
	"github.com/craftplan/backend-go/internal/export"
	"github.com/craftplan/backend-go/internal/service"
)

type Services struct {
	PlanningService *service.PlanningService
	Archiver        *export.Archiver
}

func NewRouter(services *Services, allowedOrigins []string) *gin.Engine {
	router := gin.New()

	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())

	defaultOrigins := []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	corsConfig := cors.Config{
		AllowOrigins:     defaultOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition", "X-Archive-Key"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(allowedOrigins) > 0 {
		normalizedOrigins, allowAll := normalizeAllowedOrigins(allowedOrigins)
		if allowAll {
			corsConfig.AllowOrigins = nil
			corsConfig.AllowOriginFunc = func(origin string) bool { return true }
		} else if len(normalizedOrigins) > 0 {
			corsConfig.AllowOrigins = normalizedOrigins
		}
	}
	router.Use(cors.New(corsConfig))

	apiGroup := router.Group("/api/v1")

	if services != nil && services.PlanningService != nil {
		planHandler := handlers.NewPlanHandler(services.PlanningService, services.Archiver)
		planningGroup := apiGroup.Group("/planning")
		{
			planningGroup.GET("/items", planHandler.GetItems)
			planningGroup.GET("/schedule", planHandler.GetSchedule)
			planningGroup.GET("/projection", planHandler.GetProjection)
			planningGroup.GET("/dashboard", planHandler.GetDashboard)
			planningGroup.GET("/export", planHandler.ExportPlan)
		}

		materialsHandler := handlers.NewMaterialsHandler(services.PlanningService)
		apiGroup.GET("/materials", materialsHandler.GetMaterials)
	}

	return router
}

func normalizeAllowedOrigins(origins []string) ([]string, bool) {
	var (
		parsed   []string
		allowAll bool
	)
	for _, origin := range origins {
		parts := strings.Split(origin, ",")
		for _, part := range parts {
			trimmed := strings.TrimSpace(part)
			if trimmed == "" {
				continue
			}
			if trimmed == "*" {
				allowAll = true
				continue
			}
			parsed = append(parsed, trimmed)
		}
	}
	return parsed, allowAll
}
