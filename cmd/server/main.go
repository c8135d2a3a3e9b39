// backend-go/cmd/server/main.go
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/craftplan/backend-go/internal/api"
	"github.com/craftplan/backend-go/internal/cache"
	"github.com/craftplan/backend-go/internal/config"
	"github.com/craftplan/backend-go/internal/export"
	"github.com/craftplan/backend-go/internal/planner"
	"github.com/craftplan/backend-go/internal/repository/postgres"
	"github.com/craftplan/backend-go/internal/service"
	"github.com/craftplan/backend-go/internal/storage"
	"github.com/craftplan/backend-go/pkg/logger"
)

func main() {
	cfg := config.Load()

	logger.SetLevel(cfg.Server.Mode)
	if cfg.Server.Mode == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := postgres.NewDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	planCache, err := cache.NewPlanCache(cfg.Cache)
	if err != nil {
		logger.Log.Warn().Err(err).Msg("plan cache unavailable, continuing without caching")
		planCache = cache.NewNoopPlanCache()
	}

	engine := planner.NewPlanner(planner.Config{
		SafetyStockDays:     cfg.Planning.SafetyStockDays,
		CoverageDays:        cfg.Planning.CoverageDays,
		DefaultLeadTimeDays: cfg.Planning.DefaultLeadTimeDays,
		StockedFamily:       cfg.Planning.StockedFamily,
	})

	planningService := service.NewPlanningService(service.Repositories{
		Materials:  postgres.NewMaterialRepository(db.DB),
		Products:   postgres.NewProductRepository(db.DB),
		BOM:        postgres.NewBOMRepository(db.DB),
		Production: postgres.NewProductionRepository(db.DB),
		Orders:     postgres.NewOrderRepository(db.DB),
	}, engine, planCache)

	var archiver *export.Archiver
	if cfg.Storage.Enabled {
		store, err := storage.NewMinioClient(cfg.Storage)
		if err != nil {
			log.Fatalf("Failed to initialize object storage: %v", err)
		}
		archiver = export.NewArchiver(store, cfg.Storage.Prefix)
	}

	router := api.NewRouter(&api.Services{
		PlanningService: planningService,
		Archiver:        archiver,
	}, cfg.Server.AllowedOrigins)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Log.Info().Str("port", cfg.Server.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Log.Info().Msg("Server exiting")
}
