package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"

	"github.com/craftplan/backend-go/internal/config"
	"github.com/craftplan/backend-go/internal/drive"
	"github.com/craftplan/backend-go/internal/repository"
	"github.com/craftplan/backend-go/internal/repository/postgres"
)

func main() {
	// Load environment variables from .env file if it exists
	_ = godotenv.Load()

	cfg := config.Load()

	driveService, err := drive.NewService(cfg.Drive.CredentialsJSON)
	if err != nil {
		log.Fatalf("Failed to initialize Google Drive service: %v", err)
	}

	folderID := cfg.Drive.FolderID
	if folderID == "" && cfg.Drive.FolderPath != "" {
		folderID, err = driveService.FindFolderByPath(cfg.Drive.FolderPath)
		if err != nil {
			log.Fatalf("Failed to resolve Drive folder path %q: %v", cfg.Drive.FolderPath, err)
		}
	}

	db, err := postgres.NewDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	ingestRepo := repository.NewIngestRepository(db.DB.DB)
	ingestService := drive.NewIngestService(driveService, ingestRepo)

	r := mux.NewRouter()
	driveHandler := drive.NewHandler(driveService, ingestService, folderID, cfg.App.DownloadDir)
	driveHandler.RegisterRoutes(r)

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}).Methods("GET")

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Ingest API starting on %s\n", addr)
	log.Fatal(http.ListenAndServe(addr, r))
}
