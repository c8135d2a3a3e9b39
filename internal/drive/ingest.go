package drive

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/craftplan/backend-go/internal/domain"
	"github.com/craftplan/backend-go/internal/repository"
)

// Production-log CSVs carry one row per product per day:
//
//	sku,date,quantity_produced
//	ALK-CLS,2026-08-29,42
//
// Dates are day-granular; a row for an existing (sku, date) replaces the
// earlier quantity.
type IngestService struct {
	driveService *Service
	repo         *repository.IngestRepository
}

func NewIngestService(driveService *Service, repo *repository.IngestRepository) *IngestService {
	return &IngestService{
		driveService: driveService,
		repo:         repo,
	}
}

// IngestFile streams one production-log CSV from Drive into the database.
// The whole file fails on a bad row; partial ingestion would skew the
// distinct-day consumption averages.
func (s *IngestService) IngestFile(ctx context.Context, fileID string) error {
	pr, pw := io.Pipe()
	go func() {
		err := s.driveService.DownloadFile(fileID, pw)
		pw.CloseWithError(err)
	}()

	return s.ingest(ctx, pr)
}

// IngestFolder mirrors every CSV in the Drive folder into downloadDir (kept
// as an audit copy of what was ingested) and ingests each file in turn.
// Returns the number of files processed.
func (s *IngestService) IngestFolder(ctx context.Context, folderID, downloadDir string) (int, error) {
	downloader := NewDownloader(s.driveService)
	paths, err := downloader.DownloadFolderCSV(ctx, DownloadOptions{
		FolderID:    folderID,
		DownloadDir: downloadDir,
	})
	if err != nil {
		return 0, err
	}

	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			return 0, fmt.Errorf("failed to open %s: %w", path, err)
		}
		err = s.ingest(ctx, f)
		f.Close()
		if err != nil {
			return 0, fmt.Errorf("ingest %s: %w", filepath.Base(path), err)
		}
	}
	return len(paths), nil
}

func (s *IngestService) ingest(ctx context.Context, r io.Reader) error {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err != nil {
		return fmt.Errorf("failed to read CSV header: %w", err)
	}

	colMap := make(map[string]int)
	for i, col := range header {
		colMap[strings.ToLower(strings.TrimSpace(col))] = i
	}

	for _, col := range []string{"sku", "date", "quantity_produced"} {
		if _, ok := colMap[col]; !ok {
			return fmt.Errorf("missing required column: %s", col)
		}
	}

	rows := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read CSV record: %w", err)
		}

		if err := s.processRow(ctx, record, colMap); err != nil {
			return fmt.Errorf("failed to process row %d: %w", rows+2, err)
		}
		rows++
	}

	log.Info().Int("rows", rows).Msg("production log ingested")
	return nil
}

func (s *IngestService) processRow(ctx context.Context, record []string, colMap map[string]int) error {
	getValue := func(colName string) string {
		if idx, ok := colMap[colName]; ok && idx < len(record) {
			return strings.TrimSpace(record[idx])
		}
		return ""
	}

	sku := getValue("sku")
	if sku == "" {
		return fmt.Errorf("empty sku")
	}

	productID, err := s.repo.ResolveProductID(ctx, sku)
	if err != nil {
		return err
	}

	date, err := parseLogDate(getValue("date"))
	if err != nil {
		return err
	}

	qty, err := strconv.ParseFloat(getValue("quantity_produced"), 64)
	if err != nil {
		return fmt.Errorf("invalid quantity_produced %q: %w", getValue("quantity_produced"), err)
	}

	return s.repo.UpsertProductionOutput(ctx, &domain.ProductionOutputRecord{
		ProductID:   productID,
		Date:        date,
		QtyProduced: qty,
	})
}

// parseLogDate accepts the date spellings seen in exported logs.
func parseLogDate(value string) (time.Time, error) {
	for _, layout := range []string{"2006-01-02", "01/02/2006", "2006-01-02T15:04:05Z07:00"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t.Truncate(24 * time.Hour), nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable date %q", value)
}
