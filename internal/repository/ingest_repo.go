package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/craftplan/backend-go/internal/domain"
)

// IngestRepository writes master data arriving from outside the API: Drive
// production logs and the CSV seeder. It runs on plain database/sql so both
// the pgx-backed seeder and the lib/pq server pool can hand it a *sql.DB.
type IngestRepository struct {
	db *sql.DB
}

func NewIngestRepository(db *sql.DB) *IngestRepository {
	return &IngestRepository{db: db}
}

// UpsertProductionOutput records one production-log row, replacing an earlier
// quantity for the same product and day. Re-ingesting a file is safe.
func (r *IngestRepository) UpsertProductionOutput(ctx context.Context, rec *domain.ProductionOutputRecord) error {
	query := `
		INSERT INTO production_output (product_id, output_date, quantity_produced, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (product_id, output_date)
		DO UPDATE SET quantity_produced = EXCLUDED.quantity_produced, updated_at = NOW()
	`
	if _, err := r.db.ExecContext(ctx, query, rec.ProductID, rec.Date, rec.QtyProduced); err != nil {
		return fmt.Errorf("failed to upsert production output: %w", err)
	}
	return nil
}

// ResolveProductID maps a product SKU from an ingested file to its ID.
func (r *IngestRepository) ResolveProductID(ctx context.Context, sku string) (int64, error) {
	var id int64
	err := r.db.QueryRowContext(ctx, `SELECT id FROM products WHERE sku = $1`, sku).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to resolve product %q: %w", sku, err)
	}
	return id, nil
}
