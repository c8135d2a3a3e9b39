package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/craftplan/backend-go/internal/domain"
	"github.com/craftplan/backend-go/internal/repository"
)

type bomRepository struct {
	db *sqlx.DB
}

func NewBOMRepository(db *sqlx.DB) repository.BOMRepository {
	return &bomRepository{db: db}
}

// ListBOMEntries returns entries in insertion order. Upstream data may carry
// duplicate (product, material) pairs; consumers keep the first one, so the
// order here matters.
func (r *bomRepository) ListBOMEntries(ctx context.Context) ([]domain.BOMEntry, error) {
	query := `
        SELECT product_id, material_id, quantity_per_product
        FROM bom_entries
        ORDER BY id
    `

	var entries []domain.BOMEntry
	if err := r.db.SelectContext(ctx, &entries, query); err != nil {
		return nil, fmt.Errorf("error listing bom entries: %w", err)
	}
	return entries, nil
}
