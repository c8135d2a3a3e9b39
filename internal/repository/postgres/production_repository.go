package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/craftplan/backend-go/internal/domain"
	"github.com/craftplan/backend-go/internal/repository"
)

type productionRow struct {
	ID          int64        `db:"id"`
	ProductID   int64        `db:"product_id"`
	Date        sql.NullTime `db:"output_date"`
	QtyProduced float64      `db:"quantity_produced"`
}

type productionRepository struct {
	db *sqlx.DB
}

func NewProductionRepository(db *sqlx.DB) repository.ProductionRepository {
	return &productionRepository{db: db}
}

// ListProductionOutput returns the full output history. NULL dates come back
// as the zero time; the consumption math counts their quantity but not their
// day.
func (r *productionRepository) ListProductionOutput(ctx context.Context) ([]domain.ProductionOutputRecord, error) {
	query := `
        SELECT id, product_id, output_date, quantity_produced
        FROM production_output
        ORDER BY output_date NULLS LAST, id
    `

	var rows []productionRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("error listing production output: %w", err)
	}

	records := make([]domain.ProductionOutputRecord, 0, len(rows))
	for _, row := range rows {
		var date time.Time
		if row.Date.Valid {
			date = row.Date.Time
		}
		records = append(records, domain.ProductionOutputRecord{
			ID:          row.ID,
			ProductID:   row.ProductID,
			Date:        date,
			QtyProduced: row.QtyProduced,
		})
	}
	return records, nil
}
