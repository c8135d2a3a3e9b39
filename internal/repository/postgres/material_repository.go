package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/craftplan/backend-go/internal/domain"
	"github.com/craftplan/backend-go/internal/repository"
)

// materialRow mirrors the materials table. The upstream admin tool stores the
// reorder flag as free text ("1", "true", "yes", ...), so it is scanned raw
// and normalized here, at the ingestion boundary.
type materialRow struct {
	ID            int64           `db:"id"`
	Code          string          `db:"code"`
	Name          string          `db:"name"`
	Unit          string          `db:"unit"`
	Category      string          `db:"category"`
	QtyOnHand     float64         `db:"quantity_on_hand"`
	QtyReserved   float64         `db:"quantity_reserved"`
	StandardCost  decimal.Decimal `db:"standard_cost"`
	Supplier      sql.NullString  `db:"supplier"`
	Location      sql.NullString  `db:"location"`
	LeadTimeDays  sql.NullInt64   `db:"lead_time_days"`
	ReorderLevel  sql.NullFloat64 `db:"reorder_level"`
	MaxLevel      sql.NullFloat64 `db:"max_level"`
	CriticalStock sql.NullFloat64 `db:"critical_stock"`
	Status        sql.NullString  `db:"status"`
	StatusLabel   sql.NullString  `db:"status_label"`
	NeedsReorder  sql.NullString  `db:"needs_reorder"`
	CreatedAt     time.Time       `db:"created_at"`
	UpdatedAt     time.Time       `db:"updated_at"`
}

func (row materialRow) toDomain() domain.Material {
	m := domain.Material{
		ID:            row.ID,
		Code:          row.Code,
		Name:          row.Name,
		Unit:          row.Unit,
		Category:      row.Category,
		QtyOnHand:     row.QtyOnHand,
		QtyReserved:   row.QtyReserved,
		AvailableQty:  row.QtyOnHand - row.QtyReserved,
		StandardCost:  row.StandardCost,
		Supplier:      row.Supplier.String,
		Location:      row.Location.String,
		LeadTimeDays:  int(row.LeadTimeDays.Int64),
		ReorderLevel:  row.ReorderLevel.Float64,
		MaxLevel:      row.MaxLevel.Float64,
		CriticalStock: row.CriticalStock.Float64,
		Status:        row.Status.String,
		StatusLabel:   row.StatusLabel.String,
		CreatedAt:     row.CreatedAt,
		UpdatedAt:     row.UpdatedAt,
	}
	if row.NeedsReorder.Valid {
		m.NeedsReorder = domain.ParseTruthy(row.NeedsReorder.String)
	}
	return m
}

type materialRepository struct {
	db *sqlx.DB
}

func NewMaterialRepository(db *sqlx.DB) repository.MaterialRepository {
	return &materialRepository{db: db}
}

func (r *materialRepository) ListMaterials(ctx context.Context) ([]domain.Material, error) {
	query := `
        SELECT
            id, code, name, unit, category,
            quantity_on_hand, quantity_reserved, standard_cost,
            supplier, location, lead_time_days,
            reorder_level, max_level, critical_stock,
            status, status_label, needs_reorder,
            created_at, updated_at
        FROM materials
        ORDER BY id
    `

	var rows []materialRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("error listing materials: %w", err)
	}

	materials := make([]domain.Material, 0, len(rows))
	for _, row := range rows {
		materials = append(materials, row.toDomain())
	}
	return materials, nil
}
