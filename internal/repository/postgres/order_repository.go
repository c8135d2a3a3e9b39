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

type orderLineRow struct {
	OrderID    int64        `db:"order_id"`
	AcceptedAt sql.NullTime `db:"accepted_at"`
	CreatedAt  time.Time    `db:"created_at"`
	ProductID  int64        `db:"product_id"`
	Quantity   float64      `db:"quantity"`
}

type orderRepository struct {
	db *sqlx.DB
}

func NewOrderRepository(db *sqlx.DB) repository.OrderRepository {
	return &orderRepository{db: db}
}

// ListAcceptedOrders assembles orders with their line items from a single
// joined query; one round trip instead of N+1.
func (r *orderRepository) ListAcceptedOrders(ctx context.Context) ([]domain.AcceptedOrder, error) {
	query := `
        SELECT
            o.id AS order_id, o.accepted_at, o.created_at,
            i.product_id, i.quantity
        FROM orders o
        JOIN order_items i ON i.order_id = o.id
        WHERE o.status = 'accepted'
        ORDER BY o.id, i.id
    `

	var rows []orderLineRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("error listing accepted orders: %w", err)
	}

	var orders []domain.AcceptedOrder
	byID := make(map[int64]int)
	for _, row := range rows {
		idx, ok := byID[row.OrderID]
		if !ok {
			var acceptedAt time.Time
			if row.AcceptedAt.Valid {
				acceptedAt = row.AcceptedAt.Time
			}
			orders = append(orders, domain.AcceptedOrder{
				ID:         row.OrderID,
				AcceptedAt: acceptedAt,
				CreatedAt:  row.CreatedAt,
			})
			idx = len(orders) - 1
			byID[row.OrderID] = idx
		}
		orders[idx].Items = append(orders[idx].Items, domain.OrderItem{
			ProductID: row.ProductID,
			Quantity:  row.Quantity,
		})
	}
	return orders, nil
}
