// backend-go/internal/repository/repository.go
package repository

import (
	"context"

	"github.com/craftplan/backend-go/internal/domain"
)

// Read interfaces for the collections a planning pass consumes. Empty tables
// yield empty slices, never errors; absence of data is a valid plan input.

type MaterialRepository interface {
	ListMaterials(ctx context.Context) ([]domain.Material, error)
}

type ProductRepository interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
}

type BOMRepository interface {
	ListBOMEntries(ctx context.Context) ([]domain.BOMEntry, error)
}

type ProductionRepository interface {
	ListProductionOutput(ctx context.Context) ([]domain.ProductionOutputRecord, error)
}

type OrderRepository interface {
	ListAcceptedOrders(ctx context.Context) ([]domain.AcceptedOrder, error)
}
