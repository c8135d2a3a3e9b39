package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/craftplan/backend-go/internal/domain"
	"github.com/craftplan/backend-go/internal/planner"
)

type stubRepos struct {
	materials []domain.Material
	products  []domain.Product
	bom       []domain.BOMEntry
	output    []domain.ProductionOutputRecord
	orders    []domain.AcceptedOrder

	materialsErr error
}

func (s *stubRepos) ListMaterials(ctx context.Context) ([]domain.Material, error) {
	return s.materials, s.materialsErr
}

func (s *stubRepos) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return s.products, nil
}

func (s *stubRepos) ListBOMEntries(ctx context.Context) ([]domain.BOMEntry, error) {
	return s.bom, nil
}

func (s *stubRepos) ListProductionOutput(ctx context.Context) ([]domain.ProductionOutputRecord, error) {
	return s.output, nil
}

func (s *stubRepos) ListAcceptedOrders(ctx context.Context) ([]domain.AcceptedOrder, error) {
	return s.orders, nil
}

func newTestService(stub *stubRepos) *PlanningService {
	engine := planner.NewPlanner(planner.Config{
		Now: func() time.Time { return time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC) },
	})
	repos := Repositories{
		Materials:  stub,
		Products:   stub,
		BOM:        stub,
		Production: stub,
		Orders:     stub,
	}
	return NewPlanningService(repos, engine, nil)
}

func testStub() *stubRepos {
	date := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	return &stubRepos{
		materials: []domain.Material{
			{ID: 1, Code: "PLY-18", Category: "raw", AvailableQty: 20},
			{ID: 2, Code: "BOX-S", Category: "packaging", AvailableQty: 5000},
		},
		products: []domain.Product{{ID: 10, Name: "alkansya", Category: "stocked"}},
		bom: []domain.BOMEntry{
			{ProductID: 10, MaterialID: 1, QtyPerProduct: 2},
			{ProductID: 10, MaterialID: 2, QtyPerProduct: 1},
		},
		output: []domain.ProductionOutputRecord{
			{ProductID: 10, Date: date, QtyProduced: 10},
		},
	}
}

func TestPlanningService_Plan(t *testing.T) {
	svc := newTestService(testStub())

	items, err := svc.Plan(context.Background(), domain.PlanFilter{})
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, int64(1), items[0].MaterialID)
	assert.True(t, items[0].NeedsReorder, "20 on hand at 20/day sits far below the reorder point")
}

func TestPlanningService_PlanAppliesFilter(t *testing.T) {
	svc := newTestService(testStub())

	items, err := svc.Plan(context.Background(), domain.PlanFilter{Category: "packaging"})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "BOX-S", items[0].MaterialCode)
}

func TestPlanningService_SnapshotFailurePropagates(t *testing.T) {
	stub := testStub()
	stub.materialsErr = errors.New("connection refused")
	svc := newTestService(stub)

	_, err := svc.Plan(context.Background(), domain.PlanFilter{})
	assert.ErrorContains(t, err, "connection refused")
}

func TestPlanningService_Schedule(t *testing.T) {
	svc := newTestService(testStub())

	schedule, err := svc.Schedule(context.Background())
	require.NoError(t, err)

	// Material 1 depletes in a day; it must land in the immediate bucket.
	require.Len(t, schedule.Immediate, 1)
	assert.Equal(t, int64(1), schedule.Immediate[0].MaterialID)
}

func TestPlanningService_DashboardWithoutCache(t *testing.T) {
	svc := newTestService(testStub())

	summary, err := svc.Dashboard(context.Background(), domain.PlanFilter{})
	require.NoError(t, err)
	require.NotNil(t, summary)
	assert.Equal(t, 2, summary.TotalMaterials)
	assert.GreaterOrEqual(t, summary.LowStock, 1)
}

func TestPlanningService_Project(t *testing.T) {
	svc := newTestService(testStub())

	items, err := svc.Project(context.Background(), 7, domain.PlanFilter{})
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, 7, items[0].HorizonDays)
	assert.InDelta(t, 140.0, items[0].ProjectedUsage, 1e-9, "20/day over 7 days")
}

func TestPlanningService_EmptyDataPlansClean(t *testing.T) {
	svc := newTestService(&stubRepos{})

	items, err := svc.Plan(context.Background(), domain.PlanFilter{})
	require.NoError(t, err)
	assert.Empty(t, items)

	summary, err := svc.Dashboard(context.Background(), domain.PlanFilter{})
	require.NoError(t, err)
	assert.Zero(t, summary.TotalMaterials)
}
