package planner

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/craftplan/backend-go/internal/domain"
)

func fullSnapshot() Snapshot {
	return Snapshot{
		Materials: []domain.Material{
			{ID: 1, Code: "PLY-18", Name: "Plywood 18mm", Unit: "sheet", Category: "raw", AvailableQty: 120, StandardCost: decimal.NewFromInt(450), LeadTimeDays: 5},
			{ID: 2, Code: "OAK-PANEL", Name: "Oak Panel", Unit: "pc", Category: "raw", AvailableQty: 0, StandardCost: decimal.NewFromInt(1200)},
			{ID: 3, Code: "BOX-S", Name: "Small Box", Unit: "pc", Category: "packaging", AvailableQty: 5000},
		},
		Products: []domain.Product{
			{ID: 10, Name: "Alkansya Classic", Category: "stocked"},
			{ID: 20, Name: "Dining Table", Category: "made to order"},
		},
		BOM: []domain.BOMEntry{
			{ProductID: 10, MaterialID: 1, QtyPerProduct: 2},
			{ProductID: 10, MaterialID: 3, QtyPerProduct: 1},
			{ProductID: 20, MaterialID: 2, QtyPerProduct: 4},
		},
		Output: []domain.ProductionOutputRecord{
			{ProductID: 10, Date: day("2026-08-01"), QtyProduced: 10},
			{ProductID: 10, Date: day("2026-08-02"), QtyProduced: 10},
		},
		Orders: []domain.AcceptedOrder{
			{ID: 1, AcceptedAt: day("2026-08-02"), Items: []domain.OrderItem{{ProductID: 20, Quantity: 1}}},
		},
	}
}

func fixedPlanner() *Planner {
	return NewPlanner(Config{Now: func() time.Time { return day("2026-08-29") }})
}

func TestPlanAll_Idempotent(t *testing.T) {
	p := fixedPlanner()
	snap := fullSnapshot()

	first := p.PlanAll(snap)
	second := p.PlanAll(snap)

	assert.Equal(t, first, second, "same snapshot, same clock, same plan")
}

func TestPlanAll_OutputFollowsInputOrder(t *testing.T) {
	p := fixedPlanner()
	items := p.PlanAll(fullSnapshot())

	require.Len(t, items, 3)
	assert.Equal(t, int64(1), items[0].MaterialID)
	assert.Equal(t, int64(2), items[1].MaterialID)
	assert.Equal(t, int64(3), items[2].MaterialID)
}

func TestPlanAll_EmptySnapshot(t *testing.T) {
	p := fixedPlanner()

	items := p.PlanAll(Snapshot{})
	assert.Empty(t, items)

	summary := p.Summarize(Snapshot{}, items)
	assert.Zero(t, summary.TotalMaterials)
	assert.True(t, summary.InventoryValue.IsZero())
}

func TestPlanAll_MaterialWithoutHistory(t *testing.T) {
	p := fixedPlanner()

	snap := Snapshot{Materials: []domain.Material{{ID: 7, Code: "VARNISH", AvailableQty: 40}}}
	items := p.PlanAll(snap)

	require.Len(t, items, 1)
	item := items[0]
	assert.Zero(t, item.AvgDailyConsumption)
	assert.Zero(t, item.SafetyStock)
	assert.Equal(t, StockoutSentinel, item.DaysUntilStockout)
	assert.False(t, item.NeedsReorder)
	assert.Equal(t, domain.StatusInStock, item.StockStatus)
	assert.Equal(t, domain.PriorityNormal, item.Priority)
	assert.Empty(t, item.Bucket)
	assert.Zero(t, item.RecommendedQty)
}

func TestPlanAll_ItemCarriesBothRateComponents(t *testing.T) {
	p := fixedPlanner()
	items := p.PlanAll(fullSnapshot())

	// Material 1: stocked stream only, 10/day output at 2 per unit.
	assert.InDelta(t, 20.0, items[0].StockedComponent, 1e-9)
	assert.Zero(t, items[0].MadeToOrderComponent)
	assert.InDelta(t, 20.0, items[0].AvgDailyConsumption, 1e-9)

	// Material 2: made-to-order stream only, 4 per table over 1 order day.
	assert.Zero(t, items[1].StockedComponent)
	assert.InDelta(t, 4.0, items[1].MadeToOrderComponent, 1e-9)
}

func TestPlanAll_StockValue(t *testing.T) {
	p := fixedPlanner()
	items := p.PlanAll(fullSnapshot())

	// 120 sheets at 450.
	assert.True(t, decimal.NewFromInt(54000).Equal(items[0].StockValue), "got %s", items[0].StockValue)
	assert.True(t, items[1].StockValue.IsZero())
}

func TestSummarize(t *testing.T) {
	p := fixedPlanner()
	snap := fullSnapshot()
	items := p.PlanAll(snap)

	summary := p.Summarize(snap, items)

	assert.Equal(t, 3, summary.TotalMaterials)
	assert.Equal(t, 1, summary.OutOfStock, "oak panel sits at zero")
	assert.Equal(t,
		summary.OutOfStock+summary.Critical+summary.NeedReorder+summary.Overstocked+summary.InStock,
		summary.TotalMaterials,
		"every material lands in exactly one status")
	assert.True(t, decimal.NewFromInt(54000).Equal(summary.InventoryValue), "got %s", summary.InventoryValue)
	assert.GreaterOrEqual(t, summary.LowStock, summary.OutOfStock+summary.Critical)
}
