package planner

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/craftplan/backend-go/internal/domain"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestRates_StockedComponent(t *testing.T) {
	// One BOM link P1 -> M1 at 2 per unit, 30 units produced over 3 distinct
	// days: avg daily output 10, stocked component 20.
	snap := Snapshot{
		Materials: []domain.Material{{ID: 1, Code: "PLY-18"}},
		Products:  []domain.Product{{ID: 10, Name: "Alkansya Classic", Category: "stocked"}},
		BOM:       []domain.BOMEntry{{ProductID: 10, MaterialID: 1, QtyPerProduct: 2}},
		Output: []domain.ProductionOutputRecord{
			{ProductID: 10, Date: day("2026-08-01"), QtyProduced: 12},
			{ProductID: 10, Date: day("2026-08-02"), QtyProduced: 8},
			{ProductID: 10, Date: day("2026-08-02"), QtyProduced: 2}, // same day, aggregates
			{ProductID: 10, Date: day("2026-08-03"), QtyProduced: 8},
		},
	}

	rates := NewConsumptionEstimator("alkansya").Rates(snap)

	assert.InDelta(t, 20.0, rates[1].Stocked, 1e-9)
	assert.Zero(t, rates[1].MadeToOrder)
	assert.InDelta(t, 20.0, rates[1].Total(), 1e-9)
}

func TestRates_StockedComponent_TimestampsTruncateToDay(t *testing.T) {
	morning := day("2026-08-01").Add(8 * time.Hour)
	evening := day("2026-08-01").Add(20 * time.Hour)

	snap := Snapshot{
		Materials: []domain.Material{{ID: 1}},
		Products:  []domain.Product{{ID: 10, Name: "alkansya", Category: "stocked"}},
		BOM:       []domain.BOMEntry{{ProductID: 10, MaterialID: 1, QtyPerProduct: 1}},
		Output: []domain.ProductionOutputRecord{
			{ProductID: 10, Date: morning, QtyProduced: 5},
			{ProductID: 10, Date: evening, QtyProduced: 5},
		},
	}

	rates := NewConsumptionEstimator("alkansya").Rates(snap)

	// One calendar day, not two timestamps.
	assert.InDelta(t, 10.0, rates[1].Stocked, 1e-9)
}

func TestRates_MalformedDatesCountQuantityOnly(t *testing.T) {
	snap := Snapshot{
		Materials: []domain.Material{{ID: 1}},
		Products:  []domain.Product{{ID: 10, Name: "alkansya", Category: "stocked"}},
		BOM:       []domain.BOMEntry{{ProductID: 10, MaterialID: 1, QtyPerProduct: 1}},
		Output: []domain.ProductionOutputRecord{
			{ProductID: 10, Date: day("2026-08-01"), QtyProduced: 10},
			{ProductID: 10, QtyProduced: 20}, // zero date: numerator only
		},
	}

	rates := NewConsumptionEstimator("alkansya").Rates(snap)

	// 30 total over 1 usable day.
	assert.InDelta(t, 30.0, rates[1].Stocked, 1e-9)
}

func TestRates_NoOutputDaysMeansZero(t *testing.T) {
	snap := Snapshot{
		Materials: []domain.Material{{ID: 1}},
		Products:  []domain.Product{{ID: 10, Name: "alkansya", Category: "stocked"}},
		BOM:       []domain.BOMEntry{{ProductID: 10, MaterialID: 1, QtyPerProduct: 3}},
		Output: []domain.ProductionOutputRecord{
			{ProductID: 10, QtyProduced: 50}, // no usable date at all
		},
	}

	rates := NewConsumptionEstimator("alkansya").Rates(snap)

	assert.Zero(t, rates[1].Stocked, "no distinct days must never divide")
}

func TestRates_MadeToOrderComponent(t *testing.T) {
	snap := Snapshot{
		Materials: []domain.Material{{ID: 2, Code: "OAK-PANEL"}},
		Products: []domain.Product{
			{ID: 20, Name: "Dining Table", Category: "made to order"},
			{ID: 30, Name: "Gift Box", Category: "stocked"}, // not in the MTO stream
		},
		BOM: []domain.BOMEntry{
			{ProductID: 20, MaterialID: 2, QtyPerProduct: 4},
			{ProductID: 30, MaterialID: 2, QtyPerProduct: 1},
		},
		Orders: []domain.AcceptedOrder{
			{ID: 1, AcceptedAt: day("2026-08-01"), Items: []domain.OrderItem{{ProductID: 20, Quantity: 2}}},
			{ID: 2, AcceptedAt: day("2026-08-03"), Items: []domain.OrderItem{
				{ProductID: 20, Quantity: 1},
				{ProductID: 30, Quantity: 10}, // stocked product line ignored here
			}},
		},
	}

	rates := NewConsumptionEstimator("alkansya").Rates(snap)

	// (2*4 + 1*4) / 2 distinct order days = 6.
	assert.InDelta(t, 6.0, rates[2].MadeToOrder, 1e-9)
	assert.Zero(t, rates[2].Stocked)
}

func TestRates_MadeToOrderFallsBackToCreatedAt(t *testing.T) {
	snap := Snapshot{
		Materials: []domain.Material{{ID: 2}},
		Products:  []domain.Product{{ID: 20, Category: "made_to_order"}},
		BOM:       []domain.BOMEntry{{ProductID: 20, MaterialID: 2, QtyPerProduct: 1}},
		Orders: []domain.AcceptedOrder{
			{ID: 1, CreatedAt: day("2026-08-01"), Items: []domain.OrderItem{{ProductID: 20, Quantity: 3}}},
		},
	}

	rates := NewConsumptionEstimator("alkansya").Rates(snap)

	assert.InDelta(t, 3.0, rates[2].MadeToOrder, 1e-9)
}

func TestRates_BothStreamsSum(t *testing.T) {
	snap := Snapshot{
		Materials: []domain.Material{{ID: 3, Code: "WOOD-GLUE"}},
		Products: []domain.Product{
			{ID: 10, Name: "Alkansya", Category: "stocked"},
			{ID: 20, Name: "Wardrobe", Category: "made to order"},
		},
		BOM: []domain.BOMEntry{
			{ProductID: 10, MaterialID: 3, QtyPerProduct: 1},
			{ProductID: 20, MaterialID: 3, QtyPerProduct: 2},
		},
		Output: []domain.ProductionOutputRecord{
			{ProductID: 10, Date: day("2026-08-01"), QtyProduced: 5},
		},
		Orders: []domain.AcceptedOrder{
			{ID: 1, AcceptedAt: day("2026-08-01"), Items: []domain.OrderItem{{ProductID: 20, Quantity: 3}}},
		},
	}

	rates := NewConsumptionEstimator("alkansya").Rates(snap)

	assert.InDelta(t, 5.0, rates[3].Stocked, 1e-9)
	assert.InDelta(t, 6.0, rates[3].MadeToOrder, 1e-9)
	assert.InDelta(t, 11.0, rates[3].Total(), 1e-9)
}

func TestRates_NoLinkageYieldsZeroNotError(t *testing.T) {
	snap := Snapshot{
		Materials: []domain.Material{{ID: 9, Code: "VARNISH"}},
		Products:  []domain.Product{{ID: 10, Name: "alkansya", Category: "stocked"}},
		Output: []domain.ProductionOutputRecord{
			{ProductID: 10, Date: day("2026-08-01"), QtyProduced: 100},
		},
	}

	rates := NewConsumptionEstimator("alkansya").Rates(snap)

	rate, ok := rates[9]
	assert.True(t, ok)
	assert.Zero(t, rate.Total())
}

func TestRates_StockedFamilyNameFilter(t *testing.T) {
	// Stocked products outside the family must not pull materials into the
	// stocked stream.
	snap := Snapshot{
		Materials: []domain.Material{{ID: 1}},
		Products:  []domain.Product{{ID: 10, Name: "Generic Tray", Category: "stocked"}},
		BOM:       []domain.BOMEntry{{ProductID: 10, MaterialID: 1, QtyPerProduct: 2}},
		Output: []domain.ProductionOutputRecord{
			{ProductID: 10, Date: day("2026-08-01"), QtyProduced: 10},
		},
	}

	rates := NewConsumptionEstimator("alkansya").Rates(snap)

	assert.Zero(t, rates[1].Stocked)
}

func TestBOMIndex_DuplicatePairsKeepFirst(t *testing.T) {
	idx := NewBOMIndex([]domain.BOMEntry{
		{ProductID: 1, MaterialID: 5, QtyPerProduct: 2},
		{ProductID: 1, MaterialID: 5, QtyPerProduct: 99},
	})

	ratio, ok := idx.Ratio(1, 5)
	assert.True(t, ok)
	assert.Equal(t, 2.0, ratio)
}

func TestBOMIndex_FirstRatioForScansInputOrder(t *testing.T) {
	idx := NewBOMIndex([]domain.BOMEntry{
		{ProductID: 2, MaterialID: 5, QtyPerProduct: 7},
		{ProductID: 1, MaterialID: 5, QtyPerProduct: 3},
	})

	ratio, ok := idx.FirstRatioFor(5, map[int64]bool{1: true, 2: true})
	assert.True(t, ok)
	assert.Equal(t, 7.0, ratio, "first entry in input order wins")

	_, ok = idx.FirstRatioFor(5, map[int64]bool{9: true})
	assert.False(t, ok)
}
