package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/craftplan/backend-go/internal/domain"
)

func TestClassify_PriorityOrder(t *testing.T) {
	tests := []struct {
		name      string
		available float64
		critical  float64
		reorder   float64
		maxLevel  float64
		want      domain.StockStatus
	}{
		{"zero stock is out of stock regardless of thresholds", 0, 10, 100, 500, domain.StatusOutOfStock},
		{"negative stock is out of stock", -3, 0, 0, 0, domain.StatusOutOfStock},
		{"at critical threshold", 10, 10, 100, 500, domain.StatusCritical},
		{"below critical threshold", 5, 10, 100, 500, domain.StatusCritical},
		{"critical disabled when zero", 50, 0, 100, 500, domain.StatusNeedReorder},
		{"at reorder point", 100, 10, 100, 500, domain.StatusNeedReorder},
		{"above max level", 600, 10, 100, 500, domain.StatusOverstocked},
		{"max level disabled when zero", 600, 10, 100, 0, domain.StatusInStock},
		{"comfortably in stock", 300, 10, 100, 500, domain.StatusInStock},
		{"all thresholds unset", 1, 0, 0, 0, domain.StatusInStock},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.available, tt.critical, tt.reorder, tt.maxLevel)
			assert.Equal(t, tt.want, got)
		})
	}
}

// Spec scenarios against the classifier alone.
func TestClassify_Scenarios(t *testing.T) {
	// A: zero quantity always out of stock.
	assert.Equal(t, domain.StatusOutOfStock, Classify(0, 50, 100, 500))
	// B: 50 on hand, no critical level, reorder point 100.
	assert.Equal(t, domain.StatusNeedReorder, Classify(50, 0, 100, 500))
	// C: 600 on hand over max 500; reorder/critical checks fail first.
	assert.Equal(t, domain.StatusOverstocked, Classify(600, 0, 100, 500))
}

func TestClassify_MonotoneInAvailableQuantity(t *testing.T) {
	// Increasing stock with thresholds held fixed can never worsen severity.
	const critical, reorder, maxLevel = 20.0, 100.0, 500.0

	prev := Classify(0, critical, reorder, maxLevel)
	for qty := 1.0; qty <= 700; qty++ {
		cur := Classify(qty, critical, reorder, maxLevel)
		assert.LessOrEqual(t, cur.Severity(), prev.Severity(),
			"severity rose from %s to %s at qty %v", prev, cur, qty)
		prev = cur
	}
}

func TestStatusFor_BackendStatusWins(t *testing.T) {
	m := domain.Material{AvailableQty: 600, Status: "Critical"}
	th := Thresholds{ReorderPoint: 100, MaxLevel: 500}

	assert.Equal(t, domain.StatusCritical, statusFor(m, th))

	m.Status = "not-a-status"
	assert.Equal(t, domain.StatusOverstocked, statusFor(m, th), "unknown backend status falls back to the classifier")
}

func TestNeedsReorderFor(t *testing.T) {
	yes, no := true, false
	th := Thresholds{ReorderPoint: 100}

	tests := []struct {
		name string
		m    domain.Material
		rate float64
		want bool
	}{
		{"backend true wins", domain.Material{AvailableQty: 900, NeedsReorder: &yes}, 5, true},
		{"backend false wins", domain.Material{AvailableQty: 10, NeedsReorder: &no}, 5, false},
		{"zero rate never reorders", domain.Material{AvailableQty: 10}, 0, false},
		{"at reorder point", domain.Material{AvailableQty: 100}, 5, true},
		{"above reorder point", domain.Material{AvailableQty: 101}, 5, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, needsReorderFor(tt.m, th, tt.rate))
		})
	}
}

func TestIsLowStock_InclusiveUnion(t *testing.T) {
	tests := []struct {
		name string
		item domain.ReplenishmentItem
		want bool
	}{
		{"shortage status", domain.ReplenishmentItem{StockStatus: domain.StatusCritical}, true},
		{"out of stock status", domain.ReplenishmentItem{StockStatus: domain.StatusOutOfStock}, true},
		{"reorder flag alone", domain.ReplenishmentItem{StockStatus: domain.StatusInStock, NeedsReorder: true}, true},
		{"at reorder point alone", domain.ReplenishmentItem{StockStatus: domain.StatusOverstocked, CurrentStock: 80, ReorderPoint: 100}, true},
		{"healthy", domain.ReplenishmentItem{StockStatus: domain.StatusInStock, CurrentStock: 300, ReorderPoint: 100}, false},
		{"overstocked is not low", domain.ReplenishmentItem{StockStatus: domain.StatusOverstocked, CurrentStock: 600, ReorderPoint: 100}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsLowStock(tt.item))
		})
	}
}

func TestParseStockStatus(t *testing.T) {
	for raw, want := range map[string]domain.StockStatus{
		"out_of_stock": domain.StatusOutOfStock,
		"Need Reorder": domain.StatusNeedReorder,
		"CRITICAL":     domain.StatusCritical,
		"in-stock":     domain.StatusInStock,
	} {
		got, ok := domain.ParseStockStatus(raw)
		assert.True(t, ok, raw)
		assert.Equal(t, want, got)
	}

	_, ok := domain.ParseStockStatus("plenty")
	assert.False(t, ok)
}
