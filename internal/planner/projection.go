package planner

import (
	"github.com/shopspring/decimal"

	"github.com/craftplan/backend-go/internal/domain"
)

// Horizons are the forward windows the forecasting views support, in days.
var Horizons = []int{7, 14, 30, 60, 90}

// ClampHorizon snaps an arbitrary horizon to the nearest supported value at
// or below it; anything under the smallest horizon means "now" (0).
func ClampHorizon(horizonDays int) int {
	if horizonDays <= 0 {
		return 0
	}
	clamped := 0
	for _, h := range Horizons {
		if horizonDays >= h {
			clamped = h
		}
	}
	return clamped
}

// projectMaterial re-evaluates one material under a forward horizon. Status
// and the reorder flag are recomputed against the linearly projected stock
// using the same priority rules as the live classification. Backend overrides
// describe the present, so they do not apply at a future horizon.
//
// Nonlinear guard: when the projection goes non-positive but the material's
// actual depletion date (from current stock) falls beyond the horizon, the
// item must not read as already out of stock; it falls through to the
// threshold rules against a zero-floored projected quantity instead.
func (p *Planner) projectMaterial(m domain.Material, rate ConsumptionRate, horizonDays int) domain.ReplenishmentItem {
	total := rate.Total()
	t := p.thresholds.Compute(m, total)

	projectedUsage := total * float64(horizonDays)
	projectedStock := m.AvailableQty - projectedUsage
	daysUntilStockout := DaysUntilStockout(m.AvailableQty, total)

	status := Classify(projectedStock, m.CriticalStock, t.ReorderPoint, t.MaxLevel)
	if status == domain.StatusOutOfStock && daysUntilStockout > horizonDays {
		// Depletion actually lands past the horizon end; the linear formula
		// alone would cry "already out". Downgrade per normal thresholds.
		if m.CriticalStock > 0 {
			status = domain.StatusCritical
		} else {
			status = domain.StatusNeedReorder
		}
	}

	needsReorder := total > 0 && t.ReorderPoint > 0 && projectedStock <= t.ReorderPoint

	item := domain.ReplenishmentItem{
		MaterialID:           m.ID,
		MaterialCode:         m.Code,
		MaterialName:         m.Name,
		Unit:                 m.Unit,
		Category:             m.Category,
		CurrentStock:         m.AvailableQty,
		AvgDailyConsumption:  total,
		StockedComponent:     rate.Stocked,
		MadeToOrderComponent: rate.MadeToOrder,

		SafetyStock:            t.SafetyStock,
		ReorderPoint:           t.ReorderPoint,
		MaxLevel:               t.MaxLevel,
		CalculatedReorderPoint: t.CalculatedReorderPoint,
		CalculatedMaxLevel:     t.CalculatedMaxLevel,
		LeadTimeDays:           t.LeadTimeDays,

		StockStatus:       status,
		NeedsReorder:      needsReorder,
		DaysUntilStockout: daysUntilStockout,

		HorizonDays:    horizonDays,
		ProjectedUsage: projectedUsage,
		ProjectedStock: projectedStock,

		UnitCost:   m.StandardCost,
		StockValue: m.StandardCost.Mul(decimal.NewFromFloat(m.AvailableQty)),
	}

	// Urgency under projection runs off the remaining runway past the
	// horizon, not the full current runway.
	remaining := daysUntilStockout
	if remaining < StockoutSentinel {
		remaining -= horizonDays
		if remaining < 0 {
			remaining = 0
		}
	}
	item.Priority = PriorityFor(remaining, status)
	item.Bucket = BucketFor(remaining, needsReorder)
	item.RecommendedQty = p.quantity(item)
	item.RecommendedOrderDate = recommendedOrderDate(p.now(), item)

	return item
}
