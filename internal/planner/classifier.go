package planner

import "github.com/craftplan/backend-go/internal/domain"

// Classify maps quantities and thresholds to a stock status. Rules are
// evaluated in fixed priority order; the first match wins:
//
//	out_of_stock > critical > need_reorder > overstocked > in_stock
//
// Thresholds of zero disable their rule (an unset critical level can never
// mark a material critical).
func Classify(available, criticalStock, reorderPoint, maxLevel float64) domain.StockStatus {
	switch {
	case available <= 0:
		return domain.StatusOutOfStock
	case criticalStock > 0 && available <= criticalStock:
		return domain.StatusCritical
	case reorderPoint > 0 && available <= reorderPoint:
		return domain.StatusNeedReorder
	case maxLevel > 0 && available > maxLevel:
		return domain.StatusOverstocked
	default:
		return domain.StatusInStock
	}
}

// statusFor resolves a material's effective status: an authoritative backend
// status wins; Classify is only the fallback.
func statusFor(m domain.Material, t Thresholds) domain.StockStatus {
	if status, ok := domain.ParseStockStatus(m.Status); ok {
		return status
	}
	return Classify(m.AvailableQty, m.CriticalStock, t.ReorderPoint, t.MaxLevel)
}

// needsReorderFor resolves the needs-reorder flag. The backend flag wins when
// present. Otherwise a zero consumption rate means the material never
// depletes under the model, so it never needs a reorder regardless of
// thresholds; else the reorder-point rule applies.
func needsReorderFor(m domain.Material, t Thresholds, avgDailyConsumption float64) bool {
	if m.NeedsReorder != nil {
		return *m.NeedsReorder
	}
	if avgDailyConsumption <= 0 {
		return false
	}
	return t.ReorderPoint > 0 && m.AvailableQty <= t.ReorderPoint
}

// IsLowStock reports whether an item counts toward the low-stock summary.
// The union is deliberately more permissive than the single-status label so
// the aggregate never under-counts risk: shortage statuses, the needs-reorder
// flag, and raw quantity-at-threshold checks all qualify.
func IsLowStock(item domain.ReplenishmentItem) bool {
	if item.StockStatus.IsShortage() {
		return true
	}
	if item.NeedsReorder {
		return true
	}
	if item.ReorderPoint > 0 && item.CurrentStock <= item.ReorderPoint {
		return true
	}
	return false
}

// isLowStockMaterial applies the same union to raw material fields, including
// the backend critical threshold that ReplenishmentItem folds into status.
func isLowStockMaterial(m domain.Material, item domain.ReplenishmentItem) bool {
	if IsLowStock(item) {
		return true
	}
	return m.CriticalStock > 0 && m.AvailableQty <= m.CriticalStock
}
