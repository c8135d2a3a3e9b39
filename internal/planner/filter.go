package planner

import "github.com/craftplan/backend-go/internal/domain"

// Predicate decides whether a planned item survives filtering.
type Predicate func(domain.ReplenishmentItem) bool

// Filter returns the items matching the predicate. It runs strictly after
// planning; filtering never interleaves with the planning math.
func Filter(items []domain.ReplenishmentItem, pred Predicate) []domain.ReplenishmentItem {
	if pred == nil {
		return items
	}
	filtered := make([]domain.ReplenishmentItem, 0, len(items))
	for _, item := range items {
		if pred(item) {
			filtered = append(filtered, item)
		}
	}
	return filtered
}

// ByCategory matches items whose material category equals the given one
// (normalized). An empty category matches everything.
func ByCategory(category string) Predicate {
	normalized := domain.NormalizeCategory(category)
	return func(item domain.ReplenishmentItem) bool {
		if normalized == "" {
			return true
		}
		return domain.NormalizeCategory(item.Category) == normalized
	}
}

// ByStatus matches items carrying the given stock status. An empty status
// matches everything.
func ByStatus(status domain.StockStatus) Predicate {
	return func(item domain.ReplenishmentItem) bool {
		if status == "" {
			return true
		}
		return item.StockStatus == status
	}
}

// NeedsReorderOnly matches items flagged for reorder.
func NeedsReorderOnly() Predicate {
	return func(item domain.ReplenishmentItem) bool {
		return item.NeedsReorder
	}
}

// And combines predicates; all must match.
func And(preds ...Predicate) Predicate {
	return func(item domain.ReplenishmentItem) bool {
		for _, pred := range preds {
			if pred != nil && !pred(item) {
				return false
			}
		}
		return true
	}
}

// FromPlanFilter translates an API-level filter into a predicate.
func FromPlanFilter(filter domain.PlanFilter) Predicate {
	preds := []Predicate{ByCategory(filter.Category), ByStatus(filter.Status)}
	if filter.NeedsReorder != nil {
		want := *filter.NeedsReorder
		preds = append(preds, func(item domain.ReplenishmentItem) bool {
			return item.NeedsReorder == want
		})
	}
	return And(preds...)
}
