package planner

import (
	"math"
	"time"

	"github.com/craftplan/backend-go/internal/domain"
)

// StockoutSentinel stands in for "will not run out under current
// consumption" when the consumption rate is zero. Displayed as infinity.
const StockoutSentinel = 999

// QuantityPolicy computes the recommended order quantity for one item. The
// exact target-level policy is business configuration, not engine logic, so
// it is pluggable; the engine always exposes current stock, max level, and
// reorder point for the policy to work with.
type QuantityPolicy func(item domain.ReplenishmentItem) int

// TopUpToMaxPolicy is the conservative default: order enough to reach max
// level, floored at zero, and nothing when no reorder is needed.
func TopUpToMaxPolicy(item domain.ReplenishmentItem) int {
	if !item.NeedsReorder {
		return 0
	}
	qty := item.MaxLevel - item.CurrentStock
	if qty <= 0 {
		return 0
	}
	return int(math.Ceil(qty))
}

// DaysUntilStockout is floor(available / rate), or the sentinel when the
// rate is zero. Negative stock is clamped to zero days.
func DaysUntilStockout(available, avgDailyConsumption float64) int {
	if avgDailyConsumption <= 0 {
		return StockoutSentinel
	}
	days := int(math.Floor(available / avgDailyConsumption))
	if days < 0 {
		return 0
	}
	return days
}

// PriorityFor ranks urgency from runway and status. Critical and out-of-stock
// statuses are always Critical regardless of computed runway.
func PriorityFor(daysUntilStockout int, status domain.StockStatus) domain.Priority {
	if status == domain.StatusCritical || status == domain.StatusOutOfStock {
		return domain.PriorityCritical
	}
	switch {
	case daysUntilStockout <= 7:
		return domain.PriorityCritical
	case daysUntilStockout <= 14:
		return domain.PriorityHigh
	case daysUntilStockout <= 30:
		return domain.PriorityMedium
	default:
		return domain.PriorityNormal
	}
}

// BucketFor places a needs-reorder item into one of the four schedule
// buckets. Items not flagged for reorder carry no bucket and are excluded
// from the schedule entirely.
func BucketFor(daysUntilStockout int, needsReorder bool) domain.Bucket {
	if !needsReorder {
		return ""
	}
	switch {
	case daysUntilStockout <= 7:
		return domain.BucketImmediate
	case daysUntilStockout <= 14:
		return domain.BucketThisWeek
	case daysUntilStockout <= 21:
		return domain.BucketNextWeek
	default:
		return domain.BucketFuture
	}
}

// recommendedOrderDate backs the order date off the depletion date by the
// lead time: place the order so stock arrives as the runway ends. Items
// already at or below the reorder point order today; items that never
// deplete but carry a backend reorder flag also order today.
func recommendedOrderDate(now time.Time, item domain.ReplenishmentItem) time.Time {
	if !item.NeedsReorder {
		return time.Time{}
	}

	today := now.Truncate(24 * time.Hour)
	if item.DaysUntilStockout >= StockoutSentinel {
		return today
	}
	if item.ReorderPoint > 0 && item.CurrentStock <= item.ReorderPoint {
		return today
	}

	wait := item.DaysUntilStockout - item.LeadTimeDays
	if wait < 0 {
		wait = 0
	}
	return today.AddDate(0, 0, wait)
}

// Schedule groups needs-reorder items by bucket. Items without a bucket are
// dropped from the schedule.
func Schedule(items []domain.ReplenishmentItem) domain.ReplenishmentSchedule {
	var schedule domain.ReplenishmentSchedule
	for _, item := range items {
		switch item.Bucket {
		case domain.BucketImmediate:
			schedule.Immediate = append(schedule.Immediate, item)
		case domain.BucketThisWeek:
			schedule.ThisWeek = append(schedule.ThisWeek, item)
		case domain.BucketNextWeek:
			schedule.NextWeek = append(schedule.NextWeek, item)
		case domain.BucketFuture:
			schedule.Future = append(schedule.Future, item)
		}
	}
	return schedule
}
