package domain

import "strings"

// StockStatus classifies a material's stock health. Values are ordered by
// severity; classification picks the first matching rule in that order.
type StockStatus string

const (
	StatusOutOfStock  StockStatus = "out_of_stock"
	StatusCritical    StockStatus = "critical"
	StatusNeedReorder StockStatus = "need_reorder"
	StatusOverstocked StockStatus = "overstocked"
	StatusInStock     StockStatus = "in_stock"
)

var stockStatusLabels = map[StockStatus]string{
	StatusOutOfStock:  "Out of Stock",
	StatusCritical:    "Critical",
	StatusNeedReorder: "Needs Reorder",
	StatusOverstocked: "Overstocked",
	StatusInStock:     "In Stock",
}

// stockStatusSeverity ranks statuses from worst (highest) to best. Overstocked
// sits below the shortage statuses: it is a cost problem, not an availability
// problem.
var stockStatusSeverity = map[StockStatus]int{
	StatusOutOfStock:  4,
	StatusCritical:    3,
	StatusNeedReorder: 2,
	StatusOverstocked: 1,
	StatusInStock:     0,
}

// Label returns a human-readable label for a stock status.
func (s StockStatus) Label() string {
	if label, ok := stockStatusLabels[s]; ok {
		return label
	}

	return "Unknown"
}

// Severity returns the status severity rank; higher is worse.
func (s StockStatus) Severity() int {
	return stockStatusSeverity[s]
}

// IsShortage reports whether the status counts toward the low-stock summary.
func (s StockStatus) IsShortage() bool {
	switch s {
	case StatusOutOfStock, StatusCritical, StatusNeedReorder:
		return true
	}
	return false
}

// ParseStockStatus returns the status for a given backend value
// (case-insensitive, tolerating space/dash separators). The boolean reports
// whether the value named a known status.
func ParseStockStatus(value string) (StockStatus, bool) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	normalized = strings.NewReplacer(" ", "_", "-", "_").Replace(normalized)

	status := StockStatus(normalized)
	if _, ok := stockStatusLabels[status]; ok {
		return status, true
	}

	return "", false
}

// Priority ranks a replenishment item by urgency.
type Priority string

const (
	PriorityCritical Priority = "Critical"
	PriorityHigh     Priority = "High"
	PriorityMedium   Priority = "Medium"
	PriorityNormal   Priority = "Normal"
)

// Bucket places a needs-reorder item into the replenishment schedule.
type Bucket string

const (
	BucketImmediate Bucket = "immediate"
	BucketThisWeek  Bucket = "this_week"
	BucketNextWeek  Bucket = "next_week"
	BucketFuture    Bucket = "future"
)

// Product categories as the master-data store records them.
const (
	CategoryStocked     = "stocked"
	CategoryMadeToOrder = "made to order"
)

// NormalizeCategory folds the category spellings seen upstream
// ("Made_To_Order", "made-to-order", "Stocked") into the canonical form.
func NormalizeCategory(category string) string {
	normalized := strings.ToLower(strings.TrimSpace(category))
	return strings.NewReplacer("_", " ", "-", " ").Replace(normalized)
}
