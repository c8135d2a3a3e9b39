package planner

import (
	"math"

	"github.com/craftplan/backend-go/internal/domain"
)

// Thresholds carries a material's derived stock levels. Calculated values are
// always populated, even when a backend override decided the effective value,
// so reporting can show both side by side.
type Thresholds struct {
	SafetyStock            int
	ReorderPoint           float64
	MaxLevel               float64
	CalculatedReorderPoint int
	CalculatedMaxLevel     int
	LeadTimeDays           int
}

// ThresholdCalculator derives safety stock, reorder point, and max level from
// a consumption rate, honoring backend overrides for decision-making.
type ThresholdCalculator struct {
	safetyStockDays     int
	coverageDays        int
	defaultLeadTimeDays int
}

// NewThresholdCalculator applies the calibrated defaults for any
// non-positive argument: 14 days of safety buffer, 30 days of coverage,
// 7 days of lead time.
func NewThresholdCalculator(safetyStockDays, coverageDays, defaultLeadTimeDays int) *ThresholdCalculator {
	if safetyStockDays <= 0 {
		safetyStockDays = 14
	}
	if coverageDays <= 0 {
		coverageDays = 30
	}
	if defaultLeadTimeDays <= 0 {
		defaultLeadTimeDays = 7
	}
	return &ThresholdCalculator{
		safetyStockDays:     safetyStockDays,
		coverageDays:        coverageDays,
		defaultLeadTimeDays: defaultLeadTimeDays,
	}
}

// Compute derives the thresholds for one material at the given consumption
// rate. Backend overrides (reorder_level, max_level > 0) win for the
// effective values; calculated values are kept regardless.
func (c *ThresholdCalculator) Compute(m domain.Material, avgDailyConsumption float64) Thresholds {
	leadTime := m.LeadTimeDays
	if leadTime <= 0 {
		leadTime = c.defaultLeadTimeDays
	}

	safetyStock := int(math.Ceil(avgDailyConsumption * float64(c.safetyStockDays)))
	calculatedReorder := safetyStock + int(math.Ceil(avgDailyConsumption*float64(leadTime)))
	calculatedMax := int(math.Ceil(avgDailyConsumption * float64(c.coverageDays)))

	t := Thresholds{
		SafetyStock:            safetyStock,
		CalculatedReorderPoint: calculatedReorder,
		CalculatedMaxLevel:     calculatedMax,
		ReorderPoint:           float64(calculatedReorder),
		MaxLevel:               float64(calculatedMax),
		LeadTimeDays:           leadTime,
	}

	if m.ReorderLevel > 0 {
		t.ReorderPoint = m.ReorderLevel
	}
	if m.MaxLevel > 0 {
		t.MaxLevel = m.MaxLevel
	}

	return t
}
