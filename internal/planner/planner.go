// Package planner implements the materials requirement planning engine: it
// turns a consistent snapshot of master data, BOM links, production output,
// and accepted orders into per-material replenishment intelligence.
//
// The engine is pure and stateless. It performs no I/O, holds no locks, and
// tolerates empty or partial inputs: a material without demand history simply
// plans at a zero consumption rate. Planning passes over the same snapshot
// are idempotent and safe to run in parallel.
package planner

import (
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/craftplan/backend-go/internal/domain"
)

// Snapshot is a consistent read of the collections a planning pass consumes.
// The caller owns fetching (and any timeout around it); nil slices are
// treated as empty.
type Snapshot struct {
	Materials []domain.Material
	Products  []domain.Product
	BOM       []domain.BOMEntry
	Output    []domain.ProductionOutputRecord
	Orders    []domain.AcceptedOrder
}

// Config tunes the planning engine. Zero values fall back to the calibrated
// defaults the reorder math was built against.
type Config struct {
	SafetyStockDays     int
	CoverageDays        int
	DefaultLeadTimeDays int
	StockedFamily       string
	Quantity            QuantityPolicy

	// Now supplies the planning clock; defaults to time.Now. Injected for
	// deterministic order dates in tests.
	Now func() time.Time
}

// Planner runs planning passes. Construct with NewPlanner; the zero value is
// not usable.
type Planner struct {
	estimator  *ConsumptionEstimator
	thresholds *ThresholdCalculator
	quantity   QuantityPolicy
	now        func() time.Time
}

// NewPlanner builds a planner from the given configuration.
func NewPlanner(cfg Config) *Planner {
	quantity := cfg.Quantity
	if quantity == nil {
		quantity = TopUpToMaxPolicy
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Planner{
		estimator:  NewConsumptionEstimator(cfg.StockedFamily),
		thresholds: NewThresholdCalculator(cfg.SafetyStockDays, cfg.CoverageDays, cfg.DefaultLeadTimeDays),
		quantity:   quantity,
		now:        now,
	}
}

// PlanAll computes the current-state replenishment plan for every material in
// the snapshot. Output order follows input order.
func (p *Planner) PlanAll(snap Snapshot) []domain.ReplenishmentItem {
	runID := uuid.NewString()
	rates := p.estimator.Rates(snap)

	items := make([]domain.ReplenishmentItem, 0, len(snap.Materials))
	for _, m := range snap.Materials {
		items = append(items, p.planMaterial(m, rates[m.ID]))
	}

	log.Debug().
		Str("run_id", runID).
		Int("materials", len(items)).
		Msg("planning pass complete")

	return items
}

// Project recomputes the plan as if horizonDays of consumption had already
// happened, without touching the live snapshot. A non-positive horizon is
// equivalent to PlanAll.
func (p *Planner) Project(snap Snapshot, horizonDays int) []domain.ReplenishmentItem {
	horizonDays = ClampHorizon(horizonDays)
	if horizonDays <= 0 {
		return p.PlanAll(snap)
	}

	runID := uuid.NewString()
	rates := p.estimator.Rates(snap)

	items := make([]domain.ReplenishmentItem, 0, len(snap.Materials))
	for _, m := range snap.Materials {
		items = append(items, p.projectMaterial(m, rates[m.ID], horizonDays))
	}

	log.Debug().
		Str("run_id", runID).
		Int("horizon_days", horizonDays).
		Int("materials", len(items)).
		Msg("projection pass complete")

	return items
}

// planMaterial builds one material's snapshot item from its consumption rate.
func (p *Planner) planMaterial(m domain.Material, rate ConsumptionRate) domain.ReplenishmentItem {
	total := rate.Total()
	t := p.thresholds.Compute(m, total)

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

		UnitCost: m.StandardCost,
	}

	item.StockStatus = statusFor(m, t)
	item.NeedsReorder = needsReorderFor(m, t, total)
	item.DaysUntilStockout = DaysUntilStockout(m.AvailableQty, total)
	item.Priority = PriorityFor(item.DaysUntilStockout, item.StockStatus)
	item.Bucket = BucketFor(item.DaysUntilStockout, item.NeedsReorder)
	item.RecommendedQty = p.quantity(item)
	item.RecommendedOrderDate = recommendedOrderDate(p.now(), item)
	item.StockValue = m.StandardCost.Mul(decimal.NewFromFloat(m.AvailableQty))

	return item
}

// Summarize aggregates a plan for dashboard consumption, using the inclusive
// low-stock union over raw material fields plus derived items.
func (p *Planner) Summarize(snap Snapshot, items []domain.ReplenishmentItem) domain.PlanSummary {
	byID := make(map[int64]domain.Material, len(snap.Materials))
	for _, m := range snap.Materials {
		byID[m.ID] = m
	}

	summary := domain.PlanSummary{
		TotalMaterials: len(items),
		InventoryValue: decimal.Zero,
	}
	for _, item := range items {
		switch item.StockStatus {
		case domain.StatusOutOfStock:
			summary.OutOfStock++
		case domain.StatusCritical:
			summary.Critical++
		case domain.StatusNeedReorder:
			summary.NeedReorder++
		case domain.StatusOverstocked:
			summary.Overstocked++
		case domain.StatusInStock:
			summary.InStock++
		}
		if item.NeedsReorder {
			summary.NeedingReorder++
		}
		if isLowStockMaterial(byID[item.MaterialID], item) {
			summary.LowStock++
		}
		summary.InventoryValue = summary.InventoryValue.Add(item.StockValue)
	}
	return summary
}
