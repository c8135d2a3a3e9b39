package planner

import (
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/craftplan/backend-go/internal/domain"
)

// ConsumptionRate is a material's blended average daily usage, split by
// demand stream for audit. A material may sit in zero, one, or both streams.
type ConsumptionRate struct {
	MaterialID  int64
	Stocked     float64
	MadeToOrder float64
}

// Total returns the blended average daily consumption.
func (r ConsumptionRate) Total() float64 {
	return r.Stocked + r.MadeToOrder
}

// ConsumptionEstimator derives per-material average daily consumption from
// the two demand streams: stocked-product output and made-to-order sales.
//
// Averages run over the FULL history rather than a rolling window. That keeps
// rates stable when recent activity is sparse, at the cost of reacting slowly
// to trend shifts; downstream reorder math is calibrated against this policy.
type ConsumptionEstimator struct {
	stockedFamily string
}

// NewConsumptionEstimator creates an estimator. stockedFamily is the
// case-insensitive name fragment identifying the stocked product family.
func NewConsumptionEstimator(stockedFamily string) *ConsumptionEstimator {
	if stockedFamily == "" {
		stockedFamily = "alkansya"
	}
	return &ConsumptionEstimator{stockedFamily: strings.ToLower(stockedFamily)}
}

// Rates computes consumption rates for every material in the snapshot.
// Materials with no BOM linkage in either stream get a zero rate; that is a
// normal condition, not an error.
func (e *ConsumptionEstimator) Rates(snap Snapshot) map[int64]ConsumptionRate {
	bom := NewBOMIndex(snap.BOM)

	stockedProducts := e.stockedProductSet(snap.Products)
	mtoProducts := mtoProductSet(snap.Products)

	avgDailyOutput := averageDailyOutput(snap.Output)
	mtoTotals, mtoDays := mtoDemand(snap.Orders, mtoProducts, bom)

	rates := make(map[int64]ConsumptionRate, len(snap.Materials))
	for _, m := range snap.Materials {
		rate := ConsumptionRate{MaterialID: m.ID}

		if ratio, ok := bom.FirstRatioFor(m.ID, stockedProducts); ok {
			rate.Stocked = avgDailyOutput * ratio
		}

		if mtoDays > 0 {
			rate.MadeToOrder = mtoTotals[m.ID] / float64(mtoDays)
		}

		rates[m.ID] = rate
	}

	return rates
}

// stockedProductSet picks product ids whose category is "stocked" and whose
// name contains the stocked family fragment.
func (e *ConsumptionEstimator) stockedProductSet(products []domain.Product) map[int64]bool {
	set := make(map[int64]bool)
	for _, p := range products {
		if domain.NormalizeCategory(p.Category) != domain.CategoryStocked {
			continue
		}
		if !strings.Contains(strings.ToLower(p.Name), e.stockedFamily) {
			continue
		}
		set[p.ID] = true
	}
	return set
}

func mtoProductSet(products []domain.Product) map[int64]bool {
	set := make(map[int64]bool)
	for _, p := range products {
		if domain.NormalizeCategory(p.Category) == domain.CategoryMadeToOrder {
			set[p.ID] = true
		}
	}
	return set
}

// averageDailyOutput sums the full production history and divides by the
// number of distinct days with output. Records with a zero date still count
// toward the total but not toward the day denominator.
func averageDailyOutput(output []domain.ProductionOutputRecord) float64 {
	var total float64
	days := make(map[string]bool)

	for _, rec := range output {
		total += rec.QtyProduced
		if rec.Date.IsZero() {
			log.Debug().
				Int64("product_id", rec.ProductID).
				Float64("quantity", rec.QtyProduced).
				Msg("production record has no usable date, counting quantity only")
			continue
		}
		days[dateKey(rec.Date)] = true
	}

	if len(days) == 0 {
		return 0
	}
	return total / float64(len(days))
}

// mtoDemand accumulates per-material demand from accepted orders and counts
// the distinct days carrying any accepted order. Orders without a usable date
// contribute to totals but not to the day count.
func mtoDemand(orders []domain.AcceptedOrder, mtoProducts map[int64]bool, bom *BOMIndex) (map[int64]float64, int) {
	totals := make(map[int64]float64)
	days := make(map[string]bool)

	for _, order := range orders {
		if demandDate := order.DemandDate(); !demandDate.IsZero() {
			days[dateKey(demandDate)] = true
		} else if len(order.Items) > 0 {
			log.Debug().Int64("order_id", order.ID).Msg("accepted order has no usable date, counting quantities only")
		}

		for _, item := range order.Items {
			if !mtoProducts[item.ProductID] {
				continue
			}
			for materialID, ratio := range bomRatiosForProduct(bom, item.ProductID) {
				totals[materialID] += item.Quantity * ratio
			}
		}
	}

	return totals, len(days)
}

// bomRatiosForProduct collects every material ratio linked to a product,
// honoring first-seen duplicate resolution.
func bomRatiosForProduct(bom *BOMIndex, productID int64) map[int64]float64 {
	ratios := make(map[int64]float64)
	for _, e := range bom.entries {
		if e.ProductID != productID {
			continue
		}
		if _, ok := ratios[e.MaterialID]; ok {
			continue
		}
		if ratio, ok := bom.Ratio(productID, e.MaterialID); ok {
			ratios[e.MaterialID] = ratio
		}
	}
	return ratios
}

// dateKey truncates a timestamp to its calendar day.
func dateKey(t time.Time) string {
	return t.Format("2006-01-02")
}
