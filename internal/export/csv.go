// Package export renders replenishment plans for download and archival.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/craftplan/backend-go/internal/domain"
)

var planHeader = []string{
	"material_code", "material_name", "unit", "category",
	"current_stock", "avg_daily_consumption",
	"safety_stock", "reorder_point", "max_level",
	"stock_status", "days_until_stockout", "needs_reorder",
	"recommended_quantity", "recommended_order_date",
	"priority", "bucket", "unit_cost", "stock_value",
}

// WritePlanCSV renders a plan as CSV. The day-999 sentinel is written as-is;
// consumers render it as "never".
func WritePlanCSV(w io.Writer, items []domain.ReplenishmentItem) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(planHeader); err != nil {
		return fmt.Errorf("write plan header: %w", err)
	}

	for _, item := range items {
		orderDate := ""
		if !item.RecommendedOrderDate.IsZero() {
			orderDate = item.RecommendedOrderDate.Format("2006-01-02")
		}

		record := []string{
			item.MaterialCode,
			item.MaterialName,
			item.Unit,
			item.Category,
			formatFloat(item.CurrentStock),
			formatFloat(item.AvgDailyConsumption),
			strconv.Itoa(item.SafetyStock),
			formatFloat(item.ReorderPoint),
			formatFloat(item.MaxLevel),
			string(item.StockStatus),
			strconv.Itoa(item.DaysUntilStockout),
			strconv.FormatBool(item.NeedsReorder),
			strconv.Itoa(item.RecommendedQty),
			orderDate,
			string(item.Priority),
			string(item.Bucket),
			item.UnitCost.String(),
			item.StockValue.String(),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write plan row for %s: %w", item.MaterialCode, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
