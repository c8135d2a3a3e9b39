// backend-go/internal/domain/models.go
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Material is a trackable inventory item from the master-data store. The
// engine treats it as read-only; the backend may supply threshold overrides
// and an authoritative status that win over calculated values.
type Material struct {
	ID           int64           `json:"id" db:"id"`
	Code         string          `json:"code" db:"code"`
	Name         string          `json:"name" db:"name"`
	Unit         string          `json:"unit" db:"unit"`
	Category     string          `json:"category" db:"category"` // raw | packaging
	AvailableQty float64         `json:"available_quantity" db:"available_quantity"`
	QtyOnHand    float64         `json:"quantity_on_hand" db:"quantity_on_hand"`
	QtyReserved  float64         `json:"quantity_reserved" db:"quantity_reserved"`
	StandardCost decimal.Decimal `json:"standard_cost" db:"standard_cost"`
	Supplier     string          `json:"supplier" db:"supplier"`
	Location     string          `json:"location" db:"location"`
	LeadTimeDays int             `json:"lead_time_days" db:"lead_time_days"`

	// Backend-provided overrides; zero means "not set".
	ReorderLevel  float64 `json:"reorder_level" db:"reorder_level"`
	MaxLevel      float64 `json:"max_level" db:"max_level"`
	CriticalStock float64 `json:"critical_stock" db:"critical_stock"`
	Status        string  `json:"status" db:"status"`
	StatusLabel   string  `json:"status_label" db:"status_label"`

	// NeedsReorder is the backend flag normalized at the ingestion boundary;
	// nil means the backend did not supply one.
	NeedsReorder *bool `json:"needs_reorder,omitempty" db:"-"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Product is a sellable item whose category decides which demand stream its
// BOM-linked materials belong to.
type Product struct {
	ID       int64  `json:"id" db:"id"`
	SKU      string `json:"sku" db:"sku"`
	Name     string `json:"name" db:"name"`
	Category string `json:"category" db:"category"` // stocked | made to order
}

// BOMEntry links one product to one material with a consumption ratio.
// Duplicate (product_id, material_id) pairs may exist upstream; consumers
// must keep the first-seen entry.
type BOMEntry struct {
	ProductID     int64   `json:"product_id" db:"product_id"`
	MaterialID    int64   `json:"material_id" db:"material_id"`
	QtyPerProduct float64 `json:"quantity_per_product" db:"quantity_per_product"`
}

// ProductionOutputRecord is one day's recorded output of a stocked product.
// A zero Date means the upstream timestamp could not be parsed; the quantity
// still counts toward totals but not toward distinct-day denominators.
type ProductionOutputRecord struct {
	ID          int64     `json:"id" db:"id"`
	ProductID   int64     `json:"product_id" db:"product_id"`
	Date        time.Time `json:"date" db:"output_date"`
	QtyProduced float64   `json:"quantity_produced" db:"quantity_produced"`
}

// OrderItem is one line of an accepted order.
type OrderItem struct {
	ProductID int64   `json:"product_id" db:"product_id"`
	Quantity  float64 `json:"quantity" db:"quantity"`
}

// AcceptedOrder is a customer order that has entered fulfillment. AcceptedAt
// is preferred for day grouping; CreatedAt is the fallback.
type AcceptedOrder struct {
	ID         int64       `json:"id" db:"id"`
	AcceptedAt time.Time   `json:"accepted_at" db:"accepted_at"`
	CreatedAt  time.Time   `json:"created_at" db:"created_at"`
	Items      []OrderItem `json:"items" db:"-"`
}

// DemandDate returns the date used for day grouping: accepted_at when set,
// otherwise created_at. A zero result marks the order's date as unusable.
func (o AcceptedOrder) DemandDate() time.Time {
	if !o.AcceptedAt.IsZero() {
		return o.AcceptedAt
	}
	return o.CreatedAt
}

// ReplenishmentItem is one material's planning snapshot. It is recomputed on
// every planning run and never persisted as authoritative state.
type ReplenishmentItem struct {
	MaterialID   int64  `json:"material_id"`
	MaterialCode string `json:"material_code"`
	MaterialName string `json:"material_name"`
	Unit         string `json:"unit"`
	Category     string `json:"category"`

	CurrentStock        float64 `json:"current_stock"`
	AvgDailyConsumption float64 `json:"avg_daily_consumption"`
	StockedComponent    float64 `json:"stocked_component"`
	MadeToOrderComponent float64 `json:"made_to_order_component"`

	SafetyStock int     `json:"safety_stock"`
	ReorderPoint float64 `json:"reorder_point"`
	MaxLevel     float64 `json:"max_level"`
	// Calculated values are carried even when a backend override won, so
	// reports can show both.
	CalculatedReorderPoint int `json:"calculated_reorder_point"`
	CalculatedMaxLevel     int `json:"calculated_max_level"`

	StockStatus       StockStatus `json:"stock_status"`
	DaysUntilStockout int         `json:"days_until_stockout"`
	NeedsReorder      bool        `json:"needs_reorder"`

	RecommendedQty       int       `json:"recommended_quantity"`
	RecommendedOrderDate time.Time `json:"recommended_order_date,omitzero"`
	Priority             Priority  `json:"priority"`
	Bucket               Bucket    `json:"bucket,omitempty"`

	UnitCost   decimal.Decimal `json:"unit_cost"`
	StockValue decimal.Decimal `json:"stock_value"`

	// Projection fields; zero HorizonDays means a current-state plan.
	HorizonDays    int     `json:"horizon_days,omitempty"`
	ProjectedUsage float64 `json:"projected_usage,omitempty"`
	ProjectedStock float64 `json:"projected_stock,omitempty"`

	LeadTimeDays int `json:"lead_time_days"`
}

// PlanSummary aggregates one planning pass for dashboards.
type PlanSummary struct {
	TotalMaterials int             `json:"total_materials"`
	LowStock       int             `json:"low_stock"`
	OutOfStock     int             `json:"out_of_stock"`
	Critical       int             `json:"critical"`
	NeedReorder    int             `json:"need_reorder"`
	Overstocked    int             `json:"overstocked"`
	InStock        int             `json:"in_stock"`
	NeedingReorder int             `json:"needing_reorder"`
	InventoryValue decimal.Decimal `json:"inventory_value"`
}

// ReplenishmentSchedule groups needs-reorder items into the four mutually
// exclusive time buckets.
type ReplenishmentSchedule struct {
	Immediate []ReplenishmentItem `json:"immediate"`
	ThisWeek  []ReplenishmentItem `json:"this_week"`
	NextWeek  []ReplenishmentItem `json:"next_week"`
	Future    []ReplenishmentItem `json:"future"`
}

// PlanFilter narrows a planning result after computation. It never reaches
// into the planning math itself.
type PlanFilter struct {
	Category     string      `json:"category"`
	Status       StockStatus `json:"status"`
	NeedsReorder *bool       `json:"needs_reorder"`
	HorizonDays  int         `json:"horizon_days"`
	Page         int         `json:"page"`
	PageSize     int         `json:"page_size"`
}
