package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/craftplan/backend-go/internal/domain"
)

var filterItems = []domain.ReplenishmentItem{
	{MaterialID: 1, Category: "raw", StockStatus: domain.StatusCritical, NeedsReorder: true},
	{MaterialID: 2, Category: "Raw", StockStatus: domain.StatusInStock},
	{MaterialID: 3, Category: "packaging", StockStatus: domain.StatusNeedReorder, NeedsReorder: true},
}

func ids(items []domain.ReplenishmentItem) []int64 {
	out := make([]int64, 0, len(items))
	for _, item := range items {
		out = append(out, item.MaterialID)
	}
	return out
}

func TestFilter_NilPredicatePassesThrough(t *testing.T) {
	assert.Equal(t, filterItems, Filter(filterItems, nil))
}

func TestFilter_ByCategoryNormalizes(t *testing.T) {
	got := Filter(filterItems, ByCategory("RAW"))
	assert.Equal(t, []int64{1, 2}, ids(got))

	assert.Len(t, Filter(filterItems, ByCategory("")), 3, "empty category matches all")
}

func TestFilter_ByStatus(t *testing.T) {
	got := Filter(filterItems, ByStatus(domain.StatusCritical))
	assert.Equal(t, []int64{1}, ids(got))
}

func TestFilter_And(t *testing.T) {
	got := Filter(filterItems, And(ByCategory("raw"), NeedsReorderOnly()))
	assert.Equal(t, []int64{1}, ids(got))
}

func TestFromPlanFilter(t *testing.T) {
	no := false
	got := Filter(filterItems, FromPlanFilter(domain.PlanFilter{NeedsReorder: &no}))
	assert.Equal(t, []int64{2}, ids(got))

	got = Filter(filterItems, FromPlanFilter(domain.PlanFilter{Category: "packaging", Status: domain.StatusNeedReorder}))
	assert.Equal(t, []int64{3}, ids(got))

	assert.Len(t, Filter(filterItems, FromPlanFilter(domain.PlanFilter{})), 3)
}
