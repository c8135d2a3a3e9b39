package planner

import "github.com/craftplan/backend-go/internal/domain"

type bomKey struct {
	ProductID  int64
	MaterialID int64
}

// BOMIndex resolves (product_id, material_id) pairs to consumption ratios.
// Upstream BOM data may carry duplicate pairs; the index keeps the first-seen
// entry so lookups stay deterministic regardless of later scan order.
type BOMIndex struct {
	ratios  map[bomKey]float64
	entries []domain.BOMEntry
}

// NewBOMIndex builds an index over the raw BOM entries, preserving input
// order for first-match semantics.
func NewBOMIndex(entries []domain.BOMEntry) *BOMIndex {
	idx := &BOMIndex{
		ratios:  make(map[bomKey]float64, len(entries)),
		entries: entries,
	}
	for _, e := range entries {
		key := bomKey{ProductID: e.ProductID, MaterialID: e.MaterialID}
		if _, ok := idx.ratios[key]; ok {
			continue
		}
		idx.ratios[key] = e.QtyPerProduct
	}
	return idx
}

// Ratio returns the quantity of material consumed per unit of product, or
// false when the pair is not linked.
func (idx *BOMIndex) Ratio(productID, materialID int64) (float64, bool) {
	ratio, ok := idx.ratios[bomKey{ProductID: productID, MaterialID: materialID}]
	return ratio, ok
}

// FirstRatioFor scans BOM entries in input order and returns the ratio of the
// first entry linking the material to any product in the given set. This is
// the "first match" rule for materials linked to several stocked products.
func (idx *BOMIndex) FirstRatioFor(materialID int64, productIDs map[int64]bool) (float64, bool) {
	for _, e := range idx.entries {
		if e.MaterialID != materialID || !productIDs[e.ProductID] {
			continue
		}
		// Resolve through the map so duplicate pairs still yield the
		// first-seen ratio.
		return idx.ratios[bomKey{ProductID: e.ProductID, MaterialID: e.MaterialID}], true
	}
	return 0, false
}
