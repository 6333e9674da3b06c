package store

import (
	"github.com/tidwall/rtree"

	"github.com/gogpu/ink"
)

// spatialIndex is an R-tree over stroke bounds.
type spatialIndex struct {
	tree rtree.RTreeG[ink.StrokeKey]
}

func rect(b ink.Aabb) (lo, hi [2]float64) {
	return [2]float64{b.Min.X, b.Min.Y}, [2]float64{b.Max.X, b.Max.Y}
}

func (x *spatialIndex) insert(key ink.StrokeKey, bounds ink.Aabb) {
	lo, hi := rect(bounds)
	x.tree.Insert(lo, hi, key)
}

func (x *spatialIndex) remove(key ink.StrokeKey, bounds ink.Aabb) {
	lo, hi := rect(bounds)
	x.tree.Delete(lo, hi, key)
}

func (x *spatialIndex) clear() {
	x.tree = rtree.RTreeG[ink.StrokeKey]{}
}

// search returns the keys whose indexed box intersects bounds.
func (x *spatialIndex) search(bounds ink.Aabb) []ink.StrokeKey {
	var keys []ink.StrokeKey
	lo, hi := rect(bounds)
	x.tree.Search(lo, hi, func(_, _ [2]float64, key ink.StrokeKey) bool {
		keys = append(keys, key)
		return true
	})
	return keys
}
