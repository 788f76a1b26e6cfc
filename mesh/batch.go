package mesh

import (
	"sync/atomic"

	"github.com/femtools/weakform/utils"
)

var batchCounter int64

// ElementBatch selects a group of same-type elements, typically all the
// elements of one or more regions, for vectorized evaluation. Each batch
// carries a unique generation id used as the invalidation key of the
// parameter reuse cache.
type ElementBatch struct {
	Msh      *Mesh
	Elements utils.Index // Element numbers in the parent mesh
	id       int64
}

// NewBatch selects the elements of the given regions.
func (msh *Mesh) NewBatch(regions ...int) (eb *ElementBatch) {
	eb = &ElementBatch{
		Msh:      msh,
		Elements: msh.ElementsInRegions(regions...),
		id:       atomic.AddInt64(&batchCounter, 1),
	}
	return
}

// NewBatchFromElements selects an explicit element subset, used to split a
// region batch into disjoint pieces for parallel evaluation.
func (msh *Mesh) NewBatchFromElements(elems utils.Index) (eb *ElementBatch) {
	eb = &ElementBatch{
		Msh:      msh,
		Elements: elems,
		id:       atomic.AddInt64(&batchCounter, 1),
	}
	return
}

func (eb *ElementBatch) Count() int { return len(eb.Elements) }

// Generation identifies this batch for result-reuse bookkeeping.
func (eb *ElementBatch) Generation() int64 { return eb.id }

// RegionOf gives the region id of the ith batch element.
func (eb *ElementBatch) RegionOf(i int) int {
	return eb.Msh.EToR.At(eb.Elements[i], 0)
}

// Regions lists the distinct regions the batch elements belong to.
func (eb *ElementBatch) Regions() (regions []int) {
	var (
		regTable = eb.Msh.EToR
	)
	seen := make(map[int]bool)
	for _, elem := range eb.Elements {
		seen[regTable.At(elem, 0)] = true
	}
	maxReg := 0
	for reg := range seen {
		if reg > maxReg {
			maxReg = reg
		}
	}
	for reg := 0; reg <= maxReg; reg++ {
		if seen[reg] {
			regions = append(regions, reg)
		}
	}
	return
}

// Connectivity extracts the element-to-vertex rows of the batch elements,
// in batch order.
func (eb *ElementBatch) Connectivity() (conn utils.IndexMatrix, err error) {
	conn, err = eb.Msh.EToV.ExtractRows(eb.Elements)
	return
}

// Split partitions the batch into numParts disjoint sub-batches with a
// maximum imbalance of one element, for lock-free parallel interpolation.
func (eb *ElementBatch) Split(numParts int) (parts []*ElementBatch) {
	var (
		pm = utils.NewPartitionMap(numParts, eb.Count())
	)
	parts = make([]*ElementBatch, numParts)
	for n := 0; n < numParts; n++ {
		kMin, kMax := pm.GetBucketRange(n)
		parts[n] = eb.Msh.NewBatchFromElements(eb.Elements[kMin:kMax])
	}
	return
}
