// Package mesh holds the element-batch collaborator of the evaluation
// engine: regions, same-type element batches and the reference-to-physical
// coordinate mapping. Mesh file ingestion lives outside this module; the
// structured builders below provide concrete meshes for drivers and tests.
package mesh

import (
	"fmt"

	"github.com/femtools/weakform/utils"
)

type ElementType int

const (
	Line2 ElementType = iota // 2 node line segment
	Tri3                     // 3 node linear triangle
)

func (et ElementType) NumNodes() int {
	switch et {
	case Line2:
		return 2
	default:
		return 3
	}
}

// Mesh stores nodes and same-type elements with their region membership.
// Connectivity and region tables live in IndexMatrix containers so the
// engine's index bookkeeping applies to them directly.
type Mesh struct {
	VX, VY utils.Vector      // Node coordinates
	EToV   utils.IndexMatrix // Element to vertex connectivity, K x NumNodes
	EToR   utils.IndexMatrix // Element to region id, K x 1
	ElType ElementType
}

func NewMesh(elType ElementType, vx, vy []float64, eToV, eToR utils.IndexMatrix) (msh *Mesh, err error) {
	if len(vx) != len(vy) {
		err = &utils.DimensionError{
			Op:   "NewMesh",
			Want: fmt.Sprintf("%d Y coordinates", len(vx)),
			Got:  fmt.Sprintf("%d", len(vy)),
		}
		return
	}
	if eToV.Cols() != elType.NumNodes() {
		err = &utils.DimensionError{
			Op:   "NewMesh",
			Want: fmt.Sprintf("%d connectivity columns", elType.NumNodes()),
			Got:  fmt.Sprintf("%d", eToV.Cols()),
		}
		return
	}
	if eToR.Rows() != eToV.Rows() || eToR.Cols() != 1 {
		err = &utils.DimensionError{
			Op:   "NewMesh",
			Want: fmt.Sprintf("%dx1 region table", eToV.Rows()),
			Got:  fmt.Sprintf("%dx%d", eToR.Rows(), eToR.Cols()),
		}
		return
	}
	msh = &Mesh{
		VX:     utils.NewVector(len(vx), vx),
		VY:     utils.NewVector(len(vy), vy),
		EToV:   eToV,
		EToR:   eToR,
		ElType: elType,
	}
	return
}

func (msh *Mesh) NumElements() int { return msh.EToV.Rows() }
func (msh *Mesh) NumNodes() int    { return msh.VX.Len() }

// Regions lists the distinct region ids present, in increasing order.
func (msh *Mesh) Regions() (regions []int) {
	maxReg, err := msh.EToR.Max()
	if err != nil {
		return
	}
	counts := msh.EToR.CountAllOccurrences(maxReg)
	for reg, num := range counts {
		if num > 0 {
			regions = append(regions, reg)
		}
	}
	return
}

// ElementsInRegions gathers the element numbers belonging to any of the
// given regions, in element order.
func (msh *Mesh) ElementsInRegions(regions ...int) (elems utils.Index) {
	inSet := make(map[int]bool, len(regions))
	for _, reg := range regions {
		inSet[reg] = true
	}
	sel := make([]bool, msh.EToR.Count())
	for i, reg := range msh.EToR.Values() {
		sel[i] = inSet[reg]
	}
	picked, err := msh.EToR.Select(sel, true)
	if err != nil {
		panic(err) // sel is built to match by construction
	}
	elems = utils.Index(picked.Values())
	return
}
