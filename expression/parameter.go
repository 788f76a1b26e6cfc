package expression

import (
	"fmt"

	"github.com/femtools/weakform/harmonic"
	"github.com/femtools/weakform/mesh"
	"github.com/femtools/weakform/parameter"
	"github.com/femtools/weakform/utils"
)

// Parameter is the leaf node looking up one tensor component of a raw
// parameter table at the evaluation coordinates.
//
// When the reuse flag is set the dense matrices of the previous call are
// returned as long as the element batch generation and point count match.
// The caller must guarantee the batch content and region data are unchanged
// between reused calls: a batch mutated in place would be served stale
// values. Interpolating distinct batches is always safe, the generation key
// forces recomputation. The flag is single-writer: only the assembly driver
// toggles it, and never during concurrent interpolation.
type Parameter struct {
	param    *parameter.RawParameter
	row, col int

	reuse     bool
	cached    HarmMatrices
	cachedGen int64
	cachedPts int
}

// NewParameter selects component (row, col) of the table. The selector is
// validated against the declared rank once, at construction.
func NewParameter(param *parameter.RawParameter, row, col int) (op *Parameter, err error) {
	if row < 0 || row >= param.Rows() || col < 0 || col >= param.Cols() {
		err = &utils.ComponentRangeError{Row: row, Col: col, Rows: param.Rows(), Cols: param.Cols()}
		return
	}
	op = &Parameter{param: param, row: row, col: col}
	return
}

// ReuseIt enables or disables result reuse across repeated interpolations
// of the same batch. Disabling drops the cache.
func (op *Parameter) ReuseIt(isToBeReused bool) {
	op.reuse = isToBeReused
	if !isToBeReused {
		op.cached = nil
	}
}

// InvalidateReuse drops any memoized result while leaving reuse enabled,
// for callers that mutated region data between assembly sweeps.
func (op *Parameter) InvalidateReuse() { op.cached = nil }

// Table exposes the underlying raw parameter table.
func (op *Parameter) Table() *parameter.RawParameter { return op.param }

func (op *Parameter) Interpolate(eb *mesh.ElementBatch, refCoords []float64, deform mesh.Deformation) (out HarmMatrices, err error) {
	if op.reuse && op.cached != nil && op.cachedGen == eb.Generation() && op.cachedPts == len(refCoords) {
		return op.cached, nil
	}
	var (
		K    = eb.Count()
		nP   = mesh.NumPoints(refCoords)
		X, Y utils.Matrix
	)
	out = make(HarmMatrices)
	if K == 0 {
		return
	}
	if X, Y, err = eb.PhysicalCoordinates(refCoords, deform); err != nil {
		return
	}
	// Each region is evaluated with its own harmonic set: a harmonic
	// defined on one region only fills that region's rows, the rows of the
	// other regions stay structurally zero. Only a region with no data at
	// all fails the lookup.
	regOfRow := utils.NewIndexMatrix(K, 1)
	for k := 0; k < K; k++ {
		regOfRow.Set(k, 0, eb.RegionOf(k))
	}
	var maxReg int
	if maxReg, err = regOfRow.Max(); err != nil {
		return nil, err
	}
	for reg, rows := range regOfRow.FindAllOccurrences(maxReg) {
		if len(rows) == 0 {
			continue
		}
		var harms []int
		if harms, err = op.param.Harmonics(reg); err != nil {
			return nil, err
		}
		for _, harm := range harms {
			vals, present := out[harm]
			if !present {
				vals = utils.NewMatrix(K, nP)
				out[harm] = vals
			}
			for _, k := range rows {
				for p := 0; p < nP; p++ {
					var val float64
					if val, err = op.param.ValueComponent(reg, harm, op.row, op.col, X.At(k, p), Y.At(k, p)); err != nil {
						return nil, err
					}
					vals.Set(k, p, val)
				}
			}
		}
	}
	if op.reuse {
		op.cached = out
		op.cachedGen = eb.Generation()
		op.cachedPts = len(refCoords)
	}
	return
}

func (op *Parameter) MultiharmonicInterpolate(numTimeEvals int, eb *mesh.ElementBatch, refCoords []float64, deform mesh.Deformation) (out []utils.Matrix, err error) {
	var harms HarmMatrices
	if harms, err = op.Interpolate(eb, refCoords, deform); err != nil {
		return
	}
	return reconstructInTime(harms, numTimeEvals, eb, refCoords)
}

// Simplify collapses the leaf into constant nodes when the table holds one
// identical constant per harmonic across all the listed regions.
func (op *Parameter) Simplify(disjRegs []int) Operation {
	consts, ok := op.param.ConstantOver(disjRegs, op.row, op.col)
	if !ok || len(consts) == 0 {
		return op.Copy()
	}
	terms := make([]Operation, 0, len(consts))
	for _, harm := range harmonic.Sorted(consts) {
		terms = append(terms, NewHarmonicConstant(consts[harm], harm))
	}
	if len(terms) == 1 {
		return terms[0]
	}
	return NewAdd(terms...)
}

func (op *Parameter) IsHarmonicOne(disjRegs []int) (bool, error) {
	return op.param.IsHarmonicOne(disjRegs)
}

func (op *Parameter) IsValueOrientationDependent(disjRegs []int) bool { return false }

// Copy shares the raw table and carries the reuse flag over, but never the
// memoized matrices: independent trees must not alias cache state.
func (op *Parameter) Copy() Operation {
	return &Parameter{param: op.param, row: op.row, col: op.col, reuse: op.reuse}
}

func (op *Parameter) String() string {
	return fmt.Sprintf("param(%d,%d)", op.row, op.col)
}
