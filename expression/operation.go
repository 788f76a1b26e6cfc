// Package expression implements the symbolic expression-evaluation engine
// used to assemble weak forms: a tree of composable operations (parameter
// lookups, field values, derivatives, algebra, test/trial placeholders)
// evaluated batch-wise into dense per-harmonic matrices.
package expression

import (
	"fmt"

	"github.com/femtools/weakform/harmonic"
	"github.com/femtools/weakform/mesh"
	"github.com/femtools/weakform/utils"
)

// HarmMatrices holds one dense Count x NumPoints value matrix per harmonic
// present in an expression. Harmonics absent from the map are structurally
// zero: callers must treat a missing key as a zero matrix, never expect a
// zero-filled entry.
type HarmMatrices map[int]utils.Matrix

// Operation is one node of the expression DAG. Nodes are shared freely
// between trees; apart from the parameter reuse cache all state is
// immutable after construction, so disjoint element batches may be
// interpolated concurrently.
type Operation interface {
	// Interpolate evaluates the sub-expression at every element of the
	// batch and every reference coordinate, under an optional mesh
	// deformation, one dense matrix per harmonic present.
	Interpolate(eb *mesh.ElementBatch, refCoords []float64, deform mesh.Deformation) (HarmMatrices, error)
	// MultiharmonicInterpolate reconstructs the time-domain signal at
	// numTimeEvals equally spaced instants over one fundamental period.
	MultiharmonicInterpolate(numTimeEvals int, eb *mesh.ElementBatch, refCoords []float64, deform mesh.Deformation) ([]utils.Matrix, error)
	// Simplify returns an observationally equivalent tree for evaluation
	// restricted to the given disjoint regions.
	Simplify(disjRegs []int) Operation
	// IsHarmonicOne reports whether the expression contributes only to
	// the constant harmonic on the given disjoint regions.
	IsHarmonicOne(disjRegs []int) (bool, error)
	// IsValueOrientationDependent reports whether values depend on the
	// local element orientation.
	IsValueOrientationDependent(disjRegs []int) bool
	// Copy duplicates the node. Shared sub-trees stay shared; mutable
	// per-node state (the reuse cache) is never aliased.
	Copy() Operation

	fmt.Stringer
}

// Print dumps an expression tree for diagnostics.
func Print(op Operation) {
	fmt.Println(op.String())
}

// The fundamental frequency is set once during problem definition, before
// any time-domain reconstruction or time differentiation is requested.
var fundamentalFrequency float64

func SetFundamentalFrequency(f0 float64) {
	fundamentalFrequency = f0
}

func getFundamentalFrequency() (f0 float64, err error) {
	if fundamentalFrequency <= 0 {
		err = fmt.Errorf("the fundamental frequency has not been set")
		return
	}
	f0 = fundamentalFrequency
	return
}

// reconstructInTime sums the per-harmonic matrices weighted by their
// sine/cosine basis at numTimeEvals instants over one period. It backs
// every node's MultiharmonicInterpolate.
func reconstructInTime(harms HarmMatrices, numTimeEvals int, eb *mesh.ElementBatch, refCoords []float64) (out []utils.Matrix, err error) {
	var (
		K  = eb.Count()
		nP = mesh.NumPoints(refCoords)
		f0 = 1.0
	)
	for harm := range harms {
		if harm != harmonic.DC {
			if f0, err = getFundamentalFrequency(); err != nil {
				return
			}
			break
		}
	}
	var (
		period = 1.0 / f0
		times  = utils.LinSpace(0, period, numTimeEvals)
	)
	out = make([]utils.Matrix, numTimeEvals)
	for i, tval := range times {
		acc := utils.NewMatrix(K, nP)
		for _, harm := range harmonic.Sorted(harms) {
			weighted := harms[harm].Copy()
			weighted.Scale(harmonic.TimeWeight(harm, f0, tval))
			acc.Add(weighted)
		}
		out[i] = acc
	}
	return
}

// accumulate adds coef*src into dst[harm], allocating the harmonic slot on
// first touch.
func (hm HarmMatrices) accumulate(harm int, coef float64, src utils.Matrix) {
	if dst, ok := hm[harm]; ok {
		scaled := src.Copy()
		scaled.Scale(coef)
		dst.Add(scaled)
		return
	}
	scaled := src.Copy()
	scaled.Scale(coef)
	hm[harm] = scaled
}
