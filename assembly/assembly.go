// Package assembly turns weak-form terms into global sparse matrices and
// load vectors: elementary dense contributions are computed batch-wise
// from the expression engine, then scattered through the connectivity
// bookkeeping of the index containers.
package assembly

import (
	"fmt"

	"github.com/femtools/weakform/expression"
	"github.com/femtools/weakform/harmonic"
	"github.com/femtools/weakform/mesh"
	"github.com/femtools/weakform/utils"
)

// TriQuadrature is the degree-2 rule on the reference triangle: reference
// coordinates as (r,s) pairs and the matching weights (summing to the
// reference area 1/2).
func TriQuadrature() (refCoords, weights []float64) {
	refCoords = []float64{
		1. / 6., 1. / 6.,
		2. / 3., 1. / 6.,
		1. / 6., 2. / 3.,
	}
	weights = []float64{1. / 6., 1. / 6., 1. / 6.}
	return
}

type TermKind int

const (
	DofTf         TermKind = iota // coef * dof * tf, the mass-like term
	GradDofGradTf                 // coef * grad(dof).grad(tf), the stiffness-like term
)

// BilinearTerm is one contribution coef * op(dof(u)) * op(tf(v)) to the
// system matrix. A nil coefficient means 1.
type BilinearTerm struct {
	Coef  expression.Operation
	Trial *expression.Dof
	Test  *expression.Tf
	Kind  TermKind
}

// coefValues interpolates the coefficient per harmonic, defaulting to a
// DC unit coefficient.
func coefValues(coef expression.Operation, eb *mesh.ElementBatch, refCoords []float64, deform mesh.Deformation) (expression.HarmMatrices, error) {
	if coef == nil {
		coef = expression.NewConstant(1.0)
	}
	return coef.Interpolate(eb, refCoords, deform)
}

// scatterIndices expands the batch connectivity into the row and column
// index tables of the elementary 3x3 blocks: rows repeat each node
// consecutively, columns repeat the whole node triple.
func scatterIndices(eb *mesh.ElementBatch) (rows, cols utils.IndexMatrix, err error) {
	var conn utils.IndexMatrix
	if conn, err = eb.Connectivity(); err != nil {
		return
	}
	var (
		nN = conn.Cols()
	)
	rows = conn.DuplicateColsOneByOne(nN)
	cols = conn.DuplicateAllColsTogether(nN)
	return
}

// AssembleBilinear assembles one term over a batch into one global sparse
// matrix per harmonic of the coefficient. Harmonics absent from the
// coefficient produce no matrix: they are structurally zero.
func AssembleBilinear(term BilinearTerm, eb *mesh.ElementBatch, deform mesh.Deformation) (out map[int]utils.DOK, err error) {
	var (
		refCoords, weights = TriQuadrature()
		nQ                 = len(weights)
		nN                 = eb.Msh.ElType.NumNodes()
		nDofs              = eb.Msh.NumNodes()
		K                  = eb.Count()
	)
	if term.Trial == nil || term.Test == nil {
		err = fmt.Errorf("a bilinear term needs both a dof and a tf placeholder")
		return
	}
	var coefs expression.HarmMatrices
	if coefs, err = coefValues(term.Coef, eb, refCoords, deform); err != nil {
		return
	}
	var (
		N          utils.Matrix
		Dx, Dy     utils.Matrix
		J          utils.Vector
		rows, cols utils.IndexMatrix
	)
	if N, err = mesh.ShapeValues(eb.Msh.ElType, refCoords); err != nil {
		return
	}
	if term.Kind == GradDofGradTf {
		if Dx, Dy, err = eb.ShapeGradients(deform); err != nil {
			return
		}
	}
	if _, _, _, _, J, err = eb.GeometricFactors(deform); err != nil {
		return
	}
	if rows, cols, err = scatterIndices(eb); err != nil {
		return
	}
	out = make(map[int]utils.DOK, len(coefs))
	for _, harm := range harmonic.Sorted(coefs) {
		var (
			cvals = coefs[harm]
			A     = utils.NewDOK(nDofs, nDofs)
		)
		for k := 0; k < K; k++ {
			jac := absF(J.AtVec(k))
			for i := 0; i < nN; i++ {
				for j := 0; j < nN; j++ {
					var elem float64
					for q := 0; q < nQ; q++ {
						var shape float64
						switch term.Kind {
						case GradDofGradTf:
							shape = Dx.At(k, i)*Dx.At(k, j) + Dy.At(k, i)*Dy.At(k, j)
						default:
							shape = N.At(i, q) * N.At(j, q)
						}
						elem += weights[q] * cvals.At(k, q) * shape * jac
					}
					A.Accumulate(rows.At(k, i*nN+j), cols.At(k, i*nN+j), elem)
				}
			}
		}
		out[harm] = A
	}
	return
}

// LinearTerm is one contribution coef * tf(v) to the load vector.
type LinearTerm struct {
	Coef expression.Operation
	Test *expression.Tf
}

// AssembleLinear assembles a load term into one global vector per
// harmonic of the coefficient.
func AssembleLinear(term LinearTerm, eb *mesh.ElementBatch, deform mesh.Deformation) (out map[int]utils.Vector, err error) {
	var (
		refCoords, weights = TriQuadrature()
		nQ                 = len(weights)
		nN                 = eb.Msh.ElType.NumNodes()
		nDofs              = eb.Msh.NumNodes()
		K                  = eb.Count()
	)
	if term.Test == nil {
		err = fmt.Errorf("a linear term needs a tf placeholder")
		return
	}
	var coefs expression.HarmMatrices
	if coefs, err = coefValues(term.Coef, eb, refCoords, deform); err != nil {
		return
	}
	var (
		N    utils.Matrix
		J    utils.Vector
		conn utils.IndexMatrix
	)
	if N, err = mesh.ShapeValues(eb.Msh.ElType, refCoords); err != nil {
		return
	}
	if _, _, _, _, J, err = eb.GeometricFactors(deform); err != nil {
		return
	}
	if conn, err = eb.Connectivity(); err != nil {
		return
	}
	out = make(map[int]utils.Vector, len(coefs))
	for _, harm := range harmonic.Sorted(coefs) {
		var (
			cvals = coefs[harm]
			b     = utils.NewVector(nDofs)
		)
		for k := 0; k < K; k++ {
			jac := absF(J.AtVec(k))
			for i := 0; i < nN; i++ {
				var elem float64
				for q := 0; q < nQ; q++ {
					elem += weights[q] * cvals.At(k, q) * N.At(i, q) * jac
				}
				b.Data()[conn.At(k, i)] += elem
			}
		}
		out[harm] = b
	}
	return
}

func absF(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
