package expression

import (
	"fmt"

	"github.com/femtools/weakform/harmonic"
	"github.com/femtools/weakform/mesh"
	"github.com/femtools/weakform/utils"
)

// SpatialDerivative interpolates d(field)/dx or d(field)/dy through the
// physical-space gradients of the shape functions. The gradients account
// for the mesh deformation when one is supplied.
type SpatialDerivative struct {
	field *Field
	dir   int // 0 = x, 1 = y
}

func NewDx(f *Field) *SpatialDerivative { return &SpatialDerivative{field: f, dir: 0} }
func NewDy(f *Field) *SpatialDerivative { return &SpatialDerivative{field: f, dir: 1} }

func (op *SpatialDerivative) Interpolate(eb *mesh.ElementBatch, refCoords []float64, deform mesh.Deformation) (out HarmMatrices, err error) {
	var (
		K      = eb.Count()
		nP     = mesh.NumPoints(refCoords)
		Dx, Dy utils.Matrix
		conn   utils.IndexMatrix
	)
	if Dx, Dy, err = eb.ShapeGradients(deform); err != nil {
		return
	}
	if conn, err = eb.Connectivity(); err != nil {
		return
	}
	D := Dx
	if op.dir == 1 {
		D = Dy
	}
	var (
		nN = eb.Msh.ElType.NumNodes()
	)
	out = make(HarmMatrices, len(op.field.vals))
	for harm, nodal := range op.field.vals {
		vals := utils.NewMatrix(K, nP)
		for k := 0; k < K; k++ {
			// Constant per element for the linear basis
			var grad float64
			for i := 0; i < nN; i++ {
				grad += nodal.AtVec(conn.At(k, i)) * D.At(k, i)
			}
			for p := 0; p < nP; p++ {
				vals.Set(k, p, grad)
			}
		}
		out[harm] = vals
	}
	return
}

func (op *SpatialDerivative) MultiharmonicInterpolate(numTimeEvals int, eb *mesh.ElementBatch, refCoords []float64, deform mesh.Deformation) (out []utils.Matrix, err error) {
	var harms HarmMatrices
	if harms, err = op.Interpolate(eb, refCoords, deform); err != nil {
		return
	}
	return reconstructInTime(harms, numTimeEvals, eb, refCoords)
}

func (op *SpatialDerivative) Simplify(disjRegs []int) Operation { return op.Copy() }

func (op *SpatialDerivative) IsHarmonicOne(disjRegs []int) (bool, error) {
	harms := op.field.Harmonics()
	return len(harms) == 1 && harms[0] == harmonic.DC, nil
}

func (op *SpatialDerivative) IsValueOrientationDependent(disjRegs []int) bool { return false }

func (op *SpatialDerivative) Copy() Operation {
	return &SpatialDerivative{field: op.field, dir: op.dir}
}

func (op *SpatialDerivative) String() string {
	if op.dir == 0 {
		return fmt.Sprintf("dx(%s)", op.field.name)
	}
	return fmt.Sprintf("dy(%s)", op.field.name)
}

// TimeDerivative differentiates its child in time: sine and cosine
// harmonics rotate into each other scaled by their angular frequency, and
// the constant harmonic derives to a structural zero.
type TimeDerivative struct {
	child Operation
}

func NewDt(child Operation) *TimeDerivative { return &TimeDerivative{child: child} }

func (op *TimeDerivative) Interpolate(eb *mesh.ElementBatch, refCoords []float64, deform mesh.Deformation) (out HarmMatrices, err error) {
	var (
		childHarms HarmMatrices
		f0         float64
	)
	if childHarms, err = op.child.Interpolate(eb, refCoords, deform); err != nil {
		return
	}
	out = make(HarmMatrices)
	for harm, vals := range childHarms {
		if harm == harmonic.DC {
			continue
		}
		if f0, err = getFundamentalFrequency(); err != nil {
			return nil, err
		}
		term, ok := harmonic.TimeDerivative(harm, f0)
		if !ok {
			continue
		}
		out.accumulate(term.Harmonic, term.Coef, vals)
	}
	return
}

func (op *TimeDerivative) MultiharmonicInterpolate(numTimeEvals int, eb *mesh.ElementBatch, refCoords []float64, deform mesh.Deformation) (out []utils.Matrix, err error) {
	var harms HarmMatrices
	if harms, err = op.Interpolate(eb, refCoords, deform); err != nil {
		return
	}
	return reconstructInTime(harms, numTimeEvals, eb, refCoords)
}

func (op *TimeDerivative) Simplify(disjRegs []int) Operation {
	return &TimeDerivative{child: op.child.Simplify(disjRegs)}
}

// IsHarmonicOne holds exactly when the child is purely static: the time
// derivative is then structurally zero.
func (op *TimeDerivative) IsHarmonicOne(disjRegs []int) (bool, error) {
	return op.child.IsHarmonicOne(disjRegs)
}

func (op *TimeDerivative) IsValueOrientationDependent(disjRegs []int) bool {
	return op.child.IsValueOrientationDependent(disjRegs)
}

func (op *TimeDerivative) Copy() Operation { return &TimeDerivative{child: op.child} }

func (op *TimeDerivative) String() string {
	return fmt.Sprintf("dt(%s)", op.child.String())
}
