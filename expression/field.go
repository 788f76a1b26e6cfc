package expression

import (
	"fmt"

	"github.com/femtools/weakform/harmonic"
	"github.com/femtools/weakform/mesh"
	"github.com/femtools/weakform/utils"
)

// Field holds the nodal coefficients of a scalar finite-element field, one
// coefficient vector per harmonic. Structure is fixed after setup; only
// the coefficient values change between solves.
type Field struct {
	name string
	msh  *mesh.Mesh
	vals map[int]utils.Vector // harmonic -> nodal coefficients
}

func NewField(name string, msh *mesh.Mesh) *Field {
	return &Field{
		name: name,
		msh:  msh,
		vals: make(map[int]utils.Vector),
	}
}

func (f *Field) Name() string     { return f.name }
func (f *Field) Mesh() *mesh.Mesh { return f.msh }

// Harmonics lists the harmonics the field carries, in increasing order.
func (f *Field) Harmonics() []int { return harmonic.Sorted(f.vals) }

// SetHarmonic installs the nodal coefficients of one harmonic.
func (f *Field) SetHarmonic(harm int, nodal []float64) (err error) {
	if len(nodal) != f.msh.NumNodes() {
		err = &utils.DimensionError{
			Op:   "SetHarmonic",
			Want: fmt.Sprintf("%d nodal values", f.msh.NumNodes()),
			Got:  fmt.Sprintf("%d", len(nodal)),
		}
		return
	}
	f.vals[harm] = utils.NewVector(len(nodal), nodal)
	return
}

// SetFromFunc fills one harmonic by sampling a function at the mesh nodes,
// the nodal interpolant of the P1 space.
func (f *Field) SetFromFunc(harm int, fn func(x, y float64) float64) {
	nodal := make([]float64, f.msh.NumNodes())
	for i := range nodal {
		nodal[i] = fn(f.msh.VX.AtVec(i), f.msh.VY.AtVec(i))
	}
	f.vals[harm] = utils.NewVector(len(nodal), nodal)
}

// FieldValue interpolates the field itself through its shape functions.
type FieldValue struct {
	field *Field
}

func NewFieldValue(f *Field) *FieldValue { return &FieldValue{field: f} }

func (op *FieldValue) Interpolate(eb *mesh.ElementBatch, refCoords []float64, deform mesh.Deformation) (out HarmMatrices, err error) {
	var (
		K    = eb.Count()
		nP   = mesh.NumPoints(refCoords)
		N    utils.Matrix
		conn utils.IndexMatrix
	)
	if N, err = mesh.ShapeValues(eb.Msh.ElType, refCoords); err != nil {
		return
	}
	if conn, err = eb.Connectivity(); err != nil {
		return
	}
	var (
		nN = eb.Msh.ElType.NumNodes()
	)
	out = make(HarmMatrices, len(op.field.vals))
	for harm, nodal := range op.field.vals {
		vals := utils.NewMatrix(K, nP)
		for k := 0; k < K; k++ {
			for p := 0; p < nP; p++ {
				var sum float64
				for i := 0; i < nN; i++ {
					sum += nodal.AtVec(conn.At(k, i)) * N.At(i, p)
				}
				vals.Set(k, p, sum)
			}
		}
		out[harm] = vals
	}
	return
}

func (op *FieldValue) MultiharmonicInterpolate(numTimeEvals int, eb *mesh.ElementBatch, refCoords []float64, deform mesh.Deformation) (out []utils.Matrix, err error) {
	var harms HarmMatrices
	if harms, err = op.Interpolate(eb, refCoords, deform); err != nil {
		return
	}
	return reconstructInTime(harms, numTimeEvals, eb, refCoords)
}

func (op *FieldValue) Simplify(disjRegs []int) Operation { return op.Copy() }

func (op *FieldValue) IsHarmonicOne(disjRegs []int) (bool, error) {
	harms := op.field.Harmonics()
	return len(harms) == 1 && harms[0] == harmonic.DC, nil
}

func (op *FieldValue) IsValueOrientationDependent(disjRegs []int) bool { return false }

func (op *FieldValue) Copy() Operation { return &FieldValue{field: op.field} }

func (op *FieldValue) String() string { return op.field.name }
