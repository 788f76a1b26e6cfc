package expression

import (
	"fmt"

	"github.com/femtools/weakform/harmonic"
	"github.com/femtools/weakform/mesh"
	"github.com/femtools/weakform/utils"
)

// Dof and Tf are the trial- and test-function placeholders of a weak form
// term. They carry no values of their own: assembly replaces them by shape
// functions when building elementary matrices, so interpolating one is a
// structural error that aborts the enclosing evaluation.

type Dof struct {
	field *Field
}

type Tf struct {
	field *Field
}

func NewDof(f *Field) *Dof { return &Dof{field: f} }
func NewTf(f *Field) *Tf   { return &Tf{field: f} }

func (op *Dof) Field() *Field { return op.field }
func (op *Tf) Field() *Field  { return op.field }

func errPlaceholder(kind, name string) error {
	return fmt.Errorf("a '%s(%s)' placeholder cannot be interpolated, it only appears inside formulation terms", kind, name)
}

func (op *Dof) Interpolate(eb *mesh.ElementBatch, refCoords []float64, deform mesh.Deformation) (HarmMatrices, error) {
	return nil, errPlaceholder("dof", op.field.name)
}

func (op *Tf) Interpolate(eb *mesh.ElementBatch, refCoords []float64, deform mesh.Deformation) (HarmMatrices, error) {
	return nil, errPlaceholder("tf", op.field.name)
}

func (op *Dof) MultiharmonicInterpolate(numTimeEvals int, eb *mesh.ElementBatch, refCoords []float64, deform mesh.Deformation) ([]utils.Matrix, error) {
	return nil, errPlaceholder("dof", op.field.name)
}

func (op *Tf) MultiharmonicInterpolate(numTimeEvals int, eb *mesh.ElementBatch, refCoords []float64, deform mesh.Deformation) ([]utils.Matrix, error) {
	return nil, errPlaceholder("tf", op.field.name)
}

func (op *Dof) Simplify(disjRegs []int) Operation { return op.Copy() }
func (op *Tf) Simplify(disjRegs []int) Operation  { return op.Copy() }

func placeholderHarmonicOne(f *Field) (bool, error) {
	harms := f.Harmonics()
	if len(harms) == 0 {
		// An unset field occupies the constant harmonic only
		return true, nil
	}
	return len(harms) == 1 && harms[0] == harmonic.DC, nil
}

func (op *Dof) IsHarmonicOne(disjRegs []int) (bool, error) {
	return placeholderHarmonicOne(op.field)
}

func (op *Tf) IsHarmonicOne(disjRegs []int) (bool, error) {
	return placeholderHarmonicOne(op.field)
}

func (op *Dof) IsValueOrientationDependent(disjRegs []int) bool { return false }
func (op *Tf) IsValueOrientationDependent(disjRegs []int) bool  { return false }

func (op *Dof) Copy() Operation { return &Dof{field: op.field} }
func (op *Tf) Copy() Operation  { return &Tf{field: op.field} }

func (op *Dof) String() string { return fmt.Sprintf("dof(%s)", op.field.name) }
func (op *Tf) String() string  { return fmt.Sprintf("tf(%s)", op.field.name) }
