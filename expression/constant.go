package expression

import (
	"fmt"

	"github.com/femtools/weakform/harmonic"
	"github.com/femtools/weakform/mesh"
	"github.com/femtools/weakform/utils"
)

// Constant is a space-independent value on a single harmonic. Parameter
// leaves that are region-constant collapse to this node under Simplify.
type Constant struct {
	val  float64
	harm int
}

func NewConstant(val float64) *Constant {
	return &Constant{val: val, harm: harmonic.DC}
}

// NewHarmonicConstant places a constant amplitude on one sine/cosine
// harmonic instead of the DC component.
func NewHarmonicConstant(val float64, harm int) *Constant {
	return &Constant{val: val, harm: harm}
}

func (c *Constant) Value() float64 { return c.val }

func (c *Constant) Interpolate(eb *mesh.ElementBatch, refCoords []float64, deform mesh.Deformation) (HarmMatrices, error) {
	var (
		K  = eb.Count()
		nP = mesh.NumPoints(refCoords)
	)
	return HarmMatrices{
		c.harm: utils.NewMatrixConst(K, nP, c.val),
	}, nil
}

func (c *Constant) MultiharmonicInterpolate(numTimeEvals int, eb *mesh.ElementBatch, refCoords []float64, deform mesh.Deformation) (out []utils.Matrix, err error) {
	var harms HarmMatrices
	if harms, err = c.Interpolate(eb, refCoords, deform); err != nil {
		return
	}
	return reconstructInTime(harms, numTimeEvals, eb, refCoords)
}

func (c *Constant) Simplify(disjRegs []int) Operation { return c.Copy() }

func (c *Constant) IsHarmonicOne(disjRegs []int) (bool, error) {
	return c.harm == harmonic.DC, nil
}

func (c *Constant) IsValueOrientationDependent(disjRegs []int) bool { return false }

func (c *Constant) Copy() Operation {
	return &Constant{val: c.val, harm: c.harm}
}

func (c *Constant) String() string {
	if c.harm == harmonic.DC {
		return fmt.Sprintf("%g", c.val)
	}
	return fmt.Sprintf("%g@%s", c.val, harmonic.Name(c.harm))
}
