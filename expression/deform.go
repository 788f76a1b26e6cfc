package expression

import (
	"fmt"

	"github.com/femtools/weakform/harmonic"
	"github.com/femtools/weakform/mesh"
	"github.com/femtools/weakform/utils"
)

// MeshDeform adapts a pair of displacement expressions into the
// mesh.Deformation consumed by coordinate mapping. Only the constant
// harmonic of the displacement moves the geometry: a time-harmonic
// displacement has zero mean position shift.
type MeshDeform struct {
	UX, UY Operation
}

func NewMeshDeform(ux, uy Operation) *MeshDeform {
	return &MeshDeform{UX: ux, UY: uy}
}

func (md *MeshDeform) Displace(eb *mesh.ElementBatch, refCoords []float64) (dx, dy utils.Matrix, err error) {
	if dx, err = dcComponent(md.UX, eb, refCoords); err != nil {
		return
	}
	dy, err = dcComponent(md.UY, eb, refCoords)
	return
}

func dcComponent(op Operation, eb *mesh.ElementBatch, refCoords []float64) (vals utils.Matrix, err error) {
	var harms HarmMatrices
	// The displacement is itself evaluated on the undeformed geometry
	if harms, err = op.Interpolate(eb, refCoords, nil); err != nil {
		err = fmt.Errorf("interpolating the mesh deformation: %v", err)
		return
	}
	if dc, ok := harms[harmonic.DC]; ok {
		vals = dc
		return
	}
	vals = utils.NewMatrix(eb.Count(), mesh.NumPoints(refCoords))
	return
}
