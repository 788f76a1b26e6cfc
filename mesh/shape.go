package mesh

import (
	"fmt"

	"github.com/femtools/weakform/utils"
)

// Evaluation coordinates are (r,s) pairs on the reference element, stored
// flat as [r1 s1 r2 s2 ...]. The reference triangle has vertices (0,0),
// (1,0) and (0,1); the reference line runs over r in [0,1].

func NumPoints(refCoords []float64) int { return len(refCoords) / 2 }

// Deformation supplies a displacement of the evaluation points for
// moving-mesh problems. Both outputs are batch.Count() x NumPoints.
type Deformation interface {
	Displace(eb *ElementBatch, refCoords []float64) (dx, dy utils.Matrix, err error)
}

// ShapeValues evaluates the nodal shape functions at the reference
// coordinates, as a NumNodes x NumPoints matrix.
func ShapeValues(elType ElementType, refCoords []float64) (N utils.Matrix, err error) {
	if len(refCoords)%2 != 0 {
		err = &utils.DimensionError{
			Op:   "ShapeValues",
			Want: "an even number of reference coordinates",
			Got:  fmt.Sprintf("%d", len(refCoords)),
		}
		return
	}
	var (
		nP = NumPoints(refCoords)
	)
	N = utils.NewMatrix(elType.NumNodes(), nP)
	for p := 0; p < nP; p++ {
		r, s := refCoords[2*p], refCoords[2*p+1]
		switch elType {
		case Line2:
			N.Set(0, p, 1.0-r)
			N.Set(1, p, r)
		default:
			N.Set(0, p, 1.0-r-s)
			N.Set(1, p, r)
			N.Set(2, p, s)
		}
	}
	return
}

// cornerRefCoords gives the reference coordinates of the element corners,
// where deformations are sampled to displace the geometry.
func cornerRefCoords(elType ElementType) []float64 {
	if elType == Line2 {
		return []float64{0, 0, 1, 0}
	}
	return []float64{0, 0, 1, 0, 0, 1}
}

// deformedNodeCoords returns the per-element corner coordinates, displaced
// by the deformation when one is supplied. Both are Count x NumNodes.
func (eb *ElementBatch) deformedNodeCoords(deform Deformation) (xN, yN utils.Matrix, err error) {
	var (
		nN   = eb.Msh.ElType.NumNodes()
		conn utils.IndexMatrix
	)
	if conn, err = eb.Connectivity(); err != nil {
		return
	}
	xN, yN = utils.NewMatrix(eb.Count(), nN), utils.NewMatrix(eb.Count(), nN)
	for k := 0; k < eb.Count(); k++ {
		for i := 0; i < nN; i++ {
			node := conn.At(k, i)
			xN.Set(k, i, eb.Msh.VX.AtVec(node))
			yN.Set(k, i, eb.Msh.VY.AtVec(node))
		}
	}
	if deform != nil {
		var dx, dy utils.Matrix
		if dx, dy, err = deform.Displace(eb, cornerRefCoords(eb.Msh.ElType)); err != nil {
			return
		}
		xN.Add(dx)
		yN.Add(dy)
	}
	return
}

// PhysicalCoordinates maps the reference evaluation points into physical
// space for every batch element: X and Y are Count x NumPoints.
func (eb *ElementBatch) PhysicalCoordinates(refCoords []float64, deform Deformation) (X, Y utils.Matrix, err error) {
	var (
		N      utils.Matrix
		xN, yN utils.Matrix
	)
	if N, err = ShapeValues(eb.Msh.ElType, refCoords); err != nil {
		return
	}
	if xN, yN, err = eb.deformedNodeCoords(deform); err != nil {
		return
	}
	X = xN.Mul(N)
	Y = yN.Mul(N)
	return
}

// GeometricFactors computes, per batch element, the constant derivatives
// of the reference coordinates with respect to physical space (Rx, Ry,
// Sx, Sy) and the Jacobian determinant of the linear mapping.
func (eb *ElementBatch) GeometricFactors(deform Deformation) (Rx, Ry, Sx, Sy, J utils.Vector, err error) {
	var (
		xN, yN utils.Matrix
		K      = eb.Count()
	)
	if xN, yN, err = eb.deformedNodeCoords(deform); err != nil {
		return
	}
	if eb.Msh.ElType != Tri3 {
		err = fmt.Errorf("geometric factors are only available for triangle batches")
		return
	}
	Rx, Ry = utils.NewVector(K), utils.NewVector(K)
	Sx, Sy = utils.NewVector(K), utils.NewVector(K)
	J = utils.NewVector(K)
	for k := 0; k < K; k++ {
		jac := utils.NewMatrix(2, 2, []float64{
			xN.At(k, 1) - xN.At(k, 0), xN.At(k, 2) - xN.At(k, 0),
			yN.At(k, 1) - yN.At(k, 0), yN.At(k, 2) - yN.At(k, 0),
		})
		det := jac.At(0, 0)*jac.At(1, 1) - jac.At(0, 1)*jac.At(1, 0)
		var inv utils.Matrix
		if inv, err = jac.Inverse(); err != nil {
			err = fmt.Errorf("degenerate element %d: %v", eb.Elements[k], err)
			return
		}
		// [dr/dx dr/dy; ds/dx ds/dy] is the inverse of [dx/dr dx/ds; dy/dr dy/ds]
		Rx.Data()[k], Ry.Data()[k] = inv.At(0, 0), inv.At(0, 1)
		Sx.Data()[k], Sy.Data()[k] = inv.At(1, 0), inv.At(1, 1)
		J.Data()[k] = det
	}
	return
}

// ShapeGradients returns the physical-space gradients of the nodal shape
// functions, constant per element for the linear triangle: Dx and Dy are
// Count x NumNodes.
func (eb *ElementBatch) ShapeGradients(deform Deformation) (Dx, Dy utils.Matrix, err error) {
	var (
		Rx, Ry, Sx, Sy utils.Vector
		K              = eb.Count()
	)
	if Rx, Ry, Sx, Sy, _, err = eb.GeometricFactors(deform); err != nil {
		return
	}
	// Reference gradients of the triangle: dN/dr = [-1 1 0], dN/ds = [-1 0 1]
	var (
		dNdr = []float64{-1, 1, 0}
		dNds = []float64{-1, 0, 1}
		nN   = eb.Msh.ElType.NumNodes()
	)
	Dx, Dy = utils.NewMatrix(K, nN), utils.NewMatrix(K, nN)
	for k := 0; k < K; k++ {
		for i := 0; i < nN; i++ {
			Dx.Set(k, i, dNdr[i]*Rx.AtVec(k)+dNds[i]*Sx.AtVec(k))
			Dy.Set(k, i, dNdr[i]*Ry.AtVec(k)+dNds[i]*Sy.AtVec(k))
		}
	}
	return
}
