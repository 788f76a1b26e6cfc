package mesh

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/femtools/weakform/utils"
)

func leftRight(cx, cy float64) int {
	if cx < 0.5 {
		return 1
	}
	return 2
}

func TestUnitSquare(t *testing.T) {
	msh, err := NewUnitSquare(4, 3, leftRight)
	require.NoError(t, err)

	assert.Equal(t, 5*4, msh.NumNodes())
	assert.Equal(t, 2*4*3, msh.NumElements())
	assert.Equal(t, []int{1, 2}, msh.Regions())

	// Each half holds half the elements
	left := msh.ElementsInRegions(1)
	right := msh.ElementsInRegions(2)
	assert.Equal(t, msh.NumElements(), len(left)+len(right))
	assert.Equal(t, len(left), len(right))

	// Connectivity indices stay within the node range
	mm, err := msh.EToV.MinMax()
	require.NoError(t, err)
	assert.GreaterOrEqual(t, mm[0], 0)
	assert.Less(t, mm[1], msh.NumNodes())
}

func TestBatchSelection(t *testing.T) {
	msh, err := NewUnitSquare(4, 4, leftRight)
	require.NoError(t, err)

	eb := msh.NewBatch(1)
	assert.Equal(t, 16, eb.Count())
	assert.Equal(t, []int{1}, eb.Regions())
	for i := 0; i < eb.Count(); i++ {
		assert.Equal(t, 1, eb.RegionOf(i))
	}

	both := msh.NewBatch(1, 2)
	assert.Equal(t, 32, both.Count())
	assert.Equal(t, []int{1, 2}, both.Regions())

	// Batch ids are distinct, they key the parameter reuse cache
	assert.NotEqual(t, eb.Generation(), both.Generation())

	conn, err := eb.Connectivity()
	require.NoError(t, err)
	assert.Equal(t, eb.Count(), conn.Rows())
	assert.Equal(t, 3, conn.Cols())
}

func TestBatchSplit(t *testing.T) {
	msh, err := NewUnitSquare(5, 2, leftRight)
	require.NoError(t, err)

	eb := msh.NewBatch(1, 2)
	parts := eb.Split(3)
	require.Len(t, parts, 3)
	total := 0
	seen := map[int]bool{}
	for _, part := range parts {
		total += part.Count()
		for _, elem := range part.Elements {
			assert.False(t, seen[elem])
			seen[elem] = true
		}
	}
	assert.Equal(t, eb.Count(), total)
}

func TestPhysicalCoordinates(t *testing.T) {
	msh, err := NewUnitSquare(2, 2, leftRight)
	require.NoError(t, err)
	eb := msh.NewBatch(1, 2)

	// Element corners map to the element vertices
	ref := []float64{0, 0, 1, 0, 0, 1}
	X, Y, err := eb.PhysicalCoordinates(ref, nil)
	require.NoError(t, err)
	conn, err := eb.Connectivity()
	require.NoError(t, err)
	for k := 0; k < eb.Count(); k++ {
		for i := 0; i < 3; i++ {
			node := conn.At(k, i)
			assert.InDelta(t, msh.VX.AtVec(node), X.At(k, i), 1.e-14)
			assert.InDelta(t, msh.VY.AtVec(node), Y.At(k, i), 1.e-14)
		}
	}

	// The centroid is the mean of the vertices
	Xc, Yc, err := eb.PhysicalCoordinates([]float64{1. / 3., 1. / 3.}, nil)
	require.NoError(t, err)
	for k := 0; k < eb.Count(); k++ {
		var wantX, wantY float64
		for i := 0; i < 3; i++ {
			node := conn.At(k, i)
			wantX += msh.VX.AtVec(node) / 3
			wantY += msh.VY.AtVec(node) / 3
		}
		assert.InDelta(t, wantX, Xc.At(k, 0), 1.e-14)
		assert.InDelta(t, wantY, Yc.At(k, 0), 1.e-14)
	}
}

func TestGeometricFactors(t *testing.T) {
	msh, err := NewUnitSquare(2, 2, leftRight)
	require.NoError(t, err)
	eb := msh.NewBatch(1, 2)

	_, _, _, _, J, err := eb.GeometricFactors(nil)
	require.NoError(t, err)
	// All triangles of the structured square have area |J|/2 = 1/(2*nx*ny)
	for k := 0; k < eb.Count(); k++ {
		assert.InDelta(t, 2.0*0.5/8.0, 0.5*absF(J.AtVec(k)), 1.e-14)
	}

	// Gradients of the P1 shape functions sum to zero componentwise
	Dx, Dy, err := eb.ShapeGradients(nil)
	require.NoError(t, err)
	for k := 0; k < eb.Count(); k++ {
		assert.InDelta(t, 0.0, Dx.At(k, 0)+Dx.At(k, 1)+Dx.At(k, 2), 1.e-12)
		assert.InDelta(t, 0.0, Dy.At(k, 0)+Dy.At(k, 1)+Dy.At(k, 2), 1.e-12)
	}
}

func absF(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

func TestShapeValues(t *testing.T) {
	N, err := ShapeValues(Tri3, []float64{0.25, 0.5})
	require.NoError(t, err)
	assert.InDelta(t, 0.25, N.At(0, 0), 1.e-14)
	assert.InDelta(t, 0.25, N.At(1, 0), 1.e-14)
	assert.InDelta(t, 0.5, N.At(2, 0), 1.e-14)

	_, err = ShapeValues(Tri3, []float64{0.25})
	var dimErr *utils.DimensionError
	require.ErrorAs(t, err, &dimErr)
}
