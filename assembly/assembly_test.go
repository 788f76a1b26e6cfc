package assembly

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/femtools/weakform/expression"
	"github.com/femtools/weakform/harmonic"
	"github.com/femtools/weakform/mesh"
	"github.com/femtools/weakform/parameter"
)

func testMesh(t *testing.T) *mesh.Mesh {
	t.Helper()
	msh, err := mesh.NewUnitSquare(4, 4, func(cx, cy float64) int {
		if cx < 0.5 {
			return 1
		}
		return 2
	})
	require.NoError(t, err)
	return msh
}

func TestMassMatrix(t *testing.T) {
	var (
		msh = testMesh(t)
		eb  = msh.NewBatch(1, 2)
		u   = expression.NewField("u", msh)
	)
	term := BilinearTerm{
		Trial: expression.NewDof(u),
		Test:  expression.NewTf(u),
		Kind:  DofTf,
	}
	mats, err := AssembleBilinear(term, eb, nil)
	require.NoError(t, err)
	require.Len(t, mats, 1)
	A := mats[harmonic.DC]

	// The entries of the unit-coefficient mass matrix sum to the domain area
	nr, nc := A.Dims()
	assert.Equal(t, msh.NumNodes(), nr)
	var sum float64
	for i := 0; i < nr; i++ {
		for j := 0; j < nc; j++ {
			sum += A.At(i, j)
		}
	}
	assert.InDelta(t, 1.0, sum, 1.e-12)

	// Symmetry
	for i := 0; i < nr; i++ {
		for j := i + 1; j < nc; j++ {
			assert.InDelta(t, A.At(i, j), A.At(j, i), 1.e-13)
		}
	}
}

func TestStiffnessMatrix(t *testing.T) {
	var (
		msh = testMesh(t)
		eb  = msh.NewBatch(1, 2)
		u   = expression.NewField("u", msh)
	)
	term := BilinearTerm{
		Trial: expression.NewDof(u),
		Test:  expression.NewTf(u),
		Kind:  GradDofGradTf,
	}
	mats, err := AssembleBilinear(term, eb, nil)
	require.NoError(t, err)
	A := mats[harmonic.DC]

	// Constant fields are in the kernel: every row sums to zero
	nr, nc := A.Dims()
	for i := 0; i < nr; i++ {
		var rowSum float64
		for j := 0; j < nc; j++ {
			rowSum += A.At(i, j)
		}
		assert.InDelta(t, 0.0, rowSum, 1.e-11)
	}

	// The quadratic form with u = x equals the Dirichlet energy of x, the area
	csr := A.ToCSR()
	var energy float64
	for i := 0; i < nr; i++ {
		for j := 0; j < nc; j++ {
			energy += msh.VX.AtVec(i) * csr.At(i, j) * msh.VX.AtVec(j)
		}
	}
	assert.InDelta(t, 1.0, energy, 1.e-11)
}

func TestPiecewiseCoefficient(t *testing.T) {
	var (
		msh = testMesh(t)
		u   = expression.NewField("u", msh)
		p   = parameter.New(1, 1)
	)
	// Region-dependent density: 2 on the left half, 4 on the right half
	require.NoError(t, p.SetConstant([]int{1}, 2.0))
	require.NoError(t, p.SetConstant([]int{2}, 4.0))
	rho, err := expression.NewParameter(p, 0, 0)
	require.NoError(t, err)

	term := BilinearTerm{
		Coef:  rho,
		Trial: expression.NewDof(u),
		Test:  expression.NewTf(u),
		Kind:  DofTf,
	}
	mats, err := AssembleBilinear(term, msh.NewBatch(1, 2), nil)
	require.NoError(t, err)
	A := mats[harmonic.DC]

	// Total mass = 2*0.5 + 4*0.5 = 3
	nr, nc := A.Dims()
	var sum float64
	for i := 0; i < nr; i++ {
		for j := 0; j < nc; j++ {
			sum += A.At(i, j)
		}
	}
	assert.InDelta(t, 3.0, sum, 1.e-12)
}

func TestHarmonicCoefficient(t *testing.T) {
	var (
		msh = testMesh(t)
		u   = expression.NewField("u", msh)
		p   = parameter.New(1, 1)
	)
	// A pressure load on the sin harmonic only
	require.NoError(t, p.Set([]int{1, 2}, harmonic.Sin(1), parameter.ConstantScalar(1.e5)))
	load, err := expression.NewParameter(p, 0, 0)
	require.NoError(t, err)

	vecs, err := AssembleLinear(LinearTerm{Coef: load, Test: expression.NewTf(u)}, msh.NewBatch(1, 2), nil)
	require.NoError(t, err)
	require.Len(t, vecs, 1)
	b, ok := vecs[harmonic.Sin(1)]
	require.True(t, ok, "the load lives on the sin harmonic, DC is structurally zero")

	// The load vector entries sum to the integral of the coefficient
	var sum float64
	for i := 0; i < b.Len(); i++ {
		sum += b.AtVec(i)
	}
	assert.InDelta(t, 1.e5, sum, 1.e-7*1.e5)
}

func TestQuadratureRule(t *testing.T) {
	refCoords, weights := TriQuadrature()
	assert.Equal(t, 3, mesh.NumPoints(refCoords))
	var wsum float64
	for _, w := range weights {
		wsum += w
	}
	assert.InDelta(t, 0.5, wsum, 1.e-15)

	// Degree-2 exactness on the reference triangle: integral of r*s is 1/24
	var integral float64
	for q, w := range weights {
		r, s := refCoords[2*q], refCoords[2*q+1]
		integral += w * r * s
	}
	assert.InDelta(t, 1.0/24.0, integral, 1.e-14)
}
