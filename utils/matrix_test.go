package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatrix(t *testing.T) {
	{ // Multiply and transpose
		A := NewMatrix(2, 3, []float64{
			1, 2, 3,
			4, 5, 6,
		})
		B := NewMatrix(3, 2, []float64{
			1, 0,
			0, 1,
			1, 1,
		})
		C := A.Mul(B)
		assert.Equal(t, []float64{4, 5, 10, 11}, C.Data())
		At := A.Transpose()
		nr, nc := At.Dims()
		assert.Equal(t, 3, nr)
		assert.Equal(t, 2, nc)
		assert.Equal(t, A.At(0, 2), At.At(2, 0))
	}
	{ // Element operations change the receiver
		A := NewMatrix(2, 2, []float64{1, 2, 3, 4})
		B := NewMatrixConst(2, 2, 2)
		A.ElMul(B)
		assert.Equal(t, []float64{2, 4, 6, 8}, A.Data())
		A.Add(NewMatrixConst(2, 2, 1))
		assert.Equal(t, []float64{3, 5, 7, 9}, A.Data())
		A.Scale(0.5)
		assert.Equal(t, 1.5, A.At(0, 0))
	}
	{ // Inverse recovers the identity
		A := NewMatrix(2, 2, []float64{4, 7, 2, 6})
		Ainv, err := A.Inverse()
		assert.NoError(t, err)
		I := A.Mul(Ainv)
		assert.InDeltaSlice(t, []float64{1, 0, 0, 1}, I.Data(), 1.e-12)
	}
	{ // Singular matrices fail to invert
		A := NewMatrix(2, 2, []float64{1, 2, 2, 4})
		_, err := A.Inverse()
		assert.Error(t, err)
	}
	{ // Read only matrices panic on mutation
		A := NewMatrix(2, 2, []float64{1, 2, 3, 4})
		A.SetReadOnly("A")
		assert.Panics(t, func() { A.Set(0, 0, 99) })
		A.SetWritable()
		assert.NotPanics(t, func() { A.Set(0, 0, 99) })
	}
	{ // Reductions
		A := NewMatrix(3, 3, []float64{
			1, 2, 3,
			4, 5, 6,
			7, 8, 9,
		})
		assert.Equal(t, 1., A.Min())
		assert.Equal(t, 9., A.Max())
	}
}

func TestVector(t *testing.T) {
	v := NewVector(4, []float64{3, 1, 4, 1})
	assert.Equal(t, 4, v.Len())
	assert.Equal(t, 1., v.Min())
	assert.Equal(t, 4., v.Max())
	v.Scale(2)
	assert.Equal(t, 8., v.AtVec(2))
	v.Apply(func(x float64) float64 { return x + 1 })
	assert.Equal(t, 7., v.AtVec(0))
}

func TestSparse(t *testing.T) {
	d := NewDOK(3, 3)
	d.Accumulate(0, 0, 1)
	d.Accumulate(0, 0, 2)
	d.Set(2, 1, 5)
	assert.Equal(t, 3., d.At(0, 0))
	csr := d.ToCSR()
	assert.Equal(t, 2, csr.NNZ())
	assert.Equal(t, 5., csr.At(2, 1))
	d.SetReadOnly("stiffness")
	assert.Panics(t, func() { d.Set(1, 1, 1) })
}

func TestPartitionMap(t *testing.T) {
	pm := NewPartitionMap(4, 10)
	var total int
	for n := 0; n < 4; n++ {
		kMin, kMax := pm.GetBucketRange(n)
		assert.Equal(t, kMax-kMin, pm.GetBucketDimension(n))
		total += kMax - kMin
	}
	assert.Equal(t, 10, total)
	// Buckets tile the index space without gaps
	_, kMaxPrev := pm.GetBucketRange(0)
	for n := 1; n < 4; n++ {
		kMin, kMax := pm.GetBucketRange(n)
		assert.Equal(t, kMaxPrev, kMin)
		kMaxPrev = kMax
	}
}

func TestMathHelpers(t *testing.T) {
	assert.Equal(t, []float64{2, 2, 2}, ConstArray(3, 2))
	// LinSpace samples the half open interval, one period with no repeat
	ls := LinSpace(0, 1, 5)
	assert.Equal(t, 5, len(ls))
	assert.Equal(t, 0., ls[0])
	assert.InDelta(t, 0.2, ls[1], 1.e-12)
	assert.InDelta(t, 0.8, ls[4], 1.e-12)
	assert.Equal(t, 8., POW(2, 3))
	assert.Equal(t, 1., POW(5, 0))
}
