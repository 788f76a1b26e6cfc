package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndexMatrix(t *testing.T) {
	// Round trip construction from a value list
	{
		vals := []int{3, 1, 4, 1, 5, 9}
		M, err := NewIndexMatrixData(2, 3, vals)
		require.NoError(t, err)
		assert.Equal(t, 2, M.Rows())
		assert.Equal(t, 3, M.Cols())
		assert.Equal(t, 6, M.Count())
		for i := 0; i < 2; i++ {
			for j := 0; j < 3; j++ {
				assert.Equal(t, vals[i*3+j], M.At(i, j))
			}
		}
	}
	// Value list length mismatch
	{
		_, err := NewIndexMatrixData(2, 3, []int{1, 2, 3})
		var dimErr *DimensionError
		require.ErrorAs(t, err, &dimErr)
	}
	// Arithmetic sequence, reductions, transpose (end to end scenario)
	{
		M := NewIndexMatrixRange(3, 2, 0, 1)
		assert.Equal(t, []int{0, 1, 2, 3, 4, 5}, M.Values())
		assert.Equal(t, 1, M.CountOccurrences(3))
		max, err := M.Max()
		require.NoError(t, err)
		assert.Equal(t, 5, max)
		T := M.GetTranspose()
		assert.Equal(t, 2, T.Rows())
		assert.Equal(t, 3, T.Cols())
		assert.Equal(t, []int{0, 2, 4, 1, 3, 5}, T.Values())
	}
	// Resized view shares the buffer and round trips
	{
		M := NewIndexMatrixRange(2, 6, 0, 1)
		V, err := M.GetResized(3, 4)
		require.NoError(t, err)
		assert.Equal(t, M.Values(), V.Values())
		back, err := V.GetResized(2, 6)
		require.NoError(t, err)
		assert.Equal(t, M.Values(), back.Values())
		V.Set(0, 0, 42)
		assert.Equal(t, 42, M.At(0, 0))

		_, err = M.GetResized(5, 5)
		var dimErr *DimensionError
		require.ErrorAs(t, err, &dimErr)
	}
	// Vertical concatenation
	{
		A := NewIndexMatrixConst(1, 2, 7)
		B := NewIndexMatrixRange(2, 2, 0, 1)
		C, err := ConcatIndexMatrices([]IndexMatrix{A, B})
		require.NoError(t, err)
		assert.Equal(t, 3, C.Rows())
		assert.Equal(t, []int{7, 7, 0, 1, 2, 3}, C.Values())

		D := NewIndexMatrix(1, 3)
		_, err = ConcatIndexMatrices([]IndexMatrix{A, D})
		assert.Error(t, err)
	}
}

func TestIndexMatrixCounting(t *testing.T) {
	M, err := NewIndexMatrixData(2, 4, []int{2, 0, 2, -1, 3, 2, 0, 5})
	require.NoError(t, err)

	assert.Equal(t, 7, M.CountPositive())
	assert.Equal(t, 3, M.CountOccurrences(2))

	// CountOccurrences(v) + RemoveValue(v).Count() == Count() for any v
	for _, v := range []int{-1, 0, 2, 3, 5, 99} {
		R := M.RemoveValue(v)
		assert.Equal(t, M.Count(), M.CountOccurrences(v)+R.Count())
	}
	R := M.RemoveValue(2)
	assert.Equal(t, 1, R.Cols())
	assert.Equal(t, []int{0, -1, 3, 0, 5}, R.Values())

	counts := M.CountAllOccurrences(5)
	assert.Equal(t, []int{2, 0, 3, 1, 0, 1}, counts)

	occ := M.FindAllOccurrences(5)
	assert.Equal(t, []int{1, 6}, occ[0])
	assert.Equal(t, []int{0, 2, 5}, occ[2])
	assert.Empty(t, occ[4])
}

func TestIndexMatrixReductions(t *testing.T) {
	M, err := NewIndexMatrixData(2, 2, []int{4, -2, 7, 1})
	require.NoError(t, err)

	sum, err := M.Sum()
	require.NoError(t, err)
	assert.Equal(t, 10, sum)

	mm, err := M.MinMax()
	require.NoError(t, err)
	assert.Equal(t, [2]int{-2, 7}, mm)

	// Reductions on an empty matrix must fail
	var empty IndexMatrix
	var emptyErr *EmptyMatrixError
	_, err = empty.Sum()
	require.ErrorAs(t, err, &emptyErr)
	_, err = empty.MinMax()
	require.ErrorAs(t, err, &emptyErr)
	_, err = empty.Max()
	require.ErrorAs(t, err, &emptyErr)
}

func TestIndexMatrixDuplication(t *testing.T) {
	M, err := NewIndexMatrixData(2, 2, []int{
		1, 2,
		3, 4,
	})
	require.NoError(t, err)

	// Block repeat: [row1; row2; row1; row2; row1; row2]
	A := M.DuplicateAllRowsTogether(3)
	assert.Equal(t, 6, A.Rows())
	assert.Equal(t, []int{1, 2, 3, 4, 1, 2, 3, 4, 1, 2, 3, 4}, A.Values())

	// Consecutive repeat: [row1; row1; row1; row2; row2; row2]
	B := M.DuplicateRowsOneByOne(3)
	assert.Equal(t, 6, B.Rows())
	assert.Equal(t, []int{1, 2, 1, 2, 1, 2, 3, 4, 3, 4, 3, 4}, B.Values())

	// The two interleavings must differ for p>1, n>1
	assert.NotEqual(t, A.Values(), B.Values())

	C := M.DuplicateAllColsTogether(2)
	assert.Equal(t, 4, C.Cols())
	assert.Equal(t, []int{1, 2, 1, 2, 3, 4, 3, 4}, C.Values())

	D := M.DuplicateColsOneByOne(2)
	assert.Equal(t, 4, D.Cols())
	assert.Equal(t, []int{1, 1, 2, 2, 3, 3, 4, 4}, D.Values())
}

func TestIndexMatrixExtraction(t *testing.T) {
	M := NewIndexMatrixRange(3, 3, 0, 1)

	A, err := M.ExtractRows(Index{2, 0})
	require.NoError(t, err)
	assert.Equal(t, []int{6, 7, 8, 0, 1, 2}, A.Values())
	for i, rowInd := range []int{2, 0} {
		for j := 0; j < 3; j++ {
			assert.Equal(t, M.At(rowInd, j), A.At(i, j))
		}
	}

	B, err := M.ExtractCols(Index{1, 1, 2})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 1, 2, 4, 4, 5, 7, 7, 8}, B.Values())

	var indexErr *IndexError
	_, err = M.ExtractRows(Index{3})
	require.ErrorAs(t, err, &indexErr)
	_, err = M.ExtractCols(Index{-1})
	require.ErrorAs(t, err, &indexErr)
}

func TestIndexMatrixSelect(t *testing.T) {
	M := NewIndexMatrixRange(2, 3, 0, 1)

	sel := []bool{true, false, true, false, false, true}
	R, err := M.Select(sel, true)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 2, 5}, R.Values())

	R, err = M.Select(sel, false)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 3, 4}, R.Values())

	_, err = M.Select([]bool{true}, true)
	var dimErr *DimensionError
	require.ErrorAs(t, err, &dimErr)
}
