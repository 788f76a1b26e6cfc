package utils

import "fmt"

// IndexMatrix stores the ROW-MAJOR values of a dense matrix of int.
// In other words the matrix is stored as [row1 row2 row3 ...]. It is the
// bookkeeping container for element connectivity, region-id tables and
// selection masks throughout the engine.
type IndexMatrix struct {
	nrows, ncols int
	values       []int
}

// NewIndexMatrix allocates a zero-filled nr x nc matrix.
func NewIndexMatrix(nr, nc int) (R IndexMatrix) {
	R = IndexMatrix{
		nrows:  nr,
		ncols:  nc,
		values: make([]int, nr*nc),
	}
	return
}

// NewIndexMatrixConst allocates an nr x nc matrix filled with initValue.
func NewIndexMatrixConst(nr, nc, initValue int) (R IndexMatrix) {
	R = NewIndexMatrix(nr, nc)
	for i := range R.values {
		R.values[i] = initValue
	}
	return
}

// NewIndexMatrixData wraps a row-major value slice. The slice is owned by
// the returned matrix afterwards.
func NewIndexMatrixData(nr, nc int, values []int) (R IndexMatrix, err error) {
	if len(values) != nr*nc {
		err = &DimensionError{
			Op:   "NewIndexMatrixData",
			Want: fmt.Sprintf("%d values for %dx%d", nr*nc, nr, nc),
			Got:  fmt.Sprintf("%d values", len(values)),
		}
		return
	}
	R = IndexMatrix{nrows: nr, ncols: nc, values: values}
	return
}

// NewIndexMatrixRange initialises to the consecutive numbers
// [init init+step init+2*step ...] in row-major order.
func NewIndexMatrixRange(nr, nc, init, step int) (R IndexMatrix) {
	R = NewIndexMatrix(nr, nc)
	val := init
	for i := range R.values {
		R.values[i] = val
		val += step
	}
	return
}

// ConcatIndexMatrices stacks the input matrices vertically. All inputs
// must have the same column count.
func ConcatIndexMatrices(input []IndexMatrix) (R IndexMatrix, err error) {
	var (
		nrTot int
		nc    int
	)
	for i, m := range input {
		if i == 0 {
			nc = m.ncols
		} else if m.ncols != nc {
			err = &DimensionError{
				Op:   "ConcatIndexMatrices",
				Want: fmt.Sprintf("%d columns", nc),
				Got:  fmt.Sprintf("%d columns in input %d", m.ncols, i),
			}
			return
		}
		nrTot += m.nrows
	}
	R = NewIndexMatrix(nrTot, nc)
	pos := 0
	for _, m := range input {
		pos += copy(R.values[pos:], m.values)
	}
	return
}

func (m IndexMatrix) Rows() int  { return m.nrows }
func (m IndexMatrix) Cols() int  { return m.ncols }
func (m IndexMatrix) Count() int { return m.nrows * m.ncols }

// Values exposes the underlying row-major buffer without copying.
func (m IndexMatrix) Values() []int { return m.values }

func (m IndexMatrix) At(i, j int) int { return m.values[i*m.ncols+j] }

func (m IndexMatrix) Set(i, j, val int) { m.values[i*m.ncols+j] = val }

// GetResized reinterprets the same buffer under new dimensions. Values
// are NOT copied; mutating the result mutates the receiver.
func (m IndexMatrix) GetResized(nr, nc int) (R IndexMatrix, err error) {
	if nr*nc != m.Count() {
		err = &DimensionError{
			Op:   "GetResized",
			Want: fmt.Sprintf("%d elements", m.Count()),
			Got:  fmt.Sprintf("%dx%d = %d elements", nr, nc, nr*nc),
		}
		return
	}
	R = IndexMatrix{nrows: nr, ncols: nc, values: m.values}
	return
}

// CountPositive counts the positive or zero values.
func (m IndexMatrix) CountPositive() (num int) {
	for _, val := range m.values {
		if val >= 0 {
			num++
		}
	}
	return
}

// CountOccurrences counts how many times value appears.
func (m IndexMatrix) CountOccurrences(value int) (num int) {
	for _, val := range m.values {
		if val == value {
			num++
		}
	}
	return
}

// RemoveValue filters out the argument value and returns a column vector
// of the remaining values in their original order.
func (m IndexMatrix) RemoveValue(toRemove int) (R IndexMatrix) {
	kept := make([]int, 0, len(m.values))
	for _, val := range m.values {
		if val != toRemove {
			kept = append(kept, val)
		}
	}
	R = IndexMatrix{nrows: len(kept), ncols: 1, values: kept}
	if len(kept) == 0 {
		R.ncols = 0
	}
	return
}

// CountAllOccurrences returns a slice whose ith entry gives the number of
// times value i appears, for every i in [0, maxIntVal].
func (m IndexMatrix) CountAllOccurrences(maxIntVal int) (num []int) {
	num = make([]int, maxIntVal+1)
	for _, val := range m.values {
		if val >= 0 && val <= maxIntVal {
			num[val]++
		}
	}
	return
}

// FindAllOccurrences returns, for every value i in [0, maxIntVal], the
// ordered flat indexes at which it appears.
func (m IndexMatrix) FindAllOccurrences(maxIntVal int) (indexes [][]int) {
	counts := m.CountAllOccurrences(maxIntVal)
	indexes = make([][]int, maxIntVal+1)
	for i := range indexes {
		indexes[i] = make([]int, 0, counts[i])
	}
	for ind, val := range m.values {
		if val >= 0 && val <= maxIntVal {
			indexes[val] = append(indexes[val], ind)
		}
	}
	return
}

// Sum adds all values.
func (m IndexMatrix) Sum() (total int, err error) {
	if err = m.errIfEmpty("Sum"); err != nil {
		return
	}
	for _, val := range m.values {
		total += val
	}
	return
}

// MinMax returns the min and max values in out[0] and out[1] respectively.
func (m IndexMatrix) MinMax() (out [2]int, err error) {
	if err = m.errIfEmpty("MinMax"); err != nil {
		return
	}
	out[0], out[1] = m.values[0], m.values[0]
	for _, val := range m.values {
		if val < out[0] {
			out[0] = val
		}
		if val > out[1] {
			out[1] = val
		}
	}
	return
}

func (m IndexMatrix) Max() (max int, err error) {
	var out [2]int
	if out, err = m.MinMax(); err != nil {
		return
	}
	max = out[1]
	return
}

// Copy returns a full copy, all values are copied.
func (m IndexMatrix) Copy() (R IndexMatrix) {
	R = NewIndexMatrix(m.nrows, m.ncols)
	copy(R.values, m.values)
	return
}

// GetTranspose returns the transpose without modifying the receiver.
func (m IndexMatrix) GetTranspose() (R IndexMatrix) {
	R = NewIndexMatrix(m.ncols, m.nrows)
	for i := 0; i < m.nrows; i++ {
		for j := 0; j < m.ncols; j++ {
			R.values[j*m.nrows+i] = m.values[i*m.ncols+j]
		}
	}
	return
}

// DuplicateAllRowsTogether outputs, for a pxq receiver of form
// [row1; row2; ...], the (p*n)xq matrix [row1; row2; ... row1; row2; ...].
func (m IndexMatrix) DuplicateAllRowsTogether(n int) (R IndexMatrix) {
	R = NewIndexMatrix(m.nrows*n, m.ncols)
	for dup := 0; dup < n; dup++ {
		copy(R.values[dup*len(m.values):], m.values)
	}
	return
}

// DuplicateRowsOneByOne outputs, for a pxq receiver of form
// [row1; row2; ...], the (p*n)xq matrix [row1; row1; ... row2; row2; ...].
func (m IndexMatrix) DuplicateRowsOneByOne(n int) (R IndexMatrix) {
	R = NewIndexMatrix(m.nrows*n, m.ncols)
	for i := 0; i < m.nrows; i++ {
		row := m.values[i*m.ncols : (i+1)*m.ncols]
		for dup := 0; dup < n; dup++ {
			copy(R.values[(i*n+dup)*m.ncols:], row)
		}
	}
	return
}

// DuplicateAllColsTogether is the column analogue of
// DuplicateAllRowsTogether: [col1 col2 ... col1 col2 ...].
func (m IndexMatrix) DuplicateAllColsTogether(n int) (R IndexMatrix) {
	R = NewIndexMatrix(m.nrows, m.ncols*n)
	for i := 0; i < m.nrows; i++ {
		row := m.values[i*m.ncols : (i+1)*m.ncols]
		for dup := 0; dup < n; dup++ {
			copy(R.values[i*R.ncols+dup*m.ncols:], row)
		}
	}
	return
}

// DuplicateColsOneByOne is the column analogue of DuplicateRowsOneByOne:
// [col1 col1 ... col2 col2 ...].
func (m IndexMatrix) DuplicateColsOneByOne(n int) (R IndexMatrix) {
	R = NewIndexMatrix(m.nrows, m.ncols*n)
	for i := 0; i < m.nrows; i++ {
		for j := 0; j < m.ncols; j++ {
			val := m.values[i*m.ncols+j]
			for dup := 0; dup < n; dup++ {
				R.values[i*R.ncols+j*n+dup] = val
			}
		}
	}
	return
}

// ExtractRows gathers the selected rows in the order given.
func (m IndexMatrix) ExtractRows(selected Index) (R IndexMatrix, err error) {
	R = NewIndexMatrix(len(selected), m.ncols)
	for i, rowInd := range selected {
		if rowInd < 0 || rowInd > m.nrows-1 {
			err = &IndexError{Op: "ExtractRows", Index: rowInd, Max: m.nrows - 1}
			return
		}
		copy(R.values[i*m.ncols:], m.values[rowInd*m.ncols:(rowInd+1)*m.ncols])
	}
	return
}

// ExtractCols gathers the selected columns in the order given.
func (m IndexMatrix) ExtractCols(selected Index) (R IndexMatrix, err error) {
	R = NewIndexMatrix(m.nrows, len(selected))
	for j, colInd := range selected {
		if colInd < 0 || colInd > m.ncols-1 {
			err = &IndexError{Op: "ExtractCols", Index: colInd, Max: m.ncols - 1}
			return
		}
		for i := 0; i < m.nrows; i++ {
			R.values[i*R.ncols+j] = m.values[i*m.ncols+colInd]
		}
	}
	return
}

// Select returns a column vector of all flat indexes at which the
// selection equals selectIf. The selection length must equal Count.
func (m IndexMatrix) Select(sel []bool, selectIf bool) (R IndexMatrix, err error) {
	if len(sel) != m.Count() {
		err = &DimensionError{
			Op:   "Select",
			Want: fmt.Sprintf("selection of length %d", m.Count()),
			Got:  fmt.Sprintf("length %d", len(sel)),
		}
		return
	}
	picked := make([]int, 0, len(sel))
	for ind, s := range sel {
		if s == selectIf {
			picked = append(picked, ind)
		}
	}
	R = IndexMatrix{nrows: len(picked), ncols: 1, values: picked}
	if len(picked) == 0 {
		R.ncols = 0
	}
	return
}

func (m IndexMatrix) Print() {
	for i := 0; i < m.nrows; i++ {
		for j := 0; j < m.ncols; j++ {
			fmt.Printf("%d ", m.values[i*m.ncols+j])
		}
		fmt.Printf("\n")
	}
	fmt.Printf("\n")
}

func (m IndexMatrix) PrintSize() {
	fmt.Printf("size is %dx%d\n", m.nrows, m.ncols)
}

func (m IndexMatrix) errIfEmpty(op string) (err error) {
	if m.Count() == 0 {
		err = &EmptyMatrixError{Op: op}
	}
	return
}
