package utils

import "fmt"

// DimensionError reports a shape or count mismatch during container
// construction, resizing or selection.
type DimensionError struct {
	Op   string
	Want string
	Got  string
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("%s: dimension mismatch: want %s, got %s", e.Op, e.Want, e.Got)
}

// EmptyMatrixError reports a reduction requested on a zero-size container.
type EmptyMatrixError struct {
	Op string
}

func (e *EmptyMatrixError) Error() string {
	return fmt.Sprintf("%s: matrix is empty", e.Op)
}

// IndexError reports an out-of-range row, column or flat index.
type IndexError struct {
	Op    string
	Index int
	Max   int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("%s: index out of bounds: index = %d, max_bounds = %d", e.Op, e.Index, e.Max)
}

// ComponentRangeError reports a tensor component selector outside the
// declared (rows x cols) rank of a parameter table.
type ComponentRangeError struct {
	Row, Col   int
	Rows, Cols int
}

func (e *ComponentRangeError) Error() string {
	return fmt.Sprintf("component (%d,%d) outside declared %dx%d rank", e.Row, e.Col, e.Rows, e.Cols)
}

// UndefinedLookupError reports a parameter table queried for a
// region/harmonic combination with no defined data.
type UndefinedLookupError struct {
	Region   int
	Harmonic int
}

func (e *UndefinedLookupError) Error() string {
	return fmt.Sprintf("no parameter data defined on region %d for harmonic %d", e.Region, e.Harmonic)
}
