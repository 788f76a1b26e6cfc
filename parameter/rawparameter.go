// Package parameter implements the raw, user-supplied parameter table: a
// mapping from (region, harmonic) to a constant or spatially varying
// tensor of values. It is the data source behind parameter leaf nodes of
// the expression tree.
package parameter

import (
	"sort"

	"github.com/femtools/weakform/harmonic"
	"github.com/femtools/weakform/utils"
)

// SpatialFunc is a scalar function of the physical coordinates.
type SpatialFunc func(x, y float64) float64

type component struct {
	val float64
	fn  SpatialFunc // nil for constants
}

func (c component) eval(x, y float64) float64 {
	if c.fn != nil {
		return c.fn(x, y)
	}
	return c.val
}

// Entry is one tensor-valued definition: rows x cols components, each one
// constant or a function of space.
type Entry struct {
	rows, cols int
	comps      []component
}

func NewEntry(rows, cols int) Entry {
	return Entry{rows: rows, cols: cols, comps: make([]component, rows*cols)}
}

// ConstantScalar is the 1x1 constant entry, the common case.
func ConstantScalar(val float64) Entry {
	e := NewEntry(1, 1)
	e.comps[0] = component{val: val}
	return e
}

// ConstantTensor builds an entry from row-major constant values.
func ConstantTensor(rows, cols int, vals []float64) (e Entry, err error) {
	if len(vals) != rows*cols {
		err = &utils.DimensionError{
			Op:   "ConstantTensor",
			Want: "rows*cols values",
			Got:  "mismatched value list",
		}
		return
	}
	e = NewEntry(rows, cols)
	for i, val := range vals {
		e.comps[i] = component{val: val}
	}
	return
}

func (e Entry) SetConstant(row, col int, val float64) {
	e.comps[row*e.cols+col] = component{val: val}
}

func (e Entry) SetFunction(row, col int, fn SpatialFunc) {
	e.comps[row*e.cols+col] = component{fn: fn}
}

// isConstant reports whether every component is a plain constant.
func (e Entry) isConstant() bool {
	for _, c := range e.comps {
		if c.fn != nil {
			return false
		}
	}
	return true
}

func (e Entry) constValues() []float64 {
	vals := make([]float64, len(e.comps))
	for i, c := range e.comps {
		vals[i] = c.val
	}
	return vals
}

// RawParameter maps (region, harmonic) to an Entry of the declared
// (rows x cols) rank. Lookups on undefined combinations fail explicitly;
// there is no silent zero-fill.
type RawParameter struct {
	rows, cols int
	data       map[int]map[int]Entry // region -> harmonic -> entry
}

func New(rows, cols int) *RawParameter {
	return &RawParameter{
		rows: rows,
		cols: cols,
		data: make(map[int]map[int]Entry),
	}
}

func (p *RawParameter) Rows() int { return p.rows }
func (p *RawParameter) Cols() int { return p.cols }

// Set defines the entry on all the given regions for one harmonic,
// replacing any previous definition there.
func (p *RawParameter) Set(regions []int, harm int, e Entry) (err error) {
	if e.rows != p.rows || e.cols != p.cols {
		err = &utils.ComponentRangeError{Row: e.rows - 1, Col: e.cols - 1, Rows: p.rows, Cols: p.cols}
		return
	}
	for _, reg := range regions {
		if p.data[reg] == nil {
			p.data[reg] = make(map[int]Entry)
		}
		p.data[reg][harm] = e
	}
	return
}

// SetConstant defines a constant scalar on the DC harmonic of the given
// regions, the most common parameter definition.
func (p *RawParameter) SetConstant(regions []int, val float64) (err error) {
	e := NewEntry(p.rows, p.cols)
	for i := range e.comps {
		e.comps[i] = component{val: val}
	}
	return p.Set(regions, harmonic.DC, e)
}

func (p *RawParameter) IsDefined(region, harm int) bool {
	_, ok := p.data[region][harm]
	return ok
}

// Harmonics lists the harmonics defined on a region, in increasing order.
func (p *RawParameter) Harmonics(region int) (harms []int, err error) {
	entries, ok := p.data[region]
	if !ok || len(entries) == 0 {
		err = &utils.UndefinedLookupError{Region: region, Harmonic: harmonic.DC}
		return
	}
	for harm := range entries {
		harms = append(harms, harm)
	}
	sort.Ints(harms)
	return
}

// Value evaluates the full tensor on (region, harmonic) at one physical
// coordinate. The lookup fails with an UndefinedLookupError when the user
// never defined data there.
func (p *RawParameter) Value(region, harm int, x, y float64) (vals utils.Matrix, err error) {
	e, ok := p.data[region][harm]
	if !ok {
		err = &utils.UndefinedLookupError{Region: region, Harmonic: harm}
		return
	}
	vals = utils.NewMatrix(p.rows, p.cols)
	for i := 0; i < p.rows; i++ {
		for j := 0; j < p.cols; j++ {
			vals.Set(i, j, e.comps[i*p.cols+j].eval(x, y))
		}
	}
	return
}

// ValueComponent evaluates a single tensor component, the per-point lookup
// the parameter leaf node performs.
func (p *RawParameter) ValueComponent(region, harm, row, col int, x, y float64) (val float64, err error) {
	e, ok := p.data[region][harm]
	if !ok {
		err = &utils.UndefinedLookupError{Region: region, Harmonic: harm}
		return
	}
	val = e.comps[row*p.cols+col].eval(x, y)
	return
}

// IsHarmonicOne reports whether only the DC harmonic is defined on every
// listed region.
func (p *RawParameter) IsHarmonicOne(disjRegs []int) (isOne bool, err error) {
	for _, reg := range disjRegs {
		var harms []int
		if harms, err = p.Harmonics(reg); err != nil {
			return
		}
		if len(harms) != 1 || harms[0] != harmonic.DC {
			return false, nil
		}
	}
	return true, nil
}

// ConstantOver reports, when every listed region defines the same harmonic
// set with identical constant entries, the per-harmonic constant values of
// the selected component. Expression simplification collapses such
// parameters into constant nodes.
func (p *RawParameter) ConstantOver(disjRegs []int, row, col int) (consts map[int]float64, ok bool) {
	if len(disjRegs) == 0 {
		return nil, false
	}
	consts = make(map[int]float64)
	for i, reg := range disjRegs {
		entries, defined := p.data[reg]
		if !defined {
			return nil, false
		}
		if i > 0 && len(entries) != len(consts) {
			return nil, false
		}
		for harm, e := range entries {
			if !e.isConstant() {
				return nil, false
			}
			val := e.comps[row*p.cols+col].val
			if i == 0 {
				consts[harm] = val
			} else if prev, seen := consts[harm]; !seen || prev != val {
				return nil, false
			}
		}
	}
	return consts, true
}
