package expression

import (
	"fmt"
	"strings"

	"github.com/femtools/weakform/harmonic"
	"github.com/femtools/weakform/mesh"
	"github.com/femtools/weakform/utils"
)

// Add sums any number of terms harmonic by harmonic. A harmonic missing
// from one term is a structural zero there.
type Add struct {
	terms []Operation
}

func NewAdd(terms ...Operation) *Add { return &Add{terms: terms} }

// Sub is a - b.
func Sub(a, b Operation) *Add { return NewAdd(a, Scale(-1.0, b)) }

// Scale multiplies an expression by a plain number.
func Scale(coef float64, op Operation) Operation {
	return NewMul(NewConstant(coef), op)
}

func (op *Add) Interpolate(eb *mesh.ElementBatch, refCoords []float64, deform mesh.Deformation) (out HarmMatrices, err error) {
	out = make(HarmMatrices)
	for _, term := range op.terms {
		var harms HarmMatrices
		if harms, err = term.Interpolate(eb, refCoords, deform); err != nil {
			return nil, err
		}
		for harm, vals := range harms {
			out.accumulate(harm, 1.0, vals)
		}
	}
	return
}

func (op *Add) MultiharmonicInterpolate(numTimeEvals int, eb *mesh.ElementBatch, refCoords []float64, deform mesh.Deformation) (out []utils.Matrix, err error) {
	var harms HarmMatrices
	if harms, err = op.Interpolate(eb, refCoords, deform); err != nil {
		return
	}
	return reconstructInTime(harms, numTimeEvals, eb, refCoords)
}

// Simplify recurses, then folds terms that reduced to constants on the
// same harmonic into one constant per harmonic.
func (op *Add) Simplify(disjRegs []int) Operation {
	var (
		folded   = make(map[int]float64)
		nonConst []Operation
	)
	for _, term := range op.terms {
		simplified := term.Simplify(disjRegs)
		if c, ok := simplified.(*Constant); ok {
			folded[c.harm] += c.val
			continue
		}
		// A simplified nested Add flattens into this one
		if a, ok := simplified.(*Add); ok {
			for _, sub := range a.terms {
				if c, isC := sub.(*Constant); isC {
					folded[c.harm] += c.val
				} else {
					nonConst = append(nonConst, sub)
				}
			}
			continue
		}
		nonConst = append(nonConst, simplified)
	}
	terms := make([]Operation, 0, len(folded)+len(nonConst))
	for _, harm := range harmonic.Sorted(folded) {
		terms = append(terms, NewHarmonicConstant(folded[harm], harm))
	}
	terms = append(terms, nonConst...)
	if len(terms) == 1 {
		return terms[0]
	}
	return NewAdd(terms...)
}

func (op *Add) IsHarmonicOne(disjRegs []int) (isOne bool, err error) {
	for _, term := range op.terms {
		if isOne, err = term.IsHarmonicOne(disjRegs); err != nil || !isOne {
			return
		}
	}
	return true, nil
}

func (op *Add) IsValueOrientationDependent(disjRegs []int) bool {
	for _, term := range op.terms {
		if term.IsValueOrientationDependent(disjRegs) {
			return true
		}
	}
	return false
}

func (op *Add) Copy() Operation {
	terms := make([]Operation, len(op.terms))
	copy(terms, op.terms) // sub-trees stay shared
	return &Add{terms: terms}
}

func (op *Add) String() string {
	parts := make([]string, len(op.terms))
	for i, term := range op.terms {
		parts[i] = term.String()
	}
	return "(" + strings.Join(parts, " + ") + ")"
}

// Mul multiplies two expressions. Products of harmonics expand through the
// trigonometric product-to-sum identities, so two multiharmonic operands
// populate sum and difference harmonics.
type Mul struct {
	a, b Operation
}

func NewMul(a, b Operation) *Mul { return &Mul{a: a, b: b} }

func (op *Mul) Interpolate(eb *mesh.ElementBatch, refCoords []float64, deform mesh.Deformation) (out HarmMatrices, err error) {
	var harmsA, harmsB HarmMatrices
	if harmsA, err = op.a.Interpolate(eb, refCoords, deform); err != nil {
		return
	}
	if harmsB, err = op.b.Interpolate(eb, refCoords, deform); err != nil {
		return
	}
	out = make(HarmMatrices)
	for hA, valsA := range harmsA {
		for hB, valsB := range harmsB {
			prod := valsA.Copy()
			prod.ElMul(valsB)
			for _, term := range harmonic.Product(hA, hB) {
				out.accumulate(term.Harmonic, term.Coef, prod)
			}
		}
	}
	return
}

func (op *Mul) MultiharmonicInterpolate(numTimeEvals int, eb *mesh.ElementBatch, refCoords []float64, deform mesh.Deformation) (out []utils.Matrix, err error) {
	var harms HarmMatrices
	if harms, err = op.Interpolate(eb, refCoords, deform); err != nil {
		return
	}
	return reconstructInTime(harms, numTimeEvals, eb, refCoords)
}

// Simplify recurses and folds a product of two constants.
func (op *Mul) Simplify(disjRegs []int) Operation {
	var (
		a = op.a.Simplify(disjRegs)
		b = op.b.Simplify(disjRegs)
	)
	cA, okA := a.(*Constant)
	cB, okB := b.(*Constant)
	if okA && okB {
		terms := harmonic.Product(cA.harm, cB.harm)
		if len(terms) == 1 {
			return NewHarmonicConstant(cA.val*cB.val*terms[0].Coef, terms[0].Harmonic)
		}
		folded := make([]Operation, len(terms))
		for i, term := range terms {
			folded[i] = NewHarmonicConstant(cA.val*cB.val*term.Coef, term.Harmonic)
		}
		return NewAdd(folded...)
	}
	return &Mul{a: a, b: b}
}

func (op *Mul) IsHarmonicOne(disjRegs []int) (isOne bool, err error) {
	// A product is static iff both factors are: any sin/cos pair leaks
	// into sum/difference harmonics.
	var oneA, oneB bool
	if oneA, err = op.a.IsHarmonicOne(disjRegs); err != nil {
		return
	}
	if oneB, err = op.b.IsHarmonicOne(disjRegs); err != nil {
		return
	}
	return oneA && oneB, nil
}

func (op *Mul) IsValueOrientationDependent(disjRegs []int) bool {
	return op.a.IsValueOrientationDependent(disjRegs) || op.b.IsValueOrientationDependent(disjRegs)
}

func (op *Mul) Copy() Operation { return &Mul{a: op.a, b: op.b} }

func (op *Mul) String() string {
	return fmt.Sprintf("(%s * %s)", op.a.String(), op.b.String())
}

// Pow raises a static expression to an integer power elementwise. Powers
// of multiharmonic expressions must be written as explicit products so the
// harmonic expansion stays visible.
type Pow struct {
	child Operation
	p     int
}

func NewPow(child Operation, p int) *Pow { return &Pow{child: child, p: p} }

func (op *Pow) Interpolate(eb *mesh.ElementBatch, refCoords []float64, deform mesh.Deformation) (out HarmMatrices, err error) {
	var childHarms HarmMatrices
	if childHarms, err = op.child.Interpolate(eb, refCoords, deform); err != nil {
		return
	}
	for harm := range childHarms {
		if harm != harmonic.DC {
			err = fmt.Errorf("cannot raise a multiharmonic expression to a power, expand it as a product instead")
			return nil, err
		}
	}
	out = make(HarmMatrices, 1)
	if vals, ok := childHarms[harmonic.DC]; ok {
		powed := vals.Copy()
		powed.Apply(func(v float64) float64 { return utils.POW(v, op.p) })
		out[harmonic.DC] = powed
	}
	return
}

func (op *Pow) MultiharmonicInterpolate(numTimeEvals int, eb *mesh.ElementBatch, refCoords []float64, deform mesh.Deformation) (out []utils.Matrix, err error) {
	var harms HarmMatrices
	if harms, err = op.Interpolate(eb, refCoords, deform); err != nil {
		return
	}
	return reconstructInTime(harms, numTimeEvals, eb, refCoords)
}

func (op *Pow) Simplify(disjRegs []int) Operation {
	child := op.child.Simplify(disjRegs)
	if c, ok := child.(*Constant); ok && c.harm == harmonic.DC {
		return NewConstant(utils.POW(c.val, op.p))
	}
	return &Pow{child: child, p: op.p}
}

func (op *Pow) IsHarmonicOne(disjRegs []int) (bool, error) {
	return op.child.IsHarmonicOne(disjRegs)
}

func (op *Pow) IsValueOrientationDependent(disjRegs []int) bool {
	return op.child.IsValueOrientationDependent(disjRegs)
}

func (op *Pow) Copy() Operation { return &Pow{child: op.child, p: op.p} }

func (op *Pow) String() string {
	return fmt.Sprintf("(%s)^%d", op.child.String(), op.p)
}
