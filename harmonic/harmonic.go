// Package harmonic provides the bookkeeping for the multiharmonic
// decomposition of time-periodic fields. Harmonic 1 is the constant (DC)
// component, harmonic 2n is sin(n*2*pi*f0*t) and harmonic 2n+1 is
// cos(n*2*pi*f0*t).
package harmonic

import (
	"fmt"
	"math"
	"sort"
)

const DC = 1

// Sin returns the harmonic number of sin(n*2*pi*f0*t), n >= 1.
func Sin(n int) int { return 2 * n }

// Cos returns the harmonic number of cos(n*2*pi*f0*t), n >= 1.
func Cos(n int) int { return 2*n + 1 }

func IsSine(harm int) bool   { return harm != DC && harm%2 == 0 }
func IsCosine(harm int) bool { return harm != DC && harm%2 == 1 }

// FundamentalMultiple returns n for sin/cos(n*2*pi*f0*t), 0 for DC.
func FundamentalMultiple(harm int) int {
	if harm == DC {
		return 0
	}
	return harm / 2
}

// TimeWeight evaluates the sine/cosine basis of a harmonic at time t for
// fundamental frequency f0. The DC harmonic weighs 1 at all times.
func TimeWeight(harm int, f0, t float64) float64 {
	var (
		n     = FundamentalMultiple(harm)
		phase = 2.0 * math.Pi * float64(n) * f0 * t
	)
	switch {
	case harm == DC:
		return 1.0
	case IsSine(harm):
		return math.Sin(phase)
	default:
		return math.Cos(phase)
	}
}

// Term is one harmonic with a scalar coefficient.
type Term struct {
	Harmonic int
	Coef     float64
}

// Product expands the product of two harmonics into a sum of harmonics
// using the trigonometric product-to-sum identities. sin(0) terms vanish
// and cos(0) folds into the DC harmonic.
func Product(h1, h2 int) (terms []Term) {
	if h1 == DC {
		return []Term{{Harmonic: h2, Coef: 1.0}}
	}
	if h2 == DC {
		return []Term{{Harmonic: h1, Coef: 1.0}}
	}
	var (
		a    = FundamentalMultiple(h1)
		b    = FundamentalMultiple(h2)
		sum  = a + b
		diff = a - b
	)
	switch {
	case IsSine(h1) && IsSine(h2):
		// sin(a)sin(b) = cos(a-b)/2 - cos(a+b)/2
		terms = appendCos(terms, diff, 0.5)
		terms = appendCos(terms, sum, -0.5)
	case IsCosine(h1) && IsCosine(h2):
		// cos(a)cos(b) = cos(a-b)/2 + cos(a+b)/2
		terms = appendCos(terms, diff, 0.5)
		terms = appendCos(terms, sum, 0.5)
	case IsSine(h1):
		// sin(a)cos(b) = sin(a+b)/2 + sin(a-b)/2
		terms = appendSin(terms, sum, 0.5)
		terms = appendSin(terms, diff, 0.5)
	default:
		// cos(a)sin(b) = sin(a+b)/2 - sin(a-b)/2
		terms = appendSin(terms, sum, 0.5)
		terms = appendSin(terms, diff, -0.5)
	}
	return
}

func appendCos(terms []Term, n int, coef float64) []Term {
	if n < 0 {
		n = -n // cos is even
	}
	if n == 0 {
		return append(terms, Term{Harmonic: DC, Coef: coef})
	}
	return append(terms, Term{Harmonic: Cos(n), Coef: coef})
}

func appendSin(terms []Term, n int, coef float64) []Term {
	if n == 0 {
		return terms // sin(0) vanishes
	}
	coef2 := coef
	if n < 0 { // sin is odd
		n = -n
		coef2 = -coef
	}
	return append(terms, Term{Harmonic: Sin(n), Coef: coef2})
}

// TimeDerivative maps a harmonic to the harmonic of its time derivative
// and the n*2*pi*f0 scaling. The DC harmonic derives to nothing.
func TimeDerivative(harm int, f0 float64) (out Term, ok bool) {
	var (
		n     = FundamentalMultiple(harm)
		omega = 2.0 * math.Pi * float64(n) * f0
	)
	switch {
	case harm == DC:
		return Term{}, false
	case IsSine(harm):
		// d/dt sin(n w t) = n w cos(n w t)
		return Term{Harmonic: Cos(n), Coef: omega}, true
	default:
		// d/dt cos(n w t) = -n w sin(n w t)
		return Term{Harmonic: Sin(n), Coef: -omega}, true
	}
}

// Sorted returns the harmonic numbers of a per-harmonic map in increasing
// order, the canonical iteration order for deterministic output.
func Sorted[V any](vals map[int]V) (harms []int) {
	harms = make([]int, 0, len(vals))
	for harm := range vals {
		harms = append(harms, harm)
	}
	sort.Ints(harms)
	return
}

// Name prints a harmonic in the sin/cos notation used by diagnostics.
func Name(harm int) string {
	if harm == DC {
		return "1"
	}
	if IsSine(harm) {
		return fmt.Sprintf("sin%d", FundamentalMultiple(harm))
	}
	return fmt.Sprintf("cos%d", FundamentalMultiple(harm))
}
