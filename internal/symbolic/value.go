package symbolic

import (
	"math"
	"math/big"
	"math/cmplx"
	"strconv"
)

// Kind tags the numeric form an expression evaluated to.
type Kind int

const (
	Unsolved Kind = iota
	RealExact
	RealApproximate
	Complex
)

func (k Kind) String() string {
	switch k {
	case RealExact:
		return "exact"
	case RealApproximate:
		return "approximate"
	case Complex:
		return "complex"
	default:
		return "unsolved"
	}
}

// Value is the result of evaluating a closed expression.
// Exact rationals stay exact until an irrational operation or a Float joins in.
type Value struct {
	kind Kind
	rat  *big.Rat
	re   float64
	c    complex128
}

func ExactValue(r *big.Rat) Value {
	return Value{kind: RealExact, rat: new(big.Rat).Set(r)}
}

func ApproxValue(f float64) Value {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Value{}
	}
	return Value{kind: RealApproximate, re: f}
}

func ComplexValue(c complex128) Value {
	if cmplx.IsNaN(c) || cmplx.IsInf(c) {
		return Value{}
	}
	if imag(c) == 0 {
		return ApproxValue(real(c))
	}
	return Value{kind: Complex, c: c}
}

func UnsolvedValue() Value {
	return Value{}
}

func (v Value) Kind() Kind {
	return v.kind
}

func (v Value) IsReal() bool {
	return v.kind == RealExact || v.kind == RealApproximate
}

// Rat returns the exact rational, if there is one.
func (v Value) Rat() (*big.Rat, bool) {
	if v.kind != RealExact {
		return nil, false
	}
	return new(big.Rat).Set(v.rat), true
}

// Float64 returns the real value; ok is false for complex and unsolved values.
func (v Value) Float64() (float64, bool) {
	switch v.kind {
	case RealExact:
		f, _ := v.rat.Float64()
		return f, true
	case RealApproximate:
		return v.re, true
	}
	return math.NaN(), false
}

func (v Value) Complex128() complex128 {
	switch v.kind {
	case RealExact, RealApproximate:
		f, _ := v.Float64()
		return complex(f, 0)
	case Complex:
		return v.c
	}
	return cmplx.NaN()
}

// Sign orders a real value against zero. Approximate values within tol of
// zero count as zero.
func (v Value) Sign(tol float64) (int, error) {
	switch v.kind {
	case RealExact:
		return v.rat.Sign(), nil
	case RealApproximate:
		switch {
		case math.Abs(v.re) <= tol:
			return 0, nil
		case v.re > 0:
			return 1, nil
		default:
			return -1, nil
		}
	}
	return 0, ErrNotOrderable
}

// IsZero reports whether v is zero, within tol for approximate values.
func (v Value) IsZero(tol float64) bool {
	switch v.kind {
	case RealExact, RealApproximate:
		s, _ := v.Sign(tol)
		return s == 0
	case Complex:
		return cmplx.Abs(v.c) <= tol
	}
	return false
}

// Expr converts v back into an expression node.
func (v Value) Expr() Expr {
	switch v.kind {
	case RealExact:
		return NumFromRat(v.rat)
	case RealApproximate:
		return NewFloat(v.re)
	case Complex:
		return AddOf(NewFloat(real(v.c)), MulOf(NewFloat(imag(v.c)), I))
	}
	return nil
}

func (v Value) String() string {
	switch v.kind {
	case RealExact:
		return NumFromRat(v.rat).String()
	case RealApproximate:
		return formatFloat(v.re)
	case Complex:
		re, im := real(v.c), imag(v.c)
		if im < 0 {
			return formatFloat(re) + " - " + formatFloat(-im) + "*I"
		}
		return formatFloat(re) + " + " + formatFloat(im) + "*I"
	}
	return "undefined"
}

// Format renders real values with a fixed number of decimals.
func (v Value) Format(decimals int) string {
	if f, ok := v.Float64(); ok {
		return strconv.FormatFloat(f, 'f', decimals, 64)
	}
	return v.String()
}

func (v Value) Neg() Value {
	switch v.kind {
	case RealExact:
		return ExactValue(new(big.Rat).Neg(v.rat))
	case RealApproximate:
		return ApproxValue(-v.re)
	case Complex:
		return ComplexValue(-v.c)
	}
	return v
}

func (v Value) Add(w Value) Value {
	switch promote(v, w) {
	case RealExact:
		return ExactValue(new(big.Rat).Add(v.rat, w.rat))
	case RealApproximate:
		a, _ := v.Float64()
		b, _ := w.Float64()
		return ApproxValue(a + b)
	case Complex:
		return ComplexValue(v.Complex128() + w.Complex128())
	}
	return UnsolvedValue()
}

func (v Value) Sub(w Value) Value {
	return v.Add(w.Neg())
}

func (v Value) Mul(w Value) Value {
	switch promote(v, w) {
	case RealExact:
		return ExactValue(new(big.Rat).Mul(v.rat, w.rat))
	case RealApproximate:
		a, _ := v.Float64()
		b, _ := w.Float64()
		return ApproxValue(a * b)
	case Complex:
		return ComplexValue(v.Complex128() * w.Complex128())
	}
	return UnsolvedValue()
}

// Inv returns 1/v; zero has no inverse.
func (v Value) Inv() Value {
	switch v.kind {
	case RealExact:
		if v.rat.Sign() == 0 {
			return UnsolvedValue()
		}
		return ExactValue(new(big.Rat).Inv(v.rat))
	case RealApproximate:
		if v.re == 0 {
			return UnsolvedValue()
		}
		return ApproxValue(1 / v.re)
	case Complex:
		return ComplexValue(1 / v.c)
	}
	return v
}

func promote(v, w Value) Kind {
	if v.kind == Unsolved || w.kind == Unsolved {
		return Unsolved
	}
	if v.kind == Complex || w.kind == Complex {
		return Complex
	}
	if v.kind == RealApproximate || w.kind == RealApproximate {
		return RealApproximate
	}
	return RealExact
}
