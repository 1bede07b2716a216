package symbolic

import (
	"math"
	"math/big"
	"math/cmplx"
)

// Evaluate reduces a closed expression to a Value. Free symbols make the
// result Unsolved.
func Evaluate(e Expr) Value {
	return eval(e, nil)
}

// EvaluateAt evaluates e with v bound to the approximate real x.
func EvaluateAt(e Expr, v string, x float64) Value {
	return eval(e, map[string]Value{v: ApproxValue(x)})
}

func eval(e Expr, env map[string]Value) Value {
	switch t := e.(type) {
	case *Num:
		return ExactValue(t.val)
	case *Float:
		return ApproxValue(t.val)
	case *Const:
		switch t.name {
		case Pi.name:
			return ApproxValue(math.Pi)
		case E.name:
			return ApproxValue(math.E)
		case I.name:
			return ComplexValue(1i)
		}
	case *Sym:
		if val, ok := env[t.name]; ok {
			return val
		}
	case *Add:
		sum := ExactValue(new(big.Rat))
		for _, term := range t.terms {
			sum = sum.Add(eval(term, env))
		}
		return sum
	case *Mul:
		prod := ExactValue(big.NewRat(1, 1))
		for _, f := range t.factors {
			prod = prod.Mul(eval(f, env))
		}
		return prod
	case *Pow:
		return evalPow(eval(t.base, env), eval(t.exp, env))
	case *Func:
		return evalFunc(t.name, eval(t.arg, env))
	}
	return UnsolvedValue()
}

func evalPow(b, e Value) Value {
	if b.kind == Unsolved || e.kind == Unsolved {
		return UnsolvedValue()
	}
	if b.kind == RealExact && e.kind == RealExact {
		if b.rat.Sign() == 0 {
			switch e.rat.Sign() {
			case 1:
				return ExactValue(new(big.Rat))
			case 0:
				return ExactValue(big.NewRat(1, 1))
			}
			return UnsolvedValue()
		}
		if e.rat.Num().BitLen() <= 12 && e.rat.Denom().BitLen() <= 12 {
			p, q := e.rat.Num().Int64(), e.rat.Denom().Int64()
			if q == 1 {
				return ExactValue(ratPow(b.rat, p))
			}
			if b.rat.Sign() > 0 {
				if r, ok := ratRoot(b.rat, q); ok {
					return ExactValue(ratPow(r, p))
				}
			}
		}
	}
	if b.IsReal() && e.IsReal() {
		bf, _ := b.Float64()
		ef, _ := e.Float64()
		switch {
		case bf == 0 && ef < 0:
			return UnsolvedValue()
		case bf < 0 && ef != math.Trunc(ef):
			return ComplexValue(cmplx.Pow(complex(bf, 0), complex(ef, 0)))
		}
		return ApproxValue(math.Pow(bf, ef))
	}
	bc, ec := b.Complex128(), e.Complex128()
	if bc == 0 {
		if real(ec) > 0 {
			return ApproxValue(0)
		}
		return UnsolvedValue()
	}
	return ComplexValue(cmplx.Pow(bc, ec))
}

func evalFunc(name string, a Value) Value {
	switch a.kind {
	case Unsolved:
		return UnsolvedValue()
	case Complex:
		return evalComplexFunc(name, a.c)
	case RealExact:
		switch name {
		case "abs":
			return ExactValue(new(big.Rat).Abs(a.rat))
		case "sign":
			return ExactValue(big.NewRat(int64(a.rat.Sign()), 1))
		}
		if a.rat.Sign() == 0 {
			switch name {
			case "sin", "tan", "asin", "atan", "sinh", "tanh":
				return ExactValue(new(big.Rat))
			case "cos", "cosh", "exp":
				return ExactValue(big.NewRat(1, 1))
			}
		}
		if name == "log" && a.rat.Cmp(ratOne) == 0 {
			return ExactValue(new(big.Rat))
		}
	}

	x, _ := a.Float64()
	switch name {
	case "log":
		if x == 0 {
			return UnsolvedValue()
		}
		if x < 0 {
			return ComplexValue(cmplx.Log(complex(x, 0)))
		}
	case "asin", "acos":
		if x < -1 || x > 1 {
			return evalComplexFunc(name, complex(x, 0))
		}
	}
	fn, ok := floatFuncs[name]
	if !ok {
		return UnsolvedValue()
	}
	return ApproxValue(fn(x))
}

func evalComplexFunc(name string, z complex128) Value {
	switch name {
	case "sin":
		return ComplexValue(cmplx.Sin(z))
	case "cos":
		return ComplexValue(cmplx.Cos(z))
	case "tan":
		return ComplexValue(cmplx.Tan(z))
	case "asin":
		return ComplexValue(cmplx.Asin(z))
	case "acos":
		return ComplexValue(cmplx.Acos(z))
	case "atan":
		return ComplexValue(cmplx.Atan(z))
	case "sinh":
		return ComplexValue(cmplx.Sinh(z))
	case "cosh":
		return ComplexValue(cmplx.Cosh(z))
	case "tanh":
		return ComplexValue(cmplx.Tanh(z))
	case "exp":
		return ComplexValue(cmplx.Exp(z))
	case "log":
		if z == 0 {
			return UnsolvedValue()
		}
		return ComplexValue(cmplx.Log(z))
	case "abs":
		return ApproxValue(cmplx.Abs(z))
	}
	return UnsolvedValue()
}
