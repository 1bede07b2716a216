package symbolic

import (
	"math"
	"math/big"
)

// Func is a named elementary function applied to one argument.
type Func struct {
	name string
	arg  Expr
}

var floatFuncs = map[string]func(float64) float64{
	"sin":  math.Sin,
	"cos":  math.Cos,
	"tan":  math.Tan,
	"asin": math.Asin,
	"acos": math.Acos,
	"atan": math.Atan,
	"sinh": math.Sinh,
	"cosh": math.Cosh,
	"tanh": math.Tanh,
	"exp":  math.Exp,
	"log":  math.Log,
	"abs":  math.Abs,
	"sign": func(x float64) float64 {
		switch {
		case x > 0:
			return 1
		case x < 0:
			return -1
		}
		return 0
	},
}

// FuncOf applies the named function, folding known exact values.
func FuncOf(name string, arg Expr) Expr {
	if f, ok := arg.(*Float); ok {
		if fn, ok := floatFuncs[name]; ok {
			r := fn(f.val)
			if !math.IsNaN(r) && !math.IsInf(r, 0) {
				return NewFloat(r)
			}
		}
	}

	switch name {
	case "sin", "cos", "tan":
		if k, ok := piMultiple(arg); ok {
			if r := trigAtPi(name, k); r != nil {
				return r
			}
		}
	case "sinh", "tanh", "asin", "atan":
		if isZero(arg) {
			return N(0)
		}
	case "cosh":
		if isZero(arg) {
			return N(1)
		}
	case "acos":
		if isOne(arg) {
			return N(0)
		}
	case "exp":
		if isZero(arg) {
			return N(1)
		}
		if f, ok := arg.(*Func); ok && f.name == "log" {
			return f.arg
		}
	case "log":
		if isOne(arg) {
			return N(0)
		}
		if c, ok := arg.(*Const); ok && c.name == E.name {
			return N(1)
		}
		if f, ok := arg.(*Func); ok && f.name == "exp" {
			return f.arg
		}
	case "abs":
		if n, ok := arg.(*Num); ok {
			return NumFromRat(new(big.Rat).Abs(n.val))
		}
		if c, ok := arg.(*Const); ok && c.name != I.name {
			return c
		}
		if c, rest := splitTerm(arg); rest != nil && c.sign() < 0 {
			return FuncOf(name, scale(c.neg(), rest))
		}
	case "sign":
		if n, ok := arg.(*Num); ok {
			return N(int64(n.Sign()))
		}
		if c, ok := arg.(*Const); ok && c.name != I.name {
			return N(1)
		}
	}
	return &Func{name: name, arg: arg}
}

func SinOf(u Expr) Expr  { return FuncOf("sin", u) }
func CosOf(u Expr) Expr  { return FuncOf("cos", u) }
func TanOf(u Expr) Expr  { return FuncOf("tan", u) }
func AsinOf(u Expr) Expr { return FuncOf("asin", u) }
func AcosOf(u Expr) Expr { return FuncOf("acos", u) }
func AtanOf(u Expr) Expr { return FuncOf("atan", u) }
func SinhOf(u Expr) Expr { return FuncOf("sinh", u) }
func CoshOf(u Expr) Expr { return FuncOf("cosh", u) }
func TanhOf(u Expr) Expr { return FuncOf("tanh", u) }
func ExpOf(u Expr) Expr  { return FuncOf("exp", u) }
func LogOf(u Expr) Expr  { return FuncOf("log", u) }
func AbsOf(u Expr) Expr  { return FuncOf("abs", u) }
func SignOf(u Expr) Expr { return FuncOf("sign", u) }

func (f *Func) Name() string { return f.name }
func (f *Func) Arg() Expr    { return f.arg }

func (f *Func) String() string        { return f.name + "(" + f.arg.String() + ")" }
func (f *Func) Equal(other Expr) bool { return equalByString(f, other) }
func (f *Func) prec() int             { return precAtom }

func (f *Func) Sub(v string, value Expr) Expr {
	return FuncOf(f.name, f.arg.Sub(v, value))
}

func (f *Func) Diff(v string) Expr {
	du := f.arg.Diff(v)
	if isZero(du) {
		return N(0)
	}
	u := f.arg
	var outer Expr
	switch f.name {
	case "sin":
		outer = CosOf(u)
	case "cos":
		outer = Neg(SinOf(u))
	case "tan":
		outer = PowOf(CosOf(u), N(-2))
	case "asin":
		outer = PowOf(SubOf(N(1), PowOf(u, N(2))), Q(-1, 2))
	case "acos":
		outer = Neg(PowOf(SubOf(N(1), PowOf(u, N(2))), Q(-1, 2)))
	case "atan":
		outer = PowOf(AddOf(N(1), PowOf(u, N(2))), N(-1))
	case "sinh":
		outer = CoshOf(u)
	case "cosh":
		outer = SinhOf(u)
	case "tanh":
		outer = PowOf(CoshOf(u), N(-2))
	case "exp":
		outer = f
	case "log":
		outer = PowOf(u, N(-1))
	case "abs":
		outer = SignOf(u)
	case "sign":
		return N(0)
	default:
		return N(0)
	}
	return MulOf(outer, du)
}

// piMultiple reports k when e is k*pi for rational k.
func piMultiple(e Expr) (*big.Rat, bool) {
	switch t := e.(type) {
	case *Num:
		if t.IsZero() {
			return new(big.Rat), true
		}
	case *Const:
		if t.name == Pi.name {
			return big.NewRat(1, 1), true
		}
	case *Mul:
		if len(t.factors) == 2 {
			n, ok := t.factors[0].(*Num)
			c, cok := t.factors[1].(*Const)
			if ok && cok && c.name == Pi.name {
				return n.Rat(), true
			}
		}
	}
	return nil, false
}

// trigAtPi folds sin, cos and tan at quarter turns.
func trigAtPi(name string, k *big.Rat) Expr {
	// reduce k into [0, 2)
	two := big.NewRat(2, 1)
	q := new(big.Rat).Quo(k, two)
	fl := new(big.Int).Div(q.Num(), q.Denom())
	r := new(big.Rat).Sub(k, new(big.Rat).Mul(two, new(big.Rat).SetInt(fl)))

	var quarter int
	switch {
	case r.Sign() == 0:
		quarter = 0
	case r.Cmp(big.NewRat(1, 2)) == 0:
		quarter = 1
	case r.Cmp(big.NewRat(1, 1)) == 0:
		quarter = 2
	case r.Cmp(big.NewRat(3, 2)) == 0:
		quarter = 3
	default:
		return nil
	}
	sin := [4]int64{0, 1, 0, -1}
	cos := [4]int64{1, 0, -1, 0}
	switch name {
	case "sin":
		return N(sin[quarter])
	case "cos":
		return N(cos[quarter])
	case "tan":
		if quarter%2 == 0 {
			return N(0)
		}
	}
	return nil
}
