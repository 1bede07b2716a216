package symbolic

import (
	"math"
	"math/big"
	"sort"
	"strconv"
)

// Print precedence, loosest first.
const (
	precAdd = iota
	precMul
	precNeg
	precPow
	precAtom
)

// Expr is an immutable expression tree. Constructors (AddOf, MulOf, PowOf,
// FuncOf) return canonical forms, so two equal expressions print the same.
type Expr interface {
	String() string
	Diff(v string) Expr
	Sub(v string, value Expr) Expr
	Equal(other Expr) bool
	prec() int
}

var ratOne = big.NewRat(1, 1)

// Num is an exact rational.
type Num struct{ val *big.Rat }

func N(n int64) *Num { return &Num{val: new(big.Rat).SetInt64(n)} }

func Q(p, q int64) *Num {
	if q == 0 {
		panic("symbolic: zero denominator")
	}
	return &Num{val: big.NewRat(p, q)}
}

func NumFromRat(r *big.Rat) *Num { return &Num{val: new(big.Rat).Set(r)} }

func (n *Num) Rat() *big.Rat          { return new(big.Rat).Set(n.val) }
func (n *Num) Sign() int              { return n.val.Sign() }
func (n *Num) IsZero() bool           { return n.val.Sign() == 0 }
func (n *Num) IsOne() bool            { return n.val.Cmp(ratOne) == 0 }
func (n *Num) IsInt() bool            { return n.val.IsInt() }
func (n *Num) Diff(string) Expr       { return N(0) }
func (n *Num) Sub(string, Expr) Expr  { return n }
func (n *Num) Equal(other Expr) bool  { o, ok := other.(*Num); return ok && n.val.Cmp(o.val) == 0 }
func (n *Num) Float64() float64       { f, _ := n.val.Float64(); return f }
func (n *Num) String() string {
	if n.val.IsInt() {
		return n.val.Num().String()
	}
	return n.val.RatString()
}

func (n *Num) prec() int {
	switch {
	case n.val.Sign() < 0:
		return precNeg
	case !n.val.IsInt():
		return precMul
	}
	return precAtom
}

// Float is an approximate real, produced by closed-form solvers and by
// folding transcendental functions of approximate arguments.
type Float struct{ val float64 }

func NewFloat(f float64) *Float { return &Float{val: f} }

func (f *Float) Float64() float64      { return f.val }
func (f *Float) String() string        { return formatFloat(f.val) }
func (f *Float) Diff(string) Expr      { return N(0) }
func (f *Float) Sub(string, Expr) Expr { return f }
func (f *Float) Equal(other Expr) bool { o, ok := other.(*Float); return ok && f.val == o.val }
func (f *Float) prec() int {
	if f.val < 0 {
		return precNeg
	}
	return precAtom
}

// Const is a named constant: pi, E or the imaginary unit I.
type Const struct{ name string }

var (
	Pi = &Const{name: "pi"}
	E  = &Const{name: "E"}
	I  = &Const{name: "I"}
)

func (c *Const) String() string        { return c.name }
func (c *Const) Diff(string) Expr      { return N(0) }
func (c *Const) Sub(string, Expr) Expr { return c }
func (c *Const) Equal(other Expr) bool { o, ok := other.(*Const); return ok && c.name == o.name }
func (c *Const) prec() int             { return precAtom }

// Sym is a free variable.
type Sym struct{ name string }

func S(name string) *Sym { return &Sym{name: name} }

func (s *Sym) Name() string          { return s.name }
func (s *Sym) String() string        { return s.name }
func (s *Sym) Equal(other Expr) bool { o, ok := other.(*Sym); return ok && s.name == o.name }
func (s *Sym) prec() int             { return precAtom }

func (s *Sym) Sub(v string, value Expr) Expr {
	if s.name == v {
		return value
	}
	return s
}

func (s *Sym) Diff(v string) Expr {
	if s.name == v {
		return N(1)
	}
	return N(0)
}

// coeff is a numeric factor that stays exact until a Float joins in.
type coeff struct {
	rat   *big.Rat
	f     float64
	float bool
}

func intCoeff(n int64) coeff { return coeff{rat: big.NewRat(n, 1)} }

func coeffOf(e Expr) (coeff, bool) {
	switch t := e.(type) {
	case *Num:
		return coeff{rat: t.val}, true
	case *Float:
		return coeff{f: t.val, float: true}, true
	}
	return coeff{}, false
}

func (c coeff) float64() float64 {
	if c.float {
		return c.f
	}
	f, _ := c.rat.Float64()
	return f
}

func (c coeff) add(d coeff) coeff {
	if c.float || d.float {
		return coeff{f: c.float64() + d.float64(), float: true}
	}
	return coeff{rat: new(big.Rat).Add(c.rat, d.rat)}
}

func (c coeff) mul(d coeff) coeff {
	if c.float || d.float {
		return coeff{f: c.float64() * d.float64(), float: true}
	}
	return coeff{rat: new(big.Rat).Mul(c.rat, d.rat)}
}

func (c coeff) neg() coeff {
	if c.float {
		return coeff{f: -c.f, float: true}
	}
	return coeff{rat: new(big.Rat).Neg(c.rat)}
}

func (c coeff) sign() int {
	if c.float {
		switch {
		case c.f > 0:
			return 1
		case c.f < 0:
			return -1
		}
		return 0
	}
	return c.rat.Sign()
}

func (c coeff) isZero() bool { return c.sign() == 0 }

func (c coeff) isOne() bool {
	if c.float {
		return c.f == 1
	}
	return c.rat.Cmp(ratOne) == 0
}

func (c coeff) expr() Expr {
	if c.float {
		return NewFloat(c.f)
	}
	return NumFromRat(c.rat)
}

// splitTerm separates the numeric coefficient of a product. rest is nil for
// a bare number.
func splitTerm(e Expr) (coeff, Expr) {
	if c, ok := coeffOf(e); ok {
		return c, nil
	}
	if m, ok := e.(*Mul); ok {
		if c, ok := coeffOf(m.factors[0]); ok {
			rest := m.factors[1:]
			if len(rest) == 1 {
				return c, rest[0]
			}
			return c, &Mul{factors: rest}
		}
	}
	return intCoeff(1), e
}

func scale(c coeff, rest Expr) Expr {
	if rest == nil {
		return c.expr()
	}
	if c.isOne() {
		return rest
	}
	return MulOf(c.expr(), rest)
}

// rank orders terms of a sum by descending degree.
func rank(e Expr) float64 {
	switch t := e.(type) {
	case *Sym:
		return 1
	case *Pow:
		if c, ok := coeffOf(t.exp); ok {
			return c.float64() * rank(t.base)
		}
		return 0.5
	case *Mul:
		r := 0.0
		for _, f := range t.factors {
			r += rank(f)
		}
		return r
	case *Add:
		r := math.Inf(-1)
		for _, term := range t.terms {
			r = math.Max(r, rank(term))
		}
		return r
	case *Func:
		return 0.5
	}
	return 0
}

func sortByRank(es []Expr) {
	keys := make([]string, len(es))
	ranks := make([]float64, len(es))
	for i, e := range es {
		keys[i] = e.String()
		ranks[i] = rank(e)
	}
	idx := make([]int, len(es))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		i, j := idx[a], idx[b]
		if ranks[i] != ranks[j] {
			return ranks[i] > ranks[j]
		}
		return keys[i] < keys[j]
	})
	sorted := make([]Expr, len(es))
	for k, i := range idx {
		sorted[k] = es[i]
	}
	copy(es, sorted)
}

func wrap(e Expr, p int) string {
	if e.prec() < p {
		return "(" + e.String() + ")"
	}
	return e.String()
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', 12, 64)
}

func isZero(e Expr) bool {
	c, ok := coeffOf(e)
	return ok && c.isZero()
}

func isOne(e Expr) bool {
	c, ok := coeffOf(e)
	return ok && c.isOne()
}

// HasSym reports whether v occurs free in e.
func HasSym(e Expr, v string) bool {
	switch t := e.(type) {
	case *Sym:
		return t.name == v
	case *Add:
		for _, term := range t.terms {
			if HasSym(term, v) {
				return true
			}
		}
	case *Mul:
		for _, f := range t.factors {
			if HasSym(f, v) {
				return true
			}
		}
	case *Pow:
		return HasSym(t.base, v) || HasSym(t.exp, v)
	case *Func:
		return HasSym(t.arg, v)
	}
	return false
}

// FreeSymbols returns the names of all free variables in e.
func FreeSymbols(e Expr) map[string]struct{} {
	out := map[string]struct{}{}
	collectSymbols(e, out)
	return out
}

func collectSymbols(e Expr, out map[string]struct{}) {
	switch t := e.(type) {
	case *Sym:
		out[t.name] = struct{}{}
	case *Add:
		for _, term := range t.terms {
			collectSymbols(term, out)
		}
	case *Mul:
		for _, f := range t.factors {
			collectSymbols(f, out)
		}
	case *Pow:
		collectSymbols(t.base, out)
		collectSymbols(t.exp, out)
	case *Func:
		collectSymbols(t.arg, out)
	}
}

func equalByString(a, b Expr) bool {
	if b == nil {
		return false
	}
	return a.String() == b.String()
}
