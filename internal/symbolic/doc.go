// Package symbolic is a small computer algebra kernel for functions of one
// variable.
//
// Expressions are immutable trees built through canonicalizing
// constructors ([AddOf], [MulOf], [PowOf], [FuncOf]) so that equal
// expressions print identically. Numbers stay exact ([Num] wraps
// math/big.Rat) until an approximate [Float] or a transcendental value
// joins in.
//
// The operations the rest of the module needs are grouped on [Engine]:
//
//   - Parse: infix text such as "x**3 - 3*x**2 + 2"
//   - Diff: symbolic differentiation
//   - Solve: roots of expr = 0 (polynomials up to degree four,
//     rational functions, exponential and trigonometric factors)
//   - Substitute and Evaluate: reduce to a tagged [Value]
//   - Integrate: a definite integral, exact when an antiderivative is
//     found and by Gauss-Legendre quadrature otherwise
//
// # Example
//
//	eng := symbolic.NewEngine()
//	f, _ := eng.Parse("x**2 - 4", "x")
//	sol := eng.Solve(f, "x") // roots -2, 2
//	area, _ := eng.Integrate(f, "x", symbolic.Bounds{Lower: big.NewRat(0, 1), Upper: big.NewRat(2, 1)})
//	fmt.Println(area.Value) // -16/3
package symbolic
