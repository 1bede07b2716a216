package critical

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/extrema/internal/symbolic"
)

type entry struct {
	loc   string
	class Classification
}

func entries(r *Result) []entry {
	out := make([]entry, 0, len(r.Points))
	for _, p := range r.Points {
		out = append(out, entry{loc: p.Location.String(), class: p.Class})
	}
	return out
}

var _ = Describe("Classify", func() {
	var eng *symbolic.Engine

	parse := func(s string) symbolic.Expr {
		e, err := eng.Parse(s, "x")
		Expect(err).NotTo(HaveOccurred())
		return e
	}

	BeforeEach(func() {
		eng = symbolic.NewEngine()
	})

	Context("with polynomials", func() {
		It("finds the maximum and minimum of a cubic", func() {
			res, err := Classify(eng, parse("x**3 - 3*x**2 + 2"), "x")
			Expect(err).NotTo(HaveOccurred())
			Expect(entries(res)).To(Equal([]entry{{"0", Maxima}, {"2", Minima}}))
			Expect(res.Complete).To(BeTrue())
			Expect(res.Derivative.String()).To(Equal("3*x**2 - 6*x"))
			Expect(res.Second.String()).To(Equal("6*x - 6"))
		})

		It("reports the function value at each point", func() {
			res, err := Classify(eng, parse("x**3 - 3*x**2 + 2"), "x")
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Points[0].Y.String()).To(Equal("2"))
			Expect(res.Points[1].Y.String()).To(Equal("-2"))
		})

		It("classifies a parabola as a single minimum", func() {
			res, err := Classify(eng, parse("x**2"), "x")
			Expect(err).NotTo(HaveOccurred())
			Expect(entries(res)).To(Equal([]entry{{"0", Minima}}))
		})

		It("classifies an inflection as a saddle point", func() {
			res, err := Classify(eng, parse("x**3"), "x")
			Expect(err).NotTo(HaveOccurred())
			Expect(entries(res)).To(Equal([]entry{{"0", SaddlePoint}}))
		})

		It("keeps the saddle convention for a flat minimum", func() {
			res, err := Classify(eng, parse("x**4"), "x")
			Expect(err).NotTo(HaveOccurred())
			Expect(entries(res)).To(Equal([]entry{{"0", SaddlePoint}}))
		})

		It("returns nothing for a constant", func() {
			res, err := Classify(eng, parse("5"), "x")
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Len()).To(Equal(0))
			Expect(res.Skipped).To(BeEmpty())
		})

		It("is idempotent", func() {
			f := parse("x**4 - 5*x**2 + 4")
			first, err := Classify(eng, f, "x")
			Expect(err).NotTo(HaveOccurred())
			second, err := Classify(eng, f, "x")
			Expect(err).NotTo(HaveOccurred())
			Expect(entries(second)).To(Equal(entries(first)))
			Expect(first.Len()).To(Equal(3))
		})
	})

	Context("with transcendental functions", func() {
		It("uses the principal solutions of cos(x) = 0", func() {
			res, err := Classify(eng, parse("sin(x)"), "x")
			Expect(err).NotTo(HaveOccurred())
			Expect(entries(res)).To(Equal([]entry{{"pi/2", Maxima}, {"3*pi/2", Minima}}))
		})

		It("finds the peak of a gaussian", func() {
			res, err := Classify(eng, parse("exp(-x**2/2)"), "x")
			Expect(err).NotTo(HaveOccurred())
			Expect(entries(res)).To(Equal([]entry{{"0", Maxima}}))
			Expect(res.Points[0].Y.String()).To(Equal("1"))
		})

		It("excludes poles of a rational function", func() {
			res, err := Classify(eng, parse("x/(x**2 + 1)"), "x")
			Expect(err).NotTo(HaveOccurred())
			Expect(entries(res)).To(Equal([]entry{{"-1", Minima}, {"1", Maxima}}))
		})
	})

	Context("with non-real candidates", func() {
		It("skips them by default", func() {
			res, err := Classify(eng, parse("x**3/3 + x"), "x")
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Len()).To(Equal(0))
			Expect(res.Skipped).To(HaveLen(2))
			for _, s := range res.Skipped {
				Expect(errors.Is(s.Reason, ErrNonReal)).To(BeTrue())
			}
		})

		It("fails under the strict policy", func() {
			c := New(eng, PolicyStrict)
			_, err := c.Classify(parse("x**3/3 + x"), "x")
			Expect(err).To(MatchError(ErrIndeterminate))

			var ierr *IndeterminateError
			Expect(errors.As(err, &ierr)).To(BeTrue())
			Expect(ierr.Concavity.Kind()).To(Equal(symbolic.Complex))
		})

		It("still classifies real points under the strict policy", func() {
			c := New(eng, PolicyStrict)
			res, err := c.Classify(parse("x**3 - 3*x**2 + 2"), "x")
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Len()).To(Equal(2))
		})
	})

	Describe("Lookup", func() {
		It("finds a point by location", func() {
			res, err := Classify(eng, parse("x**3 - 3*x**2 + 2"), "x")
			Expect(err).NotTo(HaveOccurred())
			p, ok := res.Lookup(symbolic.N(2))
			Expect(ok).To(BeTrue())
			Expect(p.Class).To(Equal(Minima))
			_, ok = res.Lookup(symbolic.N(1))
			Expect(ok).To(BeFalse())
		})
	})
})

var _ = Describe("ParsePolicy", func() {
	It("accepts known names", func() {
		Expect(ParsePolicy("strict")).To(Equal(PolicyStrict))
		Expect(ParsePolicy("Skip")).To(Equal(PolicySkip))
		Expect(ParsePolicy("")).To(Equal(PolicySkip))
	})

	It("rejects others", func() {
		_, err := ParsePolicy("lenient")
		Expect(err).To(MatchError(ErrUnknownPolicy))
	})
})

var _ = Describe("Classification", func() {
	DescribeTable("String",
		func(c Classification, want string) {
			Expect(c.String()).To(Equal(want))
		},
		Entry("minima", Minima, "Minima"),
		Entry("maxima", Maxima, "Maxima"),
		Entry("saddle", SaddlePoint, "Saddle point"),
	)
})
