// Package session runs the interactive extrema walkthrough: definitions,
// function entry, classification, plot and area.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/big"
	"strings"

	"github.com/san-kum/extrema/internal/config"
	"github.com/san-kum/extrema/internal/critical"
	"github.com/san-kum/extrema/internal/logging"
	"github.com/san-kum/extrema/internal/symbolic"
	"github.com/san-kum/extrema/internal/tui"
	"github.com/san-kum/extrema/internal/viz"
)

const (
	SVGWidth  = 800
	SVGHeight = 600
)

var (
	ErrNoFunction = errors.New("session: no function given")
	ErrNoBounds   = errors.New("session: integration bounds not set")
)

type Session struct {
	cfg        *config.Config
	eng        *symbolic.Engine
	classifier *critical.Classifier
	theme      viz.Theme
	in         tui.Reader
	out        io.Writer
	log        *slog.Logger
}

type Option func(*Session)

func WithLogger(l *slog.Logger) Option {
	return func(s *Session) { s.log = l }
}

// New builds a session from a validated config. in may be nil for
// sessions that never prompt.
func New(cfg *config.Config, in tui.Reader, out io.Writer, opts ...Option) (*Session, error) {
	policy, err := critical.ParsePolicy(cfg.Policy)
	if err != nil {
		return nil, err
	}
	eng := symbolic.NewEngine(
		symbolic.WithTolerance(cfg.Tolerance),
		symbolic.WithQuadraturePoints(cfg.QuadraturePoints),
	)
	s := &Session{
		cfg:        cfg,
		eng:        eng,
		classifier: critical.New(eng, policy),
		theme:      viz.GetTheme(cfg.Plot.Theme),
		in:         in,
		out:        out,
		log:        logging.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *Session) Engine() *symbolic.Engine { return s.eng }

func (s *Session) Variable() string { return s.cfg.Variable }

// Function parses the configured function.
func (s *Session) Function() (symbolic.Expr, error) {
	if s.cfg.Function == "" {
		return nil, ErrNoFunction
	}
	return s.eng.Parse(s.cfg.Function, s.cfg.Variable)
}

// Integrate integrates expr between the configured bounds.
func (s *Session) Integrate(ctx context.Context, expr symbolic.Expr) (symbolic.Integral, error) {
	if !s.fixedBounds() {
		return symbolic.Integral{}, ErrNoBounds
	}
	b, err := s.readBounds(ctx)
	if err != nil {
		return symbolic.Integral{}, err
	}
	return s.eng.Integrate(expr, s.cfg.Variable, b)
}

// Run walks through the whole session. It returns io.EOF, tui.ErrInterrupted
// or a context error when the user leaves early.
func (s *Session) Run(ctx context.Context) error {
	fmt.Fprintln(s.out, viz.DefinitionsPanel(s.cfg.Plot.Width+8))
	if _, err := s.in.ReadLine(ctx, "\nPress Enter to continue..."); err != nil {
		return err
	}

	expr, err := s.readFunction(ctx)
	if err != nil {
		return err
	}
	res, err := s.Classify(expr)
	if err != nil {
		return err
	}
	s.Report(res)
	if err := s.Plot(res); err != nil {
		if !errors.Is(err, viz.ErrEmptyFigure) {
			return err
		}
		s.warn("nothing to plot: %s has no real values on [%g, %g]", expr, s.cfg.Domain.Min, s.cfg.Domain.Max)
	}

	for {
		b, err := s.readBounds(ctx)
		if err != nil {
			return err
		}
		in, err := s.eng.Integrate(expr, s.cfg.Variable, b)
		if err != nil {
			if errors.Is(err, symbolic.ErrDivergent) || errors.Is(err, symbolic.ErrNotIntegrable) {
				fmt.Fprintln(s.out, viz.ErrorText.Render(err.Error()))
				if !s.fixedBounds() {
					continue
				}
			}
			return err
		}
		fmt.Fprintf(s.out, "The area under the curve from the given limits is: %s\n", DescribeArea(in))
		return nil
	}
}

// readFunction uses the configured function when there is one and prompts
// until a valid expression is entered otherwise.
func (s *Session) readFunction(ctx context.Context) (symbolic.Expr, error) {
	v := s.cfg.Variable
	if s.cfg.Function != "" {
		fmt.Fprintf(s.out, "Function: %s\n", s.cfg.Function)
		return s.Function()
	}
	prompt := fmt.Sprintf("Enter a function of %s (e.g., %s**3 - 3*%s**2 + 2): ", v, v, v)
	for {
		text, err := s.in.ReadLine(ctx, prompt)
		if err != nil {
			return nil, err
		}
		expr, err := s.eng.Parse(text, v)
		if err == nil {
			return expr, nil
		}
		var pe *symbolic.ParseError
		if !errors.As(err, &pe) {
			return nil, err
		}
		s.log.Debug("rejected function", "input", text, "err", err)
		fmt.Fprintln(s.out, viz.ErrorText.Render(pe.Error()))
		fmt.Fprintln(s.out, caret(pe))
	}
}

// caret points at the column of a parse error under the offending input.
func caret(pe *symbolic.ParseError) string {
	return "  " + pe.Input + "\n  " + strings.Repeat(" ", pe.Pos) + "^"
}

func (s *Session) fixedBounds() bool {
	return s.cfg.Bounds.Lower != "" && s.cfg.Bounds.Upper != ""
}

func (s *Session) readBounds(ctx context.Context) (symbolic.Bounds, error) {
	if s.fixedBounds() {
		lo, err := s.eng.ParseBound(s.cfg.Bounds.Lower)
		if err != nil {
			return symbolic.Bounds{}, err
		}
		hi, err := s.eng.ParseBound(s.cfg.Bounds.Upper)
		if err != nil {
			return symbolic.Bounds{}, err
		}
		fmt.Fprintf(s.out, "Limits of integration: %s to %s\n", lo.RatString(), hi.RatString())
		return symbolic.Bounds{Lower: lo, Upper: hi}, nil
	}
	lo, err := s.readBound(ctx, "Enter the lower limit of integration: ")
	if err != nil {
		return symbolic.Bounds{}, err
	}
	hi, err := s.readBound(ctx, "Enter the upper limit of integration: ")
	if err != nil {
		return symbolic.Bounds{}, err
	}
	return symbolic.Bounds{Lower: lo, Upper: hi}, nil
}

func (s *Session) readBound(ctx context.Context, prompt string) (*big.Rat, error) {
	for {
		text, err := s.in.ReadLine(ctx, prompt)
		if err != nil {
			return nil, err
		}
		r, err := s.eng.ParseBound(text)
		if err == nil {
			return r, nil
		}
		if !errors.Is(err, symbolic.ErrFormat) {
			return nil, err
		}
		fmt.Fprintln(s.out, viz.ErrorText.Render(err.Error()))
	}
}

func (s *Session) warn(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	s.log.Warn(msg)
	fmt.Fprintln(s.out, viz.Warning.Render("warning: "+msg))
}
