package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"math"
	"strconv"

	"github.com/san-kum/extrema/internal/critical"
	"github.com/san-kum/extrema/internal/viz"
)

type PointReport struct {
	Location  string   `json:"location"`
	X         *float64 `json:"x,omitempty"`
	Y         string   `json:"y"`
	Concavity string   `json:"concavity"`
	Class     string   `json:"class"`
}

type SkippedReport struct {
	Location string `json:"location"`
	Reason   string `json:"reason"`
}

// Report is the JSON form of a classification.
type Report struct {
	Function   string          `json:"function"`
	Derivative string          `json:"derivative"`
	Second     string          `json:"second_derivative"`
	Complete   bool            `json:"complete"`
	Points     []PointReport   `json:"points"`
	Skipped    []SkippedReport `json:"skipped,omitempty"`
}

func NewReport(res *critical.Result) Report {
	r := Report{
		Function:   res.Function.String(),
		Derivative: res.Derivative.String(),
		Second:     res.Second.String(),
		Complete:   res.Complete,
		Points:     make([]PointReport, 0, len(res.Points)),
	}
	for _, p := range res.Points {
		pr := PointReport{
			Location:  p.Location.String(),
			Y:         p.Y.String(),
			Concavity: p.Concavity.String(),
			Class:     p.Class.String(),
		}
		if x, ok := p.X.Float64(); ok {
			pr.X = &x
		}
		r.Points = append(r.Points, pr)
	}
	for _, s := range res.Skipped {
		r.Skipped = append(r.Skipped, SkippedReport{Location: s.Location.String(), Reason: s.Reason.Error()})
	}
	return r
}

func WriteJSON(w io.Writer, res *critical.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(NewReport(res))
}

// WriteCSV writes the sampled curve as x,y rows. Samples with no real value
// have an empty y.
func WriteCSV(w io.Writer, f *viz.Figure) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"x", "y"}); err != nil {
		return err
	}
	for i, x := range f.Xs {
		y := ""
		if !math.IsNaN(f.Ys[i]) {
			y = strconv.FormatFloat(f.Ys[i], 'f', 6, 64)
		}
		if err := cw.Write([]string{strconv.FormatFloat(x, 'f', 6, 64), y}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
