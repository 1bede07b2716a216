package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"math"
	"testing"

	"github.com/san-kum/extrema/internal/critical"
	"github.com/san-kum/extrema/internal/symbolic"
)

func TestWriteJSON(t *testing.T) {
	eng := symbolic.NewEngine()
	e, err := eng.Parse("x**3 - 3*x**2 + 2", "x")
	if err != nil {
		t.Fatal(err)
	}
	res, err := critical.Classify(eng, e, "x")
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := WriteJSON(&buf, res); err != nil {
		t.Fatal(err)
	}
	var got Report
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if got.Function != "x**3 - 3*x**2 + 2" || !got.Complete {
		t.Errorf("unexpected header %+v", got)
	}
	if len(got.Points) != 2 {
		t.Fatalf("expected 2 points, got %d", len(got.Points))
	}
	if got.Points[0].Class != "Maxima" || got.Points[0].Y != "2" {
		t.Errorf("first point: got %+v", got.Points[0])
	}
	if got.Points[1].X == nil || *got.Points[1].X != 2 {
		t.Errorf("second point x: got %v", got.Points[1].X)
	}
}

func TestWriteCSV(t *testing.T) {
	f := cubicFigure()
	f.Ys[1] = math.NaN()

	var buf bytes.Buffer
	if err := WriteCSV(&buf, f); err != nil {
		t.Fatal(err)
	}
	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != len(f.Xs)+1 {
		t.Fatalf("expected %d rows, got %d", len(f.Xs)+1, len(rows))
	}
	if rows[0][0] != "x" || rows[0][1] != "y" {
		t.Errorf("header: got %v", rows[0])
	}
	if rows[1][0] != "-1.000000" || rows[1][1] != "-2.000000" {
		t.Errorf("first row: got %v", rows[1])
	}
	if rows[2][1] != "" {
		t.Errorf("NaN sample should be empty, got %q", rows[2][1])
	}
}
