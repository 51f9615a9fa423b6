// Package report renders the demo fits as a chart: the dataset as points,
// one fitted line per variant, and the rows each variant held out.
package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/ezoic/splitcheck/internal/demo"
	scErrors "github.com/ezoic/splitcheck/pkg/errors"
	"github.com/ezoic/splitcheck/pkg/log"
)

// Chart size.
const (
	Width  = 8 * vg.Inch
	Height = 6 * vg.Inch
)

// Formats lists the output formats understood by WriteFit and PlotFit.
var Formats = []string{"png", "svg", "pdf", "eps", "jpg", "jpeg"}

// PlotFit renders results to path. The format follows the file extension.
func PlotFit(results []*demo.Result, path string) (err error) {
	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if !slices.Contains(Formats, format) {
		return scErrors.NewValueError("PlotFit",
			fmt.Sprintf("unsupported image format %q, want one of %s", format, strings.Join(Formats, ", ")))
	}

	f, err := os.Create(path)
	if err != nil {
		return scErrors.Wrapf(err, "failed to create %s", path)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = scErrors.Wrapf(cerr, "failed to close %s", path)
		}
	}()

	if err := WriteFit(results, f, format); err != nil {
		return err
	}

	log.GetLoggerWithName("report").Info("Plot saved", log.PathKey, path)
	return nil
}

// WriteFit renders results to w in the given format.
func WriteFit(results []*demo.Result, w io.Writer, format string) error {
	p, err := newFitPlot(results)
	if err != nil {
		return err
	}

	wt, err := p.WriterTo(Width, Height, format)
	if err != nil {
		return scErrors.Wrapf(err, "failed to render %s", format)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return scErrors.Wrap(err, "failed to write plot")
	}
	return nil
}

func newFitPlot(results []*demo.Result) (*plot.Plot, error) {
	if len(results) == 0 {
		return nil, scErrors.NewValueError("PlotFit", "no results to plot")
	}

	X, y := demo.Dataset()

	p := plot.New()
	p.Title.Text = "Linear regression with and without a train/test split"
	p.X.Label.Text = "x1"
	p.Y.Label.Text = "y"
	p.Legend.Top = true
	p.Legend.Left = true

	points, err := plotter.NewScatter(rowsXY(X, y, nil))
	if err != nil {
		return nil, scErrors.Wrap(err, "failed to create scatter plot")
	}
	points.Color = plotter.DefaultLineStyle.Color
	points.Shape = draw.CircleGlyph{}
	p.Add(points)
	p.Legend.Add("Data points", points)

	for i, res := range results {
		if res == nil || res.Model == nil {
			return nil, scErrors.NewValueError("PlotFit", fmt.Sprintf("result %d has no fitted model", i))
		}

		fitted, err := res.Model.Predict(X)
		if err != nil {
			return nil, err
		}
		line, err := plotter.NewLine(rowsXY(X, fitted, nil))
		if err != nil {
			return nil, scErrors.Wrap(err, "failed to create regression line")
		}
		line.Color = plotutil.Color(i + 1)
		line.Width = vg.Points(2)
		line.Dashes = plotutil.Dashes(i)
		p.Add(line)
		p.Legend.Add(fmt.Sprintf("Fit (%s)", res.Variant), line)

		if res.Variant != demo.VariantSplit || len(res.TestIndices) == 0 {
			continue
		}
		heldOut, err := plotter.NewScatter(rowsXY(X, y, res.TestIndices))
		if err != nil {
			return nil, scErrors.Wrap(err, "failed to create held-out scatter plot")
		}
		heldOut.Color = plotutil.Color(i + 1)
		heldOut.Shape = draw.RingGlyph{}
		heldOut.Radius = vg.Points(6)
		p.Add(heldOut)
		p.Legend.Add(fmt.Sprintf("Held out (%s)", res.Variant), heldOut)
	}

	return p, nil
}

// rowsXY pairs the first column of X with the first column of y. A nil idx
// selects every row.
func rowsXY(X mat.Matrix, y mat.Matrix, idx []int) plotter.XYs {
	if idx == nil {
		r, _ := X.Dims()
		idx = make([]int, r)
		for i := range idx {
			idx[i] = i
		}
	}
	pts := make(plotter.XYs, len(idx))
	for i, row := range idx {
		pts[i].X = X.At(row, 0)
		pts[i].Y = y.At(row, 0)
	}
	return pts
}
