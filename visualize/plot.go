// Package visualize renders training traces and fitted models with gonum/plot.
// The returned plots can be customized further before Save.
package visualize

import (
	"math"
	"path/filepath"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/YuminosukeSato/glib/core/descent"
	"github.com/YuminosukeSato/glib/core/model"
	"github.com/YuminosukeSato/glib/pkg/errors"
)

// Default image size used by Save.
const (
	DefaultWidth  = 6 * vg.Inch
	DefaultHeight = 4 * vg.Inch
)

// curvePoints is the resolution of FittedCurve's model line.
const curvePoints = 200

// LossCurve plots loss against iteration. The divergence sentinel is left
// out. With logScale the y axis is logarithmic and non-positive losses are
// dropped.
func LossCurve(trace *descent.Trace, title string, logScale bool) (*plot.Plot, error) {
	losses := trace.Losses()
	pts := make(plotter.XYs, 0, len(losses))
	for i, l := range losses {
		if !errors.IsFinite(l) || (logScale && l <= 0) {
			continue
		}
		pts = append(pts, plotter.XY{X: float64(i), Y: l})
	}
	if len(pts) == 0 {
		return nil, errors.NewEmptyDatasetError("visualize.LossCurve")
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "iteration"
	p.Y.Label.Text = "loss (MSE)"
	if logScale {
		p.Y.Scale = plot.LogScale{}
		p.Y.Tick.Marker = plot.LogTicks{Prec: -1}
	}

	line, err := plotter.NewLine(pts)
	if err != nil {
		return nil, errors.Wrap(err, "loss line")
	}
	line.LineStyle.Width = vg.Points(1.5)
	line.LineStyle.Color = plotutil.Color(0)
	p.Add(line, plotter.NewGrid())

	if trace.Diverged() {
		p.Title.Text = strings.TrimSpace(p.Title.Text + " (diverged)")
	}
	return p, nil
}

// Trajectories plots every weight, the bias and, when it moved, the exponent
// against iteration from recorded snapshots.
func Trajectories(snaps []descent.Snapshot, title string) (*plot.Plot, error) {
	if len(snaps) == 0 {
		return nil, errors.NewEmptyDatasetError("visualize.Trajectories")
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "iteration"
	p.Y.Label.Text = "value"
	p.Legend.Top = true

	series := map[string]plotter.XYs{}
	var names []string
	add := func(name string, it int, v float64) {
		if !errors.IsFinite(v) {
			return
		}
		if _, ok := series[name]; !ok {
			names = append(names, name)
		}
		series[name] = append(series[name], plotter.XY{X: float64(it), Y: v})
	}

	first := snaps[0].Exponent
	moved := false
	for _, s := range snaps {
		for j, w := range s.Weights {
			add(weightName(j, len(s.Weights)), s.Iteration, w)
		}
		add("bias", s.Iteration, s.Bias)
		if s.Exponent != first {
			moved = true
		}
	}
	if moved {
		for _, s := range snaps {
			add("exponent", s.Iteration, s.Exponent)
		}
	}

	for i, name := range names {
		line, err := plotter.NewLine(series[name])
		if err != nil {
			return nil, errors.Wrapf(err, "%s line", name)
		}
		line.LineStyle.Color = plotutil.Color(i)
		line.LineStyle.Dashes = plotutil.Dashes(i)
		p.Add(line)
		p.Legend.Add(name, line)
	}
	p.Add(plotter.NewGrid())
	return p, nil
}

func weightName(j, n int) string {
	if n == 1 {
		return "w"
	}
	return "w" + strconv.Itoa(j)
}

// FittedCurve scatters single-feature data and draws m's predictions across
// the range of x.
func FittedCurve(X, y mat.Matrix, m model.Predictor, title string) (*plot.Plot, error) {
	if X == nil || y == nil {
		return nil, errors.NewEmptyDatasetError("visualize.FittedCurve")
	}
	n, d := X.Dims()
	if n == 0 || d == 0 {
		return nil, errors.NewEmptyDatasetError("visualize.FittedCurve")
	}
	if d != 1 {
		return nil, errors.NewDimensionError("visualize.FittedCurve", 1, d, 1)
	}
	if ny, _ := y.Dims(); ny != n {
		return nil, errors.NewDimensionError("visualize.FittedCurve", n, ny, 0)
	}

	xs := mat.Col(nil, 0, X)
	data := make(plotter.XYs, n)
	for i := range data {
		data[i] = plotter.XY{X: xs[i], Y: y.At(i, 0)}
	}

	lo, hi := floats.Min(xs), floats.Max(xs)
	if lo == hi {
		lo, hi = lo-0.5, hi+0.5
	}
	grid := make([]float64, curvePoints)
	floats.Span(grid, lo, hi)
	pred, err := m.Predict(mat.NewDense(curvePoints, 1, grid))
	if err != nil {
		return nil, err
	}
	curve := make(plotter.XYs, 0, curvePoints)
	for i, x := range grid {
		if v := pred.At(i, 0); !math.IsNaN(v) && !math.IsInf(v, 0) {
			curve = append(curve, plotter.XY{X: x, Y: v})
		}
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"

	scatter, err := plotter.NewScatter(data)
	if err != nil {
		return nil, errors.Wrap(err, "data scatter")
	}
	scatter.GlyphStyle.Color = plotutil.Color(1)
	scatter.GlyphStyle.Radius = vg.Points(3)
	p.Add(scatter)
	p.Legend.Add("data", scatter)

	if len(curve) > 0 {
		line, err := plotter.NewLine(curve)
		if err != nil {
			return nil, errors.Wrap(err, "model line")
		}
		line.LineStyle.Width = vg.Points(2)
		line.LineStyle.Color = plotutil.Color(0)
		p.Add(line)
		p.Legend.Add("model", line)
	}
	p.Add(plotter.NewGrid())
	return p, nil
}

// Save writes p to path at the default size. The format follows the
// extension: .png, .svg, .pdf, .jpg, .eps or .tif.
func Save(p *plot.Plot, path string) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png", ".svg", ".pdf", ".jpg", ".jpeg", ".eps", ".tif", ".tiff":
	default:
		return errors.NewValueError("visualize.Save", "unsupported image format "+filepath.Ext(path))
	}
	if err := p.Save(DefaultWidth, DefaultHeight, path); err != nil {
		return errors.Wrapf(err, "save plot to %s", path)
	}
	return nil
}
