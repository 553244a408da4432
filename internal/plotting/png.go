package plotting

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/banshee-data/franckhertz/internal/analysis"
	"github.com/banshee-data/franckhertz/internal/extrema"
	"github.com/banshee-data/franckhertz/internal/fsutil"
	"github.com/banshee-data/franckhertz/internal/reduce"
)

// errorPoints pairs curve points with symmetric one-sigma error bars.
type errorPoints struct {
	plotter.XYs
	plotter.YErrors
}

func newErrorPoints(points reduce.Curve) errorPoints {
	ep := errorPoints{
		XYs:     make(plotter.XYs, len(points)),
		YErrors: make(plotter.YErrors, len(points)),
	}
	for i, p := range points {
		ep.XYs[i] = plotter.XY{X: p.Voltage, Y: p.Mean}
		ep.YErrors[i].Low = p.StdDev
		ep.YErrors[i].High = p.StdDev
	}
	return ep
}

// addSeries adds a scatter with error bars in one colour and returns the
// scatter for the legend.
func addSeries(p *plot.Plot, points reduce.Curve, c color.Color, radius float64) (*plotter.Scatter, error) {
	ep := newErrorPoints(points)

	bars, err := plotter.NewYErrorBars(ep)
	if err != nil {
		return nil, err
	}
	bars.Color = c
	bars.Width = vg.Points(1)
	bars.CapWidth = vg.Points(2 * radius)

	sc, err := plotter.NewScatter(ep.XYs)
	if err != nil {
		return nil, err
	}
	sc.GlyphStyle.Color = c
	sc.GlyphStyle.Radius = vg.Points(radius)
	sc.GlyphStyle.Shape = draw.CircleGlyph{}

	p.Add(bars, sc)
	return sc, nil
}

func newPlot(title string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel
	p.Legend.Top = true
	p.Legend.Left = false
	p.Legend.XOffs = -10
	p.Legend.YOffs = -10
	return p
}

// RunPlot draws one run with every point coloured by its extremum role.
func RunPlot(res *analysis.RunResult, style Style) (*plot.Plot, error) {
	p := newPlot(res.Name)

	byRole := make(map[extrema.Role]reduce.Curve)
	for i, role := range res.Roles() {
		byRole[role] = append(byRole[role], res.Curve[i])
	}

	for _, role := range []extrema.Role{extrema.Neither, extrema.Maximum, extrema.Minimum} {
		points := byRole[role]
		if len(points) == 0 {
			continue
		}
		sc, err := addSeries(p, points, roleSwatch(role).rgba, style.MarkerRadius)
		if err != nil {
			return nil, fmt.Errorf("%s points: %w", role, err)
		}
		p.Legend.Add(role.String(), sc)
	}
	return p, nil
}

// OverlayPlot draws every run in its own palette colour.
func OverlayPlot(results []*analysis.RunResult, style Style) (*plot.Plot, error) {
	colours, err := runColours(style.Palette, len(results))
	if err != nil {
		return nil, err
	}

	p := newPlot(overlayTitle)
	for i, res := range results {
		if len(res.Curve) == 0 {
			continue
		}
		sc, err := addSeries(p, res.Curve, colours[i].rgba, style.MarkerRadius)
		if err != nil {
			return nil, fmt.Errorf("run %s: %w", res.Name, err)
		}
		p.Legend.Add(res.Name, sc)
	}
	return p, nil
}

// SavePNG renders p at the style's size and writes it to path.
func SavePNG(fsys fsutil.FileSystem, p *plot.Plot, style Style, path string) error {
	wt, err := p.WriterTo(vg.Length(style.WidthIn)*vg.Inch, vg.Length(style.HeightIn)*vg.Inch, "png")
	if err != nil {
		return fmt.Errorf("render plot: %w", err)
	}

	f, err := fsys.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if _, err := wt.WriteTo(f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
