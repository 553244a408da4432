package plotting

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/banshee-data/franckhertz/internal/analysis"
	"github.com/banshee-data/franckhertz/internal/extrema"
	"github.com/banshee-data/franckhertz/internal/reduce"
)

// scatterData carries the standard deviation as a third value so the
// tooltip shows it next to the point.
func scatterData(points reduce.Curve) []opts.ScatterData {
	data := make([]opts.ScatterData, 0, len(points))
	for _, p := range points {
		data = append(data, opts.ScatterData{Value: []interface{}{p.Voltage, p.Mean, p.StdDev}})
	}
	return data
}

func newScatter(title, subtitle string, style Style) *charts.Scatter {
	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: title,
			Width:     fmt.Sprintf("%dpx", int(style.WidthIn*110)),
			Height:    fmt.Sprintf("%dpx", int(style.HeightIn*110)),
		}),
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: subtitle}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Right: "10"}),
		charts.WithXAxisOpts(opts.XAxis{Type: "value", Name: xLabel, NameLocation: "middle", NameGap: 25, Scale: opts.Bool(true)}),
		charts.WithYAxisOpts(opts.YAxis{Type: "value", Name: yLabel, NameLocation: "middle", NameGap: 40, Scale: opts.Bool(true)}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "inside", XAxisIndex: []int{0}}),
	)
	return scatter
}

// RunChart renders one run as an HTML page with points coloured by role.
func RunChart(w io.Writer, res *analysis.RunResult, style Style) error {
	subtitle := fmt.Sprintf("samples=%d voltages=%d maxima=%d minima=%d",
		res.Samples, len(res.Curve), len(res.Extrema.Maxima), len(res.Extrema.Minima))
	scatter := newScatter(res.Name, subtitle, style)

	byRole := make(map[extrema.Role]reduce.Curve)
	for i, role := range res.Roles() {
		byRole[role] = append(byRole[role], res.Curve[i])
	}
	for _, role := range []extrema.Role{extrema.Neither, extrema.Maximum, extrema.Minimum} {
		scatter.AddSeries(role.String(), scatterData(byRole[role]),
			charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: int(style.MarkerRadius * 3)}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: roleSwatch(role).hex}))
	}

	if err := scatter.Render(w); err != nil {
		return fmt.Errorf("render run chart: %w", err)
	}
	return nil
}

// OverlayChart renders every run in its own palette colour.
func OverlayChart(w io.Writer, results []*analysis.RunResult, style Style) error {
	colours, err := runColours(style.Palette, len(results))
	if err != nil {
		return err
	}

	scatter := newScatter(overlayTitle, fmt.Sprintf("runs=%d", len(results)), style)
	for i, res := range results {
		scatter.AddSeries(res.Name, scatterData(res.Curve),
			charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: int(style.MarkerRadius * 3)}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: colours[i].hex}))
	}

	if err := scatter.Render(w); err != nil {
		return fmt.Errorf("render overlay chart: %w", err)
	}
	return nil
}
