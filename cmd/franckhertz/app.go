package main

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"gonum.org/v1/plot"

	"github.com/banshee-data/franckhertz/internal/analysis"
	"github.com/banshee-data/franckhertz/internal/capture"
	"github.com/banshee-data/franckhertz/internal/config"
	"github.com/banshee-data/franckhertz/internal/fsutil"
	"github.com/banshee-data/franckhertz/internal/monitoring"
	"github.com/banshee-data/franckhertz/internal/plotting"
	"github.com/banshee-data/franckhertz/internal/report"
	"github.com/banshee-data/franckhertz/internal/security"
	"github.com/banshee-data/franckhertz/internal/store"
)

const directoryPrompt = "Directory name (don't end the string on a slash): "

// overlayName is the base name of the overlay chart files.
const overlayName = "all_runs"

type options struct {
	dir     string // experiment folder, overlay mode
	run     string // single run folder
	outDir  string
	xlsx    string
	dbPath  string
	capture capture.Options
	report  report.Options
	style   plotting.Style
}

// newOptions fills options from a loaded configuration.
func newOptions(cfg *config.Config) options {
	ropts := report.DefaultOptions()
	ropts.Decimals = cfg.GetDecimals()
	return options{
		outDir: cfg.GetOutputDir(),
		capture: capture.Options{
			HeaderTokens: cfg.GetHeaderTokens(),
			FilesPerRun:  cfg.GetFilesPerRun(),
		},
		report: ropts,
		style: plotting.Style{
			WidthIn:      cfg.GetPlotWidthIn(),
			HeightIn:     cfg.GetPlotHeightIn(),
			MarkerRadius: cfg.GetMarkerRadiusPt(),
			Palette:      cfg.GetPalette(),
		},
	}
}

// promptDirectory asks for the experiment folder on in.
func promptDirectory(in io.Reader, out io.Writer) (string, error) {
	fmt.Fprint(out, directoryPrompt)
	sc := bufio.NewScanner(in)
	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return "", fmt.Errorf("read directory name: %w", err)
		}
		return "", errors.New("no directory name given")
	}
	dir := strings.TrimSpace(sc.Text())
	if dir == "" {
		return "", errors.New("no directory name given")
	}
	return dir, nil
}

// execute runs the selected mode and returns the HTML chart it wrote.
func execute(o options, fsys fsutil.FileSystem, out io.Writer) (string, error) {
	var (
		results []*analysis.RunResult
		chart   string
		err     error
	)
	if o.run != "" {
		results, chart, err = singleRun(o, fsys, out)
	} else {
		results, chart, err = overlay(o, fsys)
	}
	if err != nil {
		return "", err
	}

	if o.xlsx != "" {
		if err := saveWorkbook(fsys, o.xlsx, results); err != nil {
			return "", err
		}
		monitoring.Logf("wrote workbook %s", o.xlsx)
	}
	if o.dbPath != "" {
		if err := storeResults(o.dbPath, results); err != nil {
			return "", err
		}
	}
	return chart, nil
}

func singleRun(o options, fsys fsutil.FileSystem, out io.Writer) ([]*analysis.RunResult, string, error) {
	run, err := capture.ReadRun(fsys, o.run, o.capture)
	if err != nil {
		return nil, "", err
	}
	res, err := analysis.Analyze(run)
	if err != nil {
		return nil, "", err
	}

	fmt.Fprintln(out, report.Summary(res.Extrema, o.report))
	fmt.Fprintln(out)
	table, err := report.Table(res.Extrema, o.report)
	if err != nil {
		monitoring.Logf("no table for %s: %v", res.Name, err)
	} else {
		fmt.Fprintln(out, table)
	}

	if err := fsys.MkdirAll(o.outDir, 0o755); err != nil {
		return nil, "", fmt.Errorf("create output dir: %w", err)
	}

	p, err := plotting.RunPlot(res, o.style)
	if err != nil {
		return nil, "", err
	}
	var buf bytes.Buffer
	if err := plotting.RunChart(&buf, res, o.style); err != nil {
		return nil, "", err
	}
	chart, err := saveCharts(fsys, o, res.Name, p, buf.Bytes())
	if err != nil {
		return nil, "", err
	}
	return []*analysis.RunResult{res}, chart, nil
}

func overlay(o options, fsys fsutil.FileSystem) ([]*analysis.RunResult, string, error) {
	runs, err := capture.ReadExperiment(fsys, o.dir, o.capture)
	if err != nil {
		return nil, "", err
	}
	results, err := analysis.AnalyzeAll(runs)
	if err != nil {
		return nil, "", err
	}
	for _, res := range results {
		monitoring.Logf("run %s: %d samples, %d voltages, %d maxima, %d minima",
			res.Name, res.Samples, len(res.Curve), len(res.Extrema.Maxima), len(res.Extrema.Minima))
	}

	if err := fsys.MkdirAll(o.outDir, 0o755); err != nil {
		return nil, "", fmt.Errorf("create output dir: %w", err)
	}

	p, err := plotting.OverlayPlot(results, o.style)
	if err != nil {
		return nil, "", err
	}
	var buf bytes.Buffer
	if err := plotting.OverlayChart(&buf, results, o.style); err != nil {
		return nil, "", err
	}
	chart, err := saveCharts(fsys, o, overlayName, p, buf.Bytes())
	if err != nil {
		return nil, "", err
	}
	return results, chart, nil
}

// saveCharts writes <name>.png and <name>.html into the output directory and
// returns the HTML path.
func saveCharts(fsys fsutil.FileSystem, o options, name string, p *plot.Plot, html []byte) (string, error) {
	png, err := security.OutputPath(o.outDir, name, ".png")
	if err != nil {
		return "", err
	}
	if err := plotting.SavePNG(fsys, p, o.style, png); err != nil {
		return "", err
	}

	chart, err := security.OutputPath(o.outDir, name, ".html")
	if err != nil {
		return "", err
	}
	if err := fsys.WriteFile(chart, html, 0o644); err != nil {
		return "", fmt.Errorf("write chart: %w", err)
	}
	return chart, nil
}

func saveWorkbook(fsys fsutil.FileSystem, path string, results []*analysis.RunResult) error {
	f, err := fsys.Create(path)
	if err != nil {
		return fmt.Errorf("create workbook: %w", err)
	}
	if err := report.WriteWorkbook(f, results); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func storeResults(path string, results []*analysis.RunResult) error {
	s, err := store.Open(path)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.MigrateUp(); err != nil {
		return err
	}
	for _, res := range results {
		id, err := s.RecordRun(res)
		if err != nil {
			return fmt.Errorf("store run %s: %w", res.Name, err)
		}
		monitoring.Logf("stored run %s as %s", res.Name, id)
	}
	return nil
}
