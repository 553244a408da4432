package capture

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/banshee-data/franckhertz/internal/fsutil"
	"github.com/banshee-data/franckhertz/internal/monitoring"
)

// DefaultFilesPerRun is the number of waveforms the scope saves per run.
const DefaultFilesPerRun = 64

// ErrNoRuns is returned when an experiment folder contains no run folders.
var ErrNoRuns = errors.New("no run folders found")

// Options controls how run folders are located and parsed.
type Options struct {
	HeaderTokens int
	FilesPerRun  int
}

// DefaultOptions returns the PicoScope export layout.
func DefaultOptions() Options {
	return Options{
		HeaderTokens: DefaultHeaderTokens,
		FilesPerRun:  DefaultFilesPerRun,
	}
}

// Run is every sample of one run folder, concatenated in file order.
type Run struct {
	Name    string
	Folder  string
	Inputs  []float64
	Outputs []float64
}

// Len returns the number of samples in the run.
func (r *Run) Len() int {
	return len(r.Inputs)
}

// CaptureFileName returns the name of the index'th (1-based) capture of a
// run: base_01.csv ... base_09.csv, base_10.csv and up.
func CaptureFileName(base string, index int) string {
	return fmt.Sprintf("%s_%02d.csv", base, index)
}

// ReadRun reads all captures of the run folder. The folder's last path
// element is the run name and the prefix of every capture file. Every
// capture must be present.
func ReadRun(fsys fsutil.FileSystem, folder string, opts Options) (*Run, error) {
	folder = filepath.Clean(folder)
	base := filepath.Base(folder)

	run := &Run{Name: base, Folder: folder}
	for i := 1; i <= opts.FilesPerRun; i++ {
		path := filepath.Join(folder, CaptureFileName(base, i))
		inputs, outputs, err := readCapture(fsys, path, opts.HeaderTokens)
		if err != nil {
			return nil, err
		}
		run.Inputs = append(run.Inputs, inputs...)
		run.Outputs = append(run.Outputs, outputs...)
	}

	monitoring.Debugf("run %s: %d samples from %d captures", run.Name, run.Len(), opts.FilesPerRun)
	return run, nil
}

func readCapture(fsys fsutil.FileSystem, path string, headerTokens int) ([]float64, []float64, error) {
	f, err := fsys.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open capture: %w", err)
	}
	defer f.Close()

	inputs, outputs, err := ParseCapture(f, headerTokens)
	if err != nil {
		return nil, nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return inputs, outputs, nil
}

// ReadExperiment reads every run folder directly under dir, in name order.
// Plain files and hidden entries are skipped.
func ReadExperiment(fsys fsutil.FileSystem, dir string, opts Options) ([]*Run, error) {
	entries, err := fsys.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("list experiment folder: %w", err)
	}

	var runs []*Run
	for _, e := range entries {
		if !e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			monitoring.Logf("skipping %s: not a run folder", e.Name())
			continue
		}
		run, err := ReadRun(fsys, filepath.Join(dir, e.Name()), opts)
		if err != nil {
			return nil, fmt.Errorf("run %s: %w", e.Name(), err)
		}
		runs = append(runs, run)
	}

	if len(runs) == 0 {
		return nil, fmt.Errorf("%s: %w", dir, ErrNoRuns)
	}
	return runs, nil
}
