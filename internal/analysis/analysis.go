// Package analysis runs the reduction pipeline for one run: group and
// average the samples, then locate the extrema of the mean curve.
package analysis

import (
	"fmt"

	"github.com/banshee-data/franckhertz/internal/capture"
	"github.com/banshee-data/franckhertz/internal/extrema"
	"github.com/banshee-data/franckhertz/internal/reduce"
)

// RunResult is everything the presentation layer needs about one run.
type RunResult struct {
	Name    string
	Folder  string
	Samples int
	Curve   reduce.Curve
	Extrema extrema.Result
}

// Roles returns the extremum role of every curve point.
func (r *RunResult) Roles() []extrema.Role {
	return r.Extrema.Roles(len(r.Curve))
}

// Analyze reduces a run and detects the extrema of its mean curve.
func Analyze(run *capture.Run) (*RunResult, error) {
	curve, err := reduce.Reduce(run.Inputs, run.Outputs)
	if err != nil {
		return nil, fmt.Errorf("reduce %s: %w", run.Name, err)
	}

	res, err := extrema.Detect(curve.Voltages(), curve.Means())
	if err != nil {
		return nil, fmt.Errorf("detect extrema %s: %w", run.Name, err)
	}

	return &RunResult{
		Name:    run.Name,
		Folder:  run.Folder,
		Samples: run.Len(),
		Curve:   curve,
		Extrema: res,
	}, nil
}

// AnalyzeAll analyzes every run in order and stops at the first failure.
func AnalyzeAll(runs []*capture.Run) ([]*RunResult, error) {
	results := make([]*RunResult, 0, len(runs))
	for _, run := range runs {
		r, err := Analyze(run)
		if err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	return results, nil
}
