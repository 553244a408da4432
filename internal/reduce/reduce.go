// Package reduce collapses repeated acquisitions into one mean and
// population standard deviation per input voltage.
//
// Samples are grouped by exact float equality on the input voltage. The
// scope sweeps fixed set-points, so repeated acquisitions reproduce the same
// voltage bit for bit; no tolerance or binning is applied.
package reduce

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// ErrLengthMismatch is returned when the input and output slices differ in length.
var ErrLengthMismatch = errors.New("input and output sample counts differ")

// Group holds every output sample recorded at one input voltage.
type Group struct {
	Voltage float64
	Outputs []float64
}

// Point is the reduced value of one Group.
type Point struct {
	Voltage float64
	Mean    float64
	StdDev  float64
}

// Curve is a set of reduced points sorted ascending by voltage.
type Curve []Point

// Voltages returns the x values of the curve.
func (c Curve) Voltages() []float64 {
	out := make([]float64, len(c))
	for i, p := range c {
		out[i] = p.Voltage
	}
	return out
}

// Means returns the y values of the curve.
func (c Curve) Means() []float64 {
	out := make([]float64, len(c))
	for i, p := range c {
		out[i] = p.Mean
	}
	return out
}

// StdDevs returns the error bar half-widths of the curve.
func (c Curve) StdDevs() []float64 {
	out := make([]float64, len(c))
	for i, p := range c {
		out[i] = p.StdDev
	}
	return out
}

// GroupSamples buckets outputs by input voltage. Groups appear in the order
// their voltage was first seen; outputs keep their sample order.
func GroupSamples(inputs, outputs []float64) ([]Group, error) {
	if len(inputs) != len(outputs) {
		return nil, fmt.Errorf("%w: %d inputs, %d outputs", ErrLengthMismatch, len(inputs), len(outputs))
	}

	index := make(map[float64]int)
	var groups []Group
	for i, v := range inputs {
		g, ok := index[v]
		if !ok {
			g = len(groups)
			index[v] = g
			groups = append(groups, Group{Voltage: v})
		}
		groups[g].Outputs = append(groups[g].Outputs, outputs[i])
	}
	return groups, nil
}

// Summarize returns the mean and population standard deviation of the
// group's outputs (denominator n, not n-1).
func (g Group) Summarize() Point {
	if len(g.Outputs) == 1 {
		return Point{Voltage: g.Voltage, Mean: g.Outputs[0]}
	}
	mean, std := stat.PopMeanStdDev(g.Outputs, nil)
	return Point{Voltage: g.Voltage, Mean: mean, StdDev: std}
}

// Reduce groups the samples, summarizes each group and sorts the result by
// voltage.
func Reduce(inputs, outputs []float64) (Curve, error) {
	groups, err := GroupSamples(inputs, outputs)
	if err != nil {
		return nil, err
	}

	voltages := make([]float64, len(groups))
	for i, g := range groups {
		voltages[i] = g.Voltage
	}
	order := make([]int, len(groups))
	floats.Argsort(voltages, order)

	curve := make(Curve, len(groups))
	for i, g := range order {
		curve[i] = groups[g].Summarize()
	}
	return curve, nil
}
