// Package extrema locates the alternating peaks and troughs of a reduced
// Franck–Hertz curve and measures the drop after each peak and the spacing
// between consecutive peaks.
package extrema

import (
	"errors"
	"fmt"
)

// ErrLengthMismatch is returned when the x and y slices differ in length.
var ErrLengthMismatch = errors.New("x and y lengths differ")

// Role classifies a curve point for plotting.
type Role int

const (
	Neither Role = iota
	Maximum
	Minimum
)

func (r Role) String() string {
	switch r {
	case Maximum:
		return "maximum"
	case Minimum:
		return "minimum"
	default:
		return "neither"
	}
}

// Point is a detected extremum and its position on the curve.
type Point struct {
	Index int
	X     float64
	Y     float64
}

// Record describes one peak, the trough after it and the next peak.
type Record struct {
	Max     Point
	Min     Point
	NextMax Point
	Drop    float64 // Max.Y - Min.Y, sign not checked
	Gap     float64 // NextMax.X - Max.X
}

// TailMinimum is the trough after the last peak when the curve ends before
// another peak is found.
type TailMinimum struct {
	Min  Point
	Drop float64
}

// Result holds everything Detect found.
type Result struct {
	Records []Record
	Tail    *TailMinimum
	Maxima  []Point
	Minima  []Point
}

// Detect scans ys left to right looking alternately for a maximum and a
// minimum, starting with a maximum. Index i is a maximum when ys[i+1] drops
// below it and a minimum when ys[i+1] rises above it; equal neighbours never
// trigger a transition, so plateaus are skipped.
//
// Records pair maxima k and k+1 with minimum k. The minimum is matched by
// position in the list, not by checking that it lies between the two peaks.
func Detect(xs, ys []float64) (Result, error) {
	if len(xs) != len(ys) {
		return Result{}, fmt.Errorf("%w: %d x, %d y", ErrLengthMismatch, len(xs), len(ys))
	}

	var res Result
	seekingMax := true
	for i := 0; i+1 < len(ys); i++ {
		if seekingMax {
			if ys[i+1] < ys[i] {
				res.Maxima = append(res.Maxima, Point{Index: i, X: xs[i], Y: ys[i]})
				seekingMax = false
			}
		} else if ys[i+1] > ys[i] {
			res.Minima = append(res.Minima, Point{Index: i, X: xs[i], Y: ys[i]})
			seekingMax = true
		}
	}

	for k := 0; k+1 < len(res.Maxima); k++ {
		peak, trough, next := res.Maxima[k], res.Minima[k], res.Maxima[k+1]
		res.Records = append(res.Records, Record{
			Max:     peak,
			Min:     trough,
			NextMax: next,
			Drop:    peak.Y - trough.Y,
			Gap:     next.X - peak.X,
		})
	}

	if n := len(res.Minima); n > 0 && n == len(res.Maxima) {
		last := res.Minima[n-1]
		res.Tail = &TailMinimum{Min: last, Drop: res.Maxima[n-1].Y - last.Y}
	}

	return res, nil
}

// MaximaIndices returns the curve indices of the maxima.
func (r Result) MaximaIndices() []int {
	return indices(r.Maxima)
}

// MinimaIndices returns the curve indices of the minima.
func (r Result) MinimaIndices() []int {
	return indices(r.Minima)
}

// Roles returns the role of every point of a curve with n points.
func (r Result) Roles(n int) []Role {
	roles := make([]Role, n)
	for _, p := range r.Maxima {
		if p.Index < n {
			roles[p.Index] = Maximum
		}
	}
	for _, p := range r.Minima {
		if p.Index < n {
			roles[p.Index] = Minimum
		}
	}
	return roles
}

// Drops returns the drop of every record followed by the tail drop, if any.
func (r Result) Drops() []float64 {
	drops := make([]float64, 0, len(r.Records)+1)
	for _, rec := range r.Records {
		drops = append(drops, rec.Drop)
	}
	if r.Tail != nil {
		drops = append(drops, r.Tail.Drop)
	}
	return drops
}

// Gaps returns the peak-to-peak spacing of every record.
func (r Result) Gaps() []float64 {
	gaps := make([]float64, len(r.Records))
	for i, rec := range r.Records {
		gaps[i] = rec.Gap
	}
	return gaps
}

func indices(points []Point) []int {
	out := make([]int, len(points))
	for i, p := range points {
		out[i] = p.Index
	}
	return out
}
