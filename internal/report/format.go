// Package report renders detected extrema as a plain-text summary, a LaTeX
// table and a spreadsheet workbook.
package report

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/banshee-data/franckhertz/internal/extrema"
)

// ErrMalformedResult is returned when a result does not have the shape the
// detector produces: at least one maximum, one minimum between each pair of
// maxima and at most one trailing minimum.
var ErrMalformedResult = errors.New("malformed extrema result")

// Options controls rounding and the table placeholders.
type Options struct {
	Decimals    int
	Temperature string
	TableNumber string
}

// DefaultOptions rounds to two decimals and leaves the caption and label
// placeholders for manual completion.
func DefaultOptions() Options {
	return Options{
		Decimals:    2,
		Temperature: "[temp]",
		TableNumber: "[n]",
	}
}

// Stringify rounds v to two decimals.
func Stringify(v float64) string {
	return FormatValue(v, 2)
}

// FormatValue rounds v half away from zero to the given number of decimals
// and prints the shortest representation of the rounded value, so 2.50
// prints as 2.5.
func FormatValue(v float64, decimals int) string {
	scale := math.Pow(10, float64(decimals))
	r := math.Round(v*scale) / scale
	if r == 0 {
		r = 0 // drop the sign of -0
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}

func formatPoint(p extrema.Point, decimals int) string {
	return "(" + FormatValue(p.X, decimals) + ", " + FormatValue(p.Y, decimals) + ")"
}

// validate checks the structural invariants Detect guarantees.
func validate(res extrema.Result) error {
	nMax, nMin := len(res.Maxima), len(res.Minima)
	switch {
	case nMax == 0:
		return fmt.Errorf("%w: no maxima", ErrMalformedResult)
	case nMin != nMax && nMin != nMax-1:
		return fmt.Errorf("%w: %d maxima but %d minima", ErrMalformedResult, nMax, nMin)
	case len(res.Records) != nMax-1:
		return fmt.Errorf("%w: %d maxima but %d records", ErrMalformedResult, nMax, len(res.Records))
	case (res.Tail != nil) != (nMin == nMax):
		return fmt.Errorf("%w: trailing minimum does not match %d maxima and %d minima", ErrMalformedResult, nMax, nMin)
	}
	return nil
}

// Summary renders the four labelled sections (maxima, minima, drop sizes,
// distances between peaks) separated by blank lines.
func Summary(res extrema.Result, opts Options) string {
	var b strings.Builder

	b.WriteString("Maxima:")
	for _, p := range res.Maxima {
		b.WriteString("\n" + formatPoint(p, opts.Decimals))
	}

	b.WriteString("\n\nMinima:")
	for _, p := range res.Minima {
		b.WriteString("\n" + formatPoint(p, opts.Decimals))
	}

	b.WriteString("\n\nDrop sizes:")
	for _, d := range res.Drops() {
		b.WriteString("\n" + FormatValue(d, opts.Decimals))
	}

	b.WriteString("\n\nDistances between peaks:")
	for _, g := range res.Gaps() {
		b.WriteString("\n" + FormatValue(g, opts.Decimals))
	}

	return b.String()
}

const (
	tableHead = "\\begin{table}[htbp]\n" +
		"\\centering\n" +
		"\\begin{tabular}{llll}\n" +
		"Maximum (V, V) & Minimum (V, V) & Voltage Drop (V) & Gap to Next Maximum (V)\\\\\n" +
		"\\hline\n"
	tableFoot = "\n\\end{tabular}\n" +
		"\\caption{Relationship between maximum and minimum current points at %s.}\n" +
		"\\label{tab:Table %s}\n" +
		"\\end{table}"
)

// Table renders one LaTeX tabular row per maximum with the following
// minimum, the drop to it and the distance to the next maximum. Cells are
// left empty once a column runs out.
func Table(res extrema.Result, opts Options) (string, error) {
	if err := validate(res); err != nil {
		return "", err
	}

	drops, gaps := res.Drops(), res.Gaps()
	rows := make([]string, len(res.Maxima))
	for k, peak := range res.Maxima {
		cells := []string{formatPoint(peak, opts.Decimals), "", "", ""}
		if k < len(res.Minima) {
			cells[1] = formatPoint(res.Minima[k], opts.Decimals)
		}
		if k < len(drops) {
			cells[2] = FormatValue(drops[k], opts.Decimals)
		}
		if k < len(gaps) {
			cells[3] = FormatValue(gaps[k], opts.Decimals)
		}
		rows[k] = strings.Join(cells, " & ")
	}

	return tableHead + strings.Join(rows, "\\\\\n") + fmt.Sprintf(tableFoot, opts.Temperature, opts.TableNumber), nil
}
