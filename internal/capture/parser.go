// Package capture reads PicoScope waveform exports. A run folder holds a
// fixed number of captures named <base>_NN.csv; each capture is a small
// header followed by (index, voltage in, voltage out) rows.
package capture

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/banshee-data/franckhertz/internal/monitoring"
)

// DefaultHeaderTokens is the number of leading tokens in a PicoScope export
// (three column titles, three unit labels and the blank separator line).
const DefaultHeaderTokens = 7

// ParseCapture reads one capture and returns its input and output voltages
// in file order. The first headerTokens comma/newline separated tokens are
// skipped and the rest are consumed three at a time.
//
// A voltage-in token that does not parse is an error. A voltage-out token
// that does not parse (over-range markers, a truncated last row) drops the
// whole sample, so the two slices always have equal length.
func ParseCapture(r io.Reader, headerTokens int) (inputs, outputs []float64, err error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, fmt.Errorf("read capture: %w", err)
	}

	tokens := splitTokens(string(data))
	if len(tokens) <= headerTokens {
		return nil, nil, nil
	}
	tokens = tokens[headerTokens:]

	for i := 0; i < len(tokens); i += 3 {
		sample := i/3 + 1
		group := tokens[i:min(i+3, len(tokens))]
		if len(group) < 2 {
			break
		}

		in := strings.TrimSpace(group[1])
		if in == "" && blank(tokens[i:]) {
			break
		}
		vin, err := strconv.ParseFloat(in, 64)
		if err != nil {
			return nil, nil, fmt.Errorf("sample %d: voltage in: %w", sample, err)
		}

		if len(group) < 3 {
			monitoring.Debugf("sample %d: no voltage out, dropping %g", sample, vin)
			break
		}
		vout, err := strconv.ParseFloat(strings.TrimSpace(group[2]), 64)
		if err != nil {
			monitoring.Debugf("sample %d: dropping unparsable voltage out %q", sample, group[2])
			continue
		}

		inputs = append(inputs, vin)
		outputs = append(outputs, vout)
	}

	return inputs, outputs, nil
}

// splitTokens splits on both commas and newlines, keeping empty tokens so
// that blank header lines still count towards the header.
func splitTokens(s string) []string {
	return strings.Split(strings.ReplaceAll(s, "\n", ","), ",")
}

func blank(tokens []string) bool {
	for _, t := range tokens {
		if strings.TrimSpace(t) != "" {
			return false
		}
	}
	return true
}
