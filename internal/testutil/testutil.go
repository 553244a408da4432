// Package testutil provides shared test utilities and fixtures.
//
// The fixtures produce PicoScope-style CSV exports so capture, reduction and
// presentation tests can share one source of synthetic runs.
package testutil

import (
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/banshee-data/franckhertz/internal/fsutil"
)

// CaptureHeader is the seven-token header the scope writes before the samples.
const CaptureHeader = "Time,Channel A,Channel B\n(ms),(V),(V)\n\n"

// Sample is one (voltage in, voltage out) row of a capture.
type Sample struct {
	In  float64
	Out float64
}

// AssertNoError fails the test if err is not nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertError fails the test if err is nil.
func AssertError(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}

// CaptureCSV renders samples as a capture export with a trailing newline.
func CaptureCSV(samples []Sample) string {
	var b strings.Builder
	b.WriteString(CaptureHeader)
	for i, s := range samples {
		fmt.Fprintf(&b, "%d,%g,%g\n", i, s.In, s.Out)
	}
	return b.String()
}

// WriteRun writes files captures into folder using the <base>_NN.csv naming.
// samplesFor receives the 1-based capture index.
func WriteRun(t *testing.T, fsys fsutil.FileSystem, folder string, files int, samplesFor func(index int) []Sample) {
	t.Helper()
	base := filepath.Base(filepath.Clean(folder))
	if err := fsys.MkdirAll(folder, 0755); err != nil {
		t.Fatalf("mkdir %s: %v", folder, err)
	}
	for i := 1; i <= files; i++ {
		name := filepath.Join(folder, fmt.Sprintf("%s_%02d.csv", base, i))
		if err := fsys.WriteFile(name, []byte(CaptureCSV(samplesFor(i))), 0644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
}

// Sweep returns one sample per voltage with outputs from curve.
func Sweep(voltages []float64, curve func(v float64) float64) []Sample {
	samples := make([]Sample, len(voltages))
	for i, v := range voltages {
		samples[i] = Sample{In: v, Out: curve(v)}
	}
	return samples
}
