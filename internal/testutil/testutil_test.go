package testutil

import (
	"errors"
	"strings"
	"testing"

	"github.com/banshee-data/franckhertz/internal/fsutil"
)

func TestAssertNoError(t *testing.T) {
	t.Parallel()

	AssertNoError(t, nil)
}

func TestAssertError(t *testing.T) {
	t.Parallel()

	AssertError(t, errors.New("boom"))
}

func TestCaptureCSV(t *testing.T) {
	t.Parallel()

	got := CaptureCSV([]Sample{{In: 1.5, Out: 0.25}, {In: 2, Out: -1}})
	want := CaptureHeader + "0,1.5,0.25\n1,2,-1\n"
	if got != want {
		t.Errorf("CaptureCSV mismatch:\n got %q\nwant %q", got, want)
	}

	// The header must split into exactly seven comma/newline tokens.
	tokens := strings.Split(strings.ReplaceAll(CaptureHeader, "\n", ","), ",")
	if len(tokens)-1 != 7 {
		t.Errorf("expected 7 header tokens, got %d", len(tokens)-1)
	}
}

func TestWriteRun(t *testing.T) {
	t.Parallel()

	mfs := fsutil.NewMemoryFileSystem()
	WriteRun(t, mfs, "/exp/300K", 12, func(i int) []Sample {
		return []Sample{{In: float64(i), Out: 1}}
	})

	for _, name := range []string{"/exp/300K/300K_01.csv", "/exp/300K/300K_09.csv", "/exp/300K/300K_10.csv", "/exp/300K/300K_12.csv"} {
		if !mfs.Exists(name) {
			t.Errorf("expected %s to exist", name)
		}
	}
	if mfs.Exists("/exp/300K/300K_13.csv") {
		t.Error("did not expect a 13th capture")
	}
}

func TestSweep(t *testing.T) {
	t.Parallel()

	s := Sweep([]float64{1, 2, 3}, func(v float64) float64 { return v * v })
	if len(s) != 3 || s[2].In != 3 || s[2].Out != 9 {
		t.Errorf("unexpected sweep: %+v", s)
	}
}
