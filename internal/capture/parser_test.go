package capture

import (
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/franckhertz/internal/testutil"
)

func TestParseCapture(t *testing.T) {
	t.Parallel()

	t.Run("complete rows", func(t *testing.T) {
		t.Parallel()
		csv := testutil.CaptureCSV([]testutil.Sample{{In: 0.5, Out: 0.01}, {In: 1.0, Out: 0.02}, {In: 1.5, Out: 0.04}})

		in, out, err := ParseCapture(strings.NewReader(csv), DefaultHeaderTokens)
		require.NoError(t, err)
		assert.Equal(t, []float64{0.5, 1.0, 1.5}, in)
		assert.Equal(t, []float64{0.01, 0.02, 0.04}, out)
	})

	t.Run("trailing row without output is dropped", func(t *testing.T) {
		t.Parallel()
		csv := testutil.CaptureCSV([]testutil.Sample{{In: 1, Out: 2}, {In: 3, Out: 4}}) + "2,5,\n"

		in, out, err := ParseCapture(strings.NewReader(csv), DefaultHeaderTokens)
		require.NoError(t, err)
		assert.Len(t, in, 2)
		assert.Len(t, out, 2)
	})

	t.Run("truncated at end of file", func(t *testing.T) {
		t.Parallel()
		csv := testutil.CaptureHeader + "0,1,2\n1,3,4\n2,5"

		in, out, err := ParseCapture(strings.NewReader(csv), DefaultHeaderTokens)
		require.NoError(t, err)
		assert.Equal(t, []float64{1, 3}, in)
		assert.Equal(t, []float64{2, 4}, out)
	})

	t.Run("over-range output marker drops the sample", func(t *testing.T) {
		t.Parallel()
		csv := testutil.CaptureHeader + "0,1,2\n1,3,∞\n2,5,6\n"

		in, out, err := ParseCapture(strings.NewReader(csv), DefaultHeaderTokens)
		require.NoError(t, err)
		assert.Equal(t, []float64{1, 5}, in)
		assert.Equal(t, []float64{2, 6}, out)
	})

	t.Run("crlf line endings", func(t *testing.T) {
		t.Parallel()
		csv := "Time,Channel A,Channel B\r\n(ms),(V),(V)\r\n\r\n0,1.25,0.5\r\n1,1.5,0.75\r\n"

		in, out, err := ParseCapture(strings.NewReader(csv), DefaultHeaderTokens)
		require.NoError(t, err)
		assert.Equal(t, []float64{1.25, 1.5}, in)
		assert.Equal(t, []float64{0.5, 0.75}, out)
	})

	t.Run("trailing blank lines", func(t *testing.T) {
		t.Parallel()
		csv := testutil.CaptureCSV([]testutil.Sample{{In: 1, Out: 2}}) + "\n\n\n"

		in, _, err := ParseCapture(strings.NewReader(csv), DefaultHeaderTokens)
		require.NoError(t, err)
		assert.Equal(t, []float64{1}, in)
	})

	t.Run("malformed input voltage is fatal", func(t *testing.T) {
		t.Parallel()
		csv := testutil.CaptureHeader + "0,1,2\n1,abc,4\n2,5,6\n"

		_, _, err := ParseCapture(strings.NewReader(csv), DefaultHeaderTokens)
		require.Error(t, err)
		var numErr *strconv.NumError
		assert.ErrorAs(t, err, &numErr)
		assert.Contains(t, err.Error(), "sample 2")
	})

	t.Run("header only", func(t *testing.T) {
		t.Parallel()
		in, out, err := ParseCapture(strings.NewReader(testutil.CaptureHeader), DefaultHeaderTokens)
		require.NoError(t, err)
		assert.Empty(t, in)
		assert.Empty(t, out)
	})

	t.Run("shorter than header", func(t *testing.T) {
		t.Parallel()
		in, out, err := ParseCapture(strings.NewReader("Time,Channel A"), DefaultHeaderTokens)
		require.NoError(t, err)
		assert.Empty(t, in)
		assert.Empty(t, out)
	})
}

// N complete triples followed by one incomplete row always yield N samples.
func TestParseCapture_IncompleteTrailingRow(t *testing.T) {
	t.Parallel()

	for n := 0; n < 5; n++ {
		samples := make([]testutil.Sample, n)
		for i := range samples {
			samples[i] = testutil.Sample{In: float64(i), Out: float64(i) / 10}
		}
		for _, tail := range []string{"9,7.5,\n", "9,7.5,--\n", "9,7.5"} {
			csv := testutil.CaptureCSV(samples) + tail
			in, out, err := ParseCapture(strings.NewReader(csv), DefaultHeaderTokens)
			require.NoError(t, err, "n=%d tail=%q", n, tail)
			assert.Len(t, in, n, "n=%d tail=%q", n, tail)
			assert.Len(t, out, n, "n=%d tail=%q", n, tail)
		}
	}
}
