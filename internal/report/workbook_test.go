package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/banshee-data/franckhertz/internal/analysis"
	"github.com/banshee-data/franckhertz/internal/capture"
)

func analyzed(t *testing.T, name string, ys []float64) *analysis.RunResult {
	t.Helper()
	xs := make([]float64, len(ys))
	for i := range xs {
		xs[i] = float64(i + 1)
	}
	res, err := analysis.Analyze(&capture.Run{Name: name, Inputs: xs, Outputs: ys})
	require.NoError(t, err)
	return res
}

func TestWriteWorkbook(t *testing.T) {
	t.Parallel()

	results := []*analysis.RunResult{
		analyzed(t, "300K", []float64{1, 3, 2, 5, 1, 4}),
		analyzed(t, "250K", []float64{1, 3, 2, 5, 1}),
	}

	var buf bytes.Buffer
	require.NoError(t, WriteWorkbook(&buf, results))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"300K", "250K", ExtremaSheet}, f.GetSheetList())

	rows, err := f.GetRows("300K")
	require.NoError(t, err)
	require.Len(t, rows, 7)
	assert.Equal(t, []string{"Voltage In (V)", "Mean Out (V)", "Std Dev (V)", "Role"}, rows[0])
	assert.Equal(t, []string{"2", "3", "0", "maximum"}, rows[2])
	assert.Equal(t, []string{"3", "2", "0", "minimum"}, rows[3])
	assert.Equal(t, "neither", rows[1][3])

	ext, err := f.GetRows(ExtremaSheet)
	require.NoError(t, err)
	// Header, one record and a tail for 300K, one record for 250K.
	require.Len(t, ext, 4)
	assert.Equal(t, []string{"300K", "2", "3", "3", "2", "1", "4", "2"}, ext[1])
	assert.Equal(t, []string{"300K", "4", "5", "5", "1", "4"}, ext[2])
	assert.Equal(t, "250K", ext[3][0])
}

func TestWriteWorkbook_Empty(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, WriteWorkbook(&buf, nil))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{ExtremaSheet}, f.GetSheetList())
}

func TestUniqueSheetName(t *testing.T) {
	t.Parallel()

	used := map[string]bool{"extrema": true}
	assert.Equal(t, "run_1_", uniqueSheetName("run[1]", used))
	assert.Equal(t, "run_1_ (2)", uniqueSheetName("run/1?", used))
	assert.Equal(t, "Extrema (2)", uniqueSheetName("Extrema", used))
	assert.Equal(t, "run", uniqueSheetName("''", used))

	long := uniqueSheetName(strings.Repeat("x", 40), used)
	assert.Len(t, []rune(long), 31)
	again := uniqueSheetName(strings.Repeat("x", 40), used)
	assert.Len(t, []rune(again), 31)
	assert.NotEqual(t, long, again)
}
