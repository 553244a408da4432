package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/banshee-data/franckhertz/internal/analysis"
	"github.com/banshee-data/franckhertz/internal/extrema"
)

// ExtremaSheet is the name of the sheet listing every run's extrema.
const ExtremaSheet = "Extrema"

const maxSheetName = 31

var (
	curveHeader   = []interface{}{"Voltage In (V)", "Mean Out (V)", "Std Dev (V)", "Role"}
	extremaHeader = []interface{}{"Run", "Max In (V)", "Max Out (V)", "Min In (V)", "Min Out (V)", "Drop (V)", "Next Max In (V)", "Gap (V)"}
)

// WriteWorkbook writes an .xlsx workbook with one sheet per run holding its
// reduced curve and an Extrema sheet with one row per peak/trough pair.
// Values are written unrounded.
func WriteWorkbook(w io.Writer, results []*analysis.RunResult) error {
	f := excelize.NewFile()
	defer f.Close()

	used := map[string]bool{strings.ToLower(ExtremaSheet): true}
	for i, res := range results {
		sheet := uniqueSheetName(res.Name, used)
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
				return fmt.Errorf("rename sheet: %w", err)
			}
		} else if _, err := f.NewSheet(sheet); err != nil {
			return fmt.Errorf("create sheet %s: %w", sheet, err)
		}
		if err := writeCurveSheet(f, sheet, res); err != nil {
			return err
		}
	}

	if len(results) == 0 {
		if err := f.SetSheetName(f.GetSheetName(0), ExtremaSheet); err != nil {
			return fmt.Errorf("rename sheet: %w", err)
		}
	} else if _, err := f.NewSheet(ExtremaSheet); err != nil {
		return fmt.Errorf("create sheet %s: %w", ExtremaSheet, err)
	}
	if err := writeExtremaSheet(f, results); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeCurveSheet(f *excelize.File, sheet string, res *analysis.RunResult) error {
	if err := f.SetSheetRow(sheet, "A1", &curveHeader); err != nil {
		return fmt.Errorf("sheet %s header: %w", sheet, err)
	}
	roles := res.Roles()
	for i, p := range res.Curve {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{p.Voltage, p.Mean, p.StdDev, roles[i].String()}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("sheet %s row %d: %w", sheet, i+2, err)
		}
	}
	return nil
}

func writeExtremaSheet(f *excelize.File, results []*analysis.RunResult) error {
	if err := f.SetSheetRow(ExtremaSheet, "A1", &extremaHeader); err != nil {
		return fmt.Errorf("extrema header: %w", err)
	}

	line := 2
	write := func(row []interface{}) error {
		cell, err := excelize.CoordinatesToCellName(1, line)
		if err != nil {
			return err
		}
		line++
		return f.SetSheetRow(ExtremaSheet, cell, &row)
	}

	for _, res := range results {
		for _, rec := range res.Extrema.Records {
			if err := write(recordRow(res.Name, rec)); err != nil {
				return fmt.Errorf("extrema row: %w", err)
			}
		}
		if tail := res.Extrema.Tail; tail != nil {
			last := res.Extrema.Maxima[len(res.Extrema.Maxima)-1]
			row := []interface{}{res.Name, last.X, last.Y, tail.Min.X, tail.Min.Y, tail.Drop}
			if err := write(row); err != nil {
				return fmt.Errorf("extrema row: %w", err)
			}
		}
	}
	return nil
}

func recordRow(run string, rec extrema.Record) []interface{} {
	return []interface{}{run, rec.Max.X, rec.Max.Y, rec.Min.X, rec.Min.Y, rec.Drop, rec.NextMax.X, rec.Gap}
}

// uniqueSheetName strips characters Excel rejects, truncates to 31
// characters and appends a counter on collision.
func uniqueSheetName(name string, used map[string]bool) string {
	clean := strings.Map(func(r rune) rune {
		if strings.ContainsRune(`[]:*?/\`, r) {
			return '_'
		}
		return r
	}, name)
	clean = strings.Trim(clean, "'")
	if clean == "" {
		clean = "run"
	}
	if len([]rune(clean)) > maxSheetName {
		clean = string([]rune(clean)[:maxSheetName])
	}

	candidate := clean
	for n := 2; used[strings.ToLower(candidate)]; n++ {
		suffix := fmt.Sprintf(" (%d)", n)
		base := []rune(clean)
		if len(base)+len(suffix) > maxSheetName {
			base = base[:maxSheetName-len(suffix)]
		}
		candidate = string(base) + suffix
	}
	used[strings.ToLower(candidate)] = true
	return candidate
}
