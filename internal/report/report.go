// Package report renders a finished smoke run: a console summary always,
// an Excel workbook when the operator asked for one.
package report

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"

	"github.com/mealmax/smoke-harness/internal/harness"
)

const (
	sheetNameFormat = "Smoke_%s"
	timeFormat      = "2006-01-02_15-04-05"

	patternType  = "pattern"
	patternValue = 1
	failBgColor  = "FF5900"

	// Excel chokes on very long cells; response bodies get clipped.
	maxCellRunes = 1000
)

var excelHeaders = []string{"#", "Step", "Result", "Detail", "Duration (ms)", "Response"}

// Meta stamps one run for the summary and the workbook.
type Meta struct {
	RunID    string
	BaseURL  string
	Profile  string
	Started  time.Time
	Duration time.Duration
}

type Reporter struct {
	stdout io.Writer
	logger zerolog.Logger
}

func New(stdout io.Writer, logger zerolog.Logger) *Reporter {
	if stdout == nil {
		stdout = os.Stdout
	}
	return &Reporter{
		stdout: stdout,
		logger: logger.With().Str("component", "report").Logger(),
	}
}

// PrintSummary writes the human closing lines for a run.
func (r *Reporter) PrintSummary(meta Meta, results []harness.Result) {
	passed := 0
	var failed *harness.Result
	for i := range results {
		if results[i].Passed {
			passed++
		} else if failed == nil {
			failed = &results[i]
		}
	}

	fmt.Fprintf(r.stdout, "\n%d/%d steps passed in %s\n", passed, len(results), meta.Duration.Round(time.Millisecond))
	if failed != nil {
		fmt.Fprintf(r.stdout, "failed step: %s: %v\n", failed.Name, failed.Err)
		return
	}
	fmt.Fprintln(r.stdout, "smoke test passed")
}

// WriteExcel saves the run as a fresh workbook: one row per executed
// step, failures filled red, run metadata below the table.
func (r *Reporter) WriteExcel(path string, meta Meta, results []harness.Result) error {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			r.logger.Warn().Err(err).Msg("close workbook")
		}
	}()

	sheet := fmt.Sprintf(sheetNameFormat, meta.Started.Format(timeFormat))
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("name sheet: %w", err)
	}
	f.SetColWidth(sheet, "A", "A", 4)
	f.SetColWidth(sheet, "B", "E", 24)
	f.SetColWidth(sheet, "F", "F", 60)

	for i, header := range excelHeaders {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheet, cell, header)
	}

	failStyle, _ := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: patternType, Pattern: patternValue, Color: []string{failBgColor}},
	})

	for i, res := range results {
		row := i + 2
		verdict := "pass"
		detail := res.Detail
		if !res.Passed {
			verdict = "FAIL"
			detail = res.Err.Error()
		}
		cells := []any{
			res.Index,
			res.Name,
			verdict,
			detail,
			res.Duration.Milliseconds(),
			clip(string(res.Body)),
		}
		for j, cell := range cells {
			cellName := fmt.Sprintf("%c%d", 'A'+j, row)
			f.SetCellValue(sheet, cellName, cell)
			if !res.Passed {
				f.SetCellStyle(sheet, cellName, cellName, failStyle)
			}
		}
	}

	summaryRow := len(results) + 3
	passed := 0
	for _, res := range results {
		if res.Passed {
			passed++
		}
	}
	summary := []string{
		"run " + meta.RunID,
		"target " + meta.BaseURL,
		"profile " + meta.Profile,
		fmt.Sprintf("steps passed: %d/%d", passed, len(results)),
		fmt.Sprintf("duration: %s", meta.Duration.Round(time.Millisecond)),
	}
	for i, line := range summary {
		f.SetCellValue(sheet, fmt.Sprintf("A%d", summaryRow+i), line)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save report %q: %w", path, err)
	}
	r.logger.Info().Str("path", path).Str("sheet", sheet).Msg("report written")
	return nil
}

func clip(s string) string {
	runes := []rune(s)
	if len(runes) <= maxCellRunes {
		return s
	}
	return string(runes[:maxCellRunes]) + "…"
}
