package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/ecodena/greenscan/internal/model"
)

// CSVWriter outputs one row per analyzed page, suitable for
// spreadsheet analysis or feeding into other tooling.
type CSVWriter struct {
	baseWriter
}

// csvHeader is the fixed column set, one row per page.
var csvHeader = []string{
	"url",
	"html_kb",
	"num_images",
	"num_scripts",
	"num_stylesheets",
	"headings_h1",
	"headings_h2",
	"headings_h3",
	"rse_score",
	"carbon_score",
	"green_it_score",
}

// NewCSVWriter creates a CSVWriter that outputs to the given writer.
func NewCSVWriter(output io.Writer) *CSVWriter {
	return &CSVWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the per-page rows of the scan result as CSV.
// A failed scan produces a header-only file.
func (w *CSVWriter) Write(result *model.ScanResult) (int, error) {
	counter := &countingWriter{w: w.output}
	cw := csv.NewWriter(counter)

	if err := cw.Write(csvHeader); err != nil {
		return counter.n, fmt.Errorf("write csv header: %w", err)
	}

	if result.Report != nil {
		for _, p := range result.Report.Pages {
			row := []string{
				p.URL,
				strconv.FormatFloat(p.HTMLKB, 'f', 1, 64),
				strconv.Itoa(p.NumImages),
				strconv.Itoa(p.NumScripts),
				strconv.Itoa(p.NumStylesheets),
				strconv.Itoa(p.HeadingsH1),
				strconv.Itoa(p.HeadingsH2),
				strconv.Itoa(p.HeadingsH3),
				strconv.Itoa(p.Scores.RSEScore),
				strconv.Itoa(p.Scores.CarbonScore),
				strconv.Itoa(p.Scores.GreenITScore),
			}
			if err := cw.Write(row); err != nil {
				return counter.n, fmt.Errorf("write csv row: %w", err)
			}
		}
	}

	cw.Flush()
	return counter.n, cw.Error()
}

// countingWriter counts bytes passed through to the wrapped writer.
type countingWriter struct {
	w io.Writer
	n int
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += n
	return n, err
}
