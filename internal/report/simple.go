package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/ecodena/greenscan/internal/model"
)

// SimpleWriter outputs human-readable text reports.
// This format is designed for terminal display with clear section
// formatting.
//
// Design decision: We use plain text with ASCII formatting rather than
// ANSI colors by default because:
// 1. It works in all terminals without compatibility issues
// 2. It's easier to pipe to files or other tools
// 3. Color can be added as an option later if needed
type SimpleWriter struct {
	baseWriter

	// verbose enables per-page detail in the output.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithVerbose enables verbose output with per-page details.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
		verbose:    false,
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the scan result in human-readable format.
func (w *SimpleWriter) Write(result *model.ScanResult) (int, error) {
	var sb strings.Builder

	w.writeHeader(&sb, result)

	if result.Report != nil && result.Report.Failed() {
		w.writeFailure(&sb, result)
		return w.output.Write([]byte(sb.String()))
	}

	w.writeScores(&sb, result)
	w.writeEstimate(&sb, result)

	if w.verbose {
		w.writePages(&sb, result)
	}

	return w.output.Write([]byte(sb.String()))
}

// writeHeader writes the report header with scan information.
func (w *SimpleWriter) writeHeader(sb *strings.Builder, result *model.ScanResult) {
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("                          GREENSCAN REPORT\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n\n")

	if result.Report != nil {
		sb.WriteString(fmt.Sprintf("Domaine:        %s\n", result.Report.Domain))
		sb.WriteString(fmt.Sprintf("URL:            %s\n", result.Report.URL))
	} else {
		sb.WriteString(fmt.Sprintf("URL:            %s\n", result.SeedURL))
	}
	sb.WriteString(fmt.Sprintf("Date:           %s\n", result.ScannedAt.Format("2006-01-02 15:04:05 MST")))

	switch {
	case result.TimedOut:
		sb.WriteString("Statut:         INTERROMPU (résultats partiels)\n")
	case result.Report != nil && result.Report.Failed():
		sb.WriteString("Statut:         ECHEC\n")
	default:
		sb.WriteString("Statut:         Terminé\n")
	}

	sb.WriteString("\n")
}

// writeFailure writes the failure section for an unreachable site.
func (w *SimpleWriter) writeFailure(sb *strings.Builder, result *model.ScanResult) {
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("  %s\n", result.Report.Error))
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
}

// writeScores writes the keyword analysis section.
func (w *SimpleWriter) writeScores(sb *strings.Builder, result *model.ScanResult) {
	report := result.Report
	if report == nil {
		return
	}

	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("ANALYSE DU CONTENU\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("  Pages analysées:    %d\n", report.PagesScanned))
	sb.WriteString(fmt.Sprintf("  HTML total:         %.1f Ko (moyenne %.1f Ko/page)\n", report.TotalHTMLKB, report.AvgHTMLKB))
	sb.WriteString("\n")

	sb.WriteString(fmt.Sprintf("  Score RSE:          %d/100 (%d mentions)\n", report.GlobalRSEScore, report.TotalRSEHits))
	sb.WriteString(fmt.Sprintf("  Score carbone:      %d/100 (%d mentions)\n", report.GlobalCarbonScore, report.TotalCarbonHits))
	sb.WriteString(fmt.Sprintf("  Score green IT:     %d/100 (%d mentions)\n", report.GlobalGreenITScore, report.TotalGreenITHits))
	if report.HasExplicitCarbonReport {
		sb.WriteString("  Bilan carbone:      mention explicite trouvée\n")
	}
	sb.WriteString("\n")

	sb.WriteString(fmt.Sprintf("  %s\n", report.Summary))
	sb.WriteString("\n")
}

// writeEstimate writes the carbon estimate section.
func (w *SimpleWriter) writeEstimate(sb *strings.Builder, result *model.ScanResult) {
	if result.Estimate == nil {
		return
	}
	est := result.Estimate.Rounded()

	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("ESTIMATION CARBONE\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("  Poids moyen estimé: %.1f Ko/page\n", est.AvgKBPerPage))
	sb.WriteString(fmt.Sprintf("  Par page vue:       %.4f gCO2\n", est.GCO2PerView))
	sb.WriteString(fmt.Sprintf("  Par mois:           %.2f kgCO2 (%d pages vues)\n", est.MonthlyKgCO2, est.Assumptions.MonthlyPageViews))
	sb.WriteString(fmt.Sprintf("  Par an:             %.2f kgCO2\n", est.YearlyKgCO2))
	sb.WriteString("\n")
}

// writePages writes the per-page detail table.
func (w *SimpleWriter) writePages(sb *strings.Builder, result *model.ScanResult) {
	report := result.Report
	if report == nil || len(report.Pages) == 0 {
		return
	}

	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("PAGES\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	for _, p := range report.Pages {
		sb.WriteString(fmt.Sprintf("  * %s\n", p.URL))
		sb.WriteString(fmt.Sprintf("    %.1f Ko, %d images, %d scripts, %d feuilles de style\n",
			p.HTMLKB, p.NumImages, p.NumScripts, p.NumStylesheets))
		sb.WriteString(fmt.Sprintf("    Scores: RSE %d, carbone %d, green IT %d\n",
			p.Scores.RSEScore, p.Scores.CarbonScore, p.Scores.GreenITScore))
	}
	sb.WriteString("\n")
}
