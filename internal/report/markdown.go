package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"

	"github.com/ecodena/greenscan/internal/model"
)

// MarkdownWriter outputs scan results in Markdown format.
// This format is designed for documentation and sharing.
//
// Design decision: We use the nao1215/markdown library for fluent
// markdown generation which provides:
// 1. Type-safe markdown generation
// 2. Support for tables, lists, and code blocks
// 3. GitHub-flavored markdown alerts
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the scan result in Markdown format.
func (w *MarkdownWriter) Write(result *model.ScanResult) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, result)

	if result.Report != nil && result.Report.Failed() {
		md.Caution(result.Report.Error)
		return len(md.String()), md.Build()
	}

	w.writeScores(md, result)
	w.writeEstimate(md, result)
	w.writePages(md, result)

	return len(md.String()), md.Build()
}

// writeHeader writes the report header with scan information.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, result *model.ScanResult) {
	md.H1("Rapport greenscan")
	md.PlainText("")

	rows := [][]string{}
	if result.Report != nil {
		rows = append(rows,
			[]string{"Domaine", "`" + result.Report.Domain + "`"},
			[]string{"URL", result.Report.URL},
		)
	} else {
		rows = append(rows, []string{"URL", result.SeedURL})
	}
	rows = append(rows,
		[]string{"Date", result.ScannedAt.Format("2006-01-02 15:04:05 MST")},
		[]string{"Statut", w.getStatusText(result)},
	)

	md.Table(markdown.TableSet{
		Header: []string{"Propriété", "Valeur"},
		Rows:   rows,
	})
	md.PlainText("")
}

// getStatusText returns the status text based on the result state.
func (w *MarkdownWriter) getStatusText(result *model.ScanResult) string {
	if result.TimedOut {
		return "⚠️ Interrompu (résultats partiels)"
	}
	if result.Report != nil && result.Report.Failed() {
		return "❌ Echec"
	}
	return "✅ Terminé"
}

// writeScores writes the keyword analysis section.
func (w *MarkdownWriter) writeScores(md *markdown.Markdown, result *model.ScanResult) {
	report := result.Report
	if report == nil {
		return
	}

	md.H2("Analyse du contenu")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Thème", "Score", "Mentions"},
		Rows: [][]string{
			{"RSE", strconv.Itoa(report.GlobalRSEScore) + "/100", strconv.Itoa(report.TotalRSEHits)},
			{"Carbone", strconv.Itoa(report.GlobalCarbonScore) + "/100", strconv.Itoa(report.TotalCarbonHits)},
			{"Green IT", strconv.Itoa(report.GlobalGreenITScore) + "/100", strconv.Itoa(report.TotalGreenITHits)},
		},
	})
	md.PlainText("")

	if report.TotalRSEHits+report.TotalCarbonHits+report.TotalGreenITHits > 0 {
		w.writePieChart(md, report)
	}

	md.PlainText(report.Summary)
	md.PlainText("")
}

// writePieChart writes a mermaid pie chart of keyword hit distribution.
func (w *MarkdownWriter) writePieChart(md *markdown.Markdown, report *model.SiteReport) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Répartition des mentions"),
		piechart.WithShowData(true),
	)

	if report.TotalRSEHits > 0 {
		chart.LabelAndIntValue("RSE", uint64(report.TotalRSEHits))
	}
	if report.TotalCarbonHits > 0 {
		chart.LabelAndIntValue("Carbone", uint64(report.TotalCarbonHits))
	}
	if report.TotalGreenITHits > 0 {
		chart.LabelAndIntValue("Green IT", uint64(report.TotalGreenITHits))
	}

	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writeEstimate writes the carbon estimate section.
func (w *MarkdownWriter) writeEstimate(md *markdown.Markdown, result *model.ScanResult) {
	if result.Estimate == nil {
		return
	}
	est := result.Estimate.Rounded()

	md.H2("Estimation carbone")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Indicateur", "Valeur"},
		Rows: [][]string{
			{"Poids moyen estimé", fmt.Sprintf("%.1f Ko/page", est.AvgKBPerPage)},
			{"Par page vue", fmt.Sprintf("%.4f gCO2", est.GCO2PerView)},
			{"Par mois", fmt.Sprintf("%.2f kgCO2 (%d pages vues)", est.MonthlyKgCO2, est.Assumptions.MonthlyPageViews)},
			{"Par an", fmt.Sprintf("%.2f kgCO2", est.YearlyKgCO2)},
		},
	})
	md.PlainText("")
}

// writePages writes the per-page detail table.
func (w *MarkdownWriter) writePages(md *markdown.Markdown, result *model.ScanResult) {
	report := result.Report
	if report == nil || len(report.Pages) == 0 {
		return
	}

	md.H2("Pages analysées")
	md.PlainText("")

	rows := make([][]string, 0, len(report.Pages))
	for _, p := range report.Pages {
		rows = append(rows, []string{
			p.URL,
			fmt.Sprintf("%.1f", p.HTMLKB),
			strconv.Itoa(p.NumImages),
			strconv.Itoa(p.NumScripts),
			strconv.Itoa(p.NumStylesheets),
			strconv.Itoa(p.Scores.RSEScore),
			strconv.Itoa(p.Scores.CarbonScore),
			strconv.Itoa(p.Scores.GreenITScore),
		})
	}

	md.Table(markdown.TableSet{
		Header: []string{"URL", "Ko", "Images", "Scripts", "CSS", "RSE", "Carbone", "Green IT"},
		Rows:   rows,
	})
	md.PlainText("")
}
