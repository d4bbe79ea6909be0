package report

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/ecodena/greenscan/internal/keyword"
	"github.com/ecodena/greenscan/internal/model"
)

func successResult() *model.ScanResult {
	return &model.ScanResult{
		SeedURL:   "example.com",
		ScannedAt: time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC),
		Report: &model.SiteReport{
			Domain:            "example.com",
			URL:               "https://example.com",
			PagesScanned:      2,
			TotalHTMLKB:       122.8,
			AvgHTMLKB:         61.4,
			GlobalRSEScore:    40,
			GlobalCarbonScore: 15,
			TotalRSEHits:      11,
			TotalCarbonHits:   3,
			HasRSEContent:     true,
			HasCarbonMentions: true,
			Summary:           "L'entreprise communique sur la RSE / l'environnement.",
			Pages: []model.PageRecord{
				{
					URL:            "https://example.com",
					Title:          "Accueil",
					HTMLKB:         80.3,
					NumImages:      12,
					NumScripts:     5,
					NumStylesheets: 2,
					HeadingsH1:     1,
					HeadingsH2:     4,
					Scores:         keyword.Scores{RSEHits: 8, RSEScore: 40, CarbonHits: 3, CarbonScore: 15},
				},
				{
					URL:    "https://example.com/rse",
					Title:  "RSE",
					HTMLKB: 42.5,
					Scores: keyword.Scores{RSEHits: 3, RSEScore: 15},
				},
			},
		},
		Estimate: &model.CarbonEstimate{
			AvgKBPerPage: 184.2,
			GCO2PerView:  0.02635397,
			MonthlyKgCO2: 0.2635397,
			YearlyKgCO2:  3.1624769,
			Assumptions: model.Assumptions{
				MonthlyPageViews:       10_000,
				WeightMultiplier:       3.0,
				EnergyPerGBKWh:         0.5,
				CarbonIntensityGPerKWh: 300.0,
			},
		},
	}
}

func failedResult() *model.ScanResult {
	return &model.ScanResult{
		SeedURL:   "down.example.com",
		ScannedAt: time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC),
		Report:    model.NewFailedSiteReport("down.example.com", "https://down.example.com", "Impossible de récupérer la page d'accueil"),
	}
}

func TestSimpleWriter_Write(t *testing.T) {
	t.Parallel()

	t.Run("successful scan", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		n, err := NewSimpleWriter(&buf).Write(successResult())
		if err != nil {
			t.Fatalf("Write() error = %v, want nil", err)
		}
		if n != buf.Len() {
			t.Errorf("Write() = %d bytes, buffer has %d", n, buf.Len())
		}

		out := buf.String()
		for _, want := range []string{
			"GREENSCAN REPORT",
			"example.com",
			"Score RSE:          40/100 (11 mentions)",
			"Score carbone:      15/100 (3 mentions)",
			"0.0264 gCO2",
			"0.26 kgCO2 (10000 pages vues)",
			"3.16 kgCO2",
		} {
			if !strings.Contains(out, want) {
				t.Errorf("output should contain %q, got:\n%s", want, out)
			}
		}
	})

	t.Run("failed scan shows the reason only", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewSimpleWriter(&buf).Write(failedResult()); err != nil {
			t.Fatalf("Write() error = %v, want nil", err)
		}

		out := buf.String()
		if !strings.Contains(out, "Impossible de récupérer la page d'accueil") {
			t.Errorf("output should contain the failure reason, got:\n%s", out)
		}
		if strings.Contains(out, "ESTIMATION CARBONE") {
			t.Error("failed scan should not show an estimate section")
		}
	})

	t.Run("verbose adds per-page detail", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewSimpleWriter(&buf, WithVerbose(true)).Write(successResult()); err != nil {
			t.Fatalf("Write() error = %v, want nil", err)
		}

		if !strings.Contains(buf.String(), "https://example.com/rse") {
			t.Errorf("verbose output should list every page, got:\n%s", buf.String())
		}
	})
}

func TestJSONWriter_Write(t *testing.T) {
	t.Parallel()

	t.Run("emits valid JSON with rounded estimate", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewJSONWriter(&buf).Write(successResult()); err != nil {
			t.Fatalf("Write() error = %v, want nil", err)
		}

		var decoded model.ScanResult
		if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
			t.Fatalf("output is not valid JSON: %v", err)
		}

		if decoded.Report == nil || decoded.Report.Domain != "example.com" {
			t.Errorf("decoded report = %+v", decoded.Report)
		}
		if decoded.Estimate == nil {
			t.Fatal("decoded estimate is nil")
		}
		if decoded.Estimate.GCO2PerView != 0.0264 {
			t.Errorf("GCO2PerView = %v, want rounded 0.0264", decoded.Estimate.GCO2PerView)
		}
		if decoded.Estimate.MonthlyKgCO2 != 0.26 {
			t.Errorf("MonthlyKgCO2 = %v, want rounded 0.26", decoded.Estimate.MonthlyKgCO2)
		}
	})

	t.Run("does not mutate the source result", func(t *testing.T) {
		t.Parallel()

		result := successResult()
		var buf bytes.Buffer
		if _, err := NewJSONWriter(&buf).Write(result); err != nil {
			t.Fatalf("Write() error = %v, want nil", err)
		}

		if result.Estimate.GCO2PerView != 0.02635397 {
			t.Errorf("source estimate was mutated: %v", result.Estimate.GCO2PerView)
		}
	})

	t.Run("pretty print indents the output", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewJSONWriter(&buf, WithPrettyPrint()).Write(successResult()); err != nil {
			t.Fatalf("Write() error = %v, want nil", err)
		}

		if !strings.Contains(buf.String(), "\n  \"") {
			t.Error("pretty-printed output should be indented")
		}
	})
}

func TestMarkdownWriter_Write(t *testing.T) {
	t.Parallel()

	t.Run("successful scan", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewMarkdownWriter(&buf).Write(successResult()); err != nil {
			t.Fatalf("Write() error = %v, want nil", err)
		}

		out := buf.String()
		for _, want := range []string{
			"# Rapport greenscan",
			"## Analyse du contenu",
			"## Estimation carbone",
			"## Pages analysées",
			"https://example.com/rse",
			"mermaid",
		} {
			if !strings.Contains(out, want) {
				t.Errorf("output should contain %q, got:\n%s", want, out)
			}
		}
	})

	t.Run("failed scan emits a caution alert", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewMarkdownWriter(&buf).Write(failedResult()); err != nil {
			t.Fatalf("Write() error = %v, want nil", err)
		}

		out := buf.String()
		if !strings.Contains(out, "Impossible de récupérer la page d'accueil") {
			t.Errorf("output should contain the failure reason, got:\n%s", out)
		}
		if strings.Contains(out, "## Estimation carbone") {
			t.Error("failed scan should not show an estimate section")
		}
	})
}

func TestCSVWriter_Write(t *testing.T) {
	t.Parallel()

	t.Run("one row per page", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewCSVWriter(&buf).Write(successResult()); err != nil {
			t.Fatalf("Write() error = %v, want nil", err)
		}

		records, err := csv.NewReader(&buf).ReadAll()
		if err != nil {
			t.Fatalf("output is not valid CSV: %v", err)
		}

		if len(records) != 3 {
			t.Fatalf("got %d records, want header plus 2 rows", len(records))
		}
		if records[0][0] != "url" || records[0][8] != "rse_score" {
			t.Errorf("unexpected header: %v", records[0])
		}
		if records[1][0] != "https://example.com" || records[1][1] != "80.3" {
			t.Errorf("unexpected first row: %v", records[1])
		}
		if records[2][8] != "15" {
			t.Errorf("rse_score of second row = %q, want 15", records[2][8])
		}
	})

	t.Run("failed scan produces header only", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewCSVWriter(&buf).Write(failedResult()); err != nil {
			t.Fatalf("Write() error = %v, want nil", err)
		}

		records, err := csv.NewReader(&buf).ReadAll()
		if err != nil {
			t.Fatalf("output is not valid CSV: %v", err)
		}
		if len(records) != 1 {
			t.Errorf("got %d records, want header only", len(records))
		}
	})
}

func TestMultiWriter_Write(t *testing.T) {
	t.Parallel()

	var text, jsonBuf bytes.Buffer
	mw := NewMultiWriter(NewSimpleWriter(&text), NewJSONWriter(&jsonBuf))

	n, err := mw.Write(successResult())
	if err != nil {
		t.Fatalf("Write() error = %v, want nil", err)
	}

	if text.Len() == 0 || jsonBuf.Len() == 0 {
		t.Error("both writers should receive output")
	}
	if n != text.Len()+jsonBuf.Len() {
		t.Errorf("Write() = %d bytes, want %d", n, text.Len()+jsonBuf.Len())
	}
}
