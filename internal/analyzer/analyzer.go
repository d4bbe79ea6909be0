package analyzer

import (
	"math"
	"regexp"
	"strings"

	"golang.org/x/net/html"

	"github.com/ecodena/greenscan/internal/keyword"
	"github.com/ecodena/greenscan/internal/model"
)

// fontFamilyRegex extracts the value of a font-family declaration from
// an inline style attribute, up to the next semicolon. Styles are
// lowercased before matching.
var fontFamilyRegex = regexp.MustCompile(`font-family\s*:\s*([^;]+)`)

// Analyzer builds PageRecords from raw HTML.
type Analyzer struct {
	// scorer scores the extracted plain text against the three keyword
	// taxonomies.
	scorer *keyword.Scorer
}

// New creates an Analyzer using the given keyword scorer.
func New(scorer *keyword.Scorer) *Analyzer {
	return &Analyzer{scorer: scorer}
}

// Analyze parses one fetched page into a PageRecord: structural metrics
// from a single DOM walk, plain text extraction, and keyword scores.
func (a *Analyzer) Analyze(htmlSrc, pageURL string) model.PageRecord {
	record := model.PageRecord{
		URL:    pageURL,
		HTMLKB: htmlSizeKB(htmlSrc),
	}

	doc, err := html.Parse(strings.NewReader(htmlSrc))
	if err != nil {
		// Unparseable input degrades to an empty record; the size is
		// still meaningful for the carbon estimate.
		record.Scores = a.scorer.Score("")
		return record
	}

	// Distinct inline font-family values and font resource hrefs.
	fontFamilies := make(map[string]struct{})
	seenFontResources := make(map[string]struct{})

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "title":
				if record.Title == "" {
					record.Title = strings.TrimSpace(nodeText(n))
				}
			case "h1":
				record.HeadingsH1++
			case "h2":
				record.HeadingsH2++
			case "h3":
				record.HeadingsH3++
			case "img":
				record.NumImages++
			case "script":
				record.NumScripts++
			case "link":
				a.processLink(n, &record, seenFontResources)
			}

			if style := getAttr(n, "style"); style != "" {
				if m := fontFamilyRegex.FindStringSubmatch(strings.ToLower(style)); m != nil {
					fontFamilies[strings.TrimSpace(m[1])] = struct{}{}
				}
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	walk(doc)

	record.NumInlineFonts = len(fontFamilies)
	record.Text = ExtractText(htmlSrc)
	record.Scores = a.scorer.Score(record.Text)

	return record
}

// processLink inspects one <link> element for stylesheet and font
// resource signals.
func (a *Analyzer) processLink(n *html.Node, record *model.PageRecord, seen map[string]struct{}) {
	// A link counts as a stylesheet only if its rel attribute set
	// contains the "stylesheet" token.
	for _, rel := range strings.Fields(getAttr(n, "rel")) {
		if strings.EqualFold(rel, "stylesheet") {
			record.NumStylesheets++
			break
		}
	}

	href := getAttr(n, "href")
	if href == "" {
		return
	}

	// Font resources: Google Fonts or anything font-named. The hrefs
	// are kept verbatim, deduplicated in first-seen order.
	hrefLower := strings.ToLower(href)
	if strings.Contains(hrefLower, "fonts.googleapis.com") || strings.Contains(hrefLower, "font") {
		if _, ok := seen[href]; !ok {
			seen[href] = struct{}{}
			record.FontResources = append(record.FontResources, href)
		}
	}
}

// htmlSizeKB returns the UTF-8 byte length of the page in kilobytes,
// rounded to one decimal.
func htmlSizeKB(htmlSrc string) float64 {
	return math.Round(float64(len(htmlSrc))/1024*10) / 10
}

// nodeText concatenates all descendant text of a node.
func nodeText(n *html.Node) string {
	var sb strings.Builder

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)

	return sb.String()
}

// getAttr retrieves an attribute value from an HTML node.
func getAttr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if strings.EqualFold(attr.Key, key) {
			return attr.Val
		}
	}
	return ""
}
