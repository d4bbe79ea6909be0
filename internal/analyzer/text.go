package analyzer

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// whitespaceRegex collapses runs of whitespace into single spaces.
var whitespaceRegex = regexp.MustCompile(`\s+`)

// ExtractText extracts the visible plain text of a page: script, style
// and noscript subtrees are dropped, the remaining text nodes are
// joined with spaces, and consecutive whitespace is collapsed.
func ExtractText(htmlSrc string) string {
	doc, err := html.Parse(strings.NewReader(htmlSrc))
	if err != nil {
		return ""
	}

	var sb strings.Builder

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript":
				return
			}
		}
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
			sb.WriteString(" ")
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return strings.TrimSpace(whitespaceRegex.ReplaceAllString(sb.String(), " "))
}
