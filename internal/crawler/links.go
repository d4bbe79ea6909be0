package crawler

import (
	"net/url"
	"sort"
	"strings"

	"golang.org/x/net/html"

	"github.com/ecodena/greenscan/internal/config"
)

// CandidateLink is an internal URL discovered on a page together with
// its relevance score. Candidate lists are transient: produced by one
// Discover call, consumed once by the crawl loop and discarded.
type CandidateLink struct {
	// URL is the resolved absolute URL.
	URL string

	// Score sums the stem weights matched in the URL or anchor text.
	Score int
}

// Discoverer extracts internal links from a page and ranks them by
// sustainability relevance, so the page cap is spent on the pages most
// likely to carry CSR content.
type Discoverer struct {
	// stems is the vocabulary matched against URLs and anchor text.
	stems []string

	// weight is the score added per matched stem.
	weight int
}

// DiscovererOption configures a Discoverer.
type DiscovererOption func(*Discoverer)

// WithStems replaces the stem vocabulary.
func WithStems(stems []string) DiscovererOption {
	return func(d *Discoverer) {
		d.stems = stems
	}
}

// NewDiscoverer creates a Discoverer with the built-in stem vocabulary.
func NewDiscoverer(opts ...DiscovererOption) *Discoverer {
	d := &Discoverer{
		stems:  config.LinkStems(),
		weight: config.LinkStemWeight,
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

// Discover parses the anchors of htmlSrc, keeps the internal ones,
// scores each by stem presence in its URL or anchor text, and returns
// at most maxLinks unique URLs ordered by descending score.
//
// The sort is stable: equal-score links keep their discovery order, so
// ranking is deterministic for identical input HTML. Deduplication by
// exact URL happens while building the final list, after ranking.
func (d *Discoverer) Discover(baseURL, htmlSrc string, maxLinks int) []string {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil
	}
	baseDomain := RegistrableDomain(base.Host)

	doc, err := html.Parse(strings.NewReader(htmlSrc))
	if err != nil {
		return nil
	}

	candidates := d.collectAnchors(doc, base, baseDomain)

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})

	seen := make(map[string]struct{})
	ranked := make([]string, 0, maxLinks)
	for _, c := range candidates {
		if len(ranked) >= maxLinks {
			break
		}
		if _, ok := seen[c.URL]; ok {
			continue
		}
		seen[c.URL] = struct{}{}
		ranked = append(ranked, c.URL)
	}

	return ranked
}

// collectAnchors walks the DOM and scores every internal anchor.
func (d *Discoverer) collectAnchors(doc *html.Node, base *url.URL, baseDomain string) []CandidateLink {
	var candidates []CandidateLink

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			if href := getAnchorHref(n); href != "" {
				if resolved := resolveURL(base, href); resolved != "" && IsInternal(resolved, baseDomain) {
					candidates = append(candidates, CandidateLink{
						URL:   resolved,
						Score: d.scoreLink(resolved, anchorText(n)),
					})
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return candidates
}

// scoreLink computes the relevance score of one candidate: each stem
// found in the lowercased URL or the lowercased anchor text adds the
// fixed weight once, regardless of how often or where it appears.
func (d *Discoverer) scoreLink(link, text string) int {
	linkLower := strings.ToLower(link)
	textLower := strings.ToLower(text)

	score := 0
	for _, stem := range d.stems {
		if strings.Contains(linkLower, stem) || strings.Contains(textLower, stem) {
			score += d.weight
		}
	}
	return score
}

// resolveURL resolves an href against the base URL.
// Non-navigational schemes are dropped; they can never be fetched.
func resolveURL(base *url.URL, href string) string {
	href = strings.TrimSpace(href)
	if strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "data:") ||
		href == "#" {
		return ""
	}

	u, err := url.Parse(href)
	if err != nil {
		return ""
	}

	return base.ResolveReference(u).String()
}

// getAnchorHref retrieves the href attribute of an anchor node.
func getAnchorHref(n *html.Node) string {
	for _, attr := range n.Attr {
		if strings.EqualFold(attr.Key, "href") {
			return attr.Val
		}
	}
	return ""
}

// anchorText concatenates the descendant text of an anchor.
func anchorText(n *html.Node) string {
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
