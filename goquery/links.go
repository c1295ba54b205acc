// Package goquery lists candidate links from HTML pages using
// CSS-selector queries.
package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/poiscout"
)

var _ poiscout.LinkLister = (*LinkLister)(nil)

// LinkLister collects the outgoing links of a page. It walks every
// anchor, resolves relative hrefs against the page URL, and keeps
// cross-host links: the reader oracle scores them and the crawl engine
// decides at admission time which ones to follow.
type LinkLister struct{}

// NewLinkLister creates a new LinkLister.
func NewLinkLister() *LinkLister {
	return &LinkLister{}
}

// ListLinks returns the page's absolute HTTP(S) links in document order,
// deduplicated, with fragments stripped. Self-referential and
// non-navigational links (javascript:, mailto:, and similar) are skipped.
func (l *LinkLister) ListLinks(html string, baseURL string) ([]string, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, poiscout.Errorf(poiscout.EINVALID, "invalid base URL: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, poiscout.Errorf(poiscout.EINVALID, "failed to parse HTML: %v", err)
	}

	seen := make(map[string]struct{})
	var links []string

	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, exists := sel.Attr("href")
		if !exists || href == "" {
			return
		}

		if isNonHTTPLink(href) {
			return
		}

		resolved := resolveURL(base, href)
		if resolved == "" {
			return
		}

		if _, ok := seen[resolved]; ok {
			return
		}
		seen[resolved] = struct{}{}
		links = append(links, resolved)
	})

	return links, nil
}

// resolveURL resolves a relative URL against a base URL.
// Returns empty string if the href cannot be parsed, resolves to a
// non-HTTP scheme, or is self-referential (same as base URL after
// stripping fragment). Fragments are stripped from the resolved URL for
// deduplication purposes.
func resolveURL(base *url.URL, href string) string {
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	resolved := base.ResolveReference(ref)
	resolved.Fragment = "" // Strip fragment for deduplication

	if resolved.Scheme != "http" && resolved.Scheme != "https" {
		return ""
	}

	// Filter self-referential links (e.g., anchor-only links pointing to same page)
	result := resolved.String()
	baseNoFragment := *base
	baseNoFragment.Fragment = ""
	if result == baseNoFragment.String() {
		return ""
	}
	return result
}

// isNonHTTPLink checks if a href is a non-HTTP link that should be skipped.
func isNonHTTPLink(href string) bool {
	href = strings.ToLower(strings.TrimSpace(href))
	return strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "data:")
}
