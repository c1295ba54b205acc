package poiscout

import (
	"context"
	"regexp"
)

// SitemapService lists the URLs a website's sitemaps advertise. Crawls
// use it to seed the frontier beyond what link-following alone reaches.
type SitemapService interface {
	// DiscoverURLs finds all URLs from a site's sitemap. Sitemap
	// locations come from robots.txt directives when present, otherwise
	// from /sitemap.xml; sitemap indexes are resolved recursively.
	//
	// A nil filter returns every URL found.
	DiscoverURLs(ctx context.Context, baseURL string, filter *URLFilter) ([]string, error)
}

// URLFilter narrows a set of URLs by regular expression. It is applied
// both to sitemap discovery and to frontier admission during a crawl.
type URLFilter struct {
	// Include patterns. When non-empty, a URL must match at least one.
	Include []*regexp.Regexp

	// Exclude patterns, applied after Include. A URL matching any of
	// them is dropped.
	Exclude []*regexp.Regexp
}

// Match reports whether the URL passes the filter. A nil filter passes
// everything.
func (f *URLFilter) Match(url string) bool {
	if f == nil {
		return true
	}
	if len(f.Include) > 0 && !matchesAny(f.Include, url) {
		return false
	}
	return !matchesAny(f.Exclude, url)
}

func matchesAny(patterns []*regexp.Regexp, url string) bool {
	for _, re := range patterns {
		if re.MatchString(url) {
			return true
		}
	}
	return false
}
