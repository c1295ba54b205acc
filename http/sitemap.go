package http

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/beevik/etree"
	"github.com/fwojciec/poiscout"
)

// Ensure SitemapService implements poiscout.SitemapService.
var _ poiscout.SitemapService = (*SitemapService)(nil)

// SitemapService reads website sitemaps over HTTP. A crawl can use the
// result to seed its frontier with pages the site itself advertises,
// instead of relying only on links discovered along the way.
type SitemapService struct {
	client *http.Client
}

// NewSitemapService creates a new SitemapService with the given HTTP client.
// If client is nil, http.DefaultClient is used.
func NewSitemapService(client *http.Client) *SitemapService {
	if client == nil {
		client = http.DefaultClient
	}
	return &SitemapService{client: client}
}

// DiscoverURLs finds all URLs a site's sitemaps advertise. Sitemap
// locations come from robots.txt directives when present, otherwise from
// /sitemap.xml; sitemap indexes are walked recursively. Returns an empty
// slice (not nil) when the site has no sitemap.
//
// When baseURL carries a non-root path (e.g. https://example.com/guide/),
// only URLs under that path are returned, so a crawl scoped to a city
// guide is not seeded with the whole travel site.
func (s *SitemapService) DiscoverURLs(ctx context.Context, baseURL string, filter *poiscout.URLFilter) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}

	// Sitemaps live at the domain root regardless of the seed's path.
	root := *base
	root.Path = ""

	sitemaps, err := s.locateSitemaps(ctx, &root)
	if err != nil {
		return nil, err
	}
	if len(sitemaps) == 0 {
		return []string{}, nil
	}

	walked := make(map[string]bool)
	unique := make(map[string]bool)
	var out []string
	for _, sm := range sitemaps {
		urls, err := s.walkSitemap(ctx, sm, walked)
		if err != nil {
			return nil, err
		}
		for _, u := range urls {
			if unique[u] {
				continue
			}
			unique[u] = true
			if !underPath(u, base.Path) {
				continue
			}
			if !filter.Match(u) {
				continue
			}
			out = append(out, u)
		}
	}
	if out == nil {
		out = []string{}
	}
	return out, nil
}

// underPath reports whether rawURL's path sits below prefix. A root or
// empty prefix admits everything; /guide admits /guide/places but not
// /guidebook.
func underPath(rawURL, prefix string) bool {
	if prefix == "" || prefix == "/" {
		return true
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return strings.HasPrefix(u.Path, prefix)
}

// locateSitemaps finds the site's sitemap URLs: robots.txt directives
// first, then a HEAD probe of /sitemap.xml.
func (s *SitemapService) locateSitemaps(ctx context.Context, root *url.URL) ([]string, error) {
	robots := root.ResolveReference(&url.URL{Path: "/robots.txt"})
	if sitemaps, err := s.sitemapsFromRobots(ctx, robots.String()); err == nil && len(sitemaps) > 0 {
		return sitemaps, nil
	}

	fallback := root.ResolveReference(&url.URL{Path: "/sitemap.xml"}).String()
	exists, err := s.headOK(ctx, fallback)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, nil
	}
	if exists {
		return []string{fallback}, nil
	}
	return nil, nil
}

// sitemapsFromRobots extracts Sitemap: directives from robots.txt.
func (s *SitemapService) sitemapsFromRobots(ctx context.Context, robotsURL string) ([]string, error) {
	body, err := s.get(ctx, robotsURL)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	var sitemaps []string
	scanner := bufio.NewScanner(body)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(strings.ToLower(line), "sitemap:") {
			continue
		}
		if loc := strings.TrimSpace(line[len("sitemap:"):]); loc != "" {
			sitemaps = append(sitemaps, loc)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading robots.txt: %w", err)
	}
	return sitemaps, nil
}

// walkSitemap fetches one sitemap and returns the page URLs it lists,
// recursing through <sitemapindex> entries. The walked set guards
// against indexes that reference each other.
func (s *SitemapService) walkSitemap(ctx context.Context, sitemapURL string, walked map[string]bool) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if walked[sitemapURL] {
		return nil, nil
	}
	walked[sitemapURL] = true

	body, err := s.get(ctx, sitemapURL)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(body); err != nil {
		return nil, fmt.Errorf("parsing sitemap XML: %w", err)
	}
	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("empty sitemap XML")
	}

	if root.Tag == "sitemapindex" {
		var urls []string
		for _, child := range locations(root, "sitemap") {
			nested, err := s.walkSitemap(ctx, child, walked)
			if err != nil {
				return nil, err
			}
			urls = append(urls, nested...)
		}
		return urls, nil
	}

	return locations(root, "url"), nil
}

// locations collects the non-empty <loc> values of root's child elements
// with the given tag.
func locations(root *etree.Element, tag string) []string {
	var out []string
	for _, el := range root.SelectElements(tag) {
		loc := el.SelectElement("loc")
		if loc == nil {
			continue
		}
		if v := strings.TrimSpace(loc.Text()); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// get fetches a URL and returns the response body.
func (s *SitemapService) get(ctx context.Context, targetURL string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, targetURL)
	}
	return resp.Body, nil
}

// headOK reports whether a HEAD request to the URL returns 200.
func (s *SitemapService) headOK(ctx context.Context, targetURL string) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, targetURL, nil)
	if err != nil {
		return false, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return false, err
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK, nil
}
