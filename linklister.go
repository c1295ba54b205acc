package poiscout

// LinkLister extracts the outbound links of an HTML page.
// Unlike content extraction, listing works on the raw page HTML so that
// navigation and listing links survive boilerplate removal.
type LinkLister interface {
	// ListLinks parses HTML and returns absolute http(s) URLs in
	// document order, deduplicated, with fragments stripped.
	// The baseURL is used to resolve relative URLs.
	ListLinks(html string, baseURL string) ([]string, error)
}
