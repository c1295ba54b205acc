package poiscout

import "context"

// PageContent is the cleaned content of one fetched page, ready for reading.
type PageContent struct {
	URL      string
	Title    string
	Markdown string

	// Links holds the absolute URLs of anchors found on the page,
	// in document order, deduplicated.
	Links []string
}

// PageFindings is everything a reader extracted from one page.
type PageFindings struct {
	// POIs are the POI candidates found on the page. They have not been
	// validated yet.
	POIs []POI

	// Links carries a relevance score for each outbound link the reader
	// considered. URLs are absolute.
	Links []LinkReport

	// Summary is a one-paragraph description of what the page contains.
	Summary string
}

// PageReader extracts POI candidates and link relevance scores from page
// content. Implementations typically call a language model.
type PageReader interface {
	ReadPage(ctx context.Context, page *PageContent) (*PageFindings, error)
}
