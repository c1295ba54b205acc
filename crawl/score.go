package crawl

import (
	"net/url"
	"strings"

	"github.com/fwojciec/poiscout"
)

// MinLinkScore is the relevance threshold below which reported links are
// never queued, regardless of depth.
const MinLinkScore = 0.5

// Weights for combining relevance and depth into a frontier priority.
// Structural position outweighs the reader's own relevance guess.
const (
	relevanceWeight = 0.4
	depthWeight     = 0.6
)

// DepthScore returns the depth component of a URL's priority. Depth is the
// count of non-empty path segments: the root page scores 0.0 and pages at
// depth 1, 2, 3 score 0.3, 0.5, 0.7; anything deeper caps at 0.9. Mid-depth
// pages (category and listing pages) are the most likely POI sources.
func DepthScore(rawURL string) (float64, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return 0, poiscout.Errorf(poiscout.EINVALID, "invalid URL %q", rawURL)
	}

	depth := 0
	for _, seg := range strings.Split(u.Path, "/") {
		if seg != "" {
			depth++
		}
	}

	switch depth {
	case 0:
		return 0.0, nil
	case 1:
		return 0.3, nil
	case 2:
		return 0.5, nil
	case 3:
		return 0.7, nil
	default:
		return 0.9, nil
	}
}

// Score combines a 0-1 relevance score with the URL's depth score into a
// single frontier priority: 0.4*relevance + 0.6*depth. No clamping is
// applied; callers must supply relevance within [0, 1].
func Score(relevance float64, rawURL string) (float64, error) {
	depth, err := DepthScore(rawURL)
	if err != nil {
		return 0, err
	}
	return relevance*relevanceWeight + depth*depthWeight, nil
}
