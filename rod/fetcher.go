package rod

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/fwojciec/poiscout"
	"github.com/go-rod/rod/lib/proto"
)

// Ensure Fetcher implements poiscout.Fetcher at compile time.
var _ poiscout.Fetcher = (*Fetcher)(nil)

// DefaultFetchTimeout is the default per-page timeout for rendered fetches.
// Browser rendering is slower than plain HTTP, so the default is generous.
const DefaultFetchTimeout = 30 * time.Second

// serializeScript inlines open shadow roots as declarative <template> nodes
// before serializing, so links and text inside Web Components survive the
// round trip. querySelectorAll returns a static list, so prepending templates
// during the walk is safe.
const serializeScript = `() => {
	const inline = (root) => {
		for (const el of root.querySelectorAll('*')) {
			if (el.shadowRoot) {
				inline(el.shadowRoot);
				const tpl = document.createElement('template');
				tpl.setAttribute('shadowrootmode', 'open');
				tpl.innerHTML = el.shadowRoot.innerHTML;
				el.prepend(tpl);
			}
		}
	};
	inline(document);
	return document.documentElement.outerHTML;
}`

// Fetcher retrieves rendered HTML from URLs using Chrome browser automation.
// Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	manager *BrowserManager
	timeout time.Duration
	closed  atomic.Bool
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithFetchTimeout sets the per-page timeout applied to each Fetch call.
// Defaults to DefaultFetchTimeout if not specified.
func WithFetchTimeout(timeout time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = timeout
	}
}

// WithBrowserManager uses the provided manager instead of launching a new
// browser. The Fetcher takes ownership and closes the manager on Close.
func WithBrowserManager(manager *BrowserManager) Option {
	return func(f *Fetcher) {
		f.manager = manager
	}
}

// NewFetcher creates a new Fetcher backed by a headless Chrome browser.
// The browser is recycled periodically to contain memory growth during long
// crawls. Close must be called when the Fetcher is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	f := &Fetcher{timeout: DefaultFetchTimeout}
	for _, opt := range opts {
		opt(f)
	}

	if f.manager == nil {
		manager, err := NewBrowserManager()
		if err != nil {
			return nil, err
		}
		f.manager = manager
	}

	return f, nil
}

// Fetch navigates to the URL and returns the rendered HTML, including content
// inside open shadow roots.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if f.closed.Load() {
		return "", poiscout.Errorf(poiscout.EINVALID, "fetcher is closed")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	page, err := f.manager.Browser().Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", err
	}
	defer page.Close()

	// Set context for all subsequent operations
	page = page.Context(ctx)

	if err := page.Navigate(url); err != nil {
		return "", err
	}
	if err := page.WaitLoad(); err != nil {
		return "", err
	}

	res, err := page.Eval(serializeScript)
	if err != nil {
		return "", err
	}

	f.manager.IncrementPageCount()
	return res.Value.Str(), nil
}

// Close releases browser resources. Close is safe to call multiple times.
func (f *Fetcher) Close() error {
	if !f.closed.CompareAndSwap(false, true) {
		return nil
	}
	return f.manager.Close()
}

// LauncherPID returns the process ID of the browser launcher.
// This method exists for testing purposes to verify proper cleanup.
func (f *Fetcher) LauncherPID() int {
	return f.manager.LauncherPID()
}
