package rod

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
)

// DefaultMaxPages is the number of pages a browser serves before it is
// recycled.
const DefaultMaxPages = 75

// BrowserManager owns a headless Chrome instance and recycles it after a
// fixed number of page loads. Chrome's memory footprint grows steadily
// under load and never fully returns to baseline, so a long crawl that
// renders hundreds of pages through one browser would eventually exhaust
// memory; swapping in a fresh browser periodically keeps the footprint
// flat.
//
// BrowserManager is safe for concurrent use.
type BrowserManager struct {
	mu       sync.Mutex
	browser  *rod.Browser
	launcher *launcher.Launcher

	pages    atomic.Int64
	maxPages int64
	closed   atomic.Bool
}

// ManagerOption configures a BrowserManager.
type ManagerOption func(*BrowserManager)

// WithMaxPages sets how many pages a browser serves before recycling.
// Defaults to DefaultMaxPages.
func WithMaxPages(n int64) ManagerOption {
	return func(bm *BrowserManager) {
		bm.maxPages = n
	}
}

// NewBrowserManager launches a headless Chrome browser and returns its
// manager. Close must be called when the manager is no longer needed.
func NewBrowserManager(opts ...ManagerOption) (*BrowserManager, error) {
	bm := &BrowserManager{maxPages: DefaultMaxPages}
	for _, opt := range opts {
		opt(bm)
	}
	if err := bm.launch(); err != nil {
		return nil, err
	}
	return bm, nil
}

// Browser returns the current browser, recycling it first if the page
// budget is spent. Callers report page loads via IncrementPageCount.
func (bm *BrowserManager) Browser() *rod.Browser {
	bm.mu.Lock()
	defer bm.mu.Unlock()

	if bm.pages.Load() >= bm.maxPages {
		bm.recycle()
	}
	return bm.browser
}

// IncrementPageCount records one rendered page against the recycling
// budget.
func (bm *BrowserManager) IncrementPageCount() {
	bm.pages.Add(1)
}

// Close shuts the browser down. Safe to call more than once.
func (bm *BrowserManager) Close() error {
	if !bm.closed.CompareAndSwap(false, true) {
		return nil
	}

	bm.mu.Lock()
	defer bm.mu.Unlock()
	return bm.shutdown()
}

// launch starts a browser with flags that keep background pages from
// being throttled or killed mid-render.
func (bm *BrowserManager) launch() error {
	lnchr := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-backgrounding-occluded-windows").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Set("disable-hang-monitor").
		Leakless(true).
		Headless(true)

	u, err := lnchr.Launch()
	if err != nil {
		return fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		lnchr.Kill()
		return fmt.Errorf("connecting to browser: %w", err)
	}

	bm.browser = browser
	bm.launcher = lnchr
	return nil
}

// shutdown closes the current browser and launcher. Callers hold mu.
func (bm *BrowserManager) shutdown() error {
	var err error
	if bm.browser != nil {
		err = bm.browser.Close()
		bm.browser = nil
	}
	if bm.launcher != nil {
		bm.launcher.Kill()
		bm.launcher = nil
	}
	return err
}

// recycle replaces the browser with a fresh one. When the replacement
// fails to launch the old browser stays in service rather than leaving
// the crawl without a fetcher. Callers hold mu.
func (bm *BrowserManager) recycle() {
	old, oldLauncher := bm.browser, bm.launcher
	bm.browser, bm.launcher = nil, nil

	if err := bm.launch(); err != nil {
		bm.browser, bm.launcher = old, oldLauncher
		return
	}

	if old != nil {
		_ = old.Close()
	}
	if oldLauncher != nil {
		oldLauncher.Kill()
	}
	bm.pages.Store(0)
}

// LauncherPID returns the browser launcher's process ID. Tests use it to
// verify the process goes away on Close.
func (bm *BrowserManager) LauncherPID() int {
	bm.mu.Lock()
	defer bm.mu.Unlock()
	if bm.launcher == nil {
		return 0
	}
	return bm.launcher.PID()
}
