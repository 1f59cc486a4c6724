package rod

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
)

// DefaultMaxPages is the default number of pages before browser recycling.
// A long-running watcher opens a fresh page for every target scan and every
// detail fingerprint, so the count grows quickly.
const DefaultMaxPages = 75

// browserHandle is one launched browser instance. The indirection keeps
// the recycling policy testable without a real Chrome.
type browserHandle interface {
	Browser() *rod.Browser
	PID() int
	Close() error
}

// chromeHandle pairs a connected browser with its launcher process.
type chromeHandle struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
}

// launchChrome starts a headless Chrome instance with stability flags.
func launchChrome() (browserHandle, error) {
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
		return nil, fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		lnchr.Kill()
		return nil, fmt.Errorf("connecting to browser: %w", err)
	}

	return &chromeHandle{browser: browser, launcher: lnchr}, nil
}

func (h *chromeHandle) Browser() *rod.Browser { return h.browser }

func (h *chromeHandle) PID() int { return h.launcher.PID() }

func (h *chromeHandle) Close() error {
	err := h.browser.Close()
	h.launcher.Kill()
	return err
}

// BrowserManager manages browser lifecycle with automatic recycling.
// Chrome accumulates memory over time and the baseline never returns to
// initial levels even with proper page cleanup, so the browser is replaced
// after maxPages pages have been opened.
//
// BrowserManager is safe for concurrent use.
type BrowserManager struct {
	launch    func() (browserHandle, error)
	handle    browserHandle
	pageCount int64
	maxPages  int64
	mu        sync.Mutex
	closed    atomic.Bool
}

// ManagerOption configures a BrowserManager.
type ManagerOption func(*BrowserManager)

// WithMaxPages sets the maximum number of pages before the browser is
// recycled. Defaults to DefaultMaxPages if not specified.
func WithMaxPages(n int64) ManagerOption {
	return func(bm *BrowserManager) {
		bm.maxPages = n
	}
}

// NewBrowserManager launches a headless Chrome browser and returns a
// manager that recycles it after maxPages pages. Close must be called when
// the manager is no longer needed.
func NewBrowserManager(opts ...ManagerOption) (*BrowserManager, error) {
	return newBrowserManager(launchChrome, opts...)
}

func newBrowserManager(launch func() (browserHandle, error), opts ...ManagerOption) (*BrowserManager, error) {
	bm := &BrowserManager{
		launch:   launch,
		maxPages: DefaultMaxPages,
	}
	for _, opt := range opts {
		opt(bm)
	}

	handle, err := bm.launch()
	if err != nil {
		return nil, err
	}
	bm.handle = handle

	return bm, nil
}

// Browser returns the current browser instance, recycling first if the
// page count has reached maxPages. Callers should call IncrementPageCount
// after opening a page.
func (bm *BrowserManager) Browser() *rod.Browser {
	bm.mu.Lock()
	defer bm.mu.Unlock()

	if atomic.LoadInt64(&bm.pageCount) >= bm.maxPages {
		bm.recycle()
	}

	return bm.handle.Browser()
}

// IncrementPageCount tracks progress toward the recycling threshold.
func (bm *BrowserManager) IncrementPageCount() {
	atomic.AddInt64(&bm.pageCount, 1)
}

// Close releases browser resources. Close is safe to call multiple times.
func (bm *BrowserManager) Close() error {
	if !bm.closed.CompareAndSwap(false, true) {
		return nil
	}

	bm.mu.Lock()
	defer bm.mu.Unlock()

	if bm.handle == nil {
		return nil
	}
	err := bm.handle.Close()
	bm.handle = nil
	return err
}

// recycle replaces the current browser with a fresh one. The new browser
// is launched before the old one is closed; if the launch fails the aging
// browser is kept so scanning can continue, and the page count is left
// past the threshold so the next call retries.
// Must be called with mu held.
func (bm *BrowserManager) recycle() {
	fresh, err := bm.launch()
	if err != nil {
		return
	}

	old := bm.handle
	bm.handle = fresh
	if old != nil {
		_ = old.Close()
	}
	atomic.StoreInt64(&bm.pageCount, 0)
}

// LauncherPID returns the process ID of the browser launcher.
// This method exists for testing purposes to verify proper cleanup.
func (bm *BrowserManager) LauncherPID() int {
	bm.mu.Lock()
	defer bm.mu.Unlock()
	if bm.handle == nil {
		return 0
	}
	return bm.handle.PID()
}
