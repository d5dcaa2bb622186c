// Package testutil provides testing utilities for the browser packages:
// fixture pages served to a headless browser through request hijacking.
package testutil

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"go.uber.org/zap"
)

// FixtureOrigin is the fake origin fixture pages are served from. Requests
// never leave the browser, so the host does not need to resolve.
const FixtureOrigin = "http://fixtures.test"

type fixture struct {
	mimeType string
	body     []byte
}

// FixtureRouter serves in-memory pages during test execution.
type FixtureRouter struct {
	// pages maps URL paths to fixtures
	pages  map[string]fixture
	logger *zap.Logger
}

// FixtureOption configures a FixtureRouter.
type FixtureOption func(*FixtureRouter)

// WithLogger logs matched and unmatched requests.
func WithLogger(logger *zap.Logger) FixtureOption {
	return func(r *FixtureRouter) {
		r.logger = logger
	}
}

// NewFixtureRouter creates an empty router.
func NewFixtureRouter(opts ...FixtureOption) *FixtureRouter {
	r := &FixtureRouter{
		pages:  make(map[string]fixture),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// AddHTML registers an HTML page at path and returns its full URL.
func (r *FixtureRouter) AddHTML(path, html string) string {
	return r.Add(path, "text/html; charset=utf-8", []byte(html))
}

// Add registers a body at path and returns its full URL.
func (r *FixtureRouter) Add(path, mimeType string, body []byte) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	r.pages[path] = fixture{mimeType: mimeType, body: body}
	return FixtureOrigin + path
}

// Middleware returns a Rod hijack handler that serves registered fixtures.
// Use with router.MustAdd(FixtureOrigin+"/*", fixtures.Middleware()).
func (r *FixtureRouter) Middleware() func(*rod.Hijack) {
	return func(ctx *rod.Hijack) {
		reqURL := ctx.Request.URL()

		fx, found := r.pages[reqURL.Path]
		if !found {
			r.logger.Debug("no fixture for request", zap.String("url", reqURL.String()))
			r.serveNotFound(ctx)
			return
		}

		r.logger.Debug("fixture matched", zap.String("url", reqURL.String()))
		payload := ctx.Response.Payload()
		payload.ResponseCode = 200
		payload.ResponseHeaders = []*proto.FetchHeaderEntry{
			{Name: "Content-Type", Value: fx.mimeType},
		}
		payload.Body = fx.body
	}
}

// serveNotFound serves a 404 response for unmatched requests.
func (r *FixtureRouter) serveNotFound(ctx *rod.Hijack) {
	payload := ctx.Response.Payload()
	payload.ResponseCode = 404
	payload.ResponseHeaders = []*proto.FetchHeaderEntry{
		{Name: "Content-Type", Value: "application/json"},
	}
	payload.Body = []byte(`{"error": "no fixture registered for URL"}`)
}

// Serve hijacks fixture-origin requests of page until the test ends.
func (r *FixtureRouter) Serve(t *testing.T, page *rod.Page) {
	t.Helper()

	router := page.HijackRequests()
	router.MustAdd(FixtureOrigin+"/*", r.Middleware())
	go router.Run()
	t.Cleanup(func() { _ = router.Stop() })
}

// SetupPage creates a Rod browser and page for testing. The browser connects
// to a headless Chromium instance. Both are closed via t.Cleanup. The test is
// skipped when no browser binary is installed.
func SetupPage(t *testing.T) *rod.Page {
	t.Helper()

	if _, found := launcher.LookPath(); !found {
		t.Skip("Skipping: no Chromium binary found")
	}

	browser := rod.New().MustConnect()
	t.Cleanup(func() { browser.MustClose() })

	page := browser.MustPage()
	t.Cleanup(func() { page.MustClose() })

	return page
}

// LoadFixture reads an HTML fixture from this package's testdata directory.
func LoadFixture(t *testing.T, name string) string {
	t.Helper()

	// Get path relative to this file
	_, filename, _, _ := runtime.Caller(0)
	path := filepath.Join(filepath.Dir(filename), "testdata", "fixtures", name+".html")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to load fixture %s: %v", name, err)
	}

	return string(data)
}
