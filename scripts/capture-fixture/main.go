// capture-fixture saves a live page as an HTML fixture for the browser
// tests. Same-origin iframes are inlined, typed values are cleared and
// secrets are redacted before the file is written.
//
// Usage:
//
//	go run ./scripts/capture-fixture -url=https://example.com/signup -name=signup
//
// With -manual the browser opens visibly and the page is captured after you
// press ENTER, so you can log in or open a dialog first.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-rod/rod"

	"github.com/grez-lucas/web-interaction/internal/browser"
	"github.com/grez-lucas/web-interaction/internal/config"
	"github.com/grez-lucas/web-interaction/internal/testutil"
)

func main() {
	pageURL := flag.String("url", "", "Page to capture")
	name := flag.String("name", "", "Fixture name, written as <name>.html")
	outputDir := flag.String("output", filepath.Join("internal", "testutil", "testdata", "fixtures"), "Output directory")
	manual := flag.Bool("manual", false, "Open a visible browser and wait for ENTER before capturing")
	configPath := flag.String("config", "", "Optional YAML config file")
	flag.Parse()

	if *pageURL == "" || *name == "" {
		fmt.Println("Usage: go run ./scripts/capture-fixture -url=<page> -name=<fixture>")
		os.Exit(1)
	}

	if err := os.MkdirAll(*outputDir, 0o755); err != nil {
		fmt.Printf("Error creating directory: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}
	if *manual {
		cfg.Browser.Headless = false
	}

	b, page, err := browser.Launch(cfg.Browser)
	if err != nil {
		fmt.Printf("Error launching browser: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = b.Close() }()

	if err := page.Navigate(*pageURL); err != nil {
		fmt.Printf("Error navigating: %v\n", err)
		os.Exit(1)
	}
	if *manual {
		fmt.Print("Prepare the page, then press ENTER to capture: ")
		_, _ = bufio.NewReader(os.Stdin).ReadString('\n')
	}
	if err := browser.WaitForIFrames(context.Background(), page); err != nil {
		fmt.Printf("Error waiting for page: %v\n", err)
		os.Exit(1)
	}

	html, inlined, err := inlineIframesAndCapture(page)
	if err != nil {
		fmt.Printf("Error capturing HTML: %v\n", err)
		os.Exit(1)
	}
	if inlined > 0 {
		fmt.Printf("Inlined %d iframe(s)\n", inlined)
	}

	html, report, err := testutil.SanitizeFixture(html, testutil.DefaultRedactions)
	if err != nil {
		fmt.Printf("Error sanitizing: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Cleared %d control value(s)\n", report.ClearedControls)
	for desc, n := range report.Matches {
		fmt.Printf("  - %s: %d redacted\n", desc, n)
	}

	path := filepath.Join(*outputDir, *name+".html")
	if err := os.WriteFile(path, []byte(html), 0o644); err != nil {
		fmt.Printf("Error saving fixture: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Saved %s\n", path)
	fmt.Println("Review the file before committing it.")
}

// inlineIframesAndCapture replaces every accessible <iframe> in the live DOM
// with a div holding the frame's body, then returns the page HTML. Fixtures
// are served from a single fake origin, so frames would not load otherwise.
func inlineIframesAndCapture(page *rod.Page) (string, int, error) {
	iframes, err := page.Elements("iframe")
	if err != nil {
		return "", 0, fmt.Errorf("list iframes: %w", err)
	}
	if len(iframes) > 0 {
		if _, err := page.Eval(inlineIframesJS); err != nil {
			fmt.Printf("Could not inline iframes (cross-origin?): %v\n", err)
			iframes = nil
		}
	}

	html, err := page.HTML()
	if err != nil {
		return "", 0, err
	}
	return html, len(iframes), nil
}

const inlineIframesJS = `() => {
	function inline(root) {
		root.querySelectorAll('iframe').forEach((iframe) => {
			try {
				const doc = iframe.contentDocument || iframe.contentWindow.document;
				if (!doc || !doc.body) return;
				inline(doc);

				const box = root.createElement('div');
				box.setAttribute('data-captured-iframe', 'true');
				box.setAttribute('data-iframe-src', iframe.src || '');
				box.setAttribute('data-iframe-name', iframe.name || '');

				let html = '';
				if (doc.head) {
					doc.head.querySelectorAll('style').forEach((style) => {
						html += '<style>' + style.textContent + '<\/style>';
					});
				}
				box.innerHTML = html + doc.body.innerHTML;
				iframe.parentNode.replaceChild(box, iframe);
			} catch (e) {
				iframe.setAttribute('data-iframe-error', e.message);
			}
		});
	}
	inline(document);
}`
