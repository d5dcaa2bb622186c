// inspect-widgets navigates to a page and prints the frame tree with every
// interactive widget it holds and the capability tags the interaction
// engine would assign it. The output is a reference for writing plan
// selectors.
//
// Usage:
//
//	go run ./scripts/inspect-widgets -url=https://example.com/signup
//
// With -manual the browser opens visibly and waits for ENTER, so you can
// log in or navigate before the inspection runs.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/go-rod/rod"

	"github.com/grez-lucas/web-interaction/internal/browser"
	"github.com/grez-lucas/web-interaction/internal/config"
)

func main() {
	pageURL := flag.String("url", "", "Page to inspect")
	manual := flag.Bool("manual", false, "Open a visible browser and wait for ENTER before inspecting")
	configPath := flag.String("config", "", "Optional YAML config file")
	flag.Parse()

	if *pageURL == "" {
		fmt.Println("Usage: go run ./scripts/inspect-widgets -url=<page>")
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

	ctx := context.Background()
	if err := page.Navigate(*pageURL); err != nil {
		fmt.Printf("Error navigating: %v\n", err)
		os.Exit(1)
	}

	if *manual {
		fmt.Print("Navigate to the page to inspect, then press ENTER: ")
		_, _ = bufio.NewReader(os.Stdin).ReadString('\n')
	}

	if err := browser.WaitForIFrames(ctx, page); err != nil {
		fmt.Printf("Error waiting for page: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("================================================================")
	fmt.Printf("  WIDGETS: %s\n", page.MustInfo().URL)
	fmt.Println("================================================================")
	inspectFrame(ctx, page, "main", 1)
}

// inspectFrame prints the widgets of a frame, then recurses into its
// visible child frames.
func inspectFrame(ctx context.Context, page *rod.Page, path string, depth int) {
	indent := strings.Repeat("  ", depth)

	widgets, err := browser.ListWidgets(ctx, page)
	if err != nil {
		fmt.Printf("%s(cannot list widgets: %v)\n", indent, err)
	}
	if len(widgets) == 0 && err == nil {
		fmt.Printf("%s(no widgets)\n", indent)
	}
	for _, w := range widgets {
		where := ""
		if w.ShadowHost != "" {
			where = "  shadow=" + w.ShadowHost
		}
		fmt.Printf("%s%-40s  kind=%-10s  caps=%s%s\n", indent, w.Description, w.Kind, w.Capabilities, where)
	}

	for i, frame := range browser.Frames(ctx, page) {
		childPath := fmt.Sprintf("%s > frame[%d]", path, i)
		fmt.Printf("\n%sFRAME %s  url=%s\n", indent, childPath, truncate(frameURL(frame), 80))
		inspectFrame(ctx, frame, childPath, depth+1)
	}
}

func frameURL(frame *rod.Page) string {
	info, err := frame.Info()
	if err != nil {
		return ""
	}
	return info.URL
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
