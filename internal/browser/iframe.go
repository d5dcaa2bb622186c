package browser

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-rod/rod"
)

// domStableWindow is how long the DOM must stay unchanged to count as stable.
const domStableWindow = time.Second

// ErrNotFound is returned by Locate when no frame holds the selector.
var ErrNotFound = errors.New("element not found")

// WaitForIFrames recursively waits for DOM stability on all visible iframes.
// This ensures that iframe content is fully loaded before interaction.
func WaitForIFrames(ctx context.Context, page *rod.Page) error {
	page = page.Context(ctx)
	if err := page.WaitDOMStable(domStableWindow, 0); err != nil {
		return err
	}

	for _, frame := range visibleFrames(page) {
		if err := WaitForIFrames(ctx, frame); err != nil {
			return err
		}
	}
	return nil
}

// Locate finds the first element matching selector in the page, looking
// through open shadow roots first and then recursively into every visible
// iframe. It does not wait for the element to appear.
func Locate(ctx context.Context, page *rod.Page, selector string) (*rod.Element, error) {
	el, err := queryDeep(ctx, page, selector)
	if err == nil {
		return el, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	for _, frame := range visibleFrames(page.Context(ctx)) {
		el, err := Locate(ctx, frame, selector)
		if err == nil {
			return el, nil
		}
		if !errors.Is(err, ErrNotFound) {
			return nil, err
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, selector)
}

// visibleFrames returns the frame contexts of the visible iframes directly
// inside page. Frames that cannot be entered (cross-origin, detached) are
// skipped.
func visibleFrames(page *rod.Page) []*rod.Page {
	iframes, err := page.Elements("iframe")
	if err != nil {
		return nil
	}

	var frames []*rod.Page
	for _, iframe := range iframes {
		if visible, _ := iframe.Visible(); !visible {
			continue
		}
		frame, err := iframe.Frame()
		if err != nil {
			continue
		}
		frames = append(frames, frame)
	}
	return frames
}
