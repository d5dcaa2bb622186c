package browser

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-rod/rod"

	"github.com/grez-lucas/web-interaction/internal/interaction"
)

// deepQueryJS finds the first element matching a selector in the document or
// in any open shadow root below it, depth-first.
//
// Design systems built on Web Components (Polymer, Lit, Cells) hide their
// native <input> elements behind one or more shadow roots, where a plain
// querySelector never reaches.
const deepQueryJS = `(selector) => {
	const MAX_DEPTH = 100;

	function search(root, depth) {
		if (depth > MAX_DEPTH) return null;
		const found = root.querySelector(selector);
		if (found) return found;
		for (const el of root.querySelectorAll('*')) {
			if (!el.shadowRoot) continue;
			const inner = search(el.shadowRoot, depth + 1);
			if (inner) return inner;
		}
		return null;
	}

	return search(document, 0);
}`

func queryDeep(ctx context.Context, page *rod.Page, selector string) (*rod.Element, error) {
	el, err := page.Context(ctx).Sleeper(rod.NotFoundSleeper).ElementByJS(rod.Eval(deepQueryJS, selector))
	if err != nil {
		var notFound *rod.ElementNotFoundError
		if errors.As(err, &notFound) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, selector)
		}
		return nil, err
	}
	return el, nil
}

// listWidgetsJS walks the document and every open shadow root and reports
// each interactive control. Shadow content is visited before the host's
// siblings so the output follows visual nesting.
const listWidgetsJS = `() => {
	const MAX_DEPTH = 100;
	const widgets = [];

	function isWidget(el) {
		const tag = el.tagName;
		return tag === 'INPUT' || tag === 'TEXTAREA' || tag === 'SELECT' || el.isContentEditable;
	}

	function visit(root, host, depth) {
		if (depth > MAX_DEPTH) return;
		for (const el of root.querySelectorAll('*')) {
			if (isWidget(el) && !(el.parentElement && el.parentElement.isContentEditable)) {
				widgets.push({
					tag: el.tagName.toLowerCase(),
					type: (el.type || '').toLowerCase(),
					id: el.id || '',
					name: el.getAttribute('name') || '',
					multiple: !!el.multiple,
					editable: !!el.isContentEditable,
					host: host,
				});
			}
			if (el.shadowRoot) {
				visit(el.shadowRoot, el.tagName.toLowerCase(), depth + 1);
			}
		}
	}

	visit(document, '', 0);
	return JSON.stringify(widgets);
}`

// WidgetInfo describes one interactive control found on a page.
type WidgetInfo struct {
	Description  string
	Kind         interaction.ControlKind
	Capabilities interaction.Capability
	// ShadowHost is the tag of the shadow host holding the control, empty
	// for light DOM controls.
	ShadowHost string
}

// ListWidgets reports every interactive control in the page's document,
// including those inside open shadow roots. Iframes are not entered; walk
// them with Frames.
func ListWidgets(ctx context.Context, page *rod.Page) ([]WidgetInfo, error) {
	res, err := page.Context(ctx).Eval(listWidgetsJS)
	if err != nil {
		return nil, fmt.Errorf("list widgets: %w", err)
	}

	var raw []struct {
		probeResult
		Host string `json:"host"`
	}
	if err := json.Unmarshal([]byte(res.Value.Str()), &raw); err != nil {
		return nil, fmt.Errorf("parse widget list: %w", err)
	}

	widgets := make([]WidgetInfo, len(raw))
	for i, w := range raw {
		kind, caps := w.classify()
		widgets[i] = WidgetInfo{
			Description:  w.describe(),
			Kind:         kind,
			Capabilities: caps,
			ShadowHost:   w.Host,
		}
	}
	return widgets, nil
}

// Frames returns the visible child frames of page, for callers that walk the
// frame tree themselves.
func Frames(ctx context.Context, page *rod.Page) []*rod.Page {
	return visibleFrames(page.Context(ctx))
}
