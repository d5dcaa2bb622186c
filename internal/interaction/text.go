package interaction

import (
	"context"
	"fmt"
	"unicode/utf8"
)

// TypeText types d.Value into a textual handle one character at a time.
//
// Every character appends to the handle's value and emits an insertText
// input event followed by a change event, then waits d.Delay. With
// d.ClearValue the field is emptied first with a single
// deleteContentBackward input event.
//
// d.Value must be valid UTF-8; otherwise ErrInvalidText is returned before
// the handle is touched.
//
// Typing is not deduplicated: applying the same directive twice without
// ClearValue leaves the value twice.
func (e *Engine) TypeText(ctx context.Context, h Handle, d TextDirective) error {
	const op = "TypeText"
	if h == nil {
		return newError(op, h, ErrMissingElement, "")
	}
	if !h.Capabilities().Has(Textual) {
		return newError(op, h, ErrUnsupportedWidgetKind,
			fmt.Sprintf("only text inputs and textareas are supported, got %s", h.Kind()))
	}
	if !utf8.ValidString(d.Value) {
		return newError(op, h, ErrInvalidText, fmt.Sprintf("%q", d.Value))
	}

	if err := h.Focus(ctx); err != nil {
		return newError(op, h, err, "focus")
	}

	value := ""
	if d.ClearValue {
		if err := h.SetValue(ctx, ""); err != nil {
			return newError(op, h, err, "clear value")
		}
		if err := e.dispatchForm(ctx, h, formEvent(EventInput, InputDeleteContentBackward, "")); err != nil {
			return newError(op, h, err, "clear value")
		}
	} else {
		prior, err := h.Value(ctx)
		if err != nil {
			return newError(op, h, err, "read value")
		}
		value = prior
	}

	for _, char := range d.Value {
		value += string(char)
		if err := h.SetValue(ctx, value); err != nil {
			return newError(op, h, err, fmt.Sprintf("append %q", char))
		}
		if err := e.dispatchForm(ctx, h, formEvent(EventInput, InputInsertText, string(char))); err != nil {
			return newError(op, h, err, fmt.Sprintf("append %q", char))
		}
		if err := e.settle(ctx, d.Delay); err != nil {
			return newError(op, h, err, "")
		}
	}

	if err := h.Blur(ctx); err != nil {
		return newError(op, h, err, "blur")
	}
	return nil
}
