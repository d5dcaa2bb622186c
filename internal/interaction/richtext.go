package interaction

import "context"

// InsertText inserts d.Value into any focusable element, typically a
// contenteditable region, with one content-insertion command.
//
// The whole value goes in at once and d.Delay is ignored. ClearValue only
// selects the existing content: the insertion command replaces the
// selection, so no deletion event is sent. After insertion the content is
// reselected and an ArrowRight keydown moves the caret to the end, which is
// what editors with their own text model expect to observe.
func (e *Engine) InsertText(ctx context.Context, h Handle, d TextDirective) error {
	const op = "InsertText"
	if h == nil {
		return newError(op, h, ErrMissingElement, "")
	}

	if err := h.Focus(ctx); err != nil {
		return newError(op, h, err, "focus")
	}

	if d.ClearValue {
		if err := h.SelectAllContent(ctx); err != nil {
			return newError(op, h, err, "select content")
		}
		if err := e.settle(ctx, e.timing.CommandClearSettle); err != nil {
			return newError(op, h, err, "")
		}
	}

	if err := h.Focus(ctx); err != nil {
		return newError(op, h, err, "focus")
	}
	if err := h.InsertContent(ctx, d.Value); err != nil {
		return newError(op, h, err, "insert command")
	}
	if err := e.dispatch(ctx, h, bubblingChange()); err != nil {
		return newError(op, h, err, "")
	}
	if err := e.settle(ctx, e.timing.CommandInsertSettle); err != nil {
		return newError(op, h, err, "")
	}

	if err := h.Focus(ctx); err != nil {
		return newError(op, h, err, "focus")
	}
	if err := h.SelectAllContent(ctx); err != nil {
		return newError(op, h, err, "select content")
	}
	if err := e.settle(ctx, e.timing.CommandSelectSettle); err != nil {
		return newError(op, h, err, "")
	}

	if err := e.dispatch(ctx, h, keyDown(KeyArrowRight)); err != nil {
		return newError(op, h, err, "move caret")
	}

	if err := h.Blur(ctx); err != nil {
		return newError(op, h, err, "blur")
	}
	return nil
}

// PasteText inserts d.Value by dispatching a paste event carrying a
// text/plain clipboard payload. Targets wired to clipboard events rather
// than keystrokes or commands accept this path.
//
// Unlike InsertText, ClearValue deletes the selected content explicitly
// with a Backspace keydown, since a paste does not replace the selection in
// every target.
func (e *Engine) PasteText(ctx context.Context, h Handle, d TextDirective) error {
	const op = "PasteText"
	if h == nil {
		return newError(op, h, ErrMissingElement, "")
	}

	if err := h.Focus(ctx); err != nil {
		return newError(op, h, err, "focus")
	}

	if d.ClearValue {
		if err := h.SelectAllContent(ctx); err != nil {
			return newError(op, h, err, "select content")
		}
		if err := e.settle(ctx, e.timing.PasteClearSettle); err != nil {
			return newError(op, h, err, "")
		}
		if err := e.dispatch(ctx, h, keyDown(KeyBackspace)); err != nil {
			return newError(op, h, err, "delete content")
		}
	}

	if err := h.Focus(ctx); err != nil {
		return newError(op, h, err, "focus")
	}
	if err := e.dispatch(ctx, h, paste(d.Value)); err != nil {
		return newError(op, h, err, "")
	}
	if err := e.settle(ctx, e.timing.PasteSettle); err != nil {
		return newError(op, h, err, "")
	}
	if err := e.dispatch(ctx, h, bubblingChange()); err != nil {
		return newError(op, h, err, "")
	}

	if err := h.Blur(ctx); err != nil {
		return newError(op, h, err, "blur")
	}
	return nil
}

// DeleteText dispatches a single Backspace keydown on h.
func (e *Engine) DeleteText(ctx context.Context, h Handle) error {
	if h == nil {
		return newError("DeleteText", h, ErrMissingElement, "")
	}
	if err := e.dispatch(ctx, h, keyDown(KeyBackspace)); err != nil {
		return newError("DeleteText", h, err, "")
	}
	return nil
}
