package interaction

import (
	"context"
	"fmt"
	"strconv"
)

// ToggleCheck sets the checked state of a checkbox or radio and emits one
// change event carrying the new state as data and "change" as inputType. The event is emitted even when the
// state does not change.
func (e *Engine) ToggleCheck(ctx context.Context, h Handle, d ToggleDirective) error {
	const op = "ToggleCheck"
	if h == nil {
		return newError(op, h, ErrMissingElement, "")
	}
	kind := h.Kind()
	if kind != KindCheckbox && kind != KindRadio {
		return newError(op, h, ErrWrongControlKind,
			fmt.Sprintf("element is not a checkbox or radio button: %s", kind))
	}
	ch, ok := h.(CheckableHandle)
	if !ok || !h.Capabilities().Has(Checkable) {
		return newError(op, h, ErrWrongControlKind, fmt.Sprintf("%s handle is not checkable", kind))
	}

	if err := ch.SetChecked(ctx, d.Selected); err != nil {
		return newError(op, h, err, "set checked")
	}
	if err := e.dispatch(ctx, h, formEvent(EventChange, EventChange, strconv.FormatBool(d.Selected))); err != nil {
		return newError(op, h, err, "")
	}
	return nil
}

// SelectOption picks an option of a discrete-choice control.
//
// SelectByFirst and SelectByLast take the boundary options. SelectByPosition
// takes the 1-based d.Position clamped into range, so bad positions never
// fail. The default matches d.Value exactly and fails with
// ErrNoMatchingOption, leaving the value untouched, when nothing matches.
func (e *Engine) SelectOption(ctx context.Context, h Handle, d ChoiceDirective) error {
	const op = "SelectOption"
	if h == nil {
		return newError(op, h, ErrMissingElement, "")
	}
	sel, ok := h.(SelectorHandle)
	if !ok || !h.Capabilities().Has(Selectable) {
		return newError(op, h, ErrNotASelector, fmt.Sprintf("got %s", h.Kind()))
	}

	options, err := sel.Options(ctx)
	if err != nil {
		return newError(op, h, err, "read options")
	}

	chosen, ok := resolveOption(options, d)
	if !ok {
		return newError(op, h, ErrNoMatchingOption, describeChoice(d, len(options)))
	}

	if err := h.SetValue(ctx, chosen.Value); err != nil {
		return newError(op, h, err, "set value")
	}
	if err := e.dispatch(ctx, h, formEvent(EventChange, "", chosen.Value)); err != nil {
		return newError(op, h, err, "")
	}
	return nil
}

func resolveOption(options []Option, d ChoiceDirective) (Option, bool) {
	if len(options) == 0 {
		return Option{}, false
	}
	switch d.SelectBy {
	case SelectByFirst:
		return options[0], true
	case SelectByLast:
		return options[len(options)-1], true
	case SelectByPosition:
		return options[clamp(d.Position-1, 0, len(options)-1)], true
	default:
		for _, o := range options {
			if o.Value == d.Value {
				return o, true
			}
		}
		return Option{}, false
	}
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}

func describeChoice(d ChoiceDirective, n int) string {
	if n == 0 {
		return "control has no options"
	}
	return fmt.Sprintf("no option with value %q among %d", d.Value, n)
}

// UploadFile attaches files to a file input and emits one bubbling change
// event. A control without the multiple attribute receives only the first
// file; the rest are dropped without error.
func (e *Engine) UploadFile(ctx context.Context, h Handle, files []File) error {
	const op = "UploadFile"
	if h == nil {
		return newError(op, h, ErrMissingElement, "")
	}
	fh, ok := h.(FileHandle)
	if !ok || h.Kind() != KindFile || !h.Capabilities().Has(FileAccepting) {
		return newError(op, h, ErrWrongControlKind, fmt.Sprintf("element is not a file input: %s", h.Kind()))
	}

	attach := files
	if !fh.AcceptsMultiple() && len(files) > 1 {
		attach = files[:1]
	}

	if err := fh.SetFiles(ctx, attach); err != nil {
		return newError(op, h, err, "set files")
	}
	if err := e.dispatch(ctx, h, bubblingChange()); err != nil {
		return newError(op, h, err, "")
	}
	return nil
}
