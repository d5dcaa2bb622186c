package browser

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/grez-lucas/web-interaction/internal/interaction"
)

// dispatchEventJS builds the event subclass matching the descriptor and
// dispatches it on the element. Legacy key fields (keyCode, which) are
// ignored by the KeyboardEvent constructor, so they are defined on the
// instance instead.
const dispatchEventJS = `(ev) => {
	const init = {bubbles: ev.bubbles, cancelable: ev.cancelable, composed: ev.composed};
	let event;
	switch (ev.type) {
	case 'input':
		event = new InputEvent('input', Object.assign(init, {inputType: ev.inputType || '', data: ev.data ?? null}));
		break;
	case 'keydown':
	case 'keyup': {
		const k = ev.key || {};
		event = new KeyboardEvent(ev.type, Object.assign(init, {key: k.key, location: k.location || 0}));
		Object.defineProperty(event, 'keyCode', {get: () => k.keyCode});
		Object.defineProperty(event, 'which', {get: () => k.which});
		break;
	}
	case 'paste': {
		const dt = new DataTransfer();
		if (ev.clipboardData) dt.setData(ev.clipboardData.mimeType, ev.clipboardData.data);
		event = new ClipboardEvent('paste', Object.assign(init, {clipboardData: dt}));
		break;
	}
	default:
		event = new Event(ev.type, init);
		if (ev.inputType) Object.defineProperty(event, 'inputType', {get: () => ev.inputType});
		if (ev.data !== undefined) Object.defineProperty(event, 'data', {get: () => ev.data});
	}
	return this.dispatchEvent(event);
}`

// Composer dispatches synthetic events on Element handles.
type Composer struct {
	logger *zap.Logger
}

// NewComposer creates a composer logging each dispatch at debug level.
func NewComposer(logger *zap.Logger) *Composer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Composer{logger: logger}
}

// Dispatch implements interaction.Composer. Handles not created by
// NewElement are rejected.
func (c *Composer) Dispatch(ctx context.Context, h interaction.Handle, ev interaction.EventDescriptor) error {
	el, ok := h.(*Element)
	if !ok || el == nil {
		return fmt.Errorf("%w: composer needs a browser element, got %T", interaction.ErrUnsupportedWidgetKind, h)
	}

	res, err := el.el.Context(ctx).Eval(dispatchEventJS, ev)
	if err != nil {
		return err
	}
	c.logger.Debug("event dispatched",
		zap.String("element", el.name),
		zap.String("type", ev.Type),
		zap.String("inputType", ev.InputType),
		zap.Bool("notCancelled", res.Value.Bool()))
	return nil
}

// Pacer suspends the calling goroutine, returning early when ctx is done.
type Pacer struct {
	logger *zap.Logger
}

// NewPacer creates a pacer logging each suspension at debug level.
func NewPacer(logger *zap.Logger) *Pacer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pacer{logger: logger}
}

// Suspend implements interaction.Pacer.
func (p *Pacer) Suspend(ctx context.Context, d time.Duration) error {
	p.logger.Debug("suspending", zap.Duration("duration", d))
	return sleep(ctx, d)
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
