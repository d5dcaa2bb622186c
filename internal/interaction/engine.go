package interaction

import (
	"context"
	"fmt"
	"time"
)

// Timing holds the settle intervals waited between steps of the rich-text
// strategies. They give a host application time to catch up with the
// previous event.
type Timing struct {
	// CommandClearSettle follows selecting all content before a command insertion.
	CommandClearSettle time.Duration
	// CommandInsertSettle follows the insertion command and its change event.
	CommandInsertSettle time.Duration
	// CommandSelectSettle follows re-selecting the content, before the caret key.
	CommandSelectSettle time.Duration
	// PasteClearSettle follows selecting all content before the paste path deletes it.
	PasteClearSettle time.Duration
	// PasteSettle follows the paste event, before the change event.
	PasteSettle time.Duration
}

// DefaultTiming returns the intervals observed to work with common editors.
func DefaultTiming() Timing {
	return Timing{
		CommandClearSettle:  100 * time.Millisecond,
		CommandInsertSettle: 300 * time.Millisecond,
		CommandSelectSettle: 300 * time.Millisecond,
		PasteClearSettle:    100 * time.Millisecond,
		PasteSettle:         10 * time.Millisecond,
	}
}

// Engine runs interaction strategies against widget handles.
//
// The engine holds no locks. Callers serialize directives targeting the same
// handle. A strategy is not atomic: if a collaborator fails or the context
// is cancelled after the first event, the handle keeps whatever was applied
// so far.
type Engine struct {
	composer Composer
	pacer    Pacer
	timing   Timing
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithTiming overrides the default settle intervals.
func WithTiming(t Timing) EngineOption {
	return func(e *Engine) {
		e.timing = t
	}
}

// New creates an engine dispatching through composer and pausing through pacer.
func New(composer Composer, pacer Pacer, opts ...EngineOption) *Engine {
	e := &Engine{
		composer: composer,
		pacer:    pacer,
		timing:   DefaultTiming(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Timing returns the settle intervals in use.
func (e *Engine) Timing() Timing {
	return e.timing
}

func (e *Engine) dispatch(ctx context.Context, h Handle, ev EventDescriptor) error {
	if err := e.composer.Dispatch(ctx, h, ev); err != nil {
		return fmt.Errorf("dispatch %s: %w", ev.Type, err)
	}
	return nil
}

// dispatchForm emits ev followed by the trailing change event native
// controls fire after a value mutation.
func (e *Engine) dispatchForm(ctx context.Context, h Handle, ev EventDescriptor) error {
	if err := e.dispatch(ctx, h, ev); err != nil {
		return err
	}
	return e.dispatch(ctx, h, formChange())
}

func (e *Engine) settle(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	if err := e.pacer.Suspend(ctx, d); err != nil {
		return fmt.Errorf("suspend %s: %w", d, err)
	}
	return nil
}
