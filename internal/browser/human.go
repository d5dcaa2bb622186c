package browser

import (
	"context"
	"time"

	"github.com/go-rod/rod"
	"go.uber.org/zap"

	"github.com/grez-lucas/web-interaction/internal/interaction"
)

// HumanOptions tunes the primitives bundled in a Human.
type HumanOptions struct {
	Timing      interaction.Timing
	KeyMinDelay time.Duration
	KeyMaxDelay time.Duration
	CursorSteps int
}

// DefaultHumanOptions returns the default settle intervals and a 50-150ms
// keystroke rhythm.
func DefaultHumanOptions() HumanOptions {
	return HumanOptions{
		Timing:      interaction.DefaultTiming(),
		KeyMinDelay: 50 * time.Millisecond,
		KeyMaxDelay: 150 * time.Millisecond,
		CursorSteps: 20,
	}
}

// Human bundles the cursor, form and key-press capabilities for one page.
type Human struct {
	Cursor   *Cursor
	Form     *interaction.Engine
	KeyPress *KeyPress

	page   *rod.Page
	logger *zap.Logger
}

// NewHuman wires the interaction engine to the page through a Composer and
// a Pacer.
func NewHuman(page *rod.Page, logger *zap.Logger, opts HumanOptions) *Human {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Human{
		Cursor:   NewCursor(page, opts.CursorSteps),
		Form:     interaction.New(NewComposer(logger), NewPacer(logger), interaction.WithTiming(opts.Timing)),
		KeyPress: NewKeyPress(opts.KeyMinDelay, opts.KeyMaxDelay),
		page:     page,
		logger:   logger,
	}
}

// Handle locates selector and wraps the element as a widget handle.
func (h *Human) Handle(ctx context.Context, selector string) (interaction.Handle, error) {
	el, err := Locate(ctx, h.page, selector)
	if err != nil {
		return nil, err
	}
	handle, err := NewElement(ctx, el, h.logger.With(zap.String("selector", selector)))
	if err != nil {
		return nil, err
	}
	return handle, nil
}

// Click locates selector and clicks it with the cursor.
func (h *Human) Click(ctx context.Context, selector string) error {
	el, err := Locate(ctx, h.page, selector)
	if err != nil {
		return err
	}
	return h.Cursor.Click(ctx, el)
}

// Press locates selector and sends raw keystrokes to it.
func (h *Human) Press(ctx context.Context, selector, text string) error {
	el, err := Locate(ctx, h.page, selector)
	if err != nil {
		return err
	}
	return h.KeyPress.Type(ctx, el, text)
}
