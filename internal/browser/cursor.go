package browser

import (
	"context"
	"fmt"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
)

// Cursor moves the mouse to elements along a straight path. It makes no
// attempt at realistic trajectories.
type Cursor struct {
	page  *rod.Page
	steps int
}

// NewCursor creates a cursor moving in the given number of steps.
func NewCursor(page *rod.Page, steps int) *Cursor {
	if steps < 1 {
		steps = 1
	}
	return &Cursor{page: page, steps: steps}
}

// MoveTo scrolls el into view and moves the mouse to its center.
func (c *Cursor) MoveTo(ctx context.Context, el *rod.Element) error {
	el = el.Context(ctx)
	if err := el.ScrollIntoView(); err != nil {
		return fmt.Errorf("scroll into view: %w", err)
	}
	shape, err := el.Shape()
	if err != nil {
		return fmt.Errorf("element shape: %w", err)
	}
	box := shape.Box()
	if box == nil {
		return fmt.Errorf("element has no box")
	}
	target := proto.Point{X: box.X + box.Width/2, Y: box.Y + box.Height/2}
	return c.page.Context(ctx).Mouse.MoveLinear(target, c.steps)
}

// Click moves to el and presses the left button once.
func (c *Cursor) Click(ctx context.Context, el *rod.Element) error {
	if err := c.MoveTo(ctx, el); err != nil {
		return err
	}
	return c.page.Context(ctx).Mouse.Click(proto.InputMouseButtonLeft, 1)
}
