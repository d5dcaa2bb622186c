package browser

import (
	"context"
	"math/rand"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/input"
)

// KeyPress is the raw key-press primitive. Unlike the interaction engine,
// which synthesises DOM events, it drives the browser's input pipeline, so
// the page sees trusted keydown/keypress/keyup events.
type KeyPress struct {
	minDelay time.Duration
	maxDelay time.Duration
	rng      *rand.Rand
}

// NewKeyPress creates a key-press primitive that waits a random interval in
// [minDelay, maxDelay] between keystrokes of Type.
func NewKeyPress(minDelay, maxDelay time.Duration) *KeyPress {
	if maxDelay < minDelay {
		maxDelay = minDelay
	}
	return &KeyPress{
		minDelay: minDelay,
		maxDelay: maxDelay,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (k *KeyPress) pause() time.Duration {
	span := int64(k.maxDelay - k.minDelay)
	if span <= 0 {
		return k.minDelay
	}
	return k.minDelay + time.Duration(k.rng.Int63n(span))
}

// Type types text into an element with human-like timing.
// It uses Element.Type() which properly triggers keyboard events (keydown/keyup).
// With a zero delay range it falls back to TypeFast.
func (k *KeyPress) Type(ctx context.Context, el *rod.Element, text string) error {
	el = el.Context(ctx)
	if k.maxDelay <= 0 {
		return TypeFast(el, text)
	}
	for _, char := range text {
		if err := el.Type(input.Key(char)); err != nil {
			return err
		}
		if err := sleep(ctx, k.pause()); err != nil {
			return err
		}
	}
	return nil
}

// TypeFast types text quickly without delays.
// Useful for tests and replay mode where speed matters more than human simulation.
// Still triggers proper keyboard events (keydown/keyup) for each character.
func TypeFast(el *rod.Element, text string) error {
	runes := []rune(text)
	keys := make([]input.Key, len(runes))
	for i, char := range runes {
		keys[i] = input.Key(char)
	}
	return el.Type(keys...)
}
