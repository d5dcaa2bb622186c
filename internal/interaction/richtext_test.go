package interaction

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsertText_Choreography(t *testing.T) {
	engine, rec, _ := newTestEngine()
	h := newFakeHandle(rec, "div", EditableRegion)

	err := engine.InsertText(context.Background(), h, TextDirective{Value: "hello world", ClearValue: true, Delay: time.Second})

	require.NoError(t, err)
	assert.Equal(t, []string{
		"focus",
		"select-all",
		"suspend 100ms",
		"focus",
		"insert hello world",
		"dispatch change",
		"suspend 300ms",
		"focus",
		"select-all",
		"suspend 300ms",
		"dispatch keydown",
		"blur",
	}, rec.trace)

	assert.Empty(t, eventsOfType(rec.events, EventInput), "command insertion is not character paced")
	keys := eventsOfType(rec.events, EventKeyDown)
	require.Len(t, keys, 1)
	assert.Equal(t, KeyArrowRight, *keys[0].Key)

	change := eventsOfType(rec.events, EventChange)[0]
	assert.True(t, change.Bubbles)
	assert.False(t, change.Cancelable)
}

func TestInsertText_WithoutClearSkipsFirstSelection(t *testing.T) {
	engine, rec, _ := newTestEngine()
	h := newFakeHandle(rec, "div", EditableRegion)

	require.NoError(t, engine.InsertText(context.Background(), h, TextDirective{Value: "x"}))

	assert.Equal(t, []time.Duration{300 * time.Millisecond, 300 * time.Millisecond}, rec.sleeps)
	assert.Equal(t, "focus", rec.trace[0])
	assert.Equal(t, "focus", rec.trace[1])
	assert.Equal(t, "insert x", rec.trace[2])
}

func TestInsertText_CustomTiming(t *testing.T) {
	timing := Timing{CommandClearSettle: time.Millisecond, CommandInsertSettle: 2 * time.Millisecond}
	engine, rec, _ := newTestEngine(WithTiming(timing))
	h := newFakeHandle(rec, KindTextarea, Textual)

	require.NoError(t, engine.InsertText(context.Background(), h, TextDirective{Value: "x", ClearValue: true}))

	assert.Equal(t, timing, engine.Timing())
	// a zero interval skips the suspension entirely
	assert.Equal(t, []time.Duration{time.Millisecond, 2 * time.Millisecond}, rec.sleeps)
}

func TestPasteText_Choreography(t *testing.T) {
	engine, rec, _ := newTestEngine()
	h := newFakeHandle(rec, "div", EditableRegion)

	err := engine.PasteText(context.Background(), h, TextDirective{Value: "pasted", ClearValue: true})

	require.NoError(t, err)
	assert.Equal(t, []string{
		"focus",
		"select-all",
		"suspend 100ms",
		"dispatch keydown",
		"focus",
		"dispatch paste",
		"suspend 10ms",
		"dispatch change",
		"blur",
	}, rec.trace)

	keys := eventsOfType(rec.events, EventKeyDown)
	require.Len(t, keys, 1)
	assert.Equal(t, KeyBackspace, *keys[0].Key)

	pastes := eventsOfType(rec.events, EventPaste)
	require.Len(t, pastes, 1)
	require.NotNil(t, pastes[0].Clipboard)
	assert.Equal(t, "text/plain", pastes[0].Clipboard.MimeType)
	assert.Equal(t, "pasted", pastes[0].Clipboard.Data)
	assert.True(t, pastes[0].Bubbles)
	assert.True(t, pastes[0].Cancelable)
}

func TestPasteText_WithoutClear(t *testing.T) {
	engine, rec, _ := newTestEngine()
	h := newFakeHandle(rec, "div", EditableRegion)

	require.NoError(t, engine.PasteText(context.Background(), h, TextDirective{Value: "v"}))

	assert.Empty(t, eventsOfType(rec.events, EventKeyDown))
	assert.NotContains(t, rec.trace, "select-all")
}

func TestRichText_AcceptsAnyFocusableHandle(t *testing.T) {
	engine, rec, _ := newTestEngine()
	// no textual capability; rich text paths do not check capabilities
	h := newFakeHandle(rec, "span", 0)

	assert.NoError(t, engine.InsertText(context.Background(), h, TextDirective{Value: "a"}))
	assert.NoError(t, engine.PasteText(context.Background(), h, TextDirective{Value: "b"}))
}

func TestRichText_MissingElement(t *testing.T) {
	engine, rec, _ := newTestEngine()

	assert.ErrorIs(t, engine.InsertText(context.Background(), nil, TextDirective{Value: "a"}), ErrMissingElement)
	assert.ErrorIs(t, engine.PasteText(context.Background(), nil, TextDirective{Value: "a"}), ErrMissingElement)
	assert.ErrorIs(t, engine.DeleteText(context.Background(), nil), ErrMissingElement)
	assert.Empty(t, rec.events)
}

func TestInsertText_InsertFailure(t *testing.T) {
	engine, rec, _ := newTestEngine()
	h := newFakeHandle(rec, "div", EditableRegion)
	boom := errors.New("execCommand rejected")
	h.errs = map[string]error{"insert x": boom}

	err := engine.InsertText(context.Background(), h, TextDirective{Value: "x"})

	require.ErrorIs(t, err, boom)
	assert.Empty(t, rec.events)
}

func TestDeleteText(t *testing.T) {
	engine, rec, _ := newTestEngine()
	h := newFakeHandle(rec, "div", EditableRegion)

	require.NoError(t, engine.DeleteText(context.Background(), h))

	require.Len(t, rec.events, 1)
	ev := rec.events[0]
	assert.Equal(t, EventKeyDown, ev.Type)
	assert.Equal(t, 8, ev.Key.KeyCode)
	assert.Equal(t, 8, ev.Key.Which)
	assert.Equal(t, 0, ev.Key.Location)
	assert.True(t, ev.Bubbles)
	assert.True(t, ev.Cancelable)
}
