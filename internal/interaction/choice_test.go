package interaction

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggleCheck(t *testing.T) {
	tests := []struct {
		name     string
		kind     ControlKind
		initial  bool
		selected bool
	}{
		{"check checkbox", KindCheckbox, false, true},
		{"uncheck checkbox", KindCheckbox, true, false},
		{"already checked", KindCheckbox, true, true},
		{"select radio", KindRadio, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine, rec, _ := newTestEngine()
			h := newFakeHandle(rec, tt.kind, Checkable)
			h.checked = tt.initial

			err := engine.ToggleCheck(context.Background(), h, ToggleDirective{Selected: tt.selected})

			require.NoError(t, err)
			assert.Equal(t, tt.selected, h.checked)
			require.Len(t, rec.events, 1, "exactly one change event, even without a state change")
			assert.Equal(t, EventChange, rec.events[0].Type)
			assert.Empty(t, rec.sleeps)
		})
	}
}

func TestToggleCheck_Payload(t *testing.T) {
	engine, rec, _ := newTestEngine()
	h := newFakeHandle(rec, KindCheckbox, Checkable)

	require.NoError(t, engine.ToggleCheck(context.Background(), h, ToggleDirective{Selected: true}))

	assert.Equal(t, "true", dataOf(rec.events[0]))
	assert.Equal(t, EventChange, rec.events[0].InputType)
	assert.True(t, rec.events[0].Cancelable)
	assert.False(t, rec.events[0].Composed)
}

func TestToggleCheck_WrongControlKind(t *testing.T) {
	engine, rec, _ := newTestEngine()
	h := newFakeHandle(rec, KindText, Textual)

	err := engine.ToggleCheck(context.Background(), h, ToggleDirective{Selected: true})

	require.ErrorIs(t, err, ErrWrongControlKind)
	assert.Contains(t, err.Error(), "text", "error should name the actual kind")
	assert.Empty(t, rec.events)
}

func TestSelectOption_Policies(t *testing.T) {
	options := []Option{{Value: "a"}, {Value: "b"}, {Value: "c"}}

	tests := []struct {
		name      string
		directive ChoiceDirective
		want      string
	}{
		{"first", ChoiceDirective{SelectBy: SelectByFirst}, "a"},
		{"last", ChoiceDirective{SelectBy: SelectByLast}, "c"},
		{"position in range", ChoiceDirective{SelectBy: SelectByPosition, Position: 2}, "b"},
		{"position zero clamps to first", ChoiceDirective{SelectBy: SelectByPosition, Position: 0}, "a"},
		{"negative position clamps to first", ChoiceDirective{SelectBy: SelectByPosition, Position: -4}, "a"},
		{"position past end clamps to last", ChoiceDirective{SelectBy: SelectByPosition, Position: 99}, "c"},
		{"value match", ChoiceDirective{Value: "b"}, "b"},
		{"policy wins over value", ChoiceDirective{Value: "a", SelectBy: SelectByLast}, "c"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine, rec, _ := newTestEngine()
			h := newFakeHandle(rec, KindSelect, Selectable)
			h.options = options

			err := engine.SelectOption(context.Background(), h, tt.directive)

			require.NoError(t, err)
			assert.Equal(t, tt.want, h.value)
			require.Len(t, rec.events, 1)
			assert.Equal(t, EventChange, rec.events[0].Type)
			assert.Equal(t, tt.want, dataOf(rec.events[0]))
		})
	}
}

func TestSelectOption_NoMatchingOption(t *testing.T) {
	engine, rec, _ := newTestEngine()
	h := newFakeHandle(rec, KindSelect, Selectable)
	h.options = []Option{{Value: "a"}, {Value: "b"}}
	h.value = "a"

	err := engine.SelectOption(context.Background(), h, ChoiceDirective{Value: "z"})

	require.ErrorIs(t, err, ErrNoMatchingOption)
	assert.Equal(t, "a", h.value, "value must be unchanged")
	assert.Empty(t, rec.events)
}

func TestSelectOption_ExactMatchOnly(t *testing.T) {
	engine, rec, _ := newTestEngine()
	h := newFakeHandle(rec, KindSelect, Selectable)
	h.options = []Option{{Value: "Apple", Label: "apple"}}

	err := engine.SelectOption(context.Background(), h, ChoiceDirective{Value: "apple"})

	assert.ErrorIs(t, err, ErrNoMatchingOption)
}

func TestSelectOption_EmptyOptions(t *testing.T) {
	engine, rec, _ := newTestEngine()
	h := newFakeHandle(rec, KindSelect, Selectable)

	err := engine.SelectOption(context.Background(), h, ChoiceDirective{SelectBy: SelectByFirst})

	assert.ErrorIs(t, err, ErrNoMatchingOption)
}

func TestSelectOption_NotASelector(t *testing.T) {
	engine, rec, _ := newTestEngine()
	h := newFakeHandle(rec, KindText, Textual)
	h.options = []Option{{Value: "a"}}

	err := engine.SelectOption(context.Background(), h, ChoiceDirective{SelectBy: SelectByFirst})

	require.ErrorIs(t, err, ErrNotASelector)
	assert.Empty(t, h.value)
	assert.Empty(t, rec.events)
}

func TestUploadFile(t *testing.T) {
	files := []File{
		{Name: "one.txt", MimeType: "text/plain", Content: []byte("1")},
		{Name: "two.txt", MimeType: "text/plain", Content: []byte("2")},
		{Name: "three.txt", MimeType: "text/plain", Content: []byte("3")},
	}

	t.Run("single file control truncates", func(t *testing.T) {
		engine, rec, _ := newTestEngine()
		h := newFakeHandle(rec, KindFile, FileAccepting)

		require.NoError(t, engine.UploadFile(context.Background(), h, files))

		require.Len(t, h.files, 1)
		assert.Equal(t, "one.txt", h.files[0].Name)
		require.Len(t, rec.events, 1)
		assert.Equal(t, EventChange, rec.events[0].Type)
		assert.True(t, rec.events[0].Bubbles)
		assert.False(t, rec.events[0].Cancelable)
	})

	t.Run("multiple file control keeps order", func(t *testing.T) {
		engine, rec, _ := newTestEngine()
		h := newFakeHandle(rec, KindFile, FileAccepting)
		h.multiple = true

		require.NoError(t, engine.UploadFile(context.Background(), h, files))

		assert.Equal(t, files, h.files)
		assert.Len(t, rec.events, 1)
	})

	t.Run("wrong control kind", func(t *testing.T) {
		engine, rec, _ := newTestEngine()
		h := newFakeHandle(rec, KindText, Textual)

		err := engine.UploadFile(context.Background(), h, files)

		require.ErrorIs(t, err, ErrWrongControlKind)
		assert.Nil(t, h.files)
		assert.Empty(t, rec.events)
	})
}

func TestCapability_String(t *testing.T) {
	assert.Equal(t, "none", Capability(0).String())
	assert.Equal(t, "textual|editableRegion", (Textual | EditableRegion).String())
	assert.True(t, (Textual | Checkable).Has(Checkable))
	assert.False(t, Textual.Has(Textual|Checkable))
}
