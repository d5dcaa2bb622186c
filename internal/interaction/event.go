package interaction

import (
	"context"
	"time"
)

// Event types dispatched by the strategies.
const (
	EventInput   = "input"
	EventChange  = "change"
	EventKeyDown = "keydown"
	EventPaste   = "paste"
)

// Input types carried by input events.
const (
	InputInsertText            = "insertText"
	InputDeleteContentBackward = "deleteContentBackward"
)

// Key describes the keyboard fields of a keydown event.
type Key struct {
	Key      string `json:"key"`
	KeyCode  int    `json:"keyCode"`
	Which    int    `json:"which"`
	Location int    `json:"location"`
}

var (
	KeyBackspace  = Key{Key: "Backspace", KeyCode: 8, Which: 8}
	KeyArrowRight = Key{Key: "ArrowRight", KeyCode: 39, Which: 39}
)

// ClipboardPayload is the clipboard content carried by a paste event.
type ClipboardPayload struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

// EventDescriptor is the canonical shape of one synthetic event. Composed is
// always false for form mutations so the event stays inside the shadow tree
// of the control, like a native one.
type EventDescriptor struct {
	Type       string            `json:"type"`
	InputType  string            `json:"inputType,omitempty"`
	Data       *string           `json:"data,omitempty"`
	Bubbles    bool              `json:"bubbles"`
	Cancelable bool              `json:"cancelable"`
	Composed   bool              `json:"composed"`
	Key        *Key              `json:"key,omitempty"`
	Clipboard  *ClipboardPayload `json:"clipboardData,omitempty"`
}

// Composer builds and dispatches one synthetic event on a handle.
type Composer interface {
	Dispatch(ctx context.Context, h Handle, ev EventDescriptor) error
}

// Pacer suspends the calling flow for at least d.
type Pacer interface {
	Suspend(ctx context.Context, d time.Duration) error
}

// formEvent is the descriptor used for every form mutation.
func formEvent(eventType, inputType, data string) EventDescriptor {
	return EventDescriptor{
		Type:       eventType,
		InputType:  inputType,
		Data:       &data,
		Bubbles:    true,
		Cancelable: true,
	}
}

func formChange() EventDescriptor {
	return EventDescriptor{Type: EventChange, Bubbles: true, Cancelable: true}
}

// bubblingChange matches `new Event('change', {bubbles: true})`.
func bubblingChange() EventDescriptor {
	return EventDescriptor{Type: EventChange, Bubbles: true}
}

func keyDown(k Key) EventDescriptor {
	return EventDescriptor{Type: EventKeyDown, Bubbles: true, Cancelable: true, Key: &k}
}

func paste(text string) EventDescriptor {
	return EventDescriptor{
		Type:       EventPaste,
		Bubbles:    true,
		Cancelable: true,
		Clipboard:  &ClipboardPayload{MimeType: "text/plain", Data: text},
	}
}
