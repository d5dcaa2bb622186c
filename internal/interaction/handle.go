// Package interaction simulates the event choreography a real user produces
// when changing the value of a form widget. Each strategy validates the
// handle's capabilities once, then mutates the handle and dispatches the
// synthetic events in the order a native implementation would.
package interaction

import (
	"context"
	"strings"
)

// Capability tags what a widget handle can legally be asked to do.
type Capability uint8

const (
	Textual Capability = 1 << iota
	Checkable
	Selectable
	FileAccepting
	EditableRegion
)

var capabilityNames = []struct {
	cap  Capability
	name string
}{
	{Textual, "textual"},
	{Checkable, "checkable"},
	{Selectable, "selectable"},
	{FileAccepting, "fileAccepting"},
	{EditableRegion, "editableRegion"},
}

// Has reports whether every bit of want is present.
func (c Capability) Has(want Capability) bool {
	return c&want == want
}

func (c Capability) String() string {
	var parts []string
	for _, cn := range capabilityNames {
		if c.Has(cn.cap) {
			parts = append(parts, cn.name)
		}
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "|")
}

// ControlKind is the concrete control behind a handle, e.g. "checkbox" for
// <input type=checkbox>, "select" for <select>, "div" for an editable div.
type ControlKind string

const (
	KindText     ControlKind = "text"
	KindTextarea ControlKind = "textarea"
	KindCheckbox ControlKind = "checkbox"
	KindRadio    ControlKind = "radio"
	KindSelect   ControlKind = "select"
	KindFile     ControlKind = "file"
)

// Handle is an opaque reference to one interactive control.
//
// Focus, Blur and SelectAllContent stand in for the global focus and
// selection state of a browser, so a test double is enough to drive every
// strategy.
type Handle interface {
	// Describe names the handle in error messages.
	Describe() string
	Capabilities() Capability
	Kind() ControlKind

	Value(ctx context.Context) (string, error)
	SetValue(ctx context.Context, value string) error

	Focus(ctx context.Context) error
	Blur(ctx context.Context) error

	// SelectAllContent places the selection around the whole content
	// region of the handle.
	SelectAllContent(ctx context.Context) error
	// InsertContent issues a single content-insertion command at the
	// current selection, replacing it.
	InsertContent(ctx context.Context, text string) error
}

// CheckableHandle is implemented by checkbox and radio handles.
type CheckableHandle interface {
	Handle
	SetChecked(ctx context.Context, checked bool) error
}

// Option is one entry of a discrete-choice control.
type Option struct {
	Value string
	Label string
}

// SelectorHandle is implemented by discrete-choice handles.
type SelectorHandle interface {
	Handle
	Options(ctx context.Context) ([]Option, error)
}

// File is one blob to attach to a file-accepting control.
type File struct {
	Name     string
	MimeType string
	Content  []byte
}

// FileHandle is implemented by file-accepting handles.
type FileHandle interface {
	Handle
	// AcceptsMultiple reports whether the control takes more than one file.
	AcceptsMultiple() bool
	SetFiles(ctx context.Context, files []File) error
}
