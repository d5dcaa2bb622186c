package interaction

import (
	"errors"
	"fmt"
)

var (
	ErrUnsupportedWidgetKind = errors.New("unsupported widget kind")
	ErrWrongControlKind      = errors.New("wrong control kind")
	ErrNotASelector          = errors.New("element is not a select dropdown")
	ErrNoMatchingOption      = errors.New("no matching option")
	ErrMissingElement        = errors.New("element not provided")
	ErrInvalidText           = errors.New("text is not valid UTF-8")
)

// Error provides detailed context for a failed interaction.
type Error struct {
	Operation string
	Widget    string
	Cause     error
	Details   string
}

func (e *Error) Error() string {
	if e.Details == "" {
		return fmt.Sprintf("%s on %s failed: %v", e.Operation, e.Widget, e.Cause)
	}
	return fmt.Sprintf("%s on %s failed: %v - %s", e.Operation, e.Widget, e.Cause, e.Details)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func newError(op string, h Handle, cause error, details string) *Error {
	widget := "<nil>"
	if h != nil {
		widget = h.Describe()
	}
	return &Error{Operation: op, Widget: widget, Cause: cause, Details: details}
}
