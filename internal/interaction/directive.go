package interaction

import "time"

// TextDirective describes text to enter into a field.
type TextDirective struct {
	Value string
	// Delay is the pause between simulated characters. Only TypeText
	// honours it.
	Delay time.Duration
	// ClearValue erases the existing content before insertion.
	ClearValue bool
}

// ToggleDirective is the target checked state of a checkbox or radio.
type ToggleDirective struct {
	Selected bool
}

// SelectBy picks the option resolution policy of a ChoiceDirective.
type SelectBy string

const (
	SelectByValue    SelectBy = ""
	SelectByFirst    SelectBy = "first"
	SelectByLast     SelectBy = "last"
	SelectByPosition SelectBy = "position"
)

// ChoiceDirective describes which option to pick in a discrete-choice control.
type ChoiceDirective struct {
	Value    string
	SelectBy SelectBy
	// Position is 1-based and clamped into [1, len(options)].
	Position int
}
