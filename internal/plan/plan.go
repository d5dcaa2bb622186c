// Package plan loads YAML interaction plans and runs them step by step
// through the interaction engine.
//
// A plan looks like:
//
//	steps:
//	  - action: type
//	    selector: input#name
//	    value: Jane
//	    delay: 80ms
//	  - action: select
//	    selector: select#country
//	    select_by: last
//	  - action: upload
//	    selector: input[type=file]
//	    files: [./avatar.png]
package plan

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/grez-lucas/web-interaction/internal/interaction"
)

// Action names one step kind.
type Action string

const (
	ActionType   Action = "type"
	ActionInsert Action = "insert"
	ActionPaste  Action = "paste"
	ActionDelete Action = "delete"
	ActionToggle Action = "toggle"
	ActionSelect Action = "select"
	ActionUpload Action = "upload"
	ActionClick  Action = "click"
	ActionKeys   Action = "keys"
	ActionWait   Action = "wait"
)

// Plan is an ordered list of steps.
type Plan struct {
	Steps []Step `yaml:"steps"`

	// baseDir resolves relative file paths of upload steps.
	baseDir string
}

// Step is one interaction. Which fields apply depends on Action.
type Step struct {
	Action   Action        `yaml:"action"`
	Selector string        `yaml:"selector"`
	Value    string        `yaml:"value"`
	Delay    time.Duration `yaml:"delay"`
	Clear    bool          `yaml:"clear"`
	Selected bool          `yaml:"selected"`
	SelectBy string        `yaml:"select_by"`
	Position int           `yaml:"position"`
	Files    []string      `yaml:"files"`
}

// Load reads and validates the plan at path.
func Load(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read plan: %w", err)
	}
	p, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("plan %s: %w", path, err)
	}
	p.baseDir = filepath.Dir(path)
	return p, nil
}

// Parse decodes and validates a plan. Relative upload paths resolve against
// the working directory.
func Parse(data []byte) (*Plan, error) {
	var p Plan
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("decode plan: %w", err)
	}
	for i, s := range p.Steps {
		if err := s.validate(); err != nil {
			return nil, fmt.Errorf("step %d: %w", i+1, err)
		}
	}
	return &p, nil
}

func (s Step) validate() error {
	switch s.Action {
	case ActionWait:
		if s.Delay <= 0 {
			return fmt.Errorf("wait needs a positive delay")
		}
		return nil
	case ActionType, ActionInsert, ActionPaste, ActionDelete, ActionToggle, ActionClick, ActionKeys:
	case ActionSelect:
		switch interaction.SelectBy(s.SelectBy) {
		case interaction.SelectByValue, interaction.SelectByFirst, interaction.SelectByLast, interaction.SelectByPosition:
		default:
			return fmt.Errorf("unknown select_by %q", s.SelectBy)
		}
	case ActionUpload:
		if len(s.Files) == 0 {
			return fmt.Errorf("upload needs at least one file")
		}
	case "":
		return fmt.Errorf("missing action")
	default:
		return fmt.Errorf("unknown action %q", s.Action)
	}
	if s.Selector == "" {
		return fmt.Errorf("%s needs a selector", s.Action)
	}
	return nil
}

func (s Step) textDirective() interaction.TextDirective {
	return interaction.TextDirective{Value: s.Value, Delay: s.Delay, ClearValue: s.Clear}
}

func (s Step) choiceDirective() interaction.ChoiceDirective {
	return interaction.ChoiceDirective{
		Value:    s.Value,
		SelectBy: interaction.SelectBy(s.SelectBy),
		Position: s.Position,
	}
}

// readFiles loads upload files in order, guessing MIME types from the
// extension.
func readFiles(baseDir string, paths []string) ([]interaction.File, error) {
	files := make([]interaction.File, 0, len(paths))
	for _, p := range paths {
		if !filepath.IsAbs(p) && baseDir != "" {
			p = filepath.Join(baseDir, p)
		}
		content, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("read upload file: %w", err)
		}
		mimeType := mime.TypeByExtension(filepath.Ext(p))
		if mimeType == "" {
			mimeType = "application/octet-stream"
		}
		files = append(files, interaction.File{
			Name:     filepath.Base(p),
			MimeType: mimeType,
			Content:  content,
		})
	}
	return files, nil
}
