// Package browser provides the Rod-backed collaborators of the interaction
// engine: widget handles over *rod.Element, an in-page event composer, a
// pacer, and the cursor and key-press primitives.
package browser

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-rod/rod"
	"go.uber.org/zap"

	"github.com/grez-lucas/web-interaction/internal/interaction"
)

// probeJS reports what kind of control the element is. It runs once per
// handle so the capability set is fixed for the handle's lifetime.
const probeJS = `() => JSON.stringify({
	tag: this.tagName.toLowerCase(),
	type: (this.type || '').toLowerCase(),
	id: this.id || '',
	name: this.getAttribute('name') || '',
	multiple: !!this.multiple,
	editable: !!this.isContentEditable,
})`

// probeResult holds the parsed JSON response from probeJS.
type probeResult struct {
	Tag      string `json:"tag"`
	Type     string `json:"type"`
	ID       string `json:"id"`
	Name     string `json:"name"`
	Multiple bool   `json:"multiple"`
	Editable bool   `json:"editable"`
}

// nonTextInputs are <input> types that do not hold free text.
var nonTextInputs = map[string]bool{
	"checkbox": true, "radio": true, "file": true,
	"submit": true, "button": true, "reset": true, "image": true,
	"hidden": true, "range": true, "color": true,
}

func (p probeResult) classify() (interaction.ControlKind, interaction.Capability) {
	var caps interaction.Capability
	if p.Editable {
		caps |= interaction.EditableRegion
	}

	switch p.Tag {
	case "textarea":
		return interaction.KindTextarea, caps | interaction.Textual
	case "select":
		return interaction.KindSelect, caps | interaction.Selectable
	case "input":
		switch {
		case p.Type == "checkbox":
			return interaction.KindCheckbox, caps | interaction.Checkable
		case p.Type == "radio":
			return interaction.KindRadio, caps | interaction.Checkable
		case p.Type == "file":
			return interaction.KindFile, caps | interaction.FileAccepting
		case nonTextInputs[p.Type]:
			return interaction.ControlKind(p.Type), caps
		default:
			return interaction.KindText, caps | interaction.Textual
		}
	}
	return interaction.ControlKind(p.Tag), caps
}

func (p probeResult) describe() string {
	var b strings.Builder
	b.WriteString(p.Tag)
	if p.Type != "" && p.Tag == "input" {
		fmt.Fprintf(&b, "[type=%s]", p.Type)
	}
	if p.ID != "" {
		b.WriteString("#" + p.ID)
	} else if p.Name != "" {
		fmt.Fprintf(&b, "[name=%s]", p.Name)
	}
	return b.String()
}

// Element is a widget handle over a live DOM element. It implements every
// handle interface of the interaction package; the probed capability set
// decides which of them the engine will use.
type Element struct {
	el       *rod.Element
	logger   *zap.Logger
	name     string
	kind     interaction.ControlKind
	caps     interaction.Capability
	multiple bool
}

var (
	_ interaction.CheckableHandle = (*Element)(nil)
	_ interaction.SelectorHandle  = (*Element)(nil)
	_ interaction.FileHandle      = (*Element)(nil)
)

// NewElement probes el and wraps it as a widget handle.
func NewElement(ctx context.Context, el *rod.Element, logger *zap.Logger) (*Element, error) {
	if el == nil {
		return nil, interaction.ErrMissingElement
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	res, err := el.Context(ctx).Eval(probeJS)
	if err != nil {
		return nil, fmt.Errorf("probe element: %w", err)
	}
	var probe probeResult
	if err := json.Unmarshal([]byte(res.Value.Str()), &probe); err != nil {
		return nil, fmt.Errorf("parse element probe: %w", err)
	}

	kind, caps := probe.classify()
	e := &Element{
		el:       el,
		logger:   logger,
		name:     probe.describe(),
		kind:     kind,
		caps:     caps,
		multiple: probe.Multiple,
	}
	logger.Debug("element probed",
		zap.String("element", e.name),
		zap.String("kind", string(kind)),
		zap.Stringer("capabilities", caps))
	return e, nil
}

func (e *Element) Describe() string                     { return e.name }
func (e *Element) Capabilities() interaction.Capability { return e.caps }
func (e *Element) Kind() interaction.ControlKind        { return e.kind }
func (e *Element) AcceptsMultiple() bool                { return e.multiple }

func (e *Element) eval(ctx context.Context, js string, params ...interface{}) (string, error) {
	res, err := e.el.Context(ctx).Eval(js, params...)
	if err != nil {
		return "", err
	}
	return res.Value.Str(), nil
}

func (e *Element) Value(ctx context.Context) (string, error) {
	return e.eval(ctx, `() => ('value' in this) ? String(this.value) : this.innerText`)
}

func (e *Element) SetValue(ctx context.Context, value string) error {
	_, err := e.eval(ctx, `(v) => { if ('value' in this) { this.value = v } else { this.textContent = v } }`, value)
	return err
}

func (e *Element) Focus(ctx context.Context) error {
	return e.el.Context(ctx).Focus()
}

func (e *Element) Blur(ctx context.Context) error {
	_, err := e.eval(ctx, `() => this.blur()`)
	return err
}

// SelectAllContent selects the text of form controls and the node contents
// of any other element.
func (e *Element) SelectAllContent(ctx context.Context) error {
	_, err := e.eval(ctx, `() => {
		if (typeof this.select === 'function' && ('value' in this)) {
			this.select();
			return;
		}
		const selection = this.ownerDocument.defaultView.getSelection();
		if (!selection) return;
		const range = this.ownerDocument.createRange();
		range.selectNodeContents(this);
		selection.removeAllRanges();
		selection.addRange(range);
		range.detach();
	}`)
	return err
}

// InsertContent runs the insertText editing command at the current selection.
func (e *Element) InsertContent(ctx context.Context, text string) error {
	_, err := e.eval(ctx, `(t) => { this.ownerDocument.execCommand('insertText', false, t) }`, text)
	return err
}

func (e *Element) SetChecked(ctx context.Context, checked bool) error {
	_, err := e.eval(ctx, `(c) => { this.checked = c }`, checked)
	return err
}

func (e *Element) Options(ctx context.Context) ([]interaction.Option, error) {
	raw, err := e.eval(ctx, `() => JSON.stringify(Array.from(this.options || []).map(o => ({value: o.value, label: o.label})))`)
	if err != nil {
		return nil, err
	}
	var opts []struct {
		Value string `json:"value"`
		Label string `json:"label"`
	}
	if err := json.Unmarshal([]byte(raw), &opts); err != nil {
		return nil, fmt.Errorf("parse options: %w", err)
	}
	out := make([]interaction.Option, len(opts))
	for i, o := range opts {
		out[i] = interaction.Option{Value: o.Value, Label: o.Label}
	}
	return out, nil
}

// fileParam is the JSON shape handed to setFilesJS.
type fileParam struct {
	Name     string `json:"name"`
	MimeType string `json:"mimeType"`
	Content  string `json:"content"` // base64
}

// setFilesJS rebuilds each file in the page and assigns them through a
// DataTransfer, the only writable source of a FileList.
const setFilesJS = `(files) => {
	const dt = new DataTransfer();
	for (const f of files) {
		const bin = atob(f.content);
		const bytes = new Uint8Array(bin.length);
		for (let i = 0; i < bin.length; i++) bytes[i] = bin.charCodeAt(i);
		dt.items.add(new File([bytes], f.name, {type: f.mimeType}));
	}
	this.files = dt.files;
}`

func (e *Element) SetFiles(ctx context.Context, files []interaction.File) error {
	params := make([]fileParam, len(files))
	for i, f := range files {
		params[i] = fileParam{
			Name:     f.Name,
			MimeType: f.MimeType,
			Content:  base64.StdEncoding.EncodeToString(f.Content),
		}
	}
	_, err := e.eval(ctx, setFilesJS, params)
	return err
}
