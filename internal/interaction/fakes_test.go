package interaction

import (
	"context"
	"fmt"
	"testing"
	"time"

	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// recorder collects every step a strategy takes against the fakes, so tests
// can assert the full choreography in order.
type recorder struct {
	trace  []string
	events []EventDescriptor
	sleeps []time.Duration
}

// fakeHandle implements every handle interface; its capability set decides
// what the engine is allowed to do with it.
type fakeHandle struct {
	rec      *recorder
	name     string
	caps     Capability
	kind     ControlKind
	value    string
	checked  bool
	options  []Option
	multiple bool
	files    []File

	errs map[string]error
}

func newFakeHandle(rec *recorder, kind ControlKind, caps Capability) *fakeHandle {
	return &fakeHandle{rec: rec, name: fmt.Sprintf("fake-%s", kind), kind: kind, caps: caps}
}

func (f *fakeHandle) step(name string) error {
	f.rec.trace = append(f.rec.trace, name)
	return f.errs[name]
}

func (f *fakeHandle) Describe() string         { return f.name }
func (f *fakeHandle) Capabilities() Capability { return f.caps }
func (f *fakeHandle) Kind() ControlKind        { return f.kind }

func (f *fakeHandle) Value(context.Context) (string, error) {
	return f.value, f.errs["value"]
}

func (f *fakeHandle) SetValue(_ context.Context, v string) error {
	if err := f.errs["set"]; err != nil {
		return err
	}
	f.value = v
	return nil
}

func (f *fakeHandle) Focus(context.Context) error            { return f.step("focus") }
func (f *fakeHandle) Blur(context.Context) error             { return f.step("blur") }
func (f *fakeHandle) SelectAllContent(context.Context) error { return f.step("select-all") }

func (f *fakeHandle) InsertContent(_ context.Context, text string) error {
	if err := f.step("insert " + text); err != nil {
		return err
	}
	f.value = text
	return nil
}

func (f *fakeHandle) SetChecked(_ context.Context, checked bool) error {
	f.checked = checked
	return nil
}

func (f *fakeHandle) Options(context.Context) ([]Option, error) {
	return f.options, f.errs["options"]
}

func (f *fakeHandle) AcceptsMultiple() bool { return f.multiple }

func (f *fakeHandle) SetFiles(_ context.Context, files []File) error {
	f.files = files
	return nil
}

type recordingComposer struct {
	rec    *recorder
	failAt int
}

func (c *recordingComposer) Dispatch(_ context.Context, _ Handle, ev EventDescriptor) error {
	c.rec.events = append(c.rec.events, ev)
	c.rec.trace = append(c.rec.trace, "dispatch "+ev.Type)
	if c.failAt > 0 && len(c.rec.events) == c.failAt {
		return fmt.Errorf("composer unavailable")
	}
	return nil
}

type recordingPacer struct {
	rec *recorder
}

func (p *recordingPacer) Suspend(_ context.Context, d time.Duration) error {
	p.rec.sleeps = append(p.rec.sleeps, d)
	p.rec.trace = append(p.rec.trace, "suspend "+d.String())
	return nil
}

func newTestEngine(opts ...EngineOption) (*Engine, *recorder, *recordingComposer) {
	rec := &recorder{}
	composer := &recordingComposer{rec: rec}
	return New(composer, &recordingPacer{rec: rec}, opts...), rec, composer
}

func eventsOfType(events []EventDescriptor, typ string) []EventDescriptor {
	var out []EventDescriptor
	for _, ev := range events {
		if ev.Type == typ {
			out = append(out, ev)
		}
	}
	return out
}

func dataOf(ev EventDescriptor) string {
	if ev.Data == nil {
		return ""
	}
	return *ev.Data
}
