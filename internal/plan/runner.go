package plan

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/grez-lucas/web-interaction/internal/interaction"
)

// Target resolves selectors on a page and performs the pointer and raw key
// actions the engine does not cover. *browser.Human satisfies it.
type Target interface {
	Handle(ctx context.Context, selector string) (interaction.Handle, error)
	Click(ctx context.Context, selector string) error
	Press(ctx context.Context, selector, text string) error
}

// StepError reports which step of a plan failed.
type StepError struct {
	Index    int
	Action   Action
	Selector string
	Cause    error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (%s %s) failed: %v", e.Index, e.Action, e.Selector, e.Cause)
}

func (e *StepError) Unwrap() error {
	return e.Cause
}

// Runner executes plans. Steps run strictly in order and the first failure
// stops the plan; earlier steps are not undone.
type Runner struct {
	target Target
	engine *interaction.Engine
	pacer  interaction.Pacer
	logger *zap.Logger
}

// NewRunner creates a runner. The pacer serves wait steps.
func NewRunner(target Target, engine *interaction.Engine, pacer interaction.Pacer, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{target: target, engine: engine, pacer: pacer, logger: logger}
}

// Run executes every step of p. Log lines of one run share a run_id field.
func (r *Runner) Run(ctx context.Context, p *Plan) error {
	logger := r.logger.With(zap.String("run_id", uuid.NewString()))
	logger.Info("plan started", zap.Int("steps", len(p.Steps)))

	for i, step := range p.Steps {
		start := time.Now()
		if err := r.runStep(ctx, p, step); err != nil {
			logger.Warn("step failed", zap.Int("step", i+1), zap.Error(err))
			return &StepError{Index: i + 1, Action: step.Action, Selector: step.Selector, Cause: err}
		}
		logger.Info("step done",
			zap.Int("step", i+1),
			zap.String("action", string(step.Action)),
			zap.String("selector", step.Selector),
			zap.Duration("took", time.Since(start)))
	}
	return nil
}

func (r *Runner) runStep(ctx context.Context, p *Plan, s Step) error {
	switch s.Action {
	case ActionWait:
		return r.pacer.Suspend(ctx, s.Delay)
	case ActionClick:
		return r.target.Click(ctx, s.Selector)
	case ActionKeys:
		return r.target.Press(ctx, s.Selector, s.Value)
	}

	h, err := r.target.Handle(ctx, s.Selector)
	if err != nil {
		return err
	}

	switch s.Action {
	case ActionType:
		return r.engine.TypeText(ctx, h, s.textDirective())
	case ActionInsert:
		return r.engine.InsertText(ctx, h, s.textDirective())
	case ActionPaste:
		return r.engine.PasteText(ctx, h, s.textDirective())
	case ActionDelete:
		return r.engine.DeleteText(ctx, h)
	case ActionToggle:
		return r.engine.ToggleCheck(ctx, h, interaction.ToggleDirective{Selected: s.Selected})
	case ActionSelect:
		return r.engine.SelectOption(ctx, h, s.choiceDirective())
	case ActionUpload:
		files, err := readFiles(p.baseDir, s.Files)
		if err != nil {
			return err
		}
		return r.engine.UploadFile(ctx, h, files)
	default:
		return fmt.Errorf("unknown action %q", s.Action)
	}
}
