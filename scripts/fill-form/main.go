// fill-form opens a page in a stealth browser and runs an interaction plan
// against it.
//
// Usage:
//
//	go run ./scripts/fill-form -url=https://example.com/signup -plan=signup.yaml
//
// Settings come from .env, WEBACT_* variables and the optional -config
// YAML file. Pass -headless=false to watch the plan run.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"go.uber.org/zap"

	"github.com/grez-lucas/web-interaction/internal/browser"
	"github.com/grez-lucas/web-interaction/internal/config"
	"github.com/grez-lucas/web-interaction/internal/observability"
	"github.com/grez-lucas/web-interaction/internal/plan"
)

func main() {
	pageURL := flag.String("url", "", "Page to open before running the plan")
	planPath := flag.String("plan", "", "YAML plan file")
	configPath := flag.String("config", "", "Optional YAML config file")
	headless := flag.Bool("headless", true, "Run the browser without a window")
	flag.Parse()

	if *pageURL == "" || *planPath == "" {
		fmt.Println("Usage: go run ./scripts/fill-form -url=<page> -plan=<plan.yaml>")
		os.Exit(1)
	}

	if err := run(*pageURL, *planPath, *configPath, *headless); err != nil {
		fmt.Fprintf(os.Stderr, "fill-form: %v\n", err)
		os.Exit(1)
	}
}

func run(pageURL, planPath, configPath string, headless bool) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	cfg.Browser.Headless = headless

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	p, err := plan.Load(planPath)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if cfg.Browser.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Browser.Timeout)
		defer cancel()
	}

	b, page, err := browser.Launch(cfg.Browser)
	if err != nil {
		return err
	}
	defer func() { _ = b.Close() }()

	logger.Info("navigating", zap.String("url", pageURL))
	if err := page.Context(ctx).Navigate(pageURL); err != nil {
		return fmt.Errorf("navigate: %w", err)
	}
	if err := browser.WaitForIFrames(ctx, page); err != nil {
		return fmt.Errorf("wait for page: %w", err)
	}

	human := browser.NewHuman(page, logger, browser.HumanOptions{
		Timing:      cfg.Timing.Interaction(),
		KeyMinDelay: cfg.KeyPress.MinDelay,
		KeyMaxDelay: cfg.KeyPress.MaxDelay,
		CursorSteps: cfg.Browser.CursorSteps,
	})
	runner := plan.NewRunner(human, human.Form, browser.NewPacer(logger), logger)

	if err := runner.Run(ctx, p); err != nil {
		return err
	}
	logger.Info("plan complete", zap.Int("steps", len(p.Steps)))
	return nil
}
