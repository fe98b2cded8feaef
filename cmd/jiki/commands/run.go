package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/jikirun/jikirun/pkg/config"
	"github.com/jikirun/jikirun/pkg/exercises"
	"github.com/jikirun/jikirun/pkg/interp"
	"github.com/jikirun/jikirun/pkg/runner"
	"github.com/jikirun/jikirun/pkg/telemetry"
)

// watchDebounce coalesces editor write bursts into one re-run.
const watchDebounce = 200 * time.Millisecond

func newRunCommand() *cobra.Command {
	var (
		suitePath string
		watch     bool
	)

	cmd := &cobra.Command{
		Use:   "run [script]",
		Short: "Run a test suite against a student script",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			scriptPath := args[0]
			if suitePath == "" {
				return fmt.Errorf("a suite file is required (--suite)")
			}

			logger, err := newLogger()
			if err != nil {
				return err
			}

			if watch {
				return runWatch(cmd.Context(), logger, suitePath, scriptPath)
			}

			_, err = runOnce(cmd.Context(), logger, suitePath, scriptPath)
			return err
		},
	}

	cmd.Flags().StringVarP(&suitePath, "suite", "s", "", "path to the suite YAML file")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "re-run whenever the script or suite changes")
	return cmd
}

func newLogger() (*telemetry.Logger, error) {
	cfg := telemetry.DefaultLoggingConfig()
	if verbose {
		cfg.Level = "debug"
	}
	return telemetry.NewLogger(cfg)
}

func runOnce(ctx context.Context, logger *telemetry.Logger, suitePath, scriptPath string) (*runner.SuiteReport, error) {
	suite, err := config.NewLoader().Load(suitePath)
	if err != nil {
		return nil, err
	}

	source, err := os.ReadFile(scriptPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read script: %w", err)
	}

	r := runner.New(exercises.DefaultRegistry(), interp.NewStarlarkEvaluator(), runner.WithLogger(logger))
	report, err := r.RunSuite(ctx, suite.Exercise, string(source), suite.Tests())
	if err != nil {
		return nil, err
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return nil, err
		}
		return report, nil
	}

	printSuiteReport(report)
	return report, nil
}

func printSuiteReport(report *runner.SuiteReport) {
	for _, test := range report.Reports {
		mark := "PASS"
		if test.Status != "pass" {
			mark = "FAIL"
		}
		fmt.Printf("%s  %s  (%s)\n", mark, test.Slug, test.CodeRun)
		for _, expect := range test.Expects {
			if !expect.Pass {
				fmt.Printf("      %s\n", expect.ErrorHTML)
			}
		}
	}
	fmt.Printf("\n%d passed, %d failed (exercise: %s)\n", report.Passed, report.Failed, report.Exercise)
}

// runWatch re-runs the suite whenever the script or suite file changes,
// until the context is cancelled.
func runWatch(ctx context.Context, logger *telemetry.Logger, suitePath, scriptPath string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	for _, path := range []string{suitePath, scriptPath} {
		if err := watcher.Add(path); err != nil {
			return fmt.Errorf("failed to watch %s: %w", path, err)
		}
	}

	run := func() {
		if _, err := runOnce(ctx, logger, suitePath, scriptPath); err != nil {
			logger.WithError(err).Error("run failed")
		}
	}
	run()

	var debounce *time.Timer
	runs := make(chan struct{}, 1)
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-runs:
			run()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(watchDebounce, func() {
				select {
				case runs <- struct{}{}:
				default:
				}
			})
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.WithError(err).Warn("file watcher error")
		}
	}
}
