package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ff6editor/pluginvet/internal/adapters/outbound/gitinfo"
	"github.com/ff6editor/pluginvet/internal/adapters/outbound/history"
	"github.com/ff6editor/pluginvet/internal/adapters/outbound/metrics"
	"github.com/ff6editor/pluginvet/internal/adapters/outbound/report"
	"github.com/ff6editor/pluginvet/internal/adapters/outbound/tui"
	"github.com/ff6editor/pluginvet/internal/adapters/outbound/watcher"
	"github.com/ff6editor/pluginvet/internal/application"
	"github.com/ff6editor/pluginvet/internal/domain"
)

// ErrValidationFailed is returned when at least one plugin failed.
var ErrValidationFailed = errors.New("validation failed")

type validateOptions struct {
	jsonOutput  bool
	markdown    bool
	htmlFile    string
	all         bool
	strict      bool
	watch       bool
	metricsFile string
}

func newValidateCmd(flags *globalFlags) *cobra.Command {
	opts := &validateOptions{}

	cmd := &cobra.Command{
		Use:   "validate <plugin-dir>",
		Short: "Validate a plugin submission directory",
		Long: "Run every validation pass against a plugin directory and report the results. " +
			"Exits non-zero when any error-severity check failed. Writes checksum.sha256 as a side effect.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(cmd, flags)
			if err != nil {
				return err
			}
			if e.cfg.Strict {
				opts.strict = true
			}
			if opts.metricsFile == "" {
				opts.metricsFile = e.cfg.MetricsFile
			}
			if opts.all && opts.watch {
				return fmt.Errorf("--watch cannot be combined with --all")
			}

			svcOpts := []application.Option{application.WithGitInfo(gitinfo.New())}

			var m *metrics.Metrics
			if opts.metricsFile != "" {
				m = metrics.New(nil)
				svcOpts = append(svcOpts, application.WithMetrics(m))
			}

			if e.cfg.HistoryDB != "" {
				store, err := history.NewStore(e.cfg.HistoryDB)
				if err != nil {
					return fmt.Errorf("opening history: %w", err)
				}
				defer store.Close()
				svcOpts = append(svcOpts, application.WithHistory(store))
			}

			svc := e.service(svcOpts...)
			dir := args[0]

			if opts.watch {
				return watchPlugin(cmd, svc, dir, opts)
			}

			var runs []*domain.ValidationRun
			if opts.all {
				runs, err = svc.ValidateAll(dir)
			} else {
				var run *domain.ValidationRun
				run, err = svc.Validate(dir)
				if run != nil {
					runs = []*domain.ValidationRun{run}
				}
			}
			if err != nil {
				if len(runs) == 0 {
					return err
				}
				e.logger.WithError(err).Warn("validation results not fully persisted")
			}

			if err := writeOutput(cmd, runs, opts); err != nil {
				return err
			}
			if m != nil {
				if err := m.WriteTextfile(opts.metricsFile); err != nil {
					return err
				}
			}
			return verdict(runs, opts.strict)
		},
	}

	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Output results as JSON")
	cmd.Flags().BoolVar(&opts.markdown, "markdown", false, "Output results as Markdown")
	cmd.Flags().StringVar(&opts.htmlFile, "html", "", "Also write an HTML report to this file")
	cmd.Flags().BoolVar(&opts.all, "all", false, "Treat the argument as a registry root and validate every plugin in it")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "Fail on warnings as well as errors")
	cmd.Flags().BoolVar(&opts.watch, "watch", false, "Re-validate whenever the plugin directory changes")
	cmd.Flags().StringVar(&opts.metricsFile, "metrics-file", "", "Write Prometheus metrics in textfile format to this path")

	return cmd
}

func writeOutput(cmd *cobra.Command, runs []*domain.ValidationRun, opts *validateOptions) error {
	out := cmd.OutOrStdout()

	switch {
	case opts.jsonOutput:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if opts.all {
			if err := enc.Encode(runs); err != nil {
				return err
			}
		} else if err := enc.Encode(runs[0]); err != nil {
			return err
		}
	case opts.markdown:
		fmt.Fprint(out, markdownFor(runs, opts.all))
	case opts.all:
		for _, run := range runs {
			fmt.Fprint(out, tui.RenderReport(run))
			fmt.Fprintln(out)
		}
		fmt.Fprint(out, tui.RenderSummary(runs))
	default:
		fmt.Fprint(out, tui.RenderReport(runs[0]))
	}

	if opts.htmlFile != "" {
		title := "pluginvet report"
		if !opts.all {
			title = runs[0].Report.Plugin
		}
		page, err := report.HTML(title, markdownFor(runs, opts.all))
		if err != nil {
			return err
		}
		if err := os.WriteFile(opts.htmlFile, page, 0644); err != nil {
			return fmt.Errorf("writing HTML report: %w", err)
		}
	}
	return nil
}

func markdownFor(runs []*domain.ValidationRun, all bool) string {
	if all {
		return report.MarkdownAll(runs)
	}
	return report.Markdown(runs[0])
}

// verdict maps runs to the command's error. Warnings only count with strict.
func verdict(runs []*domain.ValidationRun, strict bool) error {
	errs, warns, failed := 0, 0, 0
	for _, run := range runs {
		errs += run.Errors
		warns += run.Warnings
		if !run.Passed || (strict && run.Warnings > 0) {
			failed++
		}
	}
	if failed == 0 {
		return nil
	}
	if strict && errs == 0 {
		return fmt.Errorf("%w: %d warnings in strict mode", ErrValidationFailed, warns)
	}
	return fmt.Errorf("%w: %d errors", ErrValidationFailed, errs)
}

func watchPlugin(cmd *cobra.Command, svc *application.ValidateService, dir string, opts *validateOptions) error {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("resolving path: %w", err)
	}
	w, err := watcher.New(abs, watcher.DefaultDebounce)
	if err != nil {
		return err
	}
	defer w.Close()

	render := func() {
		run, err := svc.Validate(dir)
		if err != nil && run == nil {
			fmt.Fprintln(cmd.ErrOrStderr(), "Error:", err)
			return
		}
		if err := writeOutput(cmd, []*domain.ValidationRun{run}, opts); err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), "Error:", err)
		}
	}

	render()
	fmt.Fprintf(cmd.ErrOrStderr(), "Watching %s for changes (Ctrl+C to stop)\n", dir)

	ctx, stop := signal.NotifyContext(cmdContext(cmd), os.Interrupt)
	defer stop()
	return w.Run(ctx, render)
}

func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
