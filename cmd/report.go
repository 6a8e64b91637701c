package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/gnoswap-labs/rulecat/formatter"
	"github.com/gnoswap-labs/rulecat/internal/catalog"
	"github.com/gnoswap-labs/rulecat/internal/eslint"
	"github.com/gnoswap-labs/rulecat/internal/report"
	tt "github.com/gnoswap-labs/rulecat/internal/types"
	"github.com/gnoswap-labs/rulecat/lint"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type reportOptions struct {
	RulesPath   string
	IgnoreRules string
	IgnorePaths string
	MinSeverity string
	JSON        bool
	OutPath     string
	Watch       bool
}

var reportOpts reportOptions

var reportCmd = &cobra.Command{
	Use:   "report [results.json|dir...]",
	Short: "Build violation reports from engine results",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			fmt.Fprintln(cmd.ErrOrStderr(), "error: Please provide result files or directories")
			exitCode = 1
			return
		}

		cfg, err := lint.ParseConfigurationFile(cfgFile)
		if err != nil {
			logger.Fatal("Failed to load configuration", zap.Error(err))
		}
		if err := applyReportFlags(&cfg, reportOpts); err != nil {
			logger.Fatal("Invalid flags", zap.Error(err))
		}

		if reportOpts.Watch {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()
			runWatch(ctx, cmd.OutOrStdout(), cfg, args)
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		kept, err := runReport(ctx, logger, lint.ESLintLoader, cfg, reportOpts, args, cmd.OutOrStdout())
		if err != nil {
			logger.Error("Error building report", zap.Error(err))
		}
		exitCode = reportExitCode(kept, err)
	},
}

func init() {
	reportCmd.Flags().StringVar(&reportOpts.RulesPath, "rules", "", "Rule metadata dump (JSON) used for categories and docs")
	reportCmd.Flags().StringVar(&reportOpts.IgnoreRules, "ignore", "", "Comma-separated list of rules to ignore")
	reportCmd.Flags().StringVar(&reportOpts.IgnorePaths, "ignore-paths", "", "Comma-separated list of path globs to ignore")
	reportCmd.Flags().StringVar(&reportOpts.MinSeverity, "min-severity", "", "Drop violations below this severity (warn, error)")
	reportCmd.Flags().BoolVar(&reportOpts.JSON, "json", false, "Output in JSON format")
	reportCmd.Flags().StringVarP(&reportOpts.OutPath, "output", "o", "", "Output path")
	reportCmd.Flags().BoolVar(&reportOpts.Watch, "watch", false, "Rebuild the report when result files change")
}

// reportExitCode fails the process when the report could not be built or
// kept any violation.
func reportExitCode(kept int, err error) int {
	if err != nil || kept > 0 {
		return 1
	}
	return 0
}

func applyReportFlags(cfg *lint.Config, opts reportOptions) error {
	cfg.Ignore.Rules = append(cfg.Ignore.Rules, lint.SplitList(opts.IgnoreRules)...)
	cfg.Ignore.Paths = append(cfg.Ignore.Paths, lint.SplitList(opts.IgnorePaths)...)
	if opts.MinSeverity != "" {
		sev, err := tt.ParseSeverity(opts.MinSeverity)
		if err != nil {
			return err
		}
		cfg.MinSeverity = sev
	}
	return nil
}

// runReport builds and writes the report, returning the number of
// violations that were kept.
func runReport(
	ctx context.Context,
	logger *zap.Logger,
	loader lint.ResultLoader,
	cfg lint.Config,
	opts reportOptions,
	paths []string,
	w io.Writer,
) (int, error) {
	meta := map[string]tt.RuleMeta{}
	if opts.RulesPath != "" {
		dump, err := eslint.LoadRules(opts.RulesPath)
		if err != nil {
			return 0, err
		}
		// deprecated rules still describe the violations they produce
		meta = catalog.Metadata(catalog.New(dump).AllRules())
	}

	reviewer, err := lint.NewReviewer(cfg)
	if err != nil {
		return 0, err
	}

	raw, err := lint.ProcessFiles(ctx, logger, loader, paths)
	if err != nil {
		return 0, err
	}
	results := report.BuildReports(cfg.Engine, raw, meta, reviewer)

	kept := 0
	for _, r := range results {
		kept += len(r.Violations)
	}
	if logger != nil {
		logger.Debug("Report built", zap.Int("files", len(results)), zap.Int("violations", kept))
	}

	if opts.OutPath != "" {
		f, err := os.Create(opts.OutPath)
		if err != nil {
			return kept, fmt.Errorf("error creating output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	if opts.JSON {
		err = formatter.WriteJSON(w, results)
	} else {
		err = formatter.WriteText(w, results)
	}
	return kept, err
}

func runWatch(ctx context.Context, w io.Writer, cfg lint.Config, paths []string) {
	// unchanged result files are not decoded again on every rebuild
	loader := lint.NewCachedLoader(lint.ESLintLoader)
	rebuild := func() error {
		_, err := runReport(ctx, logger, loader, cfg, reportOpts, paths, w)
		return err
	}
	if err := rebuild(); err != nil {
		logger.Error("Error building report", zap.Error(err))
	}

	dirs := make([]string, 0, len(paths))
	for _, p := range paths {
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			p = filepath.Dir(p)
		}
		dirs = append(dirs, p)
	}
	if err := lint.Watch(ctx, logger, dirs, rebuild); err != nil {
		logger.Fatal("Watch failed", zap.Error(err))
	}
}
