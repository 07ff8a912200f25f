package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"searchops/esprune/pkg/cli"
	"searchops/esprune/pkg/cluster"
	"searchops/esprune/pkg/config"
	"searchops/esprune/pkg/notify"
	"searchops/esprune/pkg/prune"
	"searchops/esprune/pkg/telemetry/logging"
	"searchops/esprune/pkg/telemetry/metrics"
)

type runOptions struct {
	nodes    []string
	keepDays int
	prefix   string
	schedule string
	once     bool
	envFile  string
	output   string
}

var runFlags runOptions

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the retention cleanup",
	Long: `Run the retention cleanup against the configured nodes.

Without a schedule the cleanup executes once and exits; the exit code is
non-zero when any node failed or the report email could not be sent.
With a schedule (flag or config) esprune stays resident and runs the
cleanup on the given cron expression until interrupted.

Examples:
  # Single run with the default config file
  esprune run

  # Ad-hoc run without a config file
  esprune run --nodes 10.0.4.7,10.0.4.8 --keep-days 90

  # Force a single run even if the config carries a schedule
  esprune run --once

  # Daemon mode, daily at 3 AM
  esprune run --schedule "0 3 * * *"`,
	RunE: runCleanup,
}

func init() {
	rootCmd.AddCommand(runCmd)
	registerRunFlags(runCmd)
}

func registerRunFlags(cmd *cobra.Command) {
	cmd.Flags().StringSliceVar(&runFlags.nodes, "nodes", nil, "comma-separated node addresses (overrides config)")
	cmd.Flags().IntVar(&runFlags.keepDays, "keep-days", 0, "retention window in days (overrides config)")
	cmd.Flags().StringVar(&runFlags.prefix, "prefix", "", "index name pattern (overrides config)")
	cmd.Flags().StringVar(&runFlags.schedule, "schedule", "", "cron expression for daemon mode (overrides config)")
	cmd.Flags().BoolVar(&runFlags.once, "once", false, "run a single cleanup even when a schedule is configured")
	cmd.Flags().StringVar(&runFlags.envFile, "env-file", "", "load environment variables from this dotenv file first")
	cmd.Flags().StringVarP(&runFlags.output, "output", "o", "text", "output format for the run summary (text, json)")
}

func runCleanup(cmd *cobra.Command, args []string) error {
	if runFlags.envFile != "" {
		if err := godotenv.Load(runFlags.envFile); err != nil {
			return fmt.Errorf("failed to load env file %q: %w", runFlags.envFile, err)
		}
	}

	cfg, fromFile, err := loadRunConfig(cmd)
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.Telemetry.Logging, nil)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)

	dialer := cluster.NewDialer(logger)

	var notifier prune.Notifier
	if cfg.Mail.Enabled {
		notifier = notify.NewMailer(cfg.Mail, logger)
	} else {
		logger.Warn("mail notification disabled, run reports are log-only")
	}

	if cfg.Schedule != "" && !runFlags.once {
		return runScheduled(cfg, fromFile, dialer, notifier, logger)
	}

	runner := prune.NewRunner(cfg, dialer, notifier, nil, logger)
	result, runErr := runner.Run(context.Background())

	if err := printResult(result); err != nil {
		return err
	}
	if runErr != nil {
		return runErr
	}
	if result.Failed() {
		return fmt.Errorf("cleanup failed on node(s): %s", strings.Join(result.FailedNodes(), ", "))
	}
	return nil
}

// runScheduled keeps esprune resident: cleanup cycles on the cron schedule,
// a metrics listener, and a config watcher so edits apply to the next cycle.
func runScheduled(cfg *config.Config, watchConfigFile bool, dialer *cluster.Dialer, notifier prune.Notifier, logger *slog.Logger) error {
	ctx := signalContext()

	var observer prune.Observer
	var metricsSrv *metrics.Server
	if cfg.Telemetry.Metrics.Enabled {
		collector := metrics.NewCollector(nil)
		metricsSrv = metrics.NewServer(collector, cfg.Telemetry.Metrics.ListenAddress, cfg.Telemetry.Metrics.Path, logger)
		metricsSrv.Start()
		observer = collector
	}

	runner := prune.NewRunner(cfg, dialer, notifier, observer, logger)

	scheduler := prune.NewScheduler(runner, cfg.Schedule, logger)
	if err := scheduler.Start(ctx); err != nil {
		return err
	}
	if next := scheduler.NextRun(); next != nil {
		logger.Info("next cleanup scheduled", "at", next.Format(time.RFC3339))
	}

	var watcher *config.Watcher
	if watchConfigFile {
		var err error
		watcher, err = config.NewWatcher(cfgFile, func(updated *config.Config) {
			if updated.Schedule != cfg.Schedule {
				logger.Warn("schedule changes require a restart, keeping current schedule",
					"current", cfg.Schedule,
					"updated", updated.Schedule,
				)
			}
			if updated.Telemetry.Metrics != cfg.Telemetry.Metrics {
				logger.Warn("metrics changes require a restart, keeping current listener",
					"current", cfg.Telemetry.Metrics.ListenAddress,
					"updated", updated.Telemetry.Metrics.ListenAddress,
				)
			}
			if updated.Mail.Enabled {
				runner.SetNotifier(notify.NewMailer(updated.Mail, logger))
			} else {
				runner.SetNotifier(nil)
				logger.Warn("mail notification disabled, run reports are log-only")
			}
			runner.SetConfig(updated)
		}, logger)
		if err != nil {
			return err
		}
		if err := watcher.Start(); err != nil {
			return err
		}
	}

	<-ctx.Done()
	logger.Info("shutting down")

	scheduler.Stop()
	if watcher != nil {
		watcher.Stop()
	}
	if metricsSrv != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = metricsSrv.Shutdown(shutdownCtx)
	}

	return nil
}

// loadRunConfig assembles the effective configuration: config file when
// present, ESPRUNE_* environment overrides, then explicit flag overrides.
// The second return value reports whether a config file was actually read
// (and so can be watched in daemon mode).
func loadRunConfig(cmd *cobra.Command) (*config.Config, bool, error) {
	var cfg *config.Config
	fromFile := false

	if _, err := os.Stat(cfgFile); err == nil {
		cfg, err = config.LoadConfigWithEnvOverrides(cfgFile)
		if err != nil {
			return nil, false, err
		}
		fromFile = true
	} else if len(runFlags.nodes) > 0 || os.Getenv("ESPRUNE_NODES") != "" {
		// No config file, but nodes supplied directly: run from defaults.
		cfg = config.Default()
		config.ApplyEnvOverrides(cfg)
		if cfg.Mail.Relay == "" {
			// An ad-hoc run has no relay to report through; the report
			// stays log-only unless ESPRUNE_MAIL_* supplies one.
			cfg.Mail.Enabled = false
		}
	} else {
		return nil, false, fmt.Errorf("config file %q not found and no --nodes given", cfgFile)
	}

	if cmd.Flags().Changed("nodes") {
		cfg.Nodes = runFlags.nodes
	}
	if cmd.Flags().Changed("keep-days") {
		cfg.KeepDays = runFlags.keepDays
	}
	if cmd.Flags().Changed("prefix") {
		cfg.Prefix = runFlags.prefix
	}
	if cmd.Flags().Changed("schedule") {
		cfg.Schedule = runFlags.schedule
	}
	if verbose {
		cfg.Telemetry.Logging.Level = "debug"
	}

	if err := config.Validate(cfg); err != nil {
		return nil, false, err
	}

	return cfg, fromFile, nil
}

// signalContext returns a context cancelled on SIGINT or SIGTERM.
func signalContext() context.Context {
	ctx, _ := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	return ctx
}

// printResult writes the run summary to stdout in the selected format.
func printResult(result *prune.RunResult) error {
	switch cli.OutputFormat(runFlags.output) {
	case cli.FormatJSON:
		return cli.NewFormatter(cli.FormatJSON).FormatTo(os.Stdout, result)
	case cli.FormatText, "":
		_, err := fmt.Fprint(os.Stdout, notify.Render(result))
		return err
	default:
		return fmt.Errorf("unknown output format %q", runFlags.output)
	}
}
