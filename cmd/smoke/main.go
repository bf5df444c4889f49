// smoke drives a deployed Meal Max API through its full battle flow and
// exits non-zero at the first step that does not hold up.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/mealmax/smoke-harness/internal/config"
	"github.com/mealmax/smoke-harness/internal/harness"
	"github.com/mealmax/smoke-harness/internal/logging"
	"github.com/mealmax/smoke-harness/internal/mealapi"
	"github.com/mealmax/smoke-harness/internal/report"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// errExit is a sentinel error returned by cobra RunE functions to signal
// non-zero exit. The command has already written its own error to stderr.
var errExit = errors.New("exit")

// run executes the smoke CLI with the given args, writing output to stdout
// and errors to stderr. Returns the exit code.
func run(args []string, stdout, stderr io.Writer) int {
	root := newRootCmd(stdout, stderr)
	if args == nil {
		args = []string{}
	}
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	if err := root.Execute(); err != nil {
		if !errors.Is(err, errExit) {
			fmt.Fprintf(stderr, "smoke: %v\n", err)
		}
		return 1
	}
	return 0
}

type rootFlags struct {
	baseURL     string
	echoJSON    bool
	timeout     time.Duration
	profile     string
	profileFile string
	report      string
	waitReady   time.Duration
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var flags rootFlags
	root := &cobra.Command{
		Use:           "smoke",
		Short:         "Smoke-test a deployed Meal Max battle API",
		Long:          "smoke runs the fixed Meal Max verification plan (health probes, catalog\nmutations and lookups, then the combatant battle) against a base URL and\nstops at the first failing step.",
		SilenceErrors: true,
		SilenceUsage:  true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if code := runSmoke(cmd, flags, stdout, stderr); code != 0 {
				return errExit
			}
			return nil
		},
	}
	root.Flags().StringVar(&flags.baseURL, "base-url", "", "meal API base URL (overrides SMOKE_BASE_URL)")
	root.Flags().BoolVar(&flags.echoJSON, "echo-json", false, "pretty-print response bodies of query steps")
	root.Flags().DurationVar(&flags.timeout, "timeout", 0, "per-request HTTP timeout (overrides SMOKE_HTTP_TIMEOUT)")
	root.Flags().StringVar(&flags.profile, "profile", "", "builtin endpoint profile (classic or leaderboard)")
	root.Flags().StringVar(&flags.profileFile, "profile-file", "", "TOML endpoint profile path, takes precedence over --profile")
	root.Flags().StringVar(&flags.report, "report", "", "write an .xlsx run report to this path")
	root.Flags().DurationVar(&flags.waitReady, "wait-ready", 0, "wait up to this long for a healthy service before the run starts")
	root.CompletionOptions.DisableDefaultCmd = true
	root.AddCommand(
		newProfilesCmd(stdout),
		newVersionCmd(stdout),
	)
	return root
}

// runSmoke performs one full run and returns the process exit code.
func runSmoke(cmd *cobra.Command, flags rootFlags, stdout, stderr io.Writer) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if os.Getenv("APP_ENV") != "production" {
		if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
			fmt.Fprintf(stderr, "warning: could not load .env file: %v\n", err)
		}
	}

	cfg, err := config.Load(ctx)
	if err != nil {
		fmt.Fprintf(stderr, "smoke: %v\n", err)
		return 1
	}
	applyFlags(cmd, flags, cfg)

	logger := logging.New(stderr, cfg.Name, cfg.Env)

	profile, err := config.ResolveProfile(cfg.Profile, cfg.ProfileFile)
	if err != nil {
		fmt.Fprintf(stderr, "smoke: %v\n", err)
		return 1
	}

	runID := uuid.NewString()
	logger.Info().
		Str("run_id", runID).
		Str("base_url", cfg.BaseURL).
		Str("profile", profile.Name).
		Msg("starting smoke run")

	client := mealapi.NewClient(cfg.BaseURL, profile, &http.Client{Timeout: cfg.HTTPTimeout})
	runner := harness.New(client, harness.Options{EchoJSON: cfg.EchoJSON, Stdout: stdout}, logger)

	if err := runner.WaitReady(ctx, cfg.WaitReady); err != nil {
		fmt.Fprintf(stderr, "smoke: %v\n", err)
		return 1
	}

	steps, err := harness.BuildPlan(client, harness.DefaultScenarios())
	if err != nil {
		fmt.Fprintf(stderr, "smoke: %v\n", err)
		return 1
	}

	started := time.Now()
	results, runErr := runner.Run(ctx, steps)
	meta := report.Meta{
		RunID:    runID,
		BaseURL:  cfg.BaseURL,
		Profile:  profile.Name,
		Started:  started,
		Duration: time.Since(started),
	}

	reporter := report.New(stdout, logger)
	reporter.PrintSummary(meta, results)
	if cfg.ReportPath != "" {
		if err := reporter.WriteExcel(cfg.ReportPath, meta, results); err != nil {
			fmt.Fprintf(stderr, "smoke: %v\n", err)
			return 1
		}
		fmt.Fprintf(stdout, "report written to %s\n", cfg.ReportPath)
	}

	if runErr != nil {
		logger.Error().Err(runErr).Str("run_id", runID).Msg("smoke run failed")
		return 1
	}
	logger.Info().Str("run_id", runID).Msg("smoke run passed")
	return 0
}

// applyFlags lets explicitly-set flags win over environment configuration.
func applyFlags(cmd *cobra.Command, flags rootFlags, cfg *config.App) {
	if cmd.Flags().Changed("base-url") {
		cfg.BaseURL = flags.baseURL
	}
	if cmd.Flags().Changed("echo-json") {
		cfg.EchoJSON = flags.echoJSON
	}
	if cmd.Flags().Changed("timeout") {
		cfg.HTTPTimeout = flags.timeout
	}
	if cmd.Flags().Changed("profile") {
		cfg.Profile = flags.profile
	}
	if cmd.Flags().Changed("profile-file") {
		cfg.ProfileFile = flags.profileFile
	}
	if cmd.Flags().Changed("report") {
		cfg.ReportPath = flags.report
	}
	if cmd.Flags().Changed("wait-ready") {
		cfg.WaitReady = flags.waitReady
	}
}
