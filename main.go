// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/babooppa6/gleamSolver/internal/app"
	"github.com/babooppa6/gleamSolver/internal/config"
	"github.com/babooppa6/gleamSolver/pkg/campaign"
	"github.com/babooppa6/gleamSolver/pkg/notify"
)

var (
	profilePath string
	debuggerURL string
	headless    bool
	fixturePath string
)

var rootCmd = &cobra.Command{
	Use:           "gleamsolver",
	Short:         "Completes contest entry methods in a browser session",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var serveCmd = &cobra.Command{
	Use:   "serve [campaign-url]",
	Short: "Open a campaign and serve the control API",
	Long: `Opens the campaign in Chrome and serves the SolverControl gRPC service.
Runs are started with the Trigger method.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runServe,
}

var runCmd = &cobra.Command{
	Use:   "run [campaign-url]",
	Short: "Solve a campaign once and exit",
	Long: `Opens the campaign in Chrome, runs one pass over its entries and prints
the outcome. With --simulate the pass runs against a JSON fixture instead.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runOnce,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&profilePath, "profile", "", "solver profile (overrides PROFILE_PATH)")
	rootCmd.PersistentFlags().StringVar(&debuggerURL, "debugger-url", "", "attach to a running Chrome (overrides CHROME_DEBUGGER_URL)")
	rootCmd.PersistentFlags().BoolVar(&headless, "headless", false, "launch Chrome headless")

	runCmd.Flags().StringVar(&fixturePath, "simulate", "", "solve the JSON fixture at this path instead of a browser page")

	rootCmd.AddCommand(serveCmd, runCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		logrus.Errorf("%v", err)
		os.Exit(1)
	}
}

// loadConfig loads the environment and applies command line overrides.
func loadConfig(cmd *cobra.Command, args []string, requireCampaign bool) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	if len(args) == 1 {
		cfg.CampaignURL = args[0]
	}
	if profilePath != "" {
		cfg.ProfilePath = profilePath
	}
	if debuggerURL != "" {
		cfg.DebuggerURL = debuggerURL
	}
	if cmd.Flags().Changed("headless") {
		cfg.Headless = headless
	}

	if err := cfg.Validate(requireCampaign); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	level, _ := logrus.ParseLevel(cfg.LogLevel)
	logrus.SetLevel(level)
	return cfg, nil
}

func runServe(cmd *cobra.Command, args []string) error {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.Infof("starting app server..")

	cfg, err := loadConfig(cmd, args, true)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg, app.Options{Serve: true})
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	return a.Serve(ctx)
}

func runOnce(cmd *cobra.Command, args []string) error {
	simulate := fixturePath != ""

	cfg, err := loadConfig(cmd, args, !simulate)
	if err != nil {
		return err
	}
	cfg.OtelEnabled = false

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg, app.Options{Fixture: fixturePath})
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	report, snap, err := a.Solve(ctx)
	if report != nil {
		printReport(cmd, report, snap)
	}
	return err
}

func printReport(cmd *cobra.Command, report *campaign.Report, snap *notify.Snapshot) {
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "processed %d/%d entries: %d succeeded, %d failed, %d retracted\n",
		report.Processed, report.Total, report.Succeeded, report.Failed, report.Retracted)

	reasons := make([]string, 0, len(report.Skipped))
	for reason := range report.Skipped {
		reasons = append(reasons, reason)
	}
	sort.Strings(reasons)
	for _, reason := range reasons {
		fmt.Fprintf(out, "  skipped (%s): %d\n", reason, report.Skipped[reason])
	}

	if report.Aborted {
		fmt.Fprintf(out, "aborted: %s\n", report.Reason)
	}
	if snap == nil {
		return
	}
	if t := snap.Terminal(); t != "" {
		fmt.Fprintf(out, "status: %s\n", t)
	}
	for _, msg := range snap.ErrorMessages() {
		fmt.Fprintf(out, "warning: %s\n", msg)
	}
}
