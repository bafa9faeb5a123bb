package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tigraan/Teahouse-bot/internal/model"
	"github.com/Tigraan/Teahouse-bot/internal/pipeline"
	"github.com/Tigraan/Teahouse-bot/internal/runlog"
)

var (
	runPage          string
	runArchiver      string
	runLookback      float64
	runArchivalDelay float64
	runPost          bool
	runJSONOut       string
	runMarkdownOut   string
	runTimeout       time.Duration
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Attribute the latest archival and notify thread starters",
	Long: `Run the full cycle: find the last archival edit on the watched page,
work out which threads it removed and who started them, locate each
thread in the archives, and notify the eligible thread starters on
their talk pages.

Delivery is a dry run by default; pass --post to actually edit talk
pages (requires an OAuth token in TEAHOUSE_BOT_TOKEN).`,
	RunE: runRun,
}

func init() {
	runCmd.Flags().StringVar(&runPage, "page", "", "watched page title (default from config)")
	runCmd.Flags().StringVar(&runArchiver, "archiver", "", "archiver account name (default from config)")
	runCmd.Flags().Float64Var(&runLookback, "lookback", 0, "history scan lookback in days (default from config)")
	runCmd.Flags().Float64Var(&runArchivalDelay, "archival-delay", -1, "archiver inactivity delay in days (default from config)")
	runCmd.Flags().BoolVar(&runPost, "post", false, "actually post notifications instead of a dry run")
	runCmd.Flags().StringVar(&runJSONOut, "json", "", "write the run report as JSON to this file")
	runCmd.Flags().StringVar(&runMarkdownOut, "md", "", "write the run report as Markdown to this file")
	runCmd.Flags().DurationVar(&runTimeout, "run-timeout", 15*time.Minute, "overall run timeout")

	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if runPage != "" {
		cfg.Page.Title = runPage
	}
	if runArchiver != "" {
		cfg.Page.Archiver = runArchiver
	}
	if runLookback > 0 {
		cfg.Window.LookbackDays = runLookback
	}
	if runArchivalDelay >= 0 {
		cfg.Window.ArchivalDelayDays = runArchivalDelay
	}
	if runPost {
		cfg.Notify.DryRun = false
	}

	if !cfg.Notify.DryRun && os.Getenv("TEAHOUSE_BOT_TOKEN") == "" {
		return fmt.Errorf("--post requires an OAuth token in TEAHOUSE_BOT_TOKEN")
	}

	p, err := pipeline.NewPipeline(cfg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), runTimeout)
	defer cancel()

	report, err := p.Run(ctx, time.Now().UTC())
	if err != nil {
		return err
	}

	renderer := pipeline.NewRenderer()
	renderer.RenderSummary(report)

	if runJSONOut != "" {
		if err := renderer.RenderJSON(report, runJSONOut); err != nil {
			return err
		}
		fmt.Printf("Report written to %s\n", runJSONOut)
	}
	if runMarkdownOut != "" {
		if err := renderer.RenderMarkdown(report, runMarkdownOut); err != nil {
			return err
		}
		fmt.Printf("Report written to %s\n", runMarkdownOut)
	}

	if cfg.RunLog.Enabled {
		if err := recordRun(cfg, report); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: run log not updated: %v\n", err)
		}
	}

	return nil
}

func recordRun(cfg *model.Config, report *model.Report) error {
	path, err := runlogPath(cfg)
	if err != nil {
		return err
	}
	log, err := runlog.Open(path)
	if err != nil {
		return err
	}
	defer log.Close()
	return log.Record(report)
}
