package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tigraan/Teahouse-bot/internal/llm"
	"github.com/Tigraan/Teahouse-bot/internal/model"
	"github.com/Tigraan/Teahouse-bot/internal/pipeline"
)

var (
	attrPage          string
	attrArchiver      string
	attrLookback      float64
	attrArchivalDelay float64
	attrJSONOut       string
	attrMarkdownOut   string
	attrTimeout       time.Duration
	attrLLM           bool
	attrLLMProvider   string
	attrLLMModel      string
)

// attributeCmd represents the attribute command
var attributeCmd = &cobra.Command{
	Use:   "attribute",
	Short: "Attribute the latest archival without notifying anyone",
	Long: `Find the last archival edit on the watched page, work out which threads
it removed, and join them against the recent page history to name each
thread's starter. Nothing is posted; the outcome is a report.

Threads the join cannot settle are reported as no_match or
multiple_match rather than guessed at.`,
	RunE: runAttribute,
}

func init() {
	attributeCmd.Flags().StringVar(&attrPage, "page", "", "watched page title (default from config)")
	attributeCmd.Flags().StringVar(&attrArchiver, "archiver", "", "archiver account name (default from config)")
	attributeCmd.Flags().Float64Var(&attrLookback, "lookback", 0, "history scan lookback in days (default from config)")
	attributeCmd.Flags().Float64Var(&attrArchivalDelay, "archival-delay", -1, "archiver inactivity delay in days (default from config)")
	attributeCmd.Flags().StringVar(&attrJSONOut, "json", "", "write the report as JSON to this file")
	attributeCmd.Flags().StringVar(&attrMarkdownOut, "md", "", "write the report as Markdown to this file")
	attributeCmd.Flags().DurationVar(&attrTimeout, "run-timeout", 10*time.Minute, "overall run timeout")
	attributeCmd.Flags().BoolVar(&attrLLM, "llm", false, "append an LLM digest of the report")
	attributeCmd.Flags().StringVar(&attrLLMProvider, "llm-provider", "", "LLM provider: openai or ollama (default from config)")
	attributeCmd.Flags().StringVar(&attrLLMModel, "llm-model", "", "LLM model name (default from config)")

	rootCmd.AddCommand(attributeCmd)
}

func runAttribute(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if attrPage != "" {
		cfg.Page.Title = attrPage
	}
	if attrArchiver != "" {
		cfg.Page.Archiver = attrArchiver
	}
	if attrLookback > 0 {
		cfg.Window.LookbackDays = attrLookback
	}
	if attrArchivalDelay >= 0 {
		cfg.Window.ArchivalDelayDays = attrArchivalDelay
	}

	p, err := pipeline.NewPipeline(cfg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), attrTimeout)
	defer cancel()

	report, err := p.Attribute(ctx, time.Now().UTC())
	if err != nil {
		return err
	}

	renderer := pipeline.NewRenderer()
	renderer.RenderSummary(report)

	if attrJSONOut != "" {
		if err := renderer.RenderJSON(report, attrJSONOut); err != nil {
			return err
		}
		fmt.Printf("Report written to %s\n", attrJSONOut)
	}
	if attrMarkdownOut != "" {
		if err := renderer.RenderMarkdown(report, attrMarkdownOut); err != nil {
			return err
		}
		fmt.Printf("Report written to %s\n", attrMarkdownOut)
	}

	if attrLLM {
		if err := printDigest(ctx, cfg, report); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: digest skipped: %v\n", err)
		}
	}

	return nil
}

func printDigest(ctx context.Context, cfg *model.Config, report *model.Report) error {
	if attrLLMProvider != "" {
		cfg.LLM.Provider = attrLLMProvider
	}
	if attrLLMModel != "" {
		cfg.LLM.Model = attrLLMModel
	}
	if cfg.LLM.APIKey == "" {
		cfg.LLM.APIKey = os.Getenv("TEAHOUSE_BOT_LLM_API_KEY")
	}

	provider, err := llm.NewProvider(cfg.LLM)
	if err != nil {
		return err
	}

	digest, err := provider.Digest(ctx, *report, cfg.LLM.MaxTokens)
	if err != nil {
		return fmt.Errorf("%s digest: %w", provider.Name(), err)
	}

	fmt.Println()
	fmt.Println("--- Digest ---")
	fmt.Println(digest)
	return nil
}
