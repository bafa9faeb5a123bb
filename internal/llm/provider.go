// Package llm generates an optional operator digest of a run report
// through an OpenAI-compatible endpoint. The digest is presentation only:
// it is produced after attribution and can never change a result.
package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/Tigraan/Teahouse-bot/internal/model"
)

// Provider generates digests from run reports.
type Provider interface {
	Name() string
	Digest(ctx context.Context, report model.Report, maxTokens int) (string, error)
}

// NewProvider builds a provider from configuration. Supported providers
// are "openai" and "ollama" (the latter through its OpenAI-compatible
// endpoint).
func NewProvider(cfg model.LLMConfig) (Provider, error) {
	switch cfg.Provider {
	case "openai":
		return newOpenAIProvider(cfg)
	case "ollama":
		if cfg.BaseURL == "" {
			cfg.BaseURL = "http://localhost:11434/v1"
		}
		if cfg.APIKey == "" {
			cfg.APIKey = "ollama" // the endpoint requires a non-empty key
		}
		return newOpenAIProvider(cfg)
	case "":
		return nil, fmt.Errorf("no LLM provider configured")
	default:
		return nil, fmt.Errorf("unknown LLM provider %q", cfg.Provider)
	}
}

// buildPrompt frames the report for the model. The model is asked to
// restate outcomes, never to re-attribute: unresolved threads stay
// unresolved no matter how confident a guess might look.
func buildPrompt(report model.Report) string {
	var b strings.Builder

	fmt.Fprintf(&b, `You are writing a short operator digest for an archival-notification bot run.
Rules:
1. Only restate facts from the data below. Do not guess who created an unresolved thread.
2. Report failure modes by class (no match / multiple match) with counts.
3. Keep it under 150 words, plain prose.

Run %s on %s:
- threads archived: %d
- resolved: %d
- no match: %d
- multiple match: %d
- notifications sent: %d, skipped: %d
- scan window: %s to %s

Per-thread outcomes:
`,
		report.RunID, report.Page,
		report.Counts.Archived, report.Counts.Resolved,
		report.Counts.NoMatch, report.Counts.MultipleMatch,
		report.Counts.Notified, report.Counts.Skipped,
		report.Window.Start.Format("2006-01-02 15:04"),
		report.Window.End.Format("2006-01-02 15:04"))

	for _, r := range report.Results {
		if r.Resolved {
			fmt.Fprintf(&b, "- %q: resolved to %s\n", r.Thread, r.User)
		} else {
			fmt.Fprintf(&b, "- %q: unresolved (%s)\n", r.Thread, r.Reason)
		}
	}

	return b.String()
}
