package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/Tigraan/Teahouse-bot/internal/model"
)

// Renderer writes run reports to files and the terminal.
type Renderer struct{}

// NewRenderer creates a renderer.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// RenderJSON writes the full report as indented JSON.
func (r *Renderer) RenderJSON(report *model.Report, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// RenderMarkdown writes a human-readable report.
func (r *Renderer) RenderMarkdown(report *model.Report, path string) error {
	var b strings.Builder

	fmt.Fprintf(&b, "# Archival attribution report\n\n")
	fmt.Fprintf(&b, "- Run: %s\n", report.RunID)
	fmt.Fprintf(&b, "- Page: %s\n", report.Page)
	fmt.Fprintf(&b, "- Archival edit: %d (by %s)\n", report.Archival.After, report.Archival.Archiver)
	fmt.Fprintf(&b, "- Scan window: %s to %s (lookback %.1fd, archival delay %.1fd)\n\n",
		report.Window.Start.Format("2006-01-02 15:04"),
		report.Window.End.Format("2006-01-02 15:04"),
		report.Window.LookbackDays, report.Window.ArchivalDelay)

	fmt.Fprintf(&b, "## Threads\n\n")
	fmt.Fprintf(&b, "| Thread | Outcome | OP |\n|---|---|---|\n")
	for _, res := range report.Results {
		if res.Resolved {
			fmt.Fprintf(&b, "| %s | resolved | %s |\n", res.Thread, res.User)
		} else {
			fmt.Fprintf(&b, "| %s | %s | - |\n", res.Thread, res.Reason)
		}
	}

	if len(report.Notifications) > 0 {
		fmt.Fprintf(&b, "\n## Notifications\n\n")
		for _, n := range report.Notifications {
			if n.Invalid {
				fmt.Fprintf(&b, "- %s: skipped (%s)\n", n.User, n.Reason)
			} else {
				fmt.Fprintf(&b, "- %s: %d thread(s), posted=%v\n", n.User, len(n.Threads), n.Posted)
			}
		}
	}

	fmt.Fprintf(&b, "\n## Totals\n\n")
	c := report.Counts
	fmt.Fprintf(&b, "archived %d, resolved %d, no match %d, multiple match %d, notified %d, skipped %d\n",
		c.Archived, c.Resolved, c.NoMatch, c.MultipleMatch, c.Notified, c.Skipped)

	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("write markdown report: %w", err)
	}
	return nil
}

// RenderSummary prints a one-screen summary to stdout.
func (r *Renderer) RenderSummary(report *model.Report) {
	c := report.Counts
	fmt.Printf("\n%s - archival run %s\n", report.Page, report.RunID)
	fmt.Printf("  archived threads:  %d\n", c.Archived)
	fmt.Printf("  resolved:          %d\n", c.Resolved)
	fmt.Printf("  no match:          %d\n", c.NoMatch)
	fmt.Printf("  multiple match:    %d\n", c.MultipleMatch)
	if len(report.Notifications) > 0 {
		fmt.Printf("  notified:          %d\n", c.Notified)
		fmt.Printf("  skipped:           %d\n", c.Skipped)
	}
}
