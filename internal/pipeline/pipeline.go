package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/Tigraan/Teahouse-bot/internal/cache"
	"github.com/Tigraan/Teahouse-bot/internal/extract"
	"github.com/Tigraan/Teahouse-bot/internal/match"
	"github.com/Tigraan/Teahouse-bot/internal/mediawiki"
	"github.com/Tigraan/Teahouse-bot/internal/model"
	"github.com/Tigraan/Teahouse-bot/internal/notify"
	"github.com/Tigraan/Teahouse-bot/internal/scan"
)

// Pipeline wires the attribution engine to the MediaWiki history source
// and the notification machinery.
type Pipeline struct {
	cfg      *model.Config
	client   *mediawiki.Client
	scanner  *scan.Scanner
	matcher  *match.Matcher
	notifier *notify.Notifier
}

// NewPipeline creates a pipeline from configuration.
func NewPipeline(cfg *model.Config) (*Pipeline, error) {
	var c cache.Cache
	if cfg.Cache.Enabled {
		dir := cfg.Cache.Dir
		if dir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return nil, fmt.Errorf("resolve cache dir: %w", err)
			}
			dir = filepath.Join(home, ".teahouse-bot", "cache")
		}
		c = cache.NewLayeredCache(cfg.Cache.MemoryTTL, dir, cfg.Cache.DiskTTL)
	}

	client, err := mediawiki.NewClient(cfg.API, c, cfg.Cache.DiskTTL)
	if err != nil {
		return nil, fmt.Errorf("create api client: %w", err)
	}
	if token := os.Getenv("TEAHOUSE_BOT_TOKEN"); token != "" {
		client.SetAuthToken(token)
	}

	return &Pipeline{
		cfg:      cfg,
		client:   client,
		scanner:  scan.NewScanner(client, cfg.Concurrency.ScanWorkers),
		matcher:  match.NewMatcher(),
		notifier: notify.NewNotifier(cfg.Notify, cfg.Page.Title, client, os.Stdout),
	}, nil
}

// Attribute runs the attribution engine only: locate the last archival
// edit, scan the calibrated window, and match removed threads to their
// creations. "now" is passed in so runs are reproducible in tests.
func (p *Pipeline) Attribute(ctx context.Context, now time.Time) (*model.Report, error) {
	cfg := p.cfg

	report := &model.Report{
		RunID:     uuid.NewString(),
		Page:      cfg.Page.Title,
		StartedAt: now,
	}

	p.logf("Searching for archival edit by %q...\n", cfg.Page.Archiver)
	searchStart := now.Add(-time.Duration(cfg.Window.ArchivalSearchDays * float64(24*time.Hour)))
	revs, err := p.client.Revisions(ctx, cfg.Page.Title, searchStart, now)
	if err != nil {
		return nil, fmt.Errorf("fetch recent history: %w", err)
	}

	archival, err := extract.LastArchivalEdit(revs, cfg.Page.Archiver)
	if err != nil {
		return nil, err
	}
	report.Archival = archival
	p.logf("Archival edit %d -> %d, archives %v\n", archival.Before, archival.After, archival.Links)

	removed, duplicates, err := extract.RemovedByDiff(ctx, p.client, archival.Before, archival.After)
	if err != nil {
		return nil, fmt.Errorf("diff archival revisions: %w", err)
	}
	for _, name := range duplicates {
		p.warnf("several live threads share the name %q; all of them are ignored\n", name)
	}
	report.Event = model.ArchivalEvent{Threads: removed, Timestamp: archival.Timestamp}
	p.logf("%d thread(s) removed by archival\n", len(removed))

	window := scan.Calibrate(now, cfg.Window.LookbackDays, cfg.Window.ArchivalDelayDays)
	report.Window = model.ReportWindow{
		Start:         window.Start,
		End:           window.End,
		LookbackDays:  cfg.Window.LookbackDays,
		ArchivalDelay: cfg.Window.ArchivalDelayDays,
	}

	creations, err := p.scanner.Scan(ctx, cfg.Page.Title, window)
	if err != nil {
		return nil, fmt.Errorf("scan creation events: %w", err)
	}
	report.Creations = creations
	p.logf("%d creation event(s) in window %s .. %s\n",
		len(creations), window.Start.Format(time.RFC3339), window.End.Format(time.RFC3339))

	report.Results = p.matcher.Attribute(report.Event, creations)
	for _, r := range report.Results {
		if !r.Resolved {
			p.warnf("thread %q left unresolved: %s\n", r.Thread, r.Reason)
		}
	}

	report.Tally()
	return report, nil
}

// Run performs a full cycle: attribution, archive-link resolution,
// eligibility checks, and notification delivery (dry-run unless
// configured otherwise).
func (p *Pipeline) Run(ctx context.Context, now time.Time) (*model.Report, error) {
	report, err := p.Attribute(ctx, now)
	if err != nil {
		return nil, err
	}

	var (
		threads []string
		users   []string
	)
	for _, r := range report.Results {
		if r.Resolved {
			threads = append(threads, r.Thread)
			users = append(users, r.User)
		}
	}

	links, warnings, err := notify.ResolveArchiveLinks(ctx, p.client,
		report.Archival.Links, threads, p.cfg.Concurrency.ArchiveWorkers)
	if err != nil {
		return nil, err
	}
	for _, w := range warnings {
		p.warnf("%s\n", w)
	}

	verdicts, err := notify.Eligibility(ctx, p.client, uniqueStrings(users))
	if err != nil {
		return nil, err
	}
	for user, v := range verdicts {
		if !v.OK {
			p.warnf("user %q will not be notified: %s\n", user, v.Reason)
		}
	}

	items := make([]notify.Attribution, len(threads))
	for i := range threads {
		items[i] = notify.Attribution{Thread: threads[i], User: users[i], Link: links[i]}
	}
	report.Notifications = notify.Build(items, verdicts)

	if err := p.notifier.Deliver(ctx, report.Notifications); err != nil {
		return nil, err
	}

	report.Tally()
	return report, nil
}

func (p *Pipeline) logf(format string, args ...any) {
	if p.cfg.Verbose {
		fmt.Fprintf(os.Stderr, format, args...)
	}
}

func (p *Pipeline) warnf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Warning: "+format, args...)
}

func uniqueStrings(in []string) []string {
	seen := make(map[string]bool, len(in))
	var out []string
	for _, s := range in {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}
