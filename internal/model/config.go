package model

import "time"

// Config holds the complete bot configuration. Values are resolved from
// flags, TEAHOUSE_BOT_* environment variables and the config file, in that
// order of priority.
type Config struct {
	API         APIConfig         `yaml:"api"`
	Page        PageConfig        `yaml:"page"`
	Window      WindowConfig      `yaml:"window"`
	Cache       CacheConfig       `yaml:"cache"`
	Concurrency ConcurrencyConfig `yaml:"concurrency"`
	Notify      NotifyConfig      `yaml:"notify"`
	RunLog      RunLogConfig      `yaml:"runlog"`
	LLM         LLMConfig         `yaml:"llm"`
	Verbose     bool              `yaml:"verbose"`
}

// APIConfig configures the MediaWiki Action API client.
type APIConfig struct {
	Endpoint     string        `yaml:"endpoint"`
	UserAgent    string        `yaml:"user_agent"`
	Timeout      time.Duration `yaml:"timeout"`
	MaxBodyBytes int64         `yaml:"max_body_bytes"`
	RatePerSec   float64       `yaml:"rate_per_sec"`
	Burst        int           `yaml:"burst"`
	MaxContinues int           `yaml:"max_continues"` // cap on rvcontinue follow-ups per query
	MaxRetries   int           `yaml:"max_retries"`
	HTTPProxy    string        `yaml:"http_proxy"`
	HTTPSProxy   string        `yaml:"https_proxy"`
	NoProxy      string        `yaml:"no_proxy"`
}

// PageConfig identifies the watched page and its archiver account.
type PageConfig struct {
	Title    string `yaml:"title"`
	Archiver string `yaml:"archiver"`
}

// WindowConfig drives the scan window calibration. ArchivalDelayDays must
// be the delay setting that was in effect when the archiver ran, which is
// a historical fact the operator supplies; the bot never infers it from
// the live page configuration.
type WindowConfig struct {
	LookbackDays       float64 `yaml:"lookback_days"`
	ArchivalDelayDays  float64 `yaml:"archival_delay_days"`
	ArchivalSearchDays float64 `yaml:"archival_search_days"` // how far back to look for the archival edit
}

// CacheConfig configures the layered response cache. Only immutable
// lookups (sections of a fixed revision) are cached.
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled"`
	Dir       string        `yaml:"dir"`
	MemoryTTL time.Duration `yaml:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl"`
}

// ConcurrencyConfig bounds the fan-out of history and archive fetches.
type ConcurrencyConfig struct {
	ScanWorkers    int `yaml:"scan_workers"`
	ArchiveWorkers int `yaml:"archive_workers"`
}

// NotifyConfig configures notification rendering and delivery.
type NotifyConfig struct {
	BotName  string `yaml:"bot_name"`
	Template string `yaml:"template"`
	DryRun   bool   `yaml:"dry_run"`
}

// RunLogConfig configures the optional sqlite run log.
type RunLogConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// LLMConfig configures the optional operator digest. It is disabled unless
// a provider is set; it never affects attribution.
type LLMConfig struct {
	Provider  string `yaml:"provider"`
	Model     string `yaml:"model"`
	APIKey    string `yaml:"-"` // from environment only, never persisted
	BaseURL   string `yaml:"base_url"`
	MaxTokens int    `yaml:"max_tokens"`
}

// DefaultConfig returns the built-in defaults for Wikipedia's Teahouse.
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			Endpoint:     "https://en.wikipedia.org/w/api.php",
			UserAgent:    "Teahouse-bot/2.0 (https://github.com/Tigraan/Teahouse-bot)",
			Timeout:      30 * time.Second,
			MaxBodyBytes: 4_000_000,
			RatePerSec:   2,
			Burst:        5,
			MaxContinues: 5,
			MaxRetries:   3,
		},
		Page: PageConfig{
			Title:    "Wikipedia:Teahouse",
			Archiver: "Lowercase sigmabot III",
		},
		Window: WindowConfig{
			LookbackDays:       10,
			ArchivalDelayDays:  2,
			ArchivalSearchDays: 1,
		},
		Cache: CacheConfig{
			Enabled:   true,
			Dir:       "", // resolved to ~/.teahouse-bot/cache at startup
			MemoryTTL: 30 * time.Minute,
			DiskTTL:   30 * 24 * time.Hour,
		},
		Concurrency: ConcurrencyConfig{
			ScanWorkers:    4,
			ArchiveWorkers: 4,
		},
		Notify: NotifyConfig{
			BotName:  "Muninnbot",
			Template: "User:Tigraan-testbot/Teahouse archival notification",
			DryRun:   true,
		},
		RunLog: RunLogConfig{
			Enabled: false,
			Path:    "", // resolved to ~/.teahouse-bot/runlog.db at startup
		},
		LLM: LLMConfig{
			MaxTokens: 800,
		},
	}
}
