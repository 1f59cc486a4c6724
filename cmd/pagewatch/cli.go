package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/pagewatch"
	"github.com/fwojciec/pagewatch/scan"
)

// Dependencies holds services and configuration for command execution.
type Dependencies struct {
	Ctx     context.Context
	Stdout  io.Writer
	Stderr  io.Writer
	Logger  *slog.Logger
	Scanner *scan.Scanner
	Store   pagewatch.StateStore
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Debug bool `env:"PAGEWATCH_DEBUG" help:"Enable debug logging"`

	Watch WatchCmd `cmd:"" help:"Scan targets on an interval or cron schedule"`
	Scan  ScanCmd  `cmd:"" help:"Run a single scan cycle and exit"`
	State StateCmd `cmd:"" help:"Inspect or prune the persisted notification state"`
}

// ScanOptions are the flags shared by the watch and scan commands.
type ScanOptions struct {
	Targets        []string      `env:"PAGEWATCH_TARGETS" default:"https://s.kz/sauna/almaty,https://s.kz/sauna/astana,https://s.kz/sauna/shymkent" help:"Target listing page URLs"`
	TargetsSitemap string        `env:"PAGEWATCH_TARGETS_SITEMAP" help:"Sitemap URL expanded into additional targets"`
	SitemapFilter  string        `env:"PAGEWATCH_SITEMAP_FILTER" help:"Regexp filter for sitemap-expanded targets"`
	Rules          string        `env:"PAGEWATCH_RULES" required:"" help:"Keyword rules: tokens joined by '&' (AND), rules by ',' (OR)"`
	DetailPattern  string        `env:"PAGEWATCH_DETAIL_PATTERN" default:"/sauna/" help:"Regexp marking detail page URLs"`
	TTL            int           `env:"PAGEWATCH_TTL_HOURS" default:"24" help:"Hours before a notified entry may fire again"`
	Force          bool          `help:"Bypass the notified dedup check"`
	DeepCheck      bool          `env:"PAGEWATCH_DEEP_CHECK" default:"true" negatable:"" help:"Fingerprint detail pages to detect content changes"`
	Static         bool          `env:"PAGEWATCH_STATIC" help:"Use the plain-HTTP renderer instead of a browser"`
	State          string        `env:"PAGEWATCH_STATE" help:"State file path (defaults to ~/.pagewatch/state.json)"`
	StateBackend   string        `env:"PAGEWATCH_STATE_BACKEND" enum:"json,sqlite" default:"json" help:"State persistence backend"`
	TelegramToken  string        `env:"TELEGRAM_BOT_TOKEN" help:"Telegram bot token"`
	ChatID         int64         `env:"TELEGRAM_CHAT_ID" help:"Telegram chat ID to notify"`
	DryRun         bool          `help:"Print notifications to stdout instead of delivering them"`
	RPS            float64       `default:"1" help:"Per-domain requests per second"`
	NotifyDelay    time.Duration `default:"2s" help:"Delay between consecutive notifications"`
}

// WatchCmd is the "watch" subcommand.
type WatchCmd struct {
	ScanOptions

	Interval int    `env:"PAGEWATCH_INTERVAL" default:"60" help:"Seconds between scan cycles (floor 10)"`
	Schedule string `env:"PAGEWATCH_SCHEDULE" help:"Cron expression overriding the interval loop"`
	Once     bool   `help:"Run a single cycle and exit"`
}

// ScanCmd is the "scan" subcommand.
type ScanCmd struct {
	ScanOptions
}

// StateCmd groups the state inspection subcommands.
type StateCmd struct {
	Show  StateShowCmd  `cmd:"" help:"Print the persisted notification state"`
	Prune StatePruneCmd `cmd:"" help:"Remove expired notified entries and save"`
}

// StateShowCmd is the "state show" subcommand.
type StateShowCmd struct {
	State        string `env:"PAGEWATCH_STATE" help:"State file path (defaults to ~/.pagewatch/state.json)"`
	StateBackend string `env:"PAGEWATCH_STATE_BACKEND" enum:"json,sqlite" default:"json" help:"State persistence backend"`
}

// StatePruneCmd is the "state prune" subcommand.
type StatePruneCmd struct {
	State        string `env:"PAGEWATCH_STATE" help:"State file path (defaults to ~/.pagewatch/state.json)"`
	StateBackend string `env:"PAGEWATCH_STATE_BACKEND" enum:"json,sqlite" default:"json" help:"State persistence backend"`
	TTL          int    `env:"PAGEWATCH_TTL_HOURS" default:"24" help:"Hours before a notified entry expires"`
}
