package main

import (
	"context"
	"fmt"
	"io"
	"regexp"
	"time"

	"github.com/fwojciec/pagewatch"
	pwhttp "github.com/fwojciec/pagewatch/http"
	"github.com/fwojciec/pagewatch/rod"
	"github.com/fwojciec/pagewatch/scan"
	"github.com/fwojciec/pagewatch/telegram"
)

// buildScanner assembles a Scanner from the shared scan options, preferring
// services injected on Main over the real implementations.
func (m *Main) buildScanner(ctx context.Context, opts *ScanOptions, deps *Dependencies) (*scan.Scanner, error) {
	rules, err := pagewatch.ParseRuleSet(opts.Rules)
	if err != nil {
		return nil, err
	}

	detail, err := regexp.Compile(opts.DetailPattern)
	if err != nil {
		return nil, pagewatch.Errorf(pagewatch.EINVALID, "invalid detail pattern %q: %s", opts.DetailPattern, err)
	}

	targets, err := m.resolveTargets(ctx, opts)
	if err != nil {
		return nil, err
	}

	store, err := m.openStore(opts.State, opts.StateBackend)
	if err != nil {
		return nil, err
	}

	renderer, err := m.buildRenderer(opts)
	if err != nil {
		return nil, err
	}
	renderer = rod.NewLoggingRenderer(renderer, deps.Logger)

	notifier, err := m.buildNotifier(opts, deps.Stdout)
	if err != nil {
		return nil, err
	}
	notifier = telegram.NewLoggingNotifier(notifier, deps.Logger)

	return &scan.Scanner{
		Renderer:      renderer,
		Notifier:      notifier,
		Store:         store,
		Limiter:       scan.NewDomainLimiter(opts.RPS),
		Rules:         rules,
		Targets:       targets,
		DetailPattern: detail,
		TTL:           time.Duration(opts.TTL) * time.Hour,
		Force:         opts.Force,
		DeepCheck:     opts.DeepCheck,
		RetryDelays:   scan.DefaultRetryDelays(),
		NotifyDelay:   opts.NotifyDelay,
		Logger:        deps.Logger,
	}, nil
}

// resolveTargets combines the configured target URLs with any targets
// discovered through the sitemap option.
func (m *Main) resolveTargets(ctx context.Context, opts *ScanOptions) ([]string, error) {
	targets := append([]string(nil), opts.Targets...)

	if opts.TargetsSitemap != "" {
		var include *regexp.Regexp
		if opts.SitemapFilter != "" {
			var err error
			include, err = regexp.Compile(opts.SitemapFilter)
			if err != nil {
				return nil, pagewatch.Errorf(pagewatch.EINVALID, "invalid sitemap filter %q: %s", opts.SitemapFilter, err)
			}
		}
		expanded, err := pwhttp.NewSitemapSource(nil).Expand(ctx, opts.TargetsSitemap, include)
		if err != nil {
			return nil, err
		}
		targets = append(targets, expanded...)
	}

	if len(targets) == 0 {
		return nil, pagewatch.Errorf(pagewatch.EINVALID, "no targets configured")
	}
	return targets, nil
}

func (m *Main) buildRenderer(opts *ScanOptions) (pagewatch.Renderer, error) {
	if m.Renderer != nil {
		return m.Renderer, nil
	}
	if opts.Static {
		r := pwhttp.NewRenderer()
		m.renderer = r
		return r, nil
	}
	r, err := rod.NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("failed to start browser: %w", err)
	}
	m.renderer = r
	return r, nil
}

func (m *Main) buildNotifier(opts *ScanOptions, stdout io.Writer) (pagewatch.Notifier, error) {
	if m.Notifier != nil {
		return m.Notifier, nil
	}
	if opts.DryRun {
		return &printNotifier{w: stdout}, nil
	}
	if opts.TelegramToken == "" || opts.ChatID == 0 {
		return nil, pagewatch.Errorf(pagewatch.EINVALID, "TELEGRAM_BOT_TOKEN and TELEGRAM_CHAT_ID must be set (or use --dry-run)")
	}
	return telegram.NewNotifier(opts.TelegramToken, opts.ChatID)
}

// printNotifier writes notifications to stdout instead of delivering them.
type printNotifier struct {
	w io.Writer
}

func (n *printNotifier) Notify(_ context.Context, notification pagewatch.Notification) error {
	_, err := fmt.Fprintf(n.w, "%s\n\n", notification.Message())
	return err
}
