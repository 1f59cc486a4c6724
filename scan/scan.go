// Package scan provides the per-cycle watch orchestration: candidate
// extraction, dedup against persistent notification state, detail-page
// fingerprinting, and notification delivery.
package scan

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"regexp"
	"time"

	"github.com/fwojciec/pagewatch"
	"github.com/fwojciec/pagewatch/bloom"
	"github.com/google/uuid"
)

// Cycle-level seen filter sizing. The filter lives for one cycle only; a
// false positive suppresses a cross-target duplicate of a candidate.
const (
	cycleExpectedKeys   = 5000
	cycleFalsePositives = 0.01
	defaultNotifyDelay  = 2 * time.Second
)

// Scanner orchestrates one scan cycle over the configured targets.
// Targets and candidates are processed strictly sequentially; the state
// value is loaded once per cycle and saved after every confirmed
// notification.
type Scanner struct {
	Renderer pagewatch.Renderer
	Notifier pagewatch.Notifier
	Store    pagewatch.StateStore
	Limiter  pagewatch.DomainLimiter

	Rules         pagewatch.RuleSet
	Targets       []string
	DetailPattern *regexp.Regexp

	TTL         time.Duration // pruning horizon for notified entries
	Force       bool          // bypass the notified dedup check
	DeepCheck   bool          // fingerprint detail pages
	RetryDelays []time.Duration
	NotifyDelay time.Duration
	Logger      *slog.Logger

	// Now is the clock used for prune cutoffs and notification
	// timestamps. Defaults to time.Now; overridable for tests.
	Now func() time.Time
}

// Result holds the outcome of one scan cycle.
type Result struct {
	Candidates     int // unique candidates considered across all targets
	Notified       int // notifications confirmed delivered
	SkippedTargets int // targets skipped after navigation retry exhaustion
}

// Run executes one full scan cycle. Errors at target or candidate
// granularity are logged and isolated; only a canceled context aborts the
// cycle.
func (s *Scanner) Run(ctx context.Context) (*Result, error) {
	logger := s.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("cycle", uuid.NewString())

	state, err := s.Store.Load(ctx)
	if err != nil {
		return nil, err
	}

	now := s.clock()
	state.Prune(s.TTL, now)
	if err := s.Store.Save(ctx, state); err != nil {
		logger.Warn("saving pruned state", "err", err)
	}

	seen := bloom.NewFilter(cycleExpectedKeys, cycleFalsePositives)
	result := &Result{}

	for _, target := range s.Targets {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		if err := s.scanTarget(ctx, logger, state, seen, target, result); err != nil {
			// Only context cancellation propagates out of a target.
			return result, err
		}
	}

	logger.Info("cycle finished",
		"candidates", result.Candidates,
		"notified", result.Notified,
		"skipped_targets", result.SkippedTargets,
	)
	return result, nil
}

func (s *Scanner) scanTarget(ctx context.Context, logger *slog.Logger, state *pagewatch.State, seen *bloom.Filter, target string, result *Result) error {
	logger = logger.With("target", target)

	if s.Limiter != nil {
		if err := s.Limiter.Wait(ctx, domainOf(target)); err != nil {
			return err
		}
	}

	delays := s.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	retryLog := func(format string, args ...any) {
		logger.Debug("navigation retry", "detail", fmt.Sprintf(format, args...))
	}
	anchors, err := NavigateWithRetryDelays(ctx, target, s.Renderer.Anchors, retryLog, delays)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		logger.Warn("target skipped after retries", "err", err)
		result.SkippedTargets++
		return nil
	}

	candidates := DedupeByURL(ExtractCandidates(anchors, s.Rules, s.DetailPattern))
	result.Candidates += len(candidates)

	for _, candidate := range candidates {
		if err := ctx.Err(); err != nil {
			return err
		}
		s.processCandidate(ctx, logger, state, seen, target, candidate, result)
	}
	return nil
}

// processCandidate resolves the dedup key for one candidate, decides
// whether to notify, delivers, and persists state after confirmed
// delivery. All errors are logged with candidate context and swallowed so
// that remaining candidates proceed.
func (s *Scanner) processCandidate(ctx context.Context, logger *slog.Logger, state *pagewatch.State, seen *bloom.Filter, target string, candidate pagewatch.Candidate, result *Result) {
	logger = logger.With("href", candidate.Href)

	normalized := pagewatch.NormalizeURL(candidate.Href)
	if seen.Test(normalized) {
		// Another target already handled this URL this cycle.
		return
	}
	seen.Add(normalized)

	fingerprint := ""
	changed := false
	if s.DeepCheck {
		fields, err := s.Renderer.Fields(ctx, candidate.Href)
		if err != nil {
			// Degraded fingerprint: the candidate still gets processed,
			// keyed by a digest of the href alone.
			logger.Warn("fingerprint fallback", "err", err)
			fingerprint = pagewatch.FallbackFingerprint(candidate.Href)
		} else {
			fingerprint = pagewatch.Fingerprint(fields)
		}
		changed = state.RecordFingerprint(normalized, fingerprint)
	}

	key := pagewatch.DedupKey(normalized, fingerprint)
	if !state.ShouldNotify(key, s.Force) {
		return
	}

	n := pagewatch.Notification{
		Href:    candidate.Href,
		Text:    candidate.Text,
		Changed: changed,
		Source:  target,
	}
	if err := s.Notifier.Notify(ctx, n); err != nil {
		// Not recorded as notified: the next cycle retries delivery.
		logger.Warn("notification delivery failed", "err", err)
		return
	}

	state.RecordNotified(key, s.clock())
	if err := s.Store.Save(ctx, state); err != nil {
		logger.Warn("saving state", "err", err)
	}
	result.Notified++
	logger.Info("notified", "key", key, "changed", changed)

	delay := s.NotifyDelay
	if delay <= 0 {
		delay = defaultNotifyDelay
	}
	select {
	case <-ctx.Done():
	case <-time.After(delay):
	}
}

func (s *Scanner) clock() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func domainOf(target string) string {
	if u, err := url.Parse(target); err == nil && u.Host != "" {
		return u.Host
	}
	return target
}
