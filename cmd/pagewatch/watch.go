package main

import (
	"time"

	"github.com/robfig/cron/v3"

	"github.com/fwojciec/pagewatch"
)

// minInterval is the floor for the interval loop; lower values hammer the
// targets for no benefit.
const minInterval = 10 * time.Second

// Run executes the watch command.
func (c *WatchCmd) Run(deps *Dependencies) error {
	if c.Once {
		return c.cycle(deps)
	}

	if c.Schedule != "" {
		return c.runSchedule(deps)
	}

	interval := time.Duration(c.Interval) * time.Second
	if interval < minInterval {
		deps.Logger.Warn("interval below floor, clamping", "requested", interval, "floor", minInterval)
		interval = minInterval
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if err := c.cycle(deps); err != nil {
			if deps.Ctx.Err() != nil {
				return nil
			}
			deps.Logger.Error("scan cycle failed", "error", pagewatch.ErrorMessage(err))
		}
		select {
		case <-deps.Ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

// runSchedule drives cycles from a cron expression instead of a fixed
// interval. Blocks until the context is canceled.
func (c *WatchCmd) runSchedule(deps *Dependencies) error {
	cr := cron.New()
	_, err := cr.AddFunc(c.Schedule, func() {
		if err := c.cycle(deps); err != nil && deps.Ctx.Err() == nil {
			deps.Logger.Error("scan cycle failed", "error", pagewatch.ErrorMessage(err))
		}
	})
	if err != nil {
		return pagewatch.Errorf(pagewatch.EINVALID, "invalid schedule %q: %s", c.Schedule, err)
	}

	cr.Start()
	<-deps.Ctx.Done()
	<-cr.Stop().Done()
	return nil
}

func (c *WatchCmd) cycle(deps *Dependencies) error {
	result, err := deps.Scanner.Run(deps.Ctx)
	if err != nil {
		return err
	}
	deps.Logger.Info("scan cycle complete",
		"candidates", result.Candidates,
		"notified", result.Notified,
		"skippedTargets", result.SkippedTargets)
	return nil
}
