package main

import (
	"fmt"

	"github.com/fwojciec/pagewatch"
)

// Run executes the scan command: a single cycle, then exit.
func (c *ScanCmd) Run(deps *Dependencies) error {
	result, err := deps.Scanner.Run(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagewatch.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Scanned %d candidates, sent %d notifications", result.Candidates, result.Notified)
	if result.SkippedTargets > 0 {
		fmt.Fprintf(deps.Stdout, " (%d targets skipped)", result.SkippedTargets)
	}
	fmt.Fprintln(deps.Stdout)

	return nil
}
