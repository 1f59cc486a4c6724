package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/fwojciec/pagewatch"
)

// Run executes the state show command.
func (c *StateShowCmd) Run(deps *Dependencies) error {
	state, err := deps.Store.Load(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagewatch.ErrorMessage(err))
		return err
	}

	out, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(deps.Stdout, string(out))

	return nil
}

// Run executes the state prune command.
func (c *StatePruneCmd) Run(deps *Dependencies) error {
	state, err := deps.Store.Load(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagewatch.ErrorMessage(err))
		return err
	}

	before := len(state.Notified)
	state.Prune(time.Duration(c.TTL)*time.Hour, time.Now())

	if err := deps.Store.Save(deps.Ctx, state); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagewatch.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Pruned %d expired entries, %d remain\n", before-len(state.Notified), len(state.Notified))

	return nil
}
