package main

import (
	"fmt"

	"github.com/jubalm/localdocs"
)

// Run executes the remove command.
func (c *RemoveCmd) Run(deps *Dependencies) error {
	if !c.Force {
		all, err := deps.Store.ListAll(deps.Ctx)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", localdocs.ErrorMessage(err))
			return err
		}
		md, ok := all[c.ID]
		if !ok {
			return fmt.Errorf("document %s not found", c.ID)
		}
		fmt.Fprintf(deps.Stdout, "Would remove %s (%s)\n", c.ID, md.DisplayName())
		fmt.Fprintln(deps.Stdout, "Run again with --force to confirm.")
		return nil
	}

	if err := deps.Store.Delete(deps.Ctx, c.ID); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", localdocs.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Removed %s.\n", c.ID)
	return nil
}
