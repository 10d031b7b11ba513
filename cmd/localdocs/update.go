package main

import (
	"fmt"
	"sort"

	"github.com/jubalm/localdocs"
)

// Run executes the update command.
func (c *UpdateCmd) Run(deps *Dependencies) error {
	ids := c.IDs

	if c.All {
		all, err := deps.Store.ListAll(deps.Ctx)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", localdocs.ErrorMessage(err))
			return err
		}
		ids = ids[:0]
		for id := range all {
			ids = append(ids, id)
		}
		sort.Strings(ids)
	}

	if len(ids) == 0 {
		return fmt.Errorf("no documents given: pass IDs or --all")
	}

	updated, failed := 0, 0
	for _, id := range ids {
		if err := deps.Store.Update(deps.Ctx, id); err != nil {
			failed++
			fmt.Fprintf(deps.Stderr, "  skip %s: %s\n", id, localdocs.ErrorMessage(err))
			continue
		}
		updated++
		fmt.Fprintf(deps.Stdout, "  updated %s\n", id)
	}

	fmt.Fprintf(deps.Stdout, "Updated %d/%d documents.\n", updated, len(ids))
	if failed > 0 {
		return fmt.Errorf("%d updates failed", failed)
	}
	return nil
}
