package main

import (
	"fmt"
	"sort"

	"github.com/jubalm/localdocs"
)

// Run executes the package command.
func (c *PackageCmd) Run(deps *Dependencies) error {
	ids := c.Include

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
		return fmt.Errorf("no documents given: pass --include or --all")
	}

	format, err := localdocs.ParseExportFormat(c.Format)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", localdocs.ErrorMessage(err))
		return err
	}

	if err := deps.Store.ExportSelected(deps.Ctx, c.Name, ids, format, c.AbsolutePaths); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", localdocs.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Package '%s' created with %d documents.\n", c.Name, len(ids))
	return nil
}
