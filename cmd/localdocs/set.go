package main

import (
	"fmt"

	"github.com/jubalm/localdocs"
)

// Run executes the set command.
func (c *SetCmd) Run(deps *Dependencies) error {
	if c.Name == nil && c.Description == nil && c.Tags == nil {
		return fmt.Errorf("nothing to set: pass --name, --description, or --tags")
	}

	upd := localdocs.MetadataUpdate{
		Name:        c.Name,
		Description: c.Description,
	}
	if c.Tags != nil {
		upd.Tags = localdocs.CleanTags(*c.Tags)
	}

	if err := deps.Store.SetMetadata(deps.Ctx, c.ID, upd); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", localdocs.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Updated metadata for %s.\n", c.ID)
	return nil
}
