package main

import "fmt"

// Run executes the manage command. A terminal that cannot support
// interactive use is an error so the process exits non-zero.
func (c *ManageCmd) Run(deps *Dependencies) error {
	ok, err := deps.RunManager(deps.Ctx)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("interactive mode unavailable")
	}
	return nil
}
