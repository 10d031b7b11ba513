package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jubalm/localdocs"
)

// Run executes the extract command.
func (c *ExtractCmd) Run(deps *Dependencies) error {
	all, err := deps.Store.ListAll(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", localdocs.ErrorMessage(err))
		return err
	}

	docs := localdocs.ListDocuments(all, localdocs.ListOptions{
		Tags:         c.Tags,
		HasTags:      c.HasTags,
		NoTags:       c.NoTags,
		NameContains: c.NameContains,
		DescContains: c.DescContains,
		SortBy:       c.SortBy,
		Reverse:      c.Reverse,
		Limit:        c.Limit,
	})

	if c.Count {
		fmt.Fprintln(deps.Stdout, len(docs))
		return nil
	}

	out, err := localdocs.FormatDocuments(docs, c.Format, c.Fields, c.Quiet)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", localdocs.ErrorMessage(err))
		return err
	}

	if c.Output != "" {
		if strings.Contains(c.Output, "..") {
			return fmt.Errorf("invalid output path %q", c.Output)
		}
		if dir := filepath.Dir(c.Output); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return fmt.Errorf("creating output directory: %w", err)
			}
		}
		if err := os.WriteFile(c.Output, []byte(out+"\n"), 0644); err != nil {
			return fmt.Errorf("writing output file: %w", err)
		}
		fmt.Fprintf(deps.Stdout, "Wrote %d documents to %s\n", len(docs), c.Output)
		return nil
	}

	fmt.Fprintln(deps.Stdout, out)
	return nil
}
