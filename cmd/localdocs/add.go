package main

import (
	"bufio"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/jubalm/localdocs"
	"github.com/jubalm/localdocs/fetch"
	ldhttp "github.com/jubalm/localdocs/http"
)

// Run executes the add command.
func (c *AddCmd) Run(deps *Dependencies) error {
	urls := append([]string{}, c.URLs...)

	if c.FromFile != "" {
		fromFile, err := readURLFile(c.FromFile)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", localdocs.ErrorMessage(err))
			return err
		}
		urls = append(urls, fromFile...)
	}

	if c.Sitemap != "" {
		filter, err := compileFilters(c.Filter)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %v\n", err)
			return err
		}
		discovered, err := deps.Sitemaps.DiscoverURLs(deps.Ctx, c.Sitemap, filter)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", localdocs.ErrorMessage(err))
			return err
		}
		fmt.Fprintf(deps.Stdout, "Found %d URLs in sitemap\n", len(discovered))
		urls = append(urls, discovered...)
	}

	if len(urls) == 0 {
		return fmt.Errorf("no URLs given: pass URLs, --from-file, or --sitemap")
	}

	for _, u := range urls {
		if err := ldhttp.ValidateURL(u); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", localdocs.ErrorMessage(err))
			return err
		}
	}

	downloader := &fetch.Downloader{
		Pages:       deps.Pages,
		Store:       deps.Writer,
		Concurrency: c.Concurrency,
		OnProgress: func(p fetch.Progress) {
			if p.Err != nil {
				fmt.Fprintf(deps.Stderr, "  skip %s: %s\n", p.URL, localdocs.ErrorMessage(p.Err))
				return
			}
			fmt.Fprintf(deps.Stdout, "  [%d/%d] %s %s\n", p.Completed, p.Total, p.ID, p.URL)
		},
	}

	result, err := downloader.DownloadAll(deps.Ctx, urls)
	if err != nil {
		return err
	}

	fmt.Fprintf(deps.Stdout, "Added %d/%d documents.\n", result.Added, result.Attempted)
	if result.Failed > 0 {
		return fmt.Errorf("%d downloads failed", result.Failed)
	}
	return nil
}

func readURLFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, localdocs.Errorf(localdocs.ENOTFOUND, "cannot read URL file %s", path)
	}
	defer f.Close()

	var urls []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, localdocs.Errorf(localdocs.EINTERNAL, "reading URL file: %v", err)
	}
	return urls, nil
}

func compileFilters(patterns []string) (*localdocs.URLFilter, error) {
	if len(patterns) == 0 {
		return nil, nil
	}
	filter := &localdocs.URLFilter{}
	for _, pattern := range patterns {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid filter pattern %q: %w", pattern, err)
		}
		filter.Include = append(filter.Include, re)
	}
	return filter, nil
}
