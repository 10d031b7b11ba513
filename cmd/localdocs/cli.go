package main

import (
	"context"
	"io"

	"github.com/jubalm/localdocs"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer

	Store    localdocs.DocumentStore
	Writer   localdocs.PageWriter
	Pages    localdocs.PageFetcher
	Sitemaps localdocs.SitemapService

	// RunManager starts the interactive session. Overridable for tests.
	RunManager func(ctx context.Context) (bool, error)
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Add     AddCmd     `cmd:"" help:"Fetch URLs and add them to the registry"`
	Set     SetCmd     `cmd:"" help:"Set name, description, or tags on a document"`
	Extract ExtractCmd `cmd:"" help:"List registry data in table, json, csv, or ids format"`
	Update  UpdateCmd  `cmd:"" help:"Re-fetch document content from stored URLs"`
	Remove  RemoveCmd  `cmd:"" help:"Remove a document and its content file"`
	Package PackageCmd `cmd:"" help:"Export selected documents as a package directory"`
	Manage  ManageCmd  `cmd:"" help:"Manage documents interactively"`
}

// AddCmd is the "add" subcommand.
type AddCmd struct {
	URLs        []string `arg:"" optional:"" help:"URLs to fetch and register"`
	FromFile    string   `short:"f" help:"Read URLs from a file, one per line"`
	Sitemap     string   `help:"Discover URLs from the site's sitemap under this base URL"`
	Filter      []string `short:"F" name:"filter" help:"Filter sitemap URLs by regex (repeatable)"`
	Concurrency int      `short:"c" default:"3" help:"Concurrent fetch limit"`
}

// SetCmd is the "set" subcommand.
type SetCmd struct {
	ID          string  `arg:"" help:"Document ID"`
	Name        *string `help:"New name (200 characters max)"`
	Description *string `help:"New description (1000 characters max)"`
	Tags        *string `help:"Comma-separated tags (lowercase alphanumeric and hyphens)"`
}

// ExtractCmd is the "extract" subcommand.
type ExtractCmd struct {
	Format       string   `default:"table" enum:"table,json,csv,ids" help:"Output format"`
	Fields       []string `help:"Fields to include: id, name, description, tags, url"`
	Tags         []string `help:"Only documents carrying any of these tags"`
	HasTags      bool     `help:"Only documents with at least one tag"`
	NoTags       bool     `help:"Only documents without tags"`
	NameContains string   `help:"Filter by case-insensitive name substring"`
	DescContains string   `help:"Filter by case-insensitive description substring"`
	SortBy       string   `default:"id" enum:"id,name,url,tags" help:"Sort key"`
	Reverse      bool     `help:"Reverse sort order"`
	Limit        int      `help:"Maximum number of documents"`
	Count        bool     `help:"Print only the matching document count"`
	Quiet        bool     `short:"q" help:"Omit headers and totals"`
	Output       string   `short:"o" help:"Write output to a file instead of stdout"`
}

// UpdateCmd is the "update" subcommand.
type UpdateCmd struct {
	IDs []string `arg:"" optional:"" help:"Document IDs to update"`
	All bool     `help:"Update every registered document"`
}

// RemoveCmd is the "remove" subcommand.
type RemoveCmd struct {
	ID    string `arg:"" help:"Document ID"`
	Force bool   `help:"Confirm removal"`
}

// PackageCmd is the "package" subcommand.
type PackageCmd struct {
	Name          string   `arg:"" help:"Package directory name"`
	Format        string   `default:"toc" enum:"toc,claude,json" help:"Package format"`
	Include       []string `short:"i" help:"Document IDs to include (repeatable)"`
	All           bool     `help:"Include every registered document"`
	AbsolutePaths bool     `help:"Reference content files in place instead of copying"`
}

// ManageCmd is the "manage" subcommand.
type ManageCmd struct{}
