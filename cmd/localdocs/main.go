package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"

	"github.com/jubalm/localdocs/fetch"
	"github.com/jubalm/localdocs/fs"
	"github.com/jubalm/localdocs/goquery"
	"github.com/jubalm/localdocs/htmltomarkdown"
	ldhttp "github.com/jubalm/localdocs/http"
	"github.com/jubalm/localdocs/term"
	"github.com/jubalm/localdocs/trafilatura"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Registry file path. Set before calling Run().
	ConfigPath string

	// Store is the document store wired during Run, exposed for
	// end-to-end testing.
	Store *fs.Store
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	path, _ := fs.FindConfigPath()
	return &Main{ConfigPath: path}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("localdocs"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'localdocs --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	pipeline := &fetch.Pipeline{
		Fetcher:   ldhttp.NewFetcher(),
		Extractor: trafilatura.NewExtractor(),
		Converter: htmltomarkdown.NewConverter(),
		Meta:      goquery.NewMetaExtractor(),
		Limiter:   fetch.NewDomainLimiter(1.0),
		Logf: func(format string, a ...any) {
			fmt.Fprintf(stderr, format+"\n", a...)
		},
	}

	m.Store = fs.NewStore(m.ConfigPath, pipeline)

	deps.Store = m.Store
	deps.Writer = m.Store
	deps.Pages = pipeline
	deps.Sitemaps = ldhttp.NewSitemapService(nil)
	deps.RunManager = func(ctx context.Context) (bool, error) {
		return term.NewManager(m.Store, term.NewTerminal()).Run(ctx)
	}

	return kongCtx.Run(deps)
}
