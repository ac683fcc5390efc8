package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/snapdex"
	"github.com/fwojciec/snapdex/build"
	"github.com/fwojciec/snapdex/etree"
	"github.com/fwojciec/snapdex/fs"
	"github.com/fwojciec/snapdex/fsnotify"
	"github.com/fwojciec/snapdex/goquery"
	locslog "github.com/fwojciec/snapdex/slog"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct{}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("snapdex"),
		kong.Description("Generate a JSON manifest for a directory of archived web pages"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.Vars{"default_exts": defaultExts()},
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle help flags before running anything
	for _, arg := range args {
		if arg == "--help" || arg == "-h" || (len(args) == 1 && arg == "help") {
			_, _ = parser.Parse([]string{"--help"})
			return nil
		}
	}

	_, err = parser.Parse(args)
	if err != nil {
		return err
	}

	if cli.Sitemap != "" && cli.BaseURL == "" {
		return fmt.Errorf("--base-url is required when --sitemap is set")
	}

	level := slog.LevelWarn
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	// Wire dependencies
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
		Logger: logger,
	}

	walker := fs.NewWalker(cli.Ext...)

	writers := []snapdex.ManifestWriter{
		locslog.NewLoggingManifestWriter(fs.NewManifestWriter(cli.Output), cli.Output, logger),
	}
	if cli.Sitemap != "" {
		var opts []etree.SitemapOption
		if !cli.EncodeURLs {
			opts = append(opts, etree.WithRawURLs())
		}
		sitemap := etree.NewSitemapWriter(cli.Sitemap, cli.BaseURL, opts...)
		writers = append(writers, locslog.NewLoggingManifestWriter(sitemap, cli.Sitemap, logger))
	}

	deps.Builder = &build.Builder{
		Walker:  locslog.NewLoggingWalker(walker, logger),
		Writers: writers,
		Titles:  locslog.NewLoggingTitleExtractor(goquery.NewTitleExtractor(), logger),
		Logger:  logger,
		Root:    cli.Root,
		BaseDir: cli.BaseDir,
		Options: build.Options{
			EncodeURLs:        cli.EncodeURLs,
			FailOnMissingRoot: cli.FailOnMissingRoot,
			NormalizeTitles:   cli.NFC,
			DocumentTitles:    cli.DocumentTitles,
		},
	}

	if cli.Watch {
		outputs := []string{cli.Output}
		if cli.Sitemap != "" {
			outputs = append(outputs, cli.Sitemap)
		}
		watcher, err := fsnotify.NewWatcher(cli.Root,
			fsnotify.WithDebounce(cli.Debounce),
			fsnotify.WithMatch(walker.Match),
			fsnotify.WithIgnore(outputs...),
			fsnotify.WithLogger(logger),
		)
		if err != nil {
			return fmt.Errorf("failed to watch %q: %w", cli.Root, err)
		}
		defer watcher.Close()
		deps.Watcher = watcher
	}

	cmd := &BuildCmd{
		Output: cli.Output,
		Watch:  cli.Watch,
	}

	return cmd.Run(deps)
}
