package main

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/fwojciec/snapdex"
	"github.com/fwojciec/snapdex/build"
	"github.com/fwojciec/snapdex/fsnotify"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx     context.Context
	Stdout  io.Writer
	Stderr  io.Writer
	Logger  *slog.Logger
	Builder *build.Builder
	Watcher *fsnotify.Watcher
}

// CLI defines the command-line interface structure for Kong.
// Every flag has a default so running without arguments indexes mhtml/
// into index.json.
type CLI struct {
	Root              string        `short:"r" default:"mhtml" env:"SNAPDEX_ROOT" help:"Directory of archived documents"`
	Output            string        `short:"o" default:"index.json" env:"SNAPDEX_OUTPUT" help:"Manifest output path"`
	BaseDir           string        `name:"base-dir" default:"." help:"Directory that record URLs are relative to"`
	Ext               []string      `name:"ext" default:"${default_exts}" help:"File extensions to collect"`
	EncodeURLs        bool          `name:"encode-urls" default:"true" negatable:"" help:"Percent-encode record URLs"`
	FailOnMissingRoot bool          `name:"fail-on-missing-root" help:"Fail instead of writing an empty manifest when the root is missing"`
	DocumentTitles    bool          `name:"document-titles" help:"Read the embedded title when the filename yields none"`
	NFC               bool          `name:"nfc" help:"Normalize titles to Unicode NFC"`
	Sitemap           string        `help:"Also write an XML sitemap to this path"`
	BaseURL           string        `name:"base-url" help:"Absolute site URL used for sitemap entries"`
	Watch             bool          `short:"w" help:"Rebuild whenever the archive changes"`
	Debounce          time.Duration `default:"500ms" help:"Quiet period before a watch rebuild"`
	Verbose           bool          `short:"v" help:"Enable debug logging"`
}

// BuildCmd generates the manifest, optionally regenerating it on change.
type BuildCmd struct {
	Output string
	Watch  bool

	// lastDigest is the digest of the most recently reported manifest.
	// Watch rebuilds that reproduce it stay quiet.
	lastDigest string
}

func defaultExts() string {
	return strings.Join(snapdex.DefaultExtensions, ",")
}
