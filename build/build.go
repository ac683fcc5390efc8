// Package build assembles the manifest. It walks the archive directory,
// derives a record for every document and hands the complete manifest to
// the configured writers.
package build

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/snapdex"
	"golang.org/x/text/unicode/norm"
)

// Options controls how records are derived.
type Options struct {
	// EncodeURLs percent-encodes record URLs; otherwise the normalized
	// relative path is used as-is.
	EncodeURLs bool

	// FailOnMissingRoot returns ENOTFOUND when the root directory does not
	// exist. When unset, a missing root yields an empty manifest.
	FailOnMissingRoot bool

	// NormalizeTitles applies Unicode NFC to titles.
	NormalizeTitles bool

	// DocumentTitles asks the TitleExtractor for a title when the filename
	// yields an empty one.
	DocumentTitles bool
}

// Builder produces the manifest for a directory of archived documents.
type Builder struct {
	Walker  snapdex.Walker
	Writers []snapdex.ManifestWriter
	Titles  snapdex.TitleExtractor
	Logger  *slog.Logger

	// Root is the directory to scan.
	Root string

	// BaseDir is the directory record URLs are relative to.
	// Defaults to the process working directory.
	BaseDir string

	Options Options
}

// Result holds the outcome of a build.
type Result struct {
	Manifest snapdex.Manifest

	// Missing is set when the root directory did not exist and an empty
	// manifest was produced in its place.
	Missing bool

	// Digest is the xxhash64 of the encoded manifest in hex. Builds over an
	// unchanged tree produce the same digest.
	Digest string
}

// Build walks Root, derives one record per document in traversal order and
// writes the manifest with every writer.
func (b *Builder) Build(ctx context.Context) (*Result, error) {
	base, err := b.baseDir()
	if err != nil {
		return nil, err
	}

	result := &Result{Manifest: snapdex.Manifest{}}

	paths, err := b.Walker.Walk(ctx, b.Root)
	if snapdex.ErrorCode(err) == snapdex.ENOTFOUND && !b.Options.FailOnMissingRoot {
		b.logger().Warn("archive directory missing, writing empty manifest", "root", b.Root)
		result.Missing = true
		paths = nil
	} else if err != nil {
		return nil, fmt.Errorf("walk %s: %w", b.Root, err)
	}

	for _, path := range paths {
		rec, err := b.record(ctx, base, path)
		if err != nil {
			return nil, err
		}
		result.Manifest = append(result.Manifest, rec)
	}

	data, err := snapdex.EncodeManifest(result.Manifest)
	if err != nil {
		return nil, err
	}
	result.Digest = fmt.Sprintf("%016x", xxhash.Sum64(data))

	for _, w := range b.Writers {
		if err := w.WriteManifest(ctx, result.Manifest); err != nil {
			return nil, fmt.Errorf("write manifest: %w", err)
		}
	}

	return result, nil
}

func (b *Builder) record(ctx context.Context, base, path string) (snapdex.Record, error) {
	rel, err := filepath.Rel(base, path)
	if err != nil {
		return snapdex.Record{}, fmt.Errorf("relative path for %s: %w", path, err)
	}

	rec := snapdex.NewRecord(filepath.ToSlash(rel), b.Options.EncodeURLs)

	if rec.Title == "" && b.Options.DocumentTitles && b.Titles != nil {
		title, err := b.Titles.ExtractTitle(ctx, path)
		if err != nil {
			b.logger().Warn("document title unavailable", "path", path, "err", err)
		} else {
			rec.Title = title
		}
	}

	if b.Options.NormalizeTitles {
		rec.Title = norm.NFC.String(rec.Title)
	}

	return rec, nil
}

func (b *Builder) baseDir() (string, error) {
	if b.BaseDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("working directory: %w", err)
		}
		return wd, nil
	}
	return filepath.Abs(b.BaseDir)
}

func (b *Builder) logger() *slog.Logger {
	if b.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return b.Logger
}
