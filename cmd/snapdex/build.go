package main

import (
	"context"
	"fmt"

	"github.com/fwojciec/snapdex"
)

// Run executes the build command.
func (c *BuildCmd) Run(deps *Dependencies) error {
	if err := c.build(deps.Ctx, deps); err != nil {
		return err
	}

	if !c.Watch {
		return nil
	}

	fmt.Fprintln(deps.Stdout, "watching for changes, press Ctrl+C to stop")
	return deps.Watcher.Run(deps.Ctx, func(ctx context.Context) error {
		return c.build(ctx, deps)
	})
}

func (c *BuildCmd) build(ctx context.Context, deps *Dependencies) error {
	result, err := deps.Builder.Build(ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", snapdex.ErrorMessage(err))
		return err
	}

	if c.Watch && result.Digest == c.lastDigest {
		deps.Logger.Debug("manifest unchanged", "digest", result.Digest)
		return nil
	}
	c.lastDigest = result.Digest

	deps.Logger.Info("manifest built", "count", len(result.Manifest), "digest", result.Digest, "missing_root", result.Missing)
	fmt.Fprintf(deps.Stdout, "wrote %s (%d records, digest %s)\n", c.Output, len(result.Manifest), result.Digest)
	return nil
}
