package fs_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/snapdex"
	"github.com/fwojciec/snapdex/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManifestWriter_ImplementsInterface(t *testing.T) {
	t.Parallel()

	var _ snapdex.ManifestWriter = &fs.ManifestWriter{}
}

// Story: Manifest Output
// The manifest file is replaced wholesale on every run

func TestManifestWriter_WritesIndentedJSON(t *testing.T) {
	t.Parallel()

	// Given a writer targeting index.json
	path := filepath.Join(t.TempDir(), "index.json")
	w := fs.NewManifestWriter(path)

	// When I write a manifest with one record
	err := w.WriteManifest(context.Background(), snapdex.Manifest{{
		Title:          "report",
		DateText:       snapdex.UnknownDateText,
		DateKey:        snapdex.UnknownDateKey,
		DateGroupKey:   snapdex.UnknownGroupKey,
		DateGroupLabel: snapdex.UnknownGroupLabel,
		URL:            "mhtml/report.html",
	}})

	// Then the file holds the encoded manifest
	require.NoError(t, err)
	got, err := os.ReadFile(path)
	require.NoError(t, err)
	want := `[
  {
    "title": "report",
    "dateText": "未知时间",
    "dateKey": "00000000",
    "dateGroupKey": "000000",
    "dateGroupLabel": "未知日期",
    "url": "mhtml/report.html"
  }
]`
	assert.Equal(t, want, string(got))
}

func TestManifestWriter_OverwritesPreviousOutput(t *testing.T) {
	t.Parallel()

	// Given an existing, longer output file
	path := filepath.Join(t.TempDir(), "index.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"title": "stale entry that is long"}]`), 0644))
	w := fs.NewManifestWriter(path)

	// When I write an empty manifest
	err := w.WriteManifest(context.Background(), nil)

	// Then the file is fully replaced
	require.NoError(t, err)
	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(got))

	// And no temp file is left behind
	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestManifestWriter_CreatesParentDirectories(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "public", "data", "index.json")
	w := fs.NewManifestWriter(path)

	err := w.WriteManifest(context.Background(), snapdex.Manifest{})

	require.NoError(t, err)
	_, err = os.Stat(path)
	assert.NoError(t, err)
	assert.Equal(t, path, w.Path())
}

func TestManifestWriter_PropagatesWriteFailure(t *testing.T) {
	t.Parallel()

	// Given an output path whose parent is a regular file
	base := t.TempDir()
	blocker := filepath.Join(base, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))
	w := fs.NewManifestWriter(filepath.Join(blocker, "index.json"))

	// When I write
	err := w.WriteManifest(context.Background(), snapdex.Manifest{})

	// Then the error surfaces
	assert.Error(t, err)
}

func TestManifestWriter_RespectsCancelledContext(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "index.json")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := fs.NewManifestWriter(path).WriteManifest(ctx, nil)

	require.ErrorIs(t, err, context.Canceled)
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}
