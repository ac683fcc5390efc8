package snapdex

import (
	"bytes"
	"context"
	"encoding/json"
	"path"
)

// Record describes a single archived document in the manifest.
// Field order matches the JSON output consumed by the index page.
type Record struct {
	Title          string `json:"title"`
	DateText       string `json:"dateText"`
	DateKey        string `json:"dateKey"`
	DateGroupKey   string `json:"dateGroupKey"`
	DateGroupLabel string `json:"dateGroupLabel"`
	URL            string `json:"url"`
}

// NewRecord builds the record for a document at relPath, a slash-separated
// path relative to the site root. Title and date come from the basename;
// the URL is percent-encoded when encodeURL is set.
func NewRecord(relPath string, encodeURL bool) Record {
	name := path.Base(relPath)
	date := DateInfoOrUnknown(name)

	url := relPath
	if encodeURL {
		url = EncodeURI(relPath)
	}

	return Record{
		Title:          FilenameToTitle(name),
		DateText:       date.Text,
		DateKey:        date.Key,
		DateGroupKey:   date.GroupKey,
		DateGroupLabel: date.GroupLabel,
		URL:            url,
	}
}

// Dated reports whether the record carries a parsed date rather than the
// unknown-date sentinels.
func (r *Record) Dated() bool {
	return r.DateKey != UnknownDateKey
}

// Manifest is the ordered collection of records. It is always written
// wholesale; consumers sort by DateKey themselves.
type Manifest []Record

// EncodeManifest serializes a manifest as a 2-space indented JSON array.
// HTML characters and U+2028/U+2029 are not escaped and no trailing newline
// is written. A nil manifest encodes as an empty array.
func EncodeManifest(m Manifest) ([]byte, error) {
	if m == nil {
		m = Manifest{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(m); err != nil {
		return nil, Errorf(EINTERNAL, "failed to encode manifest: %v", err)
	}
	return unescapeLineSeparators(bytes.TrimSuffix(buf.Bytes(), []byte("\n"))), nil
}

// unescapeLineSeparators replaces the \u2028 and \u2029 escapes that
// encoding/json always emits with the raw characters. Escape sequences are
// consumed pairwise so an escaped backslash followed by "u2028" is kept.
func unescapeLineSeparators(data []byte) []byte {
	if !bytes.Contains(data, []byte(`\u202`)) {
		return data
	}

	out := make([]byte, 0, len(data))
	for i := 0; i < len(data); i++ {
		if data[i] != '\\' || i+1 >= len(data) {
			out = append(out, data[i])
			continue
		}
		switch rest := data[i+1:]; {
		case bytes.HasPrefix(rest, []byte("u2028")):
			out = append(out, "\u2028"...)
			i += 5
		case bytes.HasPrefix(rest, []byte("u2029")):
			out = append(out, "\u2029"...)
			i += 5
		default:
			out = append(out, data[i], data[i+1])
			i++
		}
	}
	return out
}

// ManifestWriter persists a complete manifest, replacing any previous output.
type ManifestWriter interface {
	WriteManifest(ctx context.Context, m Manifest) error
}
