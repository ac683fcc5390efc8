// Package etree renders the manifest as an XML sitemap.
package etree

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/beevik/etree"
	"github.com/fwojciec/snapdex"
	"github.com/fwojciec/snapdex/fs"
)

// SitemapNamespace is the sitemaps.org schema namespace.
const SitemapNamespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

// Ensure SitemapWriter implements snapdex.ManifestWriter.
var _ snapdex.ManifestWriter = (*SitemapWriter)(nil)

// SitemapWriter writes a sitemap.xml listing every manifest record.
type SitemapWriter struct {
	path    string
	baseURL string
	rawURLs bool
}

// SitemapOption configures a SitemapWriter.
type SitemapOption func(*SitemapWriter)

// WithRawURLs marks record URLs as unencoded relative paths, so the writer
// percent-encodes them before joining with the base URL.
func WithRawURLs() SitemapOption {
	return func(w *SitemapWriter) {
		w.rawURLs = true
	}
}

// NewSitemapWriter creates a SitemapWriter that writes to path. Record URLs
// are resolved against baseURL, which must be absolute.
func NewSitemapWriter(path, baseURL string, opts ...SitemapOption) *SitemapWriter {
	w := &SitemapWriter{path: path, baseURL: baseURL}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// WriteManifest renders the sitemap and replaces the output file.
func (w *SitemapWriter) WriteManifest(ctx context.Context, m snapdex.Manifest) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := w.Render(m)
	if err != nil {
		return err
	}
	return fs.WriteFile(w.path, data)
}

// Render returns the sitemap document for m.
func (w *SitemapWriter) Render(m snapdex.Manifest) ([]byte, error) {
	base, err := url.Parse(w.baseURL)
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, snapdex.Errorf(snapdex.EINVALID, "sitemap base URL must be absolute: %q", w.baseURL)
	}
	prefix := strings.TrimSuffix(base.String(), "/") + "/"

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	urlset := doc.CreateElement("urlset")
	urlset.CreateAttr("xmlns", SitemapNamespace)

	for i := range m {
		rec := &m[i]
		loc := rec.URL
		if w.rawURLs {
			loc = snapdex.EncodeURI(loc)
		}

		el := urlset.CreateElement("url")
		el.CreateElement("loc").SetText(prefix + strings.TrimPrefix(loc, "/"))
		if lastmod, ok := lastModified(rec); ok {
			el.CreateElement("lastmod").SetText(lastmod)
		}
	}

	doc.Indent(2)
	return doc.WriteToBytes()
}

// lastModified returns the record date in W3C format when the filename
// carried a full, valid calendar date.
func lastModified(rec *snapdex.Record) (string, bool) {
	if !rec.Dated() || len(rec.DateText) != len("2006-01-02") {
		return "", false
	}
	t, err := time.Parse("20060102", rec.DateKey)
	if err != nil {
		return "", false
	}
	return t.Format("2006-01-02"), true
}
