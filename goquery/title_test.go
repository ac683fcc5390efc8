package goquery_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fwojciec/snapdex"
	"github.com/fwojciec/snapdex/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure TitleExtractor implements snapdex.TitleExtractor at compile time.
var _ snapdex.TitleExtractor = (*goquery.TitleExtractor)(nil)

func crlf(s string) string {
	return strings.ReplaceAll(s, "\n", "\r\n")
}

const blinkArchive = `From: <Saved by Blink>
Snapshot-Content-Location: https://example.com/weekly
Subject: =?utf-8?Q?=E5=91=A8=E6=8A=A5?=
Date: Fri, 15 Mar 2024 09:30:00 +0800
MIME-Version: 1.0
Content-Type: multipart/related;
	type="text/html";
	boundary="----MultipartBoundary--abc----"

------MultipartBoundary--abc----
Content-Type: text/html
Content-ID: <frame-1@mhtml.blink>
Content-Transfer-Encoding: quoted-printable
Content-Location: https://example.com/weekly

<html><head><title>Weekly =3D Report</title></head><body></body></html>
------MultipartBoundary--abc------
`

func TestTitleFromHTML(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		html string
		want string
	}{
		{
			name: "reads title element",
			html: `<html><head><title>  Quarterly
				Report </title></head><body><h1>Ignored</h1></body></html>`,
			want: "Quarterly Report",
		},
		{
			name: "falls back to og:title",
			html: `<html><head><title> </title><meta property="og:title" content="Open Graph Title"></head></html>`,
			want: "Open Graph Title",
		},
		{
			name: "falls back to twitter:title",
			html: `<html><head><meta name="twitter:title" content="Tweet Title"></head></html>`,
			want: "Tweet Title",
		},
		{
			name: "falls back to first h1",
			html: `<html><body><h1>First <em>Heading</em></h1><h1>Second</h1></body></html>`,
			want: "First Heading",
		},
		{
			name: "returns empty when no title",
			html: `<html><body><p>nothing here</p></body></html>`,
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := goquery.TitleFromHTML(strings.NewReader(tt.html), "text/html")

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTitleFromHTML_DecodesMetaCharset(t *testing.T) {
	t.Parallel()

	// "中文" encoded as GBK.
	html := "<html><head><meta charset=\"gbk\"><title>\xd6\xd0\xce\xc4</title></head></html>"

	got, err := goquery.TitleFromHTML(strings.NewReader(html), "text/html")

	require.NoError(t, err)
	assert.Equal(t, "中文", got)
}

func TestTitleFromMHTML(t *testing.T) {
	t.Parallel()

	t.Run("prefers decoded subject header", func(t *testing.T) {
		t.Parallel()

		got, err := goquery.TitleFromMHTML(strings.NewReader(crlf(blinkArchive)))

		require.NoError(t, err)
		assert.Equal(t, "周报", got)
	})

	t.Run("falls back to html part title", func(t *testing.T) {
		t.Parallel()

		archive := strings.Replace(blinkArchive, "Subject: =?utf-8?Q?=E5=91=A8=E6=8A=A5?=\n", "", 1)

		got, err := goquery.TitleFromMHTML(strings.NewReader(crlf(archive)))

		require.NoError(t, err)
		assert.Equal(t, "Weekly = Report", got)
	})

	t.Run("reads base64 single part archive", func(t *testing.T) {
		t.Parallel()

		// base64 of "<title>Single</title>"
		archive := `MIME-Version: 1.0
Content-Type: text/html; charset=utf-8
Content-Transfer-Encoding: base64

PHRpdGxlPlNpbmdsZTwv
dGl0bGU+
`

		got, err := goquery.TitleFromMHTML(strings.NewReader(crlf(archive)))

		require.NoError(t, err)
		assert.Equal(t, "Single", got)
	})

	t.Run("returns empty when archive has no html part", func(t *testing.T) {
		t.Parallel()

		archive := `MIME-Version: 1.0
Content-Type: multipart/related; boundary="b"

--b
Content-Type: image/png

PNG
--b--
`

		got, err := goquery.TitleFromMHTML(strings.NewReader(crlf(archive)))

		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("returns EINVALID for garbage", func(t *testing.T) {
		t.Parallel()

		_, err := goquery.TitleFromMHTML(strings.NewReader("not a mime message"))

		assert.Equal(t, snapdex.EINVALID, snapdex.ErrorCode(err))
	})
}

func TestTitleExtractor_ExtractTitle(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
		return path
	}
	htmlPath := write("page.HTML", "<title>From HTML</title>")
	htmPath := write("old.htm", "<title>From HTM</title>")
	mhtPath := write("saved.mht", crlf(blinkArchive))
	pdfPath := write("doc.pdf", "%PDF-1.7")

	e := goquery.NewTitleExtractor()
	ctx := context.Background()

	got, err := e.ExtractTitle(ctx, htmlPath)
	require.NoError(t, err)
	assert.Equal(t, "From HTML", got)

	got, err = e.ExtractTitle(ctx, htmPath)
	require.NoError(t, err)
	assert.Equal(t, "From HTM", got)

	got, err = e.ExtractTitle(ctx, mhtPath)
	require.NoError(t, err)
	assert.Equal(t, "周报", got)

	got, err = e.ExtractTitle(ctx, pdfPath)
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = e.ExtractTitle(ctx, filepath.Join(dir, "missing.html"))
	assert.Error(t, err)
}
