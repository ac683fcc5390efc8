// Package goquery reads titles embedded in archived HTML and MHTML documents.
package goquery

import (
	"bufio"
	"context"
	"encoding/base64"
	"io"
	"mime"
	"mime/multipart"
	"mime/quotedprintable"
	"net/mail"
	"os"
	"path/filepath"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/snapdex"
	"golang.org/x/net/html/charset"
)

// Ensure TitleExtractor implements snapdex.TitleExtractor at compile time.
var _ snapdex.TitleExtractor = (*TitleExtractor)(nil)

// titleSelectors are tried in order; the first non-empty match wins.
var titleSelectors = []string{
	"head > title",
	`meta[property="og:title"]`,
	`meta[name="twitter:title"]`,
	"h1",
}

// TitleExtractor reads document titles from HTML and MHTML files.
// Other file types yield an empty title.
type TitleExtractor struct{}

// NewTitleExtractor creates a new TitleExtractor.
func NewTitleExtractor() *TitleExtractor {
	return &TitleExtractor{}
}

// ExtractTitle opens the file at path and returns its embedded title.
func (e *TitleExtractor) ExtractTitle(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".html" && ext != ".htm" && ext != ".mhtml" && ext != ".mht" {
		return "", nil
	}

	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if ext == ".mhtml" || ext == ".mht" {
		return TitleFromMHTML(f)
	}
	return TitleFromHTML(f, "text/html")
}

// TitleFromHTML parses an HTML document and returns its title with
// whitespace collapsed. The byte stream is decoded to UTF-8 using the
// charset from contentType or from the document's <meta> declaration.
func TitleFromHTML(r io.Reader, contentType string) (string, error) {
	utf8Reader, err := charset.NewReader(r, contentType)
	if err != nil {
		return "", snapdex.Errorf(snapdex.EINVALID, "failed to detect charset: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(utf8Reader)
	if err != nil {
		return "", snapdex.Errorf(snapdex.EINVALID, "failed to parse HTML: %v", err)
	}

	for _, selector := range titleSelectors {
		sel := doc.Find(selector).First()
		if sel.Length() == 0 {
			continue
		}
		text := sel.Text()
		if goquery.NodeName(sel) == "meta" {
			text = sel.AttrOr("content", "")
		}
		if title := collapseSpace(text); title != "" {
			return title, nil
		}
	}
	return "", nil
}

// TitleFromMHTML returns the title of an MHTML archive. The Subject header
// written by browsers is preferred; otherwise the first text/html part is
// parsed.
func TitleFromMHTML(r io.Reader) (string, error) {
	msg, err := mail.ReadMessage(bufio.NewReader(r))
	if err != nil {
		return "", snapdex.Errorf(snapdex.EINVALID, "failed to read MHTML header: %v", err)
	}

	dec := &mime.WordDecoder{CharsetReader: charset.NewReaderLabel}
	if subject, err := dec.DecodeHeader(msg.Header.Get("Subject")); err == nil {
		if title := collapseSpace(subject); title != "" {
			return title, nil
		}
	}

	contentType := msg.Header.Get("Content-Type")
	mediaType, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return "", snapdex.Errorf(snapdex.EINVALID, "invalid MHTML content type: %v", err)
	}

	if !strings.HasPrefix(mediaType, "multipart/") {
		if mediaType != "text/html" {
			return "", nil
		}
		body := decodeTransfer(msg.Body, msg.Header.Get("Content-Transfer-Encoding"))
		return TitleFromHTML(body, contentType)
	}

	mr := multipart.NewReader(msg.Body, params["boundary"])
	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			return "", nil
		}
		if err != nil {
			return "", snapdex.Errorf(snapdex.EINVALID, "failed to read MHTML part: %v", err)
		}

		partType := part.Header.Get("Content-Type")
		if mt, _, err := mime.ParseMediaType(partType); err != nil || mt != "text/html" {
			continue
		}

		// NextPart already decodes quoted-printable bodies.
		body := decodeTransfer(part, part.Header.Get("Content-Transfer-Encoding"))
		return TitleFromHTML(body, partType)
	}
}

func decodeTransfer(r io.Reader, encoding string) io.Reader {
	switch strings.ToLower(strings.TrimSpace(encoding)) {
	case "base64":
		return base64.NewDecoder(base64.StdEncoding, r)
	case "quoted-printable":
		return quotedprintable.NewReader(r)
	default:
		return r
	}
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
