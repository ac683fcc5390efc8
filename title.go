package snapdex

import (
	"context"
	"regexp"
	"strings"
	"unicode"
)

var (
	// titleExtPattern matches the archive extensions stripped from titles.
	// It also covers .htm, which the default walker does not collect.
	titleExtPattern = regexp.MustCompile(`(?i)\.(html?|pdf|mhtml?)$`)

	// titleDatePattern matches the same leading date as datePattern plus the
	// separator run after it. Whitespace includes the Unicode space
	// separators so full-width spaces in CJK filenames are consumed too.
	titleDatePattern = regexp.MustCompile(`^20\d{2}(?:[-_]?\d{2})?(?:[-_]?\d{2})?[\s\v\x{00a0}\x{1680}\x{2000}-\x{200a}\x{2028}\x{2029}\x{202f}\x{205f}\x{3000}\x{feff}_\-]*`)

	separatorRun = regexp.MustCompile(`[_\-]+`)
)

// FilenameToTitle derives a display title from a filename: the extension and
// leading date are removed and runs of "_" or "-" become single spaces.
// The result may be empty.
func FilenameToTitle(name string) string {
	base := titleExtPattern.ReplaceAllString(name, "")
	base = titleDatePattern.ReplaceAllString(base, "")
	return strings.TrimFunc(separatorRun.ReplaceAllString(base, " "), isTrimSpace)
}

// isTrimSpace reports whether r is trimmed from titles: Unicode white space
// and line terminators plus the byte order mark, but not NEL (U+0085).
func isTrimSpace(r rune) bool {
	if r == '\ufeff' {
		return true
	}
	return r != '\u0085' && unicode.IsSpace(r)
}

// TitleExtractor reads the title embedded in a document, such as an HTML
// <title> element. It returns an empty string when the document has none.
type TitleExtractor interface {
	ExtractTitle(ctx context.Context, path string) (string, error)
}
