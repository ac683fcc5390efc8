package snapdex

import "context"

// DefaultExtensions lists the file extensions collected by default.
// Matching is case-insensitive.
var DefaultExtensions = []string{".html", ".mhtml", ".mht", ".pdf"}

// Walker enumerates archived documents under a root directory.
type Walker interface {
	// Walk returns absolute paths of matching files in traversal order.
	// Returns ENOTFOUND if root does not exist.
	Walk(ctx context.Context, root string) ([]string, error)
}
