// Package snapdex builds a JSON manifest for a directory of archived web
// documents (HTML, MHTML and PDF snapshots). Titles and dates are inferred
// from filenames, and the manifest feeds a static front-end index page.
//
// This package contains domain types, interfaces and the pure filename
// parsing rules. Implementations live in subdirectories named after their
// primary dependency (e.g., fs/, goquery/, etree/).
package snapdex
