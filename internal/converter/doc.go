// Package converter turns one Markdown file into one self-contained HTML page.
//
// A conversion loads and decodes the source, escapes it into the page
// template, and replaces the destination atomically. Nothing is written when
// the source cannot be read, and a destination that already holds the exact
// bytes is left untouched, so repeated runs are idempotent.
package converter
