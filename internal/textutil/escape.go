package textutil

import "strings"

// htmlEscaper replaces the characters that are reserved in HTML text and
// attribute values with entity references.
var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

var htmlUnescaper = strings.NewReplacer(
	"&amp;", "&",
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
	"&#39;", "'",
)

// Entities lists the entity references produced by Escape, in the order the
// page loader must undo them: "&amp;" last.
var Entities = []string{"&lt;", "&gt;", "&quot;", "&#39;", "&amp;"}

// Escape replaces &, <, >, " and ' with entity references in a single pass.
func Escape(s string) string {
	return htmlEscaper.Replace(s)
}

// Unescape reverses Escape. Only the five entities Escape emits are decoded;
// any other reference is left untouched.
func Unescape(s string) string {
	return htmlUnescaper.Replace(s)
}
