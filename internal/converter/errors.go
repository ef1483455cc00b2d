package converter

import "errors"

var (
	// ErrSourceAccess reports a source that is missing, unreadable, or not text.
	ErrSourceAccess = errors.New("source file access")
	// ErrDestinationAccess reports a destination that cannot be written.
	ErrDestinationAccess = errors.New("destination file access")
)
