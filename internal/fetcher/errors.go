package fetcher

import (
	"errors"
	"fmt"
)

// ErrNoRepository is returned by every repository-scoped call made before
// SetRepository was given a non-empty handle.
var ErrNoRepository = errors.New("no repository set")

// ErrBadLink is the sentinel wrapped by every *LinkError.
var ErrBadLink = errors.New("bad pagination link")

// LinkError reports a pagination Link header entry that cannot be used.
// Callers depend on every entry carrying a page number, so a LinkError is
// never skipped over.
type LinkError struct {
	Entry  string
	Reason string
}

func (e *LinkError) Error() string {
	return fmt.Sprintf("%s %q: %s", ErrBadLink, e.Entry, e.Reason)
}

func (e *LinkError) Unwrap() error {
	return ErrBadLink
}
