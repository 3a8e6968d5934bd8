package catalog

import (
	"errors"
)

// ErrAuthorNotFound is returned when no author matches a name lookup.
var ErrAuthorNotFound = errors.New("author not found")

// ErrBookNotFound is returned when no book matches a title lookup.
var ErrBookNotFound = errors.New("book not found")

// ErrDuplicate is surfaced by the store when an insert violates a
// natural-key uniqueness constraint. Callers treat it as "already
// exists" and re-run the lookup once.
var ErrDuplicate = errors.New("record already exists")

// ErrInvalidYear rejects negative years before any store access.
var ErrInvalidYear = errors.New("year must not be negative")

// ErrUnsupportedLanguage rejects language codes outside the accepted set.
var ErrUnsupportedLanguage = errors.New("unsupported language code")

// ErrSearchUnavailable wraps failures of the external search fetch.
var ErrSearchUnavailable = errors.New("search provider unavailable")
