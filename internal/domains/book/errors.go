package book

import "errors"

var (
	// ErrBookNotFound maps to HTTP 404 and is never cached.
	ErrBookNotFound = errors.New("book not found")

	// ErrAuthorNotExists flags an author_id that references no author.
	// The service surfaces it as a validation failure on the author_id
	// field; the repository returns it when the store's foreign key (if
	// configured) rejects a write that raced an author delete.
	ErrAuthorNotExists = errors.New("author does not exist")
)
