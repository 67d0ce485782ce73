package author

import "errors"

// ErrAuthorNotFound is returned for reads, updates and deletes that
// reference an id the store does not have. It maps to HTTP 404 and is
// never cached.
var ErrAuthorNotFound = errors.New("author not found")
