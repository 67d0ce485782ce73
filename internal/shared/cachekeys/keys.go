// Package cachekeys is the single place cache key names are built.
// Keys are structurally distinct per entity and per operation so that list,
// single-record and relationship entries can never collide.
package cachekeys

import "fmt"

const (
	// AuthorList caches the full author listing.
	AuthorList = "authors:list"
	// BookList caches the full book listing (authors denormalized in).
	BookList = "books:list"
)

// Author returns the key for a single author record.
func Author(id int64) string {
	return fmt.Sprintf("author:%d", id)
}

// AuthorBooks returns the key for an author's book listing.
// Short-lived compared to Author: book membership changes more often
// than author identity.
func AuthorBooks(id int64) string {
	return fmt.Sprintf("author:%d:books", id)
}

// Book returns the key for a single book record.
func Book(id int64) string {
	return fmt.Sprintf("book:%d", id)
}
