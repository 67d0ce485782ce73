package book

import "context"

// Repository is pure store access; the service layers caching on top.
// GetAll and GetByID load the author relationship.
type Repository interface {
	Create(ctx context.Context, book *Book) (*Book, error)

	// GetByID returns ErrBookNotFound if the id does not exist.
	GetByID(ctx context.Context, id int64) (*Book, error)

	// GetAll returns every book with its author joined in.
	GetAll(ctx context.Context) ([]Book, error)

	// GetByAuthorID returns the books owned by one author, without the
	// relationship loaded (the caller already knows the author).
	GetByAuthorID(ctx context.Context, authorID int64) ([]Book, error)

	// Update writes the full row for book.ID.
	Update(ctx context.Context, book *Book) (*Book, error)

	// Delete returns ErrBookNotFound if the id does not exist.
	Delete(ctx context.Context, id int64) error
}
