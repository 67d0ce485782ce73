package author

import "context"

// Repository is pure store access. Caching is the service's concern, so a
// repository call always reflects the durable state.
type Repository interface {
	// Create inserts a new author; the store assigns id and timestamps.
	Create(ctx context.Context, author *Author) (*Author, error)

	// GetByID returns ErrAuthorNotFound if the id does not exist.
	GetByID(ctx context.Context, id int64) (*Author, error)

	// GetAll returns every author in store-default order.
	GetAll(ctx context.Context) ([]Author, error)

	// Update writes the full row for author.ID.
	// Returns ErrAuthorNotFound if the id does not exist.
	Update(ctx context.Context, author *Author) (*Author, error)

	// Delete returns ErrAuthorNotFound if the id does not exist.
	Delete(ctx context.Context, id int64) error

	// ExistsByID is the lightweight existence probe used when validating
	// book.author_id references.
	ExistsByID(ctx context.Context, id int64) (bool, error)
}
