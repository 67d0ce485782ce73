package book

import "context"

// Service is the book resource service. Same contract style as the
// author service: validation failures come back as validation.Errors,
// missing records as the domain's not-found sentinel.
type Service interface {
	List(ctx context.Context) ([]Book, error)
	GetByID(ctx context.Context, id int64) (*Book, error)
	Create(ctx context.Context, req *CreateRequest) (*Book, error)
	Update(ctx context.Context, id int64, req *UpdateRequest) (*Book, error)
	Delete(ctx context.Context, id int64) error

	// ListByAuthor serves GET /authors/:id/books. Returns
	// author.ErrAuthorNotFound when the author id does not exist.
	ListByAuthor(ctx context.Context, authorID int64) ([]Book, error)
}
