package author

import "context"

// Service is the author resource service: it mediates between callers and
// the store/cache pair, owning the cache-key and invalidation policy.
//
// Validation failures are returned as ozzo validation.Errors so the
// transport layer can render the field -> message map verbatim.
type Service interface {
	List(ctx context.Context) ([]Author, error)
	GetByID(ctx context.Context, id int64) (*Author, error)
	Create(ctx context.Context, req *CreateRequest) (*Author, error)
	Update(ctx context.Context, id int64, req *UpdateRequest) (*Author, error)
	Delete(ctx context.Context, id int64) error
}
