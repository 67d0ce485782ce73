package service

import (
	"context"
	"errors"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"bookshelf-api/internal/domains/author"
	"bookshelf-api/internal/domains/book"
	"bookshelf-api/internal/shared"
	"bookshelf-api/internal/shared/cachekeys"
	"bookshelf-api/pkg/cache"
)

// bookService owns the book cache policy, including the per-author book
// listing: every book write evicts the affected author's listing key, not
// just the global book keys, so GET /authors/:id/books never serves a
// list missing a book that was just written.
type bookService struct {
	repo    book.Repository
	authors author.Repository
	cache   cache.Cache
	ttl     time.Duration
}

func NewBookService(repo book.Repository, authors author.Repository, c cache.Cache, ttl time.Duration) book.Service {
	return &bookService{
		repo:    repo,
		authors: authors,
		cache:   c,
		ttl:     ttl,
	}
}

func (s *bookService) List(ctx context.Context) ([]book.Book, error) {
	return cache.Remember(ctx, s.cache, cachekeys.BookList, s.ttl, func(ctx context.Context) ([]book.Book, error) {
		return s.repo.GetAll(ctx)
	})
}

func (s *bookService) GetByID(ctx context.Context, id int64) (*book.Book, error) {
	return cache.Remember(ctx, s.cache, cachekeys.Book(id), s.ttl, func(ctx context.Context) (*book.Book, error) {
		return s.repo.GetByID(ctx, id)
	})
}

func (s *bookService) Create(ctx context.Context, req *book.CreateRequest) (*book.Book, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := s.checkAuthorExists(ctx, req.AuthorID); err != nil {
		return nil, err
	}

	publishDate, err := time.Parse(shared.DateLayout, req.PublishDate)
	if err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, &book.Book{
		Title:       req.Title,
		Description: req.Description,
		PublishDate: publishDate,
		AuthorID:    req.AuthorID,
	})
	if err != nil {
		// The existence check above can race an author delete; the store's
		// constraint (when present) reports it the same way.
		if errors.Is(err, book.ErrAuthorNotExists) {
			return nil, authorIDValidationError()
		}
		return nil, err
	}

	if err := s.cache.Delete(ctx, cachekeys.BookList, cachekeys.AuthorBooks(created.AuthorID)); err != nil {
		return nil, err
	}

	return created, nil
}

func (s *bookService) Update(ctx context.Context, id int64, req *book.UpdateRequest) (*book.Book, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updated := *current
	updated.Author = nil
	if req.Title != nil {
		updated.Title = *req.Title
	}
	if req.Description != nil {
		updated.Description = *req.Description
	}
	if req.PublishDate != nil {
		publishDate, err := time.Parse(shared.DateLayout, *req.PublishDate)
		if err != nil {
			return nil, err
		}
		updated.PublishDate = publishDate
	}
	if req.AuthorID != nil {
		if err := s.checkAuthorExists(ctx, *req.AuthorID); err != nil {
			return nil, err
		}
		updated.AuthorID = *req.AuthorID
	}

	result, err := s.repo.Update(ctx, &updated)
	if err != nil {
		if errors.Is(err, book.ErrAuthorNotExists) {
			return nil, authorIDValidationError()
		}
		return nil, err
	}

	// Both the previous and the new owner see their listing change when a
	// book moves between authors.
	keys := []string{cachekeys.Book(id), cachekeys.BookList, cachekeys.AuthorBooks(current.AuthorID)}
	if result.AuthorID != current.AuthorID {
		keys = append(keys, cachekeys.AuthorBooks(result.AuthorID))
	}
	if err := s.cache.Delete(ctx, keys...); err != nil {
		return nil, err
	}

	return result, nil
}

func (s *bookService) Delete(ctx context.Context, id int64) error {
	// Fetch first: the owner's listing key needs the author id, which is
	// gone once the row is deleted.
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	return s.cache.Delete(ctx,
		cachekeys.Book(id),
		cachekeys.BookList,
		cachekeys.AuthorBooks(current.AuthorID),
	)
}

func (s *bookService) ListByAuthor(ctx context.Context, authorID int64) ([]book.Book, error) {
	exists, err := s.authors.ExistsByID(ctx, authorID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, author.ErrAuthorNotFound
	}

	return cache.Remember(ctx, s.cache, cachekeys.AuthorBooks(authorID), s.ttl, func(ctx context.Context) ([]book.Book, error) {
		return s.repo.GetByAuthorID(ctx, authorID)
	})
}

func (s *bookService) checkAuthorExists(ctx context.Context, authorID int64) error {
	exists, err := s.authors.ExistsByID(ctx, authorID)
	if err != nil {
		return err
	}
	if !exists {
		return authorIDValidationError()
	}
	return nil
}

func authorIDValidationError() validation.Errors {
	return validation.Errors{"author_id": book.ErrAuthorNotExists}
}
