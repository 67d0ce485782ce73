package service

import (
	"context"
	"time"

	"bookshelf-api/internal/domains/author"
	"bookshelf-api/internal/shared"
	"bookshelf-api/internal/shared/cachekeys"
	"bookshelf-api/pkg/cache"
)

// authorService owns the author cache policy: which keys cover which
// reads, and which writes evict them. The repository underneath is
// cache-free, so disabling the cache (cache.Noop) changes latency only.
type authorService struct {
	repo  author.Repository
	cache cache.Cache
	ttl   time.Duration
}

func NewAuthorService(repo author.Repository, c cache.Cache, ttl time.Duration) author.Service {
	return &authorService{
		repo:  repo,
		cache: c,
		ttl:   ttl,
	}
}

func (s *authorService) List(ctx context.Context) ([]author.Author, error) {
	return cache.Remember(ctx, s.cache, cachekeys.AuthorList, s.ttl, func(ctx context.Context) ([]author.Author, error) {
		return s.repo.GetAll(ctx)
	})
}

func (s *authorService) GetByID(ctx context.Context, id int64) (*author.Author, error) {
	// A store miss propagates ErrAuthorNotFound out of Remember without
	// populating the key, so not-found is never cached.
	return cache.Remember(ctx, s.cache, cachekeys.Author(id), s.ttl, func(ctx context.Context) (*author.Author, error) {
		return s.repo.GetByID(ctx, id)
	})
}

func (s *authorService) Create(ctx context.Context, req *author.CreateRequest) (*author.Author, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	birthDate, err := time.Parse(shared.DateLayout, req.BirthDate)
	if err != nil {
		// Validate() already checked the format; this only fires on rule drift.
		return nil, err
	}

	created, err := s.repo.Create(ctx, &author.Author{
		Name:      req.Name,
		Bio:       req.Bio,
		BirthDate: birthDate,
	})
	if err != nil {
		return nil, err
	}

	// The new author must be visible to the next List immediately.
	if err := s.cache.Delete(ctx, cachekeys.AuthorList); err != nil {
		return nil, err
	}

	return created, nil
}

func (s *authorService) Update(ctx context.Context, id int64, req *author.UpdateRequest) (*author.Author, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// Read the durable row, not the cache: partial updates apply on top of
	// current store state.
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updated := *current
	if req.Name != nil {
		updated.Name = *req.Name
	}
	if req.Bio != nil {
		updated.Bio = *req.Bio
	}
	if req.BirthDate != nil {
		birthDate, err := time.Parse(shared.DateLayout, *req.BirthDate)
		if err != nil {
			return nil, err
		}
		updated.BirthDate = birthDate
	}

	result, err := s.repo.Update(ctx, &updated)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Delete(ctx, cachekeys.AuthorList, cachekeys.Author(id)); err != nil {
		return nil, err
	}

	return result, nil
}

func (s *authorService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	// The author's book listing goes too: the author no longer exists, so
	// a later GET /authors/:id/books must 404 instead of serving the
	// cached list.
	return s.cache.Delete(ctx,
		cachekeys.AuthorList,
		cachekeys.Author(id),
		cachekeys.AuthorBooks(id),
	)
}
