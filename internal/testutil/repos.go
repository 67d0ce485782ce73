// Package testutil provides in-memory implementations of the repository
// interfaces so service and handler tests run without Postgres.
package testutil

import (
	"context"
	"sort"
	"sync"
	"time"

	"bookshelf-api/internal/domains/author"
	"bookshelf-api/internal/domains/book"
)

// AuthorRepo is an in-memory author.Repository.
type AuthorRepo struct {
	mu      sync.Mutex
	nextID  int64
	authors map[int64]author.Author
}

func NewAuthorRepo() *AuthorRepo {
	return &AuthorRepo{nextID: 1, authors: make(map[int64]author.Author)}
}

// Seed inserts a record with a caller-chosen id, bypassing id assignment.
func (r *AuthorRepo) Seed(a author.Author) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.authors[a.ID] = a
	if a.ID >= r.nextID {
		r.nextID = a.ID + 1
	}
}

func (r *AuthorRepo) Create(ctx context.Context, a *author.Author) (*author.Author, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	created := *a
	created.ID = r.nextID
	created.CreatedAt = now
	created.UpdatedAt = now
	r.nextID++

	r.authors[created.ID] = created
	return &created, nil
}

func (r *AuthorRepo) GetByID(ctx context.Context, id int64) (*author.Author, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.authors[id]
	if !ok {
		return nil, author.ErrAuthorNotFound
	}
	return &a, nil
}

func (r *AuthorRepo) GetAll(ctx context.Context) ([]author.Author, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	authors := make([]author.Author, 0, len(r.authors))
	for _, a := range r.authors {
		authors = append(authors, a)
	}
	sort.Slice(authors, func(i, j int) bool { return authors[i].ID < authors[j].ID })
	return authors, nil
}

func (r *AuthorRepo) Update(ctx context.Context, a *author.Author) (*author.Author, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.authors[a.ID]
	if !ok {
		return nil, author.ErrAuthorNotFound
	}

	updated := *a
	updated.CreatedAt = current.CreatedAt
	updated.UpdatedAt = time.Now().UTC()
	r.authors[a.ID] = updated
	return &updated, nil
}

func (r *AuthorRepo) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.authors[id]; !ok {
		return author.ErrAuthorNotFound
	}
	delete(r.authors, id)
	return nil
}

func (r *AuthorRepo) ExistsByID(ctx context.Context, id int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.authors[id]
	return ok, nil
}

// BookRepo is an in-memory book.Repository. It joins the author
// relationship through the AuthorRepo it is built with, mirroring the
// Postgres LEFT JOIN.
type BookRepo struct {
	mu      sync.Mutex
	nextID  int64
	books   map[int64]book.Book
	authors *AuthorRepo
}

func NewBookRepo(authors *AuthorRepo) *BookRepo {
	return &BookRepo{nextID: 1, books: make(map[int64]book.Book), authors: authors}
}

func (r *BookRepo) Create(ctx context.Context, b *book.Book) (*book.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	created := *b
	created.ID = r.nextID
	created.CreatedAt = now
	created.UpdatedAt = now
	created.Author = nil
	r.nextID++

	r.books[created.ID] = created
	return &created, nil
}

func (r *BookRepo) GetByID(ctx context.Context, id int64) (*book.Book, error) {
	r.mu.Lock()
	b, ok := r.books[id]
	r.mu.Unlock()

	if !ok {
		return nil, book.ErrBookNotFound
	}
	r.loadAuthor(ctx, &b)
	return &b, nil
}

func (r *BookRepo) GetAll(ctx context.Context) ([]book.Book, error) {
	r.mu.Lock()
	books := make([]book.Book, 0, len(r.books))
	for _, b := range r.books {
		books = append(books, b)
	}
	r.mu.Unlock()

	sort.Slice(books, func(i, j int) bool { return books[i].ID < books[j].ID })
	for i := range books {
		r.loadAuthor(ctx, &books[i])
	}
	return books, nil
}

func (r *BookRepo) GetByAuthorID(ctx context.Context, authorID int64) ([]book.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var books []book.Book
	for _, b := range r.books {
		if b.AuthorID == authorID {
			books = append(books, b)
		}
	}
	sort.Slice(books, func(i, j int) bool { return books[i].ID < books[j].ID })
	return books, nil
}

func (r *BookRepo) Update(ctx context.Context, b *book.Book) (*book.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.books[b.ID]
	if !ok {
		return nil, book.ErrBookNotFound
	}

	updated := *b
	updated.CreatedAt = current.CreatedAt
	updated.UpdatedAt = time.Now().UTC()
	updated.Author = nil
	r.books[b.ID] = updated
	return &updated, nil
}

func (r *BookRepo) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.books[id]; !ok {
		return book.ErrBookNotFound
	}
	delete(r.books, id)
	return nil
}

func (r *BookRepo) loadAuthor(ctx context.Context, b *book.Book) {
	if a, err := r.authors.GetByID(ctx, b.AuthorID); err == nil {
		b.Author = a
	}
}
