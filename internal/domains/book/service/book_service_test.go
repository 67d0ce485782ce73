package service

import (
	"context"
	"testing"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookshelf-api/internal/domains/author"
	"bookshelf-api/internal/domains/book"
	"bookshelf-api/internal/shared"
	"bookshelf-api/internal/testutil"
	"bookshelf-api/pkg/cache"
)

type fixture struct {
	svc     book.Service
	authors *testutil.AuthorRepo
	books   *testutil.BookRepo
	cache   *cache.Memory
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	authors := testutil.NewAuthorRepo()
	books := testutil.NewBookRepo(authors)
	mem := cache.NewMemory()
	return &fixture{
		svc:     NewBookService(books, authors, mem, time.Hour),
		authors: authors,
		books:   books,
		cache:   mem,
	}
}

func (f *fixture) seedAuthor(t *testing.T, name string) *author.Author {
	t.Helper()
	birth, err := time.Parse(shared.DateLayout, "1980-01-01")
	require.NoError(t, err)
	created, err := f.authors.Create(context.Background(), &author.Author{Name: name, Bio: "Bio", BirthDate: birth})
	require.NoError(t, err)
	return created
}

func (f *fixture) createBook(t *testing.T, title string, authorID int64) *book.Book {
	t.Helper()
	created, err := f.svc.Create(context.Background(), &book.CreateRequest{
		Title:       title,
		Description: "A description",
		PublishDate: "2020-05-01",
		AuthorID:    authorID,
	})
	require.NoError(t, err)
	return created
}

func strPtr(s string) *string { return &s }

func i64Ptr(v int64) *int64 { return &v }

func requireAuthorIDError(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	vErrs, ok := err.(validation.Errors)
	require.True(t, ok, "expected validation.Errors, got %T", err)
	assert.ErrorIs(t, vErrs["author_id"], book.ErrAuthorNotExists)
}

func TestCreate_UnknownAuthorRejected(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Create(context.Background(), &book.CreateRequest{
		Title:       "Orphan",
		Description: "No author",
		PublishDate: "2020-05-01",
		AuthorID:    123,
	})
	requireAuthorIDError(t, err)

	// Nothing was inserted.
	all, err := f.books.GetAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestCreate_Validation(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Create(context.Background(), &book.CreateRequest{})
	require.Error(t, err)

	vErrs, ok := err.(validation.Errors)
	require.True(t, ok, "expected validation.Errors, got %T", err)
	assert.Contains(t, vErrs, "title")
	assert.Contains(t, vErrs, "description")
	assert.Contains(t, vErrs, "publish_date")
	assert.Contains(t, vErrs, "author_id")
}

func TestCreate_InvalidatesAuthorBookListing(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.seedAuthor(t, "John")

	// Warm the per-author listing while it is empty.
	listed, err := f.svc.ListByAuthor(ctx, a.ID)
	require.NoError(t, err)
	assert.Empty(t, listed)

	created := f.createBook(t, "First", a.ID)

	listed, err = f.svc.ListByAuthor(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, created.ID, listed[0].ID)
}

func TestCreate_InvalidatesBookList(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.seedAuthor(t, "John")

	_, err := f.svc.List(ctx)
	require.NoError(t, err)

	created := f.createBook(t, "First", a.ID)

	books, err := f.svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, created.ID, books[0].ID)
}

func TestGetByID_NotFoundIsNeverCached(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.GetByID(ctx, 5)
	assert.ErrorIs(t, err, book.ErrBookNotFound)
	_, err = f.svc.GetByID(ctx, 5)
	assert.ErrorIs(t, err, book.ErrBookNotFound)

	a := f.seedAuthor(t, "John")
	created := f.createBook(t, "Now exists", a.ID)

	got, err := f.svc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Now exists", got.Title)
}

func TestListByAuthor_UnknownAuthor(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.ListByAuthor(context.Background(), 404)
	assert.ErrorIs(t, err, author.ErrAuthorNotFound)
}

func TestUpdate_MoveBetweenAuthorsInvalidatesBothListings(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	first := f.seedAuthor(t, "John")
	second := f.seedAuthor(t, "Jane")
	b := f.createBook(t, "Wanderer", first.ID)

	// Warm both listings.
	listed, err := f.svc.ListByAuthor(ctx, first.ID)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	listed, err = f.svc.ListByAuthor(ctx, second.ID)
	require.NoError(t, err)
	assert.Empty(t, listed)

	updated, err := f.svc.Update(ctx, b.ID, &book.UpdateRequest{AuthorID: i64Ptr(second.ID)})
	require.NoError(t, err)
	assert.Equal(t, second.ID, updated.AuthorID)

	listed, err = f.svc.ListByAuthor(ctx, first.ID)
	require.NoError(t, err)
	assert.Empty(t, listed)

	listed, err = f.svc.ListByAuthor(ctx, second.ID)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, b.ID, listed[0].ID)
}

func TestUpdate_PartialOnlyChangesSuppliedFields(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.seedAuthor(t, "John")
	b := f.createBook(t, "Old title", a.ID)

	updated, err := f.svc.Update(ctx, b.ID, &book.UpdateRequest{Title: strPtr("New title")})
	require.NoError(t, err)

	assert.Equal(t, "New title", updated.Title)
	assert.Equal(t, "A description", updated.Description)
	assert.Equal(t, a.ID, updated.AuthorID)
}

func TestUpdate_UnknownAuthorRejected(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.seedAuthor(t, "John")
	b := f.createBook(t, "Stays put", a.ID)

	_, err := f.svc.Update(ctx, b.ID, &book.UpdateRequest{AuthorID: i64Ptr(999)})
	requireAuthorIDError(t, err)

	got, err := f.books.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, a.ID, got.AuthorID)
}

func TestUpdate_NotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Update(context.Background(), 8, &book.UpdateRequest{Title: strPtr("x")})
	assert.ErrorIs(t, err, book.ErrBookNotFound)
}

func TestDelete_InvalidatesCaches(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.seedAuthor(t, "John")
	b := f.createBook(t, "Ephemeral", a.ID)

	// Warm everything the delete must evict.
	_, err := f.svc.GetByID(ctx, b.ID)
	require.NoError(t, err)
	_, err = f.svc.List(ctx)
	require.NoError(t, err)
	_, err = f.svc.ListByAuthor(ctx, a.ID)
	require.NoError(t, err)

	require.NoError(t, f.svc.Delete(ctx, b.ID))

	_, err = f.svc.GetByID(ctx, b.ID)
	assert.ErrorIs(t, err, book.ErrBookNotFound)

	books, err := f.svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, books)

	listed, err := f.svc.ListByAuthor(ctx, a.ID)
	require.NoError(t, err)
	assert.Empty(t, listed)
}

func TestDelete_NotFound(t *testing.T) {
	f := newFixture(t)
	assert.ErrorIs(t, f.svc.Delete(context.Background(), 3), book.ErrBookNotFound)
}

func TestList_EmbedsAuthor(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.seedAuthor(t, "John")
	f.createBook(t, "With author", a.ID)

	books, err := f.svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, books, 1)
	require.NotNil(t, books[0].Author)
	assert.Equal(t, "John", books[0].Author.Name)
}

// TestCacheTransparency runs one operation sequence against a cached
// service and an uncached one and requires identical results throughout.
func TestCacheTransparency(t *testing.T) {
	ctx := context.Background()

	run := func(c cache.Cache) []book.Book {
		authors := testutil.NewAuthorRepo()
		books := testutil.NewBookRepo(authors)
		svc := NewBookService(books, authors, c, time.Hour)

		birth, err := time.Parse(shared.DateLayout, "1980-01-01")
		require.NoError(t, err)
		a, err := authors.Create(ctx, &author.Author{Name: "John", Bio: "Bio", BirthDate: birth})
		require.NoError(t, err)

		created, err := svc.Create(ctx, &book.CreateRequest{
			Title:       "One",
			Description: "First",
			PublishDate: "2020-05-01",
			AuthorID:    a.ID,
		})
		require.NoError(t, err)
		_, err = svc.ListByAuthor(ctx, a.ID)
		require.NoError(t, err)
		_, err = svc.Update(ctx, created.ID, &book.UpdateRequest{Description: strPtr("Revised")})
		require.NoError(t, err)

		listed, err := svc.ListByAuthor(ctx, a.ID)
		require.NoError(t, err)
		return listed
	}

	cached := run(cache.NewMemory())
	uncached := run(cache.NewNoop())

	require.Len(t, cached, len(uncached))
	for i := range cached {
		assert.Equal(t, uncached[i].ID, cached[i].ID)
		assert.Equal(t, uncached[i].Title, cached[i].Title)
		assert.Equal(t, uncached[i].Description, cached[i].Description)
		assert.Equal(t, uncached[i].AuthorID, cached[i].AuthorID)
	}
}
