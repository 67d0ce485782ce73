package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authorHandler "bookshelf-api/internal/domains/author/handler"
	authorService "bookshelf-api/internal/domains/author/service"
	bookHandler "bookshelf-api/internal/domains/book/handler"
	bookService "bookshelf-api/internal/domains/book/service"
	"bookshelf-api/internal/testutil"
	"bookshelf-api/pkg/cache"
	"bookshelf-api/pkg/container"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()

	authors := testutil.NewAuthorRepo()
	books := testutil.NewBookRepo(authors)
	mem := cache.NewMemory()

	authorSvc := authorService.NewAuthorService(authors, mem, time.Hour)
	bookSvc := bookService.NewBookService(books, authors, mem, time.Minute)

	c := &container.Container{
		Cache:         mem,
		AuthorRepo:    authors,
		BookRepo:      books,
		AuthorService: authorSvc,
		BookService:   bookSvc,
		AuthorHandler: authorHandler.NewAuthorHandler(authorSvc, bookSvc),
		BookHandler:   bookHandler.NewBookHandler(bookSvc),
	}
	return SetupRouter(c)
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, dest any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), dest), "body: %s", w.Body.String())
}

func TestAuthorLifecycle(t *testing.T) {
	router := newTestRouter(t)

	// Create.
	w := doJSON(t, router, http.MethodPost, "/authors", gin.H{
		"name":       "John Doe",
		"bio":        "A famous author",
		"birth_date": "1980-01-01",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	}
	decode(t, w, &created)
	require.NotZero(t, created.ID)
	assert.Equal(t, "John Doe", created.Name)

	// The listing is a bare array containing the new author.
	w = doJSON(t, router, http.MethodGet, "/authors", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var listed []map[string]any
	decode(t, w, &listed)
	require.Len(t, listed, 1)
	assert.Equal(t, "John Doe", listed[0]["name"])
	assert.Equal(t, "A famous author", listed[0]["bio"])
	assert.Equal(t, "1980-01-01", listed[0]["birth_date"])

	// A book for that author.
	w = doJSON(t, router, http.MethodPost, "/books", gin.H{
		"title":        "First Novel",
		"description":  "Debut work",
		"publish_date": "2005-03-10",
		"author_id":    created.ID,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doJSON(t, router, http.MethodGet, fmt.Sprintf("/authors/%d/books", created.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var byAuthor struct {
		Books []map[string]any `json:"books"`
	}
	decode(t, w, &byAuthor)
	require.Len(t, byAuthor.Books, 1)
	assert.Equal(t, "First Novel", byAuthor.Books[0]["title"])

	// Delete, then the author is gone.
	w = doJSON(t, router, http.MethodDelete, fmt.Sprintf("/authors/%d", created.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var deleted map[string]string
	decode(t, w, &deleted)
	assert.Equal(t, "Author deleted successfully", deleted["message"])

	w = doJSON(t, router, http.MethodGet, fmt.Sprintf("/authors/%d", created.ID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListAuthors_EmptyIsArray(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/authors", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())
}

func TestCreateAuthor_ValidationErrorShape(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/authors", gin.H{"name": "Only Name"})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var body struct {
		Errors map[string]string `json:"errors"`
	}
	decode(t, w, &body)
	assert.Contains(t, body.Errors, "bio")
	assert.Contains(t, body.Errors, "birth_date")
	assert.NotContains(t, body.Errors, "name")
}

func TestCreateAuthor_MalformedJSON(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/authors", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateBook_UnknownAuthor(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/books", gin.H{
		"title":        "Orphan",
		"description":  "No author",
		"publish_date": "2020-01-01",
		"author_id":    314,
	})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var body struct {
		Errors map[string]string `json:"errors"`
	}
	decode(t, w, &body)
	assert.Contains(t, body.Errors, "author_id")
}

func TestGetAuthor_NonNumericID(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/authors/abc", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteBook_NoContent(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/authors", gin.H{
		"name": "John", "bio": "Bio", "birth_date": "1980-01-01",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var a struct {
		ID int64 `json:"id"`
	}
	decode(t, w, &a)

	w = doJSON(t, router, http.MethodPost, "/books", gin.H{
		"title": "Short lived", "description": "D", "publish_date": "2020-01-01", "author_id": a.ID,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var b struct {
		ID int64 `json:"id"`
	}
	decode(t, w, &b)

	w = doJSON(t, router, http.MethodDelete, fmt.Sprintf("/books/%d", b.ID), nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())

	w = doJSON(t, router, http.MethodGet, fmt.Sprintf("/books/%d", b.ID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListBooks_EmbedsAuthor(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/authors", gin.H{
		"name": "Jane", "bio": "Bio", "birth_date": "1985-06-15",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var a struct {
		ID int64 `json:"id"`
	}
	decode(t, w, &a)

	w = doJSON(t, router, http.MethodPost, "/books", gin.H{
		"title": "Novel", "description": "D", "publish_date": "2021-09-01", "author_id": a.ID,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, router, http.MethodGet, "/books", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var books []struct {
		Title  string `json:"title"`
		Author *struct {
			Name string `json:"name"`
		} `json:"author"`
	}
	decode(t, w, &books)
	require.Len(t, books, 1)
	require.NotNil(t, books[0].Author)
	assert.Equal(t, "Jane", books[0].Author.Name)
}

func TestUpdateAuthor_PartialViaHTTP(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/authors", gin.H{
		"name": "John", "bio": "Old bio", "birth_date": "1980-01-01",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var a struct {
		ID int64 `json:"id"`
	}
	decode(t, w, &a)

	w = doJSON(t, router, http.MethodPut, fmt.Sprintf("/authors/%d", a.ID), gin.H{"bio": "New bio"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var updated map[string]any
	decode(t, w, &updated)
	assert.Equal(t, "New bio", updated["bio"])
	assert.Equal(t, "John", updated["name"])
}

func TestHealth(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Status string            `json:"status"`
		Checks map[string]string `json:"checks"`
	}
	decode(t, w, &body)
	assert.Equal(t, "ok", body.Status)
	assert.Equal(t, "ok", body.Checks["cache"])
}
