package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/rs/zerolog/log"

	"bookshelf-api/internal/domains/author"
	"bookshelf-api/internal/domains/book"
	"bookshelf-api/internal/shared/response"
)

// AuthorHandler maps the /authors routes onto the author service. The
// book service is here too: GET /authors/:id/books is an author route
// whose data lives in the book domain.
type AuthorHandler struct {
	service author.Service
	books   book.Service
}

func NewAuthorHandler(svc author.Service, books book.Service) *AuthorHandler {
	return &AuthorHandler{
		service: svc,
		books:   books,
	}
}

// GET /authors
func (h *AuthorHandler) List(c *gin.Context) {
	authors, err := h.service.List(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}

	resp := make([]*author.Response, 0, len(authors))
	for i := range authors {
		resp = append(resp, authors[i].ToResponse())
	}
	response.OK(c, resp)
}

// GET /authors/:id
func (h *AuthorHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	a, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}

	response.OK(c, a.ToResponse())
}

// GET /authors/:id/books
func (h *AuthorHandler) ListBooks(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	books, err := h.books.ListByAuthor(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}

	resp := make([]*book.Response, 0, len(books))
	for i := range books {
		resp = append(resp, books[i].ToResponse())
	}
	response.OK(c, gin.H{"books": resp})
}

// POST /authors
func (h *AuthorHandler) Create(c *gin.Context) {
	var req author.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	created, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		h.fail(c, err)
		return
	}

	response.Created(c, created.ToResponse())
}

// PUT /authors/:id
func (h *AuthorHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req author.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	updated, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.fail(c, err)
		return
	}

	response.OK(c, updated.ToResponse())
}

// DELETE /authors/:id
func (h *AuthorHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}

	response.Message(c, "Author deleted successfully")
}

func (h *AuthorHandler) fail(c *gin.Context, err error) {
	var vErrs validation.Errors
	switch {
	case errors.As(err, &vErrs):
		response.ValidationFailed(c, vErrs)
	case errors.Is(err, author.ErrAuthorNotFound):
		response.NotFound(c, author.ErrAuthorNotFound.Error())
	default:
		log.Error().Err(err).Str("request_id", c.GetString("request_id")).Msg("author request failed")
		response.InternalError(c)
	}
}

// parseID reads the :id path param. A non-numeric id cannot match any
// record, so it is reported as not found rather than a bad request.
func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.NotFound(c, author.ErrAuthorNotFound.Error())
		return 0, false
	}
	return id, true
}
