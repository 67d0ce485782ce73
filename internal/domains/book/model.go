package book

import (
	"time"

	"bookshelf-api/internal/domains/author"
	"bookshelf-api/internal/shared"
)

// Book is the domain entity. Author is populated by the list/get queries
// that join the relationship; nil when the referenced author no longer
// exists (deletes do not cascade).
type Book struct {
	ID          int64     `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	PublishDate time.Time `json:"publish_date" db:"publish_date"`
	AuthorID    int64     `json:"author_id" db:"author_id"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`

	Author *author.Author `json:"author,omitempty"`
}

// Response is the API shape without the relationship.
type Response struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	PublishDate string `json:"publish_date"`
	AuthorID    int64  `json:"author_id"`
}

// WithAuthorResponse denormalizes the author into the payload, used by
// the book listing.
type WithAuthorResponse struct {
	Response
	Author *author.Response `json:"author"`
}

func (b *Book) ToResponse() *Response {
	return &Response{
		ID:          b.ID,
		Title:       b.Title,
		Description: b.Description,
		PublishDate: b.PublishDate.Format(shared.DateLayout),
		AuthorID:    b.AuthorID,
	}
}

func (b *Book) ToResponseWithAuthor() *WithAuthorResponse {
	resp := &WithAuthorResponse{Response: *b.ToResponse()}
	if b.Author != nil {
		resp.Author = b.Author.ToResponse()
	}
	return resp
}
