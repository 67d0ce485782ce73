package book

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"bookshelf-api/internal/shared"
)

// CreateRequest is the POST /books payload. Every field is required;
// author_id must reference an existing author (checked by the service).
type CreateRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	PublishDate string `json:"publish_date"`
	AuthorID    int64  `json:"author_id"`
}

func (r CreateRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.Required.Error("title is required"),
		),
		validation.Field(&r.Description,
			validation.Required.Error("description is required"),
		),
		validation.Field(&r.PublishDate,
			validation.Required.Error("publish_date is required"),
			validation.Date(shared.DateLayout).Error("publish_date must be a date in YYYY-MM-DD format"),
		),
		validation.Field(&r.AuthorID,
			validation.Required.Error("author_id is required"),
			validation.Min(int64(1)).Error("author_id must be a positive id"),
		),
	)
}

// UpdateRequest is the PUT /books/:id payload. Fields are optional; a
// supplied author_id is re-checked for existence.
type UpdateRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	PublishDate *string `json:"publish_date"`
	AuthorID    *int64  `json:"author_id"`
}

func (r UpdateRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.NilOrNotEmpty.Error("title must not be empty"),
		),
		validation.Field(&r.Description,
			validation.NilOrNotEmpty.Error("description must not be empty"),
		),
		validation.Field(&r.PublishDate,
			validation.NilOrNotEmpty.Error("publish_date must not be empty"),
			validation.Date(shared.DateLayout).Error("publish_date must be a date in YYYY-MM-DD format"),
		),
		validation.Field(&r.AuthorID,
			validation.Min(int64(1)).Error("author_id must be a positive id"),
		),
	)
}
