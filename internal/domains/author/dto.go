package author

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"bookshelf-api/internal/shared"
)

// CreateRequest is the POST /authors payload. Every field is required.
type CreateRequest struct {
	Name      string `json:"name"`
	Bio       string `json:"bio"`
	BirthDate string `json:"birth_date"`
}

func (r CreateRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required.Error("name is required"),
		),
		validation.Field(&r.Bio,
			validation.Required.Error("bio is required"),
		),
		validation.Field(&r.BirthDate,
			validation.Required.Error("birth_date is required"),
			validation.Date(shared.DateLayout).Error("birth_date must be a date in YYYY-MM-DD format"),
		),
	)
}

// UpdateRequest is the PUT /authors/:id payload. Fields are optional;
// only the ones supplied are validated and applied.
type UpdateRequest struct {
	Name      *string `json:"name"`
	Bio       *string `json:"bio"`
	BirthDate *string `json:"birth_date"`
}

func (r UpdateRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.NilOrNotEmpty.Error("name must not be empty"),
		),
		validation.Field(&r.Bio,
			validation.NilOrNotEmpty.Error("bio must not be empty"),
		),
		validation.Field(&r.BirthDate,
			validation.NilOrNotEmpty.Error("birth_date must not be empty"),
			validation.Date(shared.DateLayout).Error("birth_date must be a date in YYYY-MM-DD format"),
		),
	)
}
