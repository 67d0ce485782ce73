package author

import (
	"time"

	"bookshelf-api/internal/shared"
)

// Author is the domain entity as stored. BirthDate is date-only; the time
// component is always midnight UTC.
type Author struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Bio       string    `json:"bio" db:"bio"`
	BirthDate time.Time `json:"birth_date" db:"birth_date"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Response is the API shape: dates rendered as YYYY-MM-DD.
type Response struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Bio       string `json:"bio"`
	BirthDate string `json:"birth_date"`
}

func (a *Author) ToResponse() *Response {
	return &Response{
		ID:        a.ID,
		Name:      a.Name,
		Bio:       a.Bio,
		BirthDate: a.BirthDate.Format(shared.DateLayout),
	}
}
