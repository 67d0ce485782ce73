package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"bookshelf-api/internal/domains/author"
	"bookshelf-api/internal/domains/book"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) book.Repository {
	return &postgresRepository{pool: pool}
}

const pgForeignKeyViolation = "23503"

func (r *postgresRepository) Create(ctx context.Context, b *book.Book) (*book.Book, error) {
	query := `
        INSERT INTO books (title, description, publish_date, author_id)
        VALUES ($1, $2, $3, $4)
        RETURNING id, title, description, publish_date, author_id, created_at, updated_at
    `

	var created book.Book
	err := r.pool.QueryRow(ctx, query, b.Title, b.Description, b.PublishDate, b.AuthorID).Scan(
		&created.ID,
		&created.Title,
		&created.Description,
		&created.PublishDate,
		&created.AuthorID,
		&created.CreatedAt,
		&created.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, book.ErrAuthorNotExists
		}
		return nil, fmt.Errorf("failed to create book: %w", err)
	}

	return &created, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id int64) (*book.Book, error) {
	// LEFT JOIN: a book whose author was deleted still resolves, with the
	// relationship absent.
	query := `
        SELECT b.id, b.title, b.description, b.publish_date, b.author_id, b.created_at, b.updated_at,
               a.id, a.name, a.bio, a.birth_date, a.created_at, a.updated_at
        FROM books b
        LEFT JOIN authors a ON a.id = b.author_id
        WHERE b.id = $1
    `

	b, err := scanBookWithAuthor(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, book.ErrBookNotFound
		}
		return nil, fmt.Errorf("failed to get book by id: %w", err)
	}

	return b, nil
}

func (r *postgresRepository) GetAll(ctx context.Context) ([]book.Book, error) {
	query := `
        SELECT b.id, b.title, b.description, b.publish_date, b.author_id, b.created_at, b.updated_at,
               a.id, a.name, a.bio, a.birth_date, a.created_at, a.updated_at
        FROM books b
        LEFT JOIN authors a ON a.id = b.author_id
        ORDER BY b.id
    `

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query books: %w", err)
	}
	defer rows.Close()

	var books []book.Book
	for rows.Next() {
		b, err := scanBookWithAuthor(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan book: %w", err)
		}
		books = append(books, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating books: %w", err)
	}

	return books, nil
}

func (r *postgresRepository) GetByAuthorID(ctx context.Context, authorID int64) ([]book.Book, error) {
	query := `
        SELECT id, title, description, publish_date, author_id, created_at, updated_at
        FROM books
        WHERE author_id = $1
        ORDER BY id
    `

	rows, err := r.pool.Query(ctx, query, authorID)
	if err != nil {
		return nil, fmt.Errorf("failed to query books by author: %w", err)
	}
	defer rows.Close()

	var books []book.Book
	for rows.Next() {
		var b book.Book
		if err := rows.Scan(
			&b.ID,
			&b.Title,
			&b.Description,
			&b.PublishDate,
			&b.AuthorID,
			&b.CreatedAt,
			&b.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan book: %w", err)
		}
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating books: %w", err)
	}

	return books, nil
}

func (r *postgresRepository) Update(ctx context.Context, b *book.Book) (*book.Book, error) {
	query := `
        UPDATE books
        SET title = $1, description = $2, publish_date = $3, author_id = $4, updated_at = NOW()
        WHERE id = $5
        RETURNING id, title, description, publish_date, author_id, created_at, updated_at
    `

	var updated book.Book
	err := r.pool.QueryRow(ctx, query, b.Title, b.Description, b.PublishDate, b.AuthorID, b.ID).Scan(
		&updated.ID,
		&updated.Title,
		&updated.Description,
		&updated.PublishDate,
		&updated.AuthorID,
		&updated.CreatedAt,
		&updated.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, book.ErrBookNotFound
		}
		if isForeignKeyViolation(err) {
			return nil, book.ErrAuthorNotExists
		}
		return nil, fmt.Errorf("failed to update book: %w", err)
	}

	return &updated, nil
}

func (r *postgresRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.pool.Exec(ctx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete book: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return book.ErrBookNotFound
	}

	return nil
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation
}

// scanBookWithAuthor scans the book columns plus the nullable joined
// author columns from the shared SELECT list.
func scanBookWithAuthor(row pgx.Row) (*book.Book, error) {
	var b book.Book
	var (
		authorID        *int64
		authorName      *string
		authorBio       *string
		authorBirthDate *time.Time
		authorCreatedAt *time.Time
		authorUpdatedAt *time.Time
	)

	err := row.Scan(
		&b.ID,
		&b.Title,
		&b.Description,
		&b.PublishDate,
		&b.AuthorID,
		&b.CreatedAt,
		&b.UpdatedAt,
		&authorID,
		&authorName,
		&authorBio,
		&authorBirthDate,
		&authorCreatedAt,
		&authorUpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if authorID != nil {
		b.Author = &author.Author{
			ID:        *authorID,
			Name:      *authorName,
			Bio:       *authorBio,
			BirthDate: *authorBirthDate,
			CreatedAt: *authorCreatedAt,
			UpdatedAt: *authorUpdatedAt,
		}
	}

	return &b, nil
}
