// AngelaMos | 2026
// repository.go

package book

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/carterperez-dev/bookhive/internal/core"
)

// bookColumns is the projection shared by every book query: the row
// itself plus the owner's display name and the feedback average.
const bookColumns = `
	b.id, b.title, b.author_name, b.isbn, b.synopsis, b.cover_path,
	b.archived, b.shareable, b.owner_id, b.created_at, b.updated_at,
	u.firstname || ' ' || u.lastname AS owner_name,
	COALESCE((SELECT AVG(f.note) FROM feedbacks f WHERE f.book_id = b.id), 0) AS rate`

type Repository interface {
	Create(ctx context.Context, b *Book) error
	GetByID(ctx context.Context, id string) (*Book, error)
	GetByIDForUpdate(ctx context.Context, id string) (*Book, error)
	ListDiscoverable(
		ctx context.Context,
		excludeOwnerID string,
		page, size int,
	) ([]Book, int64, error)
	ListByOwner(
		ctx context.Context,
		ownerID string,
		page, size int,
	) ([]Book, int64, error)
	SetShareable(ctx context.Context, id string, shareable bool) error
	SetArchived(ctx context.Context, id string, archived bool) error
	SetCoverPath(ctx context.Context, id, coverPath string) error
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, b *Book) error {
	query := `
		INSERT INTO books (id, title, author_name, isbn, synopsis,
			archived, shareable, owner_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		b.ID,
		b.Title,
		b.AuthorName,
		b.ISBN,
		b.Synopsis,
		b.Archived,
		b.Shareable,
		b.OwnerID,
	).Scan(&b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create book: %w", err)
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Book, error) {
	query := `
		SELECT ` + bookColumns + `
		FROM books b
		JOIN users u ON u.id = b.owner_id
		WHERE b.id = $1`

	var b Book
	err := r.db.GetContext(ctx, &b, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get book: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get book: %w", err)
	}

	return &b, nil
}

// GetByIDForUpdate locks the book row for the rest of the transaction
// so lending guards and the history insert see a stable book state.
func (r *repository) GetByIDForUpdate(
	ctx context.Context,
	id string,
) (*Book, error) {
	query := `
		SELECT ` + bookColumns + `
		FROM books b
		JOIN users u ON u.id = b.owner_id
		WHERE b.id = $1
		FOR UPDATE OF b`

	var b Book
	err := r.db.GetContext(ctx, &b, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get book for update: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get book for update: %w", err)
	}

	return &b, nil
}

func (r *repository) ListDiscoverable(
	ctx context.Context,
	excludeOwnerID string,
	page, size int,
) ([]Book, int64, error) {
	query := `
		SELECT ` + bookColumns + `
		FROM books b
		JOIN users u ON u.id = b.owner_id
		WHERE b.shareable AND NOT b.archived AND b.owner_id <> $1
		ORDER BY b.created_at DESC
		LIMIT $2 OFFSET $3`

	var books []Book
	err := r.db.SelectContext(
		ctx, &books, query, excludeOwnerID, size, page*size,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("list discoverable books: %w", err)
	}

	countQuery := `
		SELECT COUNT(*)
		FROM books b
		WHERE b.shareable AND NOT b.archived AND b.owner_id <> $1`

	var total int64
	if err := r.db.GetContext(ctx, &total, countQuery, excludeOwnerID); err != nil {
		return nil, 0, fmt.Errorf("count discoverable books: %w", err)
	}

	return books, total, nil
}

func (r *repository) ListByOwner(
	ctx context.Context,
	ownerID string,
	page, size int,
) ([]Book, int64, error) {
	query := `
		SELECT ` + bookColumns + `
		FROM books b
		JOIN users u ON u.id = b.owner_id
		WHERE b.owner_id = $1
		ORDER BY b.created_at DESC
		LIMIT $2 OFFSET $3`

	var books []Book
	err := r.db.SelectContext(ctx, &books, query, ownerID, size, page*size)
	if err != nil {
		return nil, 0, fmt.Errorf("list books by owner: %w", err)
	}

	countQuery := `SELECT COUNT(*) FROM books b WHERE b.owner_id = $1`

	var total int64
	if err := r.db.GetContext(ctx, &total, countQuery, ownerID); err != nil {
		return nil, 0, fmt.Errorf("count books by owner: %w", err)
	}

	return books, total, nil
}

func (r *repository) SetShareable(
	ctx context.Context,
	id string,
	shareable bool,
) error {
	return r.setFlag(ctx, "shareable", id, shareable)
}

func (r *repository) SetArchived(
	ctx context.Context,
	id string,
	archived bool,
) error {
	return r.setFlag(ctx, "archived", id, archived)
}

func (r *repository) setFlag(
	ctx context.Context,
	column, id string,
	value bool,
) error {
	// column is one of two fixed identifiers, never user input.
	query := fmt.Sprintf(`
		UPDATE books
		SET %s = $1, updated_at = NOW()
		WHERE id = $2`, column)

	result, err := r.db.ExecContext(ctx, query, value, id)
	if err != nil {
		return fmt.Errorf("update book %s: %w", column, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update book %s: %w", column, err)
	}

	if rows == 0 {
		return fmt.Errorf("update book %s: %w", column, core.ErrNotFound)
	}

	return nil
}

func (r *repository) SetCoverPath(
	ctx context.Context,
	id, coverPath string,
) error {
	query := `
		UPDATE books
		SET cover_path = $1, updated_at = NOW()
		WHERE id = $2`

	result, err := r.db.ExecContext(ctx, query, coverPath, id)
	if err != nil {
		return fmt.Errorf("update book cover: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update book cover: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("update book cover: %w", core.ErrNotFound)
	}

	return nil
}
