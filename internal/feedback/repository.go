// AngelaMos | 2026
// repository.go

package feedback

import (
	"context"
	"fmt"

	"github.com/carterperez-dev/bookhive/internal/core"
)

type Repository interface {
	Create(ctx context.Context, f *Feedback) error
	ListByBook(
		ctx context.Context,
		bookID string,
		page, size int,
	) ([]Feedback, int64, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, f *Feedback) error {
	query := `
		INSERT INTO feedbacks (id, book_id, user_id, note, comment)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at`

	err := r.db.GetContext(ctx, &f.CreatedAt, query,
		f.ID,
		f.BookID,
		f.UserID,
		f.Note,
		f.Comment,
	)
	if err != nil {
		return fmt.Errorf("create feedback: %w", err)
	}

	return nil
}

func (r *repository) ListByBook(
	ctx context.Context,
	bookID string,
	page, size int,
) ([]Feedback, int64, error) {
	query := `
		SELECT id, book_id, user_id, note, comment, created_at
		FROM feedbacks
		WHERE book_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	var feedbacks []Feedback
	err := r.db.SelectContext(ctx, &feedbacks, query, bookID, size, page*size)
	if err != nil {
		return nil, 0, fmt.Errorf("list feedbacks: %w", err)
	}

	countQuery := `SELECT COUNT(*) FROM feedbacks WHERE book_id = $1`

	var total int64
	if err := r.db.GetContext(ctx, &total, countQuery, bookID); err != nil {
		return nil, 0, fmt.Errorf("count feedbacks: %w", err)
	}

	return feedbacks, total, nil
}
