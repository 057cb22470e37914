// AngelaMos | 2026
// history.go

package book

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/carterperez-dev/bookhive/internal/core"
)

// unresolved matches any loan that still blocks the book: requested or
// returned-but-not-approved.
const unresolved = `NOT (h.returned AND h.return_approved)`

type HistoryRepository interface {
	Create(ctx context.Context, h *TransactionHistory) error
	HasUnresolvedLoan(ctx context.Context, bookID string) (bool, error)
	HasUnresolvedLoanByUser(
		ctx context.Context,
		bookID, userID string,
	) (bool, error)
	FindUnresolvedByUser(
		ctx context.Context,
		bookID, userID string,
	) (*TransactionHistory, error)
	FindReturnedForOwner(
		ctx context.Context,
		bookID, ownerID string,
	) (*TransactionHistory, error)
	MarkReturned(ctx context.Context, id string) error
	MarkApproved(ctx context.Context, id string) error
	ListBorrowedByUser(
		ctx context.Context,
		userID string,
		page, size int,
	) ([]BorrowedBookRow, int64, error)
	ListReturnedForOwner(
		ctx context.Context,
		ownerID string,
		page, size int,
	) ([]BorrowedBookRow, int64, error)
}

type historyRepository struct {
	db core.DBTX
}

func NewHistoryRepository(db core.DBTX) HistoryRepository {
	return &historyRepository{db: db}
}

func (r *historyRepository) Create(
	ctx context.Context,
	h *TransactionHistory,
) error {
	query := `
		INSERT INTO book_transaction_history
			(id, user_id, book_id, returned, return_approved)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		h.ID,
		h.UserID,
		h.BookID,
		h.Returned,
		h.ReturnApproved,
	).Scan(&h.CreatedAt, &h.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf(
				"create loan record: %w",
				core.ErrDuplicateKey,
			)
		}
		return fmt.Errorf("create loan record: %w", err)
	}

	return nil
}

func (r *historyRepository) HasUnresolvedLoan(
	ctx context.Context,
	bookID string,
) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM book_transaction_history h
			WHERE h.book_id = $1 AND ` + unresolved + `
		)`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, bookID); err != nil {
		return false, fmt.Errorf("check unresolved loan: %w", err)
	}

	return exists, nil
}

func (r *historyRepository) HasUnresolvedLoanByUser(
	ctx context.Context,
	bookID, userID string,
) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM book_transaction_history h
			WHERE h.book_id = $1 AND h.user_id = $2 AND ` + unresolved + `
		)`

	var exists bool
	err := r.db.GetContext(ctx, &exists, query, bookID, userID)
	if err != nil {
		return false, fmt.Errorf("check unresolved loan by user: %w", err)
	}

	return exists, nil
}

// FindUnresolvedByUser returns the caller's open loan on a book, i.e.
// the record they would be returning.
func (r *historyRepository) FindUnresolvedByUser(
	ctx context.Context,
	bookID, userID string,
) (*TransactionHistory, error) {
	query := `
		SELECT h.id, h.user_id, h.book_id, h.returned, h.return_approved,
			h.created_at, h.updated_at
		FROM book_transaction_history h
		WHERE h.book_id = $1 AND h.user_id = $2
			AND NOT h.returned AND NOT h.return_approved
		ORDER BY h.created_at DESC
		LIMIT 1`

	var h TransactionHistory
	err := r.db.GetContext(ctx, &h, query, bookID, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("find open loan: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find open loan: %w", err)
	}

	return &h, nil
}

// FindReturnedForOwner returns the returned-but-unapproved record on a
// book the given user owns.
func (r *historyRepository) FindReturnedForOwner(
	ctx context.Context,
	bookID, ownerID string,
) (*TransactionHistory, error) {
	query := `
		SELECT h.id, h.user_id, h.book_id, h.returned, h.return_approved,
			h.created_at, h.updated_at
		FROM book_transaction_history h
		JOIN books b ON b.id = h.book_id
		WHERE h.book_id = $1 AND b.owner_id = $2
			AND h.returned AND NOT h.return_approved
		ORDER BY h.created_at DESC
		LIMIT 1`

	var h TransactionHistory
	err := r.db.GetContext(ctx, &h, query, bookID, ownerID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("find returned loan: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find returned loan: %w", err)
	}

	return &h, nil
}

func (r *historyRepository) MarkReturned(
	ctx context.Context,
	id string,
) error {
	query := `
		UPDATE book_transaction_history
		SET returned = TRUE, updated_at = NOW()
		WHERE id = $1 AND NOT returned`

	return r.markTransition(ctx, query, id, "mark returned")
}

func (r *historyRepository) MarkApproved(
	ctx context.Context,
	id string,
) error {
	query := `
		UPDATE book_transaction_history
		SET return_approved = TRUE, updated_at = NOW()
		WHERE id = $1 AND returned AND NOT return_approved`

	return r.markTransition(ctx, query, id, "mark approved")
}

func (r *historyRepository) markTransition(
	ctx context.Context,
	query, id, op string,
) error {
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if rows == 0 {
		return fmt.Errorf("%s: %w", op, core.ErrNotFound)
	}

	return nil
}

const borrowedColumns = `
	h.book_id, b.title, b.author_name, b.isbn,
	COALESCE((SELECT AVG(f.note) FROM feedbacks f WHERE f.book_id = b.id), 0) AS rate,
	h.returned, h.return_approved`

func (r *historyRepository) ListBorrowedByUser(
	ctx context.Context,
	userID string,
	page, size int,
) ([]BorrowedBookRow, int64, error) {
	query := `
		SELECT ` + borrowedColumns + `
		FROM book_transaction_history h
		JOIN books b ON b.id = h.book_id
		WHERE h.user_id = $1
		ORDER BY h.created_at DESC
		LIMIT $2 OFFSET $3`

	var rows []BorrowedBookRow
	err := r.db.SelectContext(ctx, &rows, query, userID, size, page*size)
	if err != nil {
		return nil, 0, fmt.Errorf("list borrowed books: %w", err)
	}

	countQuery := `
		SELECT COUNT(*) FROM book_transaction_history h
		WHERE h.user_id = $1`

	var total int64
	if err := r.db.GetContext(ctx, &total, countQuery, userID); err != nil {
		return nil, 0, fmt.Errorf("count borrowed books: %w", err)
	}

	return rows, total, nil
}

func (r *historyRepository) ListReturnedForOwner(
	ctx context.Context,
	ownerID string,
	page, size int,
) ([]BorrowedBookRow, int64, error) {
	query := `
		SELECT ` + borrowedColumns + `
		FROM book_transaction_history h
		JOIN books b ON b.id = h.book_id
		WHERE b.owner_id = $1 AND h.returned
		ORDER BY h.created_at DESC
		LIMIT $2 OFFSET $3`

	var rows []BorrowedBookRow
	err := r.db.SelectContext(ctx, &rows, query, ownerID, size, page*size)
	if err != nil {
		return nil, 0, fmt.Errorf("list returned books: %w", err)
	}

	countQuery := `
		SELECT COUNT(*)
		FROM book_transaction_history h
		JOIN books b ON b.id = h.book_id
		WHERE b.owner_id = $1 AND h.returned`

	var total int64
	if err := r.db.GetContext(ctx, &total, countQuery, ownerID); err != nil {
		return nil, 0, fmt.Errorf("count returned books: %w", err)
	}

	return rows, total, nil
}
