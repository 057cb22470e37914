// AngelaMos | 2026
// repository_test.go

package book

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/bookhive/internal/core"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return sqlx.NewDb(db, "sqlmock"), mock
}

func bookRowColumns() []string {
	return []string{
		"id", "title", "author_name", "isbn", "synopsis", "cover_path",
		"archived", "shareable", "owner_id", "created_at", "updated_at",
		"owner_name", "rate",
	}
}

func sampleBookRow(rows *sqlmock.Rows, id, ownerID string) *sqlmock.Rows {
	now := time.Now()
	return rows.AddRow(
		id, "Dune", "Frank Herbert", "9780441172719", "spice", nil,
		false, true, ownerID, now, now,
		"Bob Owner", 4.2,
	)
}

func TestGetByIDForUpdate_LocksRow(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FOR UPDATE OF b")).
		WithArgs("b1").
		WillReturnRows(sampleBookRow(
			sqlmock.NewRows(bookRowColumns()), "b1", "owner",
		))

	b, err := repo.GetByIDForUpdate(context.Background(), "b1")
	require.NoError(t, err)
	assert.Equal(t, "b1", b.ID)
	assert.Equal(t, "Bob Owner", b.OwnerName)
	assert.InDelta(t, 4.2, b.Rate, 0.001)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByID_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM books")).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(bookRowColumns()))

	_, err := repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, core.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHistoryCreate_MapsUniqueViolation(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewHistoryRepository(db)

	// The partial unique index on unresolved loans fires when a second
	// borrower races past the existence check.
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO book_transaction_history")).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	err := repo.Create(context.Background(), &TransactionHistory{
		ID:     "h1",
		UserID: "alice",
		BookID: "b1",
	})
	assert.ErrorIs(t, err, core.ErrDuplicateKey)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHistoryMarkApproved_RequiresReturnedState(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewHistoryRepository(db)

	// The UPDATE's WHERE clause refuses the transition on a record that
	// is not in the returned state, so zero rows come back.
	mock.ExpectExec(regexp.QuoteMeta("SET return_approved = TRUE")).
		WithArgs("h1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.MarkApproved(context.Background(), "h1")
	assert.ErrorIs(t, err, core.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListDiscoverable_ExcludesCallerAndCounts(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("NOT b.archived AND b.owner_id <> $1")).
		WithArgs("me", 10, 0).
		WillReturnRows(sampleBookRow(
			sqlmock.NewRows(bookRowColumns()), "b1", "other",
		))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*)")).
		WithArgs("me").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	books, total, err := repo.ListDiscoverable(
		context.Background(), "me", 0, 10,
	)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, books, 1)
	assert.Equal(t, "b1", books[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
