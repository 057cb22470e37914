// AngelaMos | 2026
// repository_test.go

package user

import (
	"context"
	"database/sql"
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

func newMockRepo(t *testing.T) (Repository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewRepository(sqlx.NewDb(db, "sqlmock")), mock
}

func userColumns() []string {
	return []string{
		"id", "firstname", "lastname", "email", "password_hash",
		"enabled", "account_locked", "created_at", "updated_at",
	}
}

func TestCreate_InsertsUserAndDefaultRole(t *testing.T) {
	repo, mock := newMockRepo(t)

	now := time.Now()
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users")).
		WithArgs(
			"u1", "Ada", "Lovelace", "ada@example.com", "hash",
			false, false,
		).
		WillReturnRows(
			sqlmock.NewRows([]string{"created_at", "updated_at"}).
				AddRow(now, now),
		)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO user_roles")).
		WithArgs("u1", RoleUser).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	u := &User{
		ID:           "u1",
		Firstname:    "Ada",
		Lastname:     "Lovelace",
		Email:        "ada@example.com",
		PasswordHash: "hash",
	}

	require.NoError(t, repo.Create(context.Background(), u))
	assert.Equal(t, []string{RoleUser}, u.Roles)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_DuplicateEmail(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users")).
		WillReturnError(&pgconn.PgError{Code: "23505"})
	mock.ExpectRollback()

	err := repo.Create(context.Background(), &User{
		ID:    "u1",
		Email: "ada@example.com",
	})
	assert.ErrorIs(t, err, core.ErrDuplicateKey)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_RollsBackWhenRoleAssignmentFails(t *testing.T) {
	repo, mock := newMockRepo(t)

	now := time.Now()
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users")).
		WillReturnRows(
			sqlmock.NewRows([]string{"created_at", "updated_at"}).
				AddRow(now, now),
		)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO user_roles")).
		WillReturnError(sql.ErrConnDone)
	mock.ExpectRollback()

	u := &User{
		ID:    "u1",
		Email: "ada@example.com",
	}

	err := repo.Create(context.Background(), u)
	require.Error(t, err)
	assert.Empty(t, u.Roles)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_FailsWhenSeedRoleMissing(t *testing.T) {
	repo, mock := newMockRepo(t)

	now := time.Now()
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users")).
		WillReturnRows(
			sqlmock.NewRows([]string{"created_at", "updated_at"}).
				AddRow(now, now),
		)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO user_roles")).
		WithArgs("u1", RoleUser).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	u := &User{
		ID:    "u1",
		Email: "ada@example.com",
	}

	err := repo.Create(context.Background(), u)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not seeded")
	assert.Empty(t, u.Roles)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByEmail_LoadsRoles(t *testing.T) {
	repo, mock := newMockRepo(t)

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("FROM users")).
		WithArgs("ada@example.com").
		WillReturnRows(sqlmock.NewRows(userColumns()).AddRow(
			"u1", "Ada", "Lovelace", "ada@example.com", "hash",
			true, false, now, now,
		))
	mock.ExpectQuery(regexp.QuoteMeta("JOIN user_roles")).
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows([]string{"name"}).AddRow(RoleUser))

	u, err := repo.GetByEmail(context.Background(), "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, "u1", u.ID)
	assert.Equal(t, "Ada Lovelace", u.FullName())
	assert.True(t, u.Enabled)
	assert.Equal(t, []string{RoleUser}, u.Roles)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByEmail_NotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM users")).
		WithArgs("ghost@example.com").
		WillReturnRows(sqlmock.NewRows(userColumns()))

	_, err := repo.GetByEmail(context.Background(), "ghost@example.com")
	assert.ErrorIs(t, err, core.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnable_MissingUser(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE users")).
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Enable(context.Background(), "missing")
	assert.ErrorIs(t, err, core.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExistsByEmail(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS")).
		WithArgs("ada@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.ExistsByEmail(
		context.Background(), "ada@example.com",
	)
	require.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}
