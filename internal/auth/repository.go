// AngelaMos | 2026
// repository.go

package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/carterperez-dev/bookhive/internal/core"
)

type Repository interface {
	Create(ctx context.Context, token *ActivationToken) error
	FindByToken(ctx context.Context, token string) (*ActivationToken, error)
	MarkValidated(ctx context.Context, id string) error
	DeleteExpired(ctx context.Context) (int64, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, token *ActivationToken) error {
	query := `
		INSERT INTO activation_tokens (id, token, user_id, expires_at)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at`

	err := r.db.GetContext(ctx, &token.CreatedAt, query,
		token.ID,
		token.Token,
		token.UserID,
		token.ExpiresAt,
	)
	if err != nil {
		return fmt.Errorf("create activation token: %w", err)
	}

	return nil
}

func (r *repository) FindByToken(
	ctx context.Context,
	token string,
) (*ActivationToken, error) {
	query := `
		SELECT id, token, user_id, created_at, expires_at, validated_at
		FROM activation_tokens
		WHERE token = $1
		ORDER BY created_at DESC
		LIMIT 1`

	var t ActivationToken
	err := r.db.GetContext(ctx, &t, query, token)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("find activation token: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find activation token: %w", err)
	}

	return &t, nil
}

func (r *repository) MarkValidated(ctx context.Context, id string) error {
	query := `
		UPDATE activation_tokens
		SET validated_at = NOW()
		WHERE id = $1 AND validated_at IS NULL`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("mark token validated: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("mark token validated: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("mark token validated: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) DeleteExpired(ctx context.Context) (int64, error) {
	query := `
		DELETE FROM activation_tokens
		WHERE expires_at < NOW() - INTERVAL '24 hours'
			AND validated_at IS NULL`

	result, err := r.db.ExecContext(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("delete expired tokens: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete expired tokens: %w", err)
	}

	return rows, nil
}
