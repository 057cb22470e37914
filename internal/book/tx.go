// AngelaMos | 2026
// tx.go

package book

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/carterperez-dev/bookhive/internal/core"
)

// TxRunner runs a lending operation with the book and history
// repositories bound to one transaction, so guards and writes see a
// single consistent snapshot.
type TxRunner interface {
	InLendingTx(
		ctx context.Context,
		fn func(books Repository, history HistoryRepository) error,
	) error
}

type sqlTxRunner struct {
	db *sqlx.DB
}

func NewTxRunner(db *sqlx.DB) TxRunner {
	return &sqlTxRunner{db: db}
}

func (r *sqlTxRunner) InLendingTx(
	ctx context.Context,
	fn func(books Repository, history HistoryRepository) error,
) error {
	return core.InTx(ctx, r.db, func(tx *sqlx.Tx) error {
		return fn(NewRepository(tx), NewHistoryRepository(tx))
	})
}
