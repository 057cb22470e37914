// AngelaMos | 2026
// entity.go

package book

import (
	"time"
)

// Book is a listed book. OwnerName and Rate are not columns on the
// books table; the repository fills them from a join and an aggregate.
type Book struct {
	ID         string    `db:"id"`
	Title      string    `db:"title"`
	AuthorName string    `db:"author_name"`
	ISBN       string    `db:"isbn"`
	Synopsis   string    `db:"synopsis"`
	CoverPath  *string   `db:"cover_path"`
	Archived   bool      `db:"archived"`
	Shareable  bool      `db:"shareable"`
	OwnerID    string    `db:"owner_id"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`

	OwnerName string  `db:"owner_name"`
	Rate      float64 `db:"rate"`
}

// TransactionHistory is one loan record. The two booleans encode the
// lifecycle: requested (false,false) -> returned (true,false) ->
// approved (true,true). There are no backward transitions.
type TransactionHistory struct {
	ID             string    `db:"id"`
	UserID         string    `db:"user_id"`
	BookID         string    `db:"book_id"`
	Returned       bool      `db:"returned"`
	ReturnApproved bool      `db:"return_approved"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}

func (h *TransactionHistory) Resolved() bool {
	return h.Returned && h.ReturnApproved
}

// BorrowedBookRow is a loan record joined with the book it concerns,
// shaped for the borrowed/returned list endpoints.
type BorrowedBookRow struct {
	BookID         string  `db:"book_id"`
	Title          string  `db:"title"`
	AuthorName     string  `db:"author_name"`
	ISBN           string  `db:"isbn"`
	Rate           float64 `db:"rate"`
	Returned       bool    `db:"returned"`
	ReturnApproved bool    `db:"return_approved"`
}
