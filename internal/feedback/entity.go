// AngelaMos | 2026
// entity.go

package feedback

import (
	"time"
)

type Feedback struct {
	ID        string    `db:"id"`
	BookID    string    `db:"book_id"`
	UserID    string    `db:"user_id"`
	Note      float64   `db:"note"`
	Comment   string    `db:"comment"`
	CreatedAt time.Time `db:"created_at"`
}
