// AngelaMos | 2026
// entity.go

package user

import (
	"strings"
	"time"
)

type User struct {
	ID            string    `db:"id"`
	Firstname     string    `db:"firstname"`
	Lastname      string    `db:"lastname"`
	Email         string    `db:"email"`
	PasswordHash  string    `db:"password_hash"`
	Enabled       bool      `db:"enabled"`
	AccountLocked bool      `db:"account_locked"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`

	Roles []string `db:"-"`
}

func (u *User) FullName() string {
	return strings.TrimSpace(u.Firstname + " " + u.Lastname)
}

func (u *User) CanAuthenticate() bool {
	return u.Enabled && !u.AccountLocked
}

const RoleUser = "USER"
