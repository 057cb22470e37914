// AngelaMos | 2026
// entity.go

package auth

import (
	"time"
)

// ActivationToken is the short-lived numeric code mailed out at
// registration. It proves control of the address and is consumed once.
type ActivationToken struct {
	ID          string     `db:"id"`
	Token       string     `db:"token"`
	UserID      string     `db:"user_id"`
	CreatedAt   time.Time  `db:"created_at"`
	ExpiresAt   time.Time  `db:"expires_at"`
	ValidatedAt *time.Time `db:"validated_at"`
}

func (t *ActivationToken) IsExpired() bool {
	return time.Now().After(t.ExpiresAt)
}

func (t *ActivationToken) IsValidated() bool {
	return t.ValidatedAt != nil
}
