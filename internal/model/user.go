package model

import (
	"time"
)

// AuthUser is the identity-provider view of the caller. No user state is
// persisted locally; the token is re-verified on every request.
type AuthUser struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}
