package types

import "github.com/google/uuid"

// TokenClaims is the decoded content of an access token.
type TokenClaims struct {
	UserID   uuid.UUID
	Username string
}
