package auth

import (
	"context"
	"time"

	"github.com/baechuer/edusphere/internal/domain"
)

/*
UserReader
----------
The slice of the user store the authenticator needs.
*/
type UserReader interface {
	GetByEmail(ctx context.Context, email string) (domain.User, error)
	GetByID(ctx context.Context, id string) (domain.User, error)
}

/*
PasswordHasher
--------------
Abstracts bcrypt.
*/
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash string, password string) error // nil if match
}

/*
TokenSigner
-----------
Issues and verifies session tokens (JWT).
Used by service + auth middleware.
*/
type TokenClaims struct {
	UserID string
	Email  string
	Role   string
	Exp    time.Time
}

type TokenSigner interface {
	SignSessionToken(userID, email, role string, ttl time.Duration) (string, error)
	VerifySessionToken(token string) (TokenClaims, error)
}
