package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/baechuer/edusphere/internal/application/auth"
	"github.com/baechuer/edusphere/internal/domain"
)

type TokenVerifier interface {
	Verify(token string) (auth.TokenClaims, error)
}

// RevocationChecker reports whether every token of a user has been revoked.
type RevocationChecker interface {
	IsRevoked(ctx context.Context, userID string) (bool, error)
}

type WriteErrFunc func(http.ResponseWriter, *http.Request, error)

// Auth verifies Authorization: Bearer <token> and injects the claims into
// the request context. revoked may be nil.
func Auth(verifier TokenVerifier, revoked RevocationChecker, writeErr WriteErrFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := strings.TrimSpace(r.Header.Get("Authorization"))
			if h == "" {
				writeErr(w, r, domain.ErrTokenMissing())
				return
			}

			parts := strings.SplitN(h, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				writeErr(w, r, domain.ErrTokenInvalid())
				return
			}

			raw := strings.TrimSpace(parts[1])
			if raw == "" {
				writeErr(w, r, domain.ErrTokenMissing())
				return
			}

			claims, err := verifier.Verify(raw)
			if err != nil {
				writeErr(w, r, err)
				return
			}
			if strings.TrimSpace(claims.UserID) == "" {
				writeErr(w, r, domain.ErrTokenInvalid())
				return
			}

			if revoked != nil {
				gone, err := revoked.IsRevoked(r.Context(), claims.UserID)
				if err != nil {
					writeErr(w, r, err)
					return
				}
				if gone {
					writeErr(w, r, domain.ErrTokenInvalid())
					return
				}
			}

			ctx := WithUser(r.Context(), claims.UserID, claims.Role, claims.Email)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
