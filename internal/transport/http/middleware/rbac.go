package middleware

import (
	"net/http"
	"strings"

	"github.com/baechuer/edusphere/internal/domain"
)

// RequireRole lets the request through only when the token role is one of allowed.
// Assumes Auth() has already injected the role into the context.
func RequireRole(writeErr WriteErrFunc, allowed ...domain.Role) func(http.Handler) http.Handler {
	names := make([]string, 0, len(allowed))
	for _, a := range allowed {
		names = append(names, string(a))
	}
	allowedList := strings.Join(names, ",")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := RoleFromContext(r.Context())
			if !ok {
				writeErr(w, r, domain.ErrTokenInvalid())
				return
			}
			if !domain.IsValidRole(role) {
				writeErr(w, r, domain.ErrForbidden())
				return
			}
			if !domain.RoleIn(role, allowed...) {
				writeErr(w, r, domain.ErrInsufficientRole(allowedList))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
