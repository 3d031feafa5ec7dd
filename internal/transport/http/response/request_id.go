package response

import (
	"net/http"

	ctxpkg "github.com/baechuer/edusphere/internal/pkg/context"
)

// RequestIDFromContext returns the id set by the RequestID middleware.
func RequestIDFromContext(r *http.Request) string {
	return ctxpkg.GetRequestID(r.Context())
}
