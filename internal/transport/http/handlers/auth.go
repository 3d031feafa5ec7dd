package http_handlers

import (
	"net/http"
	"strings"

	"github.com/baechuer/edusphere/internal/application/auth"
	"github.com/baechuer/edusphere/internal/domain"
	"github.com/baechuer/edusphere/internal/logger"
	"github.com/baechuer/edusphere/internal/transport/http/dto"
	"github.com/baechuer/edusphere/internal/transport/http/middleware"
	"github.com/baechuer/edusphere/internal/transport/http/response"
)

type AuthHandler struct {
	svc *auth.Service
}

func NewAuthHandler(svc *auth.Service) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	res, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		middleware.LoginAttemptsTotal.WithLabelValues(loginOutcome(err)).Inc()
		logger.WithCtx(r.Context()).Warn().
			Str("reason", loginOutcome(err)).
			Msg("login_failed")
		response.WriteError(w, r, err)
		return
	}
	middleware.LoginAttemptsTotal.WithLabelValues("success").Inc()

	logger.WithCtx(r.Context()).Info().
		Str("user_id", res.User.ID).
		Str("role", res.User.Role).
		Msg("user_logged_in")

	response.OK(w, dto.LoginData{
		Token:     res.Token,
		ExpiresAt: res.ExpiresAt.UTC(),
		User:      dto.NewUserView(res.User),
	})
}

// Me handles GET /api/auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	uid, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.WriteError(w, r, domain.ErrTokenInvalid())
		return
	}

	u, err := h.svc.Me(r.Context(), uid)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	response.OK(w, dto.NewUserView(u))
}

func loginOutcome(err error) string {
	switch {
	case domain.Is(err, "invalid_credentials"):
		return "invalid_credentials"
	case domain.Is(err, "account_inactive"):
		return "account_inactive"
	default:
		return "error"
	}
}
