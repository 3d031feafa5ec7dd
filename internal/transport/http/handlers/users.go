package http_handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/baechuer/edusphere/internal/application/users"
	"github.com/baechuer/edusphere/internal/domain"
	"github.com/baechuer/edusphere/internal/logger"
	"github.com/baechuer/edusphere/internal/transport/http/dto"
	"github.com/baechuer/edusphere/internal/transport/http/middleware"
	"github.com/baechuer/edusphere/internal/transport/http/response"
)

// ActorResolver names the caller of a mutating request for the audit trail.
type ActorResolver interface {
	ResolveActor(ctx context.Context, raw string) string
}

type UsersHandler struct {
	svc    *users.Service
	actors ActorResolver
}

func NewUsersHandler(svc *users.Service, actors ActorResolver) *UsersHandler {
	return &UsersHandler{svc: svc, actors: actors}
}

func (h *UsersHandler) actor(r *http.Request) string {
	return h.actors.ResolveActor(r.Context(), r.Header.Get("Authorization"))
}

// List handles GET /api/users
func (h *UsersHandler) List(w http.ResponseWriter, r *http.Request) {
	us, err := h.svc.ListUsers(r.Context())
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.OK(w, dto.NewUserViews(us))
}

// Create handles POST /api/users
func (h *UsersHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateUserRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	u, err := h.svc.CreateUser(r.Context(), h.actor(r), users.CreateUserInput{
		Name:      req.Name,
		Email:     req.Email,
		Role:      req.Role,
		Password:  req.Password,
		AvatarURL: req.AvatarURL,
		Status:    req.Status,
	})
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	middleware.UserMutationsTotal.WithLabelValues(string(domain.AuditUserCreated)).Inc()

	logger.WithCtx(r.Context()).Info().
		Str("user_id", u.ID).
		Str("role", u.Role).
		Msg("user_created")

	response.Created(w, dto.NewUserView(u))
}

// Update handles PUT /api/users/{id}
func (h *UsersHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	if id == "" {
		response.WriteError(w, r, domain.ErrMissingField("id"))
		return
	}

	var req dto.UpdateUserRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	err := h.svc.UpdateUser(r.Context(), h.actor(r), id, users.UpdateUserInput{
		Name:      req.Name,
		Email:     req.Email,
		AvatarURL: req.AvatarURL,
		Status:    req.Status,
		Password:  req.Password,
	})
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	logger.WithCtx(r.Context()).Info().
		Str("user_id", id).
		Msg("user_updated")

	response.OK(w, dto.SuccessData{Success: true})
}

// AuditLogs handles GET /api/audit-logs?limit=N
func (h *UsersHandler) AuditLogs(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := strings.TrimSpace(r.URL.Query().Get("limit")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			response.WriteError(w, r, domain.ErrInvalidField("limit", "must be a non-negative integer"))
			return
		}
		limit = n
	}

	entries, err := h.svc.AuditLog(r.Context(), limit)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.OK(w, dto.NewAuditLogViews(entries))
}
