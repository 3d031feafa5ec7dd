package router

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/baechuer/edusphere/internal/domain"
	"github.com/baechuer/edusphere/internal/transport/http/middleware"
	"github.com/baechuer/edusphere/internal/transport/http/response"
)

type HealthHandler interface {
	Root(w http.ResponseWriter, r *http.Request)
	Healthz(w http.ResponseWriter, r *http.Request)
	Readyz(w http.ResponseWriter, r *http.Request)
}

type AuthHandler interface {
	Login(w http.ResponseWriter, r *http.Request)
	Me(w http.ResponseWriter, r *http.Request)
}

type UsersHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	AuditLogs(w http.ResponseWriter, r *http.Request)
}

type SchoolHandler interface {
	ListStudents(w http.ResponseWriter, r *http.Request)
	ImportStudents(w http.ResponseWriter, r *http.Request)
	ListTeachers(w http.ResponseWriter, r *http.Request)
	CreateTeacher(w http.ResponseWriter, r *http.Request)
	ListAssignments(w http.ResponseWriter, r *http.Request)
	CreateAssignment(w http.ResponseWriter, r *http.Request)
	ListExams(w http.ResponseWriter, r *http.Request)
	ListFees(w http.ResponseWriter, r *http.Request)
	PayFee(w http.ResponseWriter, r *http.Request)
	RecordAttendance(w http.ResponseWriter, r *http.Request)
	Stats(w http.ResponseWriter, r *http.Request)
	SendEmail(w http.ResponseWriter, r *http.Request)
}

type Deps struct {
	Health HealthHandler
	Auth   AuthHandler
	Users  UsersHandler
	School SchoolHandler

	AuthMW  func(http.Handler) http.Handler
	AdminMW func(http.Handler) http.Handler
	// StaffMW admits ADMIN and TEACHER.
	StaffMW func(http.Handler) http.Handler
	// LoginRateMW is optional.
	LoginRateMW func(http.Handler) http.Handler

	// Empty CORSOrigins reflects any origin.
	CORSOrigins  []string
	MaxBodyBytes int64

	// IPRateLimit <= 0 disables the global per-IP limiter.
	IPRateLimit  int
	IPRateWindow time.Duration

	// Metrics defaults to promhttp.Handler().
	Metrics http.Handler
}

func New(deps Deps) (http.Handler, error) {
	if deps.Health == nil {
		return nil, fmt.Errorf("nil Health handler")
	}
	if deps.Auth == nil {
		return nil, fmt.Errorf("nil Auth handler")
	}
	if deps.Users == nil {
		return nil, fmt.Errorf("nil Users handler")
	}
	if deps.School == nil {
		return nil, fmt.Errorf("nil School handler")
	}
	if deps.AuthMW == nil {
		return nil, fmt.Errorf("nil Auth middleware")
	}
	if deps.AdminMW == nil {
		return nil, fmt.Errorf("nil Admin middleware")
	}
	if deps.StaffMW == nil {
		return nil, fmt.Errorf("nil Staff middleware")
	}
	loginRate := deps.LoginRateMW
	if loginRate == nil {
		loginRate = func(next http.Handler) http.Handler { return next }
	}
	metrics := deps.Metrics
	if metrics == nil {
		metrics = promhttp.Handler()
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.AccessLog)
	r.Use(middleware.Metrics)
	r.Use(chimw.Recoverer)
	r.Use(corsHandler(deps.CORSOrigins))
	if deps.IPRateLimit > 0 {
		window := deps.IPRateWindow
		if window <= 0 {
			window = time.Minute
		}
		r.Use(httprate.Limit(
			deps.IPRateLimit,
			window,
			httprate.WithKeyFuncs(httprate.KeyByIP),
			httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
				response.WriteError(w, r, domain.ErrRateLimited("ip"))
			}),
		))
	}
	r.Use(middleware.MaxBody(deps.MaxBodyBytes))

	r.Get("/", deps.Health.Root)
	r.Get("/health", deps.Health.Healthz)
	r.Get("/healthz", deps.Health.Healthz)
	r.Get("/readyz", deps.Health.Readyz)
	r.Method(http.MethodGet, "/metrics", metrics)

	r.Route("/api", func(r chi.Router) {
		// --- Auth ---
		r.With(loginRate).Post("/auth/login", deps.Auth.Login)
		r.With(deps.AuthMW).Get("/auth/me", deps.Auth.Me)

		// --- Admin ---
		r.Group(func(r chi.Router) {
			r.Use(deps.AuthMW)
			r.Use(deps.AdminMW)

			r.Get("/users", deps.Users.List)
			r.Post("/users", deps.Users.Create)
			r.Put("/users/{id}", deps.Users.Update)
			r.Get("/audit-logs", deps.Users.AuditLogs)
			r.Post("/teachers", deps.School.CreateTeacher)
		})

		// --- Any signed-in user ---
		r.Group(func(r chi.Router) {
			r.Use(deps.AuthMW)

			r.Get("/students", deps.School.ListStudents)
			r.Get("/teachers", deps.School.ListTeachers)
			r.Get("/assignments", deps.School.ListAssignments)
			r.Get("/exams", deps.School.ListExams)
			r.Get("/fees", deps.School.ListFees)
			r.Get("/stats", deps.School.Stats)
		})

		// --- Staff writes ---
		r.Group(func(r chi.Router) {
			r.Use(deps.AuthMW)
			r.Use(deps.StaffMW)

			r.Post("/students/bulk", deps.School.ImportStudents)
			r.Post("/assignments", deps.School.CreateAssignment)
			r.Post("/fees/pay", deps.School.PayFee)
			r.Post("/attendance", deps.School.RecordAttendance)
			r.Post("/notifications/email", deps.School.SendEmail)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		response.WriteError(w, r, domain.New(domain.KindNotFound, "route_not_found", "route not found"))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		response.WriteJSON(w, http.StatusMethodNotAllowed, response.ErrorBody{Error: response.ErrorPayload{
			Code:      "method_not_allowed",
			Message:   "method not allowed",
			RequestID: response.RequestIDFromContext(r),
		}})
	})

	return r, nil
}

func corsHandler(origins []string) func(http.Handler) http.Handler {
	opts := cors.Options{
		AllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", middleware.HeaderXRequestID},
		ExposedHeaders:   []string{middleware.HeaderXRequestID, "Retry-After"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	if len(origins) > 0 {
		opts.AllowedOrigins = origins
	} else {
		opts.AllowOriginFunc = func(r *http.Request, origin string) bool { return true }
	}
	return cors.Handler(opts)
}
