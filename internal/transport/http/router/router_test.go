package router

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---------- fakes ----------

func write(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(msg))
}

type fakeHealth struct{}

func (fakeHealth) Root(w http.ResponseWriter, r *http.Request)    { write(w, "root") }
func (fakeHealth) Healthz(w http.ResponseWriter, r *http.Request) { write(w, "healthz") }
func (fakeHealth) Readyz(w http.ResponseWriter, r *http.Request)  { write(w, "readyz") }

type fakeAuth struct{}

func (fakeAuth) Login(w http.ResponseWriter, r *http.Request) { write(w, "login") }
func (fakeAuth) Me(w http.ResponseWriter, r *http.Request)    { write(w, "me") }

type fakeUsers struct{}

func (fakeUsers) List(w http.ResponseWriter, r *http.Request)      { write(w, "users_list") }
func (fakeUsers) Create(w http.ResponseWriter, r *http.Request)    { write(w, "users_create") }
func (fakeUsers) Update(w http.ResponseWriter, r *http.Request)    { write(w, "users_update") }
func (fakeUsers) AuditLogs(w http.ResponseWriter, r *http.Request) { write(w, "audit_logs") }

type fakeSchool struct{}

func (fakeSchool) ListStudents(w http.ResponseWriter, r *http.Request)     { write(w, "students") }
func (fakeSchool) ImportStudents(w http.ResponseWriter, r *http.Request)   { write(w, "students_bulk") }
func (fakeSchool) ListTeachers(w http.ResponseWriter, r *http.Request)     { write(w, "teachers") }
func (fakeSchool) CreateTeacher(w http.ResponseWriter, r *http.Request)    { write(w, "teachers_create") }
func (fakeSchool) ListAssignments(w http.ResponseWriter, r *http.Request)  { write(w, "assignments") }
func (fakeSchool) CreateAssignment(w http.ResponseWriter, r *http.Request) { write(w, "assignments_create") }
func (fakeSchool) ListExams(w http.ResponseWriter, r *http.Request)        { write(w, "exams") }
func (fakeSchool) ListFees(w http.ResponseWriter, r *http.Request)         { write(w, "fees") }
func (fakeSchool) PayFee(w http.ResponseWriter, r *http.Request)           { write(w, "fees_pay") }
func (fakeSchool) RecordAttendance(w http.ResponseWriter, r *http.Request) { write(w, "attendance") }
func (fakeSchool) Stats(w http.ResponseWriter, r *http.Request)            { write(w, "stats") }
func (fakeSchool) SendEmail(w http.ResponseWriter, r *http.Request)        { write(w, "email") }

// tagMW records which guard a request passed through.
func tagMW(tag string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Add("X-Guard", tag)
			next.ServeHTTP(w, r)
		})
	}
}

func denyMW(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})
}

func baseDeps() Deps {
	return Deps{
		Health:  fakeHealth{},
		Auth:    fakeAuth{},
		Users:   fakeUsers{},
		School:  fakeSchool{},
		AuthMW:  tagMW("auth"),
		AdminMW: tagMW("admin"),
		StaffMW: tagMW("staff"),
		Metrics: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { write(w, "metrics") }),
	}
}

func TestNew_RequiresDependencies(t *testing.T) {
	mutate := map[string]func(*Deps){
		"health": func(d *Deps) { d.Health = nil },
		"auth":   func(d *Deps) { d.Auth = nil },
		"users":  func(d *Deps) { d.Users = nil },
		"school": func(d *Deps) { d.School = nil },
		"authMW": func(d *Deps) { d.AuthMW = nil },
		"admin":  func(d *Deps) { d.AdminMW = nil },
		"staff":  func(d *Deps) { d.StaffMW = nil },
	}
	for name, fn := range mutate {
		t.Run(name, func(t *testing.T) {
			d := baseDeps()
			fn(&d)
			_, err := New(d)
			assert.Error(t, err)
		})
	}
}

func TestRoutes_BodiesAndGuards(t *testing.T) {
	h, err := New(baseDeps())
	require.NoError(t, err)

	cases := []struct {
		method string
		path   string
		body   string
		guards []string
	}{
		{http.MethodGet, "/", "root", nil},
		{http.MethodGet, "/health", "healthz", nil},
		{http.MethodGet, "/healthz", "healthz", nil},
		{http.MethodGet, "/readyz", "readyz", nil},
		{http.MethodGet, "/metrics", "metrics", nil},
		{http.MethodPost, "/api/auth/login", "login", nil},
		{http.MethodGet, "/api/auth/me", "me", []string{"auth"}},
		{http.MethodGet, "/api/users", "users_list", []string{"auth", "admin"}},
		{http.MethodPost, "/api/users", "users_create", []string{"auth", "admin"}},
		{http.MethodPut, "/api/users/u1", "users_update", []string{"auth", "admin"}},
		{http.MethodGet, "/api/audit-logs", "audit_logs", []string{"auth", "admin"}},
		{http.MethodPost, "/api/teachers", "teachers_create", []string{"auth", "admin"}},
		{http.MethodGet, "/api/teachers", "teachers", []string{"auth"}},
		{http.MethodGet, "/api/students", "students", []string{"auth"}},
		{http.MethodGet, "/api/assignments", "assignments", []string{"auth"}},
		{http.MethodGet, "/api/exams", "exams", []string{"auth"}},
		{http.MethodGet, "/api/fees", "fees", []string{"auth"}},
		{http.MethodGet, "/api/stats", "stats", []string{"auth"}},
		{http.MethodPost, "/api/students/bulk", "students_bulk", []string{"auth", "staff"}},
		{http.MethodPost, "/api/assignments", "assignments_create", []string{"auth", "staff"}},
		{http.MethodPost, "/api/fees/pay", "fees_pay", []string{"auth", "staff"}},
		{http.MethodPost, "/api/attendance", "attendance", []string{"auth", "staff"}},
		{http.MethodPost, "/api/notifications/email", "email", []string{"auth", "staff"}},
	}
	for _, tc := range cases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, httptest.NewRequest(tc.method, tc.path, nil))
			assert.Equal(t, http.StatusOK, rr.Code)
			assert.Equal(t, tc.body, rr.Body.String())
			assert.Equal(t, tc.guards, rr.Header().Values("X-Guard"))
			assert.NotEmpty(t, rr.Header().Get("X-Request-Id"))
		})
	}
}

func TestRoutes_GuardCanReject(t *testing.T) {
	d := baseDeps()
	d.AdminMW = denyMW
	h, err := New(d)
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/users", nil))
	assert.Equal(t, http.StatusForbidden, rr.Code)

	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/students", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestLoginRateMW_OnlyOnLogin(t *testing.T) {
	d := baseDeps()
	d.LoginRateMW = tagMW("login-rate")
	h, err := New(d)
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/auth/login", nil))
	assert.Equal(t, []string{"login-rate"}, rr.Header().Values("X-Guard"))

	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/auth/me", nil))
	assert.Equal(t, []string{"auth"}, rr.Header().Values("X-Guard"))
}

func TestNotFoundAndMethodNotAllowed(t *testing.T) {
	h, err := New(baseDeps())
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/nope", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "route_not_found")

	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodDelete, "/api/users", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

func TestCORS_ReflectsConfiguredOrigin(t *testing.T) {
	d := baseDeps()
	d.CORSOrigins = []string{"http://localhost:5173"}
	h, err := New(d)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodOptions, "/api/auth/login", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	assert.Equal(t, "http://localhost:5173", rr.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rr.Header().Get("Access-Control-Allow-Credentials"))

	req = httptest.NewRequest(http.MethodOptions, "/api/auth/login", nil)
	req.Header.Set("Origin", "http://evil.test")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Empty(t, rr.Header().Get("Access-Control-Allow-Origin"))
}

func TestIPRateLimit(t *testing.T) {
	d := baseDeps()
	d.IPRateLimit = 2
	h, err := New(d)
	require.NoError(t, err)

	var last *httptest.ResponseRecorder
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
		req.RemoteAddr = "192.0.2.10:1234"
		last = httptest.NewRecorder()
		h.ServeHTTP(last, req)
	}
	assert.Equal(t, http.StatusTooManyRequests, last.Code)
	assert.True(t, strings.Contains(last.Body.String(), "rate_limited"))
}
