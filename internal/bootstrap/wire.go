package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"github.com/baechuer/edusphere/internal/application/auth"
	"github.com/baechuer/edusphere/internal/application/school"
	"github.com/baechuer/edusphere/internal/application/users"
	"github.com/baechuer/edusphere/internal/audit"
	"github.com/baechuer/edusphere/internal/config"
	"github.com/baechuer/edusphere/internal/domain"
	"github.com/baechuer/edusphere/internal/infrastructure/db/postgres"
	"github.com/baechuer/edusphere/internal/infrastructure/memory"
	rabbitmq_pub "github.com/baechuer/edusphere/internal/infrastructure/messaging/rabbitmq"
	"github.com/baechuer/edusphere/internal/infrastructure/redis"
	"github.com/baechuer/edusphere/internal/infrastructure/security"
	"github.com/baechuer/edusphere/internal/logger"
	http_handlers "github.com/baechuer/edusphere/internal/transport/http/handlers"
	"github.com/baechuer/edusphere/internal/transport/http/middleware"
	"github.com/baechuer/edusphere/internal/transport/http/response"
	"github.com/baechuer/edusphere/internal/transport/http/router"
)

/*
========================
 Public entry (prod)
========================
*/

func NewServer() (*http.Server, func(), error) {
	return newServer(defaultDeps())
}

// NewServerWithDeps allows injecting dependencies for testing
func NewServerWithDeps(deps Deps) (*http.Server, func(), error) {
	return newServer(deps)
}

/*
========================
 Dependency injection
========================
*/

type Deps struct {
	LoadConfig func() (*config.Config, error)

	NewDB func(dsn string, debug bool) (*sql.DB, error)

	// Migrate defaults to postgres.Migrate.
	Migrate func(ctx context.Context, db *sql.DB) error

	NewRedis func(addr, password string, db int) *redis.Client

	NewPublisher func(url, exchange string) (Publisher, error)

	NewRouter func(router.Deps) (http.Handler, error)
}

type Publisher interface {
	Publish(ctx context.Context, routingKey string, payload any) error
	Close() error
}

// revocations is what both the user service and the auth middleware need.
type revocations interface {
	users.RevocationStore
	middleware.RevocationChecker
}

/*
========================
 Core bootstrap logic
========================
*/

func newServer(deps Deps) (*http.Server, func(), error) {
	// 0) config
	cfg, err := deps.LoadConfig()
	if err != nil {
		return nil, nil, err
	}

	// 1) db
	db, err := deps.NewDB(cfg.DatabaseURL, cfg.DBDebug)
	if err != nil {
		return nil, nil, fmt.Errorf("bootstrap: db: %w", err)
	}
	cleanupFns := []func(){
		func() { _ = db.Close() },
	}
	fail := func(err error) (*http.Server, func(), error) {
		runCleanup(cleanupFns)
		return nil, nil, err
	}

	migrate := deps.Migrate
	if migrate == nil {
		migrate = postgres.Migrate
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := migrate(ctx, db); err != nil {
		return fail(fmt.Errorf("bootstrap: migrate: %w", err))
	}

	userRepo := postgres.NewUserRepo(db)
	auditRepo := postgres.NewAuditRepo(db)
	schoolRepo := postgres.NewSchoolRepo(db)

	// 2) security
	hasher := security.NewBcryptHasher(cfg.BcryptCost)
	signer := security.NewJWTSigner(cfg.JWTSecret, cfg.JWTIssuer)
	logger.Logger.Info().Str("issuer", cfg.JWTIssuer).Dur("token_ttl", cfg.TokenTTL).Msg("jwt signer ready")

	// 3) seed
	if err := postgres.EnsureDefaultAdmin(ctx, userRepo, hasher, cfg.DefaultAdminEmail, cfg.DefaultAdminPassword); err != nil {
		return fail(fmt.Errorf("bootstrap: default admin: %w", err))
	}
	if cfg.SeedDemoData {
		seeded, err := postgres.SeedDemoData(ctx, db, hasher)
		if err != nil {
			return fail(fmt.Errorf("bootstrap: demo data: %w", err))
		}
		if seeded {
			logger.Logger.Info().Msg("[seed] demo data inserted")
		}
	}

	// 4) redis (best-effort)
	var redisCli *redis.Client
	if cfg.RedisAddr != "" && deps.NewRedis != nil {
		c := deps.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err := c.Ping(ctx); err != nil {
			logger.Logger.Warn().Err(err).Msg("redis unavailable; login throttle off, revocations in memory")
			_ = c.Close()
		} else {
			logger.Logger.Info().Str("addr", cfg.RedisAddr).Msg("redis connected")
			redisCli = c
			cleanupFns = append(cleanupFns, func() { _ = c.Close() })
		}
	}

	// 5) publisher
	var pub Publisher
	if cfg.RabbitURL == "" || deps.NewPublisher == nil {
		logger.Logger.Info().Msg("rabbitmq not configured; using noop publisher")
		pub = memory.NewNoopPublisher()
	} else {
		p, err := deps.NewPublisher(cfg.RabbitURL, cfg.RabbitExchange)
		switch {
		case err == nil:
			pub = p
		case cfg.Env == "dev":
			logger.Logger.Warn().Err(err).Msg("rabbitmq unavailable; using noop publisher")
			pub = memory.NewNoopPublisher()
		default:
			return fail(fmt.Errorf("bootstrap: rabbitmq: %w", err))
		}
	}
	cleanupFns = append(cleanupFns, func() { _ = pub.Close() })

	// 6) services
	auditLog := audit.New(auditRepo, pub, logger.Logger)

	authSvc := auth.NewService(userRepo, hasher, signer, auth.Config{TokenTTL: cfg.TokenTTL})
	userSvc := users.NewService(userRepo, auditRepo, auditLog, hasher, users.Config{TokenTTL: cfg.TokenTTL})
	schoolSvc := school.NewService(schoolRepo, pub)

	var revoked middleware.RevocationChecker
	if cfg.RevokeOnDeactivate {
		var store revocations
		if redisCli != nil {
			store = redis.NewRevocationStore(redisCli)
		} else {
			store = memory.NewRevocationStore()
		}
		userSvc = userSvc.WithRevocation(store)
		revoked = store
	}

	// 7) handlers + middleware
	authMW := middleware.Auth(authSvc, revoked, response.WriteError)
	adminMW := middleware.RequireRole(response.WriteError, domain.RoleAdmin)
	staffMW := middleware.RequireRole(response.WriteError, domain.RoleAdmin, domain.RoleTeacher)

	var loginRL func(http.Handler) http.Handler
	if redisCli != nil && cfg.RLEnabled {
		loginRL = middleware.RateLimitFixedWindow(
			redis.NewFixedWindowLimiter(redisCli),
			middleware.FixedWindowConfig{
				RouteKey: "auth.login",
				Limit:    cfg.LoginRLLimit,
				Window:   cfg.LoginRLWindow,
			},
			response.WriteError,
		)
	}

	ipLimit := 0
	if cfg.RLEnabled {
		ipLimit = cfg.RLLimit
	}

	// 8) router
	mux, err := deps.NewRouter(router.Deps{
		Health: http_handlers.NewHealthHandler(db),
		Auth:   http_handlers.NewAuthHandler(authSvc),
		Users:  http_handlers.NewUsersHandler(userSvc, authSvc),
		School: http_handlers.NewSchoolHandler(schoolSvc),

		AuthMW:      authMW,
		AdminMW:     adminMW,
		StaffMW:     staffMW,
		LoginRateMW: loginRL,

		CORSOrigins:  cfg.CORSOrigins,
		MaxBodyBytes: cfg.MaxBodyBytes,
		IPRateLimit:  ipLimit,
		IPRateWindow: cfg.RLWindow,
	})
	if err != nil {
		return fail(err)
	}

	// 9) server
	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      mux,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	cleanup := func() {
		runCleanup(cleanupFns)
	}

	return srv, cleanup, nil
}

/*
========================
 Default deps (prod)
========================
*/

func defaultDeps() Deps {
	return Deps{
		LoadConfig: config.Load,
		NewDB:      config.NewDB,
		Migrate:    postgres.Migrate,
		NewRedis:   redis.New,
		NewPublisher: func(url, exchange string) (Publisher, error) {
			return rabbitmq_pub.NewPublisher(url, exchange)
		},
		NewRouter: router.New,
	}
}

/*
========================
 helpers
========================
*/

func runCleanup(fns []func()) {
	for i := len(fns) - 1; i >= 0; i-- {
		fns[i]()
	}
}
