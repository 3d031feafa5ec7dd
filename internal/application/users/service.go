package users

import (
	"time"

	"github.com/google/uuid"
)

const MaxAuditLogLimit = 100

type Service struct {
	users   UserStore
	logs    AuditReader
	audit   AuditRecorder
	hasher  PasswordHasher
	revoker RevocationStore

	tokenTTL time.Duration
	newID    func() string
}

type Config struct {
	// TokenTTL bounds how long a revocation entry must live.
	TokenTTL time.Duration
}

func NewService(users UserStore, logs AuditReader, rec AuditRecorder, hasher PasswordHasher, cfg Config) *Service {
	return &Service{
		users:    users,
		logs:     logs,
		audit:    rec,
		hasher:   hasher,
		tokenTTL: cfg.TokenTTL,
		newID:    uuid.NewString,
	}
}

// WithRevocation enables revoke-on-deactivate.
func (s *Service) WithRevocation(r RevocationStore) *Service {
	s.revoker = r
	return s
}
