package auth

import (
	"time"

	"github.com/baechuer/edusphere/internal/domain"
)

const DefaultTokenTTL = 24 * time.Hour

type Service struct {
	users  UserReader
	hasher PasswordHasher
	signer TokenSigner

	tokenTTL time.Duration
	now      func() time.Time
}

type Config struct {
	TokenTTL time.Duration
}

func NewService(users UserReader, hasher PasswordHasher, signer TokenSigner, cfg Config) *Service {
	ttl := cfg.TokenTTL
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &Service{
		users:    users,
		hasher:   hasher,
		signer:   signer,
		tokenTTL: ttl,
		now:      time.Now,
	}
}

type LoginResult struct {
	User      domain.User
	Token     string
	ExpiresAt time.Time
}

func (s *Service) TokenTTL() time.Duration { return s.tokenTTL }
