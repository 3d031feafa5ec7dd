package auth

import (
	"context"
	"strings"

	"github.com/baechuer/edusphere/internal/domain"
)

// Verify checks a raw session token and returns its claims.
func (s *Service) Verify(token string) (TokenClaims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return TokenClaims{}, domain.ErrTokenMissing()
	}
	claims, err := s.signer.VerifySessionToken(token)
	if err != nil {
		return TokenClaims{}, domain.ErrTokenInvalid()
	}
	return claims, nil
}

// ResolveActor names whoever performed a mutating request, for audit entries.
// It accepts either a bare token or an Authorization header value and never fails.
func (s *Service) ResolveActor(_ context.Context, raw string) string {
	tok := stripBearer(raw)
	if tok == "" {
		return domain.ActorSystem
	}
	claims, err := s.Verify(tok)
	if err != nil {
		return domain.ActorUnknownAdmin
	}
	if claims.Email == "" {
		return domain.ActorAdmin
	}
	return claims.Email
}

// Me returns the stored user behind a verified token.
func (s *Service) Me(ctx context.Context, userID string) (domain.User, error) {
	if strings.TrimSpace(userID) == "" {
		return domain.User{}, domain.ErrTokenInvalid()
	}
	return s.users.GetByID(ctx, userID)
}

func stripBearer(raw string) string {
	raw = strings.TrimSpace(raw)
	if len(raw) >= 7 && strings.EqualFold(raw[:7], "bearer ") {
		return strings.TrimSpace(raw[7:])
	}
	if strings.EqualFold(raw, "bearer") {
		return ""
	}
	return raw
}
