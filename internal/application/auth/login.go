package auth

import (
	"context"
	"strings"

	"github.com/baechuer/edusphere/internal/domain"
)

// Login authenticates a user and issues a session token.
// Unknown email and wrong password return the same error so callers cannot
// probe which accounts exist. An INACTIVE account is reported before the
// password is compared.
func (s *Service) Login(ctx context.Context, email, password string) (LoginResult, error) {
	email = strings.TrimSpace(email)

	if email == "" || password == "" {
		return LoginResult{}, domain.ErrInvalidCredentials()
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if domain.Is(err, "user_not_found") {
			return LoginResult{}, domain.ErrInvalidCredentials()
		}
		return LoginResult{}, err
	}

	if !u.Active() {
		return LoginResult{}, domain.ErrAccountInactive()
	}

	if err := s.hasher.Compare(u.PasswordHash, password); err != nil {
		return LoginResult{}, domain.ErrInvalidCredentials()
	}

	exp := s.now().Add(s.tokenTTL)
	tok, err := s.signer.SignSessionToken(u.ID, u.Email, u.Role, s.tokenTTL)
	if err != nil {
		return LoginResult{}, err
	}

	return LoginResult{User: u, Token: tok, ExpiresAt: exp}, nil
}
