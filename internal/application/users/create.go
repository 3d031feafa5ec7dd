package users

import (
	"context"
	"fmt"
	"strings"

	"github.com/baechuer/edusphere/internal/domain"
)

type CreateUserInput struct {
	Name      string
	Email     string
	Role      string
	Password  string
	AvatarURL string
	Status    string
}

// CreateUser stores a new account and records USER_CREATED.
func (s *Service) CreateUser(ctx context.Context, actor string, in CreateUserInput) (domain.User, error) {
	email := strings.TrimSpace(in.Email)
	if email == "" {
		return domain.User{}, domain.ErrMissingField("email")
	}

	role := strings.ToUpper(strings.TrimSpace(in.Role))
	if role == "" {
		role = string(domain.RoleStudent)
	}
	if !domain.IsValidRole(role) {
		return domain.User{}, domain.ErrInvalidRole(in.Role)
	}

	status := strings.ToUpper(strings.TrimSpace(in.Status))
	if status == "" {
		status = string(domain.StatusActive)
	}
	if !domain.IsValidStatus(status) {
		return domain.User{}, domain.ErrInvalidStatus(in.Status)
	}

	password := in.Password
	if password == "" {
		password = domain.DefaultPassword
	}
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return domain.User{}, err
	}

	u, err := s.users.Create(ctx, domain.User{
		ID:           s.newID(),
		Name:         strings.TrimSpace(in.Name),
		Email:        email,
		Role:         role,
		PasswordHash: hash,
		AvatarURL:    in.AvatarURL,
		Status:       status,
	})
	if err != nil {
		return domain.User{}, err
	}

	s.audit.Record(ctx, domain.AuditEntry{
		Action:         domain.AuditUserCreated,
		TargetUserID:   u.ID,
		TargetUserName: u.Name,
		PerformedBy:    actor,
		Details:        fmt.Sprintf("Role: %s", u.Role),
	})

	return u, nil
}
