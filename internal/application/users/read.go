package users

import (
	"context"

	"github.com/baechuer/edusphere/internal/domain"
)

func (s *Service) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}

// AuditLog returns the newest entries first; limit is clamped to (0, 100].
func (s *Service) AuditLog(ctx context.Context, limit int) ([]domain.AuditEntry, error) {
	if limit <= 0 || limit > MaxAuditLogLimit {
		limit = MaxAuditLogLimit
	}
	return s.logs.Recent(ctx, limit)
}
