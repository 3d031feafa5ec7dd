package users

import (
	"context"
	"time"

	"github.com/baechuer/edusphere/internal/audit"
	"github.com/baechuer/edusphere/internal/domain"
)

/*
UserStore
---------
Persistence port for user accounts.
Update is a compare-and-swap on Version: it returns ErrUserModified when the
row changed since it was read and ErrUserNotFound when it is gone.
*/
type UserStore interface {
	Create(ctx context.Context, u domain.User) (domain.User, error)
	GetByID(ctx context.Context, id string) (domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Update(ctx context.Context, id string, expectedVersion int64, patch domain.UserPatch) (domain.User, error)
}

// AuditReader returns the newest entries first.
type AuditReader interface {
	Recent(ctx context.Context, limit int) ([]domain.AuditEntry, error)
}

type AuditRecorder interface {
	Record(ctx context.Context, e domain.AuditEntry) audit.RecordResult
}

type PasswordHasher interface {
	Hash(password string) (string, error)
}

/*
RevocationStore
---------------
Optional: marks every token of a deactivated user as unusable until
the token TTL has passed.
*/
type RevocationStore interface {
	Revoke(ctx context.Context, userID string, ttl time.Duration) error
	Clear(ctx context.Context, userID string) error
}
