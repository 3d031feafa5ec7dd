package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/baechuer/edusphere/internal/domain"
)

// UserRepo is an in-process user store with the same CAS semantics as the
// Postgres repository.
type UserRepo struct {
	mu      sync.RWMutex
	byID    map[string]domain.User
	byEmail map[string]string // email -> userID
	order   []string
}

func NewUserRepo() *UserRepo {
	return &UserRepo{
		byID:    make(map[string]domain.User),
		byEmail: make(map[string]string),
	}
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[normalizeEmail(email)]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound()
	}
	return r.byID[id], nil
}

func (r *UserRepo) GetByID(ctx context.Context, id string) (domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound()
	}
	return u, nil
}

func (r *UserRepo) Create(ctx context.Context, u domain.User) (domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u.Email = normalizeEmail(u.Email)
	if _, exists := r.byEmail[u.Email]; exists {
		return domain.User{}, domain.ErrEmailAlreadyExists()
	}
	if u.ID == "" {
		return domain.User{}, domain.ErrInternal(nil)
	}

	u.Version = 1
	u.UpdatedAt = time.Now().UTC()
	r.byID[u.ID] = u
	r.byEmail[u.Email] = u.ID
	r.order = append(r.order, u.ID)
	return u, nil
}

func (r *UserRepo) List(ctx context.Context) ([]domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.User, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id])
	}
	return out, nil
}

func (r *UserRepo) Update(ctx context.Context, id string, expectedVersion int64, p domain.UserPatch) (domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byID[id]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound()
	}
	if u.Version != expectedVersion {
		return domain.User{}, domain.ErrUserModified()
	}

	if p.Email != nil && normalizeEmail(*p.Email) != u.Email {
		email := normalizeEmail(*p.Email)
		if _, taken := r.byEmail[email]; taken {
			return domain.User{}, domain.ErrEmailAlreadyExists()
		}
		delete(r.byEmail, u.Email)
		u.Email = email
		r.byEmail[u.Email] = id
	}
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.AvatarURL != nil {
		u.AvatarURL = *p.AvatarURL
	}
	if p.Status != nil {
		u.Status = *p.Status
	}
	if p.PasswordHash != nil {
		u.PasswordHash = *p.PasswordHash
	}

	u.Version++
	u.UpdatedAt = time.Now().UTC()
	r.byID[id] = u
	return u, nil
}

// Emails are stored trimmed and lowercased, as in postgres.UserRepo.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Count is used by bootstrap seeding.
func (r *UserRepo) Count(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID), nil
}
