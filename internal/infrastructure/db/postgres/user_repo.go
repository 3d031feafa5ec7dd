package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/baechuer/edusphere/internal/domain"
	"github.com/baechuer/edusphere/internal/logger"
)

type UserRepo struct {
	db *sql.DB
}

func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{db: db}
}

// ---------- helpers ----------

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func toDomainUser(ur userRow) domain.User {
	return domain.User{
		ID:           ur.ID,
		Name:         ur.Name,
		Email:        ur.Email,
		Role:         ur.Role,
		PasswordHash: ur.PasswordHash,
		AvatarURL:    ur.AvatarURL,
		Status:       ur.Status,
		Version:      ur.Version,
		UpdatedAt:    ur.UpdatedAt,
	}
}

func (r *UserRepo) getOne(ctx context.Context, q string, arg string) (domain.User, error) {
	ur, err := scanUser(r.db.QueryRowContext(ctx, q, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, domain.ErrUserNotFound()
		}
		return domain.User{}, domain.ErrDBUnavailable(err)
	}
	return toDomainUser(ur), nil
}

// ---------- reads ----------

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	email = normalizeEmail(email)
	if email == "" {
		return domain.User{}, domain.ErrUserNotFound()
	}
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1 LIMIT 1`, email)
}

func (r *UserRepo) GetByID(ctx context.Context, id string) (domain.User, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return domain.User{}, domain.ErrUserNotFound()
	}
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1 LIMIT 1`, id)
}

func (r *UserRepo) List(ctx context.Context) ([]domain.User, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at, id`)
	if err != nil {
		return nil, domain.ErrDBUnavailable(err)
	}
	defer rows.Close()

	out := []domain.User{}
	for rows.Next() {
		ur, err := scanUser(rows)
		if err != nil {
			return nil, domain.ErrDBUnavailable(err)
		}
		out = append(out, toDomainUser(ur))
	}
	if err := rows.Err(); err != nil {
		return nil, domain.ErrDBUnavailable(err)
	}
	return out, nil
}

func (r *UserRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM users`).Scan(&n); err != nil {
		return 0, domain.ErrDBUnavailable(err)
	}
	return n, nil
}

// ---------- writes ----------

func (r *UserRepo) Create(ctx context.Context, u domain.User) (domain.User, error) {
	u.Email = normalizeEmail(u.Email)
	if u.ID == "" {
		return domain.User{}, domain.ErrMissingField("id")
	}
	if u.Email == "" {
		return domain.User{}, domain.ErrMissingField("email")
	}
	if u.PasswordHash == "" {
		return domain.User{}, domain.ErrMissingField("password_hash")
	}

	const q = `
INSERT INTO users (id, name, email, role, password_hash, avatar_url, status)
VALUES ($1,$2,$3,$4,$5,$6,$7)
RETURNING ` + userColumns

	ur, err := scanUser(r.db.QueryRowContext(ctx, q,
		u.ID, u.Name, u.Email, u.Role, u.PasswordHash, u.AvatarURL, u.Status,
	))
	if err != nil {
		if isUniqueViolation(err) {
			return domain.User{}, domain.ErrEmailAlreadyExists()
		}
		return domain.User{}, domain.ErrDBUnavailable(err)
	}
	return toDomainUser(ur), nil
}

// Update applies the patch only if the row still carries expectedVersion.
func (r *UserRepo) Update(ctx context.Context, id string, expectedVersion int64, p domain.UserPatch) (domain.User, error) {
	var email *string
	if p.Email != nil {
		e := normalizeEmail(*p.Email)
		email = &e
	}

	const q = `
UPDATE users SET
	name          = COALESCE($2, name),
	email         = COALESCE($3, email),
	avatar_url    = COALESCE($4, avatar_url),
	status        = COALESCE($5, status),
	password_hash = COALESCE($6, password_hash),
	version       = version + 1,
	updated_at    = now()
WHERE id = $1 AND version = $7
RETURNING ` + userColumns

	ur, err := scanUser(r.db.QueryRowContext(ctx, q,
		id, p.Name, email, p.AvatarURL, p.Status, p.PasswordHash, expectedVersion,
	))
	if err == nil {
		return toDomainUser(ur), nil
	}
	if isUniqueViolation(err) {
		return domain.User{}, domain.ErrEmailAlreadyExists()
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return domain.User{}, domain.ErrDBUnavailable(err)
	}

	// No row matched: either the user is gone or the version moved on.
	var exists bool
	if err := r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`, id).Scan(&exists); err != nil {
		return domain.User{}, domain.ErrDBUnavailable(err)
	}
	if !exists {
		return domain.User{}, domain.ErrUserNotFound()
	}
	return domain.User{}, domain.ErrUserModified()
}

// UpsertAdmin resets the password hash of the account holding u.Email, or
// inserts it. u.ID is only a preferred id: when another account already owns
// it (an admin renamed its email, or the configured email changed) the row
// gets a fresh id instead.
func (r *UserRepo) UpsertAdmin(ctx context.Context, u domain.User) error {
	email := normalizeEmail(u.Email)

	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
UPDATE users SET
	password_hash = $2,
	version       = version + 1,
	updated_at    = now()
WHERE email = $1`, email, u.PasswordHash)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n > 0 {
			return nil
		}

		id := u.ID
		var taken bool
		if err := tx.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`, id).Scan(&taken); err != nil {
			return err
		}
		if taken {
			id = uuid.NewString()
			logger.Logger.Warn().Str("preferred_id", u.ID).Str("id", id).Msg("admin id in use by another account")
		}

		_, err = tx.ExecContext(ctx, `
INSERT INTO users (id, name, email, role, password_hash, avatar_url, status)
VALUES ($1,$2,$3,$4,$5,$6,$7)
ON CONFLICT (email) DO UPDATE SET
	password_hash = EXCLUDED.password_hash,
	version       = users.version + 1,
	updated_at    = now()`,
			id, u.Name, email, u.Role, u.PasswordHash, u.AvatarURL, u.Status,
		)
		return err
	})
	if err != nil {
		return domain.ErrDBUnavailable(err)
	}
	return nil
}
