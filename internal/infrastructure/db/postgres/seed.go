package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/baechuer/edusphere/internal/domain"
	"github.com/baechuer/edusphere/internal/logger"
)

type SeederHasher interface {
	Hash(password string) (string, error)
}

type AdminUpserter interface {
	UpsertAdmin(ctx context.Context, u domain.User) error
}

const (
	DefaultAdminID     = "u0"
	defaultAdminName   = "System Admin"
	defaultAdminAvatar = "https://api.dicebear.com/7.x/avataaars/svg?seed=Admin"
)

// EnsureDefaultAdmin guarantees a usable ADMIN account. The password hash
// is rewritten on every start so the configured password always works.
func EnsureDefaultAdmin(ctx context.Context, repo AdminUpserter, hasher SeederHasher, email, password string) error {
	hash, err := hasher.Hash(password)
	if err != nil {
		return err
	}
	err = repo.UpsertAdmin(ctx, domain.User{
		ID:           DefaultAdminID,
		Name:         defaultAdminName,
		Email:        email,
		Role:         string(domain.RoleAdmin),
		PasswordHash: hash,
		AvatarURL:    defaultAdminAvatar,
		Status:       string(domain.StatusActive),
	})
	if err != nil {
		return err
	}
	logger.Logger.Info().Str("email", email).Msg("[seed] default admin ensured")
	return nil
}

type demoUser struct {
	id, name, email, role, avatar string
}

var demoUsers = []demoUser{
	{"u2", "Mr. Anderson", "anderson@school.com", "TEACHER", "https://api.dicebear.com/7.x/avataaars/svg?seed=Anderson"},
	{"u3", "Emma Thompson", "emma@student.com", "STUDENT", "https://api.dicebear.com/7.x/avataaars/svg?seed=Emma"},
	{"u4", "Sarah Wilson", "sarah@parent.com", "PARENT", "https://api.dicebear.com/7.x/avataaars/svg?seed=Sarah"},
}

// SeedDemoData fills an empty installation (at most the default admin)
// with sample records. It reports whether anything was seeded.
func SeedDemoData(ctx context.Context, db *sql.DB, hasher SeederHasher) (bool, error) {
	var n int
	if err := db.QueryRowContext(ctx, `SELECT count(*) FROM users`).Scan(&n); err != nil {
		return false, domain.ErrDBUnavailable(err)
	}
	if n > 1 {
		return false, nil
	}

	hash, err := hasher.Hash(domain.DefaultPassword)
	if err != nil {
		return false, err
	}

	err = withTx(ctx, db, func(tx *sql.Tx) error {
		for _, u := range demoUsers {
			if _, err := tx.ExecContext(ctx, `
INSERT INTO users (id, name, email, role, password_hash, avatar_url, status)
VALUES ($1,$2,$3,$4,$5,$6,'ACTIVE')
ON CONFLICT DO NOTHING`, u.id, u.name, u.email, u.role, hash, u.avatar); err != nil {
				return fmt.Errorf("seed user %s: %w", u.id, err)
			}
		}

		for _, stmt := range demoStatements() {
			if _, err := tx.ExecContext(ctx, stmt.q, stmt.args...); err != nil {
				return fmt.Errorf("seed %s: %w", stmt.name, err)
			}
		}
		return nil
	})
	if err != nil {
		return false, domain.ErrDBUnavailable(err)
	}

	logger.Logger.Info().Msg("[seed] demo data seeded")
	return true, nil
}

type seedStmt struct {
	name string
	q    string
	args []any
}

func demoStatements() []seedStmt {
	classes := func(c ...string) string {
		b, _ := json.Marshal(c)
		return string(b)
	}
	const (
		student    = `INSERT INTO students (id, user_id, name, grade, section, guardian_name, contact, attendance_rate, fees_status) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9) ON CONFLICT DO NOTHING`
		teacher    = `INSERT INTO teachers (id, name, subject, email, classes) VALUES ($1,$2,$3,$4,$5) ON CONFLICT DO NOTHING`
		assignment = `INSERT INTO assignments (id, class_id, title, description, due_date, subject, status, attachment_name) VALUES ($1,$2,$3,$4,$5,$6,$7,$8) ON CONFLICT DO NOTHING`
		exam       = `INSERT INTO exams (id, student_id, student_name, subject, score, total, grade) VALUES ($1,$2,$3,$4,$5,$6,$7) ON CONFLICT DO NOTHING`
		fee        = `INSERT INTO fees (invoice_id, student_id, name, grade, amount, due_date, fees_status) VALUES ($1,$2,$3,$4,$5,$6,$7) ON CONFLICT DO NOTHING`
	)
	return []seedStmt{
		{"student s1", student, []any{"s1", "u3", "Emma Thompson", "10", "A", "John Thompson", "+1234567890", 95, "PAID"}},
		{"student s2", student, []any{"s2", nil, "Liam Wilson", "10", "A", "Sarah Wilson", "+1234567891", 88, "PENDING"}},
		{"student s3", student, []any{"s3", nil, "Olivia Martinez", "10", "B", "Carlos Martinez", "+1234567892", 98, "PAID"}},
		{"teacher t1", teacher, []any{"t1", "Mr. Anderson", "Mathematics", "anderson@school.com", classes("10-A", "9-B")}},
		{"teacher t2", teacher, []any{"t2", "Ms. Roberts", "Science", "roberts@school.com", classes("10-B", "8-A")}},
		{"assignment as1", assignment, []any{"as1", "10-A", "Algebra Functions", "Complete Chapter 4 Exercises.", "2023-10-25", "Mathematics", "OPEN", "Algebra.pdf"}},
		{"assignment as2", assignment, []any{"as2", "10-A", "Geometry Proofs", "Write proofs for congruency.", "2023-11-01", "Mathematics", "OPEN", nil}},
		{"exam ex1", exam, []any{"ex1", "s1", "Emma Thompson", "Math", 95, 100, "A"}},
		{"exam ex2", exam, []any{"ex2", "s2", "Liam Wilson", "Math", 78, 100, "B"}},
		{"exam ex3", exam, []any{"ex3", "s3", "Olivia Martinez", "Math", 88, 100, "A-"}},
		{"fee INV-001", fee, []any{"INV-001", "s1", "Emma Thompson", "10", 1250, "2023-11-01", "PAID"}},
		{"fee INV-002", fee, []any{"INV-002", "s2", "Liam Wilson", "10", 1250, "2023-11-01", "PENDING"}},
	}
}
