package postgres

import (
	"context"
	"database/sql"

	"github.com/baechuer/edusphere/internal/domain"
)

// AuditRepo is append-only: it has no update or delete path.
type AuditRepo struct {
	db *sql.DB
}

func NewAuditRepo(db *sql.DB) *AuditRepo {
	return &AuditRepo{db: db}
}

func (r *AuditRepo) Append(ctx context.Context, e domain.AuditEntry) error {
	const q = `
INSERT INTO audit_logs (id, action, target_user_id, target_user_name, performed_by, created_at, details)
VALUES ($1,$2,$3,$4,$5,$6,$7)`

	_, err := r.db.ExecContext(ctx, q,
		e.ID, string(e.Action), e.TargetUserID, e.TargetUserName, e.PerformedBy, e.Timestamp, e.Details,
	)
	if err != nil {
		return domain.ErrDBUnavailable(err)
	}
	return nil
}

func (r *AuditRepo) Recent(ctx context.Context, limit int) ([]domain.AuditEntry, error) {
	const q = `
SELECT id, action, target_user_id, target_user_name, performed_by, created_at, details
FROM audit_logs
ORDER BY created_at DESC, id DESC
LIMIT $1`

	rows, err := r.db.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, domain.ErrDBUnavailable(err)
	}
	defer rows.Close()

	out := []domain.AuditEntry{}
	for rows.Next() {
		var (
			e      domain.AuditEntry
			action string
		)
		if err := rows.Scan(&e.ID, &action, &e.TargetUserID, &e.TargetUserName, &e.PerformedBy, &e.Timestamp, &e.Details); err != nil {
			return nil, domain.ErrDBUnavailable(err)
		}
		e.Action = domain.AuditAction(action)
		e.Timestamp = e.Timestamp.UTC()
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.ErrDBUnavailable(err)
	}
	return out, nil
}
