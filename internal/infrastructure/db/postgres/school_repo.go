package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/baechuer/edusphere/internal/domain"
)

type SchoolRepo struct {
	db *sql.DB
}

func NewSchoolRepo(db *sql.DB) *SchoolRepo {
	return &SchoolRepo{db: db}
}

// ---------- students ----------

func (r *SchoolRepo) ListStudents(ctx context.Context) ([]domain.Student, error) {
	const q = `
SELECT id, user_id, name, grade, section, guardian_name, contact, attendance_rate, fees_status
FROM students
ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, domain.ErrDBUnavailable(err)
	}
	defer rows.Close()

	out := []domain.Student{}
	for rows.Next() {
		var (
			s      domain.Student
			userID sql.NullString
		)
		if err := rows.Scan(&s.ID, &userID, &s.Name, &s.Grade, &s.Section, &s.GuardianName, &s.Contact, &s.AttendanceRate, &s.FeesStatus); err != nil {
			return nil, domain.ErrDBUnavailable(err)
		}
		if userID.Valid {
			s.UserID = &userID.String
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.ErrDBUnavailable(err)
	}
	return out, nil
}

// UpsertStudents writes the whole batch or nothing.
func (r *SchoolRepo) UpsertStudents(ctx context.Context, students []domain.Student) error {
	const q = `
INSERT INTO students (id, user_id, name, grade, section, guardian_name, contact, attendance_rate, fees_status)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
ON CONFLICT (id) DO UPDATE SET
	user_id         = EXCLUDED.user_id,
	name            = EXCLUDED.name,
	grade           = EXCLUDED.grade,
	section         = EXCLUDED.section,
	guardian_name   = EXCLUDED.guardian_name,
	contact         = EXCLUDED.contact,
	attendance_rate = EXCLUDED.attendance_rate,
	fees_status     = EXCLUDED.fees_status`

	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, q)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for _, s := range students {
			if _, err := stmt.ExecContext(ctx,
				s.ID, s.UserID, s.Name, s.Grade, s.Section, s.GuardianName, s.Contact, s.AttendanceRate, s.FeesStatus,
			); err != nil {
				return fmt.Errorf("upsert student %s: %w", s.ID, err)
			}
		}
		return nil
	})
	if err != nil {
		return domain.ErrDBUnavailable(err)
	}
	return nil
}

// ---------- teachers ----------

func (r *SchoolRepo) ListTeachers(ctx context.Context) ([]domain.Teacher, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, subject, email, classes FROM teachers ORDER BY id`)
	if err != nil {
		return nil, domain.ErrDBUnavailable(err)
	}
	defer rows.Close()

	out := []domain.Teacher{}
	for rows.Next() {
		var (
			t       domain.Teacher
			classes string
		)
		if err := rows.Scan(&t.ID, &t.Name, &t.Subject, &t.Email, &classes); err != nil {
			return nil, domain.ErrDBUnavailable(err)
		}
		t.Classes = decodeClasses(classes)
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.ErrDBUnavailable(err)
	}
	return out, nil
}

func (r *SchoolRepo) CreateTeacher(ctx context.Context, t domain.Teacher) error {
	classes, err := json.Marshal(t.Classes)
	if err != nil {
		return domain.ErrInternal(err)
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO teachers (id, name, subject, email, classes) VALUES ($1,$2,$3,$4,$5)`,
		t.ID, t.Name, t.Subject, t.Email, string(classes),
	)
	if err != nil {
		return domain.ErrDBUnavailable(err)
	}
	return nil
}

// decodeClasses tolerates empty or malformed legacy values.
func decodeClasses(raw string) []string {
	out := []string{}
	if raw == "" {
		return out
	}
	if err := json.Unmarshal([]byte(raw), &out); err != nil || out == nil {
		return []string{}
	}
	return out
}

// ---------- assignments / exams ----------

func (r *SchoolRepo) ListAssignments(ctx context.Context) ([]domain.Assignment, error) {
	const q = `
SELECT id, class_id, title, description, due_date, subject, status, attachment_name
FROM assignments
ORDER BY due_date, id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, domain.ErrDBUnavailable(err)
	}
	defer rows.Close()

	out := []domain.Assignment{}
	for rows.Next() {
		var (
			a   domain.Assignment
			att sql.NullString
		)
		if err := rows.Scan(&a.ID, &a.ClassID, &a.Title, &a.Description, &a.DueDate, &a.Subject, &a.Status, &att); err != nil {
			return nil, domain.ErrDBUnavailable(err)
		}
		if att.Valid {
			a.AttachmentName = &att.String
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.ErrDBUnavailable(err)
	}
	return out, nil
}

func (r *SchoolRepo) CreateAssignment(ctx context.Context, a domain.Assignment) error {
	const q = `
INSERT INTO assignments (id, class_id, title, description, due_date, subject, status, attachment_name)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`
	_, err := r.db.ExecContext(ctx, q,
		a.ID, a.ClassID, a.Title, a.Description, a.DueDate, a.Subject, a.Status, a.AttachmentName,
	)
	if err != nil {
		return domain.ErrDBUnavailable(err)
	}
	return nil
}

func (r *SchoolRepo) ListExamResults(ctx context.Context) ([]domain.ExamResult, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, student_id, student_name, subject, score, total, grade FROM exams ORDER BY id`)
	if err != nil {
		return nil, domain.ErrDBUnavailable(err)
	}
	defer rows.Close()

	out := []domain.ExamResult{}
	for rows.Next() {
		var e domain.ExamResult
		if err := rows.Scan(&e.ID, &e.StudentID, &e.StudentName, &e.Subject, &e.Score, &e.Total, &e.Grade); err != nil {
			return nil, domain.ErrDBUnavailable(err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.ErrDBUnavailable(err)
	}
	return out, nil
}

// ---------- fees ----------

func (r *SchoolRepo) ListFees(ctx context.Context) ([]domain.Fee, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT invoice_id, student_id, name, grade, amount, due_date, fees_status FROM fees ORDER BY invoice_id`)
	if err != nil {
		return nil, domain.ErrDBUnavailable(err)
	}
	defer rows.Close()

	out := []domain.Fee{}
	for rows.Next() {
		var f domain.Fee
		if err := rows.Scan(&f.InvoiceID, &f.StudentID, &f.Name, &f.Grade, &f.Amount, &f.DueDate, &f.FeesStatus); err != nil {
			return nil, domain.ErrDBUnavailable(err)
		}
		out = append(out, f)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.ErrDBUnavailable(err)
	}
	return out, nil
}

func (r *SchoolRepo) MarkFeePaid(ctx context.Context, invoiceID string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE fees SET fees_status = 'PAID' WHERE invoice_id = $1`, invoiceID)
	if err != nil {
		return domain.ErrDBUnavailable(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return domain.ErrDBUnavailable(err)
	}
	if n == 0 {
		return domain.ErrInvoiceNotFound()
	}
	return nil
}

// ---------- attendance ----------

func (r *SchoolRepo) UpsertAttendance(ctx context.Context, records []domain.AttendanceRecord) error {
	const q = `
INSERT INTO attendance (id, date, student_id, status)
VALUES ($1,$2,$3,$4)
ON CONFLICT (id) DO UPDATE SET status = EXCLUDED.status`

	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, q)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for _, rec := range records {
			if _, err := stmt.ExecContext(ctx, rec.ID, rec.Date, rec.StudentID, rec.Status); err != nil {
				return fmt.Errorf("upsert attendance %s: %w", rec.ID, err)
			}
		}
		return nil
	})
	if err != nil {
		return domain.ErrDBUnavailable(err)
	}
	return nil
}

// ---------- stats ----------

func (r *SchoolRepo) Stats(ctx context.Context) (domain.Stats, error) {
	const q = `
SELECT
	(SELECT count(*) FROM students),
	(SELECT count(*) FROM teachers),
	(SELECT COALESCE(SUM(amount), 0) FROM fees WHERE fees_status = 'PAID')`

	var s domain.Stats
	if err := r.db.QueryRowContext(ctx, q).Scan(&s.Students, &s.Teachers, &s.Revenue); err != nil {
		return domain.Stats{}, domain.ErrDBUnavailable(err)
	}
	return s, nil
}
