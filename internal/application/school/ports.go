package school

import (
	"context"

	"github.com/baechuer/edusphere/internal/domain"
)

/*
Store
-----
Persistence port for the school records (students, staff, coursework,
fees, attendance). Bulk writes must be atomic.
*/
type Store interface {
	ListStudents(ctx context.Context) ([]domain.Student, error)
	UpsertStudents(ctx context.Context, students []domain.Student) error

	ListTeachers(ctx context.Context) ([]domain.Teacher, error)
	CreateTeacher(ctx context.Context, t domain.Teacher) error

	ListAssignments(ctx context.Context) ([]domain.Assignment, error)
	CreateAssignment(ctx context.Context, a domain.Assignment) error

	ListExamResults(ctx context.Context) ([]domain.ExamResult, error)

	ListFees(ctx context.Context) ([]domain.Fee, error)
	// MarkFeePaid returns ErrInvoiceNotFound when no row matched.
	MarkFeePaid(ctx context.Context, invoiceID string) error

	UpsertAttendance(ctx context.Context, records []domain.AttendanceRecord) error

	Stats(ctx context.Context) (domain.Stats, error)
}

// EventPublisher sends notification requests to the broker.
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, payload any) error
}
