package school

import (
	"context"
	"strings"
	"unicode"

	"github.com/google/uuid"

	"github.com/baechuer/edusphere/internal/domain"
)

const (
	RoutingKeyEmailRequested = "notification.email.requested"
	mailDomain               = "edusphere.school"
)

type Service struct {
	store Store
	pub   EventPublisher
	newID func(prefix string) string
}

func NewService(store Store, pub EventPublisher) *Service {
	return &Service{
		store: store,
		pub:   pub,
		newID: func(prefix string) string { return prefix + uuid.NewString() },
	}
}

// ---- students ----

func (s *Service) ListStudents(ctx context.Context) ([]domain.Student, error) {
	return s.store.ListStudents(ctx)
}

// ImportStudents upserts the batch in one transaction and returns its size.
func (s *Service) ImportStudents(ctx context.Context, students []domain.Student) (int, error) {
	if len(students) == 0 {
		return 0, domain.ErrInvalidField("students", "must be a non-empty array")
	}
	batch := make([]domain.Student, len(students))
	for i, st := range students {
		if strings.TrimSpace(st.Name) == "" {
			return 0, domain.ErrInvalidField("students", "every student needs a name")
		}
		if st.ID == "" {
			st.ID = s.newID("s-")
		}
		if st.FeesStatus == "" {
			st.FeesStatus = string(domain.FeesPending)
		}
		if !domain.IsValidFeesStatus(st.FeesStatus) {
			return 0, domain.ErrInvalidField("feesStatus", st.FeesStatus)
		}
		batch[i] = st
	}
	if err := s.store.UpsertStudents(ctx, batch); err != nil {
		return 0, err
	}
	return len(batch), nil
}

// ---- teachers ----

func (s *Service) ListTeachers(ctx context.Context) ([]domain.Teacher, error) {
	return s.store.ListTeachers(ctx)
}

func (s *Service) CreateTeacher(ctx context.Context, t domain.Teacher) (domain.Teacher, error) {
	if strings.TrimSpace(t.Name) == "" {
		return domain.Teacher{}, domain.ErrMissingField("name")
	}
	t.ID = s.newID("t-")
	if t.Classes == nil {
		t.Classes = []string{}
	}
	if err := s.store.CreateTeacher(ctx, t); err != nil {
		return domain.Teacher{}, err
	}
	return t, nil
}

// ---- assignments / exams ----

func (s *Service) ListAssignments(ctx context.Context) ([]domain.Assignment, error) {
	return s.store.ListAssignments(ctx)
}

func (s *Service) CreateAssignment(ctx context.Context, a domain.Assignment) (string, error) {
	if strings.TrimSpace(a.Title) == "" {
		return "", domain.ErrMissingField("title")
	}
	switch a.Status {
	case "":
		a.Status = string(domain.AssignmentOpen)
	case string(domain.AssignmentOpen), string(domain.AssignmentClosed):
	default:
		return "", domain.ErrInvalidField("status", a.Status)
	}
	a.ID = s.newID("as-")
	if err := s.store.CreateAssignment(ctx, a); err != nil {
		return "", err
	}
	return a.ID, nil
}

func (s *Service) ListExamResults(ctx context.Context) ([]domain.ExamResult, error) {
	return s.store.ListExamResults(ctx)
}

// ---- fees ----

func (s *Service) ListFees(ctx context.Context) ([]domain.Fee, error) {
	return s.store.ListFees(ctx)
}

func (s *Service) PayFee(ctx context.Context, invoiceID string) error {
	if strings.TrimSpace(invoiceID) == "" {
		return domain.ErrMissingField("invoiceId")
	}
	return s.store.MarkFeePaid(ctx, invoiceID)
}

// ---- attendance ----

type AttendanceMark struct {
	StudentID string
	Status    string
}

// RecordAttendance upserts one row per student for the date. Re-submitting
// a date overwrites earlier marks.
func (s *Service) RecordAttendance(ctx context.Context, date string, marks []AttendanceMark) (int, error) {
	if strings.TrimSpace(date) == "" {
		return 0, domain.ErrMissingField("date")
	}
	if marks == nil {
		return 0, domain.ErrMissingField("records")
	}
	recs := make([]domain.AttendanceRecord, 0, len(marks))
	for _, m := range marks {
		if m.StudentID == "" {
			return 0, domain.ErrMissingField("records.studentId")
		}
		if !domain.IsValidAttendanceStatus(m.Status) {
			return 0, domain.ErrInvalidField("records.status", m.Status)
		}
		recs = append(recs, domain.AttendanceRecord{
			ID:        domain.AttendanceID(m.StudentID, date),
			Date:      date,
			StudentID: m.StudentID,
			Status:    m.Status,
		})
	}
	if len(recs) > 0 {
		if err := s.store.UpsertAttendance(ctx, recs); err != nil {
			return 0, err
		}
	}
	return len(recs), nil
}

// ---- dashboard ----

func (s *Service) Stats(ctx context.Context) (domain.Stats, error) {
	return s.store.Stats(ctx)
}

// ---- notifications ----

// EmailRequestedEvent is consumed by the mail worker.
type EmailRequestedEvent struct {
	To            string `json:"to"`
	RecipientName string `json:"recipientName"`
	Subject       string `json:"subject"`
	Message       string `json:"message"`
	Type          string `json:"type"`
}

// QueueEmail hands the message to the broker; delivery is asynchronous.
func (s *Service) QueueEmail(ctx context.Context, n domain.EmailNotification) error {
	if strings.TrimSpace(n.RecipientName) == "" {
		return domain.ErrMissingField("recipientName")
	}
	if strings.TrimSpace(n.Subject) == "" {
		return domain.ErrMissingField("subject")
	}
	evt := EmailRequestedEvent{
		To:            MailboxFor(n.RecipientName),
		RecipientName: n.RecipientName,
		Subject:       n.Subject,
		Message:       n.Message,
		Type:          n.Type,
	}
	if err := s.pub.Publish(ctx, RoutingKeyEmailRequested, evt); err != nil {
		return domain.ErrBrokerUnavailable(err)
	}
	return nil
}

// MailboxFor derives the school mailbox of a person: "Jane Doe" -> jane.doe@edusphere.school.
// Every whitespace rune becomes a dot, so runs are kept: "Jane  Doe" -> jane..doe.
func MailboxFor(name string) string {
	local := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return '.'
		}
		return r
	}, strings.ToLower(name))
	return local + "@" + mailDomain
}
