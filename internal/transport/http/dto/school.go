package dto

import (
	"bytes"
	"encoding/json"

	"github.com/baechuer/edusphere/internal/application/school"
	"github.com/baechuer/edusphere/internal/domain"
)

// -------- Students --------

type StudentView struct {
	ID             string  `json:"id"`
	UserID         *string `json:"userId,omitempty"`
	Name           string  `json:"name"`
	Grade          string  `json:"grade"`
	Section        string  `json:"section"`
	GuardianName   string  `json:"guardianName"`
	Contact        string  `json:"contact"`
	AttendanceRate int     `json:"attendanceRate"`
	FeesStatus     string  `json:"feesStatus"`
}

func NewStudentViews(ss []domain.Student) []StudentView {
	out := make([]StudentView, 0, len(ss))
	for _, s := range ss {
		out = append(out, StudentView(s))
	}
	return out
}

type StudentInput struct {
	ID             string  `json:"id" validate:"max=64"`
	UserID         *string `json:"userId"`
	Name           string  `json:"name" validate:"required,max=200"`
	Grade          string  `json:"grade"`
	Section        string  `json:"section"`
	GuardianName   string  `json:"guardianName"`
	Contact        string  `json:"contact"`
	AttendanceRate int     `json:"attendanceRate" validate:"min=0,max=100"`
	FeesStatus     string  `json:"feesStatus"`
}

type BulkStudentsRequest struct {
	Students json.RawMessage `json:"students"`
}

type bulkStudents struct {
	Students []StudentInput `json:"students" validate:"dive"`
}

// Parse checks that students is a JSON array and validates every row.
func (r *BulkStudentsRequest) Parse() ([]domain.Student, error) {
	raw := bytes.TrimSpace(r.Students)
	if len(raw) == 0 || raw[0] != '[' {
		return nil, domain.ErrInvalidField("students", "must be an array")
	}

	var b bulkStudents
	if err := json.Unmarshal(raw, &b.Students); err != nil {
		return nil, domain.ErrInvalidJSON(err)
	}
	if len(b.Students) == 0 {
		return nil, domain.ErrInvalidField("students", "must not be empty")
	}
	if err := validateStruct(&b); err != nil {
		return nil, err
	}

	out := make([]domain.Student, 0, len(b.Students))
	for _, s := range b.Students {
		out = append(out, domain.Student(s))
	}
	return out, nil
}

type ImportData struct {
	Message string `json:"message"`
	Count   int    `json:"count"`
}

// -------- Teachers --------

type TeacherView struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Subject string   `json:"subject"`
	Email   string   `json:"email"`
	Classes []string `json:"classes"`
}

func NewTeacherView(t domain.Teacher) TeacherView {
	classes := t.Classes
	if classes == nil {
		classes = []string{}
	}
	return TeacherView{ID: t.ID, Name: t.Name, Subject: t.Subject, Email: t.Email, Classes: classes}
}

func NewTeacherViews(ts []domain.Teacher) []TeacherView {
	out := make([]TeacherView, 0, len(ts))
	for _, t := range ts {
		out = append(out, NewTeacherView(t))
	}
	return out
}

type CreateTeacherRequest struct {
	Name    string   `json:"name" validate:"required,max=200"`
	Subject string   `json:"subject" validate:"max=200"`
	Email   string   `json:"email" validate:"omitempty,email,max=254"`
	Classes []string `json:"classes" validate:"dive,max=32"`
}

func (r *CreateTeacherRequest) Validate() error {
	return validateStruct(r)
}

func (r *CreateTeacherRequest) Teacher() domain.Teacher {
	return domain.Teacher{Name: r.Name, Subject: r.Subject, Email: r.Email, Classes: r.Classes}
}

// -------- Assignments --------

type AssignmentView struct {
	ID             string  `json:"id"`
	ClassID        string  `json:"classId"`
	Title          string  `json:"title"`
	Description    string  `json:"description"`
	DueDate        string  `json:"dueDate"`
	Subject        string  `json:"subject"`
	Status         string  `json:"status"`
	AttachmentName *string `json:"attachmentName,omitempty"`
}

func NewAssignmentViews(as []domain.Assignment) []AssignmentView {
	out := make([]AssignmentView, 0, len(as))
	for _, a := range as {
		out = append(out, AssignmentView(a))
	}
	return out
}

type CreateAssignmentRequest struct {
	ClassID        string  `json:"classId" validate:"max=64"`
	Title          string  `json:"title" validate:"required,max=300"`
	Description    string  `json:"description" validate:"max=5000"`
	DueDate        string  `json:"dueDate" validate:"omitempty,datetime=2006-01-02"`
	Subject        string  `json:"subject" validate:"max=200"`
	Status         string  `json:"status"`
	AttachmentName *string `json:"attachmentName" validate:"omitempty,max=255"`
}

func (r *CreateAssignmentRequest) Validate() error {
	return validateStruct(r)
}

func (r *CreateAssignmentRequest) Assignment() domain.Assignment {
	return domain.Assignment{
		ClassID:        r.ClassID,
		Title:          r.Title,
		Description:    r.Description,
		DueDate:        r.DueDate,
		Subject:        r.Subject,
		Status:         r.Status,
		AttachmentName: r.AttachmentName,
	}
}

// -------- Exams --------

type ExamResultView struct {
	ID          string `json:"id"`
	StudentID   string `json:"studentId"`
	StudentName string `json:"studentName"`
	Subject     string `json:"subject"`
	Score       int    `json:"score"`
	Total       int    `json:"total"`
	Grade       string `json:"grade"`
}

func NewExamResultViews(es []domain.ExamResult) []ExamResultView {
	out := make([]ExamResultView, 0, len(es))
	for _, e := range es {
		out = append(out, ExamResultView(e))
	}
	return out
}

// -------- Fees --------

type FeeView struct {
	InvoiceID  string `json:"invoiceId"`
	StudentID  string `json:"studentId"`
	Name       string `json:"name"`
	Grade      string `json:"grade"`
	Amount     int64  `json:"amount"`
	DueDate    string `json:"dueDate"`
	FeesStatus string `json:"feesStatus"`
}

func NewFeeViews(fs []domain.Fee) []FeeView {
	out := make([]FeeView, 0, len(fs))
	for _, f := range fs {
		out = append(out, FeeView(f))
	}
	return out
}

type PayFeeRequest struct {
	InvoiceID string `json:"invoiceId" validate:"required,max=64"`
}

func (r *PayFeeRequest) Validate() error {
	return validateStruct(r)
}

// -------- Attendance --------

type AttendanceMark struct {
	StudentID string `json:"studentId" validate:"required"`
	Status    string `json:"status" validate:"required"`
}

type AttendanceRequest struct {
	Date    string           `json:"date" validate:"required"`
	Records []AttendanceMark `json:"records" validate:"required,dive"`
}

func (r *AttendanceRequest) Validate() error {
	return validateStruct(r)
}

func (r *AttendanceRequest) Marks() []school.AttendanceMark {
	out := make([]school.AttendanceMark, 0, len(r.Records))
	for _, m := range r.Records {
		out = append(out, school.AttendanceMark{StudentID: m.StudentID, Status: m.Status})
	}
	return out
}

// -------- Stats --------

type StatsView struct {
	Students int   `json:"students"`
	Teachers int   `json:"teachers"`
	Revenue  int64 `json:"revenue"`
}

// -------- Notifications --------

type EmailRequest struct {
	RecipientName string `json:"recipientName" validate:"required,max=200"`
	Subject       string `json:"subject" validate:"required,max=300"`
	Message       string `json:"message" validate:"max=10000"`
	Type          string `json:"type" validate:"max=32"`
}

func (r *EmailRequest) Validate() error {
	return validateStruct(r)
}

func (r *EmailRequest) Notification() domain.EmailNotification {
	return domain.EmailNotification{
		RecipientName: r.RecipientName,
		Subject:       r.Subject,
		Message:       r.Message,
		Type:          r.Type,
	}
}
