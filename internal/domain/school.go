package domain

type FeesStatus string

const (
	FeesPaid    FeesStatus = "PAID"
	FeesPending FeesStatus = "PENDING"
	FeesOverdue FeesStatus = "OVERDUE"
)

func IsValidFeesStatus(s string) bool {
	switch FeesStatus(s) {
	case FeesPaid, FeesPending, FeesOverdue:
		return true
	}
	return false
}

type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "PRESENT"
	AttendanceAbsent  AttendanceStatus = "ABSENT"
	AttendanceLate    AttendanceStatus = "LATE"
)

func IsValidAttendanceStatus(s string) bool {
	switch AttendanceStatus(s) {
	case AttendancePresent, AttendanceAbsent, AttendanceLate:
		return true
	}
	return false
}

type AssignmentStatus string

const (
	AssignmentOpen   AssignmentStatus = "OPEN"
	AssignmentClosed AssignmentStatus = "CLOSED"
)

type Student struct {
	ID             string
	UserID         *string
	Name           string
	Grade          string
	Section        string
	GuardianName   string
	Contact        string
	AttendanceRate int
	FeesStatus     string
}

type Teacher struct {
	ID      string
	Name    string
	Subject string
	Email   string
	Classes []string
}

type Assignment struct {
	ID             string
	ClassID        string
	Title          string
	Description    string
	DueDate        string
	Subject        string
	Status         string
	AttachmentName *string
}

type ExamResult struct {
	ID          string
	StudentID   string
	StudentName string
	Subject     string
	Score       int
	Total       int
	Grade       string
}

type Fee struct {
	InvoiceID  string
	StudentID  string
	Name       string
	Grade      string
	Amount     int64
	DueDate    string
	FeesStatus string
}

type AttendanceRecord struct {
	ID        string
	Date      string
	StudentID string
	Status    string
}

// AttendanceID is the natural key of a student's attendance on a date.
func AttendanceID(studentID, date string) string {
	return studentID + "-" + date
}

type Stats struct {
	Students int
	Teachers int
	Revenue  int64
}

type EmailNotification struct {
	RecipientName string
	Subject       string
	Message       string
	Type          string
}
