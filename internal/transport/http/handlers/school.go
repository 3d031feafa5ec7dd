package http_handlers

import (
	"fmt"
	"net/http"

	"github.com/baechuer/edusphere/internal/application/school"
	"github.com/baechuer/edusphere/internal/logger"
	"github.com/baechuer/edusphere/internal/transport/http/dto"
	"github.com/baechuer/edusphere/internal/transport/http/response"
)

type SchoolHandler struct {
	svc *school.Service
}

func NewSchoolHandler(svc *school.Service) *SchoolHandler {
	return &SchoolHandler{svc: svc}
}

// ListStudents handles GET /api/students
func (h *SchoolHandler) ListStudents(w http.ResponseWriter, r *http.Request) {
	ss, err := h.svc.ListStudents(r.Context())
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.OK(w, dto.NewStudentViews(ss))
}

// ImportStudents handles POST /api/students/bulk
func (h *SchoolHandler) ImportStudents(w http.ResponseWriter, r *http.Request) {
	var req dto.BulkStudentsRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	students, err := req.Parse()
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	n, err := h.svc.ImportStudents(r.Context(), students)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	logger.WithCtx(r.Context()).Info().Int("count", n).Msg("students_imported")
	response.Created(w, dto.ImportData{
		Message: fmt.Sprintf("Imported %d students", n),
		Count:   n,
	})
}

// ListTeachers handles GET /api/teachers
func (h *SchoolHandler) ListTeachers(w http.ResponseWriter, r *http.Request) {
	ts, err := h.svc.ListTeachers(r.Context())
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.OK(w, dto.NewTeacherViews(ts))
}

// CreateTeacher handles POST /api/teachers
func (h *SchoolHandler) CreateTeacher(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateTeacherRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	t, err := h.svc.CreateTeacher(r.Context(), req.Teacher())
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.Created(w, dto.NewTeacherView(t))
}

// ListAssignments handles GET /api/assignments
func (h *SchoolHandler) ListAssignments(w http.ResponseWriter, r *http.Request) {
	as, err := h.svc.ListAssignments(r.Context())
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.OK(w, dto.NewAssignmentViews(as))
}

// CreateAssignment handles POST /api/assignments
func (h *SchoolHandler) CreateAssignment(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateAssignmentRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	id, err := h.svc.CreateAssignment(r.Context(), req.Assignment())
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.Created(w, dto.SuccessData{Success: true, ID: id})
}

// ListExams handles GET /api/exams
func (h *SchoolHandler) ListExams(w http.ResponseWriter, r *http.Request) {
	es, err := h.svc.ListExamResults(r.Context())
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.OK(w, dto.NewExamResultViews(es))
}

// ListFees handles GET /api/fees
func (h *SchoolHandler) ListFees(w http.ResponseWriter, r *http.Request) {
	fs, err := h.svc.ListFees(r.Context())
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.OK(w, dto.NewFeeViews(fs))
}

// PayFee handles POST /api/fees/pay
func (h *SchoolHandler) PayFee(w http.ResponseWriter, r *http.Request) {
	var req dto.PayFeeRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	if err := h.svc.PayFee(r.Context(), req.InvoiceID); err != nil {
		response.WriteError(w, r, err)
		return
	}

	logger.WithCtx(r.Context()).Info().Str("invoice_id", req.InvoiceID).Msg("fee_paid")
	response.OK(w, dto.SuccessData{Success: true})
}

// RecordAttendance handles POST /api/attendance
func (h *SchoolHandler) RecordAttendance(w http.ResponseWriter, r *http.Request) {
	var req dto.AttendanceRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	n, err := h.svc.RecordAttendance(r.Context(), req.Date, req.Marks())
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.OK(w, dto.SuccessData{Success: true, Count: &n})
}

// Stats handles GET /api/stats
func (h *SchoolHandler) Stats(w http.ResponseWriter, r *http.Request) {
	st, err := h.svc.Stats(r.Context())
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.OK(w, dto.StatsView{Students: st.Students, Teachers: st.Teachers, Revenue: st.Revenue})
}

// SendEmail handles POST /api/notifications/email
func (h *SchoolHandler) SendEmail(w http.ResponseWriter, r *http.Request) {
	var req dto.EmailRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	if err := h.svc.QueueEmail(r.Context(), req.Notification()); err != nil {
		response.WriteError(w, r, err)
		return
	}

	logger.WithCtx(r.Context()).Info().
		Str("recipient", req.RecipientName).
		Str("type", req.Type).
		Msg("email_queued")
	response.OK(w, dto.SuccessData{Success: true, Message: "Email queued for delivery"})
}
