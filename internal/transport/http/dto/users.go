package dto

import (
	"strings"
	"time"

	"github.com/baechuer/edusphere/internal/domain"
)

// UserView is the outward shape of a user. It never carries the password hash.
type UserView struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	AvatarURL string `json:"avatarUrl,omitempty"`
	Status    string `json:"status"`
}

func NewUserView(u domain.User) UserView {
	return UserView{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		AvatarURL: u.AvatarURL,
		Status:    u.Status,
	}
}

func NewUserViews(us []domain.User) []UserView {
	out := make([]UserView, 0, len(us))
	for _, u := range us {
		out = append(out, NewUserView(u))
	}
	return out
}

type CreateUserRequest struct {
	Name      string `json:"name" validate:"max=200"`
	Email     string `json:"email" validate:"required,email,max=254"`
	Role      string `json:"role"`
	Password  string `json:"password" validate:"max=72"`
	AvatarURL string `json:"avatarUrl" validate:"max=2048"`
	Status    string `json:"status"`
}

func (r *CreateUserRequest) Validate() error {
	r.Email = strings.TrimSpace(r.Email)
	if err := validateStruct(r); err != nil {
		return err
	}
	return checkPasswordBytes(r.Password)
}

// UpdateUserRequest uses pointers so an omitted field is distinguishable
// from a supplied one. Empty strings are treated as omitted downstream.
type UpdateUserRequest struct {
	Name      *string `json:"name" validate:"omitempty,max=200"`
	Email     *string `json:"email" validate:"omitempty,email,max=254"`
	AvatarURL *string `json:"avatarUrl" validate:"omitempty,max=2048"`
	Status    *string `json:"status"`
	Password  *string `json:"password" validate:"omitempty,max=72"`
}

func (r *UpdateUserRequest) Validate() error {
	if r.Email != nil {
		e := strings.TrimSpace(*r.Email)
		r.Email = &e
	}
	if err := validateStruct(r); err != nil {
		return err
	}
	if r.Password != nil {
		return checkPasswordBytes(*r.Password)
	}
	return nil
}

// bcrypt rejects passwords over 72 bytes; the max tag counts runes.
const maxPasswordBytes = 72

func checkPasswordBytes(pw string) error {
	if len(pw) > maxPasswordBytes {
		return domain.ErrPasswordTooLong()
	}
	return nil
}

type AuditLogView struct {
	ID             string    `json:"id"`
	Action         string    `json:"action"`
	TargetUserID   string    `json:"targetUserId"`
	TargetUserName string    `json:"targetUserName"`
	PerformedBy    string    `json:"performedBy"`
	Timestamp      time.Time `json:"timestamp"`
	Details        string    `json:"details"`
}

func NewAuditLogViews(es []domain.AuditEntry) []AuditLogView {
	out := make([]AuditLogView, 0, len(es))
	for _, e := range es {
		out = append(out, AuditLogView{
			ID:             e.ID,
			Action:         string(e.Action),
			TargetUserID:   e.TargetUserID,
			TargetUserName: e.TargetUserName,
			PerformedBy:    e.PerformedBy,
			Timestamp:      e.Timestamp,
			Details:        e.Details,
		})
	}
	return out
}

type SuccessData struct {
	Success bool   `json:"success"`
	ID      string `json:"id,omitempty"`
	Count   *int   `json:"count,omitempty"`
	Message string `json:"message,omitempty"`
}
