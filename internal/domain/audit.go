package domain

import "time"

type AuditAction string

const (
	AuditUserCreated   AuditAction = "USER_CREATED"
	AuditStatusChange  AuditAction = "STATUS_CHANGE"
	AuditPasswordReset AuditAction = "PASSWORD_RESET"
	AuditUserUpdated   AuditAction = "USER_UPDATED"
)

// Actor sentinels used when no identity can be resolved from the request.
const (
	ActorSystem       = "System"
	ActorUnknownAdmin = "Unknown Admin"
	ActorAdmin        = "Admin"
)

// AuditEntry is an append-only record of a change made to a user account.
type AuditEntry struct {
	ID             string
	Action         AuditAction
	TargetUserID   string
	TargetUserName string
	PerformedBy    string
	Timestamp      time.Time
	Details        string
}
