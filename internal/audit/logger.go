package audit

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/baechuer/edusphere/internal/domain"
	ctxpkg "github.com/baechuer/edusphere/internal/pkg/context"
)

// Store is the durable, append-only home of audit entries.
type Store interface {
	Append(ctx context.Context, e domain.AuditEntry) error
}

// EventPublisher fans audit entries out to the broker.
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, payload any) error
}

// Event is the broker payload for a recorded audit entry.
type Event struct {
	ID             string    `json:"id"`
	Action         string    `json:"action"`
	TargetUserID   string    `json:"targetUserId"`
	TargetUserName string    `json:"targetUserName"`
	PerformedBy    string    `json:"performedBy"`
	Timestamp      time.Time `json:"timestamp"`
	Details        string    `json:"details"`
}

// RoutingKey returns "audit.<action>", e.g. audit.user_created.
func RoutingKey(action domain.AuditAction) string {
	return "audit." + strings.ToLower(string(action))
}

// RecordResult carries the stored entry and the append error, if any.
// Callers may ignore Err: a failed audit write never fails the request.
type RecordResult struct {
	Entry domain.AuditEntry
	Err   error
}

// Logger records user administration events.
type Logger struct {
	store Store
	pub   EventPublisher
	log   zerolog.Logger

	now   func() time.Time
	newID func() string
}

func New(store Store, pub EventPublisher, log zerolog.Logger) *Logger {
	return &Logger{
		store: store,
		pub:   pub,
		log:   log.With().Bool("audit", true).Logger(),
		now:   func() time.Time { return time.Now().UTC() },
		newID: uuid.NewString,
	}
}

// Record stamps the entry with a fresh id and UTC timestamp, appends it,
// logs it, and publishes it.
func (l *Logger) Record(ctx context.Context, e domain.AuditEntry) RecordResult {
	e.ID = l.newID()
	e.Timestamp = l.now()

	err := l.store.Append(ctx, e)

	var ev *zerolog.Event
	if err != nil {
		ev = l.log.Error().Err(err)
	} else {
		ev = l.log.Info()
	}
	ev.Str("action", string(e.Action)).
		Str("audit_id", e.ID).
		Str("target_user_id", e.TargetUserID).
		Str("performed_by", maskEmail(e.PerformedBy)).
		Str("details", e.Details).
		Str("request_id", ctxpkg.GetRequestID(ctx)).
		Msg("user admin action")

	if err == nil && l.pub != nil {
		if perr := l.pub.Publish(ctx, RoutingKey(e.Action), toEvent(e)); perr != nil {
			l.log.Warn().Err(perr).
				Str("audit_id", e.ID).
				Msg("audit event publish failed")
		}
	}

	return RecordResult{Entry: e, Err: err}
}

func toEvent(e domain.AuditEntry) Event {
	return Event{
		ID:             e.ID,
		Action:         string(e.Action),
		TargetUserID:   e.TargetUserID,
		TargetUserName: e.TargetUserName,
		PerformedBy:    e.PerformedBy,
		Timestamp:      e.Timestamp,
		Details:        e.Details,
	}
}

// maskEmail partially masks email for privacy in logs.
// Non-email actors ("System", "Unknown Admin") pass through.
func maskEmail(email string) string {
	at := strings.IndexByte(email, '@')
	if at < 0 {
		return email
	}
	if len(email) < 5 {
		return "***"
	}
	if at < 2 {
		return email[:1] + "***" + email[at:]
	}
	return email[:2] + "***" + email[at:]
}
