package memory

import (
	"context"
	"encoding/json"

	"github.com/baechuer/edusphere/internal/logger"
)

// NoopPublisher logs messages instead of sending them. Used when no broker
// is configured.
type NoopPublisher struct{}

func NewNoopPublisher() *NoopPublisher { return &NoopPublisher{} }

func (p *NoopPublisher) Publish(ctx context.Context, routingKey string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	logger.WithCtx(ctx).Info().
		Str("routing_key", routingKey).
		RawJSON("payload", body).
		Msg("noop-pub")
	return nil
}

func (p *NoopPublisher) Close() error { return nil }
