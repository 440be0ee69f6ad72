package postgres

import (
	"context"
	"fmt"

	jsoniter "github.com/json-iterator/go"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sderosiaux/reservo-sub001/internal/domain"
)

var jsonCodec = jsoniter.ConfigCompatibleWithStandardLibrary

type execFunc func(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)

// appendEvents writes domain events to the append-only audit log. Events are
// serialized once, here, and never read back by the core.
func appendEvents(ctx context.Context, exec execFunc, events []domain.DomainEvent) error {
	const stmt = `INSERT INTO domain_events (event_type, occurred_at, payload) VALUES ($1, $2, $3)`

	for _, event := range events {
		payload, err := jsonCodec.Marshal(event)
		if err != nil {
			return fmt.Errorf("marshal %s: %w", event.EventType(), err)
		}
		if _, err := exec(ctx, stmt, event.EventType(), event.HasOccurredAt().UnixMilli(), payload); err != nil {
			return fmt.Errorf("append %s: %w", event.EventType(), err)
		}
	}
	return nil
}
