package events

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Audit event types for the authorization core.
const (
	EventTokenRotated      = "auth.token_rotated"
	EventPermissionGranted = "permission.granted"
	EventPermissionRevoked = "permission.revoked"
)

func NewTokenRotatedEvent(userID int64) Event {
	return BaseEvent{
		ID:        uuid.NewString(),
		Type:      EventTokenRotated,
		Timestamp: time.Now(),
		Data: map[string]interface{}{
			"user_id": userID,
		},
	}
}

func NewPermissionGrantedEvent(model string, objectID int64, kinds []string, userIDs, groupIDs []int64) Event {
	return BaseEvent{
		ID:        uuid.NewString(),
		Type:      EventPermissionGranted,
		Timestamp: time.Now(),
		Data: map[string]interface{}{
			"model":     model,
			"object_id": objectID,
			"kinds":     kinds,
			"user_ids":  userIDs,
			"group_ids": groupIDs,
		},
	}
}

func NewPermissionRevokedEvent(model string, objectID int64, kinds []string, userIDs, groupIDs []int64) Event {
	return BaseEvent{
		ID:        uuid.NewString(),
		Type:      EventPermissionRevoked,
		Timestamp: time.Now(),
		Data: map[string]interface{}{
			"model":     model,
			"object_id": objectID,
			"kinds":     kinds,
			"user_ids":  userIDs,
			"group_ids": groupIDs,
		},
	}
}

// RegisterAuditLogger subscribes a structured-log audit trail for the
// authorization events.
func RegisterAuditLogger(bus *EventBus, logger *slog.Logger) {
	log := func(ctx context.Context, event Event) error {
		logger.InfoContext(ctx, "audit",
			"event_type", event.EventType(),
			"event_id", event.EventID(),
			"occurred_at", event.OccurredAt(),
			"payload", event.Payload())
		return nil
	}

	bus.Subscribe(EventTokenRotated, log)
	bus.Subscribe(EventPermissionGranted, log)
	bus.Subscribe(EventPermissionRevoked, log)
}
