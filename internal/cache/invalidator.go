package cache

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/academic-admin-service/internal/events"
	"github.com/spec-kit/academic-admin-service/internal/persistence"
)

// View cache keys maintained by downstream read layers.
const (
	keyActiveRooms       = "views:rooms:active"
	keyDepartmentPrefix  = "views:rooms:department:"
	keyDepartmentUnowned = "views:rooms:department:none"
)

// ViewInvalidator drops cached room views whenever a room mutation succeeds.
// Invalidation is fire-and-forget: a Redis failure is logged and never
// surfaces to the mutation path.
type ViewInvalidator struct {
	redis  *persistence.Redis
	logger *zap.Logger
}

// NewViewInvalidator creates the invalidator.
func NewViewInvalidator(redis *persistence.Redis, logger *zap.Logger) *ViewInvalidator {
	return &ViewInvalidator{redis: redis, logger: logger}
}

// RegisterHandlers subscribes to every room mutation event.
func (v *ViewInvalidator) RegisterHandlers(dispatcher events.Dispatcher) {
	if dispatcher == nil {
		return
	}
	dispatcher.Subscribe(events.EventRoomCreated, v.handle)
	dispatcher.Subscribe(events.EventRoomUpdated, v.handle)
	dispatcher.Subscribe(events.EventRoomDeleted, v.handle)
}

func (v *ViewInvalidator) handle(ctx context.Context, event events.Event) error {
	keys := keysFor(event)
	if err := v.redis.Del(ctx, keys...); err != nil {
		v.logger.Warn("view invalidation failed",
			zap.String("event", string(event.Type)),
			zap.String("room_code", event.RoomCode),
			zap.Error(err),
		)
	}
	return nil
}

// keysFor derives the cache keys touched by a room event: the active room
// listing plus the department bucket the room belongs to.
func keysFor(event events.Event) []string {
	keys := []string{keyActiveRooms}
	switch payload := event.Payload.(type) {
	case events.RoomCreatedPayload:
		keys = append(keys, departmentKey(payload.DepartmentID))
	case events.RoomUpdatedPayload:
		keys = append(keys, departmentKey(payload.DepartmentID))
	case events.RoomDeletedPayload:
		keys = append(keys, departmentKey(payload.DepartmentID))
	}
	return keys
}

func departmentKey(departmentID *string) string {
	if departmentID == nil || *departmentID == "" {
		return keyDepartmentUnowned
	}
	return keyDepartmentPrefix + *departmentID
}
