package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventRoomCreated EventType = "room_created"
	EventRoomUpdated EventType = "room_updated"
	EventRoomDeleted EventType = "room_deleted"
)

// Event represents a domain event emitted after a successful room mutation.
// Publication is fire-and-forget: subscribers refresh dependent views but are
// never awaited for correctness.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	RoomCode  string      `json:"room_code"`
	ActorID   string      `json:"actor_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// RoomCreatedPayload payload.
type RoomCreatedPayload struct {
	RoomID       string  `json:"room_id"`
	DepartmentID *string `json:"department_id,omitempty"`
	AcademicYear string  `json:"academic_year"`
	Reactivated  bool    `json:"reactivated"`
}

// RoomUpdatedPayload payload.
type RoomUpdatedPayload struct {
	RoomID       string  `json:"room_id"`
	DepartmentID *string `json:"department_id,omitempty"`
	AcademicYear string  `json:"academic_year"`
}

// RoomDeletedPayload payload.
type RoomDeletedPayload struct {
	RoomID       string  `json:"room_id"`
	DepartmentID *string `json:"department_id,omitempty"`
	AcademicYear string  `json:"academic_year"`
}
