package domain

import "time"

// HistoryAction enumerates the mutations recorded in a room's history.
type HistoryAction string

const (
	HistoryActionCreated HistoryAction = "created"
	HistoryActionUpdated HistoryAction = "updated"
	HistoryActionDeleted HistoryAction = "deleted"
)

// HistoryEntry records a single mutation embedded in the room document.
type HistoryEntry struct {
	ID           string        `json:"id"`
	UpdatedBy    string        `json:"updated_by"`
	UpdatedAt    time.Time     `json:"updated_at"`
	Action       HistoryAction `json:"action"`
	AcademicYear string        `json:"academic_year"`
}

// History is the ordered sequence of mutations for a room. Entries are
// append-only: they are never rewritten, reordered, or removed once stored.
type History []HistoryEntry

// Append returns a new sequence with entry added at the end. The full slice
// expression forces a copy so callers can never overwrite a shared backing
// array.
func (h History) Append(entry HistoryEntry) History {
	return append(h[:len(h):len(h)], entry)
}

// Last returns the most recent entry, or nil for an empty history.
func (h History) Last() *HistoryEntry {
	if len(h) == 0 {
		return nil
	}
	return &h[len(h)-1]
}

// Room is the aggregate for physical rooms. At most one active room exists per
// room code; an inactive room with the same code may coexist and is the target
// of reactivation instead of duplicate creation.
type Room struct {
	ID           string
	RoomCode     string
	RoomName     string
	Capacity     int
	RoomType     string
	Floor        int
	DepartmentID *string
	Department   *Department
	AcademicYear string
	IsActive     bool
	History      History
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
