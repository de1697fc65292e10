package dto

import (
	"strings"
	"time"

	"github.com/spec-kit/academic-admin-service/internal/domain"
	"github.com/spec-kit/academic-admin-service/internal/service"
)

// Timestamps cross the wire as ISO-8601 with millisecond precision, always
// UTC, matching YYYY-MM-DDTHH:MM:SS.sssZ.
const isoMillis = "2006-01-02T15:04:05.000Z"

// FormatTimestamp renders a timestamp in the transport format.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(isoMillis)
}

// CreateRoomRequest payload. Tagged for both JSON bodies and form-encoded
// input so both callers normalize to the same field set.
type CreateRoomRequest struct {
	RoomCode     string `json:"room_code" form:"room_code"`
	RoomName     string `json:"room_name" form:"room_name"`
	Capacity     int    `json:"capacity" form:"capacity"`
	RoomType     string `json:"room_type" form:"room_type"`
	Floor        int    `json:"floor" form:"floor"`
	DepartmentID string `json:"department_id" form:"department_id"`
}

// ToInput normalizes the request into the service input.
func (r CreateRoomRequest) ToInput() service.RoomCreateInput {
	input := service.RoomCreateInput{
		RoomCode: strings.TrimSpace(r.RoomCode),
		RoomName: strings.TrimSpace(r.RoomName),
		Capacity: r.Capacity,
		RoomType: strings.TrimSpace(r.RoomType),
		Floor:    r.Floor,
	}
	if dept := strings.TrimSpace(r.DepartmentID); dept != "" {
		input.DepartmentID = &dept
	}
	return input
}

// UpdateRoomRequest payload. Absent fields leave the room untouched; an
// explicit clear_department removes the association.
type UpdateRoomRequest struct {
	RoomName        *string `json:"room_name" form:"room_name"`
	Capacity        *int    `json:"capacity" form:"capacity"`
	RoomType        *string `json:"room_type" form:"room_type"`
	Floor           *int    `json:"floor" form:"floor"`
	DepartmentID    *string `json:"department_id" form:"department_id"`
	ClearDepartment bool    `json:"clear_department" form:"clear_department"`
}

// ToInput normalizes the request into the service input.
func (r UpdateRoomRequest) ToInput() service.RoomUpdateInput {
	input := service.RoomUpdateInput{
		RoomName:        r.RoomName,
		Capacity:        r.Capacity,
		RoomType:        r.RoomType,
		Floor:           r.Floor,
		ClearDepartment: r.ClearDepartment,
	}
	if r.DepartmentID != nil {
		if dept := strings.TrimSpace(*r.DepartmentID); dept != "" {
			input.DepartmentID = &dept
		} else {
			input.ClearDepartment = true
		}
	}
	return input
}

// DepartmentRef is the inline department projection on a room.
type DepartmentRef struct {
	ID   string `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
}

// HistoryEntryResponse is the transport form of one history entry.
type HistoryEntryResponse struct {
	ID            string `json:"id"`
	UpdatedBy     string `json:"updated_by"`
	UpdatedByName string `json:"updated_by_name,omitempty"`
	UpdatedAt     string `json:"updated_at"`
	Action        string `json:"action"`
	AcademicYear  string `json:"academic_year"`
}

// RoomResponse is the transport form of a room: every identifier a plain
// string, every timestamp ISO-8601, history projected recursively, and the
// department inlined or null.
type RoomResponse struct {
	ID            string                 `json:"id"`
	RoomCode      string                 `json:"room_code"`
	RoomName      string                 `json:"room_name"`
	Capacity      int                    `json:"capacity"`
	RoomType      string                 `json:"room_type"`
	Floor         int                    `json:"floor"`
	Department    *DepartmentRef         `json:"department"`
	AcademicYear  string                 `json:"academic_year"`
	IsActive      bool                   `json:"is_active"`
	UpdateHistory []HistoryEntryResponse `json:"update_history"`
	CreatedAt     string                 `json:"created_at"`
	UpdatedAt     string                 `json:"updated_at"`
}

// NewRoomResponse projects a room. authorNames optionally maps history author
// ids to display names; pass nil when author resolution was not requested.
func NewRoomResponse(room *domain.Room, authorNames map[string]string) RoomResponse {
	history := make([]HistoryEntryResponse, 0, len(room.History))
	for _, entry := range room.History {
		history = append(history, HistoryEntryResponse{
			ID:            entry.ID,
			UpdatedBy:     entry.UpdatedBy,
			UpdatedByName: authorNames[entry.UpdatedBy],
			UpdatedAt:     FormatTimestamp(entry.UpdatedAt),
			Action:        string(entry.Action),
			AcademicYear:  entry.AcademicYear,
		})
	}

	var dept *DepartmentRef
	if room.Department != nil {
		dept = &DepartmentRef{
			ID:   room.Department.ID,
			Code: room.Department.DepartmentCode,
			Name: room.Department.DepartmentName,
		}
	}

	return RoomResponse{
		ID:            room.ID,
		RoomCode:      room.RoomCode,
		RoomName:      room.RoomName,
		Capacity:      room.Capacity,
		RoomType:      room.RoomType,
		Floor:         room.Floor,
		Department:    dept,
		AcademicYear:  room.AcademicYear,
		IsActive:      room.IsActive,
		UpdateHistory: history,
		CreatedAt:     FormatTimestamp(room.CreatedAt),
		UpdatedAt:     FormatTimestamp(room.UpdatedAt),
	}
}

// NewRoomResponses projects a listing in order.
func NewRoomResponses(rooms []domain.Room) []RoomResponse {
	result := make([]RoomResponse, 0, len(rooms))
	for i := range rooms {
		result = append(result, NewRoomResponse(&rooms[i], nil))
	}
	return result
}
