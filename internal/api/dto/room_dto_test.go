package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/spec-kit/academic-admin-service/internal/domain"
)

func TestFormatTimestamp(t *testing.T) {
	ts := time.Date(2024, 9, 1, 14, 30, 45, 123_000_000, time.UTC)
	require.Equal(t, "2024-09-01T14:30:45.123Z", FormatTimestamp(ts))

	// Non-UTC inputs normalize to UTC before formatting.
	loc := time.FixedZone("UTC+7", 7*3600)
	require.Equal(t, "2024-09-01T07:30:45.123Z", FormatTimestamp(ts.In(loc)))
}

func TestNewRoomResponseProjectsStringsAndHistory(t *testing.T) {
	created := time.Date(2024, 9, 1, 8, 0, 0, 0, time.UTC)
	updated := time.Date(2024, 9, 2, 9, 15, 30, 500_000_000, time.UTC)
	deptID := "dept-1"
	room := &domain.Room{
		ID:           "room-1",
		RoomCode:     "R101",
		RoomName:     "Physics Lab",
		Capacity:     30,
		RoomType:     "laboratory",
		Floor:        2,
		DepartmentID: &deptID,
		Department: &domain.Department{
			ID:             "dept-1",
			DepartmentCode: "PHY",
			DepartmentName: "Physics",
		},
		AcademicYear: "2024-2025",
		IsActive:     true,
		History: domain.History{
			{ID: "h1", UpdatedBy: "user-1", UpdatedAt: created, Action: domain.HistoryActionCreated, AcademicYear: "2024-2025"},
			{ID: "h2", UpdatedBy: "user-2", UpdatedAt: updated, Action: domain.HistoryActionUpdated, AcademicYear: "2024-2025"},
		},
		CreatedAt: created,
		UpdatedAt: updated,
	}

	resp := NewRoomResponse(room, map[string]string{"user-1": "Jane Cooper"})

	require.Equal(t, "room-1", resp.ID)
	require.Equal(t, "2024-09-01T08:00:00.000Z", resp.CreatedAt)
	require.Equal(t, "2024-09-02T09:15:30.500Z", resp.UpdatedAt)
	require.NotNil(t, resp.Department)
	require.Equal(t, "PHY", resp.Department.Code)

	require.Len(t, resp.UpdateHistory, 2)
	require.Equal(t, "created", resp.UpdateHistory[0].Action)
	require.Equal(t, "Jane Cooper", resp.UpdateHistory[0].UpdatedByName)
	require.Equal(t, "2024-09-01T08:00:00.000Z", resp.UpdateHistory[0].UpdatedAt)
	require.Equal(t, "updated", resp.UpdateHistory[1].Action)
	require.Empty(t, resp.UpdateHistory[1].UpdatedByName)
}

func TestNewRoomResponseNullDepartment(t *testing.T) {
	room := &domain.Room{ID: "room-1", RoomCode: "R101", IsActive: true}

	resp := NewRoomResponse(room, nil)
	require.Nil(t, resp.Department)

	raw, err := json.Marshal(resp)
	require.NoError(t, err)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	require.Contains(t, decoded, "department")
	require.Nil(t, decoded["department"])

	// An empty history still serializes as an array, never null.
	require.Equal(t, []any{}, decoded["update_history"])
}

func TestCreateRoomRequestToInput(t *testing.T) {
	req := CreateRoomRequest{
		RoomCode:     "  R101  ",
		RoomName:     " Physics Lab ",
		Capacity:     30,
		DepartmentID: "  ",
	}
	input := req.ToInput()
	require.Equal(t, "R101", input.RoomCode)
	require.Equal(t, "Physics Lab", input.RoomName)
	require.Nil(t, input.DepartmentID)

	req.DepartmentID = " dept-1 "
	input = req.ToInput()
	require.NotNil(t, input.DepartmentID)
	require.Equal(t, "dept-1", *input.DepartmentID)
}

func TestUpdateRoomRequestToInput(t *testing.T) {
	name := "Chemistry Lab"
	empty := ""
	dept := " dept-2 "

	input := UpdateRoomRequest{RoomName: &name}.ToInput()
	require.NotNil(t, input.RoomName)
	require.Nil(t, input.DepartmentID)
	require.False(t, input.ClearDepartment)

	// An explicit empty department id clears the association.
	input = UpdateRoomRequest{DepartmentID: &empty}.ToInput()
	require.Nil(t, input.DepartmentID)
	require.True(t, input.ClearDepartment)

	input = UpdateRoomRequest{DepartmentID: &dept}.ToInput()
	require.NotNil(t, input.DepartmentID)
	require.Equal(t, "dept-2", *input.DepartmentID)
	require.False(t, input.ClearDepartment)
}

func TestNewRoomResponsesKeepsOrder(t *testing.T) {
	rooms := []domain.Room{
		{ID: "a", RoomCode: "R101"},
		{ID: "b", RoomCode: "R202"},
	}
	responses := NewRoomResponses(rooms)
	require.Len(t, responses, 2)
	require.Equal(t, "R101", responses[0].RoomCode)
	require.Equal(t, "R202", responses[1].RoomCode)
}
