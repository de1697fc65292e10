package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/academic-admin-service/internal/domain"
	"github.com/spec-kit/academic-admin-service/internal/events"
	"github.com/spec-kit/academic-admin-service/internal/repository"
	apperrors "github.com/spec-kit/academic-admin-service/pkg/util/errorutil"
)

// RoomService coordinates the room lifecycle: resolve the active term, decide
// between reactivation and fresh creation, stamp history entries, and turn
// nil repository results into named errors. It never touches raw storage
// primitives itself.
type RoomService struct {
	rooms      repository.RoomRepository
	terms      repository.TermRepository
	users      repository.UserRepository
	dispatcher events.Dispatcher
}

// RoomDependencies bundles repositories for the room service.
type RoomDependencies struct {
	RoomRepo   repository.RoomRepository
	TermRepo   repository.TermRepository
	UserRepo   repository.UserRepository
	Dispatcher events.Dispatcher
}

// RoomCreateInput describes room creation payload.
type RoomCreateInput struct {
	RoomCode     string
	RoomName     string
	Capacity     int
	RoomType     string
	Floor        int
	DepartmentID *string
}

// RoomUpdateInput describes a partial room update. Nil fields are untouched;
// ClearDepartment removes the department association.
type RoomUpdateInput struct {
	RoomName        *string
	Capacity        *int
	RoomType        *string
	Floor           *int
	DepartmentID    *string
	ClearDepartment bool
}

// NewRoomService constructs the service.
func NewRoomService(deps RoomDependencies) *RoomService {
	return &RoomService{
		rooms:      deps.RoomRepo,
		terms:      deps.TermRepo,
		users:      deps.UserRepo,
		dispatcher: deps.Dispatcher,
	}
}

// ProcessRoomCreation creates a room under the active term, or reactivates an
// inactive room carrying the same code instead of creating a duplicate.
func (s *RoomService) ProcessRoomCreation(ctx context.Context, input RoomCreateInput, actorID string) (*domain.Room, error) {
	term, err := s.resolveActiveTerm(ctx)
	if err != nil {
		return nil, err
	}

	code := strings.TrimSpace(input.RoomCode)
	if code == "" {
		return nil, apperrors.NewValidationError("room_code required", nil)
	}

	existing, err := s.rooms.GetActiveByCode(ctx, code)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if existing != nil {
		return nil, apperrors.NewDuplicateRoomCode(code)
	}

	inactive, err := s.rooms.GetInactiveByCode(ctx, code)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if inactive != nil {
		// Same stable identity comes back to life; prior history is preserved
		// and the reactivation is recorded as an update.
		entry := s.newHistoryEntry(actorID, domain.HistoryActionUpdated, term.AcademicYear)
		room, err := s.rooms.Reactivate(ctx, code, entry)
		if err != nil {
			return nil, apperrors.MapError(err)
		}
		if room == nil {
			return nil, apperrors.NewRoomNotFound(code)
		}
		s.publishEvent(ctx, events.Event{
			Type:     events.EventRoomCreated,
			RoomCode: room.RoomCode,
			ActorID:  actorID,
			Payload: events.RoomCreatedPayload{
				RoomID:       room.ID,
				DepartmentID: room.DepartmentID,
				AcademicYear: room.AcademicYear,
				Reactivated:  true,
			},
		})
		return room, nil
	}

	room := &domain.Room{
		RoomCode:     code,
		RoomName:     strings.TrimSpace(input.RoomName),
		Capacity:     input.Capacity,
		RoomType:     strings.TrimSpace(input.RoomType),
		Floor:        input.Floor,
		DepartmentID: input.DepartmentID,
		AcademicYear: term.AcademicYear,
		IsActive:     true,
		History: domain.History{}.Append(
			s.newHistoryEntry(actorID, domain.HistoryActionCreated, term.AcademicYear),
		),
	}
	created, err := s.rooms.Create(ctx, room)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publishEvent(ctx, events.Event{
		Type:     events.EventRoomCreated,
		RoomCode: created.RoomCode,
		ActorID:  actorID,
		Payload: events.RoomCreatedPayload{
			RoomID:       created.ID,
			DepartmentID: created.DepartmentID,
			AcademicYear: created.AcademicYear,
		},
	})
	return created, nil
}

// ProcessRoomUpdate applies a field patch to the active room with the given
// code, appending an update history entry in the same storage operation.
func (s *RoomService) ProcessRoomUpdate(ctx context.Context, code string, input RoomUpdateInput, actorID string) (*domain.Room, error) {
	term, err := s.resolveActiveTerm(ctx)
	if err != nil {
		return nil, err
	}

	patch := repository.RoomPatch{
		RoomName:     trimmed(input.RoomName),
		Capacity:     input.Capacity,
		RoomType:     trimmed(input.RoomType),
		Floor:        input.Floor,
		AcademicYear: &term.AcademicYear,
	}
	if input.ClearDepartment {
		var cleared *string
		patch.DepartmentID = &cleared
	} else if input.DepartmentID != nil {
		patch.DepartmentID = &input.DepartmentID
	}

	entry := s.newHistoryEntry(actorID, domain.HistoryActionUpdated, term.AcademicYear)
	room, err := s.rooms.Update(ctx, code, patch, &entry)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if room == nil {
		return nil, apperrors.NewRoomNotFound(code)
	}
	s.publishEvent(ctx, events.Event{
		Type:     events.EventRoomUpdated,
		RoomCode: room.RoomCode,
		ActorID:  actorID,
		Payload: events.RoomUpdatedPayload{
			RoomID:       room.ID,
			DepartmentID: room.DepartmentID,
			AcademicYear: room.AcademicYear,
		},
	})
	return room, nil
}

// ProcessRoomDeletion soft-deletes the active room with the given code,
// appending a fully formed deletion entry stamped with the resolved academic
// year in the same storage operation. The room is never physically destroyed.
func (s *RoomService) ProcessRoomDeletion(ctx context.Context, code string, actorID string) (*domain.Room, error) {
	term, err := s.resolveActiveTerm(ctx)
	if err != nil {
		return nil, err
	}

	entry := s.newHistoryEntry(actorID, domain.HistoryActionDeleted, term.AcademicYear)
	room, err := s.rooms.Delete(ctx, code, repository.RoomPatch{}, entry)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if room == nil {
		return nil, apperrors.NewRoomDeletionFailed(code)
	}
	s.publishEvent(ctx, events.Event{
		Type:     events.EventRoomDeleted,
		RoomCode: room.RoomCode,
		ActorID:  actorID,
		Payload: events.RoomDeletedPayload{
			RoomID:       room.ID,
			DepartmentID: room.DepartmentID,
			AcademicYear: room.AcademicYear,
		},
	})
	return room, nil
}

// GetRoomByCode returns the active room for the code together with display
// names for its history authors.
func (s *RoomService) GetRoomByCode(ctx context.Context, code string) (*domain.Room, map[string]string, error) {
	room, err := s.rooms.GetActiveByCode(ctx, code)
	if err != nil {
		return nil, nil, apperrors.MapError(err)
	}
	if room == nil {
		return nil, nil, apperrors.NewRoomNotFound(code)
	}
	names, err := s.historyAuthorNames(ctx, room.History)
	if err != nil {
		return nil, nil, apperrors.MapError(err)
	}
	return room, names, nil
}

// ListActiveRooms returns all active rooms joined with department info,
// sorted by room code. Read-only; history is never touched.
func (s *RoomService) ListActiveRooms(ctx context.Context) ([]domain.Room, error) {
	rooms, err := s.rooms.ListActive(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return rooms, nil
}

// ListRoomsByDepartment returns active rooms belonging to the department or
// carrying no department at all.
func (s *RoomService) ListRoomsByDepartment(ctx context.Context, departmentID *string) ([]domain.Room, error) {
	rooms, err := s.rooms.ListByDepartment(ctx, departmentID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return rooms, nil
}

func (s *RoomService) resolveActiveTerm(ctx context.Context) (*domain.Term, error) {
	term, err := s.terms.GetActive(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if term == nil {
		return nil, apperrors.NewNoActiveTerm()
	}
	return term, nil
}

func (s *RoomService) historyAuthorNames(ctx context.Context, history domain.History) (map[string]string, error) {
	seen := make(map[string]struct{}, len(history))
	ids := make([]string, 0, len(history))
	for _, entry := range history {
		if entry.UpdatedBy == "" {
			continue
		}
		if _, ok := seen[entry.UpdatedBy]; ok {
			continue
		}
		seen[entry.UpdatedBy] = struct{}{}
		ids = append(ids, entry.UpdatedBy)
	}
	return s.users.DisplayNamesByIDs(ctx, ids)
}

func (s *RoomService) newHistoryEntry(actorID string, action domain.HistoryAction, academicYear string) domain.HistoryEntry {
	return domain.HistoryEntry{
		ID:           uuid.NewString(),
		UpdatedBy:    actorID,
		UpdatedAt:    time.Now().UTC(),
		Action:       action,
		AcademicYear: academicYear,
	}
}

func (s *RoomService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	return &t
}
