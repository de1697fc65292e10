package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/academic-admin-service/internal/domain"
	"github.com/spec-kit/academic-admin-service/internal/events"
	"github.com/spec-kit/academic-admin-service/internal/repository"
	apperrors "github.com/spec-kit/academic-admin-service/pkg/util/errorutil"
)

type MockRoomRepository struct {
	mock.Mock
}

func (m *MockRoomRepository) Create(ctx context.Context, room *domain.Room) (*domain.Room, error) {
	args := m.Called(ctx, room)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Room), args.Error(1)
}

func (m *MockRoomRepository) GetActiveByCode(ctx context.Context, code string) (*domain.Room, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Room), args.Error(1)
}

func (m *MockRoomRepository) GetInactiveByCode(ctx context.Context, code string) (*domain.Room, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Room), args.Error(1)
}

func (m *MockRoomRepository) Reactivate(ctx context.Context, code string, entry domain.HistoryEntry) (*domain.Room, error) {
	args := m.Called(ctx, code, entry)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Room), args.Error(1)
}

func (m *MockRoomRepository) Update(ctx context.Context, code string, patch repository.RoomPatch, entry *domain.HistoryEntry) (*domain.Room, error) {
	args := m.Called(ctx, code, patch, entry)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Room), args.Error(1)
}

func (m *MockRoomRepository) Delete(ctx context.Context, code string, patch repository.RoomPatch, entry domain.HistoryEntry) (*domain.Room, error) {
	args := m.Called(ctx, code, patch, entry)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Room), args.Error(1)
}

func (m *MockRoomRepository) ListActive(ctx context.Context) ([]domain.Room, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Room), args.Error(1)
}

func (m *MockRoomRepository) ListByDepartment(ctx context.Context, departmentID *string) ([]domain.Room, error) {
	args := m.Called(ctx, departmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Room), args.Error(1)
}

type MockTermRepository struct {
	mock.Mock
}

func (m *MockTermRepository) Create(ctx context.Context, term *domain.Term) error {
	args := m.Called(ctx, term)
	return args.Error(0)
}

func (m *MockTermRepository) GetByID(ctx context.Context, id string) (*domain.Term, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Term), args.Error(1)
}

func (m *MockTermRepository) GetActive(ctx context.Context) (*domain.Term, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Term), args.Error(1)
}

func (m *MockTermRepository) List(ctx context.Context) ([]domain.Term, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Term), args.Error(1)
}

func (m *MockTermRepository) SetActive(ctx context.Context, id string) (*domain.Term, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Term), args.Error(1)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserRepository) DisplayNamesByIDs(ctx context.Context, ids []string) (map[string]string, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]string), args.Error(1)
}

type recordingDispatcher struct {
	published []events.Event
}

func (d *recordingDispatcher) Publish(_ context.Context, event events.Event) error {
	d.published = append(d.published, event)
	return nil
}

func (d *recordingDispatcher) Subscribe(events.EventType, events.EventHandler) {}

func activeTerm() *domain.Term {
	return &domain.Term{
		ID:           "term-1",
		AcademicYear: "2024-2025",
		Name:         "First Semester",
		Status:       domain.TermStatusActive,
	}
}

func newTestService(rooms *MockRoomRepository, terms *MockTermRepository, users *MockUserRepository, dispatcher events.Dispatcher) *RoomService {
	return NewRoomService(RoomDependencies{
		RoomRepo:   rooms,
		TermRepo:   terms,
		UserRepo:   users,
		Dispatcher: dispatcher,
	})
}

func requireDomainCode(t *testing.T, err error, code string) {
	t.Helper()
	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	require.Equal(t, code, domainErr.Code)
}

func TestProcessRoomCreation_FreshRoom(t *testing.T) {
	rooms := new(MockRoomRepository)
	terms := new(MockTermRepository)
	dispatcher := &recordingDispatcher{}
	svc := newTestService(rooms, terms, new(MockUserRepository), dispatcher)

	terms.On("GetActive", mock.Anything).Return(activeTerm(), nil)
	rooms.On("GetActiveByCode", mock.Anything, "R101").Return(nil, nil)
	rooms.On("GetInactiveByCode", mock.Anything, "R101").Return(nil, nil)
	rooms.On("Create", mock.Anything, mock.MatchedBy(func(room *domain.Room) bool {
		return room.RoomCode == "R101" &&
			room.AcademicYear == "2024-2025" &&
			room.IsActive &&
			len(room.History) == 1 &&
			room.History[0].Action == domain.HistoryActionCreated &&
			room.History[0].AcademicYear == "2024-2025" &&
			room.History[0].UpdatedBy == "user-1"
	})).Return(&domain.Room{
		ID:           "room-1",
		RoomCode:     "R101",
		Capacity:     30,
		AcademicYear: "2024-2025",
		IsActive:     true,
		History: domain.History{{
			Action:       domain.HistoryActionCreated,
			AcademicYear: "2024-2025",
			UpdatedBy:    "user-1",
		}},
	}, nil)

	room, err := svc.ProcessRoomCreation(context.Background(), RoomCreateInput{
		RoomCode: "R101",
		Capacity: 30,
	}, "user-1")
	require.NoError(t, err)
	require.True(t, room.IsActive)
	require.Equal(t, "2024-2025", room.AcademicYear)
	require.Len(t, room.History, 1)
	require.Equal(t, domain.HistoryActionCreated, room.History[0].Action)

	require.Len(t, dispatcher.published, 1)
	require.Equal(t, events.EventRoomCreated, dispatcher.published[0].Type)
	rooms.AssertExpectations(t)
	terms.AssertExpectations(t)
}

func TestProcessRoomCreation_ReactivatesInactiveRoom(t *testing.T) {
	rooms := new(MockRoomRepository)
	terms := new(MockTermRepository)
	dispatcher := &recordingDispatcher{}
	svc := newTestService(rooms, terms, new(MockUserRepository), dispatcher)

	inactive := &domain.Room{
		ID:       "room-1",
		RoomCode: "R101",
		IsActive: false,
		History: domain.History{
			{Action: domain.HistoryActionCreated, AcademicYear: "2023-2024"},
			{Action: domain.HistoryActionDeleted, AcademicYear: "2024-2025"},
		},
	}
	reactivated := &domain.Room{
		ID:       "room-1",
		RoomCode: "R101",
		IsActive: true,
		History: inactive.History.Append(domain.HistoryEntry{
			Action:       domain.HistoryActionUpdated,
			AcademicYear: "2024-2025",
			UpdatedBy:    "user-2",
		}),
	}

	terms.On("GetActive", mock.Anything).Return(activeTerm(), nil)
	rooms.On("GetActiveByCode", mock.Anything, "R101").Return(nil, nil)
	rooms.On("GetInactiveByCode", mock.Anything, "R101").Return(inactive, nil)
	rooms.On("Reactivate", mock.Anything, "R101", mock.MatchedBy(func(entry domain.HistoryEntry) bool {
		return entry.Action == domain.HistoryActionUpdated &&
			entry.AcademicYear == "2024-2025" &&
			entry.UpdatedBy == "user-2"
	})).Return(reactivated, nil)

	room, err := svc.ProcessRoomCreation(context.Background(), RoomCreateInput{RoomCode: "R101"}, "user-2")
	require.NoError(t, err)

	// Same stable identity, prior history preserved in order, new entry last.
	require.Equal(t, "room-1", room.ID)
	require.True(t, room.IsActive)
	require.Len(t, room.History, 3)
	require.Equal(t, domain.HistoryActionCreated, room.History[0].Action)
	require.Equal(t, domain.HistoryActionDeleted, room.History[1].Action)
	require.Equal(t, domain.HistoryActionUpdated, room.History[2].Action)

	rooms.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	require.Len(t, dispatcher.published, 1)
	payload := dispatcher.published[0].Payload.(events.RoomCreatedPayload)
	require.True(t, payload.Reactivated)
}

func TestProcessRoomCreation_DuplicateActiveCode(t *testing.T) {
	rooms := new(MockRoomRepository)
	terms := new(MockTermRepository)
	dispatcher := &recordingDispatcher{}
	svc := newTestService(rooms, terms, new(MockUserRepository), dispatcher)

	terms.On("GetActive", mock.Anything).Return(activeTerm(), nil)
	rooms.On("GetActiveByCode", mock.Anything, "R101").Return(&domain.Room{
		ID:       "room-1",
		RoomCode: "R101",
		IsActive: true,
	}, nil)

	_, err := svc.ProcessRoomCreation(context.Background(), RoomCreateInput{RoomCode: "R101"}, "user-1")
	requireDomainCode(t, err, "DUPLICATE_ROOM_CODE")

	// Storage untouched beyond the existence check.
	rooms.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	rooms.AssertNotCalled(t, "Reactivate", mock.Anything, mock.Anything, mock.Anything)
	require.Empty(t, dispatcher.published)
}

func TestProcessRoomCreation_NoActiveTerm(t *testing.T) {
	rooms := new(MockRoomRepository)
	terms := new(MockTermRepository)
	svc := newTestService(rooms, terms, new(MockUserRepository), &recordingDispatcher{})

	terms.On("GetActive", mock.Anything).Return(nil, nil)

	_, err := svc.ProcessRoomCreation(context.Background(), RoomCreateInput{RoomCode: "R101"}, "user-1")
	requireDomainCode(t, err, "NO_ACTIVE_TERM")
	rooms.AssertNotCalled(t, "GetActiveByCode", mock.Anything, mock.Anything)
}

func TestProcessRoomCreation_BlankCodeRejected(t *testing.T) {
	rooms := new(MockRoomRepository)
	terms := new(MockTermRepository)
	svc := newTestService(rooms, terms, new(MockUserRepository), &recordingDispatcher{})

	terms.On("GetActive", mock.Anything).Return(activeTerm(), nil)

	_, err := svc.ProcessRoomCreation(context.Background(), RoomCreateInput{RoomCode: "   "}, "user-1")
	requireDomainCode(t, err, "VALIDATION_FAILED")
}

func TestProcessRoomUpdate_StampsTermAndHistory(t *testing.T) {
	rooms := new(MockRoomRepository)
	terms := new(MockTermRepository)
	dispatcher := &recordingDispatcher{}
	svc := newTestService(rooms, terms, new(MockUserRepository), dispatcher)

	name := "Physics Lab"
	terms.On("GetActive", mock.Anything).Return(activeTerm(), nil)
	rooms.On("Update", mock.Anything, "R101",
		mock.MatchedBy(func(patch repository.RoomPatch) bool {
			return patch.RoomName != nil && *patch.RoomName == "Physics Lab" &&
				patch.AcademicYear != nil && *patch.AcademicYear == "2024-2025"
		}),
		mock.MatchedBy(func(entry *domain.HistoryEntry) bool {
			return entry != nil &&
				entry.Action == domain.HistoryActionUpdated &&
				entry.AcademicYear == "2024-2025"
		}),
	).Return(&domain.Room{ID: "room-1", RoomCode: "R101", RoomName: "Physics Lab", IsActive: true}, nil)

	room, err := svc.ProcessRoomUpdate(context.Background(), "R101", RoomUpdateInput{RoomName: &name}, "user-1")
	require.NoError(t, err)
	require.Equal(t, "Physics Lab", room.RoomName)
	require.Len(t, dispatcher.published, 1)
	require.Equal(t, events.EventRoomUpdated, dispatcher.published[0].Type)
}

func TestProcessRoomUpdate_NotFound(t *testing.T) {
	rooms := new(MockRoomRepository)
	terms := new(MockTermRepository)
	dispatcher := &recordingDispatcher{}
	svc := newTestService(rooms, terms, new(MockUserRepository), dispatcher)

	terms.On("GetActive", mock.Anything).Return(activeTerm(), nil)
	rooms.On("Update", mock.Anything, "MISSING", mock.Anything, mock.Anything).Return(nil, nil)

	_, err := svc.ProcessRoomUpdate(context.Background(), "MISSING", RoomUpdateInput{}, "user-1")
	requireDomainCode(t, err, "ROOM_NOT_FOUND")
	require.Empty(t, dispatcher.published)
}

func TestProcessRoomDeletion_AppendsDeletionEntry(t *testing.T) {
	rooms := new(MockRoomRepository)
	terms := new(MockTermRepository)
	dispatcher := &recordingDispatcher{}
	svc := newTestService(rooms, terms, new(MockUserRepository), dispatcher)

	terms.On("GetActive", mock.Anything).Return(activeTerm(), nil)
	rooms.On("Delete", mock.Anything, "R101", repository.RoomPatch{},
		mock.MatchedBy(func(entry domain.HistoryEntry) bool {
			return entry.Action == domain.HistoryActionDeleted &&
				entry.AcademicYear == "2024-2025" &&
				entry.UpdatedBy == "user-1" &&
				entry.ID != ""
		}),
	).Return(&domain.Room{
		ID:       "room-1",
		RoomCode: "R101",
		IsActive: false,
		History: domain.History{
			{Action: domain.HistoryActionCreated, AcademicYear: "2024-2025"},
			{Action: domain.HistoryActionDeleted, AcademicYear: "2024-2025"},
		},
	}, nil)

	room, err := svc.ProcessRoomDeletion(context.Background(), "R101", "user-1")
	require.NoError(t, err)
	require.False(t, room.IsActive)
	require.Len(t, room.History, 2)
	require.Equal(t, domain.HistoryActionDeleted, room.History[1].Action)
	require.Equal(t, "2024-2025", room.History[1].AcademicYear)
	require.Len(t, dispatcher.published, 1)
	require.Equal(t, events.EventRoomDeleted, dispatcher.published[0].Type)
}

func TestProcessRoomDeletion_NoActiveRoom(t *testing.T) {
	rooms := new(MockRoomRepository)
	terms := new(MockTermRepository)
	svc := newTestService(rooms, terms, new(MockUserRepository), &recordingDispatcher{})

	terms.On("GetActive", mock.Anything).Return(activeTerm(), nil)
	rooms.On("Delete", mock.Anything, "MISSING", mock.Anything, mock.Anything).Return(nil, nil)

	_, err := svc.ProcessRoomDeletion(context.Background(), "MISSING", "user-1")
	requireDomainCode(t, err, "ROOM_DELETION_FAILED")
}

func TestProcessRoomDeletion_NoActiveTerm(t *testing.T) {
	rooms := new(MockRoomRepository)
	terms := new(MockTermRepository)
	svc := newTestService(rooms, terms, new(MockUserRepository), &recordingDispatcher{})

	terms.On("GetActive", mock.Anything).Return(nil, nil)

	_, err := svc.ProcessRoomDeletion(context.Background(), "R101", "user-1")
	requireDomainCode(t, err, "NO_ACTIVE_TERM")
	rooms.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestResolveActiveTerm_IdempotentWithinOperation(t *testing.T) {
	terms := new(MockTermRepository)
	svc := newTestService(new(MockRoomRepository), terms, new(MockUserRepository), &recordingDispatcher{})

	terms.On("GetActive", mock.Anything).Return(activeTerm(), nil).Twice()

	first, err := svc.resolveActiveTerm(context.Background())
	require.NoError(t, err)
	second, err := svc.resolveActiveTerm(context.Background())
	require.NoError(t, err)
	require.Equal(t, first.AcademicYear, second.AcademicYear)
	terms.AssertExpectations(t)
}

func TestGetRoomByCode_ResolvesHistoryAuthors(t *testing.T) {
	rooms := new(MockRoomRepository)
	users := new(MockUserRepository)
	svc := newTestService(rooms, new(MockTermRepository), users, &recordingDispatcher{})

	rooms.On("GetActiveByCode", mock.Anything, "R101").Return(&domain.Room{
		ID:       "room-1",
		RoomCode: "R101",
		IsActive: true,
		History: domain.History{
			{UpdatedBy: "user-1", Action: domain.HistoryActionCreated},
			{UpdatedBy: "user-2", Action: domain.HistoryActionUpdated},
			{UpdatedBy: "user-1", Action: domain.HistoryActionUpdated},
		},
	}, nil)
	users.On("DisplayNamesByIDs", mock.Anything, []string{"user-1", "user-2"}).Return(map[string]string{
		"user-1": "Jane Cooper",
		"user-2": "Alex Reyes",
	}, nil)

	_, names, err := svc.GetRoomByCode(context.Background(), "R101")
	require.NoError(t, err)
	require.Equal(t, "Jane Cooper", names["user-1"])
	require.Equal(t, "Alex Reyes", names["user-2"])
	users.AssertExpectations(t)
}

func TestGetRoomByCode_NotFound(t *testing.T) {
	rooms := new(MockRoomRepository)
	svc := newTestService(rooms, new(MockTermRepository), new(MockUserRepository), &recordingDispatcher{})

	rooms.On("GetActiveByCode", mock.Anything, "MISSING").Return(nil, nil)

	_, _, err := svc.GetRoomByCode(context.Background(), "MISSING")
	requireDomainCode(t, err, "ROOM_NOT_FOUND")
}

func TestListActiveRooms_WrapsStorageFailure(t *testing.T) {
	rooms := new(MockRoomRepository)
	svc := newTestService(rooms, new(MockTermRepository), new(MockUserRepository), &recordingDispatcher{})

	rooms.On("ListActive", mock.Anything).Return(nil, errors.New("connection reset"))

	_, err := svc.ListActiveRooms(context.Background())
	requireDomainCode(t, err, "STORAGE_ERROR")
}

func TestListRoomsByDepartment_PassesNilForUnowned(t *testing.T) {
	rooms := new(MockRoomRepository)
	svc := newTestService(rooms, new(MockTermRepository), new(MockUserRepository), &recordingDispatcher{})

	rooms.On("ListByDepartment", mock.Anything, (*string)(nil)).Return([]domain.Room{}, nil)

	result, err := svc.ListRoomsByDepartment(context.Background(), nil)
	require.NoError(t, err)
	require.Empty(t, result)
	rooms.AssertExpectations(t)
}

func TestHistoryEntryTimestampsAreUTC(t *testing.T) {
	svc := newTestService(new(MockRoomRepository), new(MockTermRepository), new(MockUserRepository), nil)

	entry := svc.newHistoryEntry("user-1", domain.HistoryActionCreated, "2024-2025")
	require.Equal(t, time.UTC, entry.UpdatedAt.Location())
	require.NotEmpty(t, entry.ID)
}
