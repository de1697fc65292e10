package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/academic-admin-service/internal/domain"
)

// RoomPatch captures a partial field update for an active room. Nil fields are
// left untouched. DepartmentID uses a double pointer so a patch can clear the
// association (outer non-nil, inner nil) as well as set it.
type RoomPatch struct {
	RoomName     *string
	Capacity     *int
	RoomType     *string
	Floor        *int
	DepartmentID **string
	AcademicYear *string
}

// IsZero reports whether the patch carries no field changes.
func (p RoomPatch) IsZero() bool {
	return p.RoomName == nil && p.Capacity == nil && p.RoomType == nil &&
		p.Floor == nil && p.DepartmentID == nil && p.AcademicYear == nil
}

// RoomRepository encapsulates room persistence. Lookups scoped by code return
// (nil, nil) when no matching row exists; callers translate that into named
// errors. Every mutation that appends history does so in the same statement
// as the field change, so the patch and the history entry commit together or
// not at all.
type RoomRepository interface {
	Create(ctx context.Context, room *domain.Room) (*domain.Room, error)
	GetActiveByCode(ctx context.Context, code string) (*domain.Room, error)
	GetInactiveByCode(ctx context.Context, code string) (*domain.Room, error)
	Reactivate(ctx context.Context, code string, entry domain.HistoryEntry) (*domain.Room, error)
	Update(ctx context.Context, code string, patch RoomPatch, entry *domain.HistoryEntry) (*domain.Room, error)
	Delete(ctx context.Context, code string, patch RoomPatch, entry domain.HistoryEntry) (*domain.Room, error)
	ListActive(ctx context.Context) ([]domain.Room, error)
	ListByDepartment(ctx context.Context, departmentID *string) ([]domain.Room, error)
}

type roomRepository struct {
	pool *pgxpool.Pool
}

// NewRoomRepository returns a Postgres-backed implementation.
func NewRoomRepository(pool *pgxpool.Pool) RoomRepository {
	return &roomRepository{pool: pool}
}

const roomJoinedColumns = `
        r.id, r.room_code, r.room_name, r.capacity, r.room_type, r.floor,
        r.department_id, r.academic_year, r.is_active, r.update_history,
        r.created_at, r.updated_at,
        d.id, d.department_code, d.department_name`

const roomJoinedFrom = `
        FROM rooms r
        LEFT JOIN departments d ON d.id = r.department_id`

func (r *roomRepository) Create(ctx context.Context, room *domain.Room) (*domain.Room, error) {
	historyJSON, err := json.Marshal(room.History)
	if err != nil {
		return nil, err
	}

	const query = `
        INSERT INTO rooms (room_code, room_name, capacity, room_type, floor, department_id, academic_year, update_history)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8::jsonb)
        RETURNING id, created_at, updated_at`
	if err := r.pool.QueryRow(ctx, query,
		room.RoomCode,
		room.RoomName,
		room.Capacity,
		room.RoomType,
		room.Floor,
		room.DepartmentID,
		room.AcademicYear,
		historyJSON,
	).Scan(&room.ID, &room.CreatedAt, &room.UpdatedAt); err != nil {
		return nil, err
	}
	return r.GetActiveByCode(ctx, room.RoomCode)
}

func (r *roomRepository) GetActiveByCode(ctx context.Context, code string) (*domain.Room, error) {
	return r.getByCode(ctx, code, true)
}

func (r *roomRepository) GetInactiveByCode(ctx context.Context, code string) (*domain.Room, error) {
	return r.getByCode(ctx, code, false)
}

func (r *roomRepository) getByCode(ctx context.Context, code string, active bool) (*domain.Room, error) {
	query := `SELECT` + roomJoinedColumns + roomJoinedFrom + `
        WHERE r.room_code=$1 AND r.is_active=$2
        ORDER BY r.updated_at DESC
        LIMIT 1`
	room, err := r.scanJoinedRow(r.pool.QueryRow(ctx, query, code, active))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return room, nil
}

func (r *roomRepository) Reactivate(ctx context.Context, code string, entry domain.HistoryEntry) (*domain.Room, error) {
	entryJSON, err := json.Marshal(entry)
	if err != nil {
		return nil, err
	}

	const query = `
        UPDATE rooms
        SET is_active = TRUE,
            update_history = update_history || $2::jsonb,
            updated_at = NOW()
        WHERE room_code=$1 AND is_active=FALSE
        RETURNING id`
	var id string
	if err := r.pool.QueryRow(ctx, query, code, entryJSON).Scan(&id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return r.GetActiveByCode(ctx, code)
}

func (r *roomRepository) Update(ctx context.Context, code string, patch RoomPatch, entry *domain.HistoryEntry) (*domain.Room, error) {
	sets := []string{"updated_at = NOW()"}
	args := []any{code}

	appendSet := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if patch.RoomName != nil {
		appendSet("room_name", *patch.RoomName)
	}
	if patch.Capacity != nil {
		appendSet("capacity", *patch.Capacity)
	}
	if patch.RoomType != nil {
		appendSet("room_type", *patch.RoomType)
	}
	if patch.Floor != nil {
		appendSet("floor", *patch.Floor)
	}
	if patch.DepartmentID != nil {
		appendSet("department_id", *patch.DepartmentID)
	}
	if patch.AcademicYear != nil {
		appendSet("academic_year", *patch.AcademicYear)
	}
	if entry != nil {
		entryJSON, err := json.Marshal(entry)
		if err != nil {
			return nil, err
		}
		args = append(args, entryJSON)
		sets = append(sets, fmt.Sprintf("update_history = update_history || $%d::jsonb", len(args)))
	}

	query := fmt.Sprintf(`
        UPDATE rooms SET %s
        WHERE room_code=$1 AND is_active=TRUE
        RETURNING id`, strings.Join(sets, ", "))
	var id string
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return r.GetActiveByCode(ctx, code)
}

func (r *roomRepository) Delete(ctx context.Context, code string, patch RoomPatch, entry domain.HistoryEntry) (*domain.Room, error) {
	entryJSON, err := json.Marshal(entry)
	if err != nil {
		return nil, err
	}

	sets := []string{
		"is_active = FALSE",
		"updated_at = NOW()",
	}
	args := []any{code, entryJSON}
	sets = append(sets, "update_history = update_history || $2::jsonb")

	appendSet := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if patch.RoomName != nil {
		appendSet("room_name", *patch.RoomName)
	}
	if patch.Capacity != nil {
		appendSet("capacity", *patch.Capacity)
	}
	if patch.RoomType != nil {
		appendSet("room_type", *patch.RoomType)
	}
	if patch.Floor != nil {
		appendSet("floor", *patch.Floor)
	}
	if patch.AcademicYear != nil {
		appendSet("academic_year", *patch.AcademicYear)
	}

	query := fmt.Sprintf(`
        UPDATE rooms SET %s
        WHERE room_code=$1 AND is_active=TRUE
        RETURNING id`, strings.Join(sets, ", "))
	var id string
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return r.getByID(ctx, id)
}

func (r *roomRepository) getByID(ctx context.Context, id string) (*domain.Room, error) {
	query := `SELECT` + roomJoinedColumns + roomJoinedFrom + `
        WHERE r.id=$1`
	return r.scanJoinedRow(r.pool.QueryRow(ctx, query, id))
}

func (r *roomRepository) ListActive(ctx context.Context) ([]domain.Room, error) {
	query := `SELECT` + roomJoinedColumns + roomJoinedFrom + `
        WHERE r.is_active=TRUE
        ORDER BY r.room_code ASC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return r.scanJoinedRows(rows)
}

// ListByDepartment returns active rooms owned by the department alongside
// rooms with no department at all. Older documents that predate the
// department field land in the same NULL bucket at write time, so a single
// nullable column covers all historical shapes.
func (r *roomRepository) ListByDepartment(ctx context.Context, departmentID *string) ([]domain.Room, error) {
	query := `SELECT` + roomJoinedColumns + roomJoinedFrom + `
        WHERE r.is_active=TRUE AND (r.department_id = $1 OR r.department_id IS NULL)
        ORDER BY r.room_code ASC`
	rows, err := r.pool.Query(ctx, query, departmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return r.scanJoinedRows(rows)
}

func (r *roomRepository) scanJoinedRow(row pgx.Row) (*domain.Room, error) {
	var (
		room     domain.Room
		deptID   *string
		deptCode *string
		deptName *string
	)
	if err := row.Scan(
		&room.ID,
		&room.RoomCode,
		&room.RoomName,
		&room.Capacity,
		&room.RoomType,
		&room.Floor,
		&room.DepartmentID,
		&room.AcademicYear,
		&room.IsActive,
		&room.History,
		&room.CreatedAt,
		&room.UpdatedAt,
		&deptID,
		&deptCode,
		&deptName,
	); err != nil {
		return nil, err
	}
	if deptID != nil {
		room.Department = &domain.Department{
			ID:             *deptID,
			DepartmentCode: deref(deptCode),
			DepartmentName: deref(deptName),
		}
	}
	return &room, nil
}

func (r *roomRepository) scanJoinedRows(rows pgx.Rows) ([]domain.Room, error) {
	var result []domain.Room
	for rows.Next() {
		room, err := r.scanJoinedRow(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *room)
	}
	return result, rows.Err()
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
