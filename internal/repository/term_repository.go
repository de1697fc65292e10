package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/academic-admin-service/internal/domain"
)

// TermRepository resolves and manages academic terms. GetActive is the term
// resolver every room mutation depends on: it returns (nil, nil) when no term
// holds the Active status and performs no writes.
type TermRepository interface {
	Create(ctx context.Context, term *domain.Term) error
	GetByID(ctx context.Context, id string) (*domain.Term, error)
	GetActive(ctx context.Context) (*domain.Term, error)
	List(ctx context.Context) ([]domain.Term, error)
	SetActive(ctx context.Context, id string) (*domain.Term, error)
}

type termRepository struct {
	pool *pgxpool.Pool
}

// NewTermRepository returns a Postgres-backed implementation.
func NewTermRepository(pool *pgxpool.Pool) TermRepository {
	return &termRepository{pool: pool}
}

const termColumns = `id, academic_year, name, status, start_date, end_date, created_at, updated_at`

func (r *termRepository) Create(ctx context.Context, term *domain.Term) error {
	const query = `
        INSERT INTO terms (academic_year, name, status, start_date, end_date)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		term.AcademicYear,
		term.Name,
		term.Status,
		term.StartDate,
		term.EndDate,
	).Scan(&term.ID, &term.CreatedAt, &term.UpdatedAt)
}

func (r *termRepository) GetByID(ctx context.Context, id string) (*domain.Term, error) {
	const query = `SELECT ` + termColumns + ` FROM terms WHERE id=$1`
	return scanTerm(r.pool.QueryRow(ctx, query, id))
}

func (r *termRepository) GetActive(ctx context.Context) (*domain.Term, error) {
	const query = `SELECT ` + termColumns + ` FROM terms WHERE status=$1`
	term, err := scanTerm(r.pool.QueryRow(ctx, query, domain.TermStatusActive))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return term, nil
}

func (r *termRepository) List(ctx context.Context) ([]domain.Term, error) {
	const query = `SELECT ` + termColumns + ` FROM terms ORDER BY academic_year DESC, name ASC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Term
	for rows.Next() {
		term, err := scanTerm(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *term)
	}
	return result, rows.Err()
}

// SetActive archives the current active term and promotes the target inside
// one transaction, preserving the single-active-term invariant.
func (r *termRepository) SetActive(ctx context.Context, id string) (*domain.Term, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if _, err := tx.Exec(ctx,
		`UPDATE terms SET status=$1, updated_at=NOW() WHERE status=$2`,
		domain.TermStatusArchived, domain.TermStatusActive,
	); err != nil {
		return nil, err
	}

	term, err := scanTerm(tx.QueryRow(ctx,
		`UPDATE terms SET status=$1, updated_at=NOW() WHERE id=$2 RETURNING `+termColumns,
		domain.TermStatusActive, id,
	))
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return term, nil
}

func scanTerm(row pgx.Row) (*domain.Term, error) {
	var term domain.Term
	if err := row.Scan(
		&term.ID,
		&term.AcademicYear,
		&term.Name,
		&term.Status,
		&term.StartDate,
		&term.EndDate,
		&term.CreatedAt,
		&term.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &term, nil
}
