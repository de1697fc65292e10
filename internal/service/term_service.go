package service

import (
	"context"
	"strings"

	"github.com/spec-kit/academic-admin-service/internal/domain"
	"github.com/spec-kit/academic-admin-service/internal/repository"
	apperrors "github.com/spec-kit/academic-admin-service/pkg/util/errorutil"
)

// TermService manages academic terms.
type TermService struct {
	terms repository.TermRepository
}

// TermCreateInput describes term creation payload.
type TermCreateInput struct {
	AcademicYear string
	Name         string
}

// NewTermService constructs the service.
func NewTermService(terms repository.TermRepository) *TermService {
	return &TermService{terms: terms}
}

// CreateTerm registers a new term in the Upcoming state; terms become Active
// only through ActivateTerm so the single-active invariant is never violated
// on insert.
func (s *TermService) CreateTerm(ctx context.Context, input TermCreateInput) (*domain.Term, error) {
	year := strings.TrimSpace(input.AcademicYear)
	name := strings.TrimSpace(input.Name)
	if year == "" || name == "" {
		return nil, apperrors.NewValidationError("academic_year and name required", nil)
	}

	term := &domain.Term{
		AcademicYear: year,
		Name:         name,
		Status:       domain.TermStatusUpcoming,
	}
	if err := s.terms.Create(ctx, term); err != nil {
		return nil, apperrors.MapError(err)
	}
	return term, nil
}

// ActivateTerm promotes a term to Active, archiving the previous active term.
func (s *TermService) ActivateTerm(ctx context.Context, id string) (*domain.Term, error) {
	term, err := s.terms.SetActive(ctx, id)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return term, nil
}

// GetActiveTerm resolves the single currently active term.
func (s *TermService) GetActiveTerm(ctx context.Context) (*domain.Term, error) {
	term, err := s.terms.GetActive(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if term == nil {
		return nil, apperrors.NewNoActiveTerm()
	}
	return term, nil
}

// ListTerms returns all terms.
func (s *TermService) ListTerms(ctx context.Context) ([]domain.Term, error) {
	terms, err := s.terms.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return terms, nil
}
