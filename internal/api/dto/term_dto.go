package dto

import (
	"github.com/spec-kit/academic-admin-service/internal/domain"
)

// CreateTermRequest payload.
type CreateTermRequest struct {
	AcademicYear string `json:"academic_year" form:"academic_year"`
	Name         string `json:"name" form:"name"`
}

// TermResponse is the transport form of a term.
type TermResponse struct {
	ID           string `json:"id"`
	AcademicYear string `json:"academic_year"`
	Name         string `json:"name"`
	Status       string `json:"status"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`
}

// NewTermResponse projects a term.
func NewTermResponse(term *domain.Term) TermResponse {
	return TermResponse{
		ID:           term.ID,
		AcademicYear: term.AcademicYear,
		Name:         term.Name,
		Status:       string(term.Status),
		CreatedAt:    FormatTimestamp(term.CreatedAt),
		UpdatedAt:    FormatTimestamp(term.UpdatedAt),
	}
}

// NewTermResponses projects a listing in order.
func NewTermResponses(terms []domain.Term) []TermResponse {
	result := make([]TermResponse, 0, len(terms))
	for i := range terms {
		result = append(result, NewTermResponse(&terms[i]))
	}
	return result
}
