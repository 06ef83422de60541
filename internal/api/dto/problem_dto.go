package dto

import (
	"time"

	"github.com/spec-kit/algo-tracker/internal/domain"
)

// CreateProblemRequest payload. Ownership comes from the bearer token, never
// from the body.
type CreateProblemRequest struct {
	ProblemID        string     `json:"problem_id" validate:"required"`
	Title            string     `json:"title" validate:"required,max=200"`
	URL              string     `json:"url" validate:"required,url"`
	Difficulty       string     `json:"difficulty" validate:"required,oneof=EASY MEDIUM HARD"`
	Language         string     `json:"language" validate:"required,max=50"`
	Attempts         int        `json:"attempts" validate:"min=0,max=1000"`
	Tags             []string   `json:"tags" validate:"max=20,dive,min=1,max=30"`
	Status           string     `json:"status" validate:"required,oneof=ATTEMPTED SOLVED REVISIT"`
	TimeTakenSeconds int        `json:"time_taken_seconds" validate:"min=0,max=86400"`
	CognitiveLoad    int        `json:"cognitive_load" validate:"omitempty,min=1,max=10"`
	DateSolved       *time.Time `json:"date_solved" validate:"omitempty,lt"`
	Notes            string     `json:"notes" validate:"max=1000"`
}

// ToDomain converts the request into a domain entry.
func (r CreateProblemRequest) ToDomain() *domain.ProblemEntry {
	entry := &domain.ProblemEntry{
		ProblemID:        r.ProblemID,
		Title:            r.Title,
		URL:              r.URL,
		Difficulty:       domain.Difficulty(r.Difficulty),
		Language:         r.Language,
		Attempts:         r.Attempts,
		Tags:             r.Tags,
		Status:           domain.ProblemStatus(r.Status),
		TimeTakenSeconds: r.TimeTakenSeconds,
		CognitiveLoad:    r.CognitiveLoad,
		Notes:            r.Notes,
	}
	if r.CognitiveLoad == 0 {
		entry.CognitiveLoad = 3
	}
	if r.DateSolved != nil {
		entry.DateSolved = *r.DateSolved
	}
	return entry
}

// UpdateProblemRequest carries partial updates; nil fields stay unchanged.
type UpdateProblemRequest struct {
	ProblemID        *string    `json:"problem_id" validate:"omitempty,min=1"`
	Title            *string    `json:"title" validate:"omitempty,min=1,max=200"`
	URL              *string    `json:"url" validate:"omitempty,url"`
	Difficulty       *string    `json:"difficulty" validate:"omitempty,oneof=EASY MEDIUM HARD"`
	Language         *string    `json:"language" validate:"omitempty,min=1,max=50"`
	Attempts         *int       `json:"attempts" validate:"omitempty,min=0,max=1000"`
	Tags             []string   `json:"tags" validate:"omitempty,max=20,dive,min=1,max=30"`
	Status           *string    `json:"status" validate:"omitempty,oneof=ATTEMPTED SOLVED REVISIT"`
	TimeTakenSeconds *int       `json:"time_taken_seconds" validate:"omitempty,min=0,max=86400"`
	CognitiveLoad    *int       `json:"cognitive_load" validate:"omitempty,min=1,max=10"`
	DateSolved       *time.Time `json:"date_solved" validate:"omitempty,lt"`
	Notes            *string    `json:"notes" validate:"omitempty,max=1000"`
}

// Apply overlays the non-nil fields onto an existing entry.
func (r UpdateProblemRequest) Apply(entry *domain.ProblemEntry) {
	if r.ProblemID != nil {
		entry.ProblemID = *r.ProblemID
	}
	if r.Title != nil {
		entry.Title = *r.Title
	}
	if r.URL != nil {
		entry.URL = *r.URL
	}
	if r.Difficulty != nil {
		entry.Difficulty = domain.Difficulty(*r.Difficulty)
	}
	if r.Language != nil {
		entry.Language = *r.Language
	}
	if r.Attempts != nil {
		entry.Attempts = *r.Attempts
	}
	if r.Tags != nil {
		entry.Tags = r.Tags
	}
	if r.Status != nil {
		entry.Status = domain.ProblemStatus(*r.Status)
	}
	if r.TimeTakenSeconds != nil {
		entry.TimeTakenSeconds = *r.TimeTakenSeconds
	}
	if r.CognitiveLoad != nil {
		entry.CognitiveLoad = *r.CognitiveLoad
	}
	if r.DateSolved != nil {
		entry.DateSolved = *r.DateSolved
	}
	if r.Notes != nil {
		entry.Notes = *r.Notes
	}
}

// ProblemResponse is the client view of an entry.
type ProblemResponse struct {
	ID               string    `json:"id"`
	ProblemID        string    `json:"problem_id"`
	Title            string    `json:"title"`
	URL              string    `json:"url"`
	Difficulty       string    `json:"difficulty"`
	Language         string    `json:"language"`
	Attempts         int       `json:"attempts"`
	Tags             []string  `json:"tags"`
	Status           string    `json:"status"`
	TimeTakenSeconds int       `json:"time_taken_seconds"`
	CognitiveLoad    int       `json:"cognitive_load"`
	DateSolved       time.Time `json:"date_solved"`
	Notes            string    `json:"notes"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// NewProblemResponse maps a domain entry.
func NewProblemResponse(entry *domain.ProblemEntry) ProblemResponse {
	return ProblemResponse{
		ID:               entry.ID,
		ProblemID:        entry.ProblemID,
		Title:            entry.Title,
		URL:              entry.URL,
		Difficulty:       string(entry.Difficulty),
		Language:         entry.Language,
		Attempts:         entry.Attempts,
		Tags:             entry.Tags,
		Status:           string(entry.Status),
		TimeTakenSeconds: entry.TimeTakenSeconds,
		CognitiveLoad:    entry.CognitiveLoad,
		DateSolved:       entry.DateSolved,
		Notes:            entry.Notes,
		CreatedAt:        entry.CreatedAt,
		UpdatedAt:        entry.UpdatedAt,
	}
}

// NewProblemListResponse maps a slice of entries.
func NewProblemListResponse(entries []domain.ProblemEntry) []ProblemResponse {
	out := make([]ProblemResponse, 0, len(entries))
	for i := range entries {
		out = append(out, NewProblemResponse(&entries[i]))
	}
	return out
}
