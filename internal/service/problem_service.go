package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/algo-tracker/internal/cache"
	"github.com/spec-kit/algo-tracker/internal/domain"
	"github.com/spec-kit/algo-tracker/internal/events"
	"github.com/spec-kit/algo-tracker/internal/repository"
	apperrors "github.com/spec-kit/algo-tracker/pkg/util"
)

// ProblemService is a thin pass-through over the problem repository. Reads go
// through the cache; writes invalidate it and publish events.
type ProblemService struct {
	problems   repository.ProblemRepository
	cache      *cache.ProblemCache
	dispatcher events.Dispatcher
}

// NewProblemService builds the service.
func NewProblemService(problems repository.ProblemRepository, problemCache *cache.ProblemCache, dispatcher events.Dispatcher) *ProblemService {
	return &ProblemService{problems: problems, cache: problemCache, dispatcher: dispatcher}
}

// Add stores a new entry owned by the authenticated user.
func (s *ProblemService) Add(ctx context.Context, userID string, entry *domain.ProblemEntry) (*domain.ProblemEntry, error) {
	entry.UserID = userID
	if entry.DateSolved.IsZero() {
		entry.DateSolved = time.Now()
	}
	if entry.Tags == nil {
		entry.Tags = []string{}
	}

	if err := s.problems.Create(ctx, entry); err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	s.cache.Invalidate(ctx, userID)
	s.publish(ctx, events.EventProblemCreated, userID, entry)
	return entry, nil
}

// List returns all entries owned by the user.
func (s *ProblemService) List(ctx context.Context, userID string) ([]domain.ProblemEntry, error) {
	if entries, ok := s.cache.GetProblems(ctx, userID); ok {
		return entries, nil
	}

	entries, err := s.problems.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	s.cache.SetProblems(ctx, userID, entries)
	return entries, nil
}

// Tags returns the distinct tags across the user's entries.
func (s *ProblemService) Tags(ctx context.Context, userID string) ([]string, error) {
	if tags, ok := s.cache.GetTags(ctx, userID); ok {
		return tags, nil
	}

	tags, err := s.problems.ListTagsByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	s.cache.SetTags(ctx, userID, tags)
	return tags, nil
}

// Get returns one entry owned by the user.
func (s *ProblemService) Get(ctx context.Context, userID, id string) (*domain.ProblemEntry, error) {
	return s.getOwned(ctx, userID, id)
}

// Update applies changed fields to an existing entry. Ownership never moves.
func (s *ProblemService) Update(ctx context.Context, userID, id string, apply func(*domain.ProblemEntry)) (*domain.ProblemEntry, error) {
	entry, err := s.getOwned(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	apply(entry)
	entry.UserID = userID

	if err := s.problems.Update(ctx, entry); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("problem", nil)
		}
		return nil, apperrors.NewInternalError(err)
	}

	s.cache.Invalidate(ctx, userID)
	s.publish(ctx, events.EventProblemUpdated, userID, entry)
	return entry, nil
}

// Delete removes an entry owned by the user.
func (s *ProblemService) Delete(ctx context.Context, userID, id string) error {
	entry, err := s.getOwned(ctx, userID, id)
	if err != nil {
		return err
	}

	if err := s.problems.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("problem", nil)
		}
		return apperrors.NewInternalError(err)
	}

	s.cache.Invalidate(ctx, userID)
	s.publish(ctx, events.EventProblemDeleted, userID, entry)
	return nil
}

// getOwned fetches an entry and hides other users' entries behind not-found.
func (s *ProblemService) getOwned(ctx context.Context, userID, id string) (*domain.ProblemEntry, error) {
	entry, err := s.problems.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("problem", nil)
		}
		return nil, apperrors.NewInternalError(err)
	}
	if entry.UserID != userID {
		return nil, apperrors.NewNotFound("problem", nil)
	}
	return entry, nil
}

func (s *ProblemService) publish(ctx context.Context, eventType events.EventType, userID string, entry *domain.ProblemEntry) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		UserID:    userID,
		Timestamp: time.Now(),
		Payload: events.ProblemChangedPayload{
			EntryID:   entry.ID,
			ProblemID: entry.ProblemID,
			Title:     entry.Title,
		},
	})
}
