package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/pkordes/trip-builder/internal/domain"
	"github.com/pkordes/trip-builder/internal/repo"
)

// SavedTripService serves trips that have been published or saved as
// drafts. The builder writes them through RepoPublisher; this service only
// reads and deletes.
type SavedTripService struct {
	repo repo.TripRepo
	log  *slog.Logger
}

// NewSavedTripService constructs a SavedTripService backed by the provided
// TripRepo. A nil logger means slog.Default().
func NewSavedTripService(r repo.TripRepo, log *slog.Logger) *SavedTripService {
	if log == nil {
		log = slog.Default()
	}
	return &SavedTripService{repo: r, log: log}
}

// GetByID returns a single saved trip.
// Returns domain.ErrValidation for a blank ID, domain.ErrNotFound if no
// trip with that ID was saved.
func (s *SavedTripService) GetByID(ctx context.Context, id string) (domain.Trip, error) {
	if err := validateTripID(id); err != nil {
		return domain.Trip{}, fmt.Errorf("service.SavedTripService.GetByID: %w", err)
	}
	result, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.SavedTripService.GetByID: %w", err)
	}
	return withTotal(result), nil
}

// List returns one page of saved trips, most recently updated first, and
// the total count. Always returns a non-nil slice so callers can safely
// range over it.
func (s *SavedTripService) List(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error) {
	trips, total, err := s.repo.List(ctx, p)
	if err != nil {
		return nil, 0, fmt.Errorf("service.SavedTripService.List: %w", err)
	}
	if trips == nil {
		return []domain.Trip{}, total, nil
	}
	for i := range trips {
		trips[i] = withTotal(trips[i])
	}
	return trips, total, nil
}

// Delete removes a saved trip. The trip being edited in the builder is not
// affected. Returns domain.ErrNotFound if the trip does not exist.
func (s *SavedTripService) Delete(ctx context.Context, id string) error {
	if err := validateTripID(id); err != nil {
		return fmt.Errorf("service.SavedTripService.Delete: %w", err)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.SavedTripService.Delete: %w", err)
	}
	s.log.InfoContext(ctx, "saved trip deleted", "trip_id", id)
	return nil
}

func validateTripID(id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: trip id is required", domain.ErrValidation)
	}
	return nil
}

// withTotal recomputes TotalPrice from the days, so a row written before a
// pricing fix still reports a consistent total.
func withTotal(t domain.Trip) domain.Trip {
	t.TotalPrice = domain.CalculateTripTotal(t.Days)
	return t
}
