package handler_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/trip-builder/internal/domain"
	"github.com/pkordes/trip-builder/internal/handler"
)

func savedTripFixture() domain.Trip {
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	return domain.Trip{
		ID:          "trip-1",
		Title:       "Bali Week",
		StartDate:   start,
		EndDate:     start.AddDate(0, 0, 1),
		Days:        []domain.TripDay{{ID: "d1", DayNumber: 1}, {ID: "d2", DayNumber: 2}},
		IsPublished: true,
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	}
}

func TestSavedTrips_NotMountedWithoutRepo(t *testing.T) {
	env := newTestEnv(t, nil)

	assert.Equal(t, http.StatusNotFound, env.do(t, http.MethodGet, "/trips", nil).Code)
}

// ---- GET /trips ------------------------------------------------------------

func TestListSavedTrips_200(t *testing.T) {
	var gotParams domain.PaginationParams
	saved := &mockSavedTrips{
		list: func(_ context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error) {
			gotParams = p
			return []domain.Trip{savedTripFixture()}, 41, nil
		},
	}
	env := newTestEnv(t, nil, handler.WithSavedTrips(saved))

	rec := env.do(t, http.MethodGet, "/trips?page=3&limit=500", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.PaginationParams{Page: 3, Limit: domain.MaxPageLimit}, gotParams)
	resp := decodeInto[handler.TripListResponse](t, rec)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "trip-1", resp.Data[0].ID)
	assert.Equal(t, handler.Pagination{Page: 3, Limit: 100, Total: 41}, resp.Pagination)
}

func TestListSavedTrips_500(t *testing.T) {
	saved := &mockSavedTrips{
		list: func(context.Context, domain.PaginationParams) ([]domain.Trip, int64, error) {
			return nil, 0, errors.New("db down")
		},
	}
	env := newTestEnv(t, nil, handler.WithSavedTrips(saved))

	rec := env.do(t, http.MethodGet, "/trips", nil)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "internal_error", errorCode(t, rec))
}

// ---- GET /trips/{id} -------------------------------------------------------

func TestGetSavedTrip(t *testing.T) {
	saved := &mockSavedTrips{
		getByID: func(_ context.Context, id string) (domain.Trip, error) {
			if id == "trip-1" {
				return savedTripFixture(), nil
			}
			return domain.Trip{}, fmt.Errorf("repo.TripRepo.GetByID: %w", domain.ErrNotFound)
		},
	}
	env := newTestEnv(t, nil, handler.WithSavedTrips(saved))

	rec := env.do(t, http.MethodGet, "/trips/trip-1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeInto[handler.TripResponse](t, rec)
	assert.Equal(t, "Bali Week", resp.Title)
	assert.Equal(t, "2025-06-02", resp.Days[1].Date.String())

	rec = env.do(t, http.MethodGet, "/trips/trip-2", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// ---- DELETE /trips/{id} ----------------------------------------------------

func TestDeleteSavedTrip(t *testing.T) {
	saved := &mockSavedTrips{
		delete: func(_ context.Context, id string) error {
			if id == "trip-1" {
				return nil
			}
			return domain.ErrNotFound
		},
	}
	env := newTestEnv(t, nil, handler.WithSavedTrips(saved))

	assert.Equal(t, http.StatusNoContent, env.do(t, http.MethodDelete, "/trips/trip-1", nil).Code)
	assert.Equal(t, http.StatusNotFound, env.do(t, http.MethodDelete, "/trips/trip-9", nil).Code)
}
