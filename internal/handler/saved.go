package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pkordes/trip-builder/internal/domain"
)

// ListSavedTrips handles GET /trips.
// Supports ?page= and ?limit= query parameters (defaults: page=1, limit=20, max=100).
func (s *Server) ListSavedTrips(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	params := domain.ParsePagination(q.Get("page"), q.Get("limit"))

	trips, total, err := s.saved.List(r.Context(), params)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	data := make([]TripResponse, len(trips))
	for i, t := range trips {
		data[i] = tripToResponse(t)
	}
	writeJSON(w, http.StatusOK, TripListResponse{
		Data: data,
		Pagination: Pagination{
			Page:  params.Page,
			Limit: params.Limit,
			Total: int(total),
		},
	})
}

// GetSavedTrip handles GET /trips/{id}.
func (s *Server) GetSavedTrip(w http.ResponseWriter, r *http.Request) {
	trip, err := s.saved.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tripToResponse(trip))
}

// DeleteSavedTrip handles DELETE /trips/{id}.
func (s *Server) DeleteSavedTrip(w http.ResponseWriter, r *http.Request) {
	if err := s.saved.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
