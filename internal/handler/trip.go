package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// InitTripRequest is the body of POST /trip. It may be omitted.
type InitTripRequest struct {
	DaysCount int `json:"days_count"`
}

// UpdateTitleRequest is the body of PUT /trip/title.
type UpdateTitleRequest struct {
	Title string `json:"title"`
}

// UpdateDatesRequest is the body of PUT /trip/dates. Dates are YYYY-MM-DD.
type UpdateDatesRequest struct {
	StartDate *openapi_types.Date `json:"start_date"`
	EndDate   *openapi_types.Date `json:"end_date"`
}

// GetTrip handles GET /trip.
func (s *Server) GetTrip(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, tripToResponse(s.builder.Trip()))
}

// InitTrip handles POST /trip: it discards the current trip and starts a
// fresh one.
func (s *Server) InitTrip(w http.ResponseWriter, r *http.Request) {
	var req InitTripRequest
	if r.ContentLength != 0 && !decode(w, r, &req) {
		return
	}
	if req.DaysCount < 0 {
		writeJSON(w, http.StatusUnprocessableEntity,
			ErrorResponse{Error: ErrorDetail{Code: "validation_error", Message: "days_count must not be negative"}})
		return
	}
	trip, err := s.builder.InitTrip(req.DaysCount)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, tripToResponse(trip))
}

// UpdateTripTitle handles PUT /trip/title.
func (s *Server) UpdateTripTitle(w http.ResponseWriter, r *http.Request) {
	var req UpdateTitleRequest
	if !decode(w, r, &req) {
		return
	}
	writeJSON(w, http.StatusOK, tripToResponse(s.builder.UpdateTripTitle(req.Title)))
}

// UpdateTripDates handles PUT /trip/dates.
func (s *Server) UpdateTripDates(w http.ResponseWriter, r *http.Request) {
	var req UpdateDatesRequest
	if !decode(w, r, &req) {
		return
	}
	if req.StartDate == nil || req.EndDate == nil {
		writeJSON(w, http.StatusBadRequest, requestBody("start_date and end_date are required"))
		return
	}
	trip, err := s.builder.UpdateTripDates(req.StartDate.Time, req.EndDate.Time)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tripToResponse(trip))
}

// AddDay handles POST /trip/days.
func (s *Server) AddDay(w http.ResponseWriter, r *http.Request) {
	trip, err := s.builder.AddDay()
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, tripToResponse(trip))
}

// RemoveDay handles DELETE /trip/days/{dayID}.
func (s *Server) RemoveDay(w http.ResponseWriter, r *http.Request) {
	trip, err := s.builder.RemoveDay(chi.URLParam(r, "dayID"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tripToResponse(trip))
}

// PublishTrip handles POST /trip/publish. It blocks until the publisher
// answers or the request is cancelled.
func (s *Server) PublishTrip(w http.ResponseWriter, r *http.Request) {
	if err := s.builder.PublishTrip(r.Context()); err != nil {
		writeJSON(w, http.StatusBadGateway,
			ErrorResponse{Error: ErrorDetail{Code: "publish_failed", Message: "the trip could not be published"}})
		return
	}
	writeJSON(w, http.StatusOK, tripToResponse(s.builder.Trip()))
}

// SaveDraft handles POST /trip/draft.
func (s *Server) SaveDraft(w http.ResponseWriter, r *http.Request) {
	if err := s.builder.SaveDraft(r.Context()); err != nil {
		writeJSON(w, http.StatusBadGateway,
			ErrorResponse{Error: ErrorDetail{Code: "publish_failed", Message: "the draft could not be saved"}})
		return
	}
	writeJSON(w, http.StatusOK, tripToResponse(s.builder.Trip()))
}
