package handler

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/pkordes/trip-builder/internal/domain"
)

// AddActivityRequest is the body of POST /trip/days/{dayID}/activities.
// Exactly one of AttractionID (copy from the library) or Activity (custom
// entry) must be set.
type AddActivityRequest struct {
	AttractionID string           `json:"attraction_id,omitempty"`
	Activity     *domain.Activity `json:"activity,omitempty"`
}

// AddActivityResponse returns the scheduled copy and the updated trip.
type AddActivityResponse struct {
	Activity ActivityResponse `json:"activity"`
	Trip     TripResponse     `json:"trip"`
}

// MoveActivityRequest is the body of POST /trip/moves.
type MoveActivityRequest struct {
	ActivityID string `json:"activity_id"`
	FromDayID  string `json:"from_day_id"`
	ToDayID    string `json:"to_day_id"`
	NewIndex   int    `json:"new_index"`
}

// AddBackupRequest is the body of POST .../backups.
type AddBackupRequest struct {
	AttractionID string `json:"attraction_id"`
}

// AddActivity handles POST /trip/days/{dayID}/activities.
func (s *Server) AddActivity(w http.ResponseWriter, r *http.Request) {
	var req AddActivityRequest
	if !decode(w, r, &req) {
		return
	}
	hasAttraction := strings.TrimSpace(req.AttractionID) != ""
	if hasAttraction == (req.Activity != nil) {
		writeJSON(w, http.StatusBadRequest, requestBody("exactly one of attraction_id or activity is required"))
		return
	}

	dayID := chi.URLParam(r, "dayID")
	if hasAttraction {
		added, trip, err := s.builder.AddAttraction(req.AttractionID, dayID)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, AddActivityResponse{Activity: activityToResponse(added), Trip: tripToResponse(trip)})
		return
	}

	trip, err := s.builder.AddActivity(*req.Activity, dayID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	// The new activity is always last in its day.
	var added domain.Activity
	if i := trip.DayIndex(dayID); i >= 0 {
		if acts := trip.Days[i].Activities; len(acts) > 0 {
			added = acts[len(acts)-1]
		}
	}
	writeJSON(w, http.StatusCreated, AddActivityResponse{Activity: activityToResponse(added), Trip: tripToResponse(trip)})
}

// UpdateActivity handles PUT /trip/days/{dayID}/activities/{activityID}.
// The path ID wins over any ID in the body.
func (s *Server) UpdateActivity(w http.ResponseWriter, r *http.Request) {
	var a domain.Activity
	if !decode(w, r, &a) {
		return
	}
	a.ID = chi.URLParam(r, "activityID")
	trip, err := s.builder.UpdateActivity(a, chi.URLParam(r, "dayID"))
	s.respondTrip(w, r, trip, err)
}

// RemoveActivity handles DELETE /trip/days/{dayID}/activities/{activityID}.
func (s *Server) RemoveActivity(w http.ResponseWriter, r *http.Request) {
	trip, err := s.builder.RemoveActivity(chi.URLParam(r, "activityID"), chi.URLParam(r, "dayID"))
	s.respondTrip(w, r, trip, err)
}

// ToggleFlexibleTiming handles POST .../activities/{activityID}/flexible.
func (s *Server) ToggleFlexibleTiming(w http.ResponseWriter, r *http.Request) {
	trip, err := s.builder.ToggleFlexibleTiming(chi.URLParam(r, "activityID"), chi.URLParam(r, "dayID"))
	s.respondTrip(w, r, trip, err)
}

// SelectActivity handles POST .../activities/{activityID}/select and returns
// the selected activity.
func (s *Server) SelectActivity(w http.ResponseWriter, r *http.Request) {
	a, err := s.builder.SelectActivity(chi.URLParam(r, "activityID"), chi.URLParam(r, "dayID"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, activityToResponse(a))
}

// AddBackupActivity handles POST .../activities/{activityID}/backups.
func (s *Server) AddBackupActivity(w http.ResponseWriter, r *http.Request) {
	var req AddBackupRequest
	if !decode(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.AttractionID) == "" {
		writeJSON(w, http.StatusBadRequest, requestBody("attraction_id is required"))
		return
	}
	trip, err := s.builder.AddBackupActivity(chi.URLParam(r, "activityID"), req.AttractionID, chi.URLParam(r, "dayID"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, tripToResponse(trip))
}

// RemoveBackupActivity handles DELETE .../activities/{activityID}/backups/{backupID}.
func (s *Server) RemoveBackupActivity(w http.ResponseWriter, r *http.Request) {
	trip, err := s.builder.RemoveBackupActivity(
		chi.URLParam(r, "activityID"), chi.URLParam(r, "backupID"), chi.URLParam(r, "dayID"))
	s.respondTrip(w, r, trip, err)
}

// MoveActivity handles POST /trip/moves.
func (s *Server) MoveActivity(w http.ResponseWriter, r *http.Request) {
	var req MoveActivityRequest
	if !decode(w, r, &req) {
		return
	}
	if req.ActivityID == "" || req.FromDayID == "" || req.ToDayID == "" {
		writeJSON(w, http.StatusBadRequest, requestBody("activity_id, from_day_id and to_day_id are required"))
		return
	}
	trip, err := s.builder.MoveActivity(req.ActivityID, req.FromDayID, req.ToDayID, req.NewIndex)
	s.respondTrip(w, r, trip, err)
}

// respondTrip writes trip with 200, or the mapped error.
func (s *Server) respondTrip(w http.ResponseWriter, r *http.Request, trip domain.Trip, err error) {
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tripToResponse(trip))
}
