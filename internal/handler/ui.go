package handler

import (
	"net/http"

	"github.com/pkordes/trip-builder/internal/domain"
)

// SelectionRequest is the body of PUT /selection. A null activity clears
// the editor.
type SelectionRequest struct {
	Activity *domain.Activity `json:"activity"`
	DayID    *string          `json:"day_id"`
}

// SelectionResponse is what the activity editor is showing.
type SelectionResponse struct {
	Activity *ActivityResponse `json:"activity"`
	DayID    *string           `json:"day_id"`
}

// VisibilityResponse reports a toggled panel's new state.
type VisibilityResponse struct {
	Visible bool `json:"visible"`
}

// GetState handles GET /state.
func (s *Server) GetState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, stateToResponse(s.builder.State()))
}

// SetSelection handles PUT /selection.
func (s *Server) SetSelection(w http.ResponseWriter, r *http.Request) {
	var req SelectionRequest
	if !decode(w, r, &req) {
		return
	}
	s.builder.SetSelectedActivity(req.Activity, req.DayID)

	st := s.builder.State()
	resp := SelectionResponse{DayID: st.SelectedDayID}
	if st.SelectedActivity != nil {
		a := activityToResponse(*st.SelectedActivity)
		resp.Activity = &a
	}
	writeJSON(w, http.StatusOK, resp)
}

// ToggleDatePicker handles POST /ui/date-picker.
func (s *Server) ToggleDatePicker(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, VisibilityResponse{Visible: s.builder.ToggleDatePicker()})
}

// ToggleSocialPreview handles POST /ui/social-preview.
func (s *Server) ToggleSocialPreview(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, VisibilityResponse{Visible: s.builder.ToggleSocialPreview()})
}
