package handler

import (
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/pkordes/trip-builder/internal/domain"
)

// SearchRequest is the body of PUT /library/search. An empty query clears it.
type SearchRequest struct {
	Query string `json:"query"`
}

// CategoryRequest is the body of PUT /library/category. Null clears the filter.
type CategoryRequest struct {
	Category *string `json:"category"`
}

// LocationRequest is the body of PUT /library/location. Null or blank clears it.
type LocationRequest struct {
	Location *string `json:"location"`
}

// RegionResponse lists the attractions of one region.
type RegionResponse struct {
	Region      string             `json:"region"`
	Attractions []ActivityResponse `json:"attractions"`
}

// GetLibrary handles GET /library.
func (s *Server) GetLibrary(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, libraryToResponse(s.builder.State()))
}

// SearchLibrary handles PUT /library/search.
func (s *Server) SearchLibrary(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if !decode(w, r, &req) {
		return
	}
	s.builder.SearchLibrary(req.Query)
	writeJSON(w, http.StatusOK, libraryToResponse(s.builder.State()))
}

// FilterByCategory handles PUT /library/category.
func (s *Server) FilterByCategory(w http.ResponseWriter, r *http.Request) {
	var req CategoryRequest
	if !decode(w, r, &req) {
		return
	}
	var category *domain.Category
	if req.Category != nil {
		c, err := domain.ParseCategory(*req.Category)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		category = &c
	}
	s.builder.FilterByCategory(category)
	writeJSON(w, http.StatusOK, libraryToResponse(s.builder.State()))
}

// FilterByLocation handles PUT /library/location.
func (s *Server) FilterByLocation(w http.ResponseWriter, r *http.Request) {
	var req LocationRequest
	if !decode(w, r, &req) {
		return
	}
	s.builder.FilterByLocation(req.Location)
	writeJSON(w, http.StatusOK, libraryToResponse(s.builder.State()))
}

// ListRegions handles GET /library/regions.
func (s *Server) ListRegions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"regions": s.regions.Regions()})
}

// GetRegion handles GET /library/regions/{region}. Region names are matched
// exactly; an unknown region has no attractions.
func (s *Server) GetRegion(w http.ResponseWriter, r *http.Request) {
	region := chi.URLParam(r, "region")
	if unescaped, err := url.PathUnescape(region); err == nil {
		region = unescaped
	}
	writeJSON(w, http.StatusOK, RegionResponse{
		Region:      region,
		Attractions: activitiesToResponse(s.regions.ByLocation(region)),
	})
}
