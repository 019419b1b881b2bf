package handler

import (
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/trip-builder/internal/domain"
	"github.com/pkordes/trip-builder/internal/service"
)

// TripResponse is the wire form of a trip. Dates are calendar dates and
// every total carries a display string next to the raw Rupiah amount.
type TripResponse struct {
	ID                  string             `json:"id"`
	Title               string             `json:"title"`
	Description         string             `json:"description,omitempty"`
	StartDate           openapi_types.Date `json:"start_date"`
	EndDate             openapi_types.Date `json:"end_date"`
	Days                []DayResponse      `json:"days"`
	TotalPrice          int64              `json:"total_price"`
	TotalPriceFormatted string             `json:"total_price_formatted"`
	Locations           []string           `json:"locations"`
	CreatorID           string             `json:"creator_id"`
	IsPublished         bool               `json:"is_published"`
	CreatedAt           time.Time          `json:"created_at"`
	UpdatedAt           time.Time          `json:"updated_at"`
}

// DayResponse is one day of a TripResponse.
type DayResponse struct {
	ID             string             `json:"id"`
	DayNumber      int                `json:"day_number"`
	Date           openapi_types.Date `json:"date"`
	Activities     []ActivityResponse `json:"activities"`
	Total          int64              `json:"total"`
	TotalFormatted string             `json:"total_formatted"`
}

// ActivityResponse is an activity with its cost formatted for display.
type ActivityResponse struct {
	domain.Activity
	CostFormatted string `json:"cost_formatted"`
}

// StateResponse is the whole store as the app renders it.
type StateResponse struct {
	Trip                   TripResponse       `json:"trip"`
	FilteredAttractions    []ActivityResponse `json:"filtered_attractions"`
	SearchQuery            string             `json:"search_query"`
	CategoryFilter         *domain.Category   `json:"category_filter"`
	LocationFilter         *string            `json:"location_filter"`
	SelectedActivity       *ActivityResponse  `json:"selected_activity"`
	SelectedDayID          *string            `json:"selected_day_id"`
	IsDatePickerVisible    bool               `json:"is_date_picker_visible"`
	IsSocialPreviewVisible bool               `json:"is_social_preview_visible"`
	IsLoading              bool               `json:"is_loading"`
}

// LibraryResponse is the filtered attraction list and the filters behind it.
type LibraryResponse struct {
	Attractions    []ActivityResponse `json:"attractions"`
	Total          int                `json:"total"`
	SearchQuery    string             `json:"search_query"`
	CategoryFilter *domain.Category   `json:"category_filter"`
	LocationFilter *string            `json:"location_filter"`
}

// Pagination describes one page of a list response.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

// TripListResponse is a page of saved trips.
type TripListResponse struct {
	Data       []TripResponse `json:"data"`
	Pagination Pagination     `json:"pagination"`
}

// --- mapping helpers --------------------------------------------------------

func tripToResponse(t domain.Trip) TripResponse {
	days := make([]DayResponse, len(t.Days))
	for i, d := range t.Days {
		total := domain.CalculateDayTotal(d.Activities)
		days[i] = DayResponse{
			ID:             d.ID,
			DayNumber:      d.DayNumber,
			Date:           openapi_types.Date{Time: t.StartDate.AddDate(0, 0, d.DayNumber-1)},
			Activities:     activitiesToResponse(d.Activities),
			Total:          total,
			TotalFormatted: domain.FormatCurrency(total),
		}
	}
	locations := t.Locations
	if locations == nil {
		locations = []string{}
	}
	return TripResponse{
		ID:                  t.ID,
		Title:               t.Title,
		Description:         t.Description,
		StartDate:           openapi_types.Date{Time: t.StartDate},
		EndDate:             openapi_types.Date{Time: t.EndDate},
		Days:                days,
		TotalPrice:          t.TotalPrice,
		TotalPriceFormatted: domain.FormatCurrency(t.TotalPrice),
		Locations:           locations,
		CreatorID:           t.CreatorID,
		IsPublished:         t.IsPublished,
		CreatedAt:           t.CreatedAt,
		UpdatedAt:           t.UpdatedAt,
	}
}

func activityToResponse(a domain.Activity) ActivityResponse {
	return ActivityResponse{Activity: a, CostFormatted: domain.FormatCurrency(a.Cost)}
}

func activitiesToResponse(in []domain.Activity) []ActivityResponse {
	out := make([]ActivityResponse, len(in))
	for i, a := range in {
		out[i] = activityToResponse(a)
	}
	return out
}

func stateToResponse(s service.State) StateResponse {
	resp := StateResponse{
		Trip:                   tripToResponse(s.CurrentTrip),
		FilteredAttractions:    activitiesToResponse(s.FilteredAttractions),
		SearchQuery:            s.SearchQuery,
		CategoryFilter:         s.CategoryFilter,
		LocationFilter:         s.LocationFilter,
		SelectedDayID:          s.SelectedDayID,
		IsDatePickerVisible:    s.IsDatePickerVisible,
		IsSocialPreviewVisible: s.IsSocialPreviewVisible,
		IsLoading:              s.IsLoading,
	}
	if s.SelectedActivity != nil {
		a := activityToResponse(*s.SelectedActivity)
		resp.SelectedActivity = &a
	}
	return resp
}

func libraryToResponse(s service.State) LibraryResponse {
	return LibraryResponse{
		Attractions:    activitiesToResponse(s.FilteredAttractions),
		Total:          len(s.Attractions),
		SearchQuery:    s.SearchQuery,
		CategoryFilter: s.CategoryFilter,
		LocationFilter: s.LocationFilter,
	}
}
