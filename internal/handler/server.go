// Package handler implements the HTTP API of the trip builder.
// All handlers are methods on Server and are split into files by area
// (trip.go, activity.go, library.go, ...). Routes are registered on a chi
// router in Handler.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/pkordes/trip-builder/internal/domain"
	"github.com/pkordes/trip-builder/internal/service"
)

// TripBuilder is the store surface the handlers drive.
// *service.TripBuilder satisfies it.
type TripBuilder interface {
	State() service.State
	Trip() domain.Trip

	InitTrip(daysCount int) (domain.Trip, error)
	UpdateTripTitle(title string) domain.Trip
	UpdateTripDates(start, end time.Time) (domain.Trip, error)
	AddDay() (domain.Trip, error)
	RemoveDay(dayID string) (domain.Trip, error)

	AddActivity(activity domain.Activity, dayID string) (domain.Trip, error)
	AddAttraction(attractionID, dayID string) (domain.Activity, domain.Trip, error)
	RemoveActivity(activityID, dayID string) (domain.Trip, error)
	UpdateActivity(activity domain.Activity, dayID string) (domain.Trip, error)
	MoveActivity(activityID, fromDayID, toDayID string, newIndex int) (domain.Trip, error)
	ToggleFlexibleTiming(activityID, dayID string) (domain.Trip, error)
	AddBackupActivity(mainID, backupID, dayID string) (domain.Trip, error)
	RemoveBackupActivity(mainID, backupID, dayID string) (domain.Trip, error)

	SetSelectedActivity(activity *domain.Activity, dayID *string)
	SelectActivity(activityID, dayID string) (domain.Activity, error)

	SearchLibrary(query string) []domain.Activity
	FilterByCategory(category *domain.Category) []domain.Activity
	FilterByLocation(location *string) []domain.Activity

	ToggleDatePicker() bool
	ToggleSocialPreview() bool

	PublishTrip(ctx context.Context) error
	SaveDraft(ctx context.Context) error
}

// SavedTrips reads persisted trips. *service.SavedTripService satisfies it.
type SavedTrips interface {
	GetByID(ctx context.Context, id string) (domain.Trip, error)
	List(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error)
	Delete(ctx context.Context, id string) error
}

// RegionCatalog answers region browsing. *catalog.Catalog satisfies it.
type RegionCatalog interface {
	Regions() []string
	ByLocation(region string) []domain.Activity
}

// Server holds the handlers' dependencies.
type Server struct {
	builder TripBuilder
	saved   SavedTrips
	regions RegionCatalog
	metrics http.Handler
	log     *slog.Logger
}

// Option customizes a Server.
type Option func(*Server)

// WithSavedTrips mounts /trips backed by saved. Without it the routes are absent.
func WithSavedTrips(saved SavedTrips) Option {
	return func(s *Server) { s.saved = saved }
}

// WithMetrics serves h at /metrics.
func WithMetrics(h http.Handler) Option {
	return func(s *Server) { s.metrics = h }
}

// WithLogger sets the logger used for unexpected errors. Default slog.Default().
func WithLogger(log *slog.Logger) Option {
	return func(s *Server) { s.log = log }
}

// NewServer constructs the Server with its required dependencies.
func NewServer(builder TripBuilder, regions RegionCatalog, opts ...Option) *Server {
	s := &Server{builder: builder, regions: regions, log: slog.Default()}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Handler returns the API router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", s.GetOpenAPI)
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics)
	}

	r.Get("/state", s.GetState)

	r.Route("/trip", func(r chi.Router) {
		r.Get("/", s.GetTrip)
		r.Post("/", s.InitTrip)
		r.Put("/title", s.UpdateTripTitle)
		r.Put("/dates", s.UpdateTripDates)
		r.Post("/publish", s.PublishTrip)
		r.Post("/draft", s.SaveDraft)
		r.Post("/moves", s.MoveActivity)

		r.Post("/days", s.AddDay)
		r.Route("/days/{dayID}", func(r chi.Router) {
			r.Delete("/", s.RemoveDay)
			r.Post("/activities", s.AddActivity)
			r.Route("/activities/{activityID}", func(r chi.Router) {
				r.Put("/", s.UpdateActivity)
				r.Delete("/", s.RemoveActivity)
				r.Post("/flexible", s.ToggleFlexibleTiming)
				r.Post("/select", s.SelectActivity)
				r.Post("/backups", s.AddBackupActivity)
				r.Delete("/backups/{backupID}", s.RemoveBackupActivity)
			})
		})
	})

	r.Put("/selection", s.SetSelection)
	r.Post("/ui/date-picker", s.ToggleDatePicker)
	r.Post("/ui/social-preview", s.ToggleSocialPreview)

	r.Route("/library", func(r chi.Router) {
		r.Get("/", s.GetLibrary)
		r.Put("/search", s.SearchLibrary)
		r.Put("/category", s.FilterByCategory)
		r.Put("/location", s.FilterByLocation)
		r.Get("/regions", s.ListRegions)
		r.Get("/regions/{region}", s.GetRegion)
	})

	if s.saved != nil {
		r.Route("/trips", func(r chi.Router) {
			r.Get("/", s.ListSavedTrips)
			r.Get("/{id}", s.GetSavedTrip)
			r.Delete("/{id}", s.DeleteSavedTrip)
		})
	}

	return r
}
