// Package service contains the trip-builder store: the single state holder
// that every screen reads from and mutates through declared actions.
// No SQL or HTTP lives here. Persistence is reached through the Publisher
// interface and the attraction list through AttractionCatalog.
package service

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/trip-builder/internal/domain"
)

// AttractionCatalog is the read-only attraction source the store filters and
// copies from. *catalog.Catalog satisfies it.
type AttractionCatalog interface {
	All() []domain.Activity
	Get(id string) (domain.Activity, bool)
	Search(query string) []domain.Activity
}

// ActionRecorder observes store actions. *metrics.Recorder satisfies it.
type ActionRecorder interface {
	Action(name string, err error)
	Publish(kind string, elapsed time.Duration, err error)
}

// State is a snapshot of everything the store holds.
type State struct {
	CurrentTrip         domain.Trip       `json:"current_trip"`
	Attractions         []domain.Activity `json:"attractions"`
	FilteredAttractions []domain.Activity `json:"filtered_attractions"`
	SearchQuery         string            `json:"search_query"`
	CategoryFilter      *domain.Category  `json:"category_filter"`
	LocationFilter      *string           `json:"location_filter"`

	// SelectedActivity and SelectedDayID are what the activity editor shows.
	SelectedActivity *domain.Activity `json:"selected_activity"`
	SelectedDayID    *string          `json:"selected_day_id"`

	IsDatePickerVisible    bool `json:"is_date_picker_visible"`
	IsSocialPreviewVisible bool `json:"is_social_preview_visible"`
	IsLoading              bool `json:"is_loading"`
}

// clone deep-copies the parts of the state actions write to. Attraction
// slices are only ever replaced, never written in place, so they are shared.
func (s State) clone() State {
	out := s
	out.CurrentTrip = s.CurrentTrip.Clone()
	if s.SelectedActivity != nil {
		a := s.SelectedActivity.Clone()
		out.SelectedActivity = &a
	}
	return out
}

// deepClone copies everything, for handing to callers.
func (s State) deepClone() State {
	out := s.clone()
	out.Attractions = cloneActivities(s.Attractions)
	out.FilteredAttractions = cloneActivities(s.FilteredAttractions)
	if s.CategoryFilter != nil {
		c := *s.CategoryFilter
		out.CategoryFilter = &c
	}
	out.LocationFilter = cloneString(s.LocationFilter)
	out.SelectedDayID = cloneString(s.SelectedDayID)
	return out
}

// Options configures a TripBuilder. Zero values are replaced with defaults.
type Options struct {
	// DaysCount is the length of the trip created at startup and by InitTrip
	// when no positive count is given. Default domain.DefaultDaysCount.
	DaysCount int
	// MaxDays caps the number of days a trip may have. Default
	// domain.DefaultMaxDays.
	MaxDays int
	// CreatorID is stamped on every new trip.
	CreatorID string
	Logger    *slog.Logger
	Recorder  ActionRecorder
	// Now is the clock. Default time.Now.
	Now func() time.Time
}

// TripBuilder is the trip-builder store. All mutation goes through its
// methods; each action runs to completion under one lock and installs a new
// snapshot, so readers never observe a half-applied change.
//
// Lookup misses return an error wrapping domain.ErrNotFound and leave the
// state untouched.
type TripBuilder struct {
	mu    sync.Mutex
	state State

	catalog   AttractionCatalog
	publisher Publisher
	log       *slog.Logger
	rec       ActionRecorder
	now       func() time.Time
	daysCount int
	maxDays   int
	creatorID string
}

// NewTripBuilder constructs a store holding a fresh empty trip and the full,
// unfiltered catalog.
func NewTripBuilder(cat AttractionCatalog, pub Publisher, opts Options) *TripBuilder {
	if opts.MaxDays < 1 {
		opts.MaxDays = domain.DefaultMaxDays
	}
	if opts.DaysCount < 1 {
		opts.DaysCount = domain.DefaultDaysCount
	}
	opts.DaysCount = min(opts.DaysCount, opts.MaxDays)
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Recorder == nil {
		opts.Recorder = nopRecorder{}
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	b := &TripBuilder{
		catalog:   cat,
		publisher: pub,
		log:       opts.Logger,
		rec:       opts.Recorder,
		now:       opts.Now,
		daysCount: opts.DaysCount,
		maxDays:   opts.MaxDays,
		creatorID: opts.CreatorID,
	}
	all := cat.All()
	b.state = State{
		CurrentTrip:         domain.NewEmptyTrip(b.daysCount, b.now(), b.creatorID),
		Attractions:         all,
		FilteredAttractions: all,
	}
	return b
}

// State returns a deep copy of the whole store.
func (b *TripBuilder) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state.deepClone()
}

// Trip returns a copy of the trip being edited.
func (b *TripBuilder) Trip() domain.Trip {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state.CurrentTrip.Clone()
}

// apply runs fn against a working copy of the state. If fn succeeds the
// trip's total and UpdatedAt are recomputed and the copy replaces the
// current state; if it fails nothing changes.
func (b *TripBuilder) apply(action string, fn func(s *State) error) (domain.Trip, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	next := b.state.clone()
	if err := fn(&next); err != nil {
		b.rec.Action(action, err)
		return domain.Trip{}, fmt.Errorf("service.TripBuilder.%s: %w", action, err)
	}
	next.CurrentTrip.TotalPrice = domain.CalculateTripTotal(next.CurrentTrip.Days)
	next.CurrentTrip.UpdatedAt = b.now()
	b.state = next
	b.rec.Action(action, nil)
	return next.CurrentTrip.Clone(), nil
}

// ---- trip ------------------------------------------------------------------

// InitTrip replaces the current trip with a fresh empty one of daysCount
// days. A daysCount below 1 uses the configured default; one above MaxDays
// is rejected with domain.ErrValidation and the current trip is kept.
func (b *TripBuilder) InitTrip(daysCount int) (domain.Trip, error) {
	if daysCount < 1 {
		daysCount = b.daysCount
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.checkDays(daysCount); err != nil {
		b.rec.Action("InitTrip", err)
		return domain.Trip{}, fmt.Errorf("service.TripBuilder.InitTrip: %w", err)
	}
	b.state.CurrentTrip = domain.NewEmptyTrip(daysCount, b.now(), b.creatorID)
	b.rec.Action("InitTrip", nil)
	return b.state.CurrentTrip.Clone(), nil
}

func (b *TripBuilder) checkDays(n int) error {
	if n > b.maxDays {
		return fmt.Errorf("%w: a trip may have at most %d days", domain.ErrValidation, b.maxDays)
	}
	return nil
}

// UpdateTripTitle sets the title. Empty titles are allowed.
func (b *TripBuilder) UpdateTripTitle(title string) domain.Trip {
	trip, _ := b.apply("UpdateTripTitle", func(s *State) error {
		s.CurrentTrip.Title = title
		return nil
	})
	return trip
}

// UpdateTripDates sets the date range and resizes the day list to match it:
// new empty days are appended, or days are dropped from the end together
// with their activities.
func (b *TripBuilder) UpdateTripDates(start, end time.Time) (domain.Trip, error) {
	return b.apply("UpdateTripDates", func(s *State) error {
		if end.Before(start) {
			return fmt.Errorf("%w: end date must not be before start date", domain.ErrValidation)
		}
		want := domain.DayCountBetween(start, end)
		if err := b.checkDays(want); err != nil {
			return err
		}
		t := &s.CurrentTrip
		if have := len(t.Days); want > have {
			for i := have; i < want; i++ {
				t.Days = append(t.Days, domain.NewEmptyDay(i+1))
			}
		} else {
			t.Days = t.Days[:want]
		}
		t.StartDate = start
		t.EndDate = end
		return nil
	})
}

// AddDay appends an empty day and moves the end date forward one day.
// It does not look at the existing date span. A trip already at MaxDays
// is rejected with domain.ErrValidation.
func (b *TripBuilder) AddDay() (domain.Trip, error) {
	return b.apply("AddDay", func(s *State) error {
		t := &s.CurrentTrip
		if err := b.checkDays(len(t.Days) + 1); err != nil {
			return err
		}
		t.Days = append(t.Days, domain.NewEmptyDay(len(t.Days)+1))
		t.EndDate = t.EndDate.AddDate(0, 0, 1)
		return nil
	})
}

// RemoveDay deletes a day and its activities, renumbers the remaining days
// 1..N, and sets the end date to start + (N-1) days. The last remaining day
// cannot be removed.
func (b *TripBuilder) RemoveDay(dayID string) (domain.Trip, error) {
	return b.apply("RemoveDay", func(s *State) error {
		t := &s.CurrentTrip
		i := t.DayIndex(dayID)
		if i < 0 {
			return dayNotFound(dayID)
		}
		if len(t.Days) == 1 {
			return fmt.Errorf("%w: a trip must keep at least one day", domain.ErrValidation)
		}
		t.Days = append(t.Days[:i], t.Days[i+1:]...)
		t.Renumber()
		t.EndDate = t.StartDate.AddDate(0, 0, len(t.Days)-1)
		return nil
	})
}

// ---- activities ------------------------------------------------------------

// AddActivity appends activity to the end of a day and records the place
// named by the last part of its address. A blank ID is minted.
func (b *TripBuilder) AddActivity(activity domain.Activity, dayID string) (domain.Trip, error) {
	return b.apply("AddActivity", func(s *State) error {
		if strings.TrimSpace(activity.ID) == "" {
			activity.ID = "activity-" + uuid.NewString()
		}
		return addActivity(s, activity, dayID)
	})
}

// AddAttraction copies a catalog attraction into a day under a new ID
// ("<attractionID>-<unix nanos>"), so the same attraction can be scheduled
// more than once. It returns the copy that was added.
func (b *TripBuilder) AddAttraction(attractionID, dayID string) (domain.Activity, domain.Trip, error) {
	var added domain.Activity
	trip, err := b.apply("AddAttraction", func(s *State) error {
		src, ok := b.catalog.Get(attractionID)
		if !ok {
			return fmt.Errorf("%w: attraction %q", domain.ErrNotFound, attractionID)
		}
		added = src
		added.ID = fmt.Sprintf("%s-%d", src.ID, b.now().UnixNano())
		return addActivity(s, added, dayID)
	})
	if err != nil {
		return domain.Activity{}, domain.Trip{}, err
	}
	return added, trip, nil
}

func addActivity(s *State, activity domain.Activity, dayID string) error {
	if err := activity.Validate(); err != nil {
		return err
	}
	t := &s.CurrentTrip
	i := t.DayIndex(dayID)
	if i < 0 {
		return dayNotFound(dayID)
	}
	a := activity.WithBackupDepth(domain.MaxBackupDepth)
	a.Normalize()
	t.Days[i].Activities = append(t.Days[i].Activities, a)

	if loc := domain.LocationFromAddress(a.Address); loc != "" && !t.HasLocation(loc) {
		t.Locations = append(t.Locations, loc)
	}
	return nil
}

// RemoveActivity deletes an activity from a day. If it was selected in the
// editor the selection is cleared.
func (b *TripBuilder) RemoveActivity(activityID, dayID string) (domain.Trip, error) {
	return b.apply("RemoveActivity", func(s *State) error {
		day, j, err := findActivity(&s.CurrentTrip, activityID, dayID)
		if err != nil {
			return err
		}
		day.Activities = append(day.Activities[:j], day.Activities[j+1:]...)
		if s.SelectedActivity != nil && s.SelectedActivity.ID == activityID {
			s.SelectedActivity = nil
			s.SelectedDayID = nil
		}
		return nil
	})
}

// UpdateActivity replaces the activity with the same ID in place, keeping
// its position. The editor selection is refreshed when it shows that activity.
func (b *TripBuilder) UpdateActivity(activity domain.Activity, dayID string) (domain.Trip, error) {
	return b.apply("UpdateActivity", func(s *State) error {
		if err := activity.Validate(); err != nil {
			return err
		}
		day, j, err := findActivity(&s.CurrentTrip, activity.ID, dayID)
		if err != nil {
			return err
		}
		a := activity.WithBackupDepth(domain.MaxBackupDepth)
		a.Normalize()
		day.Activities[j] = a
		mirrorSelection(s, a)
		return nil
	})
}

// MoveActivity takes an activity out of one day and inserts it at newIndex
// in another (or the same) day. newIndex is clamped to the destination's
// bounds. Both days must exist and the activity must be in the source day,
// otherwise nothing moves.
func (b *TripBuilder) MoveActivity(activityID, fromDayID, toDayID string, newIndex int) (domain.Trip, error) {
	return b.apply("MoveActivity", func(s *State) error {
		t := &s.CurrentTrip
		if t.DayIndex(toDayID) < 0 {
			return dayNotFound(toDayID)
		}
		from, j, err := findActivity(t, activityID, fromDayID)
		if err != nil {
			return err
		}
		moving := from.Activities[j]
		from.Activities = append(from.Activities[:j], from.Activities[j+1:]...)

		to := &t.Days[t.DayIndex(toDayID)]
		newIndex = max(0, min(newIndex, len(to.Activities)))
		to.Activities = append(to.Activities, domain.Activity{})
		copy(to.Activities[newIndex+1:], to.Activities[newIndex:])
		to.Activities[newIndex] = moving

		if s.SelectedActivity != nil && s.SelectedActivity.ID == activityID {
			s.SelectedDayID = &toDayID
		}
		return nil
	})
}

// ToggleFlexibleTiming flips an activity's flexible flag. Becoming flexible
// clears the start time; becoming fixed leaves it unset until the user
// supplies one.
func (b *TripBuilder) ToggleFlexibleTiming(activityID, dayID string) (domain.Trip, error) {
	return b.apply("ToggleFlexibleTiming", func(s *State) error {
		day, j, err := findActivity(&s.CurrentTrip, activityID, dayID)
		if err != nil {
			return err
		}
		a := &day.Activities[j]
		a.IsFlexible = !a.IsFlexible
		a.Normalize()
		mirrorSelection(s, *a)
		return nil
	})
}

// ---- backups ---------------------------------------------------------------

// AddBackupActivity attaches a catalog attraction as a backup of a scheduled
// activity. Duplicate backups are allowed.
func (b *TripBuilder) AddBackupActivity(mainID, backupID, dayID string) (domain.Trip, error) {
	return b.apply("AddBackupActivity", func(s *State) error {
		backup, ok := b.catalog.Get(backupID)
		if !ok {
			return fmt.Errorf("%w: attraction %q", domain.ErrNotFound, backupID)
		}
		day, j, err := findActivity(&s.CurrentTrip, mainID, dayID)
		if err != nil {
			return err
		}
		a := &day.Activities[j]
		a.BackupActivities = append(a.BackupActivities, backup.WithBackupDepth(domain.MaxBackupDepth-1))
		mirrorSelection(s, *a)
		return nil
	})
}

// RemoveBackupActivity detaches every backup with backupID from a scheduled
// activity.
func (b *TripBuilder) RemoveBackupActivity(mainID, backupID, dayID string) (domain.Trip, error) {
	return b.apply("RemoveBackupActivity", func(s *State) error {
		day, j, err := findActivity(&s.CurrentTrip, mainID, dayID)
		if err != nil {
			return err
		}
		a := &day.Activities[j]
		kept := make([]domain.Activity, 0, len(a.BackupActivities))
		for _, bk := range a.BackupActivities {
			if bk.ID != backupID {
				kept = append(kept, bk)
			}
		}
		if len(kept) == len(a.BackupActivities) {
			return fmt.Errorf("%w: backup %q on activity %q", domain.ErrNotFound, backupID, mainID)
		}
		a.BackupActivities = kept
		mirrorSelection(s, *a)
		return nil
	})
}

// ---- selection -------------------------------------------------------------

// SetSelectedActivity sets what the activity editor shows. A nil activity
// clears the editor.
func (b *TripBuilder) SetSelectedActivity(activity *domain.Activity, dayID *string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if activity == nil {
		b.state.SelectedActivity = nil
		b.state.SelectedDayID = nil
	} else {
		a := activity.Clone()
		b.state.SelectedActivity = &a
		b.state.SelectedDayID = cloneString(dayID)
	}
	b.rec.Action("SetSelectedActivity", nil)
}

// SelectActivity selects the scheduled activity with the given IDs.
func (b *TripBuilder) SelectActivity(activityID, dayID string) (domain.Activity, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	t := b.state.CurrentTrip.Clone()
	day, j, err := findActivity(&t, activityID, dayID)
	if err != nil {
		b.rec.Action("SelectActivity", err)
		return domain.Activity{}, fmt.Errorf("service.TripBuilder.SelectActivity: %w", err)
	}
	a := day.Activities[j]
	b.state.SelectedActivity = &a
	b.state.SelectedDayID = &dayID
	b.rec.Action("SelectActivity", nil)
	return a.Clone(), nil
}

// ---- library ---------------------------------------------------------------

// SearchLibrary sets the search query and refilters the library.
// An empty query removes the search filter.
func (b *TripBuilder) SearchLibrary(query string) []domain.Activity {
	return b.filter("SearchLibrary", func(s *State) { s.SearchQuery = query })
}

// FilterByCategory sets or (with nil) clears the category filter.
func (b *TripBuilder) FilterByCategory(category *domain.Category) []domain.Activity {
	return b.filter("FilterByCategory", func(s *State) {
		if category == nil {
			s.CategoryFilter = nil
			return
		}
		c := *category
		s.CategoryFilter = &c
	})
}

// FilterByLocation sets or (with nil or blank) clears the location filter.
// Matching is a case-insensitive substring test on the address.
func (b *TripBuilder) FilterByLocation(location *string) []domain.Activity {
	return b.filter("FilterByLocation", func(s *State) {
		if location == nil || strings.TrimSpace(*location) == "" {
			s.LocationFilter = nil
			return
		}
		loc := *location
		s.LocationFilter = &loc
	})
}

func (b *TripBuilder) filter(action string, set func(s *State)) []domain.Activity {
	b.mu.Lock()
	defer b.mu.Unlock()

	set(&b.state)
	b.state.FilteredAttractions = b.filtered(b.state)
	b.rec.Action(action, nil)
	return cloneActivities(b.state.FilteredAttractions)
}

// filtered recomputes the library view from the full catalog: category,
// then location, then intersection with the search results. Results are in
// catalog order.
func (b *TripBuilder) filtered(s State) []domain.Activity {
	out := make([]domain.Activity, 0, len(s.Attractions))
	for _, a := range s.Attractions {
		if s.CategoryFilter != nil && a.Category != *s.CategoryFilter {
			continue
		}
		if s.LocationFilter != nil {
			loc := strings.ToLower(strings.TrimSpace(*s.LocationFilter))
			if !strings.Contains(strings.ToLower(a.Address), loc) {
				continue
			}
		}
		out = append(out, a)
	}
	if s.SearchQuery == "" {
		return out
	}

	keep := make(map[string]bool, len(out))
	for _, a := range out {
		keep[a.ID] = true
	}
	hits := b.catalog.Search(s.SearchQuery)
	result := make([]domain.Activity, 0, len(hits))
	for _, h := range hits {
		if keep[h.ID] {
			result = append(result, h)
		}
	}
	return result
}

// ---- UI flags --------------------------------------------------------------

// ToggleDatePicker flips date-picker visibility and returns the new value.
func (b *TripBuilder) ToggleDatePicker() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.state.IsDatePickerVisible = !b.state.IsDatePickerVisible
	b.rec.Action("ToggleDatePicker", nil)
	return b.state.IsDatePickerVisible
}

// ToggleSocialPreview flips social-preview visibility and returns the new value.
func (b *TripBuilder) ToggleSocialPreview() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.state.IsSocialPreviewVisible = !b.state.IsSocialPreviewVisible
	b.rec.Action("ToggleSocialPreview", nil)
	return b.state.IsSocialPreviewVisible
}

// ---- helpers ---------------------------------------------------------------

// findActivity locates an activity inside a day of t, returning a pointer to
// the day so the caller can edit it in place.
func findActivity(t *domain.Trip, activityID, dayID string) (*domain.TripDay, int, error) {
	i := t.DayIndex(dayID)
	if i < 0 {
		return nil, -1, dayNotFound(dayID)
	}
	day := &t.Days[i]
	j := day.ActivityIndex(activityID)
	if j < 0 {
		return nil, -1, fmt.Errorf("%w: activity %q in day %q", domain.ErrNotFound, activityID, dayID)
	}
	return day, j, nil
}

// mirrorSelection refreshes the editor's copy when it shows a.
func mirrorSelection(s *State, a domain.Activity) {
	if s.SelectedActivity != nil && s.SelectedActivity.ID == a.ID {
		cp := a.Clone()
		s.SelectedActivity = &cp
	}
}

func dayNotFound(dayID string) error {
	return fmt.Errorf("%w: day %q", domain.ErrNotFound, dayID)
}

func cloneActivities(in []domain.Activity) []domain.Activity {
	if in == nil {
		return nil
	}
	out := make([]domain.Activity, len(in))
	for i, a := range in {
		out[i] = a.Clone()
	}
	return out
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

type nopRecorder struct{}

func (nopRecorder) Action(string, error)                 {}
func (nopRecorder) Publish(string, time.Duration, error) {}
