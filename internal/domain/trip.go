// Package domain contains the core data types for the trip builder: trips,
// their days, and the activities scheduled on them. Functions here are pure
// derivations over those types; nothing in this package holds state.
package domain

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
)

// DefaultTitle is the title given to a freshly created trip.
const DefaultTitle = "Your Trip Title"

// DefaultDaysCount is the number of days a fresh trip starts with.
const DefaultDaysCount = 3

// DefaultMaxDays caps the length of a trip when no other limit is configured.
const DefaultMaxDays = 366

// TripDay is one calendar day of a trip.
// Activities are in schedule order; DayNumber is 1-based and contiguous
// across the trip's days.
type TripDay struct {
	ID         string     `json:"id"`
	DayNumber  int        `json:"day_number"`
	Activities []Activity `json:"activities"`
}

// Trip is the itinerary being authored.
// TotalPrice is derived from Days and is recomputed after every mutation,
// never set independently.
type Trip struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"` // inclusive
	Days        []TripDay `json:"days"`
	TotalPrice  int64     `json:"total_price"`
	Locations   []string  `json:"locations"`
	CreatorID   string    `json:"creator_id"`
	IsPublished bool      `json:"is_published"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CalculateDayTotal sums the cost of the given activities. Backups are
// alternates and do not count. The sum saturates at the int64 limits
// instead of wrapping.
func CalculateDayTotal(activities []Activity) int64 {
	var total int64
	for _, a := range activities {
		total = addSaturating(total, a.Cost)
	}
	return total
}

// CalculateTripTotal sums CalculateDayTotal over every day, saturating like
// CalculateDayTotal.
func CalculateTripTotal(days []TripDay) int64 {
	var total int64
	for _, d := range days {
		total = addSaturating(total, CalculateDayTotal(d.Activities))
	}
	return total
}

func addSaturating(a, b int64) int64 {
	switch {
	case b > 0 && a > math.MaxInt64-b:
		return math.MaxInt64
	case b < 0 && a < math.MinInt64-b:
		return math.MinInt64
	}
	return a + b
}

// DayCountBetween returns the number of days in the inclusive range
// [start, end], counting whole 24h spans truncated toward zero.
// It returns a value < 1 when end is before start.
func DayCountBetween(start, end time.Time) int {
	return int(end.Sub(start)/(24*time.Hour)) + 1
}

// NewEmptyDay returns a day with a fresh ID and no activities.
func NewEmptyDay(dayNumber int) TripDay {
	return TripDay{
		ID:         fmt.Sprintf("day-%d-%s", dayNumber, uuid.NewString()),
		DayNumber:  dayNumber,
		Activities: []Activity{},
	}
}

// NewEmptyTrip returns an unpublished trip starting at now with daysCount
// empty days numbered 1..daysCount. A daysCount below 1 falls back to
// DefaultDaysCount.
func NewEmptyTrip(daysCount int, now time.Time, creatorID string) Trip {
	if daysCount < 1 {
		daysCount = DefaultDaysCount
	}
	days := make([]TripDay, daysCount)
	for i := range days {
		days[i] = NewEmptyDay(i + 1)
	}
	return Trip{
		ID:          "trip-" + uuid.NewString(),
		Title:       DefaultTitle,
		StartDate:   now,
		EndDate:     now.AddDate(0, 0, daysCount-1),
		Days:        days,
		TotalPrice:  0,
		Locations:   []string{},
		CreatorID:   creatorID,
		IsPublished: false,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// DayIndex returns the position of the day with the given ID, or -1.
func (t *Trip) DayIndex(dayID string) int {
	for i := range t.Days {
		if t.Days[i].ID == dayID {
			return i
		}
	}
	return -1
}

// ActivityIndex returns the position of the activity with the given ID, or -1.
func (d *TripDay) ActivityIndex(activityID string) int {
	for i := range d.Activities {
		if d.Activities[i].ID == activityID {
			return i
		}
	}
	return -1
}

// HasLocation reports whether loc is already recorded on the trip.
func (t *Trip) HasLocation(loc string) bool {
	for _, l := range t.Locations {
		if l == loc {
			return true
		}
	}
	return false
}

// Renumber assigns day numbers 1..N in slice order.
func (t *Trip) Renumber() {
	for i := range t.Days {
		t.Days[i].DayNumber = i + 1
	}
}

// Clone returns a deep copy of the day.
func (d TripDay) Clone() TripDay {
	out := d
	out.Activities = make([]Activity, len(d.Activities))
	for i, a := range d.Activities {
		out.Activities[i] = a.Clone()
	}
	return out
}

// Clone returns a deep copy of the trip. Snapshots handed out of the store
// are clones so callers can never write through to store state.
func (t Trip) Clone() Trip {
	out := t
	out.Days = make([]TripDay, len(t.Days))
	for i, d := range t.Days {
		out.Days[i] = d.Clone()
	}
	out.Locations = append([]string{}, t.Locations...)
	return out
}
