package domain

import (
	"fmt"
	"strings"
	"time"
)

// MaxBackupDepth bounds how deep backup activities may nest. Backups of a
// scheduled activity are kept; backups of a backup are dropped.
const MaxBackupDepth = 1

// MaxActivityCost is the largest cost a single activity may carry, one
// trillion Rupiah. Trip totals stay far from the int64 limit under it.
const MaxActivityCost = 1_000_000_000_000

// Category is the fixed set of attraction kinds.
type Category string

const (
	CategoryAdventure Category = "Adventure"
	CategoryFood      Category = "Food"
	CategoryCulture   Category = "Culture"
)

// Categories lists every valid Category in display order.
var Categories = []Category{CategoryAdventure, CategoryFood, CategoryCulture}

// ParseCategory returns the Category named by s (exact match).
func ParseCategory(s string) (Category, error) {
	for _, c := range Categories {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: unknown category %q", ErrValidation, s)
}

// Coordinates is a latitude/longitude pair.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Activity is an attraction placed into a trip day, or a catalog entry.
// Cost is in whole Rupiah. Duration is in minutes.
// StartTime ("HH:MM") is nil whenever IsFlexible is true.
type Activity struct {
	ID               string      `json:"id"`
	Name             string      `json:"name"`
	Location         Coordinates `json:"location"`
	Address          string      `json:"address"`
	Cost             int64       `json:"cost"`
	Duration         int         `json:"duration"`
	Category         Category    `json:"category"`
	Description      string      `json:"description"`
	ImageURL         string      `json:"image_url"`
	IsFlexible       bool        `json:"is_flexible"`
	StartTime        *string     `json:"start_time,omitempty"`
	BackupActivities []Activity  `json:"backup_activities,omitempty"`
}

// Clone returns a deep copy of the activity and its backups.
func (a Activity) Clone() Activity {
	out := a
	if a.StartTime != nil {
		st := *a.StartTime
		out.StartTime = &st
	}
	if a.BackupActivities != nil {
		out.BackupActivities = make([]Activity, len(a.BackupActivities))
		for i, b := range a.BackupActivities {
			out.BackupActivities[i] = b.Clone()
		}
	}
	return out
}

// WithBackupDepth returns a copy whose backup tree is cut at depth levels.
// Depth 0 drops all backups.
func (a Activity) WithBackupDepth(depth int) Activity {
	out := a.Clone()
	if depth <= 0 {
		out.BackupActivities = nil
		return out
	}
	for i, b := range out.BackupActivities {
		out.BackupActivities[i] = b.WithBackupDepth(depth - 1)
	}
	return out
}

// Normalize enforces the flexible-timing invariant: a flexible activity has
// no start time.
func (a *Activity) Normalize() {
	if a.IsFlexible {
		a.StartTime = nil
	}
}

// Validate checks the fields a caller may supply when adding or editing an
// activity. The returned error wraps ErrValidation.
func (a Activity) Validate() error {
	if strings.TrimSpace(a.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	if a.Cost < 0 {
		return fmt.Errorf("%w: cost must not be negative", ErrValidation)
	}
	if a.Cost > MaxActivityCost {
		return fmt.Errorf("%w: cost must not exceed %d", ErrValidation, int64(MaxActivityCost))
	}
	if a.Duration <= 0 {
		return fmt.Errorf("%w: duration must be positive", ErrValidation)
	}
	if _, err := ParseCategory(string(a.Category)); err != nil {
		return err
	}
	if a.StartTime != nil && !a.IsFlexible {
		if _, err := time.Parse("15:04", *a.StartTime); err != nil {
			return fmt.Errorf("%w: start_time must be HH:MM", ErrValidation)
		}
	}
	return nil
}

// LocationFromAddress derives a place name from an address: the last
// comma-separated token, trimmed. "Jl. Monkey Forest, Ubud, Bali" yields "Bali".
func LocationFromAddress(address string) string {
	parts := strings.Split(address, ",")
	return strings.TrimSpace(parts[len(parts)-1])
}
