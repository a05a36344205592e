package reservation

import (
	"errors"
	"time"

	"hotel-booking/internal/pkg/clock"
)

var (
	ErrInvalidDate      = errors.New("date must be a valid ISO calendar date")
	ErrInvalidStayRange = errors.New("start date must be strictly before end date")
)

// StayRange is a pair of calendar dates (UTC midnight) treated as a closed
// interval: a stay [start, end] occupies every day from start through end,
// boundaries included. Two stays that merely touch at a boundary conflict.
type StayRange struct {
	start time.Time
	end   time.Time
}

func NewStayRange(start, end time.Time) (StayRange, error) {
	start = clock.Midnight(start)
	end = clock.Midnight(end)
	if !start.Before(end) {
		return StayRange{}, ErrInvalidStayRange
	}
	return StayRange{start: start, end: end}, nil
}

// ParseStayRange builds a StayRange from ISO-8601 date strings (YYYY-MM-DD).
// A string that fails to parse is a rule violation, not a crash.
func ParseStayRange(startStr, endStr string) (StayRange, error) {
	start, err := ParseDate(startStr)
	if err != nil {
		return StayRange{}, err
	}
	end, err := ParseDate(endStr)
	if err != nil {
		return StayRange{}, err
	}
	return NewStayRange(start, end)
}

// ReconstructStay rebuilds a range from storage without revalidating.
func ReconstructStay(start, end time.Time) StayRange {
	return StayRange{start: clock.Midnight(start), end: clock.Midnight(end)}
}

func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(time.DateOnly, s, time.UTC)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}

func FormatDate(t time.Time) string {
	return t.UTC().Format(time.DateOnly)
}

func (s StayRange) Start() time.Time {
	return s.start
}

func (s StayRange) End() time.Time {
	return s.end
}

// Nights is the stay length in days, end date exclusive of the same day.
func (s StayRange) Nights() int {
	return int(s.end.Sub(s.start) / (24 * time.Hour))
}

func (s StayRange) StartsBefore(day time.Time) bool {
	return s.start.Before(clock.Midnight(day))
}

// ConflictsWith reports whether two closed date intervals intersect.
// Boundary touch counts as a conflict, and the predicate is symmetric.
func (s StayRange) ConflictsWith(other StayRange) bool {
	return !s.start.After(other.end) && !other.start.After(s.end)
}

// Covers reports whether day falls inside the stay, boundaries included.
func (s StayRange) Covers(day time.Time) bool {
	day = clock.Midnight(day)
	return !day.Before(s.start) && !day.After(s.end)
}

// WithinHorizon reports whether both dates fall on or before horizon.
func (s StayRange) WithinHorizon(horizon time.Time) bool {
	horizon = clock.Midnight(horizon)
	return !s.start.After(horizon) && !s.end.After(horizon)
}
