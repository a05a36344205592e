//go:build unit

package reservation_test

import (
	"testing"
	"time"

	"hotel-booking/internal/domain/reservation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	t, err := reservation.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return t
}

func stay(start, end string) reservation.StayRange {
	return reservation.ReconstructStay(day(start), day(end))
}

func TestParseStayRange(t *testing.T) {
	testCases := []struct {
		name      string
		startDate string
		endDate   string
		errIs     error
	}{
		{name: "valid one-night stay", startDate: "2026-03-10", endDate: "2026-03-11"},
		{name: "valid multi-night stay", startDate: "2026-03-10", endDate: "2026-03-20"},
		{name: "garbage start date", startDate: "not-a-date", endDate: "2026-03-11", errIs: reservation.ErrInvalidDate},
		{name: "garbage end date", startDate: "2026-03-10", endDate: "10/03/2026", errIs: reservation.ErrInvalidDate},
		{name: "same-day stay", startDate: "2026-03-10", endDate: "2026-03-10", errIs: reservation.ErrInvalidStayRange},
		{name: "inverted dates", startDate: "2026-03-11", endDate: "2026-03-10", errIs: reservation.ErrInvalidStayRange},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			actual, err := reservation.ParseStayRange(tc.startDate, tc.endDate)
			if tc.errIs != nil {
				require.ErrorIs(t, err, tc.errIs)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, day(tc.startDate), actual.Start())
			assert.Equal(t, day(tc.endDate), actual.End())
		})
	}
}

func TestStayRange_Nights(t *testing.T) {
	assert.Equal(t, 1, stay("2026-03-10", "2026-03-11").Nights())
	assert.Equal(t, 3, stay("2026-03-10", "2026-03-13").Nights())
	assert.Equal(t, 31, stay("2026-03-01", "2026-04-01").Nights())
}

func TestStayRange_ConflictsWith(t *testing.T) {
	testCases := []struct {
		name     string
		a        reservation.StayRange
		b        reservation.StayRange
		conflict bool
	}{
		{
			name:     "identical stays",
			a:        stay("2026-03-10", "2026-03-12"),
			b:        stay("2026-03-10", "2026-03-12"),
			conflict: true,
		},
		{
			name:     "partial overlap",
			a:        stay("2026-03-10", "2026-03-14"),
			b:        stay("2026-03-12", "2026-03-16"),
			conflict: true,
		},
		{
			name:     "containment",
			a:        stay("2026-03-10", "2026-03-20"),
			b:        stay("2026-03-12", "2026-03-14"),
			conflict: true,
		},
		{
			name:     "boundary touch counts as conflict",
			a:        stay("2026-03-10", "2026-03-12"),
			b:        stay("2026-03-12", "2026-03-14"),
			conflict: true,
		},
		{
			name:     "adjacent but disjoint",
			a:        stay("2026-03-10", "2026-03-12"),
			b:        stay("2026-03-13", "2026-03-15"),
			conflict: false,
		},
		{
			name:     "clearly disjoint",
			a:        stay("2026-03-10", "2026-03-12"),
			b:        stay("2026-04-01", "2026-04-05"),
			conflict: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.conflict, tc.a.ConflictsWith(tc.b))
			// The predicate never depends on argument order.
			assert.Equal(t, tc.conflict, tc.b.ConflictsWith(tc.a))
		})
	}
}

func TestStayRange_Covers(t *testing.T) {
	s := stay("2026-03-10", "2026-03-12")

	assert.False(t, s.Covers(day("2026-03-09")))
	assert.True(t, s.Covers(day("2026-03-10")))
	assert.True(t, s.Covers(day("2026-03-11")))
	assert.True(t, s.Covers(day("2026-03-12")))
	assert.False(t, s.Covers(day("2026-03-13")))
}

func TestStayRange_WithinHorizon(t *testing.T) {
	s := stay("2026-03-10", "2026-03-12")

	assert.True(t, s.WithinHorizon(day("2026-03-12")), "a stay ending exactly on the horizon is bookable")
	assert.True(t, s.WithinHorizon(day("2026-04-01")))
	assert.False(t, s.WithinHorizon(day("2026-03-11")))
}

func TestStayRange_StartsBefore(t *testing.T) {
	s := stay("2026-03-10", "2026-03-12")

	assert.True(t, s.StartsBefore(day("2026-03-11")))
	assert.False(t, s.StartsBefore(day("2026-03-10")), "starting today is not in the past")
	assert.False(t, s.StartsBefore(day("2026-03-09")))
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "2026-03-10", reservation.FormatDate(day("2026-03-10")))
	// Any intra-day component is dropped.
	assert.Equal(t, "2026-03-10", reservation.FormatDate(time.Date(2026, 3, 10, 23, 59, 0, 0, time.UTC)))
}
