package queries

import (
	"strings"
	"time"

	"hotel-booking/internal/domain/reservation"
	"hotel-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

// ReservationFilter is an AND-composition of optional criteria: an absent
// criterion contributes no constraint at all. The date bounds apply to
// the reservation's creation date, not the stay itself.
type ReservationFilter struct {
	GuestEmail  *string
	RoomID      *uuid.UUID
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// NewReservationFilter normalizes raw criteria: blank strings become
// absent, and date bounds are parsed ISO calendar dates. Either date
// bound may stand alone for an open-ended match.
func NewReservationFilter(guestEmail string, roomID *uuid.UUID, from, to string) (ReservationFilter, error) {
	var f ReservationFilter

	if email := strings.TrimSpace(guestEmail); email != "" {
		f.GuestEmail = &email
	}
	if roomID != nil && *roomID != uuid.Nil {
		f.RoomID = roomID
	}

	if from != "" {
		d, err := reservation.ParseDate(from)
		if err != nil {
			return ReservationFilter{}, errs.Mark(err, ErrInvalidDateRange)
		}
		f.CreatedFrom = &d
	}
	if to != "" {
		d, err := reservation.ParseDate(to)
		if err != nil {
			return ReservationFilter{}, errs.Mark(err, ErrInvalidDateRange)
		}
		f.CreatedTo = &d
	}
	return f, nil
}

func (f ReservationFilter) IsEmpty() bool {
	return f.GuestEmail == nil && f.RoomID == nil && f.CreatedFrom == nil && f.CreatedTo == nil
}
