package reservation

import (
	"errors"
	"strings"
	"time"

	"hotel-booking/internal/pkg/clock"

	"github.com/google/uuid"
)

var (
	ErrStayInPast    = errors.New("start date cannot be before today")
	ErrInvalidStatus = errors.New("invalid reservation status")
)

type Reservation struct {
	id         uuid.UUID
	roomID     uuid.UUID
	guestEmail string
	stay       StayRange
	status     Status
	createDate time.Time
}

// NewReservation creates a reservation with status RESERVED and
// createDate = today. Policy and availability checks are the caller's
// responsibility; only intrinsic invariants are enforced here.
func NewReservation(roomID uuid.UUID, guestEmail string, stay StayRange, today time.Time) (*Reservation, error) {
	if stay.StartsBefore(today) {
		return nil, ErrStayInPast
	}
	return &Reservation{
		id:         uuid.New(),
		roomID:     roomID,
		guestEmail: strings.TrimSpace(guestEmail),
		stay:       stay,
		status:     StatusReserved,
		createDate: clock.Midnight(today),
	}, nil
}

func ReconstructReservation(
	id, roomID uuid.UUID,
	guestEmail string,
	stay StayRange,
	status Status,
	createDate time.Time,
) *Reservation {
	return &Reservation{
		id:         id,
		roomID:     roomID,
		guestEmail: guestEmail,
		stay:       stay,
		status:     status,
		createDate: createDate,
	}
}

func (r *Reservation) IsActive() bool {
	return r.status == StatusReserved
}

func (r *Reservation) IsCanceled() bool {
	return r.status == StatusCanceled
}

func (r *Reservation) OwnedBy(guestEmail string) bool {
	return r.guestEmail == strings.TrimSpace(guestEmail)
}

// Reschedule replaces the stay and, optionally, the room.
func (r *Reservation) Reschedule(roomID uuid.UUID, stay StayRange) {
	r.roomID = roomID
	r.stay = stay
}

func (r *Reservation) ChangeStatus(status Status) error {
	if !status.IsValid() {
		return ErrInvalidStatus
	}
	r.status = status
	return nil
}

func (r *Reservation) Cancel() {
	r.status = StatusCanceled
}

func (r *Reservation) ID() uuid.UUID         { return r.id }
func (r *Reservation) RoomID() uuid.UUID     { return r.roomID }
func (r *Reservation) GuestEmail() string    { return r.guestEmail }
func (r *Reservation) Stay() StayRange       { return r.stay }
func (r *Reservation) Status() Status        { return r.status }
func (r *Reservation) CreateDate() time.Time { return r.createDate }
