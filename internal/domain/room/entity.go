package room

import (
	"errors"
	"time"

	"hotel-booking/internal/domain/reservation"
	"hotel-booking/internal/pkg/clock"

	"github.com/google/uuid"
)

var (
	ErrInvalidPolicy        = errors.New("room policy limits must be positive")
	ErrStayTooLong          = errors.New("stay exceeds the room's maximum reserve days")
	ErrBeyondAdvanceHorizon = errors.New("stay exceeds the room's advance booking horizon")
)

// Policy holds the per-room reservation limits. Policies are shared
// reference data: several rooms may point at the same record.
type Policy struct {
	maxReserveDays        int
	maxReserveAdvanceDays int
}

func NewPolicy(maxReserveDays, maxReserveAdvanceDays int) (Policy, error) {
	if maxReserveDays <= 0 || maxReserveAdvanceDays <= 0 {
		return Policy{}, ErrInvalidPolicy
	}
	return Policy{
		maxReserveDays:        maxReserveDays,
		maxReserveAdvanceDays: maxReserveAdvanceDays,
	}, nil
}

func (p Policy) MaxReserveDays() int        { return p.maxReserveDays }
func (p Policy) MaxReserveAdvanceDays() int { return p.maxReserveAdvanceDays }

// ValidateStayLength checks the longest permitted stay, same-day exclusive.
func (p Policy) ValidateStayLength(nights int) error {
	if nights > p.maxReserveDays {
		return ErrStayTooLong
	}
	return nil
}

// Horizon is the furthest date, relative to today, at which a stay may
// start or end. A date exactly on the horizon is still bookable.
func (p Policy) Horizon(today time.Time) time.Time {
	return clock.Midnight(today).AddDate(0, 0, p.maxReserveAdvanceDays)
}

func (p Policy) ValidateAdvance(stay reservation.StayRange, today time.Time) error {
	if !stay.WithinHorizon(p.Horizon(today)) {
		return ErrBeyondAdvanceHorizon
	}
	return nil
}

type Room struct {
	id      uuid.UUID
	hotelID uuid.UUID
	policy  Policy
}

// NewRoom requires a validated policy: a room is never usable without one.
func NewRoom(id, hotelID uuid.UUID, policy Policy) (*Room, error) {
	if policy == (Policy{}) {
		return nil, ErrInvalidPolicy
	}
	return &Room{id: id, hotelID: hotelID, policy: policy}, nil
}

func ReconstructRoom(id, hotelID uuid.UUID, policy Policy) *Room {
	return &Room{id: id, hotelID: hotelID, policy: policy}
}

func (r *Room) ID() uuid.UUID      { return r.id }
func (r *Room) HotelID() uuid.UUID { return r.hotelID }
func (r *Room) Policy() Policy     { return r.policy }
