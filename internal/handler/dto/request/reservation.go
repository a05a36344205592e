package request

import (
	"hotel-booking/internal/usecase/commands"

	"github.com/google/uuid"
)

// RoomID deliberately has no binding tag: an absent room must reach the
// command layer as uuid.Nil so the room-required rule reports it.
type CreateReservationRequest struct {
	GuestEmail string    `json:"guestEmail" binding:"required,email"`
	RoomID     uuid.UUID `json:"roomId"`
	StartDate  string    `json:"startDate" binding:"required,datetime=2006-01-02"`
	EndDate    string    `json:"endDate" binding:"required,datetime=2006-01-02"`
}

func (r CreateReservationRequest) ToParams() commands.CreateReservationParams {
	return commands.CreateReservationParams{
		GuestEmail: r.GuestEmail,
		StartDate:  r.StartDate,
		EndDate:    r.EndDate,
		RoomID:     r.RoomID,
	}
}

// UpdateReservationRequest carries a partial update: nil fields keep the
// stored values. GuestEmail is always required because it doubles as the
// ownership proof.
type UpdateReservationRequest struct {
	GuestEmail string     `json:"guestEmail" binding:"required,email"`
	RoomID     *uuid.UUID `json:"roomId,omitempty"`
	StartDate  *string    `json:"startDate,omitempty" binding:"omitempty,datetime=2006-01-02"`
	EndDate    *string    `json:"endDate,omitempty" binding:"omitempty,datetime=2006-01-02"`
	Status     *string    `json:"status,omitempty"`
}

func (r UpdateReservationRequest) ToParams() commands.UpdateReservationParams {
	return commands.UpdateReservationParams{
		GuestEmail: r.GuestEmail,
		StartDate:  r.StartDate,
		EndDate:    r.EndDate,
		RoomID:     r.RoomID,
		Status:     r.Status,
	}
}

type CancelReservationRequest struct {
	GuestEmail string `json:"guestEmail" binding:"required,email"`
}
