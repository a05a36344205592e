package queries

import (
	"time"

	"github.com/google/uuid"
)

// Read models (DTO for read side)
type ReservationView struct {
	ID         uuid.UUID `json:"id"`
	RoomID     uuid.UUID `json:"room_id"`
	GuestEmail string    `json:"guest_email"`
	StartDate  time.Time `json:"start_date"`
	EndDate    time.Time `json:"end_date"`
	CreateDate time.Time `json:"create_date"`
	Status     string    `json:"status"`
}

type RoomView struct {
	ID                    uuid.UUID `json:"id"`
	HotelID               uuid.UUID `json:"hotel_id"`
	MaxReserveDays        int       `json:"max_reserve_days"`
	MaxReserveAdvanceDays int       `json:"max_reserve_advance_days"`
}

// ReservationPage carries one page of a filtered listing together with
// the counts the caller needs to render pagination.
type ReservationPage struct {
	Total        int64
	PageSize     int
	TotalPages   int
	Reservations []*ReservationView
}

const DefaultPageSize = 5

// Page is a zero-based page request. Out-of-range values fall back to
// page 0 / size 5, mirroring the external contract.
type Page struct {
	Number int
	Size   int
}

func NewPage(number, size int) Page {
	if number < 0 {
		number = 0
	}
	if size <= 0 {
		size = DefaultPageSize
	}
	return Page{Number: number, Size: size}
}

func (p Page) Offset() int {
	return p.Number * p.Size
}
