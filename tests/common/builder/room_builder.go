//go:build unit || e2e

package builder

import (
	domroom "hotel-booking/internal/domain/room"
	"hotel-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type RoomBuilder struct {
	ID                    uuid.UUID
	HotelID               uuid.UUID
	MaxReserveDays        int
	MaxReserveAdvanceDays int
}

func NewRoomBuilder() *RoomBuilder {
	return &RoomBuilder{
		ID:                    uuid.New(),
		HotelID:               uuid.New(),
		MaxReserveDays:        3,
		MaxReserveAdvanceDays: 30,
	}
}

func (r *RoomBuilder) BuildDomain() (*domroom.Room, error) {
	policy, err := domroom.NewPolicy(r.MaxReserveDays, r.MaxReserveAdvanceDays)
	if err != nil {
		return nil, err
	}
	return domroom.NewRoom(r.ID, r.HotelID, policy)
}

func (r *RoomBuilder) BuildReconstructed() *domroom.Room {
	policy, _ := domroom.NewPolicy(r.MaxReserveDays, r.MaxReserveAdvanceDays)
	return domroom.ReconstructRoom(r.ID, r.HotelID, policy)
}

func (r *RoomBuilder) BuildView() *queries.RoomView {
	return &queries.RoomView{
		ID:                    r.ID,
		HotelID:               r.HotelID,
		MaxReserveDays:        r.MaxReserveDays,
		MaxReserveAdvanceDays: r.MaxReserveAdvanceDays,
	}
}

// Fluent builder methods
func (r *RoomBuilder) WithID(id uuid.UUID) *RoomBuilder {
	r.ID = id
	return r
}

func (r *RoomBuilder) WithHotelID(hotelID uuid.UUID) *RoomBuilder {
	r.HotelID = hotelID
	return r
}

func (r *RoomBuilder) WithPolicy(maxReserveDays, maxReserveAdvanceDays int) *RoomBuilder {
	r.MaxReserveDays = maxReserveDays
	r.MaxReserveAdvanceDays = maxReserveAdvanceDays
	return r
}
