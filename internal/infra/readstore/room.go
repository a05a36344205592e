package readstore

import (
	"context"
	"errors"

	"hotel-booking/internal/infra"
	"hotel-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const getRoomSQL = `
	SELECT r.id, r.hotel_id, d.max_reserve_days, d.max_reserve_advance_days
	FROM rooms r
	JOIN room_details d ON d.id = r.room_details_id
	WHERE r.id = $1`

type RoomReadStore struct {
	db *pgxpool.Pool
}

func NewRoomReadStore(db *pgxpool.Pool) *RoomReadStore {
	return &RoomReadStore{db: db}
}

func (r *RoomReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.RoomView, error) {
	var view queries.RoomView
	err := r.db.QueryRow(ctx, getRoomSQL, id).Scan(
		&view.ID, &view.HotelID, &view.MaxReserveDays, &view.MaxReserveAdvanceDays,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("room not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find room by ID", err)
	}
	return &view, nil
}
