package repository

import (
	"context"
	"errors"

	"hotel-booking/internal/domain/room"
	"hotel-booking/internal/infra"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const findRoomSQL = `
	SELECT r.id, r.hotel_id, d.max_reserve_days, d.max_reserve_advance_days
	FROM rooms r
	JOIN room_details d ON d.id = r.room_details_id
	WHERE r.id = $1`

type RoomRepository struct {
	db *pgxpool.Pool
}

func NewRoomRepository(db *pgxpool.Pool) *RoomRepository {
	return &RoomRepository{db: db}
}

func (r *RoomRepository) FindByID(ctx context.Context, id uuid.UUID) (*room.Room, error) {
	var (
		roomID, hotelID      uuid.UUID
		maxDays, advanceDays int
	)
	err := r.db.QueryRow(ctx, findRoomSQL, id).Scan(&roomID, &hotelID, &maxDays, &advanceDays)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("room not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find room", err)
	}

	policy, err := room.NewPolicy(maxDays, advanceDays)
	if err != nil {
		// schema CHECK constraints make this unreachable for committed rows
		return nil, infra.WrapRepoErr("invalid room policy record", err)
	}
	return room.ReconstructRoom(roomID, hotelID, policy), nil
}
