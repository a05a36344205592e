package repository

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"hotel-booking/internal/domain/reservation"
	"hotel-booking/internal/infra"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Closed-interval overlap: a candidate [start, end] conflicts with a
// RESERVED row when the intervals intersect, boundary dates included.
const conflictCondition = `room_id = $1 AND status = 'RESERVED' AND start_date <= $3::date AND end_date >= $2::date`

const (
	countConflictingSQL = `SELECT COUNT(*) FROM reservations WHERE ` + conflictCondition

	countConflictingExceptSQL = `SELECT COUNT(*) FROM reservations WHERE ` + conflictCondition + ` AND id <> $4`

	findReservationSQL = `
		SELECT id, room_id, guest_email, start_date, end_date, create_date, status
		FROM reservations
		WHERE id = $1`

	insertReservationSQL = `
		INSERT INTO reservations (id, room_id, guest_email, start_date, end_date, create_date, status)
		VALUES ($1, $2, $3, $4::date, $5::date, $6::date, $7)`

	updateReservationSQL = `
		UPDATE reservations
		SET room_id = $2, start_date = $3::date, end_date = $4::date, status = $5
		WHERE id = $1`

	deleteReservationSQL = `DELETE FROM reservations WHERE id = $1`

	// Serializes overlap-check-then-write per room inside a transaction.
	advisoryLockSQL = `SELECT pg_advisory_xact_lock(hashtext($1::text))`
)

type ReservationRepository struct {
	db *pgxpool.Pool
}

func NewReservationRepository(db *pgxpool.Pool) *ReservationRepository {
	return &ReservationRepository{db: db}
}

func (r *ReservationRepository) FindByID(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	row := r.db.QueryRow(ctx, findReservationSQL, id)
	res, err := scanReservation(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find reservation", err)
	}
	return res, nil
}

func (r *ReservationRepository) CountConflicting(
	ctx context.Context,
	roomID uuid.UUID,
	stay reservation.StayRange,
	excludeID *uuid.UUID,
) (int64, error) {
	count, err := countConflicting(ctx, r.db, roomID, stay, excludeID)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to count conflicting reservations", err)
	}
	return count, nil
}

// Create inserts after re-checking the overlap under a per-room advisory
// lock, so two concurrent writers cannot both pass the availability rule.
func (r *ReservationRepository) Create(ctx context.Context, res *reservation.Reservation) error {
	return r.withRoomLock(ctx, res.RoomID(), func(tx pgx.Tx) error {
		count, err := countConflicting(ctx, tx, res.RoomID(), res.Stay(), nil)
		if err != nil {
			return infra.WrapRepoErr("failed to re-check conflicts", err)
		}
		if count > 0 {
			return infra.WrapRepoErr("room already reserved for these dates", nil, infra.KindConflict)
		}

		_, err = tx.Exec(ctx, insertReservationSQL,
			res.ID(), res.RoomID(), res.GuestEmail(),
			res.Stay().Start(), res.Stay().End(), res.CreateDate(), res.Status().String(),
		)
		if err != nil {
			return infra.WrapRepoErr("failed to create reservation", err)
		}
		return nil
	})
}

// Update persists the reservation. The overlap re-check only applies
// while the reservation stays RESERVED; cancellation never conflicts.
func (r *ReservationRepository) Update(ctx context.Context, res *reservation.Reservation) error {
	return r.withRoomLock(ctx, res.RoomID(), func(tx pgx.Tx) error {
		if res.IsActive() {
			excludeID := res.ID()
			count, err := countConflicting(ctx, tx, res.RoomID(), res.Stay(), &excludeID)
			if err != nil {
				return infra.WrapRepoErr("failed to re-check conflicts", err)
			}
			if count > 0 {
				return infra.WrapRepoErr("room already reserved for these dates", nil, infra.KindConflict)
			}
		}

		tag, err := tx.Exec(ctx, updateReservationSQL,
			res.ID(), res.RoomID(), res.Stay().Start(), res.Stay().End(), res.Status().String(),
		)
		if err != nil {
			return infra.WrapRepoErr("failed to update reservation", err)
		}
		if tag.RowsAffected() == 0 {
			return infra.WrapRepoErr("reservation not found", nil, infra.KindNotFound)
		}
		return nil
	})
}

func (r *ReservationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, deleteReservationSQL, id)
	if err != nil {
		return infra.WrapRepoErr("failed to delete reservation", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("reservation not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *ReservationRepository) withRoomLock(ctx context.Context, roomID uuid.UUID, fn func(tx pgx.Tx) error) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return infra.WrapRepoErr("failed to begin transaction", err)
	}
	defer func() {
		if rollbackErr := tx.Rollback(ctx); rollbackErr != nil && !errors.Is(rollbackErr, pgx.ErrTxClosed) {
			slog.Warn("failed to rollback transaction", "error", rollbackErr)
		}
	}()

	if _, err := tx.Exec(ctx, advisoryLockSQL, roomID); err != nil {
		return infra.WrapRepoErr("failed to acquire room lock", err)
	}

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return infra.WrapRepoErr("failed to commit transaction", err)
	}
	return nil
}

type queryRower interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func countConflicting(
	ctx context.Context,
	db queryRower,
	roomID uuid.UUID,
	stay reservation.StayRange,
	excludeID *uuid.UUID,
) (int64, error) {
	var count int64
	var err error
	if excludeID != nil {
		err = db.QueryRow(ctx, countConflictingExceptSQL, roomID, stay.Start(), stay.End(), *excludeID).Scan(&count)
	} else {
		err = db.QueryRow(ctx, countConflictingSQL, roomID, stay.Start(), stay.End()).Scan(&count)
	}
	return count, err
}

func scanReservation(row pgx.Row) (*reservation.Reservation, error) {
	var (
		id, roomID         uuid.UUID
		guestEmail, status string
		startDate, endDate time.Time
		createDate         time.Time
	)
	if err := row.Scan(&id, &roomID, &guestEmail, &startDate, &endDate, &createDate, &status); err != nil {
		return nil, err
	}
	return reservation.ReconstructReservation(
		id, roomID, guestEmail,
		reservation.ReconstructStay(startDate, endDate),
		reservation.Status(status),
		createDate,
	), nil
}
