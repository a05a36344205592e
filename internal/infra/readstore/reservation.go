package readstore

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"hotel-booking/internal/infra"
	"hotel-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const reservationColumns = `id, room_id, guest_email, start_date, end_date, create_date, status`

const (
	getReservationSQL = `
		SELECT ` + reservationColumns + `
		FROM reservations
		WHERE id = $1`

	getActiveByRoomSQL = `
		SELECT ` + reservationColumns + `
		FROM reservations
		WHERE room_id = $1 AND status = 'RESERVED'
		ORDER BY start_date`

	countConflictingSQL = `
		SELECT COUNT(*)
		FROM reservations
		WHERE room_id = $1 AND status = 'RESERVED'
		  AND start_date <= $3::date AND end_date >= $2::date`
)

type ReservationReadStore struct {
	db *pgxpool.Pool
}

func NewReservationReadStore(db *pgxpool.Pool) *ReservationReadStore {
	return &ReservationReadStore{db: db}
}

func (r *ReservationReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ReservationView, error) {
	view, err := scanReservationView(r.db.QueryRow(ctx, getReservationSQL, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find reservation by ID", err)
	}
	return view, nil
}

func (r *ReservationReadStore) FindActiveByRoom(ctx context.Context, roomID uuid.UUID) ([]*queries.ReservationView, error) {
	rows, err := r.db.Query(ctx, getActiveByRoomSQL, roomID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find active reservations", err)
	}
	defer rows.Close()

	var views []*queries.ReservationView
	for rows.Next() {
		view, err := scanReservationView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan reservation row", err)
		}
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read reservation rows", err)
	}
	return views, nil
}

func (r *ReservationReadStore) CountConflicting(ctx context.Context, roomID uuid.UUID, startDate, endDate time.Time) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, countConflictingSQL, roomID, startDate, endDate).Scan(&count); err != nil {
		return 0, infra.WrapRepoErr("failed to count conflicting reservations", err)
	}
	return count, nil
}

// List executes the AND-composed filter with keyset-free offset paging,
// sorted by creation date descending (id breaks ties for a stable order).
func (r *ReservationReadStore) List(
	ctx context.Context,
	filter queries.ReservationFilter,
	page queries.Page,
) ([]*queries.ReservationView, int64, error) {
	where, args := buildFilterClause(filter)

	var total int64
	countSQL := `SELECT COUNT(*) FROM reservations` + where
	if err := r.db.QueryRow(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, infra.WrapRepoErr("failed to count reservations", err)
	}

	listSQL := fmt.Sprintf(
		`SELECT %s FROM reservations%s ORDER BY create_date DESC, id DESC LIMIT $%d OFFSET $%d`,
		reservationColumns, where, len(args)+1, len(args)+2,
	)
	args = append(args, page.Size, page.Offset())

	rows, err := r.db.Query(ctx, listSQL, args...)
	if err != nil {
		return nil, 0, infra.WrapRepoErr("failed to list reservations", err)
	}
	defer rows.Close()

	views := make([]*queries.ReservationView, 0, page.Size)
	for rows.Next() {
		view, err := scanReservationView(rows)
		if err != nil {
			return nil, 0, infra.WrapRepoErr("failed to scan reservation row", err)
		}
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, infra.WrapRepoErr("failed to read reservation rows", err)
	}
	return views, total, nil
}

// buildFilterClause renders each supplied criterion as one predicate;
// absent criteria are simply omitted from the conjunction.
func buildFilterClause(filter queries.ReservationFilter) (string, []any) {
	var conditions []string
	var args []any

	if filter.GuestEmail != nil {
		args = append(args, *filter.GuestEmail)
		conditions = append(conditions, fmt.Sprintf("guest_email = $%d", len(args)))
	}
	if filter.RoomID != nil {
		args = append(args, *filter.RoomID)
		conditions = append(conditions, fmt.Sprintf("room_id = $%d", len(args)))
	}
	if filter.CreatedFrom != nil {
		args = append(args, *filter.CreatedFrom)
		conditions = append(conditions, fmt.Sprintf("create_date >= $%d::date", len(args)))
	}
	if filter.CreatedTo != nil {
		args = append(args, *filter.CreatedTo)
		conditions = append(conditions, fmt.Sprintf("create_date <= $%d::date", len(args)))
	}

	if len(conditions) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

func scanReservationView(row pgx.Row) (*queries.ReservationView, error) {
	var view queries.ReservationView
	err := row.Scan(
		&view.ID, &view.RoomID, &view.GuestEmail,
		&view.StartDate, &view.EndDate, &view.CreateDate, &view.Status,
	)
	if err != nil {
		return nil, err
	}
	return &view, nil
}
