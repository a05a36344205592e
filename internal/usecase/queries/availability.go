package queries

import (
	"context"
	"time"

	"hotel-booking/internal/domain/reservation"
	"hotel-booking/internal/infra"
	"hotel-booking/internal/pkg/clock"
	"hotel-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

//go:generate mockgen -source=availability.go -destination=../../../tests/mock/queries/availability.go -package=queriesmock

type RoomQueries interface {
	// AvailableDates enumerates, in ascending order, every date from today
	// up to (but excluding) today + maxReserveAdvanceDays that no active
	// reservation covers. The sequence is recomputed fresh on each call.
	AvailableDates(ctx context.Context, roomID uuid.UUID) ([]string, error)
	IsAvailable(ctx context.Context, roomID uuid.UUID, startDate, endDate string) (bool, error)
}

type roomQueriesImpl struct {
	roomStore        RoomReadStore
	reservationStore ReservationReadStore
	clock            clock.Clock
}

func NewRoomQueries(
	roomStore RoomReadStore,
	reservationStore ReservationReadStore,
	clock clock.Clock,
) RoomQueries {
	return &roomQueriesImpl{
		roomStore:        roomStore,
		reservationStore: reservationStore,
		clock:            clock,
	}
}

func (q *roomQueriesImpl) AvailableDates(ctx context.Context, roomID uuid.UUID) ([]string, error) {
	roomView, err := q.findRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}

	active, err := q.reservationStore.FindActiveByRoom(ctx, roomID)
	if err != nil {
		return nil, errs.Mark(err, ErrReadStoreFailed)
	}

	stays := make([]reservation.StayRange, len(active))
	for i, view := range active {
		stays[i] = reservation.ReconstructStay(view.StartDate, view.EndDate)
	}

	today := q.clock.Today()
	available := make([]string, 0, roomView.MaxReserveAdvanceDays)
	for i := 0; i < roomView.MaxReserveAdvanceDays; i++ {
		day := today.AddDate(0, 0, i)
		if !dayCovered(stays, day) {
			available = append(available, reservation.FormatDate(day))
		}
	}
	return available, nil
}

// IsAvailable is a boolean convenience over the same boundary-inclusive
// overlap predicate the validator uses; it never excludes a reservation.
func (q *roomQueriesImpl) IsAvailable(ctx context.Context, roomID uuid.UUID, startDate, endDate string) (bool, error) {
	if _, err := q.findRoom(ctx, roomID); err != nil {
		return false, err
	}

	stay, err := reservation.ParseStayRange(startDate, endDate)
	if err != nil {
		return false, errs.Mark(err, ErrInvalidDateRange)
	}

	conflicts, err := q.reservationStore.CountConflicting(ctx, roomID, stay.Start(), stay.End())
	if err != nil {
		return false, errs.Mark(err, ErrReadStoreFailed)
	}
	return conflicts == 0, nil
}

func (q *roomQueriesImpl) findRoom(ctx context.Context, roomID uuid.UUID) (*RoomView, error) {
	roomView, err := q.roomStore.FindByID(ctx, roomID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, errs.Mark(err, ErrReadStoreFailed)
	}
	return roomView, nil
}

func dayCovered(stays []reservation.StayRange, day time.Time) bool {
	for _, stay := range stays {
		if stay.Covers(day) {
			return true
		}
	}
	return false
}
