package queries

import (
	"context"
	"time"

	"hotel-booking/internal/infra"
	"hotel-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrReservationNotFound = errs.New("reservation not found")
	ErrRoomNotFound        = errs.New("room not found")
	ErrInvalidDateRange    = errs.New("invalid date range")
	ErrReadStoreFailed     = errs.New("read store operation failed")
)

//go:generate mockgen -source=reservation.go -destination=../../../tests/mock/queries/reservation.go -package=queriesmock

type ReservationReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ReservationView, error)
	// FindActiveByRoom returns the room's RESERVED reservations; CANCELED
	// ones are inert history and never surface here.
	FindActiveByRoom(ctx context.Context, roomID uuid.UUID) ([]*ReservationView, error)
	CountConflicting(ctx context.Context, roomID uuid.UUID, startDate, endDate time.Time) (int64, error)
	List(ctx context.Context, filter ReservationFilter, page Page) ([]*ReservationView, int64, error)
}

type RoomReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*RoomView, error)
}

type ReservationQueries interface {
	Get(ctx context.Context, id uuid.UUID) (*ReservationView, error)
	List(ctx context.Context, filter ReservationFilter, page Page) (*ReservationPage, error)
}

type reservationQueriesImpl struct {
	store ReservationReadStore
}

func NewReservationQueries(store ReservationReadStore) ReservationQueries {
	return &reservationQueriesImpl{store: store}
}

func (q *reservationQueriesImpl) Get(ctx context.Context, id uuid.UUID) (*ReservationView, error) {
	view, err := q.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, errs.Mark(err, ErrReadStoreFailed)
	}
	return view, nil
}

// List returns one page sorted by creation date, newest first.
func (q *reservationQueriesImpl) List(ctx context.Context, filter ReservationFilter, page Page) (*ReservationPage, error) {
	views, total, err := q.store.List(ctx, filter, page)
	if err != nil {
		return nil, errs.Mark(err, ErrReadStoreFailed)
	}

	totalPages := int(total) / page.Size
	if int(total)%page.Size != 0 {
		totalPages++
	}

	return &ReservationPage{
		Total:        total,
		PageSize:     page.Size,
		TotalPages:   totalPages,
		Reservations: views,
	}, nil
}
