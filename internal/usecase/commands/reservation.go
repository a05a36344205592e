package commands

import (
	"context"

	"hotel-booking/internal/domain/reservation"
	"hotel-booking/internal/domain/room"
	"hotel-booking/internal/infra"
	"hotel-booking/internal/pkg/clock"
	"hotel-booking/internal/pkg/errs"
	"hotel-booking/internal/pkg/patch"

	"github.com/google/uuid"
)

var (
	ErrReservationNotFound           = errs.New("reservation not found")
	ErrRoomNotFound                  = errs.New("room not found")
	ErrRoomRequired                  = errs.New("the reservation room is required")
	ErrNotOwner                      = errs.New("reservation belongs to another guest")
	ErrInvalidDateRange              = errs.New("invalid reservation date range")
	ErrMaxReserveDaysExceeded        = errs.New("max reserve days exceeded")
	ErrMaxReserveAdvanceDaysExceeded = errs.New("max reserve advance days exceeded")
	ErrRoomUnavailable               = errs.New("room already reserved for these dates")
	ErrInvalidStatus                 = errs.New("reservation status not valid")
	ErrDatabaseOperationFailed       = errs.New("database operation failed")
)

type CreateReservationParams struct {
	GuestEmail string
	StartDate  string
	EndDate    string
	RoomID     uuid.UUID
}

// UpdateReservationParams models a partial update: a nil field keeps the
// reservation's current value, which is distinct from "set to empty".
type UpdateReservationParams struct {
	GuestEmail string
	StartDate  *string
	EndDate    *string
	RoomID     *uuid.UUID
	Status     *string
}

//go:generate mockgen -source=reservation.go -destination=../../../tests/mock/commands/reservation.go -package=commandsmock

type ReservationRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error)
	// Create and Update must serialize conflict-check-then-write per room
	// (see infra/repository); a lost race surfaces as KindConflict.
	Create(ctx context.Context, res *reservation.Reservation) error
	Update(ctx context.Context, res *reservation.Reservation) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountConflicting(ctx context.Context, roomID uuid.UUID, stay reservation.StayRange, excludeID *uuid.UUID) (int64, error)
}

type RoomRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*room.Room, error)
}

type ReservationCommands interface {
	Create(ctx context.Context, params CreateReservationParams) (*reservation.Reservation, error)
	Update(ctx context.Context, id uuid.UUID, params UpdateReservationParams) (*reservation.Reservation, error)
	Cancel(ctx context.Context, id uuid.UUID, guestEmail string) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type reservationCommandsImpl struct {
	reservationRepo ReservationRepository
	roomRepo        RoomRepository
	clock           clock.Clock
}

func NewReservationCommands(
	reservationRepo ReservationRepository,
	roomRepo RoomRepository,
	clock clock.Clock,
) ReservationCommands {
	return &reservationCommandsImpl{
		reservationRepo: reservationRepo,
		roomRepo:        roomRepo,
		clock:           clock,
	}
}

// Create runs the validation rules in their contractual order: room
// resolution, date sanity, stay-length policy, advance-booking policy,
// availability. The first failing rule short-circuits.
func (c *reservationCommandsImpl) Create(ctx context.Context, params CreateReservationParams) (*reservation.Reservation, error) {
	roomEntity, err := c.resolveRoom(ctx, params.RoomID)
	if err != nil {
		return nil, err
	}

	stay, err := c.validateStay(ctx, roomEntity, params.StartDate, params.EndDate, nil)
	if err != nil {
		return nil, err
	}

	res, err := reservation.NewReservation(roomEntity.ID(), params.GuestEmail, stay, c.clock.Today())
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidDateRange)
	}

	if err := c.reservationRepo.Create(ctx, res); err != nil {
		if infra.IsKind(err, infra.KindConflict) {
			return nil, ErrRoomUnavailable
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return res, nil
}

// Update applies only the supplied fields; absent dates and room keep the
// existing values. Ownership is checked before any date rule so a
// non-owner always sees the same failure regardless of payload.
func (c *reservationCommandsImpl) Update(ctx context.Context, id uuid.UUID, params UpdateReservationParams) (*reservation.Reservation, error) {
	existing, err := c.findReservation(ctx, id)
	if err != nil {
		return nil, err
	}

	roomID := patch.Coalesce(params.RoomID, existing.RoomID())
	roomEntity, err := c.resolveRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}

	if !existing.OwnedBy(params.GuestEmail) {
		return nil, ErrNotOwner
	}

	startDate := patch.Coalesce(params.StartDate, reservation.FormatDate(existing.Stay().Start()))
	endDate := patch.Coalesce(params.EndDate, reservation.FormatDate(existing.Stay().End()))

	excludeID := existing.ID()
	stay, err := c.validateStay(ctx, roomEntity, startDate, endDate, &excludeID)
	if err != nil {
		return nil, err
	}

	if params.Status != nil && !reservation.Status(*params.Status).IsValid() {
		return nil, ErrInvalidStatus
	}

	existing.Reschedule(roomEntity.ID(), stay)
	if params.Status != nil {
		if err := existing.ChangeStatus(reservation.Status(*params.Status)); err != nil {
			return nil, errs.Mark(err, ErrInvalidStatus)
		}
	}

	if err := c.reservationRepo.Update(ctx, existing); err != nil {
		if infra.IsKind(err, infra.KindConflict) {
			return nil, ErrRoomUnavailable
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return existing, nil
}

// Cancel only checks ownership; the stay rules are not re-run, so a stay
// that has since become invalid can still be canceled.
func (c *reservationCommandsImpl) Cancel(ctx context.Context, id uuid.UUID, guestEmail string) error {
	existing, err := c.findReservation(ctx, id)
	if err != nil {
		return err
	}

	if !existing.OwnedBy(guestEmail) {
		return ErrNotOwner
	}

	existing.Cancel()
	if err := c.reservationRepo.Update(ctx, existing); err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return nil
}

// Delete is a thin pass-through to storage.
func (c *reservationCommandsImpl) Delete(ctx context.Context, id uuid.UUID) error {
	if err := c.reservationRepo.Delete(ctx, id); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return ErrReservationNotFound
		}
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return nil
}

func (c *reservationCommandsImpl) findReservation(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	existing, err := c.reservationRepo.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return existing, nil
}

func (c *reservationCommandsImpl) resolveRoom(ctx context.Context, roomID uuid.UUID) (*room.Room, error) {
	if roomID == uuid.Nil {
		return nil, ErrRoomRequired
	}
	roomEntity, err := c.roomRepo.FindByID(ctx, roomID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return roomEntity, nil
}

// validateStay runs rules 4-7: date ordering, not-in-past, stay length,
// advance horizon, then the overlap count against the store.
func (c *reservationCommandsImpl) validateStay(
	ctx context.Context,
	roomEntity *room.Room,
	startDate, endDate string,
	excludeID *uuid.UUID,
) (reservation.StayRange, error) {
	stay, err := reservation.ParseStayRange(startDate, endDate)
	if err != nil {
		return reservation.StayRange{}, errs.Mark(err, ErrInvalidDateRange)
	}

	today := c.clock.Today()
	if stay.StartsBefore(today) {
		return reservation.StayRange{}, errs.Mark(reservation.ErrStayInPast, ErrInvalidDateRange)
	}

	policy := roomEntity.Policy()
	if err := policy.ValidateStayLength(stay.Nights()); err != nil {
		return reservation.StayRange{}, errs.Mark(
			errs.Newf("your reservation can't be longer than %d days", policy.MaxReserveDays()),
			ErrMaxReserveDaysExceeded,
		)
	}
	if err := policy.ValidateAdvance(stay, today); err != nil {
		return reservation.StayRange{}, errs.Mark(
			errs.Newf("your reservation can't be more than %d days in advance", policy.MaxReserveAdvanceDays()),
			ErrMaxReserveAdvanceDaysExceeded,
		)
	}

	conflicts, err := c.reservationRepo.CountConflicting(ctx, roomEntity.ID(), stay, excludeID)
	if err != nil {
		return reservation.StayRange{}, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if conflicts > 0 {
		return reservation.StayRange{}, ErrRoomUnavailable
	}
	return stay, nil
}
