//go:build unit || e2e

package builder

import (
	"time"

	domreservation "hotel-booking/internal/domain/reservation"
	reqdto "hotel-booking/internal/handler/dto/request"
	"hotel-booking/internal/pkg/clock"
	"hotel-booking/internal/usecase/commands"
	"hotel-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type ReservationBuilder struct {
	ID         uuid.UUID
	RoomID     uuid.UUID
	GuestEmail string
	StartDate  string
	EndDate    string
	Status     string
	Today      time.Time
}

func NewReservationBuilder() *ReservationBuilder {
	today := clock.Midnight(time.Now())
	return &ReservationBuilder{
		ID:         uuid.New(),
		RoomID:     uuid.New(),
		GuestEmail: "guest@example.com",
		StartDate:  domreservation.FormatDate(today.AddDate(0, 0, 1)),
		EndDate:    domreservation.FormatDate(today.AddDate(0, 0, 3)),
		Status:     domreservation.StatusReserved.String(),
		Today:      today,
	}
}

func (r *ReservationBuilder) With(mutate func(*ReservationBuilder)) *ReservationBuilder {
	mutate(r)
	return r
}

// Build methods
func (r *ReservationBuilder) BuildDomain() (*domreservation.Reservation, error) {
	stay, err := domreservation.ParseStayRange(r.StartDate, r.EndDate)
	if err != nil {
		return nil, err
	}
	return domreservation.NewReservation(r.RoomID, r.GuestEmail, stay, r.Today)
}

func (r *ReservationBuilder) BuildReconstructed() *domreservation.Reservation {
	start, _ := domreservation.ParseDate(r.StartDate)
	end, _ := domreservation.ParseDate(r.EndDate)
	return domreservation.ReconstructReservation(
		r.ID,
		r.RoomID,
		r.GuestEmail,
		domreservation.ReconstructStay(start, end),
		domreservation.Status(r.Status),
		r.Today,
	)
}

func (r *ReservationBuilder) BuildView() *queries.ReservationView {
	start, _ := domreservation.ParseDate(r.StartDate)
	end, _ := domreservation.ParseDate(r.EndDate)
	return &queries.ReservationView{
		ID:         r.ID,
		RoomID:     r.RoomID,
		GuestEmail: r.GuestEmail,
		StartDate:  start,
		EndDate:    end,
		CreateDate: r.Today,
		Status:     r.Status,
	}
}

func (r *ReservationBuilder) BuildCreateRequestDTO() reqdto.CreateReservationRequest {
	return reqdto.CreateReservationRequest{
		GuestEmail: r.GuestEmail,
		RoomID:     r.RoomID,
		StartDate:  r.StartDate,
		EndDate:    r.EndDate,
	}
}

func (r *ReservationBuilder) BuildUpdateRequestDTO() reqdto.UpdateReservationRequest {
	startDate := r.StartDate
	endDate := r.EndDate
	roomID := r.RoomID
	return reqdto.UpdateReservationRequest{
		GuestEmail: r.GuestEmail,
		RoomID:     &roomID,
		StartDate:  &startDate,
		EndDate:    &endDate,
	}
}

func (r *ReservationBuilder) BuildCreateParams() commands.CreateReservationParams {
	return commands.CreateReservationParams{
		GuestEmail: r.GuestEmail,
		StartDate:  r.StartDate,
		EndDate:    r.EndDate,
		RoomID:     r.RoomID,
	}
}

// Fluent builder methods
func (r *ReservationBuilder) WithID(id uuid.UUID) *ReservationBuilder {
	r.ID = id
	return r
}

func (r *ReservationBuilder) WithRoomID(roomID uuid.UUID) *ReservationBuilder {
	r.RoomID = roomID
	return r
}

func (r *ReservationBuilder) WithGuestEmail(email string) *ReservationBuilder {
	r.GuestEmail = email
	return r
}

func (r *ReservationBuilder) WithDates(startDate, endDate string) *ReservationBuilder {
	r.StartDate = startDate
	r.EndDate = endDate
	return r
}

// WithStayOffsets places the stay relative to Today, in days.
func (r *ReservationBuilder) WithStayOffsets(startOffset, endOffset int) *ReservationBuilder {
	r.StartDate = domreservation.FormatDate(r.Today.AddDate(0, 0, startOffset))
	r.EndDate = domreservation.FormatDate(r.Today.AddDate(0, 0, endOffset))
	return r
}

func (r *ReservationBuilder) WithStatus(status string) *ReservationBuilder {
	r.Status = status
	return r
}

func (r *ReservationBuilder) WithToday(today time.Time) *ReservationBuilder {
	prev := r.Today
	r.Today = clock.Midnight(today)
	// Keep the stay at the same relative position when only Today moves.
	if start, err := domreservation.ParseDate(r.StartDate); err == nil {
		if end, err := domreservation.ParseDate(r.EndDate); err == nil {
			startOffset := int(start.Sub(prev) / (24 * time.Hour))
			endOffset := int(end.Sub(prev) / (24 * time.Hour))
			r.WithStayOffsets(startOffset, endOffset)
		}
	}
	return r
}

func (r *ReservationBuilder) AsCanceled() *ReservationBuilder {
	r.Status = domreservation.StatusCanceled.String()
	return r
}
