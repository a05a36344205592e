package response

import (
	"hotel-booking/internal/domain/reservation"
	"hotel-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

// Dates are rendered as ISO 8601 calendar dates, never timestamps.
type ReservationResponse struct {
	ID         uuid.UUID `json:"id"`
	RoomID     uuid.UUID `json:"roomId"`
	GuestEmail string    `json:"guestEmail"`
	StartDate  string    `json:"startDate"`
	EndDate    string    `json:"endDate"`
	CreateDate string    `json:"createDate"`
	Status     string    `json:"status"`
}

type ReservationPageResponse struct {
	Total        int64                  `json:"totalReservations"`
	PageSize     int                    `json:"pageSize"`
	TotalPages   int                    `json:"totalPages"`
	Reservations []*ReservationResponse `json:"reservations"`
}

func FromReservationView(view *queries.ReservationView) *ReservationResponse {
	resp := &ReservationResponse{
		StartDate:  reservation.FormatDate(view.StartDate),
		EndDate:    reservation.FormatDate(view.EndDate),
		CreateDate: reservation.FormatDate(view.CreateDate),
	}
	// Copies the name-matching scalar fields; the date fields above keep
	// their formatted values because the types differ.
	_ = copier.Copy(resp, view)
	return resp
}

func FromReservation(res *reservation.Reservation) *ReservationResponse {
	return &ReservationResponse{
		ID:         res.ID(),
		RoomID:     res.RoomID(),
		GuestEmail: res.GuestEmail(),
		StartDate:  reservation.FormatDate(res.Stay().Start()),
		EndDate:    reservation.FormatDate(res.Stay().End()),
		CreateDate: reservation.FormatDate(res.CreateDate()),
		Status:     res.Status().String(),
	}
}

func FromReservationPage(page *queries.ReservationPage) *ReservationPageResponse {
	items := make([]*ReservationResponse, len(page.Reservations))
	for i, view := range page.Reservations {
		items[i] = FromReservationView(view)
	}
	return &ReservationPageResponse{
		Total:        page.Total,
		PageSize:     page.PageSize,
		TotalPages:   page.TotalPages,
		Reservations: items,
	}
}
