package response

import (
	"github.com/google/uuid"
)

type AvailableDatesResponse struct {
	RoomID         uuid.UUID `json:"roomId"`
	AvailableDates []string  `json:"availableDates"`
}

type AvailabilityResponse struct {
	RoomID    uuid.UUID `json:"roomId"`
	StartDate string    `json:"startDate"`
	EndDate   string    `json:"endDate"`
	Available bool      `json:"available"`
}
