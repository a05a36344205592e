package api

import (
	"net/http"

	reqdto "hotel-booking/internal/handler/dto/request"
	resdto "hotel-booking/internal/handler/dto/response"
	"hotel-booking/internal/handler/httperr"
	"hotel-booking/internal/pkg/errs"
	"hotel-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type RoomHandler struct {
	q queries.RoomQueries
}

func NewRoomHandler(q queries.RoomQueries) *RoomHandler {
	return &RoomHandler{q: q}
}

// @Summary List available dates
// @Description List every bookable date for a room within its advance-booking window
// @Tags rooms
// @Produce json
// @Param id path string true "Room ID"
// @Success 200 {object} resdto.AvailableDatesResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /rooms/{id}/available-dates [get]
func (h *RoomHandler) AvailableDates(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid room id", nil)
		return
	}

	dates, err := h.q.AvailableDates(c.Request.Context(), id)
	if err != nil {
		abortRoomError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.AvailableDatesResponse{RoomID: id, AvailableDates: dates})
}

// @Summary Check availability
// @Description Check whether a room is free for a stay
// @Tags rooms
// @Accept json
// @Produce json
// @Param id path string true "Room ID"
// @Param request body reqdto.CheckAvailabilityRequest true "Stay to check"
// @Success 200 {object} resdto.AvailabilityResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /rooms/{id}/available [post]
func (h *RoomHandler) CheckAvailability(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid room id", nil)
		return
	}

	var req reqdto.CheckAvailabilityRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request", nil)
		return
	}

	available, err := h.q.IsAvailable(c.Request.Context(), id, req.StartDate, req.EndDate)
	if err != nil {
		abortRoomError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.AvailabilityResponse{
		RoomID:    id,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Available: available,
	})
}

func abortRoomError(c *gin.Context, err error) {
	switch {
	case errs.Is(err, queries.ErrRoomNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Room not found", nil)
	case errs.Is(err, queries.ErrInvalidDateRange):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid dates", nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
	}
}
