package api

import (
	"net/http"
	"strconv"

	reqdto "hotel-booking/internal/handler/dto/request"
	resdto "hotel-booking/internal/handler/dto/response"
	"hotel-booking/internal/handler/httperr"
	"hotel-booking/internal/pkg/errs"
	"hotel-booking/internal/usecase/commands"
	"hotel-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ReservationHandler struct {
	cmds commands.ReservationCommands
	q    queries.ReservationQueries
}

func NewReservationHandler(cmds commands.ReservationCommands, q queries.ReservationQueries) *ReservationHandler {
	return &ReservationHandler{cmds: cmds, q: q}
}

// @Summary Create reservation
// @Description Validate and place a new reservation for a room
// @Tags reservations
// @Accept json
// @Produce json
// @Param request body reqdto.CreateReservationRequest true "Reservation request"
// @Success 201 {object} resdto.ReservationResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /reservations [post]
func (h *ReservationHandler) Create(c *gin.Context) {
	var req reqdto.CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	res, err := h.cmds.Create(c.Request.Context(), req.ToParams())
	if err != nil {
		abortReservationError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromReservation(res))
}

// @Summary Get reservation
// @Description Get a reservation by ID
// @Tags reservations
// @Produce json
// @Param id path string true "Reservation ID"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /reservations/{id} [get]
func (h *ReservationHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid reservation id", nil)
		return
	}

	view, err := h.q.Get(c.Request.Context(), id)
	if err != nil {
		abortReservationError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromReservationView(view))
}

// @Summary List reservations
// @Description List reservations filtered by guest, room and creation date, newest first
// @Tags reservations
// @Produce json
// @Param guestEmail query string false "Guest email"
// @Param roomId query string false "Room ID"
// @Param from query string false "Creation date lower bound (YYYY-MM-DD)"
// @Param to query string false "Creation date upper bound (YYYY-MM-DD)"
// @Param page query int false "Zero-based page number (default 0)"
// @Param size query int false "Page size (default 5)"
// @Success 200 {object} resdto.ReservationPageResponse
// @Failure 400 {object} map[string]string
// @Router /reservations [get]
func (h *ReservationHandler) List(c *gin.Context) {
	var roomID *uuid.UUID
	if v := c.Query("roomId"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid room id", &httperr.FieldDetail{Field: "roomId"})
			return
		}
		roomID = &id
	}

	filter, err := queries.NewReservationFilter(c.Query("guestEmail"), roomID, c.Query("from"), c.Query("to"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid filter dates", nil)
		return
	}

	page := queries.NewPage(intQuery(c, "page", 0), intQuery(c, "size", queries.DefaultPageSize))

	result, err := h.q.List(c.Request.Context(), filter, page)
	if err != nil {
		abortReservationError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromReservationPage(result))
}

// @Summary Update reservation
// @Description Modify a reservation's room, dates or status; absent fields keep their values
// @Tags reservations
// @Accept json
// @Produce json
// @Param id path string true "Reservation ID"
// @Param request body reqdto.UpdateReservationRequest true "Update request"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /reservations/{id} [put]
func (h *ReservationHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid reservation id", nil)
		return
	}

	var req reqdto.UpdateReservationRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request", nil)
		return
	}

	res, err := h.cmds.Update(c.Request.Context(), id, req.ToParams())
	if err != nil {
		abortReservationError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromReservation(res))
}

// @Summary Cancel reservation
// @Description Cancel a reservation; only the owning guest may cancel
// @Tags reservations
// @Accept json
// @Param id path string true "Reservation ID"
// @Param request body reqdto.CancelReservationRequest true "Cancel request"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /reservations/{id}/cancel [post]
func (h *ReservationHandler) Cancel(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid reservation id", nil)
		return
	}

	var req reqdto.CancelReservationRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request", nil)
		return
	}

	if err := h.cmds.Cancel(c.Request.Context(), id, req.GuestEmail); err != nil {
		abortReservationError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Delete reservation
// @Description Remove a reservation record entirely
// @Tags reservations
// @Param id path string true "Reservation ID"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /reservations/{id} [delete]
func (h *ReservationHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid reservation id", nil)
		return
	}

	if err := h.cmds.Delete(c.Request.Context(), id); err != nil {
		abortReservationError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func intQuery(c *gin.Context, name string, fallback int) int {
	v := c.Query(name)
	if v == "" {
		return fallback
	}
	iv, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return iv
}

// abortReservationError translates the command and query sentinels into
// the HTTP contract: missing entities 404, ownership 403, availability
// conflicts 409, every other rule violation 400. Matching goes through
// errs.Is because the rule violations arrive as marked errors.
func abortReservationError(c *gin.Context, err error) {
	switch {
	case errs.Is(err, commands.ErrReservationNotFound) || errs.Is(err, queries.ErrReservationNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Reservation not found", nil)
	case errs.Is(err, commands.ErrRoomNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Room not found", &httperr.FieldDetail{Field: "roomId"})
	case errs.Is(err, commands.ErrNotOwner):
		httperr.AbortWithError(c, http.StatusForbidden, err, "Reservation belongs to another guest", nil)
	case errs.Is(err, commands.ErrRoomUnavailable):
		httperr.AbortWithError(c, http.StatusConflict, err, "Room is not available for the selected dates", nil)
	case errs.Is(err, commands.ErrRoomRequired):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "A room is required", &httperr.FieldDetail{Field: "roomId"})
	case errs.Is(err, commands.ErrInvalidDateRange) || errs.Is(err, queries.ErrInvalidDateRange):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid reservation dates", nil)
	case errs.Is(err, commands.ErrMaxReserveDaysExceeded):
		httperr.AbortWithError(c, http.StatusBadRequest, err, err.Error(), nil)
	case errs.Is(err, commands.ErrMaxReserveAdvanceDaysExceeded):
		httperr.AbortWithError(c, http.StatusBadRequest, err, err.Error(), nil)
	case errs.Is(err, commands.ErrInvalidStatus):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Reservation status not valid", &httperr.FieldDetail{Field: "status"})
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
	}
}
