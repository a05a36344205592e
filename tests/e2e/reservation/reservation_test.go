//go:build e2e

package reservation_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"hotel-booking/internal/handler/dto/response"
	"hotel-booking/tests/common/builder"
	"hotel-booking/tests/common/dbtest"
	"hotel-booking/tests/common/httptest"
	"hotel-booking/tests/e2e"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	reservationsURL   = "/api/reservations"
	availableDatesURL = "/api/rooms/%s/available-dates"
	availabilityURL   = "/api/rooms/%s/available"
)

type ReservationSuite struct {
	e2e.SharedSuite
}

func (s *ReservationSuite) SetupSubTest() {
	s.SharedSuite.SetupSubTest()
}

func TestReservationSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(ReservationSuite))
}

// dayStr renders today+offset as an ISO calendar date.
func dayStr(offset int) string {
	return time.Now().UTC().AddDate(0, 0, offset).Format("2006-01-02")
}

func (s *ReservationSuite) createRoom(maxReserveDays, maxReserveAdvanceDays int) uuid.UUID {
	t := s.T()
	hotelID := dbtest.CreateTestHotel(t, s.DB, "Test Hotel")
	return dbtest.CreateTestRoom(t, s.DB, hotelID, maxReserveDays, maxReserveAdvanceDays)
}

func decode(t *testing.T, data []byte, target any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(data, target))
}

// =============================================================================
// TestCreateReservation
// =============================================================================

func (s *ReservationSuite) TestCreateReservation() {
	s.Run("Normal case: guest can place a reservation and read it back", func() {
		t := s.T()
		roomID := s.createRoom(3, 30)

		reqBody := builder.NewReservationBuilder().
			WithRoomID(roomID).
			WithGuestEmail("alice@example.com").
			WithDates(dayStr(1), dayStr(3)).
			BuildCreateRequestDTO()

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL, reqBody)
		require.Equal(t, http.StatusCreated, w.Code, "should create reservation: %s", w.Body.String())

		var created response.ReservationResponse
		decode(t, w.Body.Bytes(), &created)
		require.NotEqual(t, uuid.Nil, created.ID)

		dw := httptest.PerformRequest(t, s.Router, http.MethodGet, reservationsURL+"/"+created.ID.String(), nil)
		require.Equal(t, http.StatusOK, dw.Code)

		var fetched response.ReservationResponse
		decode(t, dw.Body.Bytes(), &fetched)

		expected := &response.ReservationResponse{
			RoomID:     roomID,
			GuestEmail: "alice@example.com",
			StartDate:  dayStr(1),
			EndDate:    dayStr(3),
			Status:     "RESERVED",
		}
		opts := []cmp.Option{
			cmpopts.IgnoreFields(response.ReservationResponse{}, "ID", "CreateDate"),
		}
		if diff := cmp.Diff(expected, &fetched, opts...); diff != "" {
			t.Errorf("Reservation response mismatch (-want +got):\n%s", diff)
		}
	})

	s.Run("Error case: overlapping stay on the same room is rejected", func() {
		t := s.T()
		roomID := s.createRoom(3, 30)
		dbtest.CreateTestReservation(t, s.DB, roomID, "alice@example.com", dayStr(1), dayStr(3), "RESERVED")

		reqBody := builder.NewReservationBuilder().
			WithRoomID(roomID).
			WithGuestEmail("bob@example.com").
			WithDates(dayStr(2), dayStr(4)).
			BuildCreateRequestDTO()

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL, reqBody)
		httptest.AssertErrorResponse(t, w, http.StatusConflict, "not available")
	})

	s.Run("Normal case: back-to-back stays touching at the boundary both conflict", func() {
		// end date of one stay equals start date of the next; the closed
		// interval treats that day as taken.
		t := s.T()
		roomID := s.createRoom(3, 30)
		dbtest.CreateTestReservation(t, s.DB, roomID, "alice@example.com", dayStr(1), dayStr(3), "RESERVED")

		reqBody := builder.NewReservationBuilder().
			WithRoomID(roomID).
			WithGuestEmail("bob@example.com").
			WithDates(dayStr(3), dayStr(5)).
			BuildCreateRequestDTO()

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL, reqBody)
		httptest.AssertErrorResponse(t, w, http.StatusConflict, "")
	})

	s.Run("Normal case: canceled reservations do not block the room", func() {
		t := s.T()
		roomID := s.createRoom(3, 30)
		dbtest.CreateTestReservation(t, s.DB, roomID, "alice@example.com", dayStr(1), dayStr(3), "CANCELED")

		reqBody := builder.NewReservationBuilder().
			WithRoomID(roomID).
			WithGuestEmail("bob@example.com").
			WithDates(dayStr(1), dayStr(3)).
			BuildCreateRequestDTO()

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL, reqBody)
		require.Equal(t, http.StatusCreated, w.Code, "canceled booking must free the room: %s", w.Body.String())
	})

	s.Run("Error case: stay longer than the room limit is rejected", func() {
		t := s.T()
		roomID := s.createRoom(3, 30)

		reqBody := builder.NewReservationBuilder().
			WithRoomID(roomID).
			WithDates(dayStr(1), dayStr(5)).
			BuildCreateRequestDTO()

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL, reqBody)
		httptest.AssertErrorResponse(t, w, http.StatusBadRequest, "can't be longer than 3 days")
	})

	s.Run("Error case: stay beyond the advance window is rejected", func() {
		t := s.T()
		roomID := s.createRoom(3, 30)

		reqBody := builder.NewReservationBuilder().
			WithRoomID(roomID).
			WithDates(dayStr(29), dayStr(31)).
			BuildCreateRequestDTO()

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL, reqBody)
		httptest.AssertErrorResponse(t, w, http.StatusBadRequest, "days in advance")
	})

	s.Run("Error case: unknown room yields 404", func() {
		t := s.T()

		reqBody := builder.NewReservationBuilder().
			WithRoomID(uuid.New()).
			WithDates(dayStr(1), dayStr(3)).
			BuildCreateRequestDTO()

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL, reqBody)
		httptest.AssertErrorResponse(t, w, http.StatusNotFound, "Room not found")
	})
}

// =============================================================================
// TestUpdateReservation
// =============================================================================

func (s *ReservationSuite) TestUpdateReservation() {
	s.Run("Normal case: owner can move the stay", func() {
		t := s.T()
		roomID := s.createRoom(3, 30)
		id := dbtest.CreateTestReservation(t, s.DB, roomID, "alice@example.com", dayStr(1), dayStr(3), "RESERVED")

		start, end := dayStr(5), dayStr(7)
		reqBody := map[string]any{
			"guestEmail": "alice@example.com",
			"startDate":  start,
			"endDate":    end,
		}

		w := httptest.PerformRequest(t, s.Router, http.MethodPut, reservationsURL+"/"+id.String(), reqBody)
		require.Equal(t, http.StatusOK, w.Code, "should update reservation: %s", w.Body.String())

		var updated response.ReservationResponse
		decode(t, w.Body.Bytes(), &updated)
		require.Equal(t, start, updated.StartDate)
		require.Equal(t, end, updated.EndDate)
	})

	s.Run("Normal case: vacated dates become bookable again", func() {
		t := s.T()
		roomID := s.createRoom(3, 30)
		id := dbtest.CreateTestReservation(t, s.DB, roomID, "alice@example.com", dayStr(1), dayStr(3), "RESERVED")

		reqBody := map[string]any{
			"guestEmail": "alice@example.com",
			"startDate":  dayStr(5),
			"endDate":    dayStr(7),
		}
		w := httptest.PerformRequest(t, s.Router, http.MethodPut, reservationsURL+"/"+id.String(), reqBody)
		require.Equal(t, http.StatusOK, w.Code)

		checkBody := map[string]any{"startDate": dayStr(1), "endDate": dayStr(3)}
		cw := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(availabilityURL, roomID), checkBody)
		require.Equal(t, http.StatusOK, cw.Code)

		var avail response.AvailabilityResponse
		decode(t, cw.Body.Bytes(), &avail)
		require.True(t, avail.Available, "old dates should be free after the move")
	})

	s.Run("Error case: another guest cannot modify the reservation", func() {
		t := s.T()
		roomID := s.createRoom(3, 30)
		id := dbtest.CreateTestReservation(t, s.DB, roomID, "alice@example.com", dayStr(1), dayStr(3), "RESERVED")

		reqBody := map[string]any{
			"guestEmail": "mallory@example.com",
			"startDate":  dayStr(5),
			"endDate":    dayStr(7),
		}

		w := httptest.PerformRequest(t, s.Router, http.MethodPut, reservationsURL+"/"+id.String(), reqBody)
		httptest.AssertErrorResponse(t, w, http.StatusForbidden, "another guest")
	})

	s.Run("Error case: moving onto another guest's dates is rejected", func() {
		t := s.T()
		roomID := s.createRoom(3, 30)
		dbtest.CreateTestReservation(t, s.DB, roomID, "bob@example.com", dayStr(5), dayStr(7), "RESERVED")
		id := dbtest.CreateTestReservation(t, s.DB, roomID, "alice@example.com", dayStr(1), dayStr(3), "RESERVED")

		reqBody := map[string]any{
			"guestEmail": "alice@example.com",
			"startDate":  dayStr(6),
			"endDate":    dayStr(8),
		}

		w := httptest.PerformRequest(t, s.Router, http.MethodPut, reservationsURL+"/"+id.String(), reqBody)
		httptest.AssertErrorResponse(t, w, http.StatusConflict, "")
	})

	s.Run("Error case: unknown reservation yields 404", func() {
		t := s.T()

		reqBody := map[string]any{"guestEmail": "alice@example.com"}
		w := httptest.PerformRequest(t, s.Router, http.MethodPut, reservationsURL+"/"+uuid.NewString(), reqBody)
		httptest.AssertErrorResponse(t, w, http.StatusNotFound, "")
	})
}

// =============================================================================
// TestCancelReservation
// =============================================================================

func (s *ReservationSuite) TestCancelReservation() {
	s.Run("Normal case: cancel frees the room and repeats harmlessly", func() {
		t := s.T()
		roomID := s.createRoom(3, 30)
		id := dbtest.CreateTestReservation(t, s.DB, roomID, "alice@example.com", dayStr(1), dayStr(3), "RESERVED")

		cancelURL := reservationsURL + "/" + id.String() + "/cancel"
		reqBody := map[string]any{"guestEmail": "alice@example.com"}

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, cancelURL, reqBody)
		require.Equal(t, http.StatusNoContent, w.Code)

		checkBody := map[string]any{"startDate": dayStr(1), "endDate": dayStr(3)}
		cw := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(availabilityURL, roomID), checkBody)
		require.Equal(t, http.StatusOK, cw.Code)

		var avail response.AvailabilityResponse
		decode(t, cw.Body.Bytes(), &avail)
		require.True(t, avail.Available)

		// Canceling again is a no-op, not an error.
		w2 := httptest.PerformRequest(t, s.Router, http.MethodPost, cancelURL, reqBody)
		require.Equal(t, http.StatusNoContent, w2.Code)
	})

	s.Run("Error case: another guest cannot cancel", func() {
		t := s.T()
		roomID := s.createRoom(3, 30)
		id := dbtest.CreateTestReservation(t, s.DB, roomID, "alice@example.com", dayStr(1), dayStr(3), "RESERVED")

		reqBody := map[string]any{"guestEmail": "mallory@example.com"}
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL+"/"+id.String()+"/cancel", reqBody)
		httptest.AssertErrorResponse(t, w, http.StatusForbidden, "")
	})
}

// =============================================================================
// TestDeleteReservation
// =============================================================================

func (s *ReservationSuite) TestDeleteReservation() {
	s.Run("Normal case: delete removes the record entirely", func() {
		t := s.T()
		roomID := s.createRoom(3, 30)
		id := dbtest.CreateTestReservation(t, s.DB, roomID, "alice@example.com", dayStr(1), dayStr(3), "RESERVED")

		w := httptest.PerformRequest(t, s.Router, http.MethodDelete, reservationsURL+"/"+id.String(), nil)
		require.Equal(t, http.StatusNoContent, w.Code)

		gw := httptest.PerformRequest(t, s.Router, http.MethodGet, reservationsURL+"/"+id.String(), nil)
		httptest.AssertErrorResponse(t, gw, http.StatusNotFound, "")
	})

	s.Run("Error case: unknown reservation yields 404", func() {
		t := s.T()
		w := httptest.PerformRequest(t, s.Router, http.MethodDelete, reservationsURL+"/"+uuid.NewString(), nil)
		httptest.AssertErrorResponse(t, w, http.StatusNotFound, "")
	})
}

// =============================================================================
// TestListReservations
// =============================================================================

func (s *ReservationSuite) TestListReservations() {
	s.Run("Normal case: filters by guest and paginates newest first", func() {
		t := s.T()
		roomID := s.createRoom(30, 120)

		for i := range 7 {
			start := dayStr(1 + i*3)
			end := dayStr(3 + i*3)
			email := "alice@example.com"
			if i%2 == 1 {
				email = "bob@example.com"
			}
			dbtest.CreateTestReservation(t, s.DB, roomID, email, start, end, "RESERVED")
		}

		url := reservationsURL + "?guestEmail=alice@example.com&page=0&size=3"
		w := httptest.PerformRequest(t, s.Router, http.MethodGet, url, nil)
		require.Equal(t, http.StatusOK, w.Code)

		var page response.ReservationPageResponse
		decode(t, w.Body.Bytes(), &page)
		require.Equal(t, int64(4), page.Total)
		require.Equal(t, 2, page.TotalPages)
		require.Len(t, page.Reservations, 3)
		for _, r := range page.Reservations {
			require.Equal(t, "alice@example.com", r.GuestEmail)
		}
	})

	s.Run("Normal case: room filter narrows to one room", func() {
		t := s.T()
		roomA := s.createRoom(3, 30)
		roomB := s.createRoom(3, 30)
		dbtest.CreateTestReservation(t, s.DB, roomA, "alice@example.com", dayStr(1), dayStr(3), "RESERVED")
		dbtest.CreateTestReservation(t, s.DB, roomB, "alice@example.com", dayStr(1), dayStr(3), "RESERVED")

		url := reservationsURL + "?roomId=" + roomA.String()
		w := httptest.PerformRequest(t, s.Router, http.MethodGet, url, nil)
		require.Equal(t, http.StatusOK, w.Code)

		var page response.ReservationPageResponse
		decode(t, w.Body.Bytes(), &page)
		require.Equal(t, int64(1), page.Total)
		require.Equal(t, roomA, page.Reservations[0].RoomID)
	})

	s.Run("Normal case: creation date bounds select today's records", func() {
		t := s.T()
		roomID := s.createRoom(3, 30)
		dbtest.CreateTestReservation(t, s.DB, roomID, "alice@example.com", dayStr(1), dayStr(3), "RESERVED")

		url := reservationsURL + "?from=" + dayStr(0) + "&to=" + dayStr(0)
		w := httptest.PerformRequest(t, s.Router, http.MethodGet, url, nil)
		require.Equal(t, http.StatusOK, w.Code)

		var page response.ReservationPageResponse
		decode(t, w.Body.Bytes(), &page)
		require.Equal(t, int64(1), page.Total)
	})
}

// =============================================================================
// TestRoomAvailability
// =============================================================================

func (s *ReservationSuite) TestRoomAvailability() {
	s.Run("Normal case: reserved days disappear from the available dates", func() {
		t := s.T()
		roomID := s.createRoom(3, 5)
		dbtest.CreateTestReservation(t, s.DB, roomID, "alice@example.com", dayStr(1), dayStr(2), "RESERVED")

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, fmt.Sprintf(availableDatesURL, roomID), nil)
		require.Equal(t, http.StatusOK, w.Code)

		var body response.AvailableDatesResponse
		decode(t, w.Body.Bytes(), &body)
		expected := []string{dayStr(0), dayStr(3), dayStr(4)}
		require.Equal(t, expected, body.AvailableDates)
	})

	s.Run("Normal case: availability check answers both ways", func() {
		t := s.T()
		roomID := s.createRoom(3, 30)
		dbtest.CreateTestReservation(t, s.DB, roomID, "alice@example.com", dayStr(1), dayStr(3), "RESERVED")

		taken := map[string]any{"startDate": dayStr(2), "endDate": dayStr(4)}
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(availabilityURL, roomID), taken)
		require.Equal(t, http.StatusOK, w.Code)

		var avail response.AvailabilityResponse
		decode(t, w.Body.Bytes(), &avail)
		require.False(t, avail.Available)

		free := map[string]any{"startDate": dayStr(5), "endDate": dayStr(7)}
		w2 := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(availabilityURL, roomID), free)
		require.Equal(t, http.StatusOK, w2.Code)

		decode(t, w2.Body.Bytes(), &avail)
		require.True(t, avail.Available)
	})

	s.Run("Error case: unknown room yields 404", func() {
		t := s.T()
		w := httptest.PerformRequest(t, s.Router, http.MethodGet, fmt.Sprintf(availableDatesURL, uuid.New()), nil)
		httptest.AssertErrorResponse(t, w, http.StatusNotFound, "")
	})
}
