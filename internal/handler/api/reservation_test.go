//go:build unit

package api_test

import (
	"net/http"
	"testing"

	"hotel-booking/internal/handler/api"
	resdto "hotel-booking/internal/handler/dto/response"
	"hotel-booking/internal/pkg/errs"
	"hotel-booking/internal/usecase/commands"
	"hotel-booking/internal/usecase/queries"
	"hotel-booking/tests/common/builder"
	"hotel-booking/tests/common/httptest"
	"hotel-booking/tests/common/testutil"
	commandsmock "hotel-booking/tests/mock/commands"
	queriesmock "hotel-booking/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type ReservationHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockReservationCommands
	mockQueries  *queriesmock.MockReservationQueries
	handler      *api.ReservationHandler
}

func (s *ReservationHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockReservationCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockReservationQueries(s.mockCtrl)
	s.handler = api.NewReservationHandler(s.mockCommands, s.mockQueries)

	s.router.POST("/reservations", s.handler.Create)
	s.router.GET("/reservations", s.handler.List)
	s.router.GET("/reservations/:id", s.handler.Get)
	s.router.PUT("/reservations/:id", s.handler.Update)
	s.router.POST("/reservations/:id/cancel", s.handler.Cancel)
	s.router.DELETE("/reservations/:id", s.handler.Delete)
}

func (s *ReservationHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestReservationHandlerSuite(t *testing.T) {
	suite.Run(t, new(ReservationHandlerTestSuite))
}

// ================================================================================
// TestCreate
// ================================================================================

func (s *ReservationHandlerTestSuite) TestCreate() {
	url := "/reservations"

	b := builder.NewReservationBuilder()
	reqBody := b.BuildCreateRequestDTO()

	s.Run("success: returns 201 Created with the reservation", func() {
		created, err := b.BuildDomain()
		s.Require().NoError(err)
		s.mockCommands.EXPECT().Create(gomock.Any(), gomock.Any()).Return(created, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody)

		var body resdto.ReservationResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.Equal(created.ID(), body.ID)
		s.Equal(b.RoomID, body.RoomID)
		s.Equal(b.StartDate, body.StartDate)
		s.Equal(b.EndDate, body.EndDate)
		s.Equal("RESERVED", body.Status)
	})

	s.Run("error: 400 Bad Request on malformed payload", func() {
		cases := []struct {
			name   string
			mutate func(m map[string]any)
		}{
			{name: "missing guestEmail", mutate: testutil.Field("guestEmail", nil)},
			{name: "invalid guestEmail", mutate: testutil.Field("guestEmail", "not-an-email")},
			{name: "missing startDate", mutate: testutil.Field("startDate", nil)},
			{name: "startDate not a calendar date", mutate: testutil.Field("startDate", "2026/03/10")},
			{name: "missing endDate", mutate: testutil.Field("endDate", nil)},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				requestMap := testutil.DtoMap(s.T(), reqBody, tc.mutate)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap)
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
			})
		}
	})

	s.Run("error: marked rule violations keep their contract mapping", func() {
		// The command layer marks its sentinels onto underlying causes, so
		// the status mapping must see through the mark.
		cases := []struct {
			name          string
			err           error
			expectCode    int
			expectMessage string
		}{
			{
				name:       "marked date violation",
				err:        errs.Mark(errs.New("parsing \"soon\" as \"2006-01-02\""), commands.ErrInvalidDateRange),
				expectCode: http.StatusBadRequest,
			},
			{
				name:          "marked stay-length violation",
				err:           errs.Mark(errs.Newf("your reservation can't be longer than %d days", 3), commands.ErrMaxReserveDaysExceeded),
				expectCode:    http.StatusBadRequest,
				expectMessage: "can't be longer than 3 days",
			},
			{
				name:          "marked advance violation",
				err:           errs.Mark(errs.Newf("your reservation can't be more than %d days in advance", 30), commands.ErrMaxReserveAdvanceDaysExceeded),
				expectCode:    http.StatusBadRequest,
				expectMessage: "days in advance",
			},
			{
				name:       "marked storage failure",
				err:        errs.Mark(errs.New("connection refused"), commands.ErrDatabaseOperationFailed),
				expectCode: http.StatusInternalServerError,
			},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil, tc.err)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody)
				httptest.AssertErrorResponse(s.T(), rec, tc.expectCode, tc.expectMessage)
			})
		}
	})

	s.Run("error: command sentinels map to the HTTP contract", func() {
		cases := []struct {
			name       string
			err        error
			expectCode int
		}{
			{name: "missing room", err: commands.ErrRoomRequired, expectCode: http.StatusBadRequest},
			{name: "unknown room", err: commands.ErrRoomNotFound, expectCode: http.StatusNotFound},
			{name: "invalid dates", err: commands.ErrInvalidDateRange, expectCode: http.StatusBadRequest},
			{name: "stay too long", err: commands.ErrMaxReserveDaysExceeded, expectCode: http.StatusBadRequest},
			{name: "too far in advance", err: commands.ErrMaxReserveAdvanceDaysExceeded, expectCode: http.StatusBadRequest},
			{name: "room unavailable", err: commands.ErrRoomUnavailable, expectCode: http.StatusConflict},
			{name: "storage failure", err: commands.ErrDatabaseOperationFailed, expectCode: http.StatusInternalServerError},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil, tc.err)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody)
				httptest.AssertErrorResponse(s.T(), rec, tc.expectCode, "")
			})
		}
	})
}

// ================================================================================
// TestGet
// ================================================================================

func (s *ReservationHandlerTestSuite) TestGet() {
	view := builder.NewReservationBuilder().BuildView()
	url := "/reservations/" + view.ID.String()

	s.Run("success: returns the reservation", func() {
		s.mockQueries.EXPECT().Get(gomock.Any(), view.ID).Return(view, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil)

		var body resdto.ReservationResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(view.ID, body.ID)
		s.Equal(view.GuestEmail, body.GuestEmail)
	})

	s.Run("error: 400 on malformed id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/reservations/not-a-uuid", nil)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})

	s.Run("error: 404 on unknown reservation", func() {
		s.mockQueries.EXPECT().Get(gomock.Any(), view.ID).Return(nil, queries.ErrReservationNotFound)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Reservation not found")
	})
}

// ================================================================================
// TestList
// ================================================================================

func (s *ReservationHandlerTestSuite) TestList() {
	s.Run("success: passes normalized filter and page to the query side", func() {
		roomID := uuid.New()
		page := &queries.ReservationPage{
			Total:        int64(1),
			PageSize:     10,
			TotalPages:   1,
			Reservations: []*queries.ReservationView{builder.NewReservationBuilder().BuildView()},
		}

		s.mockQueries.EXPECT().
			List(gomock.Any(), gomock.Cond(func(f queries.ReservationFilter) bool {
				return f.GuestEmail != nil && *f.GuestEmail == "guest@example.com" &&
					f.RoomID != nil && *f.RoomID == roomID
			}), queries.Page{Number: 2, Size: 10}).
			Return(page, nil)

		url := "/reservations?guestEmail=guest@example.com&roomId=" + roomID.String() + "&page=2&size=10"
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil)

		var body resdto.ReservationPageResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(int64(1), body.Total)
		s.Len(body.Reservations, 1)
	})

	s.Run("success: defaults apply when paging params are absent", func() {
		s.mockQueries.EXPECT().
			List(gomock.Any(), gomock.Any(), queries.Page{Number: 0, Size: 5}).
			Return(&queries.ReservationPage{PageSize: 5}, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/reservations", nil)
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("error: 400 on malformed room id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/reservations?roomId=nope", nil)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})

	s.Run("error: 400 on malformed filter dates", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/reservations?from=tomorrow", nil)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})
}

// ================================================================================
// TestUpdate
// ================================================================================

func (s *ReservationHandlerTestSuite) TestUpdate() {
	b := builder.NewReservationBuilder()
	reqBody := b.BuildUpdateRequestDTO()
	url := "/reservations/" + b.ID.String()

	s.Run("success: returns the updated reservation", func() {
		updated, err := b.BuildDomain()
		s.Require().NoError(err)
		s.mockCommands.EXPECT().Update(gomock.Any(), b.ID, gomock.Any()).Return(updated, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, reqBody)

		var body resdto.ReservationResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(b.StartDate, body.StartDate)
	})

	s.Run("error: 403 when another guest modifies", func() {
		s.mockCommands.EXPECT().Update(gomock.Any(), b.ID, gomock.Any()).Return(nil, commands.ErrNotOwner)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, reqBody)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "")
	})

	s.Run("error: 400 on unknown status value", func() {
		s.mockCommands.EXPECT().Update(gomock.Any(), b.ID, gomock.Any()).Return(nil, commands.ErrInvalidStatus)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, reqBody)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})

	s.Run("error: 409 when new dates collide", func() {
		s.mockCommands.EXPECT().Update(gomock.Any(), b.ID, gomock.Any()).Return(nil, commands.ErrRoomUnavailable)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, reqBody)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "")
	})

	s.Run("error: 400 when guestEmail is missing", func() {
		requestMap := testutil.DtoMap(s.T(), reqBody, testutil.Field("guestEmail", nil))
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, requestMap)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})
}

// ================================================================================
// TestCancel
// ================================================================================

func (s *ReservationHandlerTestSuite) TestCancel() {
	id := uuid.New()
	url := "/reservations/" + id.String() + "/cancel"
	reqBody := map[string]any{"guestEmail": "guest@example.com"}

	s.Run("success: returns 204", func() {
		s.mockCommands.EXPECT().Cancel(gomock.Any(), id, "guest@example.com").Return(nil)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody)
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("error: 403 when another guest cancels", func() {
		s.mockCommands.EXPECT().Cancel(gomock.Any(), id, gomock.Any()).Return(commands.ErrNotOwner)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "")
	})

	s.Run("error: 404 on unknown reservation", func() {
		s.mockCommands.EXPECT().Cancel(gomock.Any(), id, gomock.Any()).Return(commands.ErrReservationNotFound)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "")
	})

	s.Run("error: 400 without the owning guest email", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{})
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})
}

// ================================================================================
// TestDelete
// ================================================================================

func (s *ReservationHandlerTestSuite) TestDelete() {
	id := uuid.New()
	url := "/reservations/" + id.String()

	s.Run("success: returns 204", func() {
		s.mockCommands.EXPECT().Delete(gomock.Any(), id).Return(nil)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil)
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("error: 404 on unknown reservation", func() {
		s.mockCommands.EXPECT().Delete(gomock.Any(), id).Return(commands.ErrReservationNotFound)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "")
	})
}
