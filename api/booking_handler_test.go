package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/roselyu365/gamelibrary-managetool/api"
	mock_api "github.com/roselyu365/gamelibrary-managetool/api/mocks"
	bk "github.com/roselyu365/gamelibrary-managetool/booking"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func setupRouter(t *testing.T) (*gin.Engine, *gomock.Controller, *mock_api.MockBookingService) {
	t.Helper()
	ctrl := gomock.NewController(t)

	gin.SetMode(gin.TestMode)
	router := gin.Default()
	mockService := mock_api.NewMockBookingService(ctrl)
	handler := api.NewBookingHandler(mockService)
	handler.Register(router.Group("/api/gaming-area"))
	handler.RegisterAdmin(router.Group("/api/admin/bookings"))

	return router, ctrl, mockService
}

func TestGetAvailability(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		router, ctrl, mockService := setupRouter(t)
		defer ctrl.Finish()

		availability := bk.Availability{
			Date:      "2024-06-10",
			OpenTime:  "09:00",
			CloseTime: "21:00",
			BookedSlots: []bk.TimeSlot{
				{Start: "14:00", End: "15:00"},
			},
			AvailableSlots: []bk.TimeSlot{
				{Start: "09:00", End: "10:00"},
				{Start: "10:00", End: "11:00"},
			},
		}

		availabilityJson, _ := json.MarshalIndent(availability, "", "    ")
		mockService.EXPECT().GetAvailability(gomock.Any(), "2024-06-10").Return(availability, nil).Times(1)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/gaming-area/availability?date=2024-06-10", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, 200, w.Code)
		assert.JSONEq(t, string(availabilityJson), w.Body.String())
	})

	t.Run("missing date", func(t *testing.T) {
		router, ctrl, _ := setupRouter(t)
		defer ctrl.Finish()

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/gaming-area/availability", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, 400, w.Code)
		assert.JSONEq(t, `{"error":"date is required"}`, w.Body.String())
	})

	t.Run("malformed date", func(t *testing.T) {
		router, ctrl, mockService := setupRouter(t)
		defer ctrl.Finish()

		mockService.EXPECT().GetAvailability(gomock.Any(), "bad").Return(bk.Availability{}, bk.ErrInvalidField).Times(1)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/gaming-area/availability?date=bad", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, 400, w.Code)
	})

	t.Run("service error", func(t *testing.T) {
		router, ctrl, mockService := setupRouter(t)
		defer ctrl.Finish()

		mockService.EXPECT().GetAvailability(gomock.Any(), "2024-06-10").Return(bk.Availability{}, assert.AnError).Times(1)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/gaming-area/availability?date=2024-06-10", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, 500, w.Code)
		assert.JSONEq(t, `{"error":"failed to check availability"}`, w.Body.String())
	})
}

func TestCreate(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		router, ctrl, mockService := setupRouter(t)
		defer ctrl.Finish()

		toCreate := bk.BookingRequest{
			BookingDate:     "2024-06-10",
			StartTime:       "14:00",
			EndTime:         "15:00",
			UserName:        "Ana Chen",
			UserEmail:       "ana.chen@example.edu",
			StudentID:       "S12345",
			NumberOfPlayers: 2,
		}
		inserted := bk.Booking{
			ID:              "123",
			BookingDate:     "2024-06-10",
			StartTime:       "14:00",
			EndTime:         "15:00",
			UserName:        "Ana Chen",
			UserEmail:       "ana.chen@example.edu",
			StudentID:       "S12345",
			NumberOfPlayers: 2,
			Status:          bk.StatusConfirmed,
		}
		insertedJson, _ := json.Marshal(inserted)
		body, _ := json.Marshal(toCreate)

		mockService.EXPECT().SubmitBooking(gomock.Any(), toCreate).Return(inserted, nil).Times(1)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/api/gaming-area/bookings", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, 201, w.Code)
		assert.JSONEq(t, string(insertedJson), w.Body.String())
	})

	t.Run("bad json", func(t *testing.T) {
		router, ctrl, _ := setupRouter(t)
		defer ctrl.Finish()

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/api/gaming-area/bookings", bytes.NewBufferString("{"))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, 400, w.Code)
		assert.JSONEq(t, `{"error":"failed to parse JSON body"}`, w.Body.String())
	})

	t.Run("slot conflict", func(t *testing.T) {
		router, ctrl, mockService := setupRouter(t)
		defer ctrl.Finish()

		body := []byte(`{"bookingDate":"2024-06-10"}`)
		mockService.EXPECT().SubmitBooking(gomock.Any(), gomock.Any()).Return(bk.Booking{}, bk.ErrSlotConflict).Times(1)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/api/gaming-area/bookings", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, 409, w.Code)
	})

	t.Run("validation errors map to 400", func(t *testing.T) {
		for _, sentinel := range []error{
			bk.ErrOutOfWindow,
			bk.ErrInvalidRange,
			bk.ErrSingleBookingLimit,
			bk.ErrWeeklyQuotaExceeded,
			bk.ErrInvalidField,
		} {
			router, ctrl, mockService := setupRouter(t)

			body := []byte(`{"bookingDate":"2024-06-10"}`)
			mockService.EXPECT().SubmitBooking(gomock.Any(), gomock.Any()).Return(bk.Booking{}, sentinel).Times(1)

			w := httptest.NewRecorder()
			req, _ := http.NewRequest("POST", "/api/gaming-area/bookings", bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")
			router.ServeHTTP(w, req)

			assert.Equal(t, 400, w.Code, "sentinel %v", sentinel)
			ctrl.Finish()
		}
	})

	t.Run("service error", func(t *testing.T) {
		router, ctrl, mockService := setupRouter(t)
		defer ctrl.Finish()

		body := []byte(`{"bookingDate":"2024-06-10"}`)
		mockService.EXPECT().SubmitBooking(gomock.Any(), gomock.Any()).Return(bk.Booking{}, assert.AnError).Times(1)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/api/gaming-area/bookings", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, 500, w.Code)
		assert.JSONEq(t, `{"error":"failed to create booking"}`, w.Body.String())
	})
}

func TestGetByID(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		router, ctrl, mockService := setupRouter(t)
		defer ctrl.Finish()

		b := bk.Booking{ID: "123", BookingDate: "2024-06-10", Status: bk.StatusConfirmed}
		bJson, _ := json.MarshalIndent(b, "", "    ")
		mockService.EXPECT().FindBookingByID(gomock.Any(), "123").Return(b, nil).Times(1)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/gaming-area/bookings/123", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, 200, w.Code)
		assert.JSONEq(t, string(bJson), w.Body.String())
	})

	t.Run("not found", func(t *testing.T) {
		router, ctrl, mockService := setupRouter(t)
		defer ctrl.Finish()

		mockService.EXPECT().FindBookingByID(gomock.Any(), "123").Return(bk.Booking{}, bk.ErrBookingNotFound).Times(1)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/gaming-area/bookings/123", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, 404, w.Code)
		assert.JSONEq(t, `{"error":"booking not found"}`, w.Body.String())
	})

	t.Run("repo error", func(t *testing.T) {
		router, ctrl, mockService := setupRouter(t)
		defer ctrl.Finish()

		mockService.EXPECT().FindBookingByID(gomock.Any(), "123").Return(bk.Booking{}, assert.AnError).Times(1)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/gaming-area/bookings/123", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, 500, w.Code)
		assert.JSONEq(t, `{"error":"failed to fetch booking"}`, w.Body.String())
	})
}

func TestCancel(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		router, ctrl, mockService := setupRouter(t)
		defer ctrl.Finish()

		cancelled := bk.Booking{ID: "123", BookingDate: "2024-06-10", Status: bk.StatusCancelled}
		cancelledJson, _ := json.MarshalIndent(cancelled, "", "    ")
		mockService.EXPECT().CancelBooking(gomock.Any(), "123").Return(cancelled, nil).Times(1)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("DELETE", "/api/gaming-area/bookings/123", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, 200, w.Code)
		assert.JSONEq(t, string(cancelledJson), w.Body.String())
	})

	t.Run("not found", func(t *testing.T) {
		router, ctrl, mockService := setupRouter(t)
		defer ctrl.Finish()

		mockService.EXPECT().CancelBooking(gomock.Any(), "123").Return(bk.Booking{}, bk.ErrBookingNotFound).Times(1)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("DELETE", "/api/gaming-area/bookings/123", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, 404, w.Code)
		assert.JSONEq(t, `{"error":"booking not found"}`, w.Body.String())
	})

	t.Run("already cancelled", func(t *testing.T) {
		router, ctrl, mockService := setupRouter(t)
		defer ctrl.Finish()

		mockService.EXPECT().CancelBooking(gomock.Any(), "123").Return(bk.Booking{}, bk.ErrAlreadyCancelled).Times(1)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("DELETE", "/api/gaming-area/bookings/123", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, 409, w.Code)
		assert.JSONEq(t, `{"error":"booking already cancelled"}`, w.Body.String())
	})

	t.Run("service error", func(t *testing.T) {
		router, ctrl, mockService := setupRouter(t)
		defer ctrl.Finish()

		mockService.EXPECT().CancelBooking(gomock.Any(), "123").Return(bk.Booking{}, assert.AnError).Times(1)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("DELETE", "/api/gaming-area/bookings/123", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, 500, w.Code)
		assert.JSONEq(t, `{"error":"failed to cancel booking"}`, w.Body.String())
	})
}

func TestList(t *testing.T) {
	t.Run("passes filters through", func(t *testing.T) {
		router, ctrl, mockService := setupRouter(t)
		defer ctrl.Finish()

		filter := bk.BookingFilter{
			Status:    "confirmed",
			DateFrom:  "2024-06-01",
			DateTo:    "2024-06-30",
			StudentID: "S12345",
		}
		bookings := []bk.Booking{{ID: "1"}, {ID: "2"}}
		bookingsJson, _ := json.MarshalIndent(bookings, "", "    ")
		mockService.EXPECT().ListBookings(gomock.Any(), filter).Return(bookings, nil).Times(1)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/admin/bookings?status=confirmed&date_from=2024-06-01&date_to=2024-06-30&student_id=S12345", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, 200, w.Code)
		assert.JSONEq(t, string(bookingsJson), w.Body.String())
	})

	t.Run("no filters", func(t *testing.T) {
		router, ctrl, mockService := setupRouter(t)
		defer ctrl.Finish()

		bookings := []bk.Booking{{ID: "1"}}
		bookingsJson, _ := json.MarshalIndent(bookings, "", "    ")
		mockService.EXPECT().ListBookings(gomock.Any(), bk.BookingFilter{}).Return(bookings, nil).Times(1)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/admin/bookings", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, 200, w.Code)
		assert.JSONEq(t, string(bookingsJson), w.Body.String())
	})

	t.Run("repo error", func(t *testing.T) {
		router, ctrl, mockService := setupRouter(t)
		defer ctrl.Finish()

		mockService.EXPECT().ListBookings(gomock.Any(), gomock.Any()).Return(nil, assert.AnError).Times(1)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/admin/bookings", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, 500, w.Code)
		assert.JSONEq(t, `{"error":"failed to retrieve bookings"}`, w.Body.String())
	})
}
