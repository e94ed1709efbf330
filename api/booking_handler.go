package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	bk "github.com/roselyu365/gamelibrary-managetool/booking"
)

type BookingService interface {
	GetAvailability(ctx context.Context, date string) (bk.Availability, error)
	SubmitBooking(ctx context.Context, req bk.BookingRequest) (bk.Booking, error)
	CancelBooking(ctx context.Context, id string) (bk.Booking, error)
	FindBookingByID(ctx context.Context, id string) (bk.Booking, error)
	ListBookings(ctx context.Context, filter bk.BookingFilter) ([]bk.Booking, error)
}

type BookingHandler struct {
	service BookingService
}

func NewBookingHandler(service BookingService) *BookingHandler {
	return &BookingHandler{service: service}
}

func (h *BookingHandler) Register(rg *gin.RouterGroup) {
	rg.GET("/availability", h.GetAvailability)
	rg.POST("/bookings", h.Create)
	rg.GET("/bookings/:id", h.GetByID)
	rg.DELETE("/bookings/:id", h.Cancel)
}

// RegisterAdmin wires the booking history view used by facility staff.
func (h *BookingHandler) RegisterAdmin(rg *gin.RouterGroup) {
	rg.GET("", h.List)
}

func (h *BookingHandler) GetAvailability(c *gin.Context) {
	date := c.Query("date")

	if len(date) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "date is required",
		})
		return
	}

	availability, err := h.service.GetAvailability(c.Request.Context(), date)

	if err != nil {
		c.Error(err)
		if errors.Is(err, bk.ErrInvalidField) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "failed to check availability",
		})
		return
	}

	c.IndentedJSON(http.StatusOK, availability)
}

func (h *BookingHandler) Create(c *gin.Context) {
	var req bk.BookingRequest

	if err := c.BindJSON(&req); err != nil {
		c.Error(err)
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "failed to parse JSON body",
		})
		return
	}

	booking, err := h.service.SubmitBooking(c.Request.Context(), req)

	if err != nil {
		c.Error(err)
		// validation sentinels carry the corrective detail for the client
		switch {
		case errors.Is(err, bk.ErrSlotConflict):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, bk.ErrOutOfWindow),
			errors.Is(err, bk.ErrInvalidRange),
			errors.Is(err, bk.ErrSingleBookingLimit),
			errors.Is(err, bk.ErrWeeklyQuotaExceeded),
			errors.Is(err, bk.ErrInvalidField):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create booking"})
		}
		return
	}

	c.JSON(http.StatusCreated, booking)
}

func (h *BookingHandler) GetByID(c *gin.Context) {
	id := c.Param("id")
	booking, err := h.service.FindBookingByID(c.Request.Context(), id)

	if err != nil {
		c.Error(err)
		if errors.Is(err, bk.ErrBookingNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "booking not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "failed to fetch booking",
		})
		return
	}

	c.IndentedJSON(http.StatusOK, booking)
}

func (h *BookingHandler) Cancel(c *gin.Context) {
	id := c.Param("id")

	booking, err := h.service.CancelBooking(c.Request.Context(), id)

	if err != nil {
		c.Error(err)
		if errors.Is(err, bk.ErrBookingNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "booking not found",
			})
		} else if errors.Is(err, bk.ErrAlreadyCancelled) {
			c.JSON(http.StatusConflict, gin.H{
				"error": "booking already cancelled",
			})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "failed to cancel booking",
			})
		}

		return
	}

	c.IndentedJSON(http.StatusOK, booking)
}

func (h *BookingHandler) List(c *gin.Context) {
	filter := bk.BookingFilter{
		Status:    c.Query("status"),
		DateFrom:  c.Query("date_from"),
		DateTo:    c.Query("date_to"),
		StudentID: c.Query("student_id"),
	}

	bookings, err := h.service.ListBookings(c.Request.Context(), filter)

	if err != nil {
		c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "failed to retrieve bookings",
		})
		return
	}

	c.IndentedJSON(http.StatusOK, bookings)
}
