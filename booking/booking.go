package booking

import "time"

// Booking lifecycle states. Cancellation is terminal.
const (
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
)

// Wire layouts for calendar dates and times of day.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

type Booking struct {
	ID              string    `json:"id"`
	BookingDate     string    `json:"bookingDate"`
	StartTime       string    `json:"startTime"`
	EndTime         string    `json:"endTime"`
	UserName        string    `json:"userName"`
	UserEmail       string    `json:"userEmail"`
	StudentID       string    `json:"studentId"`
	NumberOfPlayers int       `json:"numberOfPlayers"`
	GameID          *int      `json:"gameId"`
	SpecialRequests string    `json:"specialRequests"`
	Status          string    `json:"status"` // confirmed, cancelled
	CreatedAt       time.Time `json:"createdAt"`
}

// BookingRequest is a candidate booking as submitted by a client. It is
// validated against the slot grid, existing bookings and the weekly quota
// before it becomes a Booking.
type BookingRequest struct {
	BookingDate     string `json:"bookingDate"`
	StartTime       string `json:"startTime"`
	EndTime         string `json:"endTime"`
	UserName        string `json:"userName"`
	UserEmail       string `json:"userEmail"`
	StudentID       string `json:"studentId"`
	NumberOfPlayers int    `json:"numberOfPlayers"`
	GameID          *int   `json:"gameId"`
	SpecialRequests string `json:"specialRequests"`
}

// OperatingHours is the immutable facility configuration the slot grid is
// derived from. Hours are in 24h facility-local time.
type OperatingHours struct {
	OpenHour          int
	CloseHour         int
	SlotLengthMinutes int
}

// Limits holds the booking caps enforced on every submission.
type Limits struct {
	MaxWeeklyHours        int
	MaxSingleBookingHours int
	MaxPlayers            int
}

// TimeSlot is a bookable unit within operating hours, with half-open
// HH:MM bounds. Slots are computed on demand and never persisted.
type TimeSlot struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type Availability struct {
	Date           string     `json:"date"`
	OpenTime       string     `json:"openHour"`
	CloseTime      string     `json:"closeHour"`
	BookedSlots    []TimeSlot `json:"bookedSlots"`
	AvailableSlots []TimeSlot `json:"availableSlots"`
}
