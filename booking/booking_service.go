package booking

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/roselyu365/gamelibrary-managetool/notify"
)

type BookingRepository interface {
	GetBookingByID(ctx context.Context, id string) (Booking, error)
	GetConfirmedBookingsForDate(ctx context.Context, date string) ([]Booking, error)
	GetConfirmedBookingsForUserInRange(ctx context.Context, userEmail, studentID, from, to string) ([]Booking, error)
	InsertBooking(ctx context.Context, booking Booking) (Booking, error)
	SetBookingStatus(ctx context.Context, id string, status string) error
	ListBookings(ctx context.Context, filter BookingFilter) ([]Booking, error)
}

// GameCatalog is the narrow read contract against the game catalog, used
// only to resolve an optional game reference on a candidate booking.
type GameCatalog interface {
	GameExists(ctx context.Context, id int) (bool, error)
}

type Service struct {
	repo    BookingRepository
	catalog GameCatalog
	client  notify.WebhookClient
	hours   OperatingHours
	limits  Limits
	clock   Clock

	// mu serializes the check-then-commit path of submissions and
	// cancellations. Availability reads stay lock-free.
	mu sync.Mutex
}

func NewService(repo BookingRepository, catalog GameCatalog, client notify.WebhookClient, hours OperatingHours, limits Limits, clock Clock) *Service {
	return &Service{
		repo:    repo,
		catalog: catalog,
		client:  client,
		hours:   hours,
		limits:  limits,
		clock:   clock,
	}
}

// GetAvailability reports every slot of the grid for a date, split into
// free and occupied. The result may be stale by the time a client acts on
// it; SubmitBooking re-validates against fresh state regardless.
func (s *Service) GetAvailability(ctx context.Context, date string) (Availability, error) {
	if _, err := time.Parse(DateLayout, date); err != nil {
		return Availability{}, fmt.Errorf("%w: date must be formatted as YYYY-MM-DD", ErrInvalidField)
	}

	slots, err := SlotGrid(s.hours)

	if err != nil {
		return Availability{}, err
	}

	bookings, err := s.repo.GetConfirmedBookingsForDate(ctx, date)

	if err != nil {
		return Availability{}, err
	}

	availability := Availability{
		Date:           date,
		OpenTime:       formatMinutes(s.hours.OpenHour * 60),
		CloseTime:      formatMinutes(s.hours.CloseHour * 60),
		BookedSlots:    []TimeSlot{},
		AvailableSlots: []TimeSlot{},
	}

	for _, slot := range Annotate(slots, bookings) {
		if slot.Booked {
			availability.BookedSlots = append(availability.BookedSlots, slot.TimeSlot)
		} else {
			availability.AvailableSlots = append(availability.AvailableSlots, slot.TimeSlot)
		}
	}

	return availability, nil
}

// SubmitBooking validates a candidate booking and commits it with status
// confirmed. Validation and the write run as one serialized unit; when the
// storage layer still reports an overlap (a concurrent writer from another
// process), the request is re-validated against fresh state and retried
// once before the conflict surfaces.
func (s *Service) SubmitBooking(ctx context.Context, req BookingRequest) (Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	booking, err := s.validate(ctx, req)

	if err != nil {
		return Booking{}, err
	}

	inserted, err := s.repo.InsertBooking(ctx, booking)

	if errors.Is(err, ErrSlotConflict) {
		booking, err = s.validate(ctx, req)

		if err != nil {
			return Booking{}, err
		}

		inserted, err = s.repo.InsertBooking(ctx, booking)
	}

	if err != nil {
		return Booking{}, err
	}

	s.sendNotification(ctx, inserted, "Booking Confirmed :video_game:")

	return inserted, nil
}

// validate applies the submission rules in order; the first failure wins.
func (s *Service) validate(ctx context.Context, req BookingRequest) (Booking, error) {
	date, err := time.ParseInLocation(DateLayout, req.BookingDate, s.clock.Now().Location())

	if err != nil {
		return Booking{}, fmt.Errorf("%w: booking date must be formatted as YYYY-MM-DD", ErrInvalidField)
	}

	// 1. booking window: today through the Sunday closing next week.
	// The schedule for a new week is released every Monday.
	today := startOfDay(s.clock.Now())
	_, currentSunday := WeekBounds(today)
	horizon := currentSunday.AddDate(0, 0, 7)

	if date.Before(today) {
		return Booking{}, fmt.Errorf("%w: cannot book in the past", ErrOutOfWindow)
	}
	if date.After(horizon) {
		return Booking{}, fmt.Errorf("%w: the schedule for %s has not been released yet", ErrOutOfWindow, req.BookingDate)
	}

	// 2. the range must decompose into contiguous generated slots
	slots, err := SlotGrid(s.hours)

	if err != nil {
		return Booking{}, err
	}

	if err := alignToGrid(slots, req.StartTime, req.EndTime); err != nil {
		return Booking{}, err
	}

	start, _ := minutesOfDay(req.StartTime)
	end, _ := minutesOfDay(req.EndTime)

	// 3. none of the requested slots may be occupied
	existing, err := s.repo.GetConfirmedBookingsForDate(ctx, req.BookingDate)

	if err != nil {
		return Booking{}, err
	}

	for _, slot := range Annotate(slots, existing) {
		if !slot.Booked {
			continue
		}
		slotStart, _ := minutesOfDay(slot.Start)
		slotEnd, _ := minutesOfDay(slot.End)
		if overlaps(start, end, slotStart, slotEnd) {
			return Booking{}, fmt.Errorf("%w: slot %s-%s is taken on %s", ErrSlotConflict, slot.Start, slot.End, req.BookingDate)
		}
	}

	// 4. per-booking cap
	requested := end - start

	if requested > s.limits.MaxSingleBookingHours*60 {
		return Booking{}, fmt.Errorf("%w: at most %d contiguous hours per booking", ErrSingleBookingLimit, s.limits.MaxSingleBookingHours)
	}

	// 5. weekly quota, computed before counting this request
	weekStart, weekEnd := WeekBounds(date)
	weekBookings, err := s.repo.GetConfirmedBookingsForUserInRange(
		ctx, req.UserEmail, req.StudentID,
		weekStart.Format(DateLayout), weekEnd.Format(DateLayout),
	)

	if err != nil {
		return Booking{}, err
	}

	remaining := RemainingMinutes(weekBookings, s.limits.MaxWeeklyHours)

	if requested > remaining {
		return Booking{}, fmt.Errorf("%w: requested %s, %s remaining this week (max %d hours per calendar week)",
			ErrWeeklyQuotaExceeded, formatHours(requested), formatHours(remaining), s.limits.MaxWeeklyHours)
	}

	// 6. required fields
	if strings.TrimSpace(req.UserName) == "" {
		return Booking{}, fmt.Errorf("%w: user name is required", ErrInvalidField)
	}
	if strings.TrimSpace(req.UserEmail) == "" {
		return Booking{}, fmt.Errorf("%w: user email is required", ErrInvalidField)
	}
	if strings.TrimSpace(req.StudentID) == "" {
		return Booking{}, fmt.Errorf("%w: student id is required", ErrInvalidField)
	}
	if req.NumberOfPlayers < 1 || req.NumberOfPlayers > s.limits.MaxPlayers {
		return Booking{}, fmt.Errorf("%w: number of players must be between 1 and %d", ErrInvalidField, s.limits.MaxPlayers)
	}
	if req.GameID != nil {
		exists, err := s.catalog.GameExists(ctx, *req.GameID)

		if err != nil {
			return Booking{}, fmt.Errorf("failed to resolve game %d: %w", *req.GameID, err)
		}
		if !exists {
			return Booking{}, fmt.Errorf("%w: unknown game %d", ErrInvalidField, *req.GameID)
		}
	}

	return Booking{
		BookingDate:     req.BookingDate,
		StartTime:       req.StartTime,
		EndTime:         req.EndTime,
		UserName:        req.UserName,
		UserEmail:       req.UserEmail,
		StudentID:       req.StudentID,
		NumberOfPlayers: req.NumberOfPlayers,
		GameID:          req.GameID,
		SpecialRequests: req.SpecialRequests,
		Status:          StatusConfirmed,
	}, nil
}

// alignToGrid verifies that [startTime, endTime) decomposes exactly into
// one or more contiguous generated slots. Because the grid itself is
// contiguous, starting on a slot start and ending on a slot end suffices.
func alignToGrid(slots []TimeSlot, startTime, endTime string) error {
	start, err := minutesOfDay(startTime)

	if err != nil {
		return fmt.Errorf("%w: start time must be formatted as HH:MM", ErrInvalidRange)
	}

	end, err := minutesOfDay(endTime)

	if err != nil {
		return fmt.Errorf("%w: end time must be formatted as HH:MM", ErrInvalidRange)
	}

	if end <= start {
		return fmt.Errorf("%w: end time must be after start time", ErrInvalidRange)
	}

	startsOnBoundary := false
	endsOnBoundary := false

	for _, slot := range slots {
		slotStart, _ := minutesOfDay(slot.Start)
		slotEnd, _ := minutesOfDay(slot.End)

		if slotStart == start {
			startsOnBoundary = true
		}
		if slotEnd == end {
			endsOnBoundary = true
		}
	}

	if !startsOnBoundary || !endsOnBoundary {
		return fmt.Errorf("%w: %s-%s does not align with the slot grid", ErrInvalidRange, startTime, endTime)
	}

	return nil
}

// CancelBooking transitions a confirmed booking to cancelled. The
// transition is one-way; cancelling an already-cancelled booking reports
// ErrAlreadyCancelled so callers can tell retries from logic errors.
// Runs under the same lock as SubmitBooking so freed quota is visible to
// concurrent submissions only once the cancellation is durable.
func (s *Service) CancelBooking(ctx context.Context, id string) (Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	booking, err := s.repo.GetBookingByID(ctx, id)

	if err != nil {
		return Booking{}, err
	}

	if booking.Status == StatusCancelled {
		return Booking{}, fmt.Errorf("%w: booking %v", ErrAlreadyCancelled, id)
	}

	if err := s.repo.SetBookingStatus(ctx, id, StatusCancelled); err != nil {
		return Booking{}, fmt.Errorf("failed to cancel booking: %w", err)
	}

	booking.Status = StatusCancelled

	s.sendNotification(ctx, booking, "Booking Cancelled :negative_squared_cross_mark:")

	return booking, nil
}

func (s *Service) FindBookingByID(ctx context.Context, id string) (Booking, error) {
	return s.repo.GetBookingByID(ctx, id)
}

func (s *Service) ListBookings(ctx context.Context, filter BookingFilter) ([]Booking, error) {
	return s.repo.ListBookings(ctx, filter)
}

func formatHours(minutes int) string {
	if minutes%60 == 0 {
		return fmt.Sprintf("%d hour(s)", minutes/60)
	}
	return fmt.Sprintf("%d minute(s)", minutes)
}

// sendNotification posts the booking event to the configured webhook.
// Delivery is best effort and never fails the booking operation.
func (s *Service) sendNotification(ctx context.Context, booking Booking, title string) {
	game := "None"

	if booking.GameID != nil {
		game = strconv.Itoa(*booking.GameID)
	}

	embed := notify.Embed{
		Type:  "rich",
		Title: title,
		Fields: []notify.EmbedField{
			{
				Name:   "User",
				Value:  fmt.Sprintf("%v (%v)", booking.UserName, booking.StudentID),
				Inline: true,
			},
			{
				Name:   "Date",
				Value:  booking.BookingDate,
				Inline: true,
			},
			{
				Name:   "Time",
				Value:  fmt.Sprintf("%v - %v", booking.StartTime, booking.EndTime),
				Inline: true,
			},
			{
				Name:   "Players",
				Value:  strconv.Itoa(booking.NumberOfPlayers),
				Inline: true,
			},
			{
				Name:   "Game",
				Value:  game,
				Inline: true,
			},
		},
	}

	s.client.SendMessage(ctx, notify.Message{
		Embeds: []notify.Embed{embed},
	})
}
