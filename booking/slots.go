package booking

import (
	"fmt"
	"time"
)

// minutesOfDay converts an "HH:MM" string to minutes since midnight.
func minutesOfDay(s string) (int, error) {
	t, err := time.Parse(TimeLayout, s)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}

func formatMinutes(m int) string {
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// SlotGrid derives the ordered sequence of bookable slots from the
// facility operating hours. The first slot starts at the open hour and the
// last slot ends at the close hour; slots are contiguous with no gaps.
// The grid is the same for every date, so it takes no date argument.
func SlotGrid(hours OperatingHours) ([]TimeSlot, error) {
	if hours.SlotLengthMinutes <= 0 {
		return nil, fmt.Errorf("%w: slot length must be positive, got %d", ErrConfiguration, hours.SlotLengthMinutes)
	}
	if hours.OpenHour < 0 || hours.CloseHour > 24 || hours.OpenHour >= hours.CloseHour {
		return nil, fmt.Errorf("%w: open hour %d must precede close hour %d", ErrConfiguration, hours.OpenHour, hours.CloseHour)
	}

	openMin := hours.OpenHour * 60
	closeMin := hours.CloseHour * 60

	var slots []TimeSlot

	for start := openMin; start+hours.SlotLengthMinutes <= closeMin; start += hours.SlotLengthMinutes {
		slots = append(slots, TimeSlot{
			Start: formatMinutes(start),
			End:   formatMinutes(start + hours.SlotLengthMinutes),
		})
	}

	return slots, nil
}

// AnnotatedSlot is a generated slot marked with its occupancy for a date.
type AnnotatedSlot struct {
	TimeSlot
	Booked bool
}

// Annotate marks each slot that overlaps a confirmed booking. Cancelled
// bookings never occupy slots. Intervals are half-open, so a booking
// ending exactly when a slot starts does not occupy it.
func Annotate(slots []TimeSlot, bookings []Booking) []AnnotatedSlot {
	annotated := make([]AnnotatedSlot, 0, len(slots))

	for _, slot := range slots {
		slotStart, err := minutesOfDay(slot.Start)
		if err != nil {
			continue
		}
		slotEnd, err := minutesOfDay(slot.End)
		if err != nil {
			continue
		}

		booked := false

		for _, b := range bookings {
			if b.Status != StatusConfirmed {
				continue
			}
			bookedStart, err := minutesOfDay(b.StartTime)
			if err != nil {
				continue
			}
			bookedEnd, err := minutesOfDay(b.EndTime)
			if err != nil {
				continue
			}
			if overlaps(slotStart, slotEnd, bookedStart, bookedEnd) {
				booked = true
				break
			}
		}

		annotated = append(annotated, AnnotatedSlot{TimeSlot: slot, Booked: booked})
	}

	return annotated
}

// overlaps reports whether [aStart, aEnd) and [bStart, bEnd) share at
// least one instant.
func overlaps(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && bStart < aEnd
}
