package booking

import "time"

// Clock supplies the current facility-local time.
type Clock interface {
	Now() time.Time
}

type systemClock struct {
	loc *time.Location
}

func (c systemClock) Now() time.Time {
	return time.Now().In(c.loc)
}

// SystemClock returns a Clock reading the wall clock in the facility
// time zone.
func SystemClock(loc *time.Location) Clock {
	return systemClock{loc: loc}
}

// WeekBounds returns the Monday and Sunday (both at midnight) of the
// calendar week containing day.
func WeekBounds(day time.Time) (time.Time, time.Time) {
	offset := (int(day.Weekday()) + 6) % 7 // Monday = 0

	start := day.AddDate(0, 0, -offset)
	start = time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, day.Location())

	return start, start.AddDate(0, 0, 6)
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func durationMinutes(startTime, endTime string) int {
	start, err := minutesOfDay(startTime)
	if err != nil {
		return 0
	}
	end, err := minutesOfDay(endTime)
	if err != nil {
		return 0
	}
	if end <= start {
		return 0
	}
	return end - start
}

// RemainingMinutes computes how many bookable minutes a user has left in a
// week, given that week's bookings for the user. Only confirmed bookings
// consume quota, so cancelling frees hours immediately.
func RemainingMinutes(weekBookings []Booking, maxWeeklyHours int) int {
	used := 0

	for _, b := range weekBookings {
		if b.Status != StatusConfirmed {
			continue
		}
		used += durationMinutes(b.StartTime, b.EndTime)
	}

	remaining := maxWeeklyHours*60 - used

	if remaining < 0 {
		return 0
	}

	return remaining
}
