package booking

import "errors"

var ErrConfiguration = errors.New("invalid facility configuration")

var ErrBookingNotFound = errors.New("booking not found")

var ErrOutOfWindow = errors.New("booking date outside the released window")

var ErrInvalidRange = errors.New("invalid booking time range")

var ErrSlotConflict = errors.New("requested time is already booked")

var ErrSingleBookingLimit = errors.New("booking exceeds the per-booking hour limit")

var ErrWeeklyQuotaExceeded = errors.New("weekly booking quota exceeded")

var ErrInvalidField = errors.New("invalid booking field")

var ErrAlreadyCancelled = errors.New("booking already cancelled")
