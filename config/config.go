package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"

	bk "github.com/roselyu365/gamelibrary-managetool/booking"
)

// Config is the process configuration, loaded once from the environment.
// Facility setup that fails Validate is fatal at startup.
type Config struct {
	DatabaseURL string `envconfig:"DATABASE_URL" required:"true"`
	ListenAddr  string `envconfig:"LISTEN_ADDR" default:":9090"`

	OpenHour          int    `envconfig:"GAMING_AREA_OPEN_HOUR" default:"8"`
	CloseHour         int    `envconfig:"GAMING_AREA_CLOSE_HOUR" default:"23"`
	SlotLengthMinutes int    `envconfig:"SLOT_LENGTH_MINUTES" default:"60"`
	Timezone          string `envconfig:"FACILITY_TIMEZONE" default:"Local"`

	MaxWeeklyHours        int `envconfig:"MAX_BOOKING_HOURS_PER_WEEK" default:"4"`
	MaxSingleBookingHours int `envconfig:"MAX_SINGLE_BOOKING_HOURS" default:"4"`
	MaxPlayers            int `envconfig:"MAX_PLAYERS_PER_BOOKING" default:"8"`

	DiscordWebhookURL string `envconfig:"DISCORD_WEBHOOK_URL"`
}

func Load() (Config, error) {
	var c Config

	if err := envconfig.Process("", &c); err != nil {
		return Config{}, err
	}

	if err := c.Validate(); err != nil {
		return Config{}, err
	}

	return c, nil
}

func (c Config) Validate() error {
	if c.OpenHour < 0 || c.CloseHour > 24 || c.OpenHour >= c.CloseHour {
		return fmt.Errorf("%w: open hour %d must precede close hour %d", bk.ErrConfiguration, c.OpenHour, c.CloseHour)
	}
	if c.SlotLengthMinutes <= 0 {
		return fmt.Errorf("%w: slot length must be positive, got %d", bk.ErrConfiguration, c.SlotLengthMinutes)
	}
	if c.MaxWeeklyHours <= 0 {
		return fmt.Errorf("%w: weekly booking cap must be positive, got %d", bk.ErrConfiguration, c.MaxWeeklyHours)
	}
	if c.MaxSingleBookingHours <= 0 {
		return fmt.Errorf("%w: single booking cap must be positive, got %d", bk.ErrConfiguration, c.MaxSingleBookingHours)
	}
	if c.MaxPlayers < 1 {
		return fmt.Errorf("%w: max players must be at least 1, got %d", bk.ErrConfiguration, c.MaxPlayers)
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("%w: unknown facility timezone %q", bk.ErrConfiguration, c.Timezone)
	}
	return nil
}

// Location resolves the facility time zone. Validate has already checked
// it, so resolution cannot fail after a successful Load.
func (c Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)

	if err != nil {
		return time.Local
	}

	return loc
}

func (c Config) OperatingHours() bk.OperatingHours {
	return bk.OperatingHours{
		OpenHour:          c.OpenHour,
		CloseHour:         c.CloseHour,
		SlotLengthMinutes: c.SlotLengthMinutes,
	}
}

func (c Config) Limits() bk.Limits {
	return bk.Limits{
		MaxWeeklyHours:        c.MaxWeeklyHours,
		MaxSingleBookingHours: c.MaxSingleBookingHours,
		MaxPlayers:            c.MaxPlayers,
	}
}
