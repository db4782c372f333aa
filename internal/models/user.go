package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// User is the single signed-in account. At most one exists per process;
// it is fabricated at login/register, never verified against anything.
type User struct {
	ID       int64           `json:"id"`
	Name     string          `json:"name"`
	Email    string          `json:"email"`
	Gems     decimal.Decimal `json:"gems"`
	IsAdmin  bool            `json:"isAdmin"`
	JoinedAt time.Time       `json:"joinDate"`
}

// AdState tracks the simulated ad-reward counters.
type AdState struct {
	WatchedAds  int        `json:"watchedAds"`
	LastAdWatch *time.Time `json:"lastAdWatch,omitempty"`
}

// TeamLogos maps a team name to an uploaded logo data URL.
type TeamLogos map[string]string
