package models

import "time"

// User account statuses that count as "in good standing". Suppressed
// accounts keep their rows but drop out of listings and fan-out.
const (
	StatusActive    = "active"
	StatusConfirmed = "confirmed"
	StatusSuspended = "suspended"
	StatusDeleted   = "deleted"
)

type User struct {
	UID               string    `json:"uid"`
	DisplayName       string    `json:"displayName"`
	Email             string    `json:"email"`
	Status            string    `json:"status"`
	Administrator     bool      `json:"administrator"`
	PreferredLanguage string    `json:"preferredLanguage"`
	HomeLat           *float64  `json:"homeLat,omitempty"`
	HomeLon           *float64  `json:"homeLon,omitempty"`
	CreatedAt         time.Time `json:"createdAt"`
}

// InGoodStanding reports whether the account should appear in listings
// and receive comment notifications.
func (u *User) InGoodStanding() bool {
	return u.Status == StatusActive || u.Status == StatusConfirmed
}
