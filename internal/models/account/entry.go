package models

import "time"

type Entry struct {
	ID           string    `json:"id"`
	AuthorUID    string    `json:"authorUid"`
	AuthorName   string    `json:"authorName"`
	Title        string    `json:"title"`
	Body         string    `json:"body"`
	LanguageCode string    `json:"languageCode"`
	Latitude     *float64  `json:"latitude,omitempty"`
	Longitude    *float64  `json:"longitude,omitempty"`
	Visible      bool      `json:"visible"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// HasLocation reports whether the author attached coordinates to the entry.
func (e *Entry) HasLocation() bool {
	return e.Latitude != nil && e.Longitude != nil
}
