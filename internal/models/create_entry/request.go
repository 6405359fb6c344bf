package models

type CreateEntryRequest struct {
	Title        string   `json:"title"`
	Body         string   `json:"body"`
	LanguageCode string   `json:"languageCode"`
	Latitude     *float64 `json:"latitude"`
	Longitude    *float64 `json:"longitude"`
}
