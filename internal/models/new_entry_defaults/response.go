package models

type NewEntryDefaultsResponse struct {
	LanguageCode string  `json:"languageCode"`
	MapLatitude  float64 `json:"mapLatitude"`
	MapLongitude float64 `json:"mapLongitude"`
	MapZoom      int     `json:"mapZoom"`
}
