package models

type Language struct {
	Code        string `json:"code"`
	EnglishName string `json:"englishName"`
}
