package models

import (
	accountmodels "io.winapps.communitydiary/internal/models/account"
)

type FeedResponse struct {
	Title       string                `json:"title"`
	Description string                `json:"description"`
	Link        string                `json:"link"`
	Entries     []accountmodels.Entry `json:"entries"`
}
