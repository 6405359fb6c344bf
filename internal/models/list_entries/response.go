package models

import (
	accountmodels "io.winapps.communitydiary/internal/models/account"
)

type ListEntriesResponse struct {
	Entries  []accountmodels.Entry `json:"entries"`
	Page     int                   `json:"page"`
	PageSize int                   `json:"pageSize"`
}
