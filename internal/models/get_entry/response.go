package models

import (
	accountmodels "io.winapps.communitydiary/internal/models/account"
)

type GetEntryResponse struct {
	Entry      accountmodels.Entry     `json:"entry"`
	Comments   []accountmodels.Comment `json:"comments"`
	Subscribed bool                    `json:"subscribed"`
}
