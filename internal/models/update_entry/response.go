package models

import (
	accountmodels "io.winapps.communitydiary/internal/models/account"
)

type UpdateEntryResponse struct {
	Entry accountmodels.Entry `json:"entry"`
}
