package models

import (
	accountmodels "io.winapps.communitydiary/internal/models/account"
)

type CreateEntryResponse struct {
	Entry accountmodels.Entry `json:"entry"`
}
