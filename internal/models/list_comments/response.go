package models

import (
	accountmodels "io.winapps.communitydiary/internal/models/account"
)

type ListCommentsResponse struct {
	Comments []accountmodels.Comment `json:"comments"`
	Page     int                     `json:"page"`
	PageSize int                     `json:"pageSize"`
}
