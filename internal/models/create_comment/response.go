package models

import (
	accountmodels "io.winapps.communitydiary/internal/models/account"
)

type CreateCommentResponse struct {
	Comment accountmodels.Comment `json:"comment"`
}
