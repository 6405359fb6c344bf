package models

type CreateCommentRequest struct {
	EntryID string `json:"entryId"`
	Body    string `json:"body"`
}
