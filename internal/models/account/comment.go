package models

import "time"

type Comment struct {
	ID         string    `json:"id"`
	EntryID    string    `json:"entryId"`
	AuthorUID  string    `json:"authorUid"`
	AuthorName string    `json:"authorName"`
	Body       string    `json:"body"`
	Visible    bool      `json:"visible"`
	CreatedAt  time.Time `json:"createdAt"`
}
