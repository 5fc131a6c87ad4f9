package models

import "time"

// ChatMessage is a community chat post. Username is held by value and is a
// cascade target for renames.
type ChatMessage struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}
