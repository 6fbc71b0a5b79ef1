package chatlog

import "time"

// Entry is one logged exchange. The topic is the intent tag of the turn.
type Entry struct {
	Guest     string    `json:"guest"`
	Query     string    `json:"query"`
	Reply     string    `json:"reply"`
	Topic     string    `json:"topic"`
	Timestamp time.Time `json:"timestamp"`
}
