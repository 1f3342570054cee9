package entities

import "time"

// DefaultUserName is used when a message is posted without a name
const DefaultUserName = "Аноним"

// Message is a public chat message
type Message struct {
	ID        uint      `json:"id"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
	UserName  string    `json:"user_name"`
	UserID    string    `json:"user_id,omitempty"`
}

// HasOwner reports whether the message was posted with a stable author key
func (m *Message) HasOwner() bool {
	return m.UserID != ""
}
