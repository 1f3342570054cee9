package entities

import "time"

// MessageModel is a GORM model for messages table
type MessageModel struct {
	ID        uint      `gorm:"primaryKey"`
	Text      string    `gorm:"not null"`
	UserName  string    `gorm:"size:100;not null;default:'Аноним'"`
	UserID    *string   `gorm:"size:64"`
	Timestamp time.Time `gorm:"not null;autoCreateTime;index"`
}

func (MessageModel) TableName() string {
	return "messages"
}

// ToEntity converts DB model to domain entity
func (m *MessageModel) ToEntity() *Message {
	msg := &Message{
		ID:        m.ID,
		Text:      m.Text,
		Timestamp: m.Timestamp,
		UserName:  m.UserName,
	}
	if m.UserID != nil {
		msg.UserID = *m.UserID
	}
	return msg
}

// NewMessageModel converts domain entity to DB model
func NewMessageModel(msg *Message) *MessageModel {
	model := &MessageModel{
		ID:        msg.ID,
		Text:      msg.Text,
		UserName:  msg.UserName,
		Timestamp: msg.Timestamp,
	}
	if msg.UserID != "" {
		userID := msg.UserID
		model.UserID = &userID
	}
	return model
}
