package dto

import "github.com/pr-poehali-dev/news-chat-app/internal/domain/chat/entities"

// CreateMessageRequest is the body of POST /api/v1/chat
type CreateMessageRequest struct {
	Text     string `json:"text"`
	UserName string `json:"user_name"`
	UserID   string `json:"user_id,omitempty"`
}

// ListMessagesResponse is the body of GET /api/v1/chat
type ListMessagesResponse struct {
	Messages []entities.Message `json:"messages"`
}

// MessageResponse is the body of a created message
type MessageResponse struct {
	Message entities.Message `json:"message"`
}

// MessageEvent is published on chat topics
type MessageEvent struct {
	ID       uint   `json:"id"`
	Text     string `json:"text,omitempty"`
	UserName string `json:"user_name,omitempty"`
	UserID   string `json:"user_id,omitempty"`
}
