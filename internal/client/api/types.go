package api

import "time"

// Message is a chat message as returned by the service
type Message struct {
	ID        uint      `json:"id"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
	UserName  string    `json:"user_name"`
	UserID    string    `json:"user_id,omitempty"`
}

// NewsPost is a published news item
type NewsPost struct {
	ID        uint      `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	ImageURL  string    `json:"image_url,omitempty"`
	AuthorID  string    `json:"author_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	Nickname  string    `json:"nickname,omitempty"`
	Avatar    string    `json:"avatar,omitempty"`
}

// Profile is a user's public profile
type Profile struct {
	ID        uint      `json:"id"`
	UserID    string    `json:"user_id"`
	Nickname  string    `json:"nickname"`
	Avatar    string    `json:"avatar,omitempty"`
	Bio       string    `json:"bio,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PostMessageRequest is the body of a chat send
type PostMessageRequest struct {
	Text     string `json:"text"`
	UserName string `json:"user_name"`
	UserID   string `json:"user_id,omitempty"`
}

// CreateNewsRequest is the body of a news publication
type CreateNewsRequest struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Image    string `json:"image,omitempty"`
	AuthorID string `json:"author_id,omitempty"`
}

// SaveProfileRequest is the body of a profile upsert
type SaveProfileRequest struct {
	UserID   string `json:"user_id"`
	Nickname string `json:"nickname"`
	Avatar   string `json:"avatar,omitempty"`
	Bio      string `json:"bio,omitempty"`
}

type messagesResponse struct {
	Messages []Message `json:"messages"`
}

type messageResponse struct {
	Message Message `json:"message"`
}

type newsListResponse struct {
	News []NewsPost `json:"news"`
}

type newsResponse struct {
	News NewsPost `json:"news"`
}

type profileResponse struct {
	Profile Profile `json:"profile"`
}

type errorResponse struct {
	Error string `json:"error"`
}
