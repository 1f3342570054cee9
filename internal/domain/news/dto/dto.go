package dto

import "github.com/pr-poehali-dev/news-chat-app/internal/domain/news/entities"

// CreateNewsRequest is the body of POST /api/v1/news. Image is an optional
// data URI or URL.
type CreateNewsRequest struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Image    string `json:"image,omitempty"`
	AuthorID string `json:"author_id,omitempty"`
}

// ListNewsResponse is the body of GET /api/v1/news
type ListNewsResponse struct {
	News []entities.NewsPost `json:"news"`
}

// NewsResponse is the body of a single news post
type NewsResponse struct {
	News entities.NewsPost `json:"news"`
}

// NewsCreatedEvent is published on news.created
type NewsCreatedEvent struct {
	ID       uint   `json:"id"`
	Title    string `json:"title"`
	AuthorID string `json:"author_id,omitempty"`
	HasImage bool   `json:"has_image"`
}
