package dto

import "github.com/pr-poehali-dev/news-chat-app/internal/domain/profile/entities"

// SaveProfileRequest is the body of POST /api/v1/profile. Avatar is an
// optional data URI or URL.
type SaveProfileRequest struct {
	UserID   string `json:"user_id"`
	Nickname string `json:"nickname"`
	Avatar   string `json:"avatar,omitempty"`
	Bio      string `json:"bio,omitempty"`
}

// ProfileResponse is the body of profile responses
type ProfileResponse struct {
	Profile entities.Profile `json:"profile"`
}

// ProfileSavedEvent is published on profile.saved
type ProfileSavedEvent struct {
	UserID   string `json:"user_id"`
	Nickname string `json:"nickname"`
	Created  bool   `json:"created"`
}
