package entities

import "time"

// NewsModel is a GORM model for news table
type NewsModel struct {
	ID        uint      `gorm:"primaryKey"`
	Title     string    `gorm:"size:255;not null"`
	Content   string    `gorm:"not null"`
	ImageURL  *string   `gorm:"column:image_url"`
	AuthorID  *string   `gorm:"size:64;index"`
	CreatedAt time.Time `gorm:"autoCreateTime;index"`
}

func (NewsModel) TableName() string {
	return "news"
}

// NewsWithAuthorRow is a news row joined with the author's profile
type NewsWithAuthorRow struct {
	ID        uint
	Title     string
	Content   string
	ImageURL  *string `gorm:"column:image_url"`
	AuthorID  *string
	CreatedAt time.Time
	Nickname  *string
	Avatar    *string
}

// ToEntity converts DB model to domain entity
func (m *NewsModel) ToEntity() *NewsPost {
	return &NewsPost{
		ID:        m.ID,
		Title:     m.Title,
		Content:   m.Content,
		ImageURL:  deref(m.ImageURL),
		AuthorID:  deref(m.AuthorID),
		CreatedAt: m.CreatedAt,
	}
}

// ToEntity converts joined row to domain entity
func (r *NewsWithAuthorRow) ToEntity() *NewsPost {
	return &NewsPost{
		ID:        r.ID,
		Title:     r.Title,
		Content:   r.Content,
		ImageURL:  deref(r.ImageURL),
		AuthorID:  deref(r.AuthorID),
		CreatedAt: r.CreatedAt,
		Nickname:  deref(r.Nickname),
		Avatar:    deref(r.Avatar),
	}
}

// NewNewsModel converts domain entity to DB model
func NewNewsModel(post *NewsPost) *NewsModel {
	return &NewsModel{
		ID:        post.ID,
		Title:     post.Title,
		Content:   post.Content,
		ImageURL:  ref(post.ImageURL),
		AuthorID:  ref(post.AuthorID),
		CreatedAt: post.CreatedAt,
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func ref(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
