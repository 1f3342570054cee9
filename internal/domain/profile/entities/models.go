package entities

import "time"

// ProfileModel is a GORM model for profiles table
type ProfileModel struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    string    `gorm:"size:64;not null;uniqueIndex"`
	Nickname  string    `gorm:"size:100;not null"`
	Avatar    *string   `gorm:"type:text"`
	Bio       *string   `gorm:"type:text"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (ProfileModel) TableName() string {
	return "profiles"
}

// ToEntity converts DB model to domain entity
func (m *ProfileModel) ToEntity() *Profile {
	p := &Profile{
		ID:        m.ID,
		UserID:    m.UserID,
		Nickname:  m.Nickname,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
	if m.Avatar != nil {
		p.Avatar = *m.Avatar
	}
	if m.Bio != nil {
		p.Bio = *m.Bio
	}
	return p
}

// NewProfileModel converts domain entity to DB model
func NewProfileModel(p *Profile) *ProfileModel {
	m := &ProfileModel{
		ID:       p.ID,
		UserID:   p.UserID,
		Nickname: p.Nickname,
	}
	if p.Avatar != "" {
		avatar := p.Avatar
		m.Avatar = &avatar
	}
	if p.Bio != "" {
		bio := p.Bio
		m.Bio = &bio
	}
	return m
}
