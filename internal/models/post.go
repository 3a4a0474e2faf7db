package models

import (
	"time"
)

type Post struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"not null;index" json:"user_id"`
	User       User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user"`
	Title      string    `gorm:"not null" json:"title"`
	Excerpt    string    `json:"excerpt"`
	Category   string    `gorm:"index" json:"category"`
	CoverImage string    `json:"cover_image"`
	Content    string    `gorm:"type:text" json:"content"`
	Likes      int       `gorm:"default:0;check:likes >= 0" json:"likes"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	// Not a database column, filled at query time.
	CommentCount int `gorm:"-" json:"comment_count"`
}
