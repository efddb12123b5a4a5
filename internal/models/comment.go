package models

import (
	"time"

	"gorm.io/gorm"
)

// Comment is a reply attached to a post. AuthorEmail is the commenter's
// email snapshot at creation time, mirroring the denormalization on posts.
type Comment struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	PostID      uint           `gorm:"not null;index" json:"post_id"`
	Text        string         `gorm:"type:varchar(255);not null" json:"text"`
	AuthorID    uint           `gorm:"not null;index" json:"author_id"`
	AuthorEmail string         `gorm:"type:varchar(255);not null" json:"author_email"`
	Post        Post           `gorm:"foreignKey:PostID" json:"-"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}
