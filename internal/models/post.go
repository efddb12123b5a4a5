package models

import (
	"time"

	"gorm.io/gorm"
)

// Post is an authored piece of content. AuthorEmail is a denormalized
// snapshot of the author's email at creation time and is not re-synced if
// the account's email later changes. LikeCount is maintained by the post
// repository in the same transaction as every like-row change, so it always
// equals the number of like rows for the post.
type Post struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Title       string         `gorm:"type:varchar(40);not null" json:"title"`
	Body        string         `gorm:"type:varchar(100);not null" json:"body"`
	AuthorID    uint           `gorm:"not null;index" json:"author_id"`
	AuthorEmail string         `gorm:"type:varchar(255);not null" json:"author_email"`
	LikeCount   int            `gorm:"not null;default:0" json:"like_count"`
	Author      User           `gorm:"foreignKey:AuthorID" json:"-"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// PostWithComments pairs a post with its full comment list.
type PostWithComments struct {
	Post     *Post      `json:"post"`
	Comments []*Comment `json:"comments"`
}
