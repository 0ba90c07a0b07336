package models

import "time"

// Comment is a reply on a post. Both foreign keys are mandatory; comments are
// removed together with their post and are never edited through the UI.
type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    uint      `gorm:"column:blog_post_id;index;not null" json:"blog_post_id"`
	AuthorID  uint      `gorm:"index;not null" json:"author_id"`
	Text      string    `gorm:"size:200;not null" json:"text"`
	CreatedAt time.Time `json:"created_at"`
	Author    User      `gorm:"foreignKey:AuthorID" json:"author"`
}

func (Comment) TableName() string { return "comments" }
