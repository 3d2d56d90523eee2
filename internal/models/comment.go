package models

import "gorm.io/gorm"

// Comment belongs to a post. A reply carries the parent comment's id.
type Comment struct {
	gorm.Model
	PostID          uint   `gorm:"not null;index"`
	UserID          uint   `gorm:"not null;index"`
	ParentCommentID *uint  `gorm:"index"`
	Content         string `gorm:"type:text;not null"`

	User    User      `gorm:"foreignKey:UserID"`
	Post    Post      `gorm:"foreignKey:PostID"`
	Replies []Comment `gorm:"foreignKey:ParentCommentID"`
}
