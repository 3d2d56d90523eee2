package models

import "gorm.io/gorm"

// PostPrivacy controls who may see a post.
type PostPrivacy string

const (
	PrivacyPublic  PostPrivacy = "public"
	PrivacyFriends PostPrivacy = "friends"
	PrivacyPrivate PostPrivacy = "private"
)

// Post is a feed entry. Media fields hold client-supplied URLs.
type Post struct {
	gorm.Model
	UserID   uint        `gorm:"not null;index"`
	Content  string      `gorm:"type:text"`
	ImageURL string      `gorm:"size:512"`
	VideoURL string      `gorm:"size:512"`
	Privacy  PostPrivacy `gorm:"type:varchar(20);not null;default:'public'"`

	User     User      `gorm:"foreignKey:UserID"`
	Comments []Comment `gorm:"foreignKey:PostID"`
	Likes    []Like    `gorm:"foreignKey:PostID"`
}
