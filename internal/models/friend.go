package models

import "time"

// FriendshipStatus defines the state of a directed friendship row.
type FriendshipStatus string

const (
	// StatusPending means a friend request has been sent but not yet accepted.
	StatusPending FriendshipStatus = "pending"

	// StatusAccepted means the request was accepted. A bidirectional
	// friendship is stored as two directed rows, both accepted.
	StatusAccepted FriendshipStatus = "accepted"

	// StatusBlocked is set directly by the owning user, bypassing the
	// request flow entirely.
	StatusBlocked FriendshipStatus = "blocked"

	// StatusRestricted is set directly by the owning user, like blocked.
	StatusRestricted FriendshipStatus = "restricted"
)

// Friend is one direction of a friendship. UserID is the sender/owner of the
// row, FriendID the other party. The pair is unique per direction; the
// reciprocal direction is a separate row created on acceptance. No soft
// delete: the unique index would still cover a soft-deleted row and lock the
// pair out of ever re-friending, so unfriend must remove rows for real.
type Friend struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time

	UserID   uint             `gorm:"not null;uniqueIndex:idx_friend_pair"`
	FriendID uint             `gorm:"not null;uniqueIndex:idx_friend_pair"`
	Status   FriendshipStatus `gorm:"type:varchar(20);not null;default:'pending'"`

	User       User `gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	FriendUser User `gorm:"foreignKey:FriendID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}
