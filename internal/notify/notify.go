package notify

import (
	"log"

	"linkup/backend/internal/hub"
	"linkup/backend/internal/models"

	"gorm.io/gorm"
)

// Ref identifies the entity that caused a notification. Values are built
// only through the constructors below, so the (type, id) pairing can't drift.
type Ref struct {
	Type models.NotificationType
	ID   uint
}

// CommentRef references the comment that was created.
func CommentRef(commentID uint) Ref {
	return Ref{Type: models.NotificationComment, ID: commentID}
}

// LikeRef references the liked post, not the like row. Keying on the post is
// what lets an unlike find and remove the stale notification.
func LikeRef(postID uint) Ref {
	return Ref{Type: models.NotificationLike, ID: postID}
}

// MessageRef references the message that was sent.
func MessageRef(messageID uint) Ref {
	return Ref{Type: models.NotificationMessage, ID: messageID}
}

// FriendRequestRef references the pending friendship row.
func FriendRequestRef(requestID uint) Ref {
	return Ref{Type: models.NotificationFriendRequest, ID: requestID}
}

// Emit inserts a notification for the recipient and pushes it to their open
// streams. Self-notifications are suppressed. Emission is fire-and-forget:
// an insert failure is logged and never surfaced to the primary action.
func Emit(db *gorm.DB, recipientID, actorID uint, ref Ref) {
	if recipientID == actorID {
		return
	}

	notification := models.Notification{
		UserID:      recipientID,
		Type:        ref.Type,
		ReferenceID: ref.ID,
	}
	if err := db.Create(&notification).Error; err != nil {
		log.Printf("notify: failed to create %s notification for user %d: %v", ref.Type, recipientID, err)
		return
	}

	hub.GlobalHub.Broadcast(recipientID, hub.Event{
		Type:    string(ref.Type),
		Payload: notification,
	})
}

// RemoveLike deletes any like notification the post owner holds for the
// given post, so an unlike leaves no stale "liked your post" entry behind.
func RemoveLike(db *gorm.DB, postOwnerID, postID uint) error {
	return db.Where("type = ? AND reference_id = ? AND user_id = ?",
		models.NotificationLike, postID, postOwnerID).
		Delete(&models.Notification{}).Error
}
