package relations

import (
	"errors"
	"log"

	"linkup/backend/internal/models"
	"linkup/backend/internal/notify"

	"gorm.io/gorm"
)

// FriendEntry is a normalized friendship: Friend is always the other party,
// regardless of which column held the caller.
type FriendEntry struct {
	ID     uint                    `json:"id"`
	Status models.FriendshipStatus `json:"status"`
	Friend models.User             `json:"friend"`
}

// SendRequest creates a pending friendship row from actor to target and
// notifies the target. A request is rejected as a duplicate when any row
// between the pair exists, in either direction, so two users cannot hold
// opposing pending requests at once.
func SendRequest(db *gorm.DB, actorID, targetID uint) (*models.Friend, error) {
	if actorID == targetID {
		return nil, ErrSelfReference
	}

	var target models.User
	if err := db.First(&target, targetID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var existing models.Friend
	err := db.Where("(user_id = ? AND friend_id = ?) OR (user_id = ? AND friend_id = ?)",
		actorID, targetID, targetID, actorID).First(&existing).Error
	if err == nil {
		return nil, ErrDuplicateRequest
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	request := models.Friend{
		UserID:   actorID,
		FriendID: targetID,
		Status:   models.StatusPending,
	}
	if err := db.Create(&request).Error; err != nil {
		// Lost a race against an identical concurrent send.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateRequest
		}
		return nil, err
	}

	notify.Emit(db, targetID, actorID, notify.FriendRequestRef(request.ID))

	return &request, nil
}

// AcceptRequest marks the request row accepted and upserts the reciprocal
// row, so both directions end up accepted. Only the addressee may accept.
// Accepting when the reciprocal row already exists is a no-op for that row.
func AcceptRequest(db *gorm.DB, actorID, requestID uint) (*models.Friend, error) {
	var request models.Friend
	if err := db.First(&request, requestID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if request.FriendID != actorID {
		return nil, ErrForbidden
	}

	// Both rows change together or not at all.
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&request).Update("status", models.StatusAccepted).Error; err != nil {
			return err
		}

		reciprocal := models.Friend{
			UserID:   request.FriendID,
			FriendID: request.UserID,
		}
		return tx.Where(models.Friend{UserID: request.FriendID, FriendID: request.UserID}).
			Attrs(models.Friend{Status: models.StatusAccepted}).
			FirstOrCreate(&reciprocal).Error
	})
	if err != nil {
		return nil, err
	}

	return &request, nil
}

// Unfriend tears down the friendship symmetrically: every row between the
// pair is removed, in both directions, regardless of status.
func Unfriend(db *gorm.DB, actorID, targetID uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		return tx.Where("(user_id = ? AND friend_id = ?) OR (user_id = ? AND friend_id = ?)",
			actorID, targetID, targetID, actorID).
			Delete(&models.Friend{}).Error
	})
}

// Block sets the actor's directed row to blocked, creating it if absent.
// This bypasses the request flow entirely and never touches the reverse row.
func Block(db *gorm.DB, actorID, targetID uint) error {
	return setStatus(db, actorID, targetID, models.StatusBlocked)
}

// Restrict sets the actor's directed row to restricted, like Block.
func Restrict(db *gorm.DB, actorID, targetID uint) error {
	return setStatus(db, actorID, targetID, models.StatusRestricted)
}

func setStatus(db *gorm.DB, actorID, targetID uint, status models.FriendshipStatus) error {
	var target models.User
	if err := db.First(&target, targetID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	row := models.Friend{UserID: actorID, FriendID: targetID}
	return db.Where(models.Friend{UserID: actorID, FriendID: targetID}).
		Assign(map[string]interface{}{"status": status}).
		FirstOrCreate(&row).Error
}

// ListFriends returns the accepted friendships involving the actor,
// normalized so the other party is always surfaced.
func ListFriends(db *gorm.DB, actorID uint) ([]FriendEntry, error) {
	var rows []models.Friend
	err := db.Preload("User").Preload("FriendUser").
		Where("(user_id = ? OR friend_id = ?) AND status = ?", actorID, actorID, models.StatusAccepted).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	entries := make([]FriendEntry, 0, len(rows))
	for _, r := range rows {
		other := r.FriendUser
		if r.FriendID == actorID {
			other = r.User
		}
		entries = append(entries, FriendEntry{ID: r.ID, Status: r.Status, Friend: other})
	}
	return entries, nil
}

// IncomingRequests returns the pending requests addressed to the actor,
// newest first, with the sender preloaded.
func IncomingRequests(db *gorm.DB, actorID uint) ([]models.Friend, error) {
	var rows []models.Friend
	err := db.Preload("User").
		Where("friend_id = ? AND status = ?", actorID, models.StatusPending).
		Order("created_at DESC").
		Find(&rows).Error
	return rows, err
}

// OutgoingPending returns the still-pending requests the actor has sent,
// newest first, with the addressee preloaded.
func OutgoingPending(db *gorm.DB, actorID uint) ([]models.Friend, error) {
	var rows []models.Friend
	err := db.Preload("FriendUser").
		Where("user_id = ? AND status = ?", actorID, models.StatusPending).
		Order("created_at DESC").
		Find(&rows).Error
	return rows, err
}

// FriendCount returns how many accepted friendships the user has. Accepted
// friendships always exist as two directed rows, so counting the user's own
// direction is enough.
func FriendCount(db *gorm.DB, userID uint) int64 {
	var n int64
	err := db.Model(&models.Friend{}).Where("user_id = ? AND status = ?", userID, models.StatusAccepted).Count(&n).Error
	if err != nil {
		log.Printf("relations: failed to count friends for user %d: %v", userID, err)
	}
	return n
}

// StatusBetween reports the directed row's status from one user to another,
// or nil when no row exists.
func StatusBetween(db *gorm.DB, fromID, toID uint) *models.FriendshipStatus {
	var row models.Friend
	err := db.Where("user_id = ? AND friend_id = ?", fromID, toID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		log.Printf("relations: failed to load status between users %d and %d: %v", fromID, toID, err)
		return nil
	}
	return &row.Status
}
