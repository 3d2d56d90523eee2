package relations

import (
	"errors"
	"log"

	"linkup/backend/internal/models"

	"gorm.io/gorm"
)

// ToggleResult reports which way a follow toggle went.
type ToggleResult string

const (
	Followed   ToggleResult = "Followed"
	Unfollowed ToggleResult = "Unfollowed"
)

// ToggleFollow flips the follow edge from actor to target: absent becomes
// present, present is removed. The edge's existence alone is the state, so
// two consecutive calls return to where things started. Follows have no
// notification side effect.
func ToggleFollow(db *gorm.DB, actorID, targetID uint) (ToggleResult, error) {
	if actorID == targetID {
		return "", ErrSelfReference
	}

	var target models.User
	if err := db.First(&target, targetID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrNotFound
		}
		return "", err
	}

	var edge models.Follow
	err := db.Where("follower_id = ? AND following_id = ?", actorID, targetID).First(&edge).Error
	if err == nil {
		if err := db.Where("follower_id = ? AND following_id = ?", actorID, targetID).
			Delete(&models.Follow{}).Error; err != nil {
			return "", err
		}
		return Unfollowed, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	edge = models.Follow{FollowerID: actorID, FollowingID: targetID}
	if err := db.Create(&edge).Error; err != nil {
		// A concurrent toggle already created the edge; the caller's
		// requested end state holds either way.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return Followed, nil
		}
		return "", err
	}

	return Followed, nil
}

// Followers returns the users following userID.
func Followers(db *gorm.DB, userID uint) ([]models.User, error) {
	var edges []models.Follow
	if err := db.Preload("Follower").Where("following_id = ?", userID).Find(&edges).Error; err != nil {
		return nil, err
	}

	users := make([]models.User, 0, len(edges))
	for _, e := range edges {
		users = append(users, e.Follower)
	}
	return users, nil
}

// Following returns the users userID follows.
func Following(db *gorm.DB, userID uint) ([]models.User, error) {
	var edges []models.Follow
	if err := db.Preload("Following").Where("follower_id = ?", userID).Find(&edges).Error; err != nil {
		return nil, err
	}

	users := make([]models.User, 0, len(edges))
	for _, e := range edges {
		users = append(users, e.Following)
	}
	return users, nil
}

// FollowerCount returns how many users follow userID.
func FollowerCount(db *gorm.DB, userID uint) int64 {
	var n int64
	if err := db.Model(&models.Follow{}).Where("following_id = ?", userID).Count(&n).Error; err != nil {
		log.Printf("relations: failed to count followers for user %d: %v", userID, err)
	}
	return n
}

// FollowingCount returns how many users userID follows.
func FollowingCount(db *gorm.DB, userID uint) int64 {
	var n int64
	if err := db.Model(&models.Follow{}).Where("follower_id = ?", userID).Count(&n).Error; err != nil {
		log.Printf("relations: failed to count followed users for user %d: %v", userID, err)
	}
	return n
}
