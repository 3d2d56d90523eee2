package relations_test

import (
	"testing"
	"time"

	"linkup/backend/internal/database"
	"linkup/backend/internal/models"
	"linkup/backend/internal/relations"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func createUser(t *testing.T, db *gorm.DB, name string) models.User {
	t.Helper()

	user := models.User{Name: name, Email: name + "@example.com", PasswordHash: "x"}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func followCount(t *testing.T, db *gorm.DB) int64 {
	t.Helper()

	var n int64
	require.NoError(t, db.Model(&models.Follow{}).Count(&n).Error)
	return n
}

func TestToggleFollowFlipsEdge(t *testing.T) {
	db := setupDB(t)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	result, err := relations.ToggleFollow(db, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, relations.Followed, result)
	assert.Equal(t, int64(1), followCount(t, db))

	result, err = relations.ToggleFollow(db, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, relations.Unfollowed, result)
	assert.Equal(t, int64(0), followCount(t, db))
}

func TestToggleFollowRejectsSelf(t *testing.T) {
	db := setupDB(t)
	alice := createUser(t, db, "alice")

	_, err := relations.ToggleFollow(db, alice.ID, alice.ID)
	assert.ErrorIs(t, err, relations.ErrSelfReference)
	assert.Equal(t, int64(0), followCount(t, db))
}

func TestToggleFollowUnknownTarget(t *testing.T) {
	db := setupDB(t)
	alice := createUser(t, db, "alice")

	_, err := relations.ToggleFollow(db, alice.ID, alice.ID+99)
	assert.ErrorIs(t, err, relations.ErrNotFound)
}

func TestToggleFollowHasNoNotificationSideEffect(t *testing.T) {
	db := setupDB(t)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	_, err := relations.ToggleFollow(db, alice.ID, bob.ID)
	require.NoError(t, err)

	var n int64
	require.NoError(t, db.Model(&models.Notification{}).Count(&n).Error)
	assert.Equal(t, int64(0), n)
}

func TestFollowersAndFollowing(t *testing.T) {
	db := setupDB(t)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	carol := createUser(t, db, "carol")

	_, err := relations.ToggleFollow(db, alice.ID, bob.ID)
	require.NoError(t, err)
	_, err = relations.ToggleFollow(db, carol.ID, bob.ID)
	require.NoError(t, err)

	followers, err := relations.Followers(db, bob.ID)
	require.NoError(t, err)
	require.Len(t, followers, 2)

	following, err := relations.Following(db, alice.ID)
	require.NoError(t, err)
	require.Len(t, following, 1)
	assert.Equal(t, bob.ID, following[0].ID)

	assert.Equal(t, int64(2), relations.FollowerCount(db, bob.ID))
	assert.Equal(t, int64(1), relations.FollowingCount(db, alice.ID))
}

func TestSendRequestCreatesPendingAndNotifies(t *testing.T) {
	db := setupDB(t)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	request, err := relations.SendRequest(db, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, request.Status)
	assert.Equal(t, alice.ID, request.UserID)
	assert.Equal(t, bob.ID, request.FriendID)

	var notification models.Notification
	require.NoError(t, db.Where("user_id = ?", bob.ID).First(&notification).Error)
	assert.Equal(t, models.NotificationFriendRequest, notification.Type)
	assert.Equal(t, request.ID, notification.ReferenceID)
	assert.False(t, notification.IsRead)
}

func TestSendRequestRejectsSelf(t *testing.T) {
	db := setupDB(t)
	alice := createUser(t, db, "alice")

	_, err := relations.SendRequest(db, alice.ID, alice.ID)
	assert.ErrorIs(t, err, relations.ErrSelfReference)

	var n int64
	require.NoError(t, db.Model(&models.Friend{}).Count(&n).Error)
	assert.Equal(t, int64(0), n)
}

func TestSendRequestUnknownTarget(t *testing.T) {
	db := setupDB(t)
	alice := createUser(t, db, "alice")

	_, err := relations.SendRequest(db, alice.ID, alice.ID+99)
	assert.ErrorIs(t, err, relations.ErrNotFound)
}

func TestSendRequestRejectsDuplicates(t *testing.T) {
	db := setupDB(t)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	_, err := relations.SendRequest(db, alice.ID, bob.ID)
	require.NoError(t, err)

	_, err = relations.SendRequest(db, alice.ID, bob.ID)
	assert.ErrorIs(t, err, relations.ErrDuplicateRequest)

	// The reverse direction is rejected too, so the pair can never hold
	// two opposing pending requests.
	_, err = relations.SendRequest(db, bob.ID, alice.ID)
	assert.ErrorIs(t, err, relations.ErrDuplicateRequest)
}

func TestAcceptRequestCreatesReciprocalRow(t *testing.T) {
	db := setupDB(t)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	request, err := relations.SendRequest(db, alice.ID, bob.ID)
	require.NoError(t, err)

	_, err = relations.AcceptRequest(db, bob.ID, request.ID)
	require.NoError(t, err)

	var forward, reverse models.Friend
	require.NoError(t, db.Where("user_id = ? AND friend_id = ?", alice.ID, bob.ID).First(&forward).Error)
	require.NoError(t, db.Where("user_id = ? AND friend_id = ?", bob.ID, alice.ID).First(&reverse).Error)
	assert.Equal(t, models.StatusAccepted, forward.Status)
	assert.Equal(t, models.StatusAccepted, reverse.Status)
}

func TestAcceptRequestOnlyByAddressee(t *testing.T) {
	db := setupDB(t)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	carol := createUser(t, db, "carol")

	request, err := relations.SendRequest(db, alice.ID, bob.ID)
	require.NoError(t, err)

	_, err = relations.AcceptRequest(db, alice.ID, request.ID)
	assert.ErrorIs(t, err, relations.ErrForbidden)

	_, err = relations.AcceptRequest(db, carol.ID, request.ID)
	assert.ErrorIs(t, err, relations.ErrForbidden)

	var row models.Friend
	require.NoError(t, db.First(&row, request.ID).Error)
	assert.Equal(t, models.StatusPending, row.Status)
}

func TestAcceptRequestUnknownID(t *testing.T) {
	db := setupDB(t)
	bob := createUser(t, db, "bob")

	_, err := relations.AcceptRequest(db, bob.ID, 12345)
	assert.ErrorIs(t, err, relations.ErrNotFound)
}

func TestAcceptRequestWithExistingReciprocalIsNoOp(t *testing.T) {
	db := setupDB(t)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	request, err := relations.SendRequest(db, alice.ID, bob.ID)
	require.NoError(t, err)

	reciprocal := models.Friend{UserID: bob.ID, FriendID: alice.ID, Status: models.StatusAccepted}
	require.NoError(t, db.Create(&reciprocal).Error)

	_, err = relations.AcceptRequest(db, bob.ID, request.ID)
	require.NoError(t, err)

	var n int64
	require.NoError(t, db.Model(&models.Friend{}).Count(&n).Error)
	assert.Equal(t, int64(2), n)
}

func TestUnfriendRemovesBothDirections(t *testing.T) {
	db := setupDB(t)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	request, err := relations.SendRequest(db, alice.ID, bob.ID)
	require.NoError(t, err)
	_, err = relations.AcceptRequest(db, bob.ID, request.ID)
	require.NoError(t, err)

	require.NoError(t, relations.Unfriend(db, bob.ID, alice.ID))

	var n int64
	require.NoError(t, db.Model(&models.Friend{}).Count(&n).Error)
	assert.Equal(t, int64(0), n)

	friends, err := relations.ListFriends(db, alice.ID)
	require.NoError(t, err)
	assert.Empty(t, friends)

	friends, err = relations.ListFriends(db, bob.ID)
	require.NoError(t, err)
	assert.Empty(t, friends)
}

func TestResendAfterUnfriend(t *testing.T) {
	db := setupDB(t)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	request, err := relations.SendRequest(db, alice.ID, bob.ID)
	require.NoError(t, err)
	_, err = relations.AcceptRequest(db, bob.ID, request.ID)
	require.NoError(t, err)
	require.NoError(t, relations.Unfriend(db, alice.ID, bob.ID))

	// After an unfriend the pair behaves as if never related: a new request
	// goes through and the full lifecycle works a second time.
	again, err := relations.SendRequest(db, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, again.Status)

	_, err = relations.AcceptRequest(db, bob.ID, again.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), relations.FriendCount(db, alice.ID))
	assert.Equal(t, int64(1), relations.FriendCount(db, bob.ID))
}

func TestBlockAfterUnfriend(t *testing.T) {
	db := setupDB(t)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	request, err := relations.SendRequest(db, alice.ID, bob.ID)
	require.NoError(t, err)
	_, err = relations.AcceptRequest(db, bob.ID, request.ID)
	require.NoError(t, err)
	require.NoError(t, relations.Unfriend(db, alice.ID, bob.ID))

	require.NoError(t, relations.Block(db, alice.ID, bob.ID))

	var row models.Friend
	require.NoError(t, db.Where("user_id = ? AND friend_id = ?", alice.ID, bob.ID).First(&row).Error)
	assert.Equal(t, models.StatusBlocked, row.Status)
}

func TestBlockWithoutPriorRow(t *testing.T) {
	db := setupDB(t)
	carol := createUser(t, db, "carol")
	dave := createUser(t, db, "dave")

	require.NoError(t, relations.Block(db, carol.ID, dave.ID))

	var row models.Friend
	require.NoError(t, db.Where("user_id = ? AND friend_id = ?", carol.ID, dave.ID).First(&row).Error)
	assert.Equal(t, models.StatusBlocked, row.Status)

	err := db.Where("user_id = ? AND friend_id = ?", dave.ID, carol.ID).First(&models.Friend{}).Error
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestBlockOverwritesExistingStatus(t *testing.T) {
	db := setupDB(t)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	_, err := relations.SendRequest(db, alice.ID, bob.ID)
	require.NoError(t, err)

	require.NoError(t, relations.Block(db, alice.ID, bob.ID))

	var row models.Friend
	require.NoError(t, db.Where("user_id = ? AND friend_id = ?", alice.ID, bob.ID).First(&row).Error)
	assert.Equal(t, models.StatusBlocked, row.Status)

	var n int64
	require.NoError(t, db.Model(&models.Friend{}).Count(&n).Error)
	assert.Equal(t, int64(1), n)
}

func TestRestrictWithoutPriorRow(t *testing.T) {
	db := setupDB(t)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	require.NoError(t, relations.Restrict(db, alice.ID, bob.ID))

	var row models.Friend
	require.NoError(t, db.Where("user_id = ? AND friend_id = ?", alice.ID, bob.ID).First(&row).Error)
	assert.Equal(t, models.StatusRestricted, row.Status)
}

func TestBlockUnknownTarget(t *testing.T) {
	db := setupDB(t)
	alice := createUser(t, db, "alice")

	err := relations.Block(db, alice.ID, alice.ID+99)
	assert.ErrorIs(t, err, relations.ErrNotFound)
}

func TestListFriendsSurfacesTheOtherParty(t *testing.T) {
	db := setupDB(t)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	request, err := relations.SendRequest(db, alice.ID, bob.ID)
	require.NoError(t, err)
	_, err = relations.AcceptRequest(db, bob.ID, request.ID)
	require.NoError(t, err)

	friendsOfAlice, err := relations.ListFriends(db, alice.ID)
	require.NoError(t, err)
	require.Len(t, friendsOfAlice, 1)
	assert.Equal(t, bob.ID, friendsOfAlice[0].Friend.ID)

	friendsOfBob, err := relations.ListFriends(db, bob.ID)
	require.NoError(t, err)
	require.Len(t, friendsOfBob, 1)
	assert.Equal(t, alice.ID, friendsOfBob[0].Friend.ID)
}

func TestRequestListingsFilterAndOrder(t *testing.T) {
	db := setupDB(t)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	carol := createUser(t, db, "carol")

	older, err := relations.SendRequest(db, bob.ID, alice.ID)
	require.NoError(t, err)
	newer, err := relations.SendRequest(db, carol.ID, alice.ID)
	require.NoError(t, err)

	// Spread the timestamps so the ordering is deterministic.
	require.NoError(t, db.Model(&models.Friend{}).Where("id = ?", older.ID).
		Update("created_at", time.Now().Add(-time.Hour)).Error)

	incoming, err := relations.IncomingRequests(db, alice.ID)
	require.NoError(t, err)
	require.Len(t, incoming, 2)
	assert.Equal(t, newer.ID, incoming[0].ID)
	assert.Equal(t, older.ID, incoming[1].ID)
	assert.Equal(t, carol.ID, incoming[0].User.ID)

	outgoing, err := relations.OutgoingPending(db, bob.ID)
	require.NoError(t, err)
	require.Len(t, outgoing, 1)
	assert.Equal(t, alice.ID, outgoing[0].FriendUser.ID)

	// Accepted rows drop out of both listings.
	_, err = relations.AcceptRequest(db, alice.ID, older.ID)
	require.NoError(t, err)

	incoming, err = relations.IncomingRequests(db, alice.ID)
	require.NoError(t, err)
	require.Len(t, incoming, 1)
	assert.Equal(t, newer.ID, incoming[0].ID)

	outgoing, err = relations.OutgoingPending(db, bob.ID)
	require.NoError(t, err)
	assert.Empty(t, outgoing)
}

func TestFriendCountUsesOwnDirection(t *testing.T) {
	db := setupDB(t)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	request, err := relations.SendRequest(db, alice.ID, bob.ID)
	require.NoError(t, err)
	_, err = relations.AcceptRequest(db, bob.ID, request.ID)
	require.NoError(t, err)

	assert.Equal(t, int64(1), relations.FriendCount(db, alice.ID))
	assert.Equal(t, int64(1), relations.FriendCount(db, bob.ID))
}

func TestCountsAndStatusSurviveStorageFaults(t *testing.T) {
	db := setupDB(t)
	require.NoError(t, db.Migrator().DropTable(&models.Friend{}))
	require.NoError(t, db.Migrator().DropTable(&models.Follow{}))

	// With the tables gone every query fails; the helpers must not panic
	// and must not pretend a row exists.
	assert.Equal(t, int64(0), relations.FriendCount(db, 1))
	assert.Equal(t, int64(0), relations.FollowerCount(db, 1))
	assert.Equal(t, int64(0), relations.FollowingCount(db, 1))
	assert.Nil(t, relations.StatusBetween(db, 1, 2))
}

func TestStatusBetween(t *testing.T) {
	db := setupDB(t)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	assert.Nil(t, relations.StatusBetween(db, alice.ID, bob.ID))

	_, err := relations.SendRequest(db, alice.ID, bob.ID)
	require.NoError(t, err)

	status := relations.StatusBetween(db, alice.ID, bob.ID)
	require.NotNil(t, status)
	assert.Equal(t, models.StatusPending, *status)
	assert.Nil(t, relations.StatusBetween(db, bob.ID, alice.ID))
}
