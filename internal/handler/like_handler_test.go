package handler_test

import (
	"fmt"
	"net/http"
	"testing"

	"linkup/backend/internal/database"
	"linkup/backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createPost(t *testing.T, owner models.User, content string) models.Post {
	t.Helper()

	post := models.Post{UserID: owner.ID, Content: content, Privacy: models.PrivacyPublic}
	require.NoError(t, database.DB.Create(&post).Error)
	return post
}

func TestLikeToggleNotifiesAndCleansUp(t *testing.T) {
	router := setupRouter(t)
	jane, _ := createAccount(t, "jane")
	_, johnToken := createAccount(t, "john")
	post := createPost(t, jane, "hello world")

	resp := doRequest(t, router, http.MethodPost, fmt.Sprintf("/api/v1/posts/%d/like", post.ID), johnToken, nil)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "Liked", decodeBody(t, resp)["message"])

	var notification models.Notification
	require.NoError(t, database.DB.Where("user_id = ?", jane.ID).First(&notification).Error)
	assert.Equal(t, models.NotificationLike, notification.Type)
	assert.Equal(t, post.ID, notification.ReferenceID)

	// Unlike removes the like and the stale notification with it.
	resp = doRequest(t, router, http.MethodPost, fmt.Sprintf("/api/v1/posts/%d/like", post.ID), johnToken, nil)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "Unliked", decodeBody(t, resp)["message"])

	var likes, notifications int64
	require.NoError(t, database.DB.Model(&models.Like{}).Count(&likes).Error)
	require.NoError(t, database.DB.Model(&models.Notification{}).
		Where("type = ?", models.NotificationLike).Count(&notifications).Error)
	assert.Equal(t, int64(0), likes)
	assert.Equal(t, int64(0), notifications)
}

func TestLikeOwnPostCreatesNoNotification(t *testing.T) {
	router := setupRouter(t)
	jane, janeToken := createAccount(t, "jane")
	post := createPost(t, jane, "self five")

	resp := doRequest(t, router, http.MethodPost, fmt.Sprintf("/api/v1/posts/%d/like", post.ID), janeToken, nil)
	require.Equal(t, http.StatusOK, resp.Code)

	var likes, notifications int64
	require.NoError(t, database.DB.Model(&models.Like{}).Count(&likes).Error)
	require.NoError(t, database.DB.Model(&models.Notification{}).Count(&notifications).Error)
	assert.Equal(t, int64(1), likes)
	assert.Equal(t, int64(0), notifications)
}

func TestLikeUnknownPost(t *testing.T) {
	router := setupRouter(t)
	_, token := createAccount(t, "jane")

	resp := doRequest(t, router, http.MethodPost, "/api/v1/posts/9999/like", token, nil)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}
