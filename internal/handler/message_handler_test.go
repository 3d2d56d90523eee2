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

func TestMessageLifecycle(t *testing.T) {
	router := setupRouter(t)
	jane, janeToken := createAccount(t, "jane")
	john, johnToken := createAccount(t, "john")

	resp := doRequest(t, router, http.MethodPost, "/api/v1/messages", janeToken, map[string]interface{}{
		"receiver_id": john.ID,
		"content":     "hello john",
	})
	require.Equal(t, http.StatusOK, resp.Code)

	var message models.Message
	require.NoError(t, database.DB.First(&message).Error)
	assert.Equal(t, jane.ID, message.SenderID)

	// The receiver is notified.
	var notification models.Notification
	require.NoError(t, database.DB.Where("user_id = ?", john.ID).First(&notification).Error)
	assert.Equal(t, models.NotificationMessage, notification.Type)
	assert.Equal(t, message.ID, notification.ReferenceID)

	// Both parties see the conversation.
	resp = doRequest(t, router, http.MethodGet, "/api/v1/messages", johnToken, nil)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "hello john")

	resp = doRequest(t, router, http.MethodGet, "/api/v1/messages", janeToken, nil)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "hello john")

	// Only the sender may edit or delete.
	resp = doRequest(t, router, http.MethodPut, fmt.Sprintf("/api/v1/messages/%d", message.ID), johnToken,
		map[string]string{"content": "hijacked"})
	assert.Equal(t, http.StatusForbidden, resp.Code)

	resp = doRequest(t, router, http.MethodPut, fmt.Sprintf("/api/v1/messages/%d", message.ID), janeToken,
		map[string]string{"content": "edited"})
	require.Equal(t, http.StatusOK, resp.Code)

	resp = doRequest(t, router, http.MethodDelete, fmt.Sprintf("/api/v1/messages/%d", message.ID), johnToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.Code)

	resp = doRequest(t, router, http.MethodDelete, fmt.Sprintf("/api/v1/messages/%d", message.ID), janeToken, nil)
	assert.Equal(t, http.StatusOK, resp.Code)
}

func TestMessageToUnknownReceiver(t *testing.T) {
	router := setupRouter(t)
	_, token := createAccount(t, "jane")

	resp := doRequest(t, router, http.MethodPost, "/api/v1/messages", token, map[string]interface{}{
		"receiver_id": 9999,
		"content":     "anyone there?",
	})
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestMessageValidation(t *testing.T) {
	router := setupRouter(t)
	_, token := createAccount(t, "jane")

	resp := doRequest(t, router, http.MethodPost, "/api/v1/messages", token, map[string]interface{}{
		"receiver_id": 2,
	})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
}
