package handler

import (
	"net/http"
	"strconv"
	"strings"

	"linkup/backend/internal/database"
	"linkup/backend/internal/models"
	"linkup/backend/internal/notify"

	"github.com/gin-gonic/gin"
)

// MessageInput defines the structure for sending a direct message.
type MessageInput struct {
	ReceiverID uint   `json:"receiver_id" binding:"required" example:"2"`
	Content    string `json:"content" binding:"required" example:"Hello, how are you?"`
}

// MessageUpdateInput defines the structure for editing a message.
type MessageUpdateInput struct {
	Content string `json:"content" binding:"required,max=2000" example:"Updated message"`
}

// GetMessages godoc
// @Summary      List messages
// @Description  Returns messages where the authenticated user is sender or receiver, newest first.
// @Tags         messages
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   models.Message
// @Failure      401  {object}  ErrorResponse
// @Router       /messages [get]
func GetMessages(c *gin.Context) {
	viewerID, _ := c.Get("userID")

	var messages []models.Message
	err := database.DB.Preload("Sender").Preload("Receiver").
		Where("sender_id = ? OR receiver_id = ?", viewerID, viewerID).
		Order("created_at DESC").
		Find(&messages).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch messages"})
		return
	}

	c.JSON(http.StatusOK, messages)
}

// SendMessage godoc
// @Summary      Send a message
// @Description  Sends a direct message and notifies the receiver.
// @Tags         messages
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body MessageInput true "Message"
// @Success      200  {object}  map[string]interface{} "{"message": "Message sent", "data": {...}}"
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Receiver not found"
// @Failure      422  {object}  ErrorResponse
// @Router       /messages [post]
func SendMessage(c *gin.Context) {
	viewerID, _ := c.Get("userID")

	var input MessageInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	var receiver models.User
	if err := database.DB.First(&receiver, input.ReceiverID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Receiver not found"})
		return
	}

	message := models.Message{
		SenderID:   viewerID.(uint),
		ReceiverID: input.ReceiverID,
		Content:    input.Content,
	}
	if err := database.DB.Create(&message).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send message"})
		return
	}

	notify.Emit(database.DB, input.ReceiverID, viewerID.(uint), notify.MessageRef(message.ID))

	c.JSON(http.StatusOK, gin.H{"message": "Message sent", "data": message})
}

// UpdateMessage godoc
// @Summary      Update a message
// @Description  Edits a message. Only its sender may update it.
// @Tags         messages
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                true  "Message ID"
// @Param        input body      MessageUpdateInput true  "Updated content"
// @Success      200  {object}  map[string]interface{} "{"message": "Message updated", "data": {...}}"
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse "Not the sender"
// @Failure      404  {object}  ErrorResponse
// @Failure      422  {object}  ErrorResponse
// @Router       /messages/{id} [put]
func UpdateMessage(c *gin.Context) {
	viewerID, _ := c.Get("userID")
	messageID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid message ID"})
		return
	}

	var message models.Message
	if err := database.DB.First(&message, uint(messageID)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Message not found"})
		return
	}

	if message.SenderID != viewerID.(uint) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You do not have permission to update this message"})
		return
	}

	var input MessageUpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	if err := database.DB.Model(&message).Update("content", strings.TrimSpace(input.Content)).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update message"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Message updated", "data": message})
}

// DeleteMessage godoc
// @Summary      Delete a message
// @Description  Deletes a message. Only its sender may delete it.
// @Tags         messages
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Message ID"
// @Success      200  {object}  map[string]string "{"message": "Message deleted"}"
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse "Not the sender"
// @Failure      404  {object}  ErrorResponse
// @Router       /messages/{id} [delete]
func DeleteMessage(c *gin.Context) {
	viewerID, _ := c.Get("userID")
	messageID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid message ID"})
		return
	}

	var message models.Message
	if err := database.DB.First(&message, uint(messageID)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Message not found"})
		return
	}

	if message.SenderID != viewerID.(uint) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You do not have permission to delete this message"})
		return
	}

	if err := database.DB.Delete(&message).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete message"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Message deleted"})
}
