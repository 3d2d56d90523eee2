package handler

import (
	"net/http"

	"linkup/backend/internal/database"
	"linkup/backend/internal/relations"

	"github.com/gin-gonic/gin"
)

// FriendInput identifies the other party of a friendship operation.
type FriendInput struct {
	FriendID uint `json:"friend_id" binding:"required" example:"2"`
}

// AcceptInput identifies a pending friend request by its row ID.
type AcceptInput struct {
	RequestID uint `json:"request_id" binding:"required" example:"5"`
}

// SendFriendRequest godoc
// @Summary      Send friend request
// @Description  Sends a friend request and notifies the recipient. Rejected when a relation already exists in either direction.
// @Tags         friends
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body FriendInput true "Target user"
// @Success      200  {object}  map[string]string "{"message": "Friend request sent"}"
// @Failure      400  {object}  ErrorResponse "Self-request or duplicate"
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Target user not found"
// @Failure      422  {object}  ErrorResponse
// @Router       /friends/send [post]
func SendFriendRequest(c *gin.Context) {
	viewerID, _ := c.Get("userID")

	var input FriendInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	if _, err := relations.SendRequest(database.DB, viewerID.(uint), input.FriendID); err != nil {
		relationError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Friend request sent"})
}

// AcceptFriendRequest godoc
// @Summary      Accept friend request
// @Description  Accepts a pending request addressed to the authenticated user; both directions become accepted.
// @Tags         friends
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body AcceptInput true "Request to accept"
// @Success      200  {object}  map[string]string "{"message": "Friend request accepted"}"
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse "Not the addressee"
// @Failure      404  {object}  ErrorResponse "Request not found"
// @Failure      422  {object}  ErrorResponse
// @Router       /friends/accept [post]
func AcceptFriendRequest(c *gin.Context) {
	viewerID, _ := c.Get("userID")

	var input AcceptInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	if _, err := relations.AcceptRequest(database.DB, viewerID.(uint), input.RequestID); err != nil {
		relationError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Friend request accepted"})
}

// Unfriend godoc
// @Summary      Unfriend a user
// @Description  Removes the friendship in both directions, regardless of status.
// @Tags         friends
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body FriendInput true "User to unfriend"
// @Success      200  {object}  map[string]string "{"message": "Unfriended successfully"}"
// @Failure      401  {object}  ErrorResponse
// @Failure      422  {object}  ErrorResponse
// @Router       /friends/unfriend [post]
func Unfriend(c *gin.Context) {
	viewerID, _ := c.Get("userID")

	var input FriendInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	if err := relations.Unfriend(database.DB, viewerID.(uint), input.FriendID); err != nil {
		relationError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Unfriended successfully"})
}

// BlockUser godoc
// @Summary      Block a user
// @Description  Sets the directed relation to blocked, creating it if needed. The reverse direction is untouched.
// @Tags         friends
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body FriendInput true "User to block"
// @Success      200  {object}  map[string]string "{"message": "User blocked"}"
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Target user not found"
// @Failure      422  {object}  ErrorResponse
// @Router       /friends/block [post]
func BlockUser(c *gin.Context) {
	viewerID, _ := c.Get("userID")

	var input FriendInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	if err := relations.Block(database.DB, viewerID.(uint), input.FriendID); err != nil {
		relationError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User blocked"})
}

// RestrictUser godoc
// @Summary      Restrict a user
// @Description  Sets the directed relation to restricted, creating it if needed.
// @Tags         friends
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body FriendInput true "User to restrict"
// @Success      200  {object}  map[string]string "{"message": "User restricted"}"
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Target user not found"
// @Failure      422  {object}  ErrorResponse
// @Router       /friends/restrict [post]
func RestrictUser(c *gin.Context) {
	viewerID, _ := c.Get("userID")

	var input FriendInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	if err := relations.Restrict(database.DB, viewerID.(uint), input.FriendID); err != nil {
		relationError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User restricted"})
}

// ListFriends godoc
// @Summary      List friends
// @Description  Returns all accepted friendships, normalized so the other party is always surfaced.
// @Tags         friends
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   relations.FriendEntry
// @Failure      401  {object}  ErrorResponse
// @Router       /friends [get]
func ListFriends(c *gin.Context) {
	viewerID, _ := c.Get("userID")

	entries, err := relations.ListFriends(database.DB, viewerID.(uint))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch friends"})
		return
	}

	c.JSON(http.StatusOK, entries)
}

// FriendRequests godoc
// @Summary      List incoming friend requests
// @Description  Returns pending requests addressed to the authenticated user, newest first.
// @Tags         friends
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   models.Friend
// @Failure      401  {object}  ErrorResponse
// @Router       /friends/requests [get]
func FriendRequests(c *gin.Context) {
	viewerID, _ := c.Get("userID")

	requests, err := relations.IncomingRequests(database.DB, viewerID.(uint))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch requests"})
		return
	}

	c.JSON(http.StatusOK, requests)
}

// PendingRequests godoc
// @Summary      List sent pending requests
// @Description  Returns still-pending requests the authenticated user has sent, newest first.
// @Tags         friends
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   models.Friend
// @Failure      401  {object}  ErrorResponse
// @Router       /friends/pending [get]
func PendingRequests(c *gin.Context) {
	viewerID, _ := c.Get("userID")

	pending, err := relations.OutgoingPending(database.DB, viewerID.(uint))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch pending requests"})
		return
	}

	c.JSON(http.StatusOK, pending)
}
