package handler

import (
	"net/http"
	"strconv"

	"linkup/backend/internal/database"
	"linkup/backend/internal/relations"

	"github.com/gin-gonic/gin"
)

// ToggleFollow godoc
// @Summary      Follow or unfollow a user
// @Description  Follows the target user, or unfollows them if already followed.
// @Tags         follow
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Target User ID"
// @Success      200  {object}  map[string]string "{"message": "Followed"} or {"message": "Unfollowed"}"
// @Failure      400  {object}  ErrorResponse "Self-follow or invalid ID"
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Target user not found"
// @Router       /follow/{id} [post]
func ToggleFollow(c *gin.Context) {
	viewerID, _ := c.Get("userID")
	targetUserID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid target user ID"})
		return
	}

	result, err := relations.ToggleFollow(database.DB, viewerID.(uint), uint(targetUserID))
	if err != nil {
		relationError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": string(result)})
}

// GetFollowers godoc
// @Summary      List followers
// @Description  Returns the users following the authenticated user.
// @Tags         follow
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   PublicUserResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /followers [get]
func GetFollowers(c *gin.Context) {
	viewerID, _ := c.Get("userID")

	users, err := relations.Followers(database.DB, viewerID.(uint))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch followers"})
		return
	}

	responses := make([]PublicUserResponse, 0, len(users))
	for _, user := range users {
		responses = append(responses, buildPublicUserResponse(user, viewerID.(uint)))
	}

	c.JSON(http.StatusOK, responses)
}

// GetFollowing godoc
// @Summary      List followed users
// @Description  Returns the users the authenticated user follows.
// @Tags         follow
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   PublicUserResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /following [get]
func GetFollowing(c *gin.Context) {
	viewerID, _ := c.Get("userID")

	users, err := relations.Following(database.DB, viewerID.(uint))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch following"})
		return
	}

	responses := make([]PublicUserResponse, 0, len(users))
	for _, user := range users {
		responses = append(responses, buildPublicUserResponse(user, viewerID.(uint)))
	}

	c.JSON(http.StatusOK, responses)
}
