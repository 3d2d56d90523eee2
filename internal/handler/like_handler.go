package handler

import (
	"errors"
	"net/http"
	"strconv"

	"linkup/backend/internal/database"
	"linkup/backend/internal/models"
	"linkup/backend/internal/notify"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ToggleLike godoc
// @Summary      Like or unlike a post
// @Description  Likes the post, or unlikes it if already liked. A like notifies the post owner; an unlike removes that notification again.
// @Tags         likes
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Post ID"
// @Success      200  {object}  map[string]string "{"message": "Liked"} or {"message": "Unliked"}"
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Post not found"
// @Router       /posts/{id}/like [post]
func ToggleLike(c *gin.Context) {
	viewerID, _ := c.Get("userID")
	postID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID"})
		return
	}

	var post models.Post
	if err := database.DB.First(&post, uint(postID)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	var like models.Like
	err = database.DB.Where("post_id = ? AND user_id = ?", post.ID, viewerID).First(&like).Error
	if err == nil {
		if err := database.DB.Where("post_id = ? AND user_id = ?", post.ID, viewerID).
			Delete(&models.Like{}).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to unlike post"})
			return
		}

		// Drop the stale "liked your post" entry along with the like.
		if err := notify.RemoveLike(database.DB, post.UserID, post.ID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to unlike post"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Unliked"})
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to toggle like"})
		return
	}

	like = models.Like{PostID: post.ID, UserID: viewerID.(uint)}
	if err := database.DB.Create(&like).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to like post"})
		return
	}

	notify.Emit(database.DB, post.UserID, viewerID.(uint), notify.LikeRef(post.ID))

	c.JSON(http.StatusOK, gin.H{"message": "Liked"})
}
