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

// CommentInput defines the structure for adding a comment.
type CommentInput struct {
	PostID          uint   `json:"post_id" binding:"required" example:"1"`
	Content         string `json:"content" binding:"required" example:"Nice post!"`
	ParentCommentID *uint  `json:"parent_comment_id" example:"5"`
}

// CommentUpdateInput defines the structure for editing a comment.
type CommentUpdateInput struct {
	Content string `json:"content" binding:"required,max=2000" example:"Updated comment!"`
}

// CreateComment godoc
// @Summary      Add a comment
// @Description  Comments on a post, optionally as a reply to another comment. The post owner is notified unless they are the commenter.
// @Tags         comments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body CommentInput true "Comment"
// @Success      200  {object}  map[string]interface{} "{"message": "Comment added", "comment": {...}}"
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Post or parent comment not found"
// @Failure      422  {object}  ErrorResponse
// @Router       /comments [post]
func CreateComment(c *gin.Context) {
	viewerID, _ := c.Get("userID")

	var input CommentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	var post models.Post
	if err := database.DB.First(&post, input.PostID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	if input.ParentCommentID != nil {
		var parent models.Comment
		if err := database.DB.First(&parent, *input.ParentCommentID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Parent comment not found"})
			return
		}
	}

	comment := models.Comment{
		PostID:          input.PostID,
		UserID:          viewerID.(uint),
		ParentCommentID: input.ParentCommentID,
		Content:         input.Content,
	}
	if err := database.DB.Create(&comment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create comment"})
		return
	}

	notify.Emit(database.DB, post.UserID, viewerID.(uint), notify.CommentRef(comment.ID))

	c.JSON(http.StatusOK, gin.H{"message": "Comment added", "comment": comment})
}

// UpdateComment godoc
// @Summary      Update a comment
// @Description  Edits a comment. Only its author may update it.
// @Tags         comments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                true  "Comment ID"
// @Param        input body      CommentUpdateInput true  "Updated content"
// @Success      200  {object}  map[string]interface{} "{"message": "Comment updated", "comment": {...}}"
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse "Not the author"
// @Failure      404  {object}  ErrorResponse
// @Failure      422  {object}  ErrorResponse
// @Router       /comments/{id} [put]
func UpdateComment(c *gin.Context) {
	viewerID, _ := c.Get("userID")
	commentID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid comment ID"})
		return
	}

	var comment models.Comment
	if err := database.DB.First(&comment, uint(commentID)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Comment not found"})
		return
	}

	if comment.UserID != viewerID.(uint) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You do not have permission to update this comment"})
		return
	}

	var input CommentUpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	if err := database.DB.Model(&comment).Update("content", strings.TrimSpace(input.Content)).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update comment"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Comment updated", "comment": comment})
}

// DeleteComment godoc
// @Summary      Delete a comment
// @Description  Deletes a comment. Only its author may delete it.
// @Tags         comments
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Comment ID"
// @Success      200  {object}  map[string]string "{"message": "Comment deleted"}"
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse "Not the author"
// @Failure      404  {object}  ErrorResponse
// @Router       /comments/{id} [delete]
func DeleteComment(c *gin.Context) {
	viewerID, _ := c.Get("userID")
	commentID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid comment ID"})
		return
	}

	var comment models.Comment
	if err := database.DB.First(&comment, uint(commentID)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Comment not found"})
		return
	}

	if comment.UserID != viewerID.(uint) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You do not have permission to delete this comment"})
		return
	}

	if err := database.DB.Delete(&comment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete comment"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Comment deleted"})
}
