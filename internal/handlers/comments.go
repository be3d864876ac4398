package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/joykbiswas/prisma-blog-app-backend/internal/apperr"
	"github.com/joykbiswas/prisma-blog-app-backend/internal/models"
	"github.com/joykbiswas/prisma-blog-app-backend/internal/services"
)

type CommentHandler struct {
	comments *services.CommentService
}

func NewCommentHandler(db *gorm.DB) *CommentHandler {
	return &CommentHandler{comments: services.NewCommentService(db)}
}

// GetComment returns a single comment by ID
func (h *CommentHandler) GetComment(c *gin.Context) {
	comment, err := h.comments.GetByID(c.Param("commentId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, comment)
}

// GetCommentsByAuthor lists every comment written by an author.
func (h *CommentHandler) GetCommentsByAuthor(c *gin.Context) {
	comments, err := h.comments.ByAuthor(c.Param("authorId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, comments)
}

// CreateComment creates a comment, optionally as a reply (PROTECTED)
func (h *CommentHandler) CreateComment(c *gin.Context) {
	var input models.CreateCommentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, apperr.Validation("Comment create failed", err.Error()))
		return
	}

	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}

	comment, err := h.comments.Create(input, principal.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}

// UpdateComment applies a partial update (PROTECTED - owner or admin)
func (h *CommentHandler) UpdateComment(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}

	var patch models.UpdateCommentInput
	if err := c.ShouldBindJSON(&patch); err != nil {
		respondError(c, apperr.Validation("Comment update failed", err.Error()))
		return
	}

	comment, err := h.comments.Update(c.Param("commentId"), patch, principal)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, comment)
}

// DeleteComment removes a comment and its replies (PROTECTED - owner or admin)
func (h *CommentHandler) DeleteComment(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}

	if err := h.comments.Delete(c.Param("commentId"), principal); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Comment deleted successfully",
	})
}

// ModerateComment sets the moderation status (route is admin-gated).
func (h *CommentHandler) ModerateComment(c *gin.Context) {
	var input models.ModerateCommentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, apperr.Validation("Comment moderation failed", err.Error()))
		return
	}

	comment, err := h.comments.Moderate(c.Param("commentId"), input.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, comment)
}
