package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/joykbiswas/prisma-blog-app-backend/internal/apperr"
	"github.com/joykbiswas/prisma-blog-app-backend/internal/models"
	"github.com/joykbiswas/prisma-blog-app-backend/internal/pagination"
	"github.com/joykbiswas/prisma-blog-app-backend/internal/services"
)

type PostHandler struct {
	posts *services.PostService
	stats *services.StatsService
}

func NewPostHandler(db *gorm.DB) *PostHandler {
	return &PostHandler{
		posts: services.NewPostService(db),
		stats: services.NewStatsService(db),
	}
}

// GetPosts lists posts with search, tag, featured, status and author
// filters plus pagination and sorting.
func (h *PostHandler) GetPosts(c *gin.Context) {
	params := pagination.Normalize(pagination.Options{
		Page:      c.Query("page"),
		Limit:     c.Query("limit"),
		SortBy:    c.Query("sortBy"),
		SortOrder: c.Query("sortOrder"),
	})

	filter := services.PostFilter{
		Search:   c.Query("search"),
		Status:   models.PostStatus(c.Query("status")),
		AuthorID: c.Query("authorId"),
		Params:   params,
	}
	if raw := c.Query("tags"); raw != "" {
		filter.Tags = strings.Split(raw, ",")
	}
	if raw := c.Query("isFeatured"); raw == "true" || raw == "false" {
		featured := raw == "true"
		filter.IsFeatured = &featured
	}

	result, err := h.posts.List(filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetPost returns a single post by ID
func (h *PostHandler) GetPost(c *gin.Context) {
	post, err := h.posts.GetByID(c.Param("postId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

// CreatePost creates a new post (PROTECTED - requires authentication)
func (h *PostHandler) CreatePost(c *gin.Context) {
	var input models.CreatePostInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, apperr.Validation("Post create failed", err.Error()))
		return
	}

	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}

	post, err := h.posts.Create(input, principal.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, post)
}

// GetMyPosts returns all posts owned by the caller.
func (h *PostHandler) GetMyPosts(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}

	posts, err := h.posts.ByAuthor(principal.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, posts)
}

// UpdatePost applies a partial update (PROTECTED - owner or admin)
func (h *PostHandler) UpdatePost(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}

	var patch models.UpdatePostInput
	if err := c.ShouldBindJSON(&patch); err != nil {
		respondError(c, apperr.Validation("Post update failed", err.Error()))
		return
	}

	post, err := h.posts.Update(c.Param("postId"), patch, principal)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

// DeletePost deletes a post (PROTECTED - owner or admin)
func (h *PostHandler) DeletePost(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}

	if err := h.posts.Delete(c.Param("postId"), principal); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Post deleted successfully",
	})
}

// GetStats returns the aggregate counters (route is admin-gated).
func (h *PostHandler) GetStats(c *gin.Context) {
	stats, err := h.stats.Overview()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
