package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/joykbiswas/prisma-blog-app-backend/internal/apperr"
	"github.com/joykbiswas/prisma-blog-app-backend/internal/auth"
	"github.com/joykbiswas/prisma-blog-app-backend/internal/middleware"
	"github.com/joykbiswas/prisma-blog-app-backend/internal/sms"
)

// Handler combines all handler types
type Handler struct {
	Auth    *AuthHandler
	Post    *PostHandler
	Comment *CommentHandler
}

// NewHandler creates a unified handler with all sub-handlers
func NewHandler(db *gorm.DB, verifier sms.Verifier) *Handler {
	return &Handler{
		Auth:    NewAuthHandler(db, verifier),
		Post:    NewPostHandler(db),
		Comment: NewCommentHandler(db),
	}
}

// respondError maps a service failure onto the client error shape.
func respondError(c *gin.Context, err error) {
	var appErr *apperr.Error
	if !errors.As(err, &appErr) {
		appErr = apperr.Internal("Something went wrong", err)
	}

	body := gin.H{
		"success": false,
		"message": appErr.Message,
	}
	if len(appErr.Details) > 0 {
		body["errors"] = appErr.Details
	}
	c.JSON(appErr.HTTPStatus(), body)
}

// requirePrincipal fetches the authenticated caller or writes a 401.
func requirePrincipal(c *gin.Context) (auth.Principal, bool) {
	principal, ok := middleware.PrincipalFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"message": "User not authenticated",
		})
	}
	return principal, ok
}
