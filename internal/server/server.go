package server

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/joykbiswas/prisma-blog-app-backend/internal/database"
	"github.com/joykbiswas/prisma-blog-app-backend/internal/handlers"
	"github.com/joykbiswas/prisma-blog-app-backend/internal/middleware"
	"github.com/joykbiswas/prisma-blog-app-backend/internal/models"
	"github.com/joykbiswas/prisma-blog-app-backend/internal/sms"
)

type Server struct {
	db      database.Service
	handler *handlers.Handler
}

// NewServer creates and configures a new server
func NewServer() *http.Server {
	// Initialize database
	db := database.New()

	// Create unified handler
	handler := handlers.NewHandler(db.GetDB(), sms.NewTwilioVerifier())

	// Create server instance
	newServer := &Server{
		db:      db,
		handler: handler,
	}

	// Configure Gin router
	router := newServer.RegisterRoutes()

	port := os.Getenv("PORT")
	if port == "" {
		port = "5000" // local dev fallback
	}

	// Create HTTP server
	server := &http.Server{
		Addr:         "0.0.0.0:" + port,
		Handler:      router,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	log.Printf("🚀 Server starting on port %s\n", port)
	fmt.Println("📝 Press Ctrl+C to stop the server")

	return server
}

// RegisterRoutes sets up all application routes
func (s *Server) RegisterRoutes() *gin.Engine {
	r := gin.Default()

	// CORS configuration
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * 3600,
	}))

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, s.db.Health())
	})

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		api.POST("/auth/register", s.handler.Auth.Register)
		api.POST("/auth/login", s.handler.Auth.Login)
		api.POST("/auth/google", s.handler.Auth.GoogleLogin)

		// Post routes (public reads; static /posts/my-posts and
		// /posts/stats take priority over :postId)
		api.GET("/posts", s.handler.Post.GetPosts)
		api.GET("/posts/:postId", s.handler.Post.GetPost)

		// Comment routes (public reads)
		api.GET("/comments/:commentId", s.handler.Comment.GetComment)
		api.GET("/comments/author/:authorId", s.handler.Comment.GetCommentsByAuthor)

		// Protected routes (authentication required)
		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware())
		{
			// Auth protected routes
			protected.GET("/auth/me", s.handler.Auth.GetMe)
			protected.POST("/auth/phone/send-code", s.handler.Auth.SendPhoneCode)
			protected.POST("/auth/phone/verify", s.handler.Auth.VerifyPhone)

			// Post protected routes
			protected.GET("/posts/my-posts",
				middleware.RequireRoles(models.RoleUser, models.RoleAdmin),
				s.handler.Post.GetMyPosts)
			protected.GET("/posts/stats",
				middleware.RequireRoles(models.RoleAdmin),
				s.handler.Post.GetStats)
			protected.POST("/posts",
				middleware.RequireRoles(models.RoleUser, models.RoleAdmin),
				s.handler.Post.CreatePost)
			protected.PATCH("/posts/:postId",
				middleware.RequireRoles(models.RoleUser, models.RoleAdmin),
				s.handler.Post.UpdatePost)
			protected.DELETE("/posts/:postId",
				middleware.RequireRoles(models.RoleUser, models.RoleAdmin),
				s.handler.Post.DeletePost)

			// Comment protected routes
			protected.POST("/comments",
				middleware.RequireRoles(models.RoleUser, models.RoleAdmin),
				s.handler.Comment.CreateComment)
			protected.PATCH("/comments/:commentId",
				middleware.RequireRoles(models.RoleUser, models.RoleAdmin),
				s.handler.Comment.UpdateComment)
			protected.DELETE("/comments/:commentId",
				middleware.RequireRoles(models.RoleUser, models.RoleAdmin),
				s.handler.Comment.DeleteComment)
			protected.PATCH("/comments/:commentId/moderate",
				middleware.RequireRoles(models.RoleAdmin),
				s.handler.Comment.ModerateComment)
		}
	}

	return r
}
