package services

import (
	"context"
	"log"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/joykbiswas/prisma-blog-app-backend/internal/models"
)

// testDB is shared across the package's tests; nil when no Docker daemon
// is available, in which case the database tests skip themselves.
var testDB *gorm.DB

func TestMain(m *testing.M) {
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("blog_test"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("postgres"),
		tcpostgres.BasicWaitStrategies(),
	)
	if err == nil {
		dsn, cerr := container.ConnectionString(ctx, "sslmode=disable")
		if cerr == nil {
			db, gerr := gorm.Open(postgres.Open(dsn), &gorm.Config{
				Logger: logger.Default.LogMode(logger.Silent),
			})
			if gerr == nil {
				if merr := db.AutoMigrate(&models.User{}, &models.Post{}, &models.Comment{}); merr == nil {
					testDB = db
				}
			}
		}
	}
	if testDB == nil {
		log.Printf("postgres container unavailable, database tests will be skipped: %v", err)
	}

	code := m.Run()

	if container != nil {
		if terr := testcontainers.TerminateContainer(container); terr != nil {
			log.Printf("failed to terminate container: %v", terr)
		}
	}
	os.Exit(code)
}

// requireDB skips the test when no database is available and hands back a
// clean slate otherwise.
func requireDB(t *testing.T) *gorm.DB {
	t.Helper()
	if testDB == nil {
		t.Skip("postgres container unavailable, skipping database test")
	}
	for _, table := range []string{"comments", "posts", "users"} {
		require.NoError(t, testDB.Exec("DELETE FROM "+table).Error)
	}
	return testDB
}

func createTestUser(t *testing.T, db *gorm.DB, role models.UserRole) *models.User {
	t.Helper()
	user := &models.User{
		Name:         "Test User",
		Email:        uuid.NewString() + "@example.com",
		Password:     "hashed-password",
		Role:         role,
		Status:       models.UserActive,
		AuthProvider: "email",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestPost(t *testing.T, db *gorm.DB, authorID string, mutate func(*models.Post)) *models.Post {
	t.Helper()
	post := &models.Post{
		Title:    "Test Post",
		Content:  "Test content",
		Status:   models.PostDraft,
		Tags:     pq.StringArray{"general"},
		AuthorID: &authorID,
	}
	if mutate != nil {
		mutate(post)
	}
	require.NoError(t, db.Create(post).Error)
	return post
}

func createTestComment(t *testing.T, db *gorm.DB, authorID, postID string, parentID *string) *models.Comment {
	t.Helper()
	comment := &models.Comment{
		Content:  "Test comment",
		AuthorID: authorID,
		PostID:   postID,
		ParentID: parentID,
		Status:   models.CommentApproved,
	}
	require.NoError(t, db.Create(comment).Error)
	return comment
}
