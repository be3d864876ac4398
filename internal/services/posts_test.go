package services

import (
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joykbiswas/prisma-blog-app-backend/internal/apperr"
	"github.com/joykbiswas/prisma-blog-app-backend/internal/auth"
	"github.com/joykbiswas/prisma-blog-app-backend/internal/models"
	"github.com/joykbiswas/prisma-blog-app-backend/internal/pagination"
)

func defaultParams() pagination.Params {
	return pagination.Normalize(pagination.Options{})
}

func TestPostService_Create(t *testing.T) {
	db := requireDB(t)
	svc := NewPostService(db)
	author := createTestUser(t, db, models.RoleUser)

	t.Run("defaults applied", func(t *testing.T) {
		post, err := svc.Create(models.CreatePostInput{
			Title:   "First post",
			Content: "Hello world",
			Tags:    []string{"go", "intro"},
		}, author.ID)
		require.NoError(t, err)

		assert.NotEmpty(t, post.ID)
		assert.Equal(t, models.PostDraft, post.Status)
		assert.Equal(t, 0, post.Views)
		assert.False(t, post.IsFeatured)
		require.NotNil(t, post.AuthorID)
		assert.Equal(t, author.ID, *post.AuthorID)
		require.NotNil(t, post.Author)
		assert.Equal(t, author.Email, post.Author.Email)
	})

	t.Run("missing required fields", func(t *testing.T) {
		_, err := svc.Create(models.CreatePostInput{Title: "  "}, author.ID)
		require.Error(t, err)
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

		var appErr *apperr.Error
		require.ErrorAs(t, err, &appErr)
		assert.Len(t, appErr.Details, 3) // title, content, tags
	})

	t.Run("invalid status", func(t *testing.T) {
		_, err := svc.Create(models.CreatePostInput{
			Title:   "x",
			Content: "y",
			Tags:    []string{"t"},
			Status:  "WAITING",
		}, author.ID)
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	})

	t.Run("missing author", func(t *testing.T) {
		_, err := svc.Create(models.CreatePostInput{
			Title:   "x",
			Content: "y",
			Tags:    []string{"t"},
		}, "")
		assert.Equal(t, apperr.KindUnauthorized, apperr.KindOf(err))
	})
}

func TestPostService_List_Filters(t *testing.T) {
	db := requireDB(t)
	svc := NewPostService(db)
	author := createTestUser(t, db, models.RoleUser)
	other := createTestUser(t, db, models.RoleUser)

	createTestPost(t, db, author.ID, func(p *models.Post) {
		p.Title = "Go concurrency patterns"
		p.Tags = pq.StringArray{"go", "concurrency"}
		p.Status = models.PostPublished
	})
	createTestPost(t, db, author.ID, func(p *models.Post) {
		p.Title = "Cooking with cast iron"
		p.Tags = pq.StringArray{"cooking"}
		p.Status = models.PostPublished
		p.IsFeatured = true
	})
	createTestPost(t, db, other.ID, func(p *models.Post) {
		p.Title = "Drafting a novel"
		p.Content = "about writing in go... no, the board game"
		p.Tags = pq.StringArray{"writing", "go"}
		p.Status = models.PostDraft
	})

	t.Run("no filter returns everything", func(t *testing.T) {
		result, err := svc.List(PostFilter{Params: defaultParams()})
		require.NoError(t, err)
		assert.Equal(t, int64(3), result.Pagination.Total)
		assert.Len(t, result.Data, 3)
	})

	t.Run("tags are ANY-match", func(t *testing.T) {
		result, err := svc.List(PostFilter{
			Tags:   []string{"go", "cooking"},
			Params: defaultParams(),
		})
		require.NoError(t, err)
		// all three carry either "go" or "cooking"
		assert.Equal(t, int64(3), result.Pagination.Total)

		result, err = svc.List(PostFilter{
			Tags:   []string{"concurrency"},
			Params: defaultParams(),
		})
		require.NoError(t, err)
		require.Len(t, result.Data, 1)
		assert.Equal(t, "Go concurrency patterns", result.Data[0].Title)
	})

	t.Run("search is case-insensitive over title and content", func(t *testing.T) {
		result, err := svc.List(PostFilter{Search: "COOKING", Params: defaultParams()})
		require.NoError(t, err)
		require.Len(t, result.Data, 1)
		assert.Equal(t, "Cooking with cast iron", result.Data[0].Title)

		// matches content, not title
		result, err = svc.List(PostFilter{Search: "board game", Params: defaultParams()})
		require.NoError(t, err)
		require.Len(t, result.Data, 1)
		assert.Equal(t, "Drafting a novel", result.Data[0].Title)
	})

	t.Run("status and featured filters", func(t *testing.T) {
		result, err := svc.List(PostFilter{Status: models.PostPublished, Params: defaultParams()})
		require.NoError(t, err)
		assert.Equal(t, int64(2), result.Pagination.Total)

		featured := true
		result, err = svc.List(PostFilter{IsFeatured: &featured, Params: defaultParams()})
		require.NoError(t, err)
		require.Len(t, result.Data, 1)
		assert.Equal(t, "Cooking with cast iron", result.Data[0].Title)
	})

	t.Run("author filter", func(t *testing.T) {
		result, err := svc.List(PostFilter{AuthorID: other.ID, Params: defaultParams()})
		require.NoError(t, err)
		assert.Equal(t, int64(1), result.Pagination.Total)
	})

	t.Run("invalid status filter", func(t *testing.T) {
		_, err := svc.List(PostFilter{Status: "NOPE", Params: defaultParams()})
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	})
}

func TestPostService_List_PaginationAndSort(t *testing.T) {
	db := requireDB(t)
	svc := NewPostService(db)
	author := createTestUser(t, db, models.RoleUser)

	for i, views := range []int{40, 10, 30, 50, 20} {
		createTestPost(t, db, author.ID, func(p *models.Post) {
			p.Title = "Post " + string(rune('A'+i))
			p.Views = views
		})
	}

	t.Run("totalPages is ceil(total/limit)", func(t *testing.T) {
		result, err := svc.List(PostFilter{
			Params: pagination.Params{Page: 1, Limit: 2, Skip: 0, SortBy: "createdAt", SortOrder: "desc"},
		})
		require.NoError(t, err)
		assert.Equal(t, int64(5), result.Pagination.Total)
		assert.Equal(t, 3, result.Pagination.TotalPages)
		assert.Len(t, result.Data, 2)
	})

	t.Run("last page is partial", func(t *testing.T) {
		result, err := svc.List(PostFilter{
			Params: pagination.Params{Page: 3, Limit: 2, Skip: 4, SortBy: "createdAt", SortOrder: "desc"},
		})
		require.NoError(t, err)
		assert.Len(t, result.Data, 1)
		assert.Equal(t, 3, result.Pagination.Page)
	})

	t.Run("sort by views ascending", func(t *testing.T) {
		result, err := svc.List(PostFilter{
			Params: pagination.Params{Page: 1, Limit: 10, Skip: 0, SortBy: "views", SortOrder: "asc"},
		})
		require.NoError(t, err)
		require.Len(t, result.Data, 5)
		for i := 1; i < len(result.Data); i++ {
			assert.LessOrEqual(t, result.Data[i-1].Views, result.Data[i].Views)
		}
	})

	t.Run("unknown sortBy falls back to created_at", func(t *testing.T) {
		result, err := svc.List(PostFilter{
			Params: pagination.Params{Page: 1, Limit: 10, Skip: 0, SortBy: "views; DROP TABLE posts", SortOrder: "desc"},
		})
		require.NoError(t, err)
		assert.Len(t, result.Data, 5)
	})
}

func TestPostService_GetByID_IncrementsViews(t *testing.T) {
	db := requireDB(t)
	svc := NewPostService(db)
	author := createTestUser(t, db, models.RoleUser)
	post := createTestPost(t, db, author.ID, nil)

	got, err := svc.GetByID(post.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Views)

	got, err = svc.GetByID(post.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Views)

	_, err = svc.GetByID("c2c8a0a0-0000-0000-0000-000000000000")
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestPostService_ByAuthor(t *testing.T) {
	db := requireDB(t)
	svc := NewPostService(db)
	author := createTestUser(t, db, models.RoleUser)
	other := createTestUser(t, db, models.RoleUser)

	createTestPost(t, db, author.ID, nil)
	createTestPost(t, db, author.ID, nil)
	createTestPost(t, db, other.ID, nil)

	posts, err := svc.ByAuthor(author.ID)
	require.NoError(t, err)
	assert.Len(t, posts, 2)

	posts, err = svc.ByAuthor("c2c8a0a0-0000-0000-0000-000000000000")
	require.NoError(t, err)
	assert.Empty(t, posts)
}

func TestPostService_Update(t *testing.T) {
	db := requireDB(t)
	svc := NewPostService(db)
	owner := createTestUser(t, db, models.RoleUser)
	stranger := createTestUser(t, db, models.RoleUser)
	admin := createTestUser(t, db, models.RoleAdmin)

	post := createTestPost(t, db, owner.ID, nil)

	t.Run("non-owner is forbidden and post unchanged", func(t *testing.T) {
		title := "Hijacked"
		_, err := svc.Update(post.ID, models.UpdatePostInput{Title: &title},
			auth.Principal{ID: stranger.ID, Role: models.RoleUser})
		assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))

		var reloaded models.Post
		require.NoError(t, db.First(&reloaded, "id = ?", post.ID).Error)
		assert.Equal(t, "Test Post", reloaded.Title)
	})

	t.Run("owner applies partial patch", func(t *testing.T) {
		title := "Updated title"
		status := models.PostPublished
		updated, err := svc.Update(post.ID, models.UpdatePostInput{Title: &title, Status: &status},
			auth.Principal{ID: owner.ID, Role: models.RoleUser})
		require.NoError(t, err)
		assert.Equal(t, "Updated title", updated.Title)
		assert.Equal(t, models.PostPublished, updated.Status)
		assert.Equal(t, "Test content", updated.Content, "unpatched field untouched")
	})

	t.Run("admin may edit any post", func(t *testing.T) {
		featured := true
		updated, err := svc.Update(post.ID, models.UpdatePostInput{IsFeatured: &featured},
			auth.Principal{ID: admin.ID, Role: models.RoleAdmin})
		require.NoError(t, err)
		assert.True(t, updated.IsFeatured)
	})

	t.Run("empty title rejected", func(t *testing.T) {
		empty := "   "
		_, err := svc.Update(post.ID, models.UpdatePostInput{Title: &empty},
			auth.Principal{ID: owner.ID, Role: models.RoleUser})
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	})

	t.Run("missing post", func(t *testing.T) {
		title := "x"
		_, err := svc.Update("c2c8a0a0-0000-0000-0000-000000000000",
			models.UpdatePostInput{Title: &title},
			auth.Principal{ID: owner.ID, Role: models.RoleUser})
		assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	})
}

func TestPostService_Delete(t *testing.T) {
	db := requireDB(t)
	svc := NewPostService(db)
	owner := createTestUser(t, db, models.RoleUser)
	stranger := createTestUser(t, db, models.RoleUser)
	admin := createTestUser(t, db, models.RoleAdmin)

	t.Run("stranger forbidden, owner succeeds", func(t *testing.T) {
		post := createTestPost(t, db, owner.ID, nil)

		err := svc.Delete(post.ID, auth.Principal{ID: stranger.ID, Role: models.RoleUser})
		assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))

		require.NoError(t, svc.Delete(post.ID, auth.Principal{ID: owner.ID, Role: models.RoleUser}))

		var count int64
		db.Model(&models.Post{}).Where("id = ?", post.ID).Count(&count)
		assert.Zero(t, count)
	})

	t.Run("admin deletes any post with its comments", func(t *testing.T) {
		post := createTestPost(t, db, owner.ID, nil)
		createTestComment(t, db, stranger.ID, post.ID, nil)
		createTestComment(t, db, owner.ID, post.ID, nil)

		require.NoError(t, svc.Delete(post.ID, auth.Principal{ID: admin.ID, Role: models.RoleAdmin}))

		var count int64
		db.Model(&models.Comment{}).Where("post_id = ?", post.ID).Count(&count)
		assert.Zero(t, count)
	})

	t.Run("missing post", func(t *testing.T) {
		err := svc.Delete("c2c8a0a0-0000-0000-0000-000000000000",
			auth.Principal{ID: admin.ID, Role: models.RoleAdmin})
		assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	})
}
