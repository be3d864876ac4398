package services

import (
	"strings"

	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/joykbiswas/prisma-blog-app-backend/internal/apperr"
	"github.com/joykbiswas/prisma-blog-app-backend/internal/auth"
	"github.com/joykbiswas/prisma-blog-app-backend/internal/models"
	"github.com/joykbiswas/prisma-blog-app-backend/internal/pagination"
)

type PostService struct {
	db *gorm.DB
}

func NewPostService(db *gorm.DB) *PostService {
	return &PostService{db: db}
}

// PostFilter carries the listing filters plus normalized pagination.
type PostFilter struct {
	Search     string
	Tags       []string
	IsFeatured *bool
	Status     models.PostStatus
	AuthorID   string
	pagination.Params
}

type PostList struct {
	Data       []models.Post `json:"data"`
	Pagination Pagination    `json:"pagination"`
}

// Sortable columns for the listing endpoint. Anything else falls back to
// created_at, so raw sortBy values never reach the SQL string.
var postSortColumns = map[string]string{
	"createdAt": "created_at",
	"updatedAt": "updated_at",
	"title":     "title",
	"views":     "views",
}

// Create stores a new post owned by authorID. Status defaults to DRAFT,
// views to zero.
func (s *PostService) Create(input models.CreatePostInput, authorID string) (*models.Post, error) {
	if authorID == "" {
		return nil, apperr.Unauthorized("author identity required")
	}

	var details []string
	if strings.TrimSpace(input.Title) == "" {
		details = append(details, "title is required")
	}
	if strings.TrimSpace(input.Content) == "" {
		details = append(details, "content is required")
	}
	if len(input.Tags) == 0 {
		details = append(details, "at least one tag is required")
	}
	if len(details) > 0 {
		return nil, apperr.Validation("Post create failed", details...)
	}

	status := input.Status
	if status == "" {
		status = models.PostDraft
	}
	if !status.Valid() {
		return nil, apperr.Validation("Post create failed", "status must be DRAFT, PUBLISHED or ARCHIVED")
	}

	post := models.Post{
		Title:      input.Title,
		Content:    input.Content,
		Thumbnail:  input.Thumbnail,
		IsFeatured: input.IsFeatured,
		Status:     status,
		Tags:       pq.StringArray(input.Tags),
		AuthorID:   &authorID,
	}

	if err := s.db.Create(&post).Error; err != nil {
		return nil, apperr.Internal("Failed to create post", err)
	}

	// Reload with author information
	if err := s.db.Preload("Author").First(&post, "id = ?", post.ID).Error; err != nil {
		return nil, apperr.Internal("Failed to load created post", err)
	}
	return &post, nil
}

// List runs the filtered, paginated, sorted listing query. Tag filtering is
// ANY-match: a post qualifies when it carries at least one requested tag.
func (s *PostService) List(filter PostFilter) (*PostList, error) {
	q := s.db.Model(&models.Post{})

	if filter.Search != "" {
		term := "%" + filter.Search + "%"
		q = q.Where("title ILIKE ? OR content ILIKE ?", term, term)
	}
	if len(filter.Tags) > 0 {
		q = q.Where("tags && ?::text[]", pq.StringArray(filter.Tags))
	}
	if filter.IsFeatured != nil {
		q = q.Where("is_featured = ?", *filter.IsFeatured)
	}
	if filter.Status != "" {
		if !filter.Status.Valid() {
			return nil, apperr.Validation("Post fetch failed", "status must be DRAFT, PUBLISHED or ARCHIVED")
		}
		q = q.Where("status = ?", filter.Status)
	}
	if filter.AuthorID != "" {
		q = q.Where("author_id = ?", filter.AuthorID)
	}

	// reusable statement: Count and Find share the conditions above
	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, apperr.Internal("Failed to count posts", err)
	}

	column, ok := postSortColumns[filter.SortBy]
	if !ok {
		column = "created_at"
	}
	direction := "DESC"
	if filter.SortOrder == "asc" {
		direction = "ASC"
	}

	posts := make([]models.Post, 0, filter.Limit)
	err := q.Preload("Author").
		Order(column + " " + direction).
		Order("id ASC"). // deterministic tie-break
		Limit(filter.Limit).
		Offset(filter.Skip).
		Find(&posts).Error
	if err != nil {
		return nil, apperr.Internal("Failed to fetch posts", err)
	}

	return &PostList{
		Data: posts,
		Pagination: Pagination{
			Total:      total,
			Page:       filter.Page,
			Limit:      filter.Limit,
			TotalPages: totalPages(total, filter.Limit),
		},
	}, nil
}

// GetByID returns a single post and bumps its view counter. The increment
// and the read run in one transaction so concurrent fetches never lose a
// count.
func (s *PostService) GetByID(id string) (*models.Post, error) {
	var post models.Post
	err := s.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Post{}).
			Where("id = ?", id).
			UpdateColumn("views", gorm.Expr("views + 1"))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Preload("Author").First(&post, "id = ?", id).Error
	})
	if err != nil {
		return nil, storeError(err, "Post not found", "Failed to fetch post")
	}
	return &post, nil
}

// ByAuthor returns every post owned by authorID, newest first. No
// pagination: callers listing their own posts get the full set.
func (s *PostService) ByAuthor(authorID string) ([]models.Post, error) {
	posts := make([]models.Post, 0)
	err := s.db.Where("author_id = ?", authorID).
		Order("created_at DESC").
		Find(&posts).Error
	if err != nil {
		return nil, apperr.Internal("Failed to fetch posts", err)
	}
	return posts, nil
}

// Update applies a partial patch after the ownership check. Only fields
// present in the patch change; the whole operation is one transaction.
func (s *PostService) Update(id string, patch models.UpdatePostInput, principal auth.Principal) (*models.Post, error) {
	var post models.Post
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&post, "id = ?", id).Error; err != nil {
			return err
		}

		owner := ""
		if post.AuthorID != nil {
			owner = *post.AuthorID
		}
		if !auth.CanMutate(principal, owner) {
			return apperr.Forbidden("You can only edit your own posts")
		}

		updates := map[string]interface{}{}
		if patch.Title != nil {
			if strings.TrimSpace(*patch.Title) == "" {
				return apperr.Validation("Post update failed", "title cannot be empty")
			}
			updates["title"] = *patch.Title
		}
		if patch.Content != nil {
			if strings.TrimSpace(*patch.Content) == "" {
				return apperr.Validation("Post update failed", "content cannot be empty")
			}
			updates["content"] = *patch.Content
		}
		if patch.Thumbnail != nil {
			updates["thumbnail"] = *patch.Thumbnail
		}
		if patch.IsFeatured != nil {
			updates["is_featured"] = *patch.IsFeatured
		}
		if patch.Status != nil {
			if !patch.Status.Valid() {
				return apperr.Validation("Post update failed", "status must be DRAFT, PUBLISHED or ARCHIVED")
			}
			updates["status"] = *patch.Status
		}
		if patch.Tags != nil {
			if len(*patch.Tags) == 0 {
				return apperr.Validation("Post update failed", "at least one tag is required")
			}
			updates["tags"] = pq.StringArray(*patch.Tags)
		}

		if len(updates) == 0 {
			return nil
		}
		return tx.Model(&post).Updates(updates).Error
	})
	if err != nil {
		return nil, storeError(err, "Post not found", "Post update failed")
	}

	if err := s.db.Preload("Author").First(&post, "id = ?", post.ID).Error; err != nil {
		return nil, apperr.Internal("Failed to load updated post", err)
	}
	return &post, nil
}

// Delete removes a post and all its comments after the ownership check.
func (s *PostService) Delete(id string, principal auth.Principal) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var post models.Post
		if err := tx.First(&post, "id = ?", id).Error; err != nil {
			return err
		}

		owner := ""
		if post.AuthorID != nil {
			owner = *post.AuthorID
		}
		if !auth.CanMutate(principal, owner) {
			return apperr.Forbidden("You can only delete your own posts")
		}

		// Comments cannot outlive their post
		if err := tx.Where("post_id = ?", post.ID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&post).Error
	})
	return storeError(err, "Post not found", "Failed to delete post")
}
