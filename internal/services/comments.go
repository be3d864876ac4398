package services

import (
	"strings"

	"gorm.io/gorm"

	"github.com/joykbiswas/prisma-blog-app-backend/internal/apperr"
	"github.com/joykbiswas/prisma-blog-app-backend/internal/auth"
	"github.com/joykbiswas/prisma-blog-app-backend/internal/models"
)

type CommentService struct {
	db *gorm.DB
}

func NewCommentService(db *gorm.DB) *CommentService {
	return &CommentService{db: db}
}

// Create stores a comment by authorID on an existing post. A parentId must
// name a comment on the same post. New comments start APPROVED: the status
// enum has no pending state, so creation is not moderation-gated.
func (s *CommentService) Create(input models.CreateCommentInput, authorID string) (*models.Comment, error) {
	if authorID == "" {
		return nil, apperr.Unauthorized("author identity required")
	}

	var details []string
	if strings.TrimSpace(input.Content) == "" {
		details = append(details, "content is required")
	}
	if input.PostID == "" {
		details = append(details, "postId is required")
	}
	if len(details) > 0 {
		return nil, apperr.Validation("Comment create failed", details...)
	}

	var comment models.Comment
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var post models.Post
		if err := tx.Select("id").First(&post, "id = ?", input.PostID).Error; err != nil {
			return storeError(err, "Post not found", "Comment create failed")
		}

		if input.ParentID != nil {
			var parent models.Comment
			if err := tx.First(&parent, "id = ?", *input.ParentID).Error; err != nil {
				return storeError(err, "Parent comment not found", "Comment create failed")
			}
			if parent.PostID != input.PostID {
				return apperr.Validation("Comment create failed", "parent comment belongs to a different post")
			}
		}

		comment = models.Comment{
			Content:  input.Content,
			AuthorID: authorID,
			PostID:   input.PostID,
			ParentID: input.ParentID,
			Status:   models.CommentApproved,
		}
		return tx.Create(&comment).Error
	})
	if err != nil {
		return nil, storeError(err, "Post not found", "Failed to create comment")
	}

	if err := s.db.Preload("Author").First(&comment, "id = ?", comment.ID).Error; err != nil {
		return nil, apperr.Internal("Failed to load created comment", err)
	}
	return &comment, nil
}

func (s *CommentService) GetByID(id string) (*models.Comment, error) {
	var comment models.Comment
	if err := s.db.Preload("Author").First(&comment, "id = ?", id).Error; err != nil {
		return nil, storeError(err, "Comment not found", "Failed to fetch comment")
	}
	return &comment, nil
}

// ByAuthor returns every comment by the author, newest first, regardless
// of moderation status.
func (s *CommentService) ByAuthor(authorID string) ([]models.Comment, error) {
	comments := make([]models.Comment, 0)
	err := s.db.Where("author_id = ?", authorID).
		Order("created_at DESC").
		Find(&comments).Error
	if err != nil {
		return nil, apperr.Internal("Failed to fetch comments", err)
	}
	return comments, nil
}

// Update applies a partial patch after the ownership check. Status changes
// are admin-only here; authors use moderation endpoints they don't have,
// so a non-admin patch carrying status is rejected outright.
func (s *CommentService) Update(id string, patch models.UpdateCommentInput, principal auth.Principal) (*models.Comment, error) {
	var comment models.Comment
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&comment, "id = ?", id).Error; err != nil {
			return err
		}

		if !auth.CanMutate(principal, comment.AuthorID) {
			return apperr.Forbidden("You can only edit your own comments")
		}
		if patch.Status != nil && principal.Role != models.RoleAdmin {
			return apperr.Forbidden("Only admins can change comment status")
		}

		updates := map[string]interface{}{}
		if patch.Content != nil {
			if strings.TrimSpace(*patch.Content) == "" {
				return apperr.Validation("Comment update failed", "content cannot be empty")
			}
			updates["content"] = *patch.Content
		}
		if patch.Status != nil {
			if !patch.Status.Valid() {
				return apperr.Validation("Comment update failed", "status must be APPROVED or REJECT")
			}
			updates["status"] = *patch.Status
		}

		if len(updates) == 0 {
			return nil
		}
		return tx.Model(&comment).Updates(updates).Error
	})
	if err != nil {
		return nil, storeError(err, "Comment not found", "Comment update failed")
	}

	if err := s.db.Preload("Author").First(&comment, "id = ?", comment.ID).Error; err != nil {
		return nil, apperr.Internal("Failed to load updated comment", err)
	}
	return &comment, nil
}

// Delete removes a comment and every reply under it, so no reply is left
// pointing at a deleted parent. One transaction for the whole subtree.
func (s *CommentService) Delete(id string, principal auth.Principal) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var comment models.Comment
		if err := tx.First(&comment, "id = ?", id).Error; err != nil {
			return err
		}

		if !auth.CanMutate(principal, comment.AuthorID) {
			return apperr.Forbidden("You can only delete your own comments")
		}

		ids := []string{comment.ID}
		frontier := []string{comment.ID}
		for len(frontier) > 0 {
			var children []string
			err := tx.Model(&models.Comment{}).
				Where("parent_id IN ?", frontier).
				Pluck("id", &children).Error
			if err != nil {
				return err
			}
			ids = append(ids, children...)
			frontier = children
		}

		return tx.Where("id IN ?", ids).Delete(&models.Comment{}).Error
	})
	return storeError(err, "Comment not found", "Failed to delete comment")
}

// Moderate is the admin-only APPROVED<->REJECT transition. Route-level role
// gating keeps non-admins out before this runs.
func (s *CommentService) Moderate(id string, status models.CommentStatus) (*models.Comment, error) {
	if !status.Valid() {
		return nil, apperr.Validation("Comment moderation failed", "status must be APPROVED or REJECT")
	}

	var comment models.Comment
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&comment, "id = ?", id).Error; err != nil {
			return err
		}
		return tx.Model(&comment).Update("status", status).Error
	})
	if err != nil {
		return nil, storeError(err, "Comment not found", "Comment moderation failed")
	}

	if err := s.db.Preload("Author").First(&comment, "id = ?", comment.ID).Error; err != nil {
		return nil, apperr.Internal("Failed to load moderated comment", err)
	}
	return &comment, nil
}
