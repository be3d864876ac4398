// Package services holds the post, comment and stats operations. Each
// operation runs as a single unit against the store and reports failures
// through the apperr taxonomy; handlers stay thin.
package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/joykbiswas/prisma-blog-app-backend/internal/apperr"
)

// Pagination is the envelope metadata for list responses.
type Pagination struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"totalPages"`
}

// storeError maps a failed store operation onto the error taxonomy.
// Already-classified errors pass through untouched.
func storeError(err error, notFoundMsg, internalMsg string) error {
	var appErr *apperr.Error
	switch {
	case err == nil:
		return nil
	case errors.As(err, &appErr):
		return err
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperr.NotFound(notFoundMsg)
	default:
		return apperr.Internal(internalMsg, err)
	}
}

func totalPages(total int64, limit int) int {
	if limit < 1 {
		return 0
	}
	pages := total / int64(limit)
	if total%int64(limit) != 0 {
		pages++
	}
	return int(pages)
}
