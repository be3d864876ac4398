package services

import (
	"gorm.io/gorm"

	"github.com/joykbiswas/prisma-blog-app-backend/internal/apperr"
	"github.com/joykbiswas/prisma-blog-app-backend/internal/models"
)

type StatsService struct {
	db *gorm.DB
}

func NewStatsService(db *gorm.DB) *StatsService {
	return &StatsService{db: db}
}

type groupCount struct {
	Key   string
	Count int64
}

// Overview returns the admin aggregate snapshot: totals, per-status and
// per-role breakdowns, and the summed view counter. Read-only.
func (s *StatsService) Overview() (*models.Stats, error) {
	stats := models.Stats{
		PostsByStatus:    make(map[models.PostStatus]int64),
		CommentsByStatus: make(map[models.CommentStatus]int64),
		UsersByRole:      make(map[models.UserRole]int64),
	}

	postGroups, err := s.groupBy(&models.Post{}, "status")
	if err != nil {
		return nil, apperr.Internal("Failed to aggregate posts", err)
	}
	for _, g := range postGroups {
		stats.PostsByStatus[models.PostStatus(g.Key)] = g.Count
		stats.TotalPosts += g.Count
	}

	commentGroups, err := s.groupBy(&models.Comment{}, "status")
	if err != nil {
		return nil, apperr.Internal("Failed to aggregate comments", err)
	}
	for _, g := range commentGroups {
		stats.CommentsByStatus[models.CommentStatus(g.Key)] = g.Count
		stats.TotalComments += g.Count
	}

	userGroups, err := s.groupBy(&models.User{}, "role")
	if err != nil {
		return nil, apperr.Internal("Failed to aggregate users", err)
	}
	for _, g := range userGroups {
		stats.UsersByRole[models.UserRole(g.Key)] = g.Count
		stats.TotalUsers += g.Count
	}

	err = s.db.Model(&models.Post{}).
		Select("COALESCE(SUM(views), 0)").
		Scan(&stats.TotalViews).Error
	if err != nil {
		return nil, apperr.Internal("Failed to sum post views", err)
	}

	return &stats, nil
}

func (s *StatsService) groupBy(model interface{}, column string) ([]groupCount, error) {
	var groups []groupCount
	err := s.db.Model(model).
		Select(column + " AS key, COUNT(*) AS count").
		Group(column).
		Scan(&groups).Error
	return groups, err
}
