package models

// Stats is the admin-facing aggregate snapshot. Per-status and per-role
// maps always sum to their matching totals.
type Stats struct {
	TotalPosts       int64                   `json:"totalPosts"`
	PostsByStatus    map[PostStatus]int64    `json:"postsByStatus"`
	TotalViews       int64                   `json:"totalViews"`
	TotalComments    int64                   `json:"totalComments"`
	CommentsByStatus map[CommentStatus]int64 `json:"commentsByStatus"`
	TotalUsers       int64                   `json:"totalUsers"`
	UsersByRole      map[UserRole]int64      `json:"usersByRole"`
}
