package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CommentStatus string

const (
	CommentApproved CommentStatus = "APPROVED"
	CommentRejected CommentStatus = "REJECT"
)

func (s CommentStatus) Valid() bool {
	return s == CommentApproved || s == CommentRejected
}

type Comment struct {
	ID        string        `gorm:"type:uuid;primaryKey" json:"id"`
	Content   string        `gorm:"type:text;not null" json:"content"`
	AuthorID  string        `gorm:"type:uuid;not null;index" json:"authorId"`
	Author    *User         `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	PostID    string        `gorm:"type:uuid;not null;index" json:"postId"`
	ParentID  *string       `gorm:"type:uuid;index" json:"parentId,omitempty"`
	Status    CommentStatus `gorm:"type:varchar(10);not null;default:APPROVED" json:"status"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

type CreateCommentInput struct {
	Content  string  `json:"content"`
	PostID   string  `json:"postId"`
	ParentID *string `json:"parentId"`
}

// UpdateCommentInput is a partial patch. Status may only be set by admins;
// regular authors go through moderation for status changes.
type UpdateCommentInput struct {
	Content *string        `json:"content"`
	Status  *CommentStatus `json:"status"`
}

type ModerateCommentInput struct {
	Status CommentStatus `json:"status"`
}
