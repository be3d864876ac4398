package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type PostStatus string

const (
	PostDraft     PostStatus = "DRAFT"
	PostPublished PostStatus = "PUBLISHED"
	PostArchived  PostStatus = "ARCHIVED"
)

func (s PostStatus) Valid() bool {
	switch s {
	case PostDraft, PostPublished, PostArchived:
		return true
	}
	return false
}

type Post struct {
	ID         string         `gorm:"type:uuid;primaryKey" json:"id"`
	Title      string         `gorm:"type:varchar(255);not null" json:"title"`
	Content    string         `gorm:"type:text;not null" json:"content"`
	Thumbnail  string         `json:"thumbnail,omitempty"`
	IsFeatured bool           `gorm:"not null;default:false" json:"isFeatured"`
	Status     PostStatus     `gorm:"type:varchar(10);not null;default:DRAFT" json:"status"`
	Tags       pq.StringArray `gorm:"type:text[]" json:"tags"`
	Views      int            `gorm:"not null;default:0" json:"views"`
	AuthorID   *string        `gorm:"type:uuid;index" json:"authorId"`
	Author     *User          `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	CreatedAt  time.Time      `json:"createdAt"`
	UpdatedAt  time.Time      `json:"updatedAt"`
}

func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

type CreatePostInput struct {
	Title      string     `json:"title"`
	Content    string     `json:"content"`
	Thumbnail  string     `json:"thumbnail"`
	IsFeatured bool       `json:"isFeatured"`
	Status     PostStatus `json:"status"`
	Tags       []string   `json:"tags"`
}

// UpdatePostInput is a partial patch: nil fields are left untouched.
type UpdatePostInput struct {
	Title      *string     `json:"title"`
	Content    *string     `json:"content"`
	Thumbnail  *string     `json:"thumbnail"`
	IsFeatured *bool       `json:"isFeatured"`
	Status     *PostStatus `json:"status"`
	Tags       *[]string   `json:"tags"`
}
