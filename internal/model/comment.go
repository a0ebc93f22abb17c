package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Comment is a threaded article comment with one level of nesting.
// Deactivated comments stay in place so the thread keeps its shape.
type Comment struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	ArticleID   uuid.UUID  `gorm:"type:uuid;not null;index" json:"article_id"`
	ParentID    *uuid.UUID `gorm:"type:uuid;index" json:"parent_id,omitempty"`
	AuthorID    uuid.UUID  `gorm:"type:uuid;not null" json:"author_id"`
	Author      *Profile   `gorm:"foreignKey:AuthorID;references:UserID" json:"author,omitempty"`
	Body        string     `gorm:"type:text;not null" json:"body"`
	Active      bool       `gorm:"default:true" json:"active"`
	Subcomments []Comment  `gorm:"foreignKey:ParentID" json:"subcomments,omitempty"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (c *Comment) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == uuid.Nil {
		c.ID, err = uuid.NewV7()
	}
	return
}

const (
	CommentVoteLike    = "like"
	CommentVoteDislike = "dislike"
)

// CommentLike holds at most one active vote per (profile, comment).
type CommentLike struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ProfileID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_comment_likes_profile_comment" json:"profile_id"`
	CommentID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_comment_likes_profile_comment" json:"comment_id"`
	Type      string    `gorm:"size:10;not null" json:"type"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
