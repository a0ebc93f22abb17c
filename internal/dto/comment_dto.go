package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateCommentRequest struct {
	Body string `json:"body" binding:"required"`
}

type UpdateCommentRequest struct {
	Body string `json:"body" binding:"required"`
}

// CommentResponse renders one thread node. Deactivated comments keep
// their position but expose a placeholder body and no author.
type CommentResponse struct {
	ID          uuid.UUID         `json:"id"`
	Body        string            `json:"body"`
	Author      string            `json:"author,omitempty"`
	Active      bool              `json:"active"`
	Likes       int64             `json:"likes"`
	Dislikes    int64             `json:"dislikes"`
	Subcomments []CommentResponse `json:"subcomments,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}
