package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateArticleRequest struct {
	Title       string   `json:"title" binding:"required,max=255"`
	Description string   `json:"description" binding:"max=255"`
	Body        string   `json:"body" binding:"required"`
	TagList     []string `json:"tag_list"`
	Images      []string `json:"images"`
}

type UpdateArticleRequest struct {
	Title       *string  `json:"title" binding:"omitempty,max=255"`
	Description *string  `json:"description" binding:"omitempty,max=255"`
	Body        *string  `json:"body"`
	TagList     []string `json:"tag_list"`
}

type ArticleResponse struct {
	ID          uuid.UUID       `json:"id"`
	Title       string          `json:"title"`
	Slug        string          `json:"slug"`
	Description string          `json:"description"`
	Body        string          `json:"body"`
	TagList     []string        `json:"tag_list"`
	Author      string          `json:"author"`
	Images      []ImageResponse `json:"images"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

type ImageResponse struct {
	URL         string `json:"url"`
	Description string `json:"description"`
}

type SearchFilter struct {
	Query string `form:"q"`
	Tag   string `form:"tag"`
	Limit int    `form:"limit"`
}

type ArticleSearchHit struct {
	Title       string   `json:"title"`
	Slug        string   `json:"slug"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	Author      string   `json:"author"`
}
