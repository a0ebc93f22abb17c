package repository

import (
	"context"

	"github.com/andela/ah-olympians/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CommentRepository interface {
	Create(ctx context.Context, comment *model.Comment) error
	// FindActive returns the comment only when it is active and belongs
	// to the given article.
	FindActive(ctx context.Context, articleID, commentID uuid.UUID) (*model.Comment, error)
	// FindThread returns top-level comments with subcomments preloaded,
	// inactive ones included so the thread keeps its shape.
	FindThread(ctx context.Context, articleID uuid.UUID) ([]model.Comment, error)
	FindReplies(ctx context.Context, parentID uuid.UUID) ([]model.Comment, error)
	Update(ctx context.Context, comment *model.Comment) error
}

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *model.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *commentRepository) FindActive(ctx context.Context, articleID, commentID uuid.UUID) (*model.Comment, error) {
	var comment model.Comment
	if err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Author.User").
		Where("id = ? AND article_id = ? AND active = ?", commentID, articleID, true).
		First(&comment).Error; err != nil {
		return nil, err
	}

	return &comment, nil
}

func (r *commentRepository) FindThread(ctx context.Context, articleID uuid.UUID) ([]model.Comment, error) {
	var comments []model.Comment
	err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Author.User").
		Preload("Subcomments").
		Preload("Subcomments.Author").
		Preload("Subcomments.Author.User").
		Where("article_id = ? AND parent_id IS NULL", articleID).
		Order("created_at ASC").
		Find(&comments).Error
	return comments, err
}

func (r *commentRepository) FindReplies(ctx context.Context, parentID uuid.UUID) ([]model.Comment, error) {
	var comments []model.Comment
	err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Author.User").
		Where("parent_id = ?", parentID).
		Order("created_at ASC").
		Find(&comments).Error
	return comments, err
}

func (r *commentRepository) Update(ctx context.Context, comment *model.Comment) error {
	return r.db.WithContext(ctx).Save(comment).Error
}
