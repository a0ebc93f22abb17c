package repository

import (
	"context"

	"github.com/andela/ah-olympians/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ArticleRepository interface {
	Create(ctx context.Context, article *model.Article) error
	FindBySlug(ctx context.Context, slug string) (*model.Article, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Article, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	FindAll(ctx context.Context) ([]model.Article, error)
	Update(ctx context.Context, article *model.Article) error
	Delete(ctx context.Context, id uuid.UUID) error

	ReplaceTags(ctx context.Context, article *model.Article, names []string) error
	AddImage(ctx context.Context, image *model.ArticleImage) error
	Favoriters(ctx context.Context, articleID uuid.UUID) ([]model.User, error)
}

type articleRepository struct {
	db *gorm.DB
}

func NewArticleRepository(db *gorm.DB) ArticleRepository {
	return &articleRepository{db: db}
}

func (r *articleRepository) Create(ctx context.Context, article *model.Article) error {
	return r.db.WithContext(ctx).Create(article).Error
}

func (r *articleRepository) FindBySlug(ctx context.Context, slug string) (*model.Article, error) {
	var article model.Article
	if err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Tags").
		Preload("Images").
		Where("slug = ?", slug).
		First(&article).Error; err != nil {
		return nil, err
	}

	return &article, nil
}

func (r *articleRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Article, error) {
	var article model.Article
	if err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Tags").
		Preload("Images").
		Where("id = ?", id).
		First(&article).Error; err != nil {
		return nil, err
	}

	return &article, nil
}

func (r *articleRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Article{}).
		Where("slug = ?", slug).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *articleRepository) FindAll(ctx context.Context) ([]model.Article, error) {
	var articles []model.Article
	if err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Tags").
		Preload("Images").
		Order("created_at DESC").
		Find(&articles).Error; err != nil {
		return nil, err
	}

	return articles, nil
}

func (r *articleRepository) Update(ctx context.Context, article *model.Article) error {
	return r.db.WithContext(ctx).Save(article).Error
}

func (r *articleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Article{}, "id = ?", id).Error
}

// ReplaceTags resolves tag names to rows (creating missing ones) and
// swaps the article's association to exactly that set.
func (r *articleRepository) ReplaceTags(ctx context.Context, article *model.Article, names []string) error {
	tags := make([]model.Tag, 0, len(names))
	for _, name := range names {
		var tag model.Tag
		err := r.db.WithContext(ctx).
			Where(model.Tag{Name: name}).
			FirstOrCreate(&tag).Error
		if err != nil {
			return err
		}
		tags = append(tags, tag)
	}

	if err := r.db.WithContext(ctx).
		Model(article).
		Association("Tags").
		Replace(tags); err != nil {
		return err
	}

	article.Tags = tags
	return nil
}

func (r *articleRepository) AddImage(ctx context.Context, image *model.ArticleImage) error {
	return r.db.WithContext(ctx).Create(image).Error
}

// Favoriters returns the users who favorited the article, for comment
// notification fan-out.
func (r *articleRepository) Favoriters(ctx context.Context, articleID uuid.UUID) ([]model.User, error) {
	var users []model.User
	err := r.db.WithContext(ctx).
		Joins("JOIN article_favorites ON article_favorites.user_id = users.id").
		Where("article_favorites.article_id = ?", articleID).
		Find(&users).Error
	return users, err
}
