package repository

import (
	"context"

	"github.com/andela/ah-olympians/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EngagementRepository interface {
	// ToggleArticleVote creates a signed vote, or removes any existing
	// vote for (user, article) regardless of direction.
	ToggleArticleVote(ctx context.Context, userID, articleID uuid.UUID, value int) (ToggleOutcome, error)
	// ToggleCommentVote creates a vote, removes a matching one, or
	// switches a mismatched one in place.
	ToggleCommentVote(ctx context.Context, profileID, commentID uuid.UUID, voteType string) (ToggleOutcome, error)
	CountCommentVotes(ctx context.Context, commentID uuid.UUID, voteType string) (int64, error)

	FindRating(ctx context.Context, userID, articleID uuid.UUID) (*model.Rate, error)
	SaveRating(ctx context.Context, rate *model.Rate) error
	DeleteRating(ctx context.Context, rate *model.Rate) error
	RatingStats(ctx context.Context, articleID uuid.UUID) (avg float64, count int64, err error)

	IsFavorited(ctx context.Context, userID, articleID uuid.UUID) (bool, error)
	Favorite(ctx context.Context, userID, articleID uuid.UUID) error
	Unfavorite(ctx context.Context, userID, articleID uuid.UUID) error

	IsBookmarked(ctx context.Context, userID, articleID uuid.UUID) (bool, error)
	Bookmark(ctx context.Context, userID, articleID uuid.UUID) error
	Unbookmark(ctx context.Context, userID, articleID uuid.UUID) error
	FindBookmarks(ctx context.Context, userID uuid.UUID) ([]model.ArticleBookmark, error)

	CountReports(ctx context.Context, readerID, articleID uuid.UUID) (int64, error)
	SaveReport(ctx context.Context, report *model.ArticleReport) error
	FindReportsByArticle(ctx context.Context, articleID uuid.UUID) ([]model.ArticleReport, error)
	FindAllReports(ctx context.Context) ([]model.ArticleReport, error)
}

type engagementRepository struct {
	db *gorm.DB
}

func NewEngagementRepository(db *gorm.DB) EngagementRepository {
	return &engagementRepository{db: db}
}

func (r *engagementRepository) ToggleArticleVote(ctx context.Context, userID, articleID uuid.UUID, value int) (ToggleOutcome, error) {
	fresh := &model.ArticleLike{
		UserID:    userID,
		ArticleID: articleID,
		Value:     value,
	}

	// Any existing vote toggles off, even when the direction differs.
	outcome, _, err := toggleAssociation(ctx, r.db,
		"user_id = ? AND article_id = ?", []any{userID, articleID},
		fresh,
		func(*model.ArticleLike) bool { return true },
		func(*model.ArticleLike) {},
	)
	return outcome, err
}

func (r *engagementRepository) ToggleCommentVote(ctx context.Context, profileID, commentID uuid.UUID, voteType string) (ToggleOutcome, error) {
	fresh := &model.CommentLike{
		ProfileID: profileID,
		CommentID: commentID,
		Type:      voteType,
	}

	outcome, _, err := toggleAssociation(ctx, r.db,
		"profile_id = ? AND comment_id = ?", []any{profileID, commentID},
		fresh,
		func(existing *model.CommentLike) bool { return existing.Type == voteType },
		func(existing *model.CommentLike) { existing.Type = voteType },
	)
	return outcome, err
}

func (r *engagementRepository) CountCommentVotes(ctx context.Context, commentID uuid.UUID, voteType string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.CommentLike{}).
		Where("comment_id = ? AND type = ?", commentID, voteType).
		Count(&count).Error
	return count, err
}

func (r *engagementRepository) FindRating(ctx context.Context, userID, articleID uuid.UUID) (*model.Rate, error) {
	var rate model.Rate
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND article_id = ?", userID, articleID).
		First(&rate).Error; err != nil {
		return nil, err
	}

	return &rate, nil
}

func (r *engagementRepository) SaveRating(ctx context.Context, rate *model.Rate) error {
	return r.db.WithContext(ctx).Save(rate).Error
}

func (r *engagementRepository) DeleteRating(ctx context.Context, rate *model.Rate) error {
	return r.db.WithContext(ctx).Delete(rate).Error
}

func (r *engagementRepository) RatingStats(ctx context.Context, articleID uuid.UUID) (float64, int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Rate{}).
		Where("article_id = ?", articleID).
		Count(&count).Error
	if err != nil {
		return 0, 0, err
	}

	if count == 0 {
		return 0, 0, nil
	}

	var avg float64
	err = r.db.WithContext(ctx).
		Model(&model.Rate{}).
		Select("AVG(rating)").
		Where("article_id = ?", articleID).
		Scan(&avg).Error
	return avg, count, err
}

func (r *engagementRepository) IsFavorited(ctx context.Context, userID, articleID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.ArticleFavorite{}).
		Where("user_id = ? AND article_id = ?", userID, articleID).
		Count(&count).Error
	return count > 0, err
}

func (r *engagementRepository) Favorite(ctx context.Context, userID, articleID uuid.UUID) error {
	fav := model.ArticleFavorite{
		UserID:    userID,
		ArticleID: articleID,
	}
	return r.db.WithContext(ctx).Create(&fav).Error
}

func (r *engagementRepository) Unfavorite(ctx context.Context, userID, articleID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND article_id = ?", userID, articleID).
		Delete(&model.ArticleFavorite{}).Error
}

func (r *engagementRepository) IsBookmarked(ctx context.Context, userID, articleID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.ArticleBookmark{}).
		Where("user_id = ? AND article_id = ?", userID, articleID).
		Count(&count).Error
	return count > 0, err
}

func (r *engagementRepository) Bookmark(ctx context.Context, userID, articleID uuid.UUID) error {
	bookmark := model.ArticleBookmark{
		UserID:    userID,
		ArticleID: articleID,
	}
	return r.db.WithContext(ctx).Create(&bookmark).Error
}

func (r *engagementRepository) Unbookmark(ctx context.Context, userID, articleID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND article_id = ?", userID, articleID).
		Delete(&model.ArticleBookmark{}).Error
}

func (r *engagementRepository) FindBookmarks(ctx context.Context, userID uuid.UUID) ([]model.ArticleBookmark, error) {
	var bookmarks []model.ArticleBookmark
	err := r.db.WithContext(ctx).
		Preload("Article").
		Preload("Article.Author").
		Preload("Article.Tags").
		Where("user_id = ?", userID).
		Find(&bookmarks).Error
	return bookmarks, err
}

func (r *engagementRepository) CountReports(ctx context.Context, readerID, articleID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.ArticleReport{}).
		Where("reader_id = ? AND article_id = ?", readerID, articleID).
		Count(&count).Error
	return count, err
}

func (r *engagementRepository) SaveReport(ctx context.Context, report *model.ArticleReport) error {
	return r.db.WithContext(ctx).Create(report).Error
}

func (r *engagementRepository) FindReportsByArticle(ctx context.Context, articleID uuid.UUID) ([]model.ArticleReport, error) {
	var reports []model.ArticleReport
	err := r.db.WithContext(ctx).
		Where("article_id = ?", articleID).
		Find(&reports).Error
	return reports, err
}

func (r *engagementRepository) FindAllReports(ctx context.Context) ([]model.ArticleReport, error) {
	var reports []model.ArticleReport
	err := r.db.WithContext(ctx).Find(&reports).Error
	return reports, err
}
