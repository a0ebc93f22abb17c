package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/andela/ah-olympians/internal/dto"
	"github.com/andela/ah-olympians/internal/model"
	"github.com/andela/ah-olympians/internal/repository"
	"github.com/andela/ah-olympians/pkg/apperror"
	"github.com/andela/ah-olympians/pkg/mailer"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

const (
	minRating = 1
	maxRating = 5

	reportAction = "report_article"
)

type EngagementService interface {
	// VoteArticle casts a signed vote (+1 like, -1 dislike) or undoes
	// any existing vote. The returned flag is true when a vote was
	// created, false when one was removed.
	VoteArticle(ctx context.Context, userID uuid.UUID, slug string, value int) (string, bool, error)

	RateArticle(ctx context.Context, userID uuid.UUID, slug string, rating int) (*dto.RatingResponse, error)
	GetRating(ctx context.Context, userID uuid.UUID, slug string) (*dto.RatingResponse, error)
	DeleteRating(ctx context.Context, userID uuid.UUID, slug string) (*dto.RatingResponse, error)

	FavoriteArticle(ctx context.Context, userID uuid.UUID, slug string) (string, error)
	UnfavoriteArticle(ctx context.Context, userID uuid.UUID, slug string) (string, error)

	BookmarkArticle(ctx context.Context, userID uuid.UUID, slug string) (string, error)
	UnbookmarkArticle(ctx context.Context, userID uuid.UUID, slug string) (string, error)
	ListBookmarks(ctx context.Context, userID uuid.UUID) ([]dto.ArticleResponse, error)

	ReportArticle(ctx context.Context, userID uuid.UUID, slug, message string) (*dto.ReportResponse, error)
	ListReports(ctx context.Context, userID uuid.UUID) ([]dto.ReportResponse, error)
	ListArticleReports(ctx context.Context, userID uuid.UUID, slug string) ([]dto.ReportResponse, error)
}

type engagementService struct {
	engagements  repository.EngagementRepository
	articles     repository.ArticleRepository
	users        repository.UserRepository
	mail         mailer.Mailer
	redisClient  *redis.Client
	adminEmail   string
	reportWindow time.Duration
}

func NewEngagementService(engagements repository.EngagementRepository, articles repository.ArticleRepository, users repository.UserRepository, mail mailer.Mailer, redisClient *redis.Client, adminEmail string, reportWindow time.Duration) EngagementService {
	return &engagementService{
		engagements:  engagements,
		articles:     articles,
		users:        users,
		mail:         mail,
		redisClient:  redisClient,
		adminEmail:   adminEmail,
		reportWindow: reportWindow,
	}
}

func (s *engagementService) VoteArticle(ctx context.Context, userID uuid.UUID, slug string, value int) (string, bool, error) {
	article, err := s.findArticle(ctx, slug)
	if err != nil {
		return "", false, err
	}

	outcome, err := s.engagements.ToggleArticleVote(ctx, userID, article.ID, value)
	if err != nil {
		return "", false, err
	}

	word := "like"
	if value < 0 {
		word = "dislike"
	}

	if outcome == repository.ToggleCreated {
		return fmt.Sprintf("Successfully %sd: %s article", word, slug), true, nil
	}
	return fmt.Sprintf("Successfully undid %s on %s article", word, slug), false, nil
}

func (s *engagementService) RateArticle(ctx context.Context, userID uuid.UUID, slug string, rating int) (*dto.RatingResponse, error) {
	article, err := s.findArticle(ctx, slug)
	if err != nil {
		return nil, err
	}

	if article.AuthorID == userID {
		return nil, apperror.BadRequest("you cannot rate your own article")
	}

	if rating < minRating {
		rating = minRating
	} else if rating > maxRating {
		rating = maxRating
	}

	rate, err := s.engagements.FindRating(ctx, userID, article.ID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		rate = &model.Rate{
			UserID:    userID,
			ArticleID: article.ID,
		}
	}

	rate.Rating = rating
	if err := s.engagements.SaveRating(ctx, rate); err != nil {
		return nil, err
	}

	return s.ratingResponse(ctx, article, rating)
}

func (s *engagementService) GetRating(ctx context.Context, userID uuid.UUID, slug string) (*dto.RatingResponse, error) {
	article, err := s.findArticle(ctx, slug)
	if err != nil {
		return nil, err
	}

	var yourRating any = "not rated"
	if userID != uuid.Nil {
		if rate, err := s.engagements.FindRating(ctx, userID, article.ID); err == nil {
			yourRating = rate.Rating
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	avg, count, err := s.engagements.RatingStats(ctx, article.ID)
	if err != nil {
		return nil, err
	}

	return &dto.RatingResponse{
		Article:       article.Slug,
		AverageRating: avg,
		RateCount:     count,
		YourRating:    yourRating,
	}, nil
}

func (s *engagementService) DeleteRating(ctx context.Context, userID uuid.UUID, slug string) (*dto.RatingResponse, error) {
	article, err := s.findArticle(ctx, slug)
	if err != nil {
		return nil, err
	}

	rate, err := s.engagements.FindRating(ctx, userID, article.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("you have not rated this article")
		}
		return nil, err
	}

	if err := s.engagements.DeleteRating(ctx, rate); err != nil {
		return nil, err
	}

	avg, count, err := s.engagements.RatingStats(ctx, article.ID)
	if err != nil {
		return nil, err
	}

	return &dto.RatingResponse{
		Article:       article.Slug,
		AverageRating: avg,
		RateCount:     count,
		YourRating:    "not rated",
	}, nil
}

func (s *engagementService) ratingResponse(ctx context.Context, article *model.Article, yourRating int) (*dto.RatingResponse, error) {
	avg, count, err := s.engagements.RatingStats(ctx, article.ID)
	if err != nil {
		return nil, err
	}

	return &dto.RatingResponse{
		Article:       article.Slug,
		AverageRating: avg,
		RateCount:     count,
		YourRating:    yourRating,
	}, nil
}

func (s *engagementService) FavoriteArticle(ctx context.Context, userID uuid.UUID, slug string) (string, error) {
	article, err := s.findArticle(ctx, slug)
	if err != nil {
		return "", err
	}

	favorited, err := s.engagements.IsFavorited(ctx, userID, article.ID)
	if err != nil {
		return "", err
	}
	if favorited {
		return "", apperror.Conflict("you have already favorited this article")
	}

	if err := s.engagements.Favorite(ctx, userID, article.ID); err != nil {
		return "", err
	}

	return fmt.Sprintf("article %s favorited", slug), nil
}

func (s *engagementService) UnfavoriteArticle(ctx context.Context, userID uuid.UUID, slug string) (string, error) {
	article, err := s.findArticle(ctx, slug)
	if err != nil {
		return "", err
	}

	favorited, err := s.engagements.IsFavorited(ctx, userID, article.ID)
	if err != nil {
		return "", err
	}
	if !favorited {
		return "", apperror.BadRequest("you have not favorited this article")
	}

	if err := s.engagements.Unfavorite(ctx, userID, article.ID); err != nil {
		return "", err
	}

	return fmt.Sprintf("article %s unfavorited", slug), nil
}

func (s *engagementService) BookmarkArticle(ctx context.Context, userID uuid.UUID, slug string) (string, error) {
	article, err := s.findArticle(ctx, slug)
	if err != nil {
		return "", err
	}

	bookmarked, err := s.engagements.IsBookmarked(ctx, userID, article.ID)
	if err != nil {
		return "", err
	}
	if bookmarked {
		return "", apperror.Conflict("you have already bookmarked this article")
	}

	if err := s.engagements.Bookmark(ctx, userID, article.ID); err != nil {
		return "", err
	}

	return fmt.Sprintf("article %s bookmarked", slug), nil
}

func (s *engagementService) UnbookmarkArticle(ctx context.Context, userID uuid.UUID, slug string) (string, error) {
	article, err := s.findArticle(ctx, slug)
	if err != nil {
		return "", err
	}

	bookmarked, err := s.engagements.IsBookmarked(ctx, userID, article.ID)
	if err != nil {
		return "", err
	}
	if !bookmarked {
		return "", apperror.BadRequest("you have not bookmarked this article")
	}

	if err := s.engagements.Unbookmark(ctx, userID, article.ID); err != nil {
		return "", err
	}

	return fmt.Sprintf("article %s removed from bookmarks", slug), nil
}

func (s *engagementService) ListBookmarks(ctx context.Context, userID uuid.UUID) ([]dto.ArticleResponse, error) {
	bookmarks, err := s.engagements.FindBookmarks(ctx, userID)
	if err != nil {
		return nil, err
	}

	articles := make([]dto.ArticleResponse, 0, len(bookmarks))
	for i := range bookmarks {
		articles = append(articles, articleResponse(&bookmarks[i].Article))
	}
	return articles, nil
}

func (s *engagementService) ReportArticle(ctx context.Context, userID uuid.UUID, slug, message string) (*dto.ReportResponse, error) {
	article, err := s.findArticle(ctx, slug)
	if err != nil {
		return nil, err
	}

	if article.AuthorID == userID {
		return nil, apperror.BadRequest("you cannot report your own article")
	}

	count, err := s.engagements.CountReports(ctx, userID, article.ID)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, apperror.Conflict("you have already reported this article")
	}

	allowed, err := CheckAndSetRateLimit(ctx, s.redisClient, userID, reportAction, s.reportWindow)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, apperror.New(http.StatusTooManyRequests, "you are reporting too often, try again later", apperror.ErrInvalidInput)
	}

	report := &model.ArticleReport{
		ReaderID:  userID,
		ArticleID: article.ID,
		Message:   message,
	}
	if err := s.engagements.SaveReport(ctx, report); err != nil {
		return nil, err
	}

	reader, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	body := fmt.Sprintf("Article %q was reported by %s:\n\n%s", article.Title, reader.Username, message)
	if err := s.mail.Send([]string{s.adminEmail}, "Article Report", body); err != nil {
		log.Warn().Err(err).Str("article", slug).Msg("report email not sent")
	}

	return &dto.ReportResponse{
		Article: article.Slug,
		Reader:  reader.Username,
		Message: message,
	}, nil
}

func (s *engagementService) ListReports(ctx context.Context, userID uuid.UUID) ([]dto.ReportResponse, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.Superuser {
		return nil, apperror.Forbidden("only administrators can view reports")
	}

	reports, err := s.engagements.FindAllReports(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.ReportResponse, 0, len(reports))
	for _, report := range reports {
		resp := dto.ReportResponse{Message: report.Message}
		if article, err := s.articles.FindByID(ctx, report.ArticleID); err == nil {
			resp.Article = article.Slug
		}
		if reader, err := s.users.FindByID(ctx, report.ReaderID); err == nil {
			resp.Reader = reader.Username
		}
		responses = append(responses, resp)
	}
	return responses, nil
}

func (s *engagementService) ListArticleReports(ctx context.Context, userID uuid.UUID, slug string) ([]dto.ReportResponse, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.Superuser {
		return nil, apperror.Forbidden("only administrators can view reports")
	}

	article, err := s.findArticle(ctx, slug)
	if err != nil {
		return nil, err
	}

	reports, err := s.engagements.FindReportsByArticle(ctx, article.ID)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.ReportResponse, 0, len(reports))
	for _, report := range reports {
		resp := dto.ReportResponse{
			Article: article.Slug,
			Message: report.Message,
		}
		if reader, err := s.users.FindByID(ctx, report.ReaderID); err == nil {
			resp.Reader = reader.Username
		}
		responses = append(responses, resp)
	}
	return responses, nil
}

func (s *engagementService) findArticle(ctx context.Context, slug string) (*model.Article, error) {
	article, err := s.articles.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("article not found")
		}
		return nil, err
	}
	return article, nil
}
