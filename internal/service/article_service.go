package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/andela/ah-olympians/internal/dto"
	"github.com/andela/ah-olympians/internal/model"
	"github.com/andela/ah-olympians/internal/repository"
	"github.com/andela/ah-olympians/pkg/apperror"
	"github.com/andela/ah-olympians/pkg/storage"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type ArticleService interface {
	CreateArticle(ctx context.Context, userID uuid.UUID, req dto.CreateArticleRequest) (*dto.ArticleResponse, error)
	ListArticles(ctx context.Context) ([]dto.ArticleResponse, error)
	GetArticle(ctx context.Context, slug string) (*dto.ArticleResponse, error)
	UpdateArticle(ctx context.Context, userID uuid.UUID, slug string, req dto.UpdateArticleRequest) (*dto.ArticleResponse, error)
	DeleteArticle(ctx context.Context, userID uuid.UUID, slug string) error
	UploadImage(ctx context.Context, userID uuid.UUID, slug string, file io.Reader, fileName, description string) (*dto.ImageResponse, error)
	Search(ctx context.Context, filter dto.SearchFilter) ([]dto.ArticleSearchHit, error)
}

type articleService struct {
	articles      repository.ArticleRepository
	profiles      repository.ProfileRepository
	images        storage.ImageStorage
	search        SearchService
	notifications NotificationService
	folder        string
}

func NewArticleService(articles repository.ArticleRepository, profiles repository.ProfileRepository, images storage.ImageStorage, search SearchService, notifications NotificationService, folder string) ArticleService {
	return &articleService{
		articles:      articles,
		profiles:      profiles,
		images:        images,
		search:        search,
		notifications: notifications,
		folder:        folder,
	}
}

func (s *articleService) CreateArticle(ctx context.Context, userID uuid.UUID, req dto.CreateArticleRequest) (*dto.ArticleResponse, error) {
	profile, err := s.requireActiveProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	articleSlug, err := s.uniqueSlug(ctx, req.Title)
	if err != nil {
		return nil, err
	}

	article := &model.Article{
		AuthorID:    userID,
		Title:       req.Title,
		Slug:        articleSlug,
		Description: req.Description,
		Body:        req.Body,
	}

	if err := s.articles.Create(ctx, article); err != nil {
		return nil, err
	}

	if len(req.TagList) > 0 {
		if err := s.articles.ReplaceTags(ctx, article, req.TagList); err != nil {
			return nil, err
		}
	}

	for _, url := range req.Images {
		image := &model.ArticleImage{
			ArticleID: article.ID,
			URL:       url,
		}
		if err := s.articles.AddImage(ctx, image); err != nil {
			return nil, err
		}
	}

	article, err = s.articles.FindBySlug(ctx, articleSlug)
	if err != nil {
		return nil, err
	}

	s.indexArticle(article)

	var username string
	if profile.User != nil {
		username = profile.User.Username
	}
	s.notifications.NotifyFollowers(ctx, userID,
		fmt.Sprintf("%s published a new article: %s", username, article.Title),
		article.Slug)

	resp := articleResponse(article)
	return &resp, nil
}

func (s *articleService) ListArticles(ctx context.Context) ([]dto.ArticleResponse, error) {
	articles, err := s.articles.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.ArticleResponse, 0, len(articles))
	for i := range articles {
		responses = append(responses, articleResponse(&articles[i]))
	}
	return responses, nil
}

func (s *articleService) GetArticle(ctx context.Context, articleSlug string) (*dto.ArticleResponse, error) {
	article, err := s.findArticle(ctx, articleSlug)
	if err != nil {
		return nil, err
	}

	resp := articleResponse(article)
	return &resp, nil
}

func (s *articleService) UpdateArticle(ctx context.Context, userID uuid.UUID, articleSlug string, req dto.UpdateArticleRequest) (*dto.ArticleResponse, error) {
	article, err := s.findArticle(ctx, articleSlug)
	if err != nil {
		return nil, err
	}

	if article.AuthorID != userID {
		return nil, apperror.Forbidden("you are not allowed to edit this article")
	}

	if req.Title != nil && *req.Title != article.Title {
		article.Title = *req.Title
		newSlug, err := s.uniqueSlug(ctx, *req.Title)
		if err != nil {
			return nil, err
		}
		article.Slug = newSlug
	}
	if req.Description != nil {
		article.Description = *req.Description
	}
	if req.Body != nil {
		article.Body = *req.Body
	}

	if err := s.articles.Update(ctx, article); err != nil {
		return nil, err
	}

	if req.TagList != nil {
		if err := s.articles.ReplaceTags(ctx, article, req.TagList); err != nil {
			return nil, err
		}
	}

	s.indexArticle(article)

	resp := articleResponse(article)
	return &resp, nil
}

func (s *articleService) DeleteArticle(ctx context.Context, userID uuid.UUID, articleSlug string) error {
	article, err := s.findArticle(ctx, articleSlug)
	if err != nil {
		return err
	}

	if article.AuthorID != userID {
		return apperror.Forbidden("you are not allowed to delete this article")
	}

	if err := s.articles.Delete(ctx, article.ID); err != nil {
		return err
	}

	if err := s.search.DeleteArticle(article.ID.String()); err != nil {
		log.Warn().Err(err).Str("article", article.Slug).Msg("failed to remove article from search index")
	}

	return nil
}

func (s *articleService) UploadImage(ctx context.Context, userID uuid.UUID, articleSlug string, file io.Reader, fileName, description string) (*dto.ImageResponse, error) {
	article, err := s.findArticle(ctx, articleSlug)
	if err != nil {
		return nil, err
	}

	if article.AuthorID != userID {
		return nil, apperror.Forbidden("you are not allowed to edit this article")
	}

	url, err := s.images.UploadImage(ctx, file, s.folder, fileName)
	if err != nil {
		return nil, err
	}

	image := &model.ArticleImage{
		ArticleID:   article.ID,
		URL:         url,
		Description: description,
	}
	if err := s.articles.AddImage(ctx, image); err != nil {
		return nil, err
	}

	return &dto.ImageResponse{URL: image.URL, Description: image.Description}, nil
}

func (s *articleService) Search(ctx context.Context, filter dto.SearchFilter) ([]dto.ArticleSearchHit, error) {
	if strings.TrimSpace(filter.Query) == "" && filter.Tag == "" {
		return nil, apperror.BadRequest("a search query or tag is required")
	}

	hits, err := s.search.SearchArticles(filter)
	if err != nil {
		return nil, err
	}
	if len(hits) == 0 {
		return nil, apperror.NotFound("no articles matched your search")
	}
	return hits, nil
}

// uniqueSlug appends an incrementing suffix until the slug is free. A
// concurrent insert can still collide, which the unique index turns
// into an error instead of a duplicate.
func (s *articleService) uniqueSlug(ctx context.Context, title string) (string, error) {
	base := slug.Make(title)
	candidate := base
	for i := 1; ; i++ {
		exists, err := s.articles.SlugExists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
}

func (s *articleService) requireActiveProfile(ctx context.Context, userID uuid.UUID) (*model.Profile, error) {
	profile, err := s.profiles.FindActiveByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.Forbidden("you need an active profile to do this")
		}
		return nil, err
	}
	return profile, nil
}

func (s *articleService) findArticle(ctx context.Context, articleSlug string) (*model.Article, error) {
	article, err := s.articles.FindBySlug(ctx, articleSlug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("article not found")
		}
		return nil, err
	}
	return article, nil
}

func (s *articleService) indexArticle(article *model.Article) {
	if err := s.search.IndexArticle(article); err != nil {
		log.Warn().Err(err).Str("article", article.Slug).Msg("failed to index article")
	}
}

func articleResponse(article *model.Article) dto.ArticleResponse {
	images := make([]dto.ImageResponse, 0, len(article.Images))
	for _, img := range article.Images {
		images = append(images, dto.ImageResponse{URL: img.URL, Description: img.Description})
	}

	return dto.ArticleResponse{
		ID:          article.ID,
		Title:       article.Title,
		Slug:        article.Slug,
		Description: article.Description,
		Body:        article.Body,
		TagList:     article.TagNames(),
		Author:      article.Author.Username,
		Images:      images,
		CreatedAt:   article.CreatedAt,
		UpdatedAt:   article.UpdatedAt,
	}
}
