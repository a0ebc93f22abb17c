package service

import (
	"encoding/json"
	"fmt"
	"html"
	"strings"

	"github.com/andela/ah-olympians/internal/dto"
	"github.com/andela/ah-olympians/internal/model"
	"github.com/meilisearch/meilisearch-go"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog/log"
)

const articlesIndex = "articles"

type SearchService interface {
	IndexArticle(article *model.Article) error
	DeleteArticle(id string) error
	SearchArticles(filter dto.SearchFilter) ([]dto.ArticleSearchHit, error)
}

type searchService struct {
	client    meilisearch.ServiceManager
	sanitizer *bluemonday.Policy
}

func NewSearchService(client meilisearch.ServiceManager) SearchService {
	s := &searchService{
		client:    client,
		sanitizer: bluemonday.StrictPolicy(),
	}
	s.initIndex()
	return s
}

func (s *searchService) initIndex() {
	filterable := []any{"tags", "author"}
	if _, err := s.client.Index(articlesIndex).UpdateFilterableAttributes(&filterable); err != nil {
		log.Warn().Err(err).Msg("failed to update articles filterable attributes")
	}

	sortable := []string{"created_at"}
	if _, err := s.client.Index(articlesIndex).UpdateSortableAttributes(&sortable); err != nil {
		log.Warn().Err(err).Msg("failed to update articles sortable attributes")
	}
}

type meiliArticleDoc struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Slug        string   `json:"slug"`
	Description string   `json:"description"`
	Body        string   `json:"body"`
	Tags        []string `json:"tags"`
	Author      string   `json:"author"`
	CreatedAt   int64    `json:"created_at"`
}

func (s *searchService) cleanBodyForIndex(body string) string {
	body = strings.ReplaceAll(body, "</p>", " ")
	body = strings.ReplaceAll(body, "<br>", " ")
	body = strings.ReplaceAll(body, "</div>", " ")

	sanitized := s.sanitizer.Sanitize(body)
	cleanText := html.UnescapeString(sanitized)

	return strings.Join(strings.Fields(cleanText), " ")
}

func (s *searchService) IndexArticle(article *model.Article) error {
	doc := meiliArticleDoc{
		ID:          article.ID.String(),
		Title:       article.Title,
		Slug:        article.Slug,
		Description: article.Description,
		Body:        s.cleanBodyForIndex(article.Body),
		Tags:        article.TagNames(),
		Author:      article.Author.Username,
		CreatedAt:   article.CreatedAt.Unix(),
	}

	primaryKey := "id"
	task, err := s.client.Index(articlesIndex).AddDocuments([]meiliArticleDoc{doc}, &primaryKey)
	if err != nil {
		return err
	}

	log.Debug().Str("article", article.Slug).Int64("task", task.TaskUID).Msg("indexed article")
	return nil
}

func (s *searchService) DeleteArticle(id string) error {
	_, err := s.client.Index(articlesIndex).DeleteDocument(id)
	return err
}

func (s *searchService) SearchArticles(filter dto.SearchFilter) ([]dto.ArticleSearchHit, error) {
	limit := int64(filter.Limit)
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	req := &meilisearch.SearchRequest{
		Limit: limit,
	}
	if filter.Tag != "" {
		req.Filter = fmt.Sprintf("tags = %q", filter.Tag)
	}

	res, err := s.client.Index(articlesIndex).Search(filter.Query, req)
	if err != nil {
		return nil, err
	}

	hits := make([]dto.ArticleSearchHit, 0, len(res.Hits))
	for _, hit := range res.Hits {
		raw, err := json.Marshal(hit)
		if err != nil {
			continue
		}
		var doc meiliArticleDoc
		if err := json.Unmarshal(raw, &doc); err != nil {
			continue
		}
		hits = append(hits, dto.ArticleSearchHit{
			Title:       doc.Title,
			Slug:        doc.Slug,
			Description: doc.Description,
			Tags:        doc.Tags,
			Author:      doc.Author,
		})
	}

	return hits, nil
}
