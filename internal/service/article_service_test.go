package service

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/andela/ah-olympians/internal/dto"
	"github.com/andela/ah-olympians/internal/model"
	"github.com/andela/ah-olympians/internal/repository"
	"github.com/andela/ah-olympians/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newArticleEnv(t *testing.T, db *gorm.DB, mail *fakeMailer) (ArticleService, *fakeSearch) {
	t.Helper()

	profiles := repository.NewProfileRepository(db)
	articles := repository.NewArticleRepository(db)
	notifications := NewNotificationService(repository.NewNotificationRepository(db), profiles, articles, mail, nil)
	search := &fakeSearch{}
	svc := NewArticleService(articles, profiles, fakeStorage{}, search, notifications, "test")
	return svc, search
}

func TestCreateArticleGeneratesUniqueSlugs(t *testing.T) {
	db := newTestDB(t)
	svc, search := newArticleEnv(t, db, &fakeMailer{})
	author := seedUser(t, db, "jane")

	first, err := svc.CreateArticle(context.Background(), author.ID, dto.CreateArticleRequest{
		Title: "Andela", Body: "once upon a time",
	})
	require.NoError(t, err)
	assert.Equal(t, "andela", first.Slug)

	second, err := svc.CreateArticle(context.Background(), author.ID, dto.CreateArticleRequest{
		Title: "Andela", Body: "a different story",
	})
	require.NoError(t, err)
	assert.Equal(t, "andela-1", second.Slug)

	third, err := svc.CreateArticle(context.Background(), author.ID, dto.CreateArticleRequest{
		Title: "Andela", Body: "yet another story",
	})
	require.NoError(t, err)
	assert.Equal(t, "andela-2", third.Slug)

	assert.Equal(t, []string{"andela", "andela-1", "andela-2"}, search.indexed)
}

func TestCreateArticleRequiresActiveProfile(t *testing.T) {
	db := newTestDB(t)
	svc, _ := newArticleEnv(t, db, &fakeMailer{})

	user := &model.User{Username: "noprofile", Email: "np@example.com", PasswordHash: "x", Active: true}
	require.NoError(t, db.Create(user).Error)

	_, err := svc.CreateArticle(context.Background(), user.ID, dto.CreateArticleRequest{
		Title: "Nope", Body: "body",
	})
	require.Error(t, err)
	assert.Equal(t, http.StatusForbidden, apperror.MapErrorToStatus(err))
}

func TestCreateArticleWithTagsAndImages(t *testing.T) {
	db := newTestDB(t)
	svc, _ := newArticleEnv(t, db, &fakeMailer{})
	author := seedUser(t, db, "jane")

	resp, err := svc.CreateArticle(context.Background(), author.ID, dto.CreateArticleRequest{
		Title:   "Tagged",
		Body:    "body",
		TagList: []string{"go", "testing"},
		Images:  []string{"https://images.test/cover.png"},
	})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"go", "testing"}, resp.TagList)
	require.Len(t, resp.Images, 1)
	assert.Equal(t, "jane", resp.Author)
}

func TestUpdateArticleOwnerOnly(t *testing.T) {
	db := newTestDB(t)
	svc, _ := newArticleEnv(t, db, &fakeMailer{})
	author := seedUser(t, db, "jane")
	intruder := seedUser(t, db, "mallory")

	created, err := svc.CreateArticle(context.Background(), author.ID, dto.CreateArticleRequest{
		Title: "Mine", Body: "body",
	})
	require.NoError(t, err)

	newBody := "edited"
	_, err = svc.UpdateArticle(context.Background(), intruder.ID, created.Slug, dto.UpdateArticleRequest{Body: &newBody})
	require.Error(t, err)
	assert.Equal(t, http.StatusForbidden, apperror.MapErrorToStatus(err))

	updated, err := svc.UpdateArticle(context.Background(), author.ID, created.Slug, dto.UpdateArticleRequest{Body: &newBody})
	require.NoError(t, err)
	assert.Equal(t, "edited", updated.Body)
}

func TestUpdateArticleTitleRegeneratesSlug(t *testing.T) {
	db := newTestDB(t)
	svc, _ := newArticleEnv(t, db, &fakeMailer{})
	author := seedUser(t, db, "jane")

	created, err := svc.CreateArticle(context.Background(), author.ID, dto.CreateArticleRequest{
		Title: "Old Title", Body: "body",
	})
	require.NoError(t, err)

	newTitle := "Brand New Title"
	updated, err := svc.UpdateArticle(context.Background(), author.ID, created.Slug, dto.UpdateArticleRequest{Title: &newTitle})
	require.NoError(t, err)
	assert.Equal(t, "brand-new-title", updated.Slug)
}

func TestDeleteArticleRemovesFromIndex(t *testing.T) {
	db := newTestDB(t)
	svc, search := newArticleEnv(t, db, &fakeMailer{})
	author := seedUser(t, db, "jane")

	created, err := svc.CreateArticle(context.Background(), author.ID, dto.CreateArticleRequest{
		Title: "Ephemeral", Body: "body",
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteArticle(context.Background(), author.ID, created.Slug))
	assert.Len(t, search.deleted, 1)

	_, err = svc.GetArticle(context.Background(), created.Slug)
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperror.MapErrorToStatus(err))
}

func TestPublishNotifiesFollowers(t *testing.T) {
	db := newTestDB(t)
	mail := &fakeMailer{}
	svc, _ := newArticleEnv(t, db, mail)
	author := seedUser(t, db, "jane")
	follower := seedUser(t, db, "bob")
	setNotifyPrefs(t, db, follower.ID, true, true)

	profiles := repository.NewProfileRepository(db)
	require.NoError(t, profiles.Follow(context.Background(), follower.ID, author.ID))

	created, err := svc.CreateArticle(context.Background(), author.ID, dto.CreateArticleRequest{
		Title: "Breaking News", Body: "body",
	})
	require.NoError(t, err)

	var notifications []model.Notification
	require.NoError(t, db.Where("user_id = ?", follower.ID).Find(&notifications).Error)
	require.Len(t, notifications, 1)
	assert.Equal(t, created.Slug, notifications[0].Slug)
	assert.True(t, strings.Contains(notifications[0].Message, "jane"))

	require.Len(t, mail.sent, 1)
	assert.Equal(t, []string{"bob@example.com"}, mail.sent[0].To)
}

func TestPublishSkipsOptedOutFollowers(t *testing.T) {
	db := newTestDB(t)
	mail := &fakeMailer{}
	svc, _ := newArticleEnv(t, db, mail)
	author := seedUser(t, db, "jane")
	follower := seedUser(t, db, "bob")
	setNotifyPrefs(t, db, follower.ID, false, false)

	profiles := repository.NewProfileRepository(db)
	require.NoError(t, profiles.Follow(context.Background(), follower.ID, author.ID))

	_, err := svc.CreateArticle(context.Background(), author.ID, dto.CreateArticleRequest{
		Title: "Quiet News", Body: "body",
	})
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&model.Notification{}).Count(&count).Error)
	assert.Zero(t, count)
	assert.Empty(t, mail.sent)
}

func TestSearchRequiresQueryOrTag(t *testing.T) {
	db := newTestDB(t)
	svc, _ := newArticleEnv(t, db, &fakeMailer{})

	_, err := svc.Search(context.Background(), dto.SearchFilter{Query: "  "})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperror.MapErrorToStatus(err))
}

func TestSearchReportsEmptyResults(t *testing.T) {
	db := newTestDB(t)
	svc, search := newArticleEnv(t, db, &fakeMailer{})

	_, err := svc.Search(context.Background(), dto.SearchFilter{Query: "nothing"})
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperror.MapErrorToStatus(err))

	search.hits = []dto.ArticleSearchHit{{Title: "Hit", Slug: "hit"}}
	hits, err := svc.Search(context.Background(), dto.SearchFilter{Query: "hit"})
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "hit", hits[0].Slug)
}
