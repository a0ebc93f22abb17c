package service

import (
	"context"
	"io"
	"testing"

	"github.com/andela/ah-olympians/internal/dto"
	"github.com/andela/ah-olympians/internal/model"
	"github.com/andela/ah-olympians/pkg/social"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.EmailVerification{},
		&model.PasswordReset{},
		&model.SocialIdentity{},
		&model.Profile{},
		&model.Follow{},
		&model.Notification{},
		&model.Article{},
		&model.Tag{},
		&model.ArticleImage{},
		&model.ArticleLike{},
		&model.Rate{},
		&model.ArticleFavorite{},
		&model.ArticleBookmark{},
		&model.ArticleReport{},
		&model.Comment{},
		&model.CommentLike{},
	))

	return db
}

// seedUser creates an active user with an active profile.
func seedUser(t *testing.T, db *gorm.DB, username string) *model.User {
	t.Helper()

	user := &model.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "irrelevant",
		Active:       true,
	}
	require.NoError(t, db.Create(user).Error)

	profile := &model.Profile{
		UserID: user.ID,
		Bio:    "test bio",
		Active: true,
	}
	require.NoError(t, db.Create(profile).Error)

	return user
}

// setNotifyPrefs writes preference columns directly; gorm skips
// zero-value bools on insert because the columns carry defaults.
func setNotifyPrefs(t *testing.T, db *gorm.DB, userID any, emailNotify, appNotify bool) {
	t.Helper()

	require.NoError(t, db.Model(&model.Profile{}).
		Where("user_id = ?", userID).
		Updates(map[string]any{"email_notify": emailNotify, "app_notify": appNotify}).Error)
}

type sentMail struct {
	To      []string
	Subject string
	Body    string
}

type fakeMailer struct {
	sent []sentMail
}

func (m *fakeMailer) Send(to []string, subject, body string) error {
	m.sent = append(m.sent, sentMail{To: to, Subject: subject, Body: body})
	return nil
}

type fakeStorage struct{}

func (fakeStorage) UploadImage(ctx context.Context, file io.Reader, folder, fileName string) (string, error) {
	return "https://images.test/" + folder + "/" + fileName, nil
}

func (fakeStorage) DeleteImage(ctx context.Context, fileURL string) error {
	return nil
}

type fakeSearch struct {
	indexed []string
	deleted []string
	hits    []dto.ArticleSearchHit
}

func (s *fakeSearch) IndexArticle(article *model.Article) error {
	s.indexed = append(s.indexed, article.Slug)
	return nil
}

func (s *fakeSearch) DeleteArticle(id string) error {
	s.deleted = append(s.deleted, id)
	return nil
}

func (s *fakeSearch) SearchArticles(filter dto.SearchFilter) ([]dto.ArticleSearchHit, error) {
	return s.hits, nil
}

type fakeVerifier struct {
	identity *social.Identity
	err      error
}

func (v *fakeVerifier) Verify(ctx context.Context, provider, accessToken, accessTokenSecret string) (*social.Identity, error) {
	if v.err != nil {
		return nil, v.err
	}
	return v.identity, nil
}
