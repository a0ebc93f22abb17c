package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/andela/ah-olympians/internal/model"
	"github.com/andela/ah-olympians/internal/repository"
	"github.com/andela/ah-olympians/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newCommentEnv(t *testing.T, db *gorm.DB, mail *fakeMailer) CommentService {
	t.Helper()

	profiles := repository.NewProfileRepository(db)
	articles := repository.NewArticleRepository(db)
	notifications := NewNotificationService(repository.NewNotificationRepository(db), profiles, articles, mail, nil)
	return NewCommentService(
		repository.NewCommentRepository(db),
		articles,
		profiles,
		repository.NewEngagementRepository(db),
		notifications,
	)
}

func TestCommentThreadKeepsShapeAfterSoftDelete(t *testing.T) {
	db := newTestDB(t)
	svc := newCommentEnv(t, db, &fakeMailer{})
	author := seedUser(t, db, "jane")
	commenter := seedUser(t, db, "bob")
	replier := seedUser(t, db, "carol")
	seedArticle(t, db, author.ID, "Discussed", "discussed")

	parent, err := svc.CreateComment(context.Background(), commenter.ID, "discussed", "first!")
	require.NoError(t, err)

	reply, err := svc.ReplyComment(context.Background(), replier.ID, "discussed", parent.ID, "welcome")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteComment(context.Background(), commenter.ID, "discussed", parent.ID))

	thread, err := svc.GetThread(context.Background(), "discussed")
	require.NoError(t, err)
	require.Len(t, thread, 1)

	node := thread[0]
	assert.False(t, node.Active)
	assert.Equal(t, "[comment deleted]", node.Body)
	assert.Empty(t, node.Author)
	require.Len(t, node.Subcomments, 1)
	assert.Equal(t, reply.ID, node.Subcomments[0].ID)
	assert.Equal(t, "welcome", node.Subcomments[0].Body)
	assert.Equal(t, "carol", node.Subcomments[0].Author)
}

func TestDeletedCommentNoLongerAddressable(t *testing.T) {
	db := newTestDB(t)
	svc := newCommentEnv(t, db, &fakeMailer{})
	author := seedUser(t, db, "jane")
	commenter := seedUser(t, db, "bob")
	seedArticle(t, db, author.ID, "Discussed", "discussed")

	comment, err := svc.CreateComment(context.Background(), commenter.ID, "discussed", "gone soon")
	require.NoError(t, err)
	require.NoError(t, svc.DeleteComment(context.Background(), commenter.ID, "discussed", comment.ID))

	_, err = svc.GetComment(context.Background(), "discussed", comment.ID)
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperror.MapErrorToStatus(err))

	_, err = svc.UpdateComment(context.Background(), commenter.ID, "discussed", comment.ID, "edit attempt")
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperror.MapErrorToStatus(err))
}

func TestReplyToReplyRejected(t *testing.T) {
	db := newTestDB(t)
	svc := newCommentEnv(t, db, &fakeMailer{})
	author := seedUser(t, db, "jane")
	commenter := seedUser(t, db, "bob")
	seedArticle(t, db, author.ID, "Discussed", "discussed")

	parent, err := svc.CreateComment(context.Background(), commenter.ID, "discussed", "top")
	require.NoError(t, err)

	reply, err := svc.ReplyComment(context.Background(), commenter.ID, "discussed", parent.ID, "nested")
	require.NoError(t, err)

	_, err = svc.ReplyComment(context.Background(), commenter.ID, "discussed", reply.ID, "too deep")
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperror.MapErrorToStatus(err))
}

func TestUpdateCommentAuthorOnly(t *testing.T) {
	db := newTestDB(t)
	svc := newCommentEnv(t, db, &fakeMailer{})
	author := seedUser(t, db, "jane")
	commenter := seedUser(t, db, "bob")
	intruder := seedUser(t, db, "mallory")
	seedArticle(t, db, author.ID, "Discussed", "discussed")

	comment, err := svc.CreateComment(context.Background(), commenter.ID, "discussed", "original")
	require.NoError(t, err)

	_, err = svc.UpdateComment(context.Background(), intruder.ID, "discussed", comment.ID, "hijacked")
	require.Error(t, err)
	assert.Equal(t, http.StatusForbidden, apperror.MapErrorToStatus(err))

	updated, err := svc.UpdateComment(context.Background(), commenter.ID, "discussed", comment.ID, "revised")
	require.NoError(t, err)
	assert.Equal(t, "revised", updated.Body)
}

func TestCommentVoteSwitchesAndRemoves(t *testing.T) {
	db := newTestDB(t)
	svc := newCommentEnv(t, db, &fakeMailer{})
	author := seedUser(t, db, "jane")
	commenter := seedUser(t, db, "bob")
	voter := seedUser(t, db, "carol")
	seedArticle(t, db, author.ID, "Discussed", "discussed")

	comment, err := svc.CreateComment(context.Background(), commenter.ID, "discussed", "vote on me")
	require.NoError(t, err)

	_, outcome, err := svc.VoteComment(context.Background(), voter.ID, "discussed", comment.ID, model.CommentVoteLike)
	require.NoError(t, err)
	assert.Equal(t, repository.ToggleCreated, outcome)

	// A mismatched vote switches in place instead of stacking.
	_, outcome, err = svc.VoteComment(context.Background(), voter.ID, "discussed", comment.ID, model.CommentVoteDislike)
	require.NoError(t, err)
	assert.Equal(t, repository.ToggleSwitched, outcome)

	var count int64
	require.NoError(t, db.Model(&model.CommentLike{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	_, outcome, err = svc.VoteComment(context.Background(), voter.ID, "discussed", comment.ID, model.CommentVoteDislike)
	require.NoError(t, err)
	assert.Equal(t, repository.ToggleRemoved, outcome)

	require.NoError(t, db.Model(&model.CommentLike{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCommentNotifiesFavoriters(t *testing.T) {
	db := newTestDB(t)
	mail := &fakeMailer{}
	svc := newCommentEnv(t, db, mail)
	author := seedUser(t, db, "jane")
	favoriter := seedUser(t, db, "bob")
	commenter := seedUser(t, db, "carol")
	setNotifyPrefs(t, db, favoriter.ID, true, true)
	article := seedArticle(t, db, author.ID, "Loved", "loved")

	engagements := repository.NewEngagementRepository(db)
	require.NoError(t, engagements.Favorite(context.Background(), favoriter.ID, article.ID))

	_, err := svc.CreateComment(context.Background(), commenter.ID, "loved", "nice one")
	require.NoError(t, err)

	var notifications []model.Notification
	require.NoError(t, db.Where("user_id = ?", favoriter.ID).Find(&notifications).Error)
	require.Len(t, notifications, 1)
	assert.Equal(t, "loved", notifications[0].Slug)

	require.Len(t, mail.sent, 1)
	assert.Equal(t, []string{"bob@example.com"}, mail.sent[0].To)
}

func TestCommentDoesNotNotifyActingFavoriter(t *testing.T) {
	db := newTestDB(t)
	svc := newCommentEnv(t, db, &fakeMailer{})
	author := seedUser(t, db, "jane")
	commenter := seedUser(t, db, "bob")
	setNotifyPrefs(t, db, commenter.ID, true, true)
	article := seedArticle(t, db, author.ID, "Loved", "loved")

	engagements := repository.NewEngagementRepository(db)
	require.NoError(t, engagements.Favorite(context.Background(), commenter.ID, article.ID))

	_, err := svc.CreateComment(context.Background(), commenter.ID, "loved", "my own comment")
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&model.Notification{}).Count(&count).Error)
	assert.Zero(t, count)
}
