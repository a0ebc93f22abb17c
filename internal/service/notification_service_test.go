package service

import (
	"context"
	"testing"

	"github.com/andela/ah-olympians/internal/model"
	"github.com/andela/ah-olympians/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newNotificationEnv(t *testing.T, db *gorm.DB) NotificationService {
	t.Helper()

	return NewNotificationService(
		repository.NewNotificationRepository(db),
		repository.NewProfileRepository(db),
		repository.NewArticleRepository(db),
		&fakeMailer{},
		nil,
	)
}

func TestNotificationReadTracking(t *testing.T) {
	db := newTestDB(t)
	svc := newNotificationEnv(t, db)
	user := seedUser(t, db, "jane")
	stranger := seedUser(t, db, "bob")

	repo := repository.NewNotificationRepository(db)
	for _, message := range []string{"first", "second", "third"} {
		require.NoError(t, repo.Create(context.Background(), &model.Notification{
			UserID:  user.ID,
			Message: message,
			Slug:    "some-article",
		}))
	}

	count, err := svc.UnreadCount(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	notifications, err := svc.List(context.Background(), user.ID, 10, 0)
	require.NoError(t, err)
	require.Len(t, notifications, 3)

	// Marking someone else's notification is a silent no-op.
	require.NoError(t, svc.MarkRead(context.Background(), stranger.ID, notifications[0].ID))
	count, err = svc.UnreadCount(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	require.NoError(t, svc.MarkRead(context.Background(), user.ID, notifications[0].ID))
	count, err = svc.UnreadCount(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	require.NoError(t, svc.MarkAllRead(context.Background(), user.ID))
	count, err = svc.UnreadCount(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestNotificationListPagination(t *testing.T) {
	db := newTestDB(t)
	svc := newNotificationEnv(t, db)
	user := seedUser(t, db, "jane")

	repo := repository.NewNotificationRepository(db)
	for i := 0; i < 5; i++ {
		require.NoError(t, repo.Create(context.Background(), &model.Notification{
			UserID:  user.ID,
			Message: "ping",
		}))
	}

	page, err := svc.List(context.Background(), user.ID, 2, 0)
	require.NoError(t, err)
	assert.Len(t, page, 2)

	rest, err := svc.List(context.Background(), user.ID, 10, 2)
	require.NoError(t, err)
	assert.Len(t, rest, 3)
}
