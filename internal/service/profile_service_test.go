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

func newProfileService(t *testing.T, db *gorm.DB) ProfileService {
	t.Helper()

	return NewProfileService(
		repository.NewProfileRepository(db),
		repository.NewUserRepository(db),
		fakeStorage{},
		"avatars",
	)
}

func seedBareUser(t *testing.T, db *gorm.DB, username string) *model.User {
	t.Helper()

	user := &model.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "irrelevant",
		Active:       true,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func TestCreateProfile(t *testing.T) {
	db := newTestDB(t)
	svc := newProfileService(t, db)
	user := seedBareUser(t, db, "jane")

	resp, err := svc.CreateProfile(context.Background(), user.ID, dto.CreateProfileRequest{
		Bio:       "gopher",
		Interests: "distributed systems",
	})
	require.NoError(t, err)
	assert.Equal(t, "jane", resp.Username)
	assert.Equal(t, "gopher", resp.Bio)
	assert.True(t, resp.Active)
	assert.True(t, resp.EmailNotify)
	assert.NotEmpty(t, resp.Avatar)

	_, err = svc.CreateProfile(context.Background(), user.ID, dto.CreateProfileRequest{Bio: "again"})
	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, apperror.MapErrorToStatus(err))

	// A deactivated profile must be reactivated, not recreated.
	require.NoError(t, svc.DeactivateProfile(context.Background(), user.ID))
	_, err = svc.CreateProfile(context.Background(), user.ID, dto.CreateProfileRequest{Bio: "again"})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperror.MapErrorToStatus(err))
}

func TestDeactivatedProfileHiddenFromLookups(t *testing.T) {
	db := newTestDB(t)
	svc := newProfileService(t, db)
	seedUser(t, db, "jane")

	resp, err := svc.GetProfile(context.Background(), "jane")
	require.NoError(t, err)
	assert.Equal(t, "jane", resp.Username)

	var user model.User
	require.NoError(t, db.First(&user, "username = ?", "jane").Error)
	require.NoError(t, svc.DeactivateProfile(context.Background(), user.ID))

	_, err = svc.GetProfile(context.Background(), "jane")
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperror.MapErrorToStatus(err))

	require.NoError(t, svc.ReactivateProfile(context.Background(), user.ID))

	_, err = svc.GetProfile(context.Background(), "jane")
	require.NoError(t, err)
}

func TestFollowLifecycle(t *testing.T) {
	db := newTestDB(t)
	svc := newProfileService(t, db)
	follower := seedUser(t, db, "bob")
	seedUser(t, db, "jane")

	message, err := svc.Follow(context.Background(), follower.ID, "jane")
	require.NoError(t, err)
	assert.Equal(t, "you are now following jane", message)

	_, err = svc.Follow(context.Background(), follower.ID, "jane")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "you already follow jane")
	assert.Equal(t, http.StatusBadRequest, apperror.MapErrorToStatus(err))

	followers, err := svc.Followers(context.Background(), "jane")
	require.NoError(t, err)
	require.Len(t, followers, 1)
	assert.Equal(t, "bob", followers[0].Username)

	following, err := svc.Following(context.Background(), "bob")
	require.NoError(t, err)
	require.Len(t, following, 1)
	assert.Equal(t, "jane", following[0].Username)

	message, err = svc.Unfollow(context.Background(), follower.ID, "jane")
	require.NoError(t, err)
	assert.Equal(t, "you have unfollowed jane", message)

	_, err = svc.Unfollow(context.Background(), follower.ID, "jane")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "you do not follow jane")
}

func TestSelfFollowRejected(t *testing.T) {
	db := newTestDB(t)
	svc := newProfileService(t, db)
	user := seedUser(t, db, "jane")

	_, err := svc.Follow(context.Background(), user.ID, "jane")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "you cannot follow yourself")
	assert.Equal(t, http.StatusBadRequest, apperror.MapErrorToStatus(err))
}

func TestUpdateProfileFields(t *testing.T) {
	db := newTestDB(t)
	svc := newProfileService(t, db)
	user := seedUser(t, db, "jane")

	bio := "updated bio"
	quote := "ship it"
	resp, err := svc.UpdateProfile(context.Background(), user.ID, dto.UpdateProfileRequest{
		Bio:           &bio,
		FavoriteQuote: &quote,
	})
	require.NoError(t, err)
	assert.Equal(t, "updated bio", resp.Bio)
	assert.Equal(t, "ship it", resp.FavoriteQuote)
}

func TestUploadAvatar(t *testing.T) {
	db := newTestDB(t)
	svc := newProfileService(t, db)
	user := seedUser(t, db, "jane")

	resp, err := svc.UploadAvatar(context.Background(), user.ID, strings.NewReader("fake image"), "me.png")
	require.NoError(t, err)
	assert.Equal(t, "https://images.test/avatars/me.png", resp.Avatar)
}

func TestSetNotifyPrefs(t *testing.T) {
	db := newTestDB(t)
	svc := newProfileService(t, db)
	user := seedUser(t, db, "jane")

	off := false
	on := true
	resp, err := svc.SetNotifyPrefs(context.Background(), user.ID, &off, &on)
	require.NoError(t, err)
	assert.False(t, resp.EmailNotify)
	assert.True(t, resp.AppNotify)
}
