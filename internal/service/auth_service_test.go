package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/andela/ah-olympians/internal/dto"
	"github.com/andela/ah-olympians/internal/model"
	"github.com/andela/ah-olympians/internal/repository"
	"github.com/andela/ah-olympians/pkg/apperror"
	"github.com/andela/ah-olympians/pkg/social"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newAuthService(t *testing.T, db *gorm.DB, mail *fakeMailer, verifier social.Verifier) AuthService {
	t.Helper()

	if verifier == nil {
		verifier = &fakeVerifier{}
	}
	users := repository.NewUserRepository(db)
	return NewAuthService(users, mail, verifier, "test-secret", time.Hour, time.Hour, "http://localhost:8080")
}

func TestRegisterIssuesTokenAndVerificationEmail(t *testing.T) {
	db := newTestDB(t)
	mail := &fakeMailer{}
	auth := newAuthService(t, db, mail, nil)

	resp, err := auth.Register(context.Background(), dto.RegisterRequest{
		Username: "jane",
		Email:    "jane@example.com",
		Password: "password123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "jane", resp.Username)
	assert.False(t, resp.Active)

	require.Len(t, mail.sent, 1)
	assert.Equal(t, []string{"jane@example.com"}, mail.sent[0].To)

	var verification model.EmailVerification
	require.NoError(t, db.First(&verification).Error)
	assert.True(t, verification.Valid)
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	db := newTestDB(t)
	auth := newAuthService(t, db, &fakeMailer{}, nil)

	_, err := auth.Register(context.Background(), dto.RegisterRequest{
		Username: "jane", Email: "jane@example.com", Password: "password123",
	})
	require.NoError(t, err)

	_, err = auth.Register(context.Background(), dto.RegisterRequest{
		Username: "other", Email: "jane@example.com", Password: "password123",
	})
	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, apperror.MapErrorToStatus(err))
	assert.Contains(t, err.Error(), "email already registered")

	_, err = auth.Register(context.Background(), dto.RegisterRequest{
		Username: "jane", Email: "jane2@example.com", Password: "password123",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "username already taken")
}

func TestLogin(t *testing.T) {
	db := newTestDB(t)
	auth := newAuthService(t, db, &fakeMailer{}, nil)

	_, err := auth.Register(context.Background(), dto.RegisterRequest{
		Username: "jane", Email: "jane@example.com", Password: "password123",
	})
	require.NoError(t, err)

	resp, err := auth.Login(context.Background(), dto.LoginRequest{
		Email: "jane@example.com", Password: "password123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)

	_, err = auth.Login(context.Background(), dto.LoginRequest{
		Email: "jane@example.com", Password: "wrongpassword",
	})
	require.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, apperror.MapErrorToStatus(err))

	_, err = auth.Login(context.Background(), dto.LoginRequest{
		Email: "nobody@example.com", Password: "password123",
	})
	require.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, apperror.MapErrorToStatus(err))
}

func TestVerifyEmailIsSingleUse(t *testing.T) {
	db := newTestDB(t)
	auth := newAuthService(t, db, &fakeMailer{}, nil)

	resp, err := auth.Register(context.Background(), dto.RegisterRequest{
		Username: "jane", Email: "jane@example.com", Password: "password123",
	})
	require.NoError(t, err)

	var verification model.EmailVerification
	require.NoError(t, db.First(&verification).Error)

	require.NoError(t, auth.VerifyEmail(context.Background(), verification.Token))

	var user model.User
	require.NoError(t, db.First(&user, "id = ?", resp.ID).Error)
	assert.True(t, user.Active)

	err = auth.VerifyEmail(context.Background(), verification.Token)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "token already used")
}

func TestVerifyEmailRejectsUnknownToken(t *testing.T) {
	db := newTestDB(t)
	auth := newAuthService(t, db, &fakeMailer{}, nil)

	err := auth.VerifyEmail(context.Background(), "no-such-token")
	require.Error(t, err)
	assert.Equal(t, http.StatusForbidden, apperror.MapErrorToStatus(err))
}

func TestPasswordResetFlow(t *testing.T) {
	db := newTestDB(t)
	mail := &fakeMailer{}
	auth := newAuthService(t, db, mail, nil)

	_, err := auth.Register(context.Background(), dto.RegisterRequest{
		Username: "jane", Email: "jane@example.com", Password: "password123",
	})
	require.NoError(t, err)

	message, err := auth.RequestPasswordReset(context.Background(), "jane@example.com")
	require.NoError(t, err)
	assert.NotEmpty(t, message)

	var reset model.PasswordReset
	require.NoError(t, db.First(&reset).Error)

	require.NoError(t, auth.ResetPassword(context.Background(), reset.Token, "newpassword456"))

	_, err = auth.Login(context.Background(), dto.LoginRequest{
		Email: "jane@example.com", Password: "newpassword456",
	})
	require.NoError(t, err)

	// A used token cannot be replayed.
	err = auth.ResetPassword(context.Background(), reset.Token, "anotherpassword")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "token already used")
}

func TestPasswordResetDoesNotRevealAccounts(t *testing.T) {
	db := newTestDB(t)
	mail := &fakeMailer{}
	auth := newAuthService(t, db, mail, nil)

	message, err := auth.RequestPasswordReset(context.Background(), "ghost@example.com")
	require.NoError(t, err)
	assert.NotEmpty(t, message)
	assert.Empty(t, mail.sent)
}

func TestSocialLoginCreatesAndReusesAccount(t *testing.T) {
	db := newTestDB(t)
	verifier := &fakeVerifier{identity: &social.Identity{
		Provider:   "google",
		ExternalID: "ext-123",
		Email:      "social@example.com",
		Name:       "Social User",
	}}
	auth := newAuthService(t, db, &fakeMailer{}, verifier)

	first, err := auth.SocialLogin(context.Background(), dto.SocialLoginRequest{
		Provider: "google", AccessToken: "tok",
	})
	require.NoError(t, err)
	assert.True(t, first.Active)
	assert.NotEmpty(t, first.Token)

	second, err := auth.SocialLogin(context.Background(), dto.SocialLoginRequest{
		Provider: "google", AccessToken: "tok",
	})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	var count int64
	require.NoError(t, db.Model(&model.User{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestUpdateUserRejectsTakenUsername(t *testing.T) {
	db := newTestDB(t)
	auth := newAuthService(t, db, &fakeMailer{}, nil)

	_, err := auth.Register(context.Background(), dto.RegisterRequest{
		Username: "jane", Email: "jane@example.com", Password: "password123",
	})
	require.NoError(t, err)

	bob, err := auth.Register(context.Background(), dto.RegisterRequest{
		Username: "bob", Email: "bob@example.com", Password: "password123",
	})
	require.NoError(t, err)

	taken := "jane"
	_, err = auth.UpdateUser(context.Background(), bob.ID, dto.UpdateUserRequest{Username: &taken})
	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, apperror.MapErrorToStatus(err))
}
