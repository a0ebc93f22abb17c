package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/andela/ah-olympians/internal/model"
	"github.com/andela/ah-olympians/internal/repository"
	"github.com/andela/ah-olympians/pkg/mailer"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// NotificationChannel names the per-user redis pub/sub channel that the
// websocket endpoint subscribes to.
func NotificationChannel(userID string) string {
	return fmt.Sprintf("user_notifications:%s", userID)
}

type NotificationService interface {
	// NotifyFollowers delivers a notification to every follower of the
	// author, honoring each follower's opt-in preferences.
	NotifyFollowers(ctx context.Context, authorID uuid.UUID, message, slug string)
	// NotifyFavoriters delivers a notification to every user who
	// favorited the article, except the actor.
	NotifyFavoriters(ctx context.Context, articleID, actorID uuid.UUID, message, slug string)

	List(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.Notification, error)
	MarkRead(ctx context.Context, userID, id uuid.UUID) error
	MarkAllRead(ctx context.Context, userID uuid.UUID) error
	UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error)
}

type notificationService struct {
	repo        repository.NotificationRepository
	profiles    repository.ProfileRepository
	articles    repository.ArticleRepository
	mail        mailer.Mailer
	redisClient *redis.Client
}

func NewNotificationService(repo repository.NotificationRepository, profiles repository.ProfileRepository, articles repository.ArticleRepository, mail mailer.Mailer, redisClient *redis.Client) NotificationService {
	return &notificationService{
		repo:        repo,
		profiles:    profiles,
		articles:    articles,
		mail:        mail,
		redisClient: redisClient,
	}
}

func (s *notificationService) NotifyFollowers(ctx context.Context, authorID uuid.UUID, message, slug string) {
	followers, err := s.profiles.Followers(ctx, authorID)
	if err != nil {
		log.Error().Err(err).Msg("failed to load followers for fan-out")
		return
	}

	for i := range followers {
		s.deliver(ctx, &followers[i], message, slug)
	}
}

func (s *notificationService) NotifyFavoriters(ctx context.Context, articleID, actorID uuid.UUID, message, slug string) {
	users, err := s.articles.Favoriters(ctx, articleID)
	if err != nil {
		log.Error().Err(err).Msg("failed to load favoriters for fan-out")
		return
	}

	for _, user := range users {
		if user.ID == actorID {
			continue
		}
		profile, err := s.profiles.FindByUserID(ctx, user.ID)
		if err != nil {
			continue
		}
		s.deliver(ctx, profile, message, slug)
	}
}

// deliver is best-effort per recipient; a failed email or publish never
// aborts the request that triggered the fan-out.
func (s *notificationService) deliver(ctx context.Context, profile *model.Profile, message, slug string) {
	if profile.EmailNotify && profile.User != nil {
		if err := s.mail.Send([]string{profile.User.Email}, "Authors Haven Notification", message); err != nil {
			log.Warn().Err(err).Str("user_id", profile.UserID.String()).Msg("notification email not sent")
		}
	}

	if !profile.AppNotify {
		return
	}

	notification := &model.Notification{
		UserID:  profile.UserID,
		Message: message,
		Slug:    slug,
	}
	if err := s.repo.Create(ctx, notification); err != nil {
		log.Error().Err(err).Str("user_id", profile.UserID.String()).Msg("failed to store notification")
		return
	}

	if s.redisClient != nil {
		payload, err := json.Marshal(notification)
		if err == nil {
			s.redisClient.Publish(ctx, NotificationChannel(profile.UserID.String()), payload)
		}
	}
}

func (s *notificationService) List(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.Notification, error) {
	return s.repo.FindByUserID(ctx, userID, limit, offset)
}

func (s *notificationService) MarkRead(ctx context.Context, userID, id uuid.UUID) error {
	return s.repo.MarkAsRead(ctx, userID, id)
}

func (s *notificationService) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	return s.repo.MarkAllAsRead(ctx, userID)
}

func (s *notificationService) UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.repo.CountUnread(ctx, userID)
}
