package main

import (
	"os"

	"github.com/andela/ah-olympians/internal/config"
	"github.com/andela/ah-olympians/internal/model"
	"github.com/andela/ah-olympians/internal/server"
	"github.com/andela/ah-olympians/pkg/database"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	if cfg.AppEnv == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	db := database.Connect()
	if err := migrate(db); err != nil {
		log.Fatal().Err(err).Msg("migration failed")
	}

	if cfg.AppEnv == "development" {
		if err := seedSuperuser(db, cfg.AdminEmail); err != nil {
			log.Fatal().Err(err).Msg("failed to seed superuser")
		}
	}

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Fatal().Err(err).Msg("invalid REDIS_URL")
		}
		redisClient = redis.NewClient(opts)
	} else {
		log.Warn().Msg("REDIS_URL not set, live notifications and rate limiting are disabled")
	}

	srv := server.NewServer(cfg, db, redisClient)
	if err := srv.Run(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server exited with error")
	}
}

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(
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
	)
}

func seedSuperuser(db *gorm.DB, email string) error {
	var count int64
	if err := db.Model(&model.User{}).
		Where("email = ?", email).
		Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		return nil
	}

	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "olympians"
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := model.User{
		Username:     "admin",
		Email:        email,
		PasswordHash: string(hashed),
		Active:       true,
		Superuser:    true,
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}

	profile := model.Profile{
		UserID: admin.ID,
		Bio:    "Platform administrator",
		Active: true,
	}
	if err := db.Create(&profile).Error; err != nil {
		return err
	}

	log.Info().Str("email", email).Msg("superuser seeded")
	return nil
}
