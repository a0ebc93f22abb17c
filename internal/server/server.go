package server

import (
	"strings"
	"time"

	"github.com/andela/ah-olympians/internal/config"
	"github.com/andela/ah-olympians/internal/handler"
	"github.com/andela/ah-olympians/internal/middleware"
	"github.com/andela/ah-olympians/internal/repository"
	"github.com/andela/ah-olympians/internal/service"
	"github.com/andela/ah-olympians/pkg/mailer"
	"github.com/andela/ah-olympians/pkg/social"
	"github.com/andela/ah-olympians/pkg/storage"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/meilisearch/meilisearch-go"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type Server struct {
	engine      *gin.Engine
	db          *gorm.DB
	redisClient *redis.Client
}

func NewServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *Server {
	userRepo := repository.NewUserRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	articleRepo := repository.NewArticleRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	engagementRepo := repository.NewEngagementRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	imageStorage, err := storage.NewCloudinaryStorage()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize cloudinary storage")
	}

	mail := mailer.NewSMTPMailer()

	meiliClient := meilisearch.New(cfg.MeiliSearchHost, meilisearch.WithAPIKey(cfg.MeiliMasterKey))
	searchSvc := service.NewSearchService(meiliClient)

	notificationSvc := service.NewNotificationService(notificationRepo, profileRepo, articleRepo, mail, redisClient)
	notificationHandler := handler.NewNotificationHandler(notificationSvc, redisClient)

	authSvc := service.NewAuthService(userRepo, mail, social.NewHTTPVerifier(), cfg.JWTSecret, cfg.TokenTTL, cfg.ResetTokenTTL, cfg.BaseURL)
	authHandler := handler.NewAuthHandler(authSvc)

	profileSvc := service.NewProfileService(profileRepo, userRepo, imageStorage, cfg.CloudinaryUploadFolder)
	profileHandler := handler.NewProfileHandler(profileSvc)

	articleSvc := service.NewArticleService(articleRepo, profileRepo, imageStorage, searchSvc, notificationSvc, cfg.CloudinaryUploadFolder)
	articleHandler := handler.NewArticleHandler(articleSvc)

	commentSvc := service.NewCommentService(commentRepo, articleRepo, profileRepo, engagementRepo, notificationSvc)
	commentHandler := handler.NewCommentHandler(commentSvc)

	engagementSvc := service.NewEngagementService(engagementRepo, articleRepo, userRepo, mail, redisClient, cfg.AdminEmail, cfg.RateLimitReport)
	engagementHandler := handler.NewEngagementHandler(engagementSvc)

	router := gin.New()

	setupCORS(router, cfg.AllowedOrigins)

	router.Use(gin.Recovery())
	router.Use(gin.Logger())

	authMiddleware := middleware.NewAuthMiddleware(userRepo, cfg.JWTSecret)

	api := router.Group("/api")

	// Public routes
	api.POST("/users", authHandler.Register)
	api.POST("/users/login", authHandler.Login)
	api.GET("/users/verify", authHandler.VerifyEmail)
	api.POST("/users/verify", authHandler.VerifyEmail)
	api.POST("/users/password-reset", authHandler.RequestPasswordReset)
	api.PUT("/users/password-reset/:token", authHandler.ResetPassword)
	api.POST("/users/social", authHandler.SocialLogin)

	api.GET("/articles", articleHandler.ListArticles)
	api.GET("/articles/search", articleHandler.Search)
	api.GET("/articles/:slug", articleHandler.GetArticle)
	api.GET("/articles/:slug/comments", commentHandler.GetThread)
	api.GET("/articles/:slug/comments/:id", commentHandler.GetComment)
	api.GET("/articles/:slug/rating", engagementHandler.GetRating)

	api.GET("/profiles/:username", profileHandler.GetProfile)
	api.GET("/profiles/:username/followers", profileHandler.Followers)
	api.GET("/profiles/:username/following", profileHandler.Following)

	// Protected routes
	protected := api.Group("")
	protected.Use(authMiddleware.RequireAuth())
	{
		protected.GET("/user", authHandler.CurrentUser)
		protected.PUT("/user", authHandler.UpdateUser)

		protected.GET("/profiles", profileHandler.ListProfiles)
		protected.POST("/profile", profileHandler.CreateProfile)
		protected.GET("/profile", profileHandler.GetMyProfile)
		protected.PUT("/profile", profileHandler.UpdateProfile)
		protected.DELETE("/profile", profileHandler.DeactivateProfile)
		protected.POST("/profile/activate", profileHandler.ReactivateProfile)
		protected.POST("/profile/avatar", profileHandler.UploadAvatar)
		protected.PUT("/profile/notifications", profileHandler.SetNotifyPrefs)

		protected.POST("/profiles/:username/follow", profileHandler.Follow)
		protected.DELETE("/profiles/:username/follow", profileHandler.Unfollow)

		protected.POST("/articles", articleHandler.CreateArticle)
		protected.PUT("/articles/:slug", articleHandler.UpdateArticle)
		protected.DELETE("/articles/:slug", articleHandler.DeleteArticle)
		protected.POST("/articles/:slug/images", articleHandler.UploadImage)

		protected.POST("/articles/:slug/like", engagementHandler.LikeArticle)
		protected.POST("/articles/:slug/dislike", engagementHandler.DislikeArticle)
		protected.POST("/articles/:slug/rate", engagementHandler.RateArticle)
		protected.DELETE("/articles/:slug/rate", engagementHandler.DeleteRating)
		protected.POST("/articles/:slug/favorite", engagementHandler.FavoriteArticle)
		protected.DELETE("/articles/:slug/favorite", engagementHandler.UnfavoriteArticle)
		protected.POST("/articles/:slug/bookmark", engagementHandler.BookmarkArticle)
		protected.DELETE("/articles/:slug/bookmark", engagementHandler.UnbookmarkArticle)
		protected.GET("/articles/bookmarks", engagementHandler.ListBookmarks)
		protected.POST("/articles/:slug/report", engagementHandler.ReportArticle)

		protected.POST("/articles/:slug/comments", commentHandler.CreateComment)
		protected.POST("/articles/:slug/comments/:id/replies", commentHandler.ReplyComment)
		protected.PUT("/articles/:slug/comments/:id", commentHandler.UpdateComment)
		protected.DELETE("/articles/:slug/comments/:id", commentHandler.DeleteComment)
		protected.POST("/articles/:slug/comments/:id/like", commentHandler.LikeComment)
		protected.POST("/articles/:slug/comments/:id/dislike", commentHandler.DislikeComment)

		protected.GET("/notifications", notificationHandler.ListNotifications)
		protected.GET("/notifications/unread-count", notificationHandler.UnreadCount)
		protected.PUT("/notifications/:id/read", notificationHandler.MarkRead)
		protected.PUT("/notifications/read-all", notificationHandler.MarkAllRead)
		protected.GET("/notifications/ws", notificationHandler.Stream)

		reports := protected.Group("/reports")
		reports.Use(authMiddleware.RequireSuperuser())
		{
			reports.GET("", engagementHandler.ListReports)
			reports.GET("/:slug", engagementHandler.ListArticleReports)
		}
	}

	return &Server{
		engine:      router,
		db:          db,
		redisClient: redisClient,
	}
}

func (s *Server) Run(addr string) error {
	return s.engine.Run(addr)
}

func setupCORS(router *gin.Engine, allowedOrigins string) {
	var origins []string
	if allowedOrigins != "" {
		origins = strings.Split(allowedOrigins, ",")
	} else {
		origins = []string{"http://localhost:3000"}
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}
