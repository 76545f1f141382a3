package internal

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"snapgram/pkg/cache"
	"snapgram/pkg/config"
	"snapgram/pkg/jwt"
	"snapgram/pkg/logger"
	"snapgram/pkg/middleware"
	"snapgram/pkg/queue"
	"snapgram/pkg/s3"
	postHTTP "snapgram/services/post/internal/controller/http"
	"snapgram/services/post/internal/repo/persistent"
	"snapgram/services/post/internal/usecase"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	_ "snapgram/services/post/docs" // Swagger docs
)

// Run serves the post API until SIGINT or SIGTERM. queueClient may be nil.
func Run(cfg *config.Config, log *logger.Logger, db *gorm.DB, s3Client *s3.Client, queueClient *queue.Client, redisClient *redis.Client) {
	jwtService := jwt.NewService(cfg.JWTSecret).WithTTL(cfg.SessionTTL)
	sessions := cache.NewSessionStore(redisClient, cfg.SessionTTL)

	postRepo := persistent.NewPostRepository(db)
	saveRepo := persistent.NewSaveRepository(db)
	profileRepo := persistent.NewProfileRepository(db)

	var publisher usecase.EventPublisher
	if queueClient != nil {
		publisher = queueClient
	}
	postUseCase := usecase.NewPostUseCase(postRepo, saveRepo, s3Client, publisher, log)

	postHandler := postHTTP.NewPostHandler(postUseCase, profileRepo, log)

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.MaxMultipartMemory = 8 << 20
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://127.0.0.1:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Preview URLs are stored on posts and loaded by <img> tags, so they
	// cannot carry a bearer token. Anonymous callers are limited per client IP.
	r.GET("/api/v1/files/:id/preview",
		middleware.RateLimitMiddleware(redisClient, 300, time.Minute),
		postHandler.GetFilePreview,
	)

	api := r.Group("/api/v1")
	api.Use(middleware.AuthMiddleware(jwtService, sessions))
	api.Use(middleware.RateLimitMiddleware(redisClient, 100, time.Minute))
	api.Use(postHandler.RequireProfile)

	{
		api.POST("/posts", postHandler.CreatePost)
		api.GET("/posts/recent", postHandler.GetRecentPosts)
		api.GET("/posts/infinite", postHandler.GetInfinitePosts)
		api.GET("/posts/search", postHandler.SearchPosts)
		api.GET("/posts/grid", postHandler.GetGrid)
		api.GET("/posts/:id", postHandler.GetPost)
		api.PUT("/posts/:id", postHandler.UpdatePost)
		api.DELETE("/posts/:id", postHandler.DeletePost)
		api.POST("/posts/:id/like", postHandler.LikePost)
		api.POST("/posts/:id/save", postHandler.SavePost)
		api.DELETE("/saves/:id", postHandler.DeleteSavedPost)
		api.GET("/users/:id/posts", postHandler.GetUserPosts)
		api.GET("/users/:id/saves", postHandler.GetSavedPosts)
		api.POST("/files", postHandler.UploadFile)
		api.DELETE("/files/:id", postHandler.DeleteFile)
	}

	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	go func() {
		log.Info("Post service starting on port %s", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Failed to start server: %v", err)
			panic(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down post service...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	sqlDB, err := db.DB()
	if err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Error("Error closing database: %v", err)
		}
	}

	if err := redisClient.Close(); err != nil {
		log.Error("Error closing Redis: %v", err)
	}

	if queueClient != nil {
		queueClient.Close()
	}

	log.Info("Post service exited")
}
