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
	"snapgram/pkg/database"
	"snapgram/pkg/jwt"
	"snapgram/pkg/logger"
	"snapgram/pkg/middleware"
	accountHTTP "snapgram/services/account/internal/controller/http"
	"snapgram/services/account/internal/form"
	"snapgram/services/account/internal/repo/persistent"
	"snapgram/services/account/internal/usecase"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"gorm.io/gorm"

	_ "snapgram/services/account/docs" // Swagger docs
)

const submitGuardTTL = 30 * time.Second

type App struct {
	cfg         *config.Config
	log         *logger.Logger
	db          *gorm.DB
	redisClient *redis.Client
	jwtService  *jwt.Service
	httpServer  *http.Server
}

func NewApp(cfg *config.Config) (*App, error) {
	log := logger.New().With(zap.String("service", "account"))

	db, err := database.Open(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		return nil, err
	}

	// Sessions live in Redis, so the account service cannot run without it.
	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Error("Failed to connect to redis: %v", err)
		return nil, err
	}

	return &App{
		cfg:         cfg,
		log:         log,
		db:          db,
		redisClient: redisClient,
		jwtService:  jwt.NewService(cfg.JWTSecret).WithTTL(cfg.SessionTTL),
	}, nil
}

func (a *App) Run() error {
	accountRepo := persistent.NewAccountRepository(a.db)
	userRepo := persistent.NewUserRepository(a.db)
	sessions := cache.NewSessionStore(a.redisClient, a.cfg.SessionTTL)

	accountUseCase := usecase.NewAccountUseCase(
		accountRepo,
		userRepo,
		sessions,
		a.jwtService,
		a.cfg.AccountServiceURL,
		a.log,
	)

	accountHandler := accountHTTP.NewAccountHandler(
		accountUseCase,
		form.NewRedisGuard(a.redisClient, submitGuardTTL),
		a.log,
	)

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://127.0.0.1:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api/v1")
	{
		public := api.Group("")
		public.Use(middleware.RateLimitMiddleware(a.redisClient, 20, time.Minute))
		{
			public.POST("/sign-up", accountHandler.SignUp)
			public.POST("/sign-in", accountHandler.SignIn)
		}
		api.GET("/avatars/initials", accountHTTP.Initials)

		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware(a.jwtService, sessions))
		{
			protected.POST("/sign-out", accountHandler.SignOut)
			protected.GET("/me", accountHandler.Me)
		}
	}

	a.httpServer = &http.Server{
		Addr:    ":" + a.cfg.ServerPort,
		Handler: r,
	}

	go func() {
		a.log.Info("Account service starting on port %s", a.cfg.ServerPort)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.log.Error("Failed to start server: %v", err)
			panic(err)
		}
	}()

	return nil
}

func (a *App) Wait() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	a.log.Info("Shutting down account service...")
}

func (a *App) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := a.httpServer.Shutdown(ctx); err != nil {
		a.log.Error("Server forced to shutdown: %v", err)
		return err
	}

	sqlDB, err := a.db.DB()
	if err == nil {
		if err := sqlDB.Close(); err != nil {
			a.log.Error("Error closing database: %v", err)
		}
	}

	if err := a.redisClient.Close(); err != nil {
		a.log.Error("Error closing Redis: %v", err)
	}

	a.log.Info("Account service exited")
	_ = a.log.Sync()
	return nil
}
