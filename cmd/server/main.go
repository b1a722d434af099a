package main

import (
	"log"
	"net/http"

	"github.com/dfr8938/med-qa-new/internal/config"
	"github.com/dfr8938/med-qa-new/internal/database"
	"github.com/dfr8938/med-qa-new/internal/handler"
	"github.com/dfr8938/med-qa-new/internal/middleware"
	"github.com/dfr8938/med-qa-new/internal/repository"
	"github.com/dfr8938/med-qa-new/internal/service"
	"github.com/dfr8938/med-qa-new/pkg/logger"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	if err := logger.Init(!cfg.IsProduction()); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	database.Connect(cfg.DatabaseURL)
	database.Migrate()

	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		logger.Log.Fatal("Invalid REDIS_URL", zap.Error(err))
	}
	redisClient := redis.NewClient(redisOpts)
	defer redisClient.Close()

	// Repositories
	userRepo := repository.NewUserRepository(database.DB)
	categoryRepo := repository.NewCategoryRepository(database.DB)
	questionRepo := repository.NewQuestionRepository(database.DB)
	actionLogRepo := repository.NewActionLogRepository(database.DB)

	// Services
	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTExpiry)
	categoryService := service.NewCategoryService(categoryRepo, questionRepo)
	questionService := service.NewQuestionService(questionRepo, categoryRepo)
	userService := service.NewUserService(userRepo)
	actionLogService := service.NewActionLogService(actionLogRepo)

	// Handlers
	authHandler := handler.NewAuthHandler(authService, actionLogService)
	categoryHandler := handler.NewCategoryHandler(categoryService, actionLogService)
	questionHandler := handler.NewQuestionHandler(questionService, actionLogService)
	userHandler := handler.NewUserHandler(userService, actionLogService)
	actionLogHandler := handler.NewActionLogHandler(actionLogService)

	authLimiter := middleware.NewRateLimiter(redisClient, middleware.RateLimiterConfig{
		MaxRequests: cfg.RateLimitMaxRequests,
		Window:      cfg.RateLimitWindow,
	})

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(
		middleware.RequestID(),
		middleware.RequestLogger(),
		gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
			logger.Log.Error("Panic recovered",
				zap.Any("panic", recovered),
				zap.String("path", c.Request.URL.Path),
			)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"message": "Ошибка сервера",
			})
		}),
		cors.Default(),
		middleware.SecurityHeadersMiddleware(),
		middleware.HSTSMiddleware(cfg.IsProduction()),
		middleware.CSRFProtection(),
	)

	authRequired := middleware.AuthMiddleware(cfg.JWTSecret, userRepo)

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Добро пожаловать в API медицинского портала"})
	})

	auth := router.Group("/api/auth")
	{
		auth.POST("/register", authLimiter.Middleware(), authHandler.Register)
		auth.POST("/login", authLimiter.Middleware(), authHandler.Login)
		auth.GET("/csrf-token", authHandler.CSRFToken)
		auth.GET("/me", authRequired, authHandler.Me)
		auth.PUT("/profile", authRequired, authHandler.UpdateProfile)
	}

	categories := router.Group("/api/categories")
	{
		categories.GET("", categoryHandler.GetAll)

		admin := categories.Group("", authRequired, middleware.RequireAdmin())
		{
			admin.POST("", categoryHandler.Create)
			admin.PUT("/:id", categoryHandler.Update)
			admin.DELETE("/:id", categoryHandler.Delete)
			admin.GET("/:id/questions", categoryHandler.GetQuestions)
			admin.DELETE("/:id/questions", categoryHandler.DeleteQuestions)
		}
	}

	questions := router.Group("/api/questions", authRequired, middleware.RequireAdmin())
	{
		questions.GET("", questionHandler.List)
		questions.POST("", questionHandler.Create)
		questions.GET("/export", questionHandler.Export)
		questions.PUT("/:id", questionHandler.Update)
		questions.DELETE("/:id", questionHandler.Delete)
	}

	users := router.Group("/api/users", authRequired, middleware.RequireSuperAdmin())
	{
		users.GET("", userHandler.GetAll)
		users.DELETE("/:id", userHandler.Delete)
	}

	actionLogs := router.Group("/api/actionlogs", authRequired, middleware.RequireSuperAdmin())
	{
		actionLogs.GET("", actionLogHandler.List)
		actionLogs.GET("/export", actionLogHandler.Export)
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Маршрут не найден"})
	})

	logger.Log.Info("Server starting", zap.String("port", cfg.ServerPort))
	if err := router.Run(cfg.ServerPort); err != nil {
		logger.Log.Fatal("Failed to start server", zap.Error(err))
	}
}
