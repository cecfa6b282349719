package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/yourusername/quizzify-api/internal/config"
	"github.com/yourusername/quizzify-api/internal/handler"
	"github.com/yourusername/quizzify-api/internal/middleware"
	pgRepo "github.com/yourusername/quizzify-api/internal/repository/postgres"
	redisRepo "github.com/yourusername/quizzify-api/internal/repository/redis"
	"github.com/yourusername/quizzify-api/internal/service"
	ws "github.com/yourusername/quizzify-api/internal/websocket"
	"github.com/yourusername/quizzify-api/pkg/auth"
	"github.com/yourusername/quizzify-api/pkg/database"
)

func main() {
	// Загружаем конфигурацию
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}
	log.Printf("Загрузка конфигурации из %s", configPath)

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Printf("Failed to load config: %v", err)
		os.Exit(1)
	}

	// Инициализируем подключение к PostgreSQL
	db, err := database.NewPostgresDB(cfg.Database.PostgresConnectionString())
	if err != nil {
		log.Printf("Failed to connect to database: %v", err)
		os.Exit(1)
	}

	// Применяем миграции
	if err := database.MigrateDB(db); err != nil {
		log.Printf("Failed to migrate database: %v", err)
		os.Exit(1)
	}

	// Инициализируем подключение к Redis
	redisClient, err := database.NewUniversalRedisClient(cfg.Redis)
	if err != nil {
		log.Printf("Failed to connect to Redis: %v", err)
		os.Exit(1)
	}

	// Каталог загрузок должен существовать до первого запроса
	if err := os.MkdirAll(cfg.Uploads.Dir, 0o755); err != nil {
		log.Printf("Failed to create uploads dir: %v", err)
		os.Exit(1)
	}

	// Репозитории
	userRepo := pgRepo.NewUserRepo(db)
	quizRepo := pgRepo.NewQuizRepo(db)
	questionRepo := pgRepo.NewQuestionRepo(db)
	resultRepo := pgRepo.NewResultRepo(db)
	cacheRepo, err := redisRepo.NewCacheRepo(redisClient)
	if err != nil {
		log.Printf("Failed to init cache repository: %v", err)
		os.Exit(1)
	}

	// JWT
	jwtService, err := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.ExpirationHrs)
	if err != nil {
		log.Printf("Failed to init JWT service: %v", err)
		os.Exit(1)
	}

	// Почта: Resend в production, Noop когда выключена
	var emailService service.EmailService
	if cfg.Email.Enabled {
		emailService, err = service.NewResendEmailService(cfg.Email.ResendAPIKey, cfg.Email.From)
		if err != nil {
			log.Printf("Failed to init email service: %v", err)
			os.Exit(1)
		}
		log.Println("Email: отправка через Resend включена")
	} else {
		emailService = &service.NoopEmailService{}
		log.Println("Email: отправка выключена (noop)")
	}

	// WebSocket-хаб лидербордов
	hub := ws.NewHub()
	go hub.Run()

	// Сервисы
	authService := service.NewAuthService(userRepo, jwtService, emailService)
	quizService := service.NewQuizService(quizRepo, questionRepo)
	resultService := service.NewResultService(resultRepo, quizRepo, userRepo, cacheRepo, hub)
	userService := service.NewUserService(userRepo, quizRepo)

	// Обработчики
	authHandler := handler.NewAuthHandler(authService, cfg.Uploads.Dir)
	quizHandler := handler.NewQuizHandler(quizService)
	resultHandler := handler.NewResultHandler(resultService)
	adminHandler := handler.NewAdminHandler(userService)
	wsHandler := handler.NewWSHandler(hub)

	// Middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService, userRepo)
	rateLimiter := middleware.NewRateLimiter(redisClient)

	isProduction := os.Getenv("GIN_MODE") == "release"

	router := gin.Default()

	// Настройка доверенных прокси для корректной работы c.ClientIP()
	if isProduction {
		if err := router.SetTrustedProxies(nil); err != nil {
			log.Printf("Warning: failed to set trusted proxies: %v", err)
		}
	} else {
		if err := router.SetTrustedProxies([]string{"127.0.0.1", "::1"}); err != nil {
			log.Printf("Warning: failed to set trusted proxies: %v", err)
		}
	}

	// Настройка CORS
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173", "http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Загруженные изображения
	router.Static("/uploads", cfg.Uploads.Dir)

	api := router.Group("/api")
	{
		// Аутентификация и профиль
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", rateLimiter.Limit(middleware.LoginRateLimitConfig()), authHandler.Register)
			authGroup.POST("/login", rateLimiter.Limit(middleware.LoginRateLimitConfig()), authHandler.Login)
			authGroup.GET("/check-email", authHandler.CheckEmail)

			authed := authGroup.Group("/")
			authed.Use(authMiddleware.RequireAuth())
			{
				authed.GET("/me", authHandler.Me)
				authed.PATCH("/profile", authHandler.UpdateProfile)
				authed.POST("/profile/picture", authHandler.UploadProfilePicture)
				authed.DELETE("/profile/picture", authHandler.RemoveProfilePicture)
			}
		}

		// Викторины
		quizzes := api.Group("/quizzes")
		quizzes.Use(authMiddleware.RequireAuth())
		{
			quizzes.POST("", quizHandler.CreateQuiz)
			quizzes.GET("/live", quizHandler.ListLive)
			quizzes.GET("/my-quizzes", quizHandler.ListMine)
			quizzes.GET("/code/:code", quizHandler.GetQuizByCode)

			quizByID := quizzes.Group("/:id")
			quizByID.Use(middleware.ExtractUintParam("id", "quizID"))
			{
				quizByID.GET("", quizHandler.GetQuiz)
				quizByID.PUT("", quizHandler.UpdateQuiz)
				quizByID.DELETE("", quizHandler.DeleteQuiz)
				quizByID.PATCH("/publish", quizHandler.SetPublished)
				quizByID.POST("/questions", quizHandler.AddQuestion)

				questionByID := quizByID.Group("/questions/:questionId")
				questionByID.Use(middleware.ExtractUintParam("questionId", "questionID"))
				{
					questionByID.PUT("", quizHandler.UpdateQuestion)
					questionByID.DELETE("", quizHandler.DeleteQuestion)
				}
			}
		}

		// Результаты
		results := api.Group("/results")
		results.Use(authMiddleware.RequireAuth())
		{
			results.POST("/custom/submit", rateLimiter.Limit(middleware.SubmitRateLimitConfig()), resultHandler.SubmitCustomQuiz)
			results.GET("/custom/leaderboard/:code", resultHandler.GetLeaderboardByCode)
			results.GET("/user/history", resultHandler.GetUserHistory)

			resultByQuiz := results.Group("/:quizId")
			resultByQuiz.Use(middleware.ExtractUintParam("quizId", "quizID"))
			{
				resultByQuiz.POST("/submit", rateLimiter.Limit(middleware.SubmitRateLimitConfig()), resultHandler.SubmitQuiz)
				resultByQuiz.GET("/leaderboard", resultHandler.GetLeaderboard)
				resultByQuiz.GET("/leaderboard/export", resultHandler.ExportLeaderboard)
				resultByQuiz.GET("/analytics", resultHandler.GetAnalytics)
				resultByQuiz.GET("/result", resultHandler.GetUserQuizResult)
			}
		}

		// Администрирование
		admin := api.Group("/admin")
		admin.Use(authMiddleware.RequireAuth(), authMiddleware.AdminOnly())
		{
			admin.GET("/total-users", adminHandler.TotalUsers)
			admin.GET("/total-quizzes", adminHandler.TotalQuizzes)
			admin.GET("/users", adminHandler.ListUsers)
			admin.DELETE("/users/:userId", middleware.ExtractUintParam("userId", "userID"), adminHandler.DeleteUser)
		}
	}

	// Подписка на события лидерборда
	router.GET("/ws/leaderboard", wsHandler.SubscribeLeaderboard)

	// HTTP сервер с тайм-аутами для защиты от slow client attacks
	readTimeout := cfg.Server.ReadTimeout
	if readTimeout <= 0 {
		readTimeout = 15
	}
	writeTimeout := cfg.Server.WriteTimeout
	if writeTimeout <= 0 {
		writeTimeout = 30
	}
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(readTimeout) * time.Second,
		WriteTimeout: time.Duration(writeTimeout) * time.Second,
	}

	go func() {
		log.Printf("Starting server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	hub.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
		os.Exit(1)
	}

	if err := redisClient.Close(); err != nil {
		log.Printf("Error closing Redis client: %v", err)
	}

	log.Println("Server exited properly")
}
