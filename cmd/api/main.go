// @title StudyHub API
// @version 1.0
// @description Study materials, summaries and generated quizzes with graded attempts.
// @contact.name API Support
// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html
// @host localhost:8090
// @BasePath /api
// @schemes http https
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
// @description Type 'Bearer YOUR_JWT_TOKEN' to authorize.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	_ "studyhub/cmd/api/docs"
	"studyhub/internal/adapter"
	"studyhub/internal/adapter/llm"
	"studyhub/internal/cache"
	"studyhub/internal/config"
	"studyhub/internal/database"
	"studyhub/internal/domain"
	"studyhub/internal/grading"
	"studyhub/internal/handler"
	"studyhub/internal/logger"
	"studyhub/internal/metrics"
	"studyhub/internal/middleware"
	"studyhub/internal/repository"
	"studyhub/internal/service"
	"studyhub/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	startupCtx, cancelStartup := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelStartup()

	db, err := database.Open(startupCtx, cfg)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// The cache is optional; without redis.address every read goes to the database.
	var cacheAdapter domain.Cache
	if cfg.Redis.Address != "" {
		redisClient, err := cache.NewRedisClient(startupCtx, cfg.Redis)
		if err != nil {
			appLogger.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer redisClient.Close()
		cacheAdapter = adapter.NewRedisCacheAdapter(redisClient)
		appLogger.Info("Successfully connected to Redis", zap.String("address", cfg.Redis.Address))
	} else {
		appLogger.Warn("redis.address is empty; caching disabled")
	}

	generator, err := llm.NewGenerator(startupCtx, cfg.LLM)
	if err != nil {
		appLogger.Fatal("Failed to create LLM client", zap.Error(err))
	}
	oracle := llm.NewOracle(generator, cfg.LLM.Timeout)
	appLogger.Info("LLM oracle initialized", zap.String("provider", cfg.LLM.Provider), zap.String("model", cfg.LLM.Model))

	// Initialize repositories
	userRepository := repository.NewSQLXUserRepository(db)
	materialRepository := repository.NewSQLXMaterialRepository(db)
	summaryRepository := repository.NewSQLXSummaryRepository(db)
	quizRepository := repository.NewSQLXQuizRepository(db)
	attemptRepository := repository.NewSQLXQuizAttemptRepository(db)
	txManager := repository.NewTransactionManagerAdapter(db)

	// Initialize services
	questionCache := service.NewQuestionCacheService(quizRepository, cacheAdapter, cfg.Cache.QuestionTTL)
	resultCache := service.NewResultCacheService(cacheAdapter, cfg.Cache.ResultTTL)

	authService, err := service.NewAuthService(cfg.JWT)
	if err != nil {
		appLogger.Fatal("Failed to create AuthService", zap.Error(err))
	}
	userService := service.NewUserService(userRepository, authService)
	materialService := service.NewMaterialService(materialRepository, nil)
	summaryService := service.NewSummaryService(materialRepository, summaryRepository, oracle)
	quizService := service.NewQuizService(materialRepository, quizRepository, txManager, oracle, questionCache, cfg.Quiz)
	attemptService := service.NewAttemptService(quizRepository, attemptRepository, txManager, grading.NewGrader(oracle), questionCache, resultCache)

	// Initialize handlers
	validator := validation.NewValidator(cfg.Quiz.MaxQuestions)
	handlers := routeHandlers{
		user:     handler.NewUserHandler(userService, validator),
		material: handler.NewMaterialHandler(materialService, validator),
		summary:  handler.NewSummaryHandler(summaryService, validator),
		quiz:     handler.NewQuizHandler(quizService, validator),
		attempt:  handler.NewAttemptHandler(attemptService, validator),
		health:   handler.NewHealthHandler(handler.PingerFunc(db.PingContext), cacheAdapter),
	}

	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		BodyLimit:    cfg.Server.BodyLimit,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(middleware.RequestLogger())
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{AllowOrigins: "*", AllowMethods: "GET,POST,OPTIONS", AllowHeaders: "Origin,Content-Type,Accept,Authorization", MaxAge: 300}))

	app.Get("/swagger/*", swagger.HandlerDefault)
	app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler()))

	apiGroup := app.Group("/api", middleware.OptionalAuth(authService))
	registerRoutes(apiGroup, handlers, validator)

	go func() {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("env", cfg.Env))
		if err := app.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		appLogger.Error("Server forced to shutdown", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}
