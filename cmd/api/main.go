package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"github.com/yourusername/pylearn-api/internal/config"
	"github.com/yourusername/pylearn-api/internal/domain/repository"
	"github.com/yourusername/pylearn-api/internal/handler"
	"github.com/yourusername/pylearn-api/internal/middleware"
	fileRepo "github.com/yourusername/pylearn-api/internal/repository/file"
	memoryRepo "github.com/yourusername/pylearn-api/internal/repository/memory"
	pgRepo "github.com/yourusername/pylearn-api/internal/repository/postgres"
	redisRepo "github.com/yourusername/pylearn-api/internal/repository/redis"
	"github.com/yourusername/pylearn-api/internal/service"
	"github.com/yourusername/pylearn-api/internal/service/quizmanager"
	"github.com/yourusername/pylearn-api/pkg/database"
	"github.com/yourusername/pylearn-api/pkg/logger"
)

func main() {
	isProduction := os.Getenv("GIN_MODE") == "release"
	logger.Setup(!isProduction)

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

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Каталог вопросов
	var db *gorm.DB
	var questionRepo repository.QuestionRepository
	switch cfg.Catalog.Source {
	case config.CatalogSourcePostgres:
		db, err = database.NewPostgresDB(cfg.Database.PostgresConnectionString())
		if err != nil {
			log.Printf("Failed to connect to database: %v", err)
			os.Exit(1)
		}
		if err := database.MigrateDB(db, database.DefaultMigrationsSource); err != nil {
			log.Printf("Failed to migrate database: %v", err)
			os.Exit(1)
		}
		questionRepo = pgRepo.NewQuestionRepo(db)
		log.Printf("Каталог вопросов: PostgreSQL (%s)", cfg.Database.DBName)
	default:
		questionRepo = memoryRepo.NewBuiltinQuestionRepo()
		log.Printf("Каталог вопросов: встроенный курс Python")
	}

	// Хранилище таблицы рекордов
	store, redisClient, err := newLeaderboardStore(ctx, cfg)
	if err != nil {
		log.Printf("Failed to initialize leaderboard store: %v", err)
		os.Exit(1)
	}

	// Сервисы
	scoringConfig := quizmanager.DefaultScoringConfig()
	scoringConfig.StreakBonus = cfg.Game.StreakBonus
	scoringConfig.StreakThreshold = cfg.Game.StreakThreshold
	if err := scoringConfig.Validate(); err != nil {
		log.Printf("Invalid scoring config: %v", err)
		os.Exit(1)
	}

	catalogService := service.NewCatalogService(questionRepo, service.CatalogOptions{
		Shuffle:          cfg.Catalog.Shuffle,
		QuestionsPerGame: cfg.Catalog.QuestionsPerGame,
	}, nil)
	leaderboardService := service.NewLeaderboardService(store, cfg.Leaderboard.Key, cfg.Leaderboard.MaxEntries)
	gameService := service.NewGameService(
		catalogService,
		quizmanager.NewScoringEngine(scoringConfig),
		quizmanager.NewAnswerProcessor(nil),
		leaderboardService,
		cfg.Game.SessionTTL,
	)
	go gameService.RunCleanup(ctx, cfg.Game.CleanupInterval)

	// Инициализируем роутер Gin
	router := gin.Default()

	// В production не доверяем прокси-заголовкам, в разработке доверяем localhost
	trustedProxies := []string{"127.0.0.1", "::1"}
	if isProduction {
		trustedProxies = nil
	}
	if err := router.SetTrustedProxies(trustedProxies); err != nil {
		log.Printf("Warning: failed to set trusted proxies: %v", err)
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	handler.RegisterRoutes(router,
		handler.NewGameHandler(gameService, catalogService),
		handler.NewLeaderboardHandler(leaderboardService),
		handler.NewWSHandler(gameService, cfg.Server.AllowedOrigins),
		middleware.NewRateLimiter(redisClient),
		cfg.Server.SessionRateLimit,
	)

	// Настраиваем HTTP сервер с тайм-аутами
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		log.Printf("Starting server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("Failed to start server: %v", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Останавливаем фоновую очистку сессий
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Printf("Error closing Redis client: %v", err)
		}
	}
	if db != nil {
		if sqlDB, err := database.GetSQLDB(db); err == nil {
			sqlDB.Close()
		}
	}

	log.Println("Server exited properly")
}

// newLeaderboardStore выбирает хранилище таблицы рекордов по конфигурации.
// Клиент Redis возвращается для закрытия при остановке.
func newLeaderboardStore(ctx context.Context, cfg *config.Config) (repository.KVStore, redis.UniversalClient, error) {
	switch cfg.Leaderboard.Backend {
	case config.LeaderboardBackendRedis:
		client, err := database.NewUniversalRedisClient(ctx, cfg.Redis)
		if err != nil {
			return nil, nil, err
		}
		store, err := redisRepo.NewKVStore(client)
		if err != nil {
			client.Close()
			return nil, nil, err
		}
		log.Printf("Таблица рекордов: Redis (ключ %s)", cfg.Leaderboard.Key)
		return store, client, nil
	case config.LeaderboardBackendMemory:
		log.Printf("Таблица рекордов: в памяти (не сохраняется между запусками)")
		return memoryRepo.NewKVStore(), nil, nil
	case config.LeaderboardBackendFile:
		store, err := fileRepo.NewKVStore(cfg.Leaderboard.FilePath)
		if err != nil {
			return nil, nil, err
		}
		log.Printf("Таблица рекордов: файл %s", cfg.Leaderboard.FilePath)
		return store, nil, nil
	default:
		return nil, nil, fmt.Errorf("unsupported leaderboard backend: %s", cfg.Leaderboard.Backend)
	}
}
