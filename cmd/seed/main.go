package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/yourusername/pylearn-api/internal/config"
	memoryRepo "github.com/yourusername/pylearn-api/internal/repository/memory"
	pgRepo "github.com/yourusername/pylearn-api/internal/repository/postgres"
	"github.com/yourusername/pylearn-api/internal/service"
	"github.com/yourusername/pylearn-api/pkg/database"
	"github.com/yourusername/pylearn-api/pkg/logger"
)

// Загружает недостающие вопросы встроенного курса Python в PostgreSQL
func main() {
	logger.Setup(os.Getenv("GIN_MODE") != "release")

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("[Seed] Failed to load config: %v", err)
	}

	db, err := database.NewPostgresDB(cfg.Database.PostgresConnectionString())
	if err != nil {
		log.Fatalf("[Seed] %v", err)
	}
	if sqlDB, err := database.GetSQLDB(db); err == nil {
		defer sqlDB.Close()
	}

	if err := database.MigrateDB(db, database.DefaultMigrationsSource); err != nil {
		log.Fatalf("[Seed] %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	repo := pgRepo.NewQuestionRepo(db)
	inserted, err := service.SeedCatalog(ctx, repo, memoryRepo.BuiltinQuestions())
	if err != nil {
		log.Fatalf("[Seed] Failed to seed questions: %v", err)
	}
	log.Printf("[Seed] Новых вопросов: %d", inserted)

	counts, err := repo.CountByDifficulty(ctx)
	if err != nil {
		log.Fatalf("[Seed] Failed to count questions: %v", err)
	}
	for d, n := range counts {
		log.Printf("[Seed] %s: %d", d, n)
	}
}
