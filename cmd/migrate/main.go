package main

import (
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/lib/pq"

	"github.com/yourusername/pylearn-api/internal/config"
	"github.com/yourusername/pylearn-api/pkg/database"
	"github.com/yourusername/pylearn-api/pkg/logger"
)

// Утилита управления схемой каталога вопросов.
// Примеры:
//
//	migrate -action up
//	migrate -action down -steps 1
//	migrate -action force -version 1
//	migrate -action version
func main() {
	action := flag.String("action", "up", "up, down, force или version")
	version := flag.Int("version", -1, "версия для force")
	steps := flag.Int("steps", 0, "количество шагов для up/down (0 - все)")
	source := flag.String("source", database.DefaultMigrationsSource, "источник миграций")
	flag.Parse()

	logger.Setup(os.Getenv("GIN_MODE") != "release")

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("[Migrate] Failed to load config: %v", err)
	}

	db, err := sql.Open("postgres", cfg.Database.PostgresConnectionString())
	if err != nil {
		log.Fatalf("[Migrate] Failed to open database: %v", err)
	}
	defer db.Close()

	m, err := database.NewMigrator(db, *source)
	if err != nil {
		log.Fatalf("[Migrate] %v", err)
	}

	if err := run(m, *action, *version, *steps); err != nil {
		log.Fatalf("[Migrate] %s failed: %v", *action, err)
	}

	v, dirty, err := m.Version()
	switch {
	case errors.Is(err, migrate.ErrNilVersion):
		fmt.Println("Миграции не применены")
	case err != nil:
		log.Fatalf("[Migrate] Failed to read version: %v", err)
	default:
		fmt.Printf("Текущая версия: %d (dirty: %t)\n", v, dirty)
	}
}

func run(m *migrate.Migrate, action string, version, steps int) error {
	var err error
	switch action {
	case "up":
		if steps > 0 {
			err = m.Steps(steps)
		} else {
			err = m.Up()
		}
	case "down":
		if steps > 0 {
			err = m.Steps(-steps)
		} else {
			err = m.Down()
		}
	case "force":
		if version < 0 {
			return fmt.Errorf("-version is required for force")
		}
		log.Printf("[Migrate] Forcing migration version to %d to clean dirty state...", version)
		err = m.Force(version)
	case "version":
		return nil
	default:
		return fmt.Errorf("unknown action %q", action)
	}
	if errors.Is(err, migrate.ErrNoChange) {
		log.Println("[Migrate] Изменений нет")
		return nil
	}
	return err
}
