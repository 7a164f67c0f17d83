package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Бэкенды хранилища таблицы рекордов
const (
	LeaderboardBackendFile   = "file"
	LeaderboardBackendRedis  = "redis"
	LeaderboardBackendMemory = "memory"
)

// Источники каталога вопросов
const (
	CatalogSourceBuiltin  = "builtin"
	CatalogSourcePostgres = "postgres"
)

// Config хранит все настройки приложения
type Config struct {
	Server      ServerConfig      `mapstructure:"server"`
	Database    DatabaseConfig    `mapstructure:"database"`
	Redis       RedisConfig       `mapstructure:"redis"`
	Leaderboard LeaderboardConfig `mapstructure:"leaderboard"`
	Catalog     CatalogConfig     `mapstructure:"catalog"`
	Game        GameConfig        `mapstructure:"game"`
}

// ServerConfig содержит настройки HTTP сервера
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	ReadTimeout    int      `mapstructure:"read_timeout"`
	WriteTimeout   int      `mapstructure:"write_timeout"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	// Лимит создания сессий в минуту на IP; действует при наличии Redis, 0 - выключен
	SessionRateLimit int `mapstructure:"session_rate_limit"`
}

// DatabaseConfig содержит настройки подключения к PostgreSQL.
// Нужна только для каталога из postgres.
type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

// RedisConfig содержит унифицированные настройки подключения к Redis
// Поддерживает режимы: single, sentinel, cluster
type RedisConfig struct {
	// Mode: "single", "sentinel" или "cluster". По умолчанию "single".
	Mode string `mapstructure:"mode"`

	// Addrs: список адресов (хост:порт). Для 'single' используется первый.
	Addrs []string `mapstructure:"addrs"`

	// Addr: адрес для 'single', если Addrs пуст.
	Addr string `mapstructure:"addr"`

	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`

	// MasterName: только для режима "sentinel"
	MasterName string `mapstructure:"master_name"`

	MaxRetries      int `mapstructure:"max_retries"`
	MinRetryBackoff int `mapstructure:"min_retry_backoff"` // мс
	MaxRetryBackoff int `mapstructure:"max_retry_backoff"` // мс
}

// LeaderboardConfig содержит настройки таблицы рекордов
type LeaderboardConfig struct {
	Backend    string `mapstructure:"backend"`
	Key        string `mapstructure:"key"`
	FilePath   string `mapstructure:"file_path"`
	MaxEntries int    `mapstructure:"max_entries"`
}

// CatalogConfig содержит настройки каталога вопросов
type CatalogConfig struct {
	Source           string `mapstructure:"source"`
	Shuffle          bool   `mapstructure:"shuffle"`
	QuestionsPerGame int    `mapstructure:"questions_per_game"` // 0 - без ограничения
}

// GameConfig содержит настройки игровых сессий и начисления очков
type GameConfig struct {
	SessionTTL      time.Duration `mapstructure:"session_ttl"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`
	StreakBonus     int           `mapstructure:"streak_bonus"`
	StreakThreshold int           `mapstructure:"streak_threshold"`
}

// PostgresConnectionString формирует строку подключения к PostgreSQL
func (d *DatabaseConfig) PostgresConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

// PostgresURL формирует URL подключения для golang-migrate
func (d *DatabaseConfig) PostgresURL() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

func setDefaults(vip *viper.Viper) {
	vip.SetDefault("server.port", "8080")
	vip.SetDefault("server.read_timeout", 10)
	vip.SetDefault("server.write_timeout", 10)
	vip.SetDefault("server.allowed_origins", []string{"http://localhost:3000", "http://localhost:5173"})
	vip.SetDefault("server.session_rate_limit", 30)

	vip.SetDefault("database.port", "5432")
	vip.SetDefault("database.sslmode", "disable")

	vip.SetDefault("redis.mode", "single")

	vip.SetDefault("leaderboard.backend", LeaderboardBackendFile)
	vip.SetDefault("leaderboard.key", "pylearn_scoreboard")
	vip.SetDefault("leaderboard.file_path", "data/scoreboard.json")
	vip.SetDefault("leaderboard.max_entries", 10)

	vip.SetDefault("catalog.source", CatalogSourceBuiltin)
	vip.SetDefault("catalog.shuffle", false)
	vip.SetDefault("catalog.questions_per_game", 0)

	vip.SetDefault("game.session_ttl", 2*time.Hour)
	vip.SetDefault("game.cleanup_interval", 10*time.Minute)
	vip.SetDefault("game.streak_bonus", 5)
	vip.SetDefault("game.streak_threshold", 3)
}

// Load загружает конфигурацию из файла и переменных окружения
func Load(configPath string) (*Config, error) {
	vip := viper.New()
	setDefaults(vip)

	// Привязка для секции Server
	vip.BindEnv("server.port", "SERVER_PORT")
	vip.BindEnv("server.allowed_origins", "SERVER_ALLOWED_ORIGINS")
	vip.BindEnv("server.session_rate_limit", "SERVER_SESSION_RATE_LIMIT")

	// Привязка для секции Database
	vip.BindEnv("database.host", "DATABASE_HOST")
	vip.BindEnv("database.port", "DATABASE_PORT")
	vip.BindEnv("database.user", "DATABASE_USER")
	vip.BindEnv("database.password", "DATABASE_PASSWORD")
	vip.BindEnv("database.dbname", "DATABASE_DBNAME")
	vip.BindEnv("database.sslmode", "DATABASE_SSLMODE")

	// Привязка для секции Redis
	vip.BindEnv("redis.mode", "REDIS_MODE")
	vip.BindEnv("redis.addrs", "REDIS_ADDRS")
	vip.BindEnv("redis.addr", "REDIS_ADDR")
	vip.BindEnv("redis.password", "REDIS_PASSWORD")
	vip.BindEnv("redis.db", "REDIS_DB")
	vip.BindEnv("redis.master_name", "REDIS_MASTER_NAME")

	// Привязка для секции Leaderboard
	vip.BindEnv("leaderboard.backend", "LEADERBOARD_BACKEND")
	vip.BindEnv("leaderboard.key", "LEADERBOARD_KEY")
	vip.BindEnv("leaderboard.file_path", "LEADERBOARD_FILE_PATH")
	vip.BindEnv("leaderboard.max_entries", "LEADERBOARD_MAX_ENTRIES")

	// Привязка для секции Catalog
	vip.BindEnv("catalog.source", "CATALOG_SOURCE")
	vip.BindEnv("catalog.shuffle", "CATALOG_SHUFFLE")
	vip.BindEnv("catalog.questions_per_game", "CATALOG_QUESTIONS_PER_GAME")

	// Привязка для секции Game
	vip.BindEnv("game.session_ttl", "GAME_SESSION_TTL")
	vip.BindEnv("game.cleanup_interval", "GAME_CLEANUP_INTERVAL")
	vip.BindEnv("game.streak_bonus", "GAME_STREAK_BONUS")
	vip.BindEnv("game.streak_threshold", "GAME_STREAK_THRESHOLD")

	if configPath != "" {
		vip.SetConfigFile(configPath)
		// Файл не обязателен: переменные окружения и умолчания уже заданы
		if err := vip.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); ok || os.IsNotExist(err) {
				log.Printf("Файл конфигурации '%s' не найден, используются переменные окружения/умолчания.", configPath)
			} else {
				log.Printf("Предупреждение: не удалось прочитать файл конфигурации '%s': %v", configPath, err)
			}
		}
	}

	var cfg Config
	if err := vip.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// REDIS_ADDRS и SERVER_ALLOWED_ORIGINS из env приходят одной строкой
	cfg.Redis.Addrs = splitList(cfg.Redis.Addrs)
	cfg.Server.AllowedOrigins = splitList(cfg.Server.AllowedOrigins)

	if os.Getenv("GIN_MODE") != "release" {
		log.Printf("--- Загруженные значения конфигурации ---")
		log.Printf("Server Port: %s", cfg.Server.Port)
		log.Printf("Allowed Origins: %v", cfg.Server.AllowedOrigins)
		log.Printf("Database Host: %s", cfg.Database.Host)
		log.Printf("Database Name: %s", cfg.Database.DBName)
		log.Printf("Redis Addr: %s (mode: %s)", cfg.Redis.Addr, cfg.Redis.Mode)
		log.Printf("Leaderboard Backend: %s (key: %s)", cfg.Leaderboard.Backend, cfg.Leaderboard.Key)
		log.Printf("Catalog Source: %s (shuffle: %t, per game: %d)", cfg.Catalog.Source, cfg.Catalog.Shuffle, cfg.Catalog.QuestionsPerGame)
		log.Printf("Session TTL: %s", cfg.Game.SessionTTL)
		log.Printf("-----------------------------------------")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate проверяет согласованность настроек
func (c *Config) Validate() error {
	if c.Server.SessionRateLimit < 0 {
		return fmt.Errorf("server.session_rate_limit must not be negative")
	}

	switch c.Leaderboard.Backend {
	case LeaderboardBackendFile:
		if c.Leaderboard.FilePath == "" {
			return fmt.Errorf("leaderboard.file_path is required for the file backend (check LEADERBOARD_FILE_PATH env var)")
		}
	case LeaderboardBackendRedis:
		if len(c.Redis.Addrs) == 0 && c.Redis.Addr == "" {
			return fmt.Errorf("redis configuration (addr or addrs) is required for the redis leaderboard backend (check REDIS_ADDR env var)")
		}
	case LeaderboardBackendMemory:
	default:
		return fmt.Errorf("unsupported leaderboard backend: %s", c.Leaderboard.Backend)
	}
	if c.Leaderboard.Key == "" {
		return fmt.Errorf("leaderboard.key must not be empty")
	}
	if c.Leaderboard.MaxEntries <= 0 {
		return fmt.Errorf("leaderboard.max_entries must be positive, got %d", c.Leaderboard.MaxEntries)
	}

	switch c.Catalog.Source {
	case CatalogSourceBuiltin:
	case CatalogSourcePostgres:
		if c.Database.Host == "" || c.Database.DBName == "" || c.Database.User == "" {
			return fmt.Errorf("database configuration (host, dbname, user) is incomplete for the postgres catalog (check DATABASE_HOST, DATABASE_DBNAME, DATABASE_USER env vars)")
		}
	default:
		return fmt.Errorf("unsupported catalog source: %s", c.Catalog.Source)
	}
	if c.Catalog.QuestionsPerGame < 0 {
		return fmt.Errorf("catalog.questions_per_game must not be negative")
	}

	if c.Game.SessionTTL <= 0 || c.Game.CleanupInterval <= 0 {
		return fmt.Errorf("game.session_ttl and game.cleanup_interval must be positive")
	}
	if c.Game.StreakBonus < 0 || c.Game.StreakThreshold < 1 {
		return fmt.Errorf("invalid streak settings: bonus=%d threshold=%d", c.Game.StreakBonus, c.Game.StreakThreshold)
	}
	return nil
}

func splitList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
