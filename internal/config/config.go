package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv    string
	Port      string
	DBDriver  string // sqlite | pgx
	DBDSN     string
	SeedDemo  bool
	LogLevel  string
	LogFile   string
	RedisURL  string
	RedisAddr string
	RedisPass string
	CacheTTL  time.Duration
	Origins   []string
	BodyLimit int
}

func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] .env file not found, using system environment variables")
	}

	driver := strings.ToLower(getEnv("DB_DRIVER", "sqlite"))
	dsn := getEnv("DB_DSN", getEnv("DATABASE_URL", ""))
	if dsn == "" && driver == "sqlite" {
		dsn = "wardrobe.db" // sqlite file in project root
	}

	ttl, err := time.ParseDuration(getEnv("CACHE_TTL", "5m"))
	if err != nil {
		ttl = 5 * time.Minute
	}
	bodyLimit, _ := strconv.Atoi(os.Getenv("BODY_LIMIT"))
	if bodyLimit <= 0 {
		bodyLimit = 1 << 20 // 1 MiB
	}

	origins := []string{"http://localhost:5173"}
	if o := os.Getenv("ORIGIN_URL"); o != "" {
		origins = append(origins, o)
	}

	cfg := Config{
		AppEnv:    getEnv("APP_ENV", "development"),
		Port:      getEnv("PORT", "8080"),
		DBDriver:  driver,
		DBDSN:     dsn,
		SeedDemo:  getEnv("SEED_DEMO", "true") == "true",
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFile:   os.Getenv("LOG_FILE"),
		RedisURL:  os.Getenv("REDIS_URL"),
		RedisAddr: os.Getenv("REDIS_ADDR"),
		RedisPass: os.Getenv("REDIS_PASSWORD"),
		CacheTTL:  ttl,
		Origins:   origins,
		BodyLimit: bodyLimit,
	}
	log.Printf("[config] APP_ENV=%s PORT=%s DB_DRIVER=%s SEED_DEMO=%t LOG_LEVEL=%s",
		cfg.AppEnv, cfg.Port, cfg.DBDriver, cfg.SeedDemo, cfg.LogLevel)
	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
