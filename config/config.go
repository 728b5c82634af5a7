package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

var (
	Port = "8080"

	PostgresHost     = "localhost"
	PostgresPort     = "5432"
	PostgresUser     = "postgres"
	PostgresPassword = "postgres"
	PostgresDB       = "dailypuzzle"

	RedisAddr     = "localhost:6379"
	RedisPassword = ""

	MinioEndpoint  = "localhost:9000"
	MinioAccessKey = ""
	MinioSecretKey = ""
	MinioUseSSL    = false
	PuzzleBucket   = "puzzles"

	JWTSecret     = ""
	CronSecret    = ""
	SyncSecretKey = ""

	// PuzzlesDir is the local tree the sync job reads, one folder per puzzle.
	PuzzlesDir = "./puzzles"

	// Global per-IP API rate limit: APIRateLimit tokens refilled per minute,
	// APIRateBurst as bucket capacity. The submit endpoint has its own
	// per-puzzle cooldowns on top of this.
	APIRateLimit = 10000
	APIRateBurst = 1500

	MailHost     = ""
	MailPort     = "587"
	MailUsername = ""
	MailPassword = ""
	AdminEmail   = ""

	ClientUrl = "http://localhost:3000"

	DefaultPassword = ""
)

// LoadEnv reads the .env file if present and overrides the defaults above
// with any environment variables that are set.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	Port = getEnv("PORT", Port)

	PostgresHost = getEnv("POSTGRES_HOST", PostgresHost)
	PostgresPort = getEnv("POSTGRES_PORT", PostgresPort)
	PostgresUser = getEnv("POSTGRES_USER", PostgresUser)
	PostgresPassword = getEnv("POSTGRES_PASSWORD", PostgresPassword)
	PostgresDB = getEnv("POSTGRES_DB", PostgresDB)

	RedisAddr = getEnv("REDIS_ADDR", RedisAddr)
	RedisPassword = getEnv("REDIS_PASSWORD", RedisPassword)

	MinioEndpoint = getEnv("MINIO_ENDPOINT", MinioEndpoint)
	MinioAccessKey = getEnv("MINIO_ACCESS_KEY", MinioAccessKey)
	MinioSecretKey = getEnv("MINIO_SECRET_KEY", MinioSecretKey)
	MinioUseSSL = getEnv("MINIO_USE_SSL", "false") == "true"
	PuzzleBucket = getEnv("PUZZLE_BUCKET", PuzzleBucket)

	JWTSecret = getEnv("JWT_SECRET", JWTSecret)
	CronSecret = getEnv("CRON_SECRET", CronSecret)
	SyncSecretKey = getEnv("SYNC_SECRET_KEY", SyncSecretKey)

	PuzzlesDir = getEnv("PUZZLES_DIR", PuzzlesDir)

	APIRateLimit = getEnvInt("API_RATE_LIMIT", APIRateLimit)
	APIRateBurst = getEnvInt("API_RATE_BURST", APIRateBurst)

	MailHost = getEnv("MAIL_HOST", MailHost)
	MailPort = getEnv("MAIL_PORT", MailPort)
	MailUsername = getEnv("MAIL_USERNAME", MailUsername)
	MailPassword = getEnv("MAIL_PASSWORD", MailPassword)
	AdminEmail = getEnv("ADMIN_EMAIL", AdminEmail)

	ClientUrl = getEnv("CLIENT_URL", ClientUrl)

	DefaultPassword = getEnv("DEFAULT_PASSWORD", DefaultPassword)
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Invalid %s value %q, using %d", key, value, fallback)
		return fallback
	}
	return parsed
}
