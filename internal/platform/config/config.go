package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	APIPort string
	JWTKey  []byte
	JWTExp  time.Duration

	// DBType selects the storage dialect: sqlite (default), postgres, mysql.
	DBType string
	// DBPath is the local database file when DBType is sqlite.
	DBPath string
	// DBURL is the connection string for postgres/mysql.
	DBURL string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Login throttle window; active only when RedisAddr is set.
	LoginMaxAttempts int
	LoginWindow      time.Duration

	// Default admin account seeded on first start.
	AdminUsername string
	AdminPassword string
}

var AppConfig *Config

func Load() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	AppConfig = &Config{
		APIPort:          getEnv("API_PORT", "8080"),
		JWTKey:           []byte(getEnv("JWT_SECRET", "defaultsecret")),
		JWTExp:           time.Duration(getEnvAsInt("JWT_EXPIRATION_HOURS", 72)) * time.Hour,
		DBType:           getEnv("DB_TYPE", "sqlite"),
		DBPath:           getEnv("DB_PATH", "questions.db"),
		DBURL:            getEnv("DB_URL", ""),
		RedisAddr:        getEnv("REDIS_ADDR", ""),
		RedisPassword:    getEnv("REDIS_PASSWORD", ""),
		RedisDB:          getEnvAsInt("REDIS_DB", 0),
		LoginMaxAttempts: getEnvAsInt("LOGIN_MAX_ATTEMPTS", 10),
		LoginWindow:      time.Duration(getEnvAsInt("LOGIN_WINDOW_SECONDS", 300)) * time.Second,
		AdminUsername:    getEnv("ADMIN_USERNAME", "admin"),
		AdminPassword:    getEnv("ADMIN_PASSWORD", "admin123"),
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return fallback
}
