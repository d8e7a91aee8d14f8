package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	EnforceHTTPS bool
	Environment  string
}

// Settings holds process-wide settings read from the environment. The JWT
// fields are carried for a future auth layer; nothing reads them today.
type Settings struct {
	Port           string
	DatabaseDriver string
	DatabaseURL    string
	DatabasePath   string
	MigrationsPath string

	SecretKey          string
	Algorithm          string
	TokenExpireMinutes int
}

// LoadSettings reads the environment, honoring a .env file when present.
func LoadSettings() Settings {
	_ = godotenv.Load()

	return Settings{
		Port:           getEnv("PORT", "8080"),
		DatabaseDriver: getEnv("DATABASE_DRIVER", "sqlite"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		DatabasePath:   getEnv("DATABASE_PATH", "database.db"),
		MigrationsPath: getEnv("MIGRATIONS_PATH", "db/migrations"),

		SecretKey:          getEnv("SECRET_KEY", "change_me"),
		Algorithm:          getEnv("ALGORITHM", "HS256"),
		TokenExpireMinutes: getEnvInt("ACCESS_TOKEN_EXPIRE_MINUTES", 30),
	}
}

func GetDefaultConfig() *AppConfig {
	return &AppConfig{
		EnforceHTTPS: false,
		Environment:  "development",
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}
