package config

import "os"

type Config struct {
	DatabaseURL       string
	JWTSecret         string
	Port              string
	GoogleClientIDs   string
	FCMServiceAccount string
	InternalSecret    string
	LogLevel          string
	LogPath           string
}

func Load() *Config {
	return &Config{
		DatabaseURL:       getEnv("DATABASE_URL", "streakmates.db"),
		JWTSecret:         getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
		Port:              getEnv("PORT", "8080"),
		GoogleClientIDs:   getEnv("GOOGLE_CLIENT_IDS", ""),
		FCMServiceAccount: getEnv("FCM_SERVICE_ACCOUNT", ""),
		InternalSecret:    getEnv("INTERNAL_SECRET", ""),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		LogPath:           getEnv("LOG_PATH", ""),
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
