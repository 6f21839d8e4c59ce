package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config хранит все конфигурационные параметры приложения.
type Config struct {
	DatabaseURL  string
	JWTSecretKey string
	ServerPort   int
	LogLevel     slog.Level

	// Пустой RedisURL означает хранение незавершённых регистраций в памяти.
	RedisURL                  string
	RegistrationTTL           time.Duration
	RegistrationRedirectDelay time.Duration
	TokenTTL                  time.Duration

	CORSAllowedOrigins []string
	CookieSecure       bool

	R2AccountID       string
	R2AccessKeyID     string
	R2SecretAccessKey string
	R2BucketName      string
	R2PublicBaseURL   string
}

// Load загружает конфигурацию из переменных окружения.
// Опционально подгружает .env файл (полезно для локальной разработки).
func Load() (*Config, error) {
	// Загружаем .env файл, если он есть. Ошибку не считаем фатальной.
	_ = godotenv.Load()
	return FromEnv(os.Getenv)
}

// FromEnv builds the configuration from getenv without touching .env files.
func FromEnv(getenv func(string) string) (*Config, error) {
	dbURL := getenv("DATABASE_URL")
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is not set")
	}

	jwtKey := getenv("JWT_SECRET_KEY")
	if jwtKey == "" {
		return nil, fmt.Errorf("JWT_SECRET_KEY environment variable is not set")
	}

	portStr := getenv("SERVER_PORT")
	if portStr == "" {
		portStr = "8080" // Порт по умолчанию
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT environment variable: %w", err)
	}
	if port <= 0 || port > 65535 {
		return nil, fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", port)
	}

	var level slog.Level
	if raw := getenv("LOG_LEVEL"); raw != "" {
		if err := level.UnmarshalText([]byte(raw)); err != nil {
			return nil, fmt.Errorf("invalid LOG_LEVEL environment variable: %w", err)
		}
	}

	registrationTTL, err := durationEnv(getenv, "REGISTRATION_TTL", time.Hour)
	if err != nil {
		return nil, err
	}
	redirectDelay, err := durationEnv(getenv, "REGISTRATION_REDIRECT_DELAY", 3*time.Second)
	if err != nil {
		return nil, err
	}
	tokenTTL, err := durationEnv(getenv, "TOKEN_TTL", 24*time.Hour)
	if err != nil {
		return nil, err
	}

	cookieSecure := false
	if raw := getenv("COOKIE_SECURE"); raw != "" {
		cookieSecure, err = strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid COOKIE_SECURE environment variable: %w", err)
		}
	}

	cfg := &Config{
		DatabaseURL:               dbURL,
		JWTSecretKey:              jwtKey,
		ServerPort:                port,
		LogLevel:                  level,
		RedisURL:                  getenv("REDIS_URL"),
		RegistrationTTL:           registrationTTL,
		RegistrationRedirectDelay: redirectDelay,
		TokenTTL:                  tokenTTL,
		CORSAllowedOrigins:        splitList(getenv("CORS_ALLOWED_ORIGINS")),
		CookieSecure:              cookieSecure,
		R2AccountID:               getenv("R2_ACCOUNT_ID"),
		R2AccessKeyID:             getenv("R2_ACCESS_KEY_ID"),
		R2SecretAccessKey:         getenv("R2_SECRET_ACCESS_KEY"),
		R2BucketName:              getenv("R2_BUCKET_NAME"),
		R2PublicBaseURL:           getenv("R2_PUBLIC_BASE_URL"),
	}

	return cfg, nil
}

func durationEnv(getenv func(string) string, key string, def time.Duration) (time.Duration, error) {
	raw := getenv(key)
	if raw == "" {
		return def, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s environment variable: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %s", key, d)
	}
	return d, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
