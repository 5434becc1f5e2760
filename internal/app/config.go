package app

import (
	"os"
	"strings"

	"github.com/vladislavdragonenkov/storefront/internal/auth"
)

// Config описывает минимальные настройки запуска приложения.
type Config struct {
	// HTTPAddr — адрес API витрины.
	HTTPAddr string
	// MetricsAddr — адрес служебного сервера (/metrics, health).
	MetricsAddr string
	// PostgresDSN — подключение к PostgreSQL; пустое значение включает in-memory хранилище.
	PostgresDSN string
	// KafkaBrokers — адреса брокеров; пустой список отключает публикацию событий.
	KafkaBrokers []string
	// AuthTokens — таблица bearer-токенов для dev-аутентификатора.
	AuthTokens map[string]auth.Identity
}

// DefaultConfig возвращает базовые адреса API и метрик.
func DefaultConfig() Config {
	return Config{
		HTTPAddr:    ":8080",
		MetricsAddr: ":9090",
	}
}

// ConfigFromEnv собирает конфигурацию из переменных окружения.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	if v := os.Getenv("STOREFRONT_HTTP_ADDR"); v != "" {
		cfg.HTTPAddr = v
	}
	if v := os.Getenv("STOREFRONT_METRICS_ADDR"); v != "" {
		cfg.MetricsAddr = v
	}
	cfg.PostgresDSN = strings.TrimSpace(os.Getenv("STOREFRONT_POSTGRES_DSN"))
	if v := strings.TrimSpace(os.Getenv("KAFKA_BROKERS")); v != "" {
		cfg.KafkaBrokers = strings.Split(v, ",")
	}
	cfg.AuthTokens = ParseAuthTokens(os.Getenv("STOREFRONT_AUTH_TOKENS"))
	return cfg
}

// ParseAuthTokens разбирает строку вида "token:userID,token:userID".
// Некорректные пары пропускаются.
func ParseAuthTokens(raw string) map[string]auth.Identity {
	tokens := make(map[string]auth.Identity)
	for _, pair := range strings.Split(raw, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		parts := strings.SplitN(pair, ":", 2)
		if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
			continue
		}
		tokens[parts[0]] = auth.Identity{UserID: parts[1]}
	}
	return tokens
}
