package config

import (
	"fmt"
	"os"
)

// Config concentra toda a configuração do serviço, carregada do ambiente
type Config struct {
	ServiceName string
	Port        string
	Environment string

	DatabaseURL string

	RedisAddr string

	PaystackSecretKey   string
	PaystackBaseURL     string
	PaystackCallbackURL string

	SMTPHost string
	SMTPPort int
	SMTPUser string
	SMTPPass string
	MailFrom string

	OTLPEndpoint string
}

// Load monta a configuração a partir das variáveis de ambiente
func Load() Config {
	return Config{
		ServiceName: getEnv("SERVICE_NAME", "storefront-api"),
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),

		DatabaseURL: fmt.Sprintf(
			"postgres://%s:%s@%s:%s/%s?sslmode=disable",
			getEnv("DATABASE_USER", "root"),
			getEnv("DATABASE_PASSWORD", "pass"),
			getEnv("DATABASE_HOST", "localhost"),
			getEnv("DATABASE_PORT", "5432"),
			getEnv("DATABASE_NAME", "storefront_db"),
		),

		RedisAddr: getEnv("REDIS_ADDR", "localhost:6379"),

		PaystackSecretKey:   getEnv("PAYSTACK_SECRET_KEY", ""),
		PaystackBaseURL:     getEnv("PAYSTACK_BASE_URL", "https://api.paystack.co"),
		PaystackCallbackURL: getEnv("PAYSTACK_CALLBACK_URL", "http://localhost:8080/orders/verify"),

		SMTPHost: getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort: getEnvInt("SMTP_PORT", 587),
		SMTPUser: getEnv("EMAIL_USER", ""),
		SMTPPass: getEnv("EMAIL_PASS", ""),
		MailFrom: getEnv("MAIL_FROM", "Storefront <no-reply@storefront.local>"),

		OTLPEndpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
	}
}

// IsDevelopment indica se o serviço roda em modo de desenvolvimento
func (c Config) IsDevelopment() bool {
	return c.Environment != "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var parsed int
	if _, err := fmt.Sscanf(value, "%d", &parsed); err != nil {
		return defaultValue
	}
	return parsed
}
