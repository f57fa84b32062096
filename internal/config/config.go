package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

var AppEnv Config

type Config struct {
	Environment   string
	Port          string
	PublicDir     string
	TemplateGlob  string
	MongoURI      string
	DBName        string
	SessionSecret string
	SessionTTL    time.Duration
	SMTP          SMTPConfig
	Kafka         KafkaConfig
}

type SMTPConfig struct {
	Host        string
	Port        int
	User        string
	Pass        string
	NotifyEmail string
}

// Enabled reports whether enough settings are present to dial a server.
func (s SMTPConfig) Enabled() bool {
	return s.Host != "" && s.User != "" && s.Pass != ""
}

type KafkaConfig struct {
	Brokers  []string
	Topic    string
	Username string
	Password string
}

func (k KafkaConfig) Enabled() bool {
	return len(k.Brokers) > 0
}

// IsProduction hides internal error details from API responses.
func (c Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}

func Load() {
	if err := godotenv.Load(); err != nil {
		log.Println(".env not loaded:", err)
	}
	AppEnv = FromEnv()
}

// FromEnv reads the configuration from the process environment without
// touching .env files.
func FromEnv() Config {
	return Config{
		Environment:   getEnvOrDefault("APP_ENV", "development"),
		Port:          getEnvOrDefault("PORT", "8080"),
		PublicDir:     getEnvOrDefault("PUBLIC_DIR", "./public"),
		TemplateGlob:  getEnvOrDefault("TEMPLATE_GLOB", "templates/**/*"),
		MongoURI:      getEnvOrDefault("MONGO_URI", getEnvOrDefault("MONGODB_URI", "")),
		DBName:        getEnvOrDefault("DB_NAME", "storefront"),
		SessionSecret: getEnvOrDefault("SESSION_SECRET", getEnvOrDefault("NEXTAUTH_SECRET", "")),
		SessionTTL:    getDurationEnv("SESSION_TTL", 24, time.Hour),
		SMTP: SMTPConfig{
			Host:        getEnvOrDefault("SMTP_HOST", ""),
			Port:        getIntEnv("SMTP_PORT", 587),
			User:        getEnvOrDefault("SMTP_USER", ""),
			Pass:        getEnvOrDefault("SMTP_PASS", ""),
			NotifyEmail: getEnvOrDefault("ADMIN_NOTIFY_EMAIL", ""),
		},
		Kafka: KafkaConfig{
			Brokers:  getListEnv("KAFKA_BROKERS"),
			Topic:    getEnvOrDefault("KAFKA_TOPIC", "order-events"),
			Username: getEnvOrDefault("KAFKA_USERNAME", ""),
			Password: getEnvOrDefault("KAFKA_PASSWORD", ""),
		},
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil && parsed > 0 {
			return parsed
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue int, unit time.Duration) time.Duration {
	return time.Duration(getIntEnv(key, defaultValue)) * unit
}

func getListEnv(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
