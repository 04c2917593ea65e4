package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Notifier backends selectable through NOTIFIER
const (
	NotifierEmail = "email"
	NotifierAMQP  = "amqp"
	NotifierLog   = "log"
)

type Config struct {
	Port              string
	DBUrl             string
	SupabaseUrl       string
	SupabaseJWTSecret string
	FrontendURL       string
	LogLevel          string
	// SMTP
	SMTPHost      string
	SMTPPort      string
	SMTPUsername  string
	SMTPPassword  string
	SMTPFromEmail string
	// Redis/Upstash
	UpstashRedisURL      string
	UpstashRedisPassword string
	// Notifications
	Notifier    string
	RabbitMQURL string
	NotifyQueue string
	// Matching
	MatchThreshold                int
	ProfileCompleteThreshold      int
	RecommendationLimit           int
	RecommendationCacheTTLSeconds int
	// Audit
	AuditLogToDB bool
	// Per-IP requests per minute
	RateLimitPerMinute int
}

func LoadConfig() (*Config, error) {
	// .env is optional outside local development
	_ = godotenv.Load()

	cfg := &Config{
		Port:              getEnv("PORT", "8080"),
		DBUrl:             getEnv("DATABASE_URL", ""),
		SupabaseUrl:       strings.TrimRight(getEnv("SUPABASE_URL", ""), "/"),
		SupabaseJWTSecret: getEnv("SUPABASE_JWT_SECRET", getEnv("SUPABASE_JWT_KEY", "")),
		FrontendURL:       strings.TrimRight(getEnv("FRONTEND_URL", "http://localhost:3000"), "/"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),

		SMTPHost:      getEnv("SMTP_HOST", "smtp-relay.brevo.com"),
		SMTPPort:      getEnv("SMTP_PORT", "587"),
		SMTPUsername:  getEnv("SMTP_USERNAME", ""),
		SMTPPassword:  getEnv("SMTP_PASSWORD", ""),
		SMTPFromEmail: getEnv("SMTP_FROM_EMAIL", "noreply@jobboard.local"),

		UpstashRedisURL:      getEnv("UPSTASH_REDIS_URL", ""),
		UpstashRedisPassword: getEnv("UPSTASH_REDIS_PASSWORD", ""),

		Notifier:    strings.ToLower(getEnv("NOTIFIER", NotifierLog)),
		RabbitMQURL: getEnv("RABBITMQ_URL", ""),
		NotifyQueue: getEnv("NOTIFY_QUEUE", "jobboard.notifications"),

		MatchThreshold:                getEnvInt("MATCH_THRESHOLD", 30),
		ProfileCompleteThreshold:      getEnvInt("PROFILE_COMPLETE_THRESHOLD", 80),
		RecommendationLimit:           getEnvInt("RECOMMENDATION_LIMIT", 6),
		RecommendationCacheTTLSeconds: getEnvInt("RECOMMENDATION_CACHE_TTL_SECONDS", 300),

		AuditLogToDB: getEnvBool("AUDIT_LOG_TO_DB", true),

		RateLimitPerMinute: getEnvInt("RATE_LIMIT_PER_MINUTE", 100),
	}

	if cfg.DBUrl == "" {
		log.Println("WARNING: DATABASE_URL is missing. Application may fail to connect.")
	}
	if cfg.UpstashRedisURL == "" {
		log.Println("WARNING: UPSTASH_REDIS_URL not configured. Recommendations will not be cached.")
	}
	if cfg.Notifier == NotifierAMQP && cfg.RabbitMQURL == "" {
		log.Println("WARNING: NOTIFIER=amqp but RABBITMQ_URL is empty. Falling back to log notifier.")
		cfg.Notifier = NotifierLog
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

// getEnvBool returns a boolean environment variable or fallback if not set/invalid
func getEnvBool(key string, fallback bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}
