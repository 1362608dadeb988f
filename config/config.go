package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port   string
	AppEnv string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	JWTAccessSecret    string
	JWTRefreshSecret   string
	JWTAccessTTLHours  int
	JWTRefreshTTLHours int

	// Redis backs realtime notification channels and reset tokens
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Kafka is only used when NotifyDispatch == "kafka"
	KafkaBrokers           []string
	KafkaNotificationTopic string
	KafkaGroupID           string

	NotifyDispatch   string
	NotifyQueueSize  int
	NotifyWorkers    int
	RateLimitPerMin  int64
	CORSOrigins      []string
	SweepEnabled     bool
	ResetTokenTTLMin int

	// Payment gateway
	RazorpayKey     string
	RazorpaySecret  string
	PaymentCurrency string

	// SMTP
	SMTPHost      string
	SMTPPort      string
	SMTPUsername  string
	SMTPPassword  string
	SMTPFromName  string
	SMTPFromEmail string
	FrontendURL   string

	// FCM
	FCMCredentialsPath string
	FCMProjectID       string
}

// Load reads environment variables and returns a Config object
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file, using environment variables")
	}

	return &Config{
		Port:   getEnv("PORT", "8080"),
		AppEnv: getEnv("APP_ENV", "development"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     getEnv("DB_NAME", "birthday_fund"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		JWTAccessSecret:    os.Getenv("JWT_ACCESS_SECRET"),
		JWTRefreshSecret:   os.Getenv("JWT_REFRESH_SECRET"),
		JWTAccessTTLHours:  getInt("JWT_ACCESS_TTL_HOURS", 24),
		JWTRefreshTTLHours: getInt("JWT_REFRESH_TTL_HOURS", 168),

		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       getInt("REDIS_DB", 0),

		KafkaBrokers:           getList("KAFKA_BROKERS", "localhost:9092"),
		KafkaNotificationTopic: getEnv("KAFKA_NOTIFICATION_TOPIC", "notifications"),
		KafkaGroupID:           getEnv("KAFKA_GROUP_ID", "birthday-fund-notifier"),

		NotifyDispatch:   strings.ToLower(getEnv("NOTIFY_DISPATCH", "queue")),
		NotifyQueueSize:  getInt("NOTIFY_QUEUE_SIZE", 256),
		NotifyWorkers:    getInt("NOTIFY_WORKERS", 2),
		RateLimitPerMin:  int64(getInt("RATE_LIMIT_PER_MINUTE", 100)),
		CORSOrigins:      getList("CORS_ORIGINS", "http://localhost:5173"),
		SweepEnabled:     getBool("SWEEP_ENABLED", true),
		ResetTokenTTLMin: getInt("RESET_TOKEN_TTL_MINUTES", 30),

		RazorpayKey:     os.Getenv("RAZORPAY_KEY_ID"),
		RazorpaySecret:  os.Getenv("RAZORPAY_KEY_SECRET"),
		PaymentCurrency: getEnv("PAYMENT_CURRENCY", "BRL"),

		SMTPHost:      os.Getenv("SMTP_HOST"),
		SMTPPort:      getEnv("SMTP_PORT", "587"),
		SMTPUsername:  os.Getenv("SMTP_USERNAME"),
		SMTPPassword:  os.Getenv("SMTP_PASSWORD"),
		SMTPFromName:  getEnv("SMTP_FROM_NAME", "Birthday Fund"),
		SMTPFromEmail: os.Getenv("SMTP_FROM_EMAIL"),
		FrontendURL:   getEnv("FRONTEND_URL", "http://localhost:5173"),

		FCMCredentialsPath: os.Getenv("FCM_CREDENTIALS_PATH"),
		FCMProjectID:       os.Getenv("FCM_PROJECT_ID"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func getBool(key string, fallback bool) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func getList(key, fallback string) []string {
	var out []string
	for _, part := range strings.Split(getEnv(key, fallback), ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
