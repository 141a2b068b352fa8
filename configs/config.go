package configs

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DBDriver  string
	DBSource  string
	Port      string
	JWTSecret string
	JWTTTL    time.Duration
	LogLevel  string

	CORSOrigins []string

	PaymentGatewayURL string
	PaymentAPIKey     string

	RedisAddr    string
	KafkaBrokers []string
	KafkaTopic   string
	AMQPURL      string

	// order timeout sweeps
	PaymentTimeout        time.Duration
	DeliveryTimeout       time.Duration
	PaymentSweepInterval  time.Duration
	DeliverySweepInterval time.Duration

	SeedDemo bool
}

func LoadConfig() *Config {
	// .env เป็น optional (ใน container ใช้ env จริง)
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("⚠️ cannot load .env: %v", err)
	}

	return &Config{
		DBDriver:  getEnv("DB_DRIVER", "sqlite"),
		DBSource:  getEnv("DB_SOURCE", "takeout.db"),
		Port:      getEnv("PORT", "8000"),
		JWTSecret: getEnv("JWT_SECRET", "changeme"),
		JWTTTL:    getDuration("JWT_TTL", 24*time.Hour),
		LogLevel:  getEnv("LOG_LEVEL", "info"),

		CORSOrigins: getList("CORS_ORIGINS", []string{"*"}),

		PaymentGatewayURL: os.Getenv("PAYMENT_GATEWAY_URL"),
		PaymentAPIKey:     os.Getenv("PAYMENT_API_KEY"),

		RedisAddr:    os.Getenv("REDIS_ADDR"),
		KafkaBrokers: getList("KAFKA_BROKERS", nil),
		KafkaTopic:   getEnv("KAFKA_TOPIC", "order-events"),
		AMQPURL:      os.Getenv("AMQP_URL"),

		PaymentTimeout:        getDuration("PAYMENT_TIMEOUT", 15*time.Minute),
		DeliveryTimeout:       getDuration("DELIVERY_TIMEOUT", time.Hour),
		PaymentSweepInterval:  getDuration("PAYMENT_SWEEP_INTERVAL", time.Minute),
		DeliverySweepInterval: getDuration("DELIVERY_SWEEP_INTERVAL", 24*time.Hour),

		SeedDemo: getBool("SEED_DEMO", false),
	}
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("⚠️ invalid %s=%q, using %s", key, v, fallback)
		return fallback
	}
	return d
}

func getBool(key string, fallback bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func getList(key string, fallback []string) []string {
	v, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Helper เผื่อไฟล์อื่นต้องใช้
func MustGetEnv(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok {
		log.Fatalf("missing env: %s", key)
	}
	return v
}
