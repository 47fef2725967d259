package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

type Config struct {
	ServiceName string
	ServerPort  int

	DatabaseURL string

	JWTSecret      []byte
	AdminJWTSecret []byte

	KafkaBrokers []string

	ESURL      string
	ESUser     string
	ESPassword string

	SMTPHost string
	SMTPPort int
	SMTPUser string
	SMTPPass string

	RazorpayKeyID  string
	RazorpaySecret string
}

func Load() Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Notice: .env file not found: %v. Using system environment variables", err)
	}

	return Config{
		ServiceName: EnvDefault("SERVICE_NAME", "shopnext"),
		ServerPort:  EnvIntDefault("SERVER_PORT", 5000),

		DatabaseURL: os.Getenv("DATABASE_URL"),

		JWTSecret:      []byte(os.Getenv("JWT_SECRET")),
		AdminJWTSecret: []byte(os.Getenv("ADMIN_JWT_SECRET")),

		KafkaBrokers: CSV(os.Getenv("KAFKA_BROKERS")),

		ESURL:      os.Getenv("ES_URL"),
		ESUser:     os.Getenv("ES_USER"),
		ESPassword: os.Getenv("ES_PASSWORD"),

		SMTPHost: os.Getenv("SMTP_HOST"),
		SMTPPort: EnvIntDefault("SMTP_PORT", 587),
		SMTPUser: os.Getenv("EMAIL_USER"),
		SMTPPass: os.Getenv("EMAIL_PASS"),

		RazorpayKeyID:  os.Getenv("RAZORPAY_KEY_ID"),
		RazorpaySecret: os.Getenv("RAZORPAY_SECRET"),
	}
}

func CSV(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func EnvDefault(key, def string) string {
	if os.Getenv(key) != "" {
		return os.Getenv(key)
	}
	return def
}

func EnvIntDefault(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func MustNonEmpty(value, envName string) {
	if value == "" {
		log.Fatalf("missing required env %s", envName)
	}
}

func MustNonEmptyBytes(value []byte, envName string) {
	if len(value) == 0 {
		log.Fatalf("missing required env %s", envName)
	}
}
