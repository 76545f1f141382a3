package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	// Server
	ServerPort    string `yaml:"server_port"`
	PublicBaseURL string `yaml:"public_base_url"`

	// Database
	DBDriver   string `yaml:"db_driver"`
	DBPath     string `yaml:"db_path"`
	DBHost     string `yaml:"db_host"`
	DBPort     string `yaml:"db_port"`
	DBUser     string `yaml:"db_user"`
	DBPassword string `yaml:"db_password"`
	DBName     string `yaml:"db_name"`
	DBSSLMode  string `yaml:"db_sslmode"`

	// Redis
	RedisHost     string `yaml:"redis_host"`
	RedisPort     string `yaml:"redis_port"`
	RedisPassword string `yaml:"redis_password"`
	RedisDB       int    `yaml:"redis_db"`

	// Sessions
	JWTSecret  string        `yaml:"jwt_secret"`
	SessionTTL time.Duration `yaml:"session_ttl"`

	// AWS S3
	AWSRegion          string `yaml:"aws_region"`
	AWSAccessKeyID     string `yaml:"aws_access_key_id"`
	AWSSecretAccessKey string `yaml:"aws_secret_access_key"`
	AWSEndpoint        string `yaml:"aws_endpoint"`
	S3UseSSL           string `yaml:"s3_use_ssl"`
	S3BucketName       string `yaml:"s3_bucket_name"`

	// RabbitMQ
	RabbitMQHost     string `yaml:"rabbitmq_host"`
	RabbitMQPort     string `yaml:"rabbitmq_port"`
	RabbitMQUser     string `yaml:"rabbitmq_user"`
	RabbitMQPassword string `yaml:"rabbitmq_password"`

	// Services URLs
	AccountServiceURL string `yaml:"account_service_url"`
	PostServiceURL    string `yaml:"post_service_url"`
}

// DefaultJWTSecret is the placeholder secret services refuse to start with.
const DefaultJWTSecret = "your-secret-key-change-in-production"

func Load() (*Config, error) {
	// Try to load .env file, but don't fail if it doesn't exist
	_ = godotenv.Load()

	config := &Config{}
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := loadFile(path, config); err != nil {
			return nil, err
		}
	}

	config.ServerPort = getEnv("SERVER_PORT", orDefault(config.ServerPort, "8080"))
	config.PublicBaseURL = getEnv("PUBLIC_BASE_URL", orDefault(config.PublicBaseURL, "http://localhost:8002"))

	config.DBDriver = getEnv("DB_DRIVER", orDefault(config.DBDriver, "postgres"))
	config.DBPath = getEnv("DB_PATH", orDefault(config.DBPath, "data/snapgram.db"))
	config.DBHost = getEnv("DB_HOST", orDefault(config.DBHost, "localhost"))
	config.DBPort = getEnv("DB_PORT", orDefault(config.DBPort, "5432"))
	config.DBUser = getEnv("DB_USER", orDefault(config.DBUser, "postgres"))
	config.DBPassword = getEnv("DB_PASSWORD", orDefault(config.DBPassword, "postgres"))
	config.DBName = getEnv("DB_NAME", orDefault(config.DBName, "snapgram"))
	config.DBSSLMode = getEnv("DB_SSLMODE", orDefault(config.DBSSLMode, "disable"))

	config.RedisHost = getEnv("REDIS_HOST", orDefault(config.RedisHost, "localhost"))
	config.RedisPort = getEnv("REDIS_PORT", orDefault(config.RedisPort, "6379"))
	config.RedisPassword = getEnv("REDIS_PASSWORD", config.RedisPassword)
	config.RedisDB = getEnvInt("REDIS_DB", config.RedisDB)

	config.JWTSecret = getEnv("JWT_SECRET", orDefault(config.JWTSecret, DefaultJWTSecret))
	if config.SessionTTL == 0 {
		config.SessionTTL = 7 * 24 * time.Hour
	}
	if raw := os.Getenv("SESSION_TTL"); raw != "" {
		ttl, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid SESSION_TTL %q: %w", raw, err)
		}
		config.SessionTTL = ttl
	}

	config.AWSRegion = getEnv("AWS_REGION", orDefault(config.AWSRegion, "us-east-1"))
	config.AWSAccessKeyID = getEnv("AWS_ACCESS_KEY_ID", config.AWSAccessKeyID)
	config.AWSSecretAccessKey = getEnv("AWS_SECRET_ACCESS_KEY", config.AWSSecretAccessKey)
	config.AWSEndpoint = getEnv("AWS_ENDPOINT", config.AWSEndpoint)
	config.S3UseSSL = getEnv("S3_USE_SSL", orDefault(config.S3UseSSL, "true"))
	config.S3BucketName = getEnv("S3_BUCKET_NAME", orDefault(config.S3BucketName, "snapgram-media"))

	config.RabbitMQHost = getEnv("RABBITMQ_HOST", orDefault(config.RabbitMQHost, "localhost"))
	config.RabbitMQPort = getEnv("RABBITMQ_PORT", orDefault(config.RabbitMQPort, "5672"))
	config.RabbitMQUser = getEnv("RABBITMQ_USER", orDefault(config.RabbitMQUser, "guest"))
	config.RabbitMQPassword = getEnv("RABBITMQ_PASSWORD", orDefault(config.RabbitMQPassword, "guest"))

	config.AccountServiceURL = getEnv("ACCOUNT_SERVICE_URL", orDefault(config.AccountServiceURL, "http://localhost:8001"))
	config.PostServiceURL = getEnv("POST_SERVICE_URL", orDefault(config.PostServiceURL, "http://localhost:8002"))

	return config, nil
}

func loadFile(path string, config *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, config); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func orDefault(value, defaultValue string) string {
	if value != "" {
		return value
	}
	return defaultValue
}
