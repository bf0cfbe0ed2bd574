package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Server   ServerConfig
	MongoDB  MongoDBConfig
	Redis    RedisConfig
	RabbitMQ RabbitMQConfig
	Auth     AuthConfig
	Dict     DictConfig
}

type ServerConfig struct {
	Port         string
	Host         string
	ServiceName  string
	AllowOrigins []string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type MongoDBConfig struct {
	URI      string
	Database string
	PoolSize uint64
	Timeout  time.Duration
}

type RedisConfig struct {
	Address  string
	Password string
	DB       int
}

type RabbitMQConfig struct {
	URI      string
	Exchange string
}

type AuthConfig struct {
	JWTSecret   string
	TokenExpiry time.Duration
	BcryptCost  int
}

type DictConfig struct {
	Dir          string
	PageSize     int
	CacheTTL     time.Duration
	AudioBaseURL string
}

// Load reads the configuration from environment variables.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", "8080"),
			Host:         getEnv("HOST", "0.0.0.0"),
			ServiceName:  getEnv("SERVICE_NAME", "vocab-service"),
			AllowOrigins: []string{getEnv("CORS_ORIGIN", "http://localhost:3000")},
			ReadTimeout:  getEnvAsDuration("READ_TIMEOUT", 15*time.Second),
			WriteTimeout: getEnvAsDuration("WRITE_TIMEOUT", 15*time.Second),
		},
		MongoDB: MongoDBConfig{
			URI:      getEnv("MONGO_URI", ""),
			Database: getEnv("MONGO_DATABASE", "vocab_service"),
			PoolSize: uint64(getEnvAsInt("MONGO_POOL_SIZE", 20)),
			Timeout:  getEnvAsDuration("MONGO_TIMEOUT", 10*time.Second),
		},
		Redis: RedisConfig{
			Address:  getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PWD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		RabbitMQ: RabbitMQConfig{
			URI:      getEnv("RABBITMQ_URI", ""),
			Exchange: getEnv("RABBITMQ_EXCHANGE", ""),
		},
		Auth: AuthConfig{
			JWTSecret:   getEnv("JWT_SECRET", ""),
			TokenExpiry: getEnvAsDuration("JWT_EXPIRY", 24*time.Hour),
			BcryptCost:  getEnvAsInt("BCRYPT_COST", 10),
		},
		Dict: DictConfig{
			Dir:          getEnv("DICT_DIR", "./dictionaries"),
			PageSize:     getEnvAsInt("DICT_PAGE_SIZE", 20),
			CacheTTL:     getEnvAsDuration("DICT_CACHE_TTL", 10*time.Minute),
			AudioBaseURL: getEnv("AUDIO_BASE_URL", "https://dict.youdao.com/dictvoice"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return fallback
}
