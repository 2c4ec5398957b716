package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type DB struct {
	DbHOST     string
	DbPORT     string
	DbUSER     string
	DbPASSWORD string
	DbNAME     string
	DbSSLMODE  string
}

type Redis struct {
	Addr        string
	Password    string
	DB          int
	SnapshotTTL time.Duration
	KeywordTTL  time.Duration
}

type AI struct {
	BaseURL               string
	APIKey                string
	Model                 string
	ModerationTemperature float64
	KeywordTemperature    float64
	TrendsTemperature     float64
	Timeout               time.Duration
}

type Trending struct {
	UpvoteWeight   float64
	DownvoteWeight float64
	CommentWeight  float64
	ShareWeight    float64
	Gravity        float64
	WindowHours    int
}

type MinIO struct {
	Endpoint    string
	AccessKey   string
	SecretKey   string
	ImageBucket string
	VideoBucket string
	UseSSL      bool
	Region      string
}

type Config struct {
	ServerPort    int
	DB            DB
	Redis         Redis
	AI            AI
	Trending      Trending
	MinIO         MinIO
	JWTSecretKey  string
	MaxUploadSize int64
}

func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return fallback
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func LoadDB() DB {
	return DB{
		DbHOST:     getEnv("DB_HOST", "localhost"),
		DbPORT:     getEnv("DB_PORT", "5432"),
		DbUSER:     getEnv("DB_USER", "postgres"),
		DbPASSWORD: getEnv("DB_PASSWORD", "password"),
		DbNAME:     getEnv("DB_NAME", "readit"),
		DbSSLMODE:  getEnv("DB_SSLMODE", "disable"),
	}
}

func LoadRedis() Redis {
	return Redis{
		Addr:        getEnv("REDIS_ADDR", "localhost:6379"),
		Password:    getEnv("REDIS_PASSWORD", ""),
		DB:          getEnvAsInt("REDIS_DB", 0),
		SnapshotTTL: getEnvAsDuration("TRENDING_SNAPSHOT_TTL", 5*time.Minute),
		KeywordTTL:  getEnvAsDuration("KEYWORD_CACHE_TTL", 30*time.Minute),
	}
}

func LoadAI() AI {
	return AI{
		BaseURL:               getEnv("AI_BASE_URL", "https://api.onspace.ai/v1"),
		APIKey:                getEnv("AI_API_KEY", ""),
		Model:                 getEnv("AI_MODEL", "google/gemini-3-flash-preview"),
		ModerationTemperature: getEnvAsFloat("AI_MODERATION_TEMPERATURE", 0.3),
		KeywordTemperature:    getEnvAsFloat("AI_KEYWORD_TEMPERATURE", 0.7),
		TrendsTemperature:     getEnvAsFloat("AI_TRENDS_TEMPERATURE", 0.7),
		Timeout:               getEnvAsDuration("AI_TIMEOUT", 12*time.Second),
	}
}

// LoadTrending reads the ranking weights. The defaults are a product
// decision, not a law of nature, so everything is overridable.
func LoadTrending() Trending {
	return Trending{
		UpvoteWeight:   getEnvAsFloat("TRENDING_UPVOTE_WEIGHT", 1.0),
		DownvoteWeight: getEnvAsFloat("TRENDING_DOWNVOTE_WEIGHT", 1.0),
		CommentWeight:  getEnvAsFloat("TRENDING_COMMENT_WEIGHT", 2.0),
		ShareWeight:    getEnvAsFloat("TRENDING_SHARE_WEIGHT", 3.0),
		Gravity:        getEnvAsFloat("TRENDING_GRAVITY", 1.5),
		WindowHours:    getEnvAsInt("TRENDING_WINDOW_HOURS", 72),
	}
}

func LoadMinIO() MinIO {
	return MinIO{
		Endpoint:    getEnv("MINIO_ENDPOINT", "localhost:9000"),
		AccessKey:   getEnv("MINIO_ACCESS_KEY", "minioadmin"),
		SecretKey:   getEnv("MINIO_SECRET_KEY", "minioadmin"),
		ImageBucket: getEnv("MINIO_IMAGE_BUCKET", "post-images"),
		VideoBucket: getEnv("MINIO_VIDEO_BUCKET", "post-videos"),
		UseSSL:      getEnvBool("MINIO_USE_SSL", false),
		Region:      getEnv("MINIO_REGION", "us-east-1"),
	}
}

func LoadConfig() *Config {
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	return &Config{
		ServerPort:    getEnvAsInt("SERVER_PORT", 8080),
		DB:            LoadDB(),
		Redis:         LoadRedis(),
		AI:            LoadAI(),
		Trending:      LoadTrending(),
		MinIO:         LoadMinIO(),
		JWTSecretKey:  getEnv("JWT_SECRET_KEY", ""),
		MaxUploadSize: int64(getEnvAsInt("MAX_UPLOAD_SIZE", 10*1024*1024)),
	}
}
