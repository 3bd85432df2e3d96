package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Storage backends accepted in STORAGE_BACKEND.
const (
	StorageLocal    = "local"
	StorageS3       = "s3"
	StorageFirebase = "firebase"
	StorageMinio    = "minio"
)

// Database drivers accepted in DB_DRIVER.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Config struct {
	Port     string
	LogLevel string
	// BcryptCost is the work factor used for rider and user passwords.
	BcryptCost int
	Database   DatabaseConfig
	Storage    StorageConfig
	Redis      RedisConfig
	Push       PushConfig
}

type DatabaseConfig struct {
	Driver string
	// Path is the database file used by the sqlite driver.
	Path     string
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

type StorageConfig struct {
	Backend   string
	UploadDir string
	BaseURL   string
	S3        S3Config
	Firebase  FirebaseConfig
	Minio     MinioConfig
}

type S3Config struct {
	Region    string
	AccessKey string
	SecretKey string
	Bucket    string
}

type FirebaseConfig struct {
	CredentialsFile string
	Bucket          string
}

type MinioConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// PushConfig enables Firebase Cloud Messaging notifications when Topic is set.
type PushConfig struct {
	CredentialsFile string
	Topic           string
}

type RedisConfig struct {
	// URL is empty when shipment events should not be published to redis.
	URL string
}

// Load reads an optional .env file and builds the configuration from the environment.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Port:       getEnv("PORT", "8080"),
		LogLevel:   getEnv("LOG_LEVEL", "info"),
		BcryptCost: getEnvInt("BCRYPT_COST", 10),
		Database: DatabaseConfig{
			Driver:   strings.ToLower(getEnv("DB_DRIVER", DriverSQLite)),
			Path:     getEnv("DB_PATH", "./database_delivery.db"),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "delivery"),
		},
		Storage: StorageConfig{
			Backend:   strings.ToLower(getEnv("STORAGE_BACKEND", StorageLocal)),
			UploadDir: getEnv("UPLOAD_DIR", "./uploads"),
			BaseURL:   strings.TrimRight(getEnv("BASE_URL", "http://localhost:8080"), "/"),
			S3: S3Config{
				Region:    getEnv("AWS_REGION", ""),
				AccessKey: getEnv("AWS_ACCESS_KEY_ID", ""),
				SecretKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
				Bucket:    getEnv("AWS_S3_BUCKET", ""),
			},
			Firebase: FirebaseConfig{
				CredentialsFile: getEnv("FIREBASE_CREDENTIALS_FILE", ""),
				Bucket:          getEnv("FIREBASE_STORAGE_BUCKET", ""),
			},
			Minio: MinioConfig{
				Endpoint:  getEnv("MINIO_ENDPOINT", ""),
				AccessKey: getEnv("MINIO_ACCESS_KEY", ""),
				SecretKey: getEnv("MINIO_SECRET_KEY", ""),
				Bucket:    getEnv("MINIO_BUCKET", ""),
				UseSSL:    getEnvBool("MINIO_USE_SSL", false),
			},
		},
		Redis: RedisConfig{
			URL: getEnv("REDIS_URL", ""),
		},
		Push: PushConfig{
			CredentialsFile: getEnv("FIREBASE_CREDENTIALS_FILE", ""),
			Topic:           getEnv("FIREBASE_MESSAGING_TOPIC", ""),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok && strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	value, err := strconv.ParseBool(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return value
}
