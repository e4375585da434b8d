// Package config holds the process configuration for infocart.
//
// Configuration is read exactly once, at startup, into a Config struct that
// is passed by reference to every component that needs it. Request handlers
// never read the environment themselves.
//
//	cfg, err := config.Load()
//	if err != nil { ... }
//	srv := server.New(cfg)
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	defaultAppPort       = "5000"
	defaultAppEnv        = "local"
	defaultMongoURI      = "mongodb://localhost:27017"
	defaultMongoDB       = "infocart"
	defaultCORSOrigin    = "http://localhost:3000"
	defaultStorageDisk   = "local"
	defaultUploadRoot    = "uploads"
	defaultUploadURL     = "/uploads"
	defaultMaxUploadSize = 5 << 20 // 5 MiB
)

// Config is the full configuration surface of the storefront.
type Config struct {
	AppPort string
	AppEnv  string

	MongoURI string
	MongoDB  string

	JWTSecret string

	RazorpayKeyID     string
	RazorpayKeySecret string

	CORSOrigin string

	// Upload storage. Disk is "local" or "s3".
	StorageDisk   string
	UploadRoot    string // local disk root directory
	UploadURL     string // public URL prefix for the local disk
	MaxUploadSize int64

	S3Bucket   string
	S3Region   string
	S3Key      string
	S3Secret   string
	S3Endpoint string
	S3URL      string

	// When set, log records are also persisted to this Mongo collection.
	LogCollection string
}

// Load reads .env (when present) and the process environment into a Config.
// It fails when a required secret is missing so the server never starts with
// an empty signing key.
func Load() (*Config, error) {
	// .env is a development convenience; absence is not an error.
	_ = godotenv.Load()

	cfg := &Config{
		AppPort:           envOr("APP_PORT", defaultAppPort),
		AppEnv:            envOr("APP_ENV", defaultAppEnv),
		MongoURI:          envOr("MONGO_URI", defaultMongoURI),
		MongoDB:           envOr("MONGO_DB", defaultMongoDB),
		JWTSecret:         os.Getenv("JWT_SECRET"),
		RazorpayKeyID:     os.Getenv("RAZORPAY_KEY_ID"),
		RazorpayKeySecret: os.Getenv("RAZORPAY_KEY_SECRET"),
		CORSOrigin:        envOr("CORS_ORIGIN", defaultCORSOrigin),
		StorageDisk:       envOr("STORAGE_DISK", defaultStorageDisk),
		UploadRoot:        envOr("UPLOAD_ROOT", defaultUploadRoot),
		UploadURL:         envOr("UPLOAD_URL", defaultUploadURL),
		MaxUploadSize:     envInt64("MAX_UPLOAD_SIZE", defaultMaxUploadSize),
		S3Bucket:          os.Getenv("S3_BUCKET"),
		S3Region:          envOr("S3_REGION", "us-east-1"),
		S3Key:             os.Getenv("S3_KEY"),
		S3Secret:          os.Getenv("S3_SECRET"),
		S3Endpoint:        os.Getenv("S3_ENDPOINT"),
		S3URL:             os.Getenv("S3_URL"),
		LogCollection:     os.Getenv("LOG_COLLECTION"),
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("config: JWT_SECRET is not set")
	}
	if cfg.StorageDisk == "s3" && cfg.S3Bucket == "" {
		return nil, fmt.Errorf("config: STORAGE_DISK=s3 but S3_BUCKET is not set")
	}

	return cfg, nil
}

// Production reports whether the app runs with production logging defaults.
func (c *Config) Production() bool {
	return c.AppEnv == "production" || c.AppEnv == "prod"
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return fallback
	}
	return n
}
