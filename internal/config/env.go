package config

import (
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Environment keys recognised on top of the YAML file.
const (
	EnvPort              = "PORT"
	EnvNodeEnv           = "NODE_ENV"
	EnvDatabaseDriver    = "DATABASE_DRIVER"
	EnvDatabaseURL       = "DATABASE_URL"
	EnvRedisURL          = "REDIS_URL"
	EnvJWTSecret         = "JWT_SECRET"
	EnvAdminEmail        = "ADMIN_EMAIL"
	EnvAdminPassword     = "ADMIN_PASSWORD"
	EnvAdminPasswordHash = "ADMIN_PASSWORD_HASH"
	EnvStorageDriver     = "STORAGE_DRIVER"
	EnvS3Endpoint        = "S3_ENDPOINT"
	EnvS3Region          = "S3_REGION"
	EnvS3Bucket          = "S3_BUCKET"
	EnvS3AccessKeyID     = "S3_ACCESS_KEY_ID"
	EnvS3SecretKey       = "S3_SECRET_ACCESS_KEY"
	EnvS3PublicURL       = "S3_PUBLIC_URL"
	EnvS3BucketPrefix    = "S3_BUCKET_PREFIX"
)

// loadDotEnv populates the process environment from a .env file in the
// working directory, if there is one. Variables already set win.
func loadDotEnv() {
	_ = godotenv.Load()
}

type lookupFunc func(key string) (string, bool)

func applyEnv(cfg *AppConfig, lookup lookupFunc) {
	get := func(key string) string {
		v, ok := lookup(key)
		if !ok {
			return ""
		}
		return strings.TrimSpace(v)
	}

	if v := get(EnvPort); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Port = port
		}
	}
	if v := get(EnvNodeEnv); v != "" {
		cfg.Env = v
	}
	if v := get(EnvDatabaseDriver); v != "" {
		cfg.Database.Driver = v
	}
	if v := get(EnvDatabaseURL); v != "" {
		cfg.Database.DSN = v
	}
	if v := get(EnvRedisURL); v != "" {
		cfg.Redis.URL = v
	}
	if v := get(EnvJWTSecret); v != "" {
		cfg.JWTSecret = v
	}

	if v := get(EnvAdminEmail); v != "" {
		cfg.Admin.Email = v
	}
	// Passwords are compared byte for byte, so they are not trimmed.
	if v, ok := lookup(EnvAdminPassword); ok && v != "" {
		cfg.Admin.Password = v
	}
	if v := get(EnvAdminPasswordHash); v != "" {
		cfg.Admin.PasswordHash = v
	}

	if v := get(EnvStorageDriver); v != "" {
		cfg.Storage.Driver = v
	}
	if v, ok := lookup(EnvS3BucketPrefix); ok {
		cfg.Storage.BucketPrefix = v
	}
	cfg.Storage.S3 = mergeS3Options(cfg.Storage.S3, S3Options{
		Endpoint:        get(EnvS3Endpoint),
		Region:          get(EnvS3Region),
		Bucket:          get(EnvS3Bucket),
		AccessKeyID:     get(EnvS3AccessKeyID),
		SecretAccessKey: get(EnvS3SecretKey),
		CustomDomain:    get(EnvS3PublicURL),
	})
}
