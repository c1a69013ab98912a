// Package config handles configuration for the server, layering defaults,
// an optional JSON file, SYNCHUB_* environment variables and command-line
// flags, in that order of increasing precedence.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/LouisLiuNova/SyncHub/internal/dbx"
)

const (
	BlobBackendLocal = "local"
	BlobBackendS3    = "s3"
)

// Config holds runtime settings for the SyncHub server.
//
// Fields:
//   - HTTPAddr: bind address for the REST and WebSocket endpoints.
//   - DatabaseDriver / DatabaseDSN: "pgx" (PostgreSQL) or "sqlite", and its DSN.
//   - SecretKey: HMAC secret for signing JWTs (HS256). Do not use the default in prod.
//   - AccessTokenValidityDuration: lifetime of session tokens.
//   - DownloadTokenValidityDuration: lifetime of file-scoped download tokens.
//   - BlobBackend: "local" (UploadDir) or "s3" (S3* settings).
//   - SendTimeout / MaxParallelSends: per-connection broadcast budget.
//   - AllowedOrigins: CORS and WebSocket origins; "*" allows any.
type Config struct {
	HTTPAddr                      string
	DatabaseDriver                string
	DatabaseDSN                   string
	SecretKey                     string
	AccessTokenValidityDuration   time.Duration
	DownloadTokenValidityDuration time.Duration
	BlobBackend                   string
	UploadDir                     string
	S3RootUser                    string
	S3RootPassword                string
	S3Bucket                      string
	S3Region                      string
	S3BaseEndpoint                string
	SendTimeout                   time.Duration
	MaxParallelSends              int
	LogLevel                      string
	AllowedOrigins                []string
}

// LoadDefaults populates Config with development defaults.
// NOTE: the secret key is insecure and must be overridden in production.
func (c *Config) LoadDefaults() {
	c.HTTPAddr = ":8000"
	c.DatabaseDriver = string(dbx.DialectSQLite)
	c.DatabaseDSN = "file:synchub.db?_pragma=busy_timeout(5000)"
	c.SecretKey = "secretKey"
	c.AccessTokenValidityDuration = 30 * time.Minute
	c.DownloadTokenValidityDuration = 5 * time.Minute
	c.BlobBackend = BlobBackendLocal
	c.UploadDir = "uploads"
	c.S3RootUser = "admin"
	c.S3RootPassword = "secretpassword"
	c.S3Bucket = "synchub"
	c.S3Region = "us-east-1"
	c.S3BaseEndpoint = "http://127.0.0.1:9000/"
	c.SendTimeout = 5 * time.Second
	c.MaxParallelSends = 32
	c.LogLevel = "info"
	c.AllowedOrigins = []string{"*"}
}

// Validate reports settings the server cannot start with.
func (c *Config) Validate() error {
	if _, err := dbx.ParseDialect(c.DatabaseDriver); err != nil {
		return err
	}
	if c.DatabaseDSN == "" {
		return fmt.Errorf("database DSN is required")
	}
	if c.SecretKey == "" {
		return fmt.Errorf("secret key is required")
	}
	if c.AccessTokenValidityDuration <= 0 || c.DownloadTokenValidityDuration <= 0 {
		return fmt.Errorf("token validity durations must be positive")
	}
	switch c.BlobBackend {
	case BlobBackendLocal:
		if c.UploadDir == "" {
			return fmt.Errorf("upload dir is required for the local blob backend")
		}
	case BlobBackendS3:
		if c.S3Bucket == "" {
			return fmt.Errorf("s3 bucket is required for the s3 blob backend")
		}
	default:
		return fmt.Errorf("unsupported blob backend %q", c.BlobBackend)
	}
	if c.SendTimeout <= 0 || c.MaxParallelSends <= 0 {
		return fmt.Errorf("send timeout and max parallel sends must be positive")
	}
	return nil
}

// Load builds a Config from defaults, the JSON file named by -c/-config,
// the environment and finally the command-line flags in args.
func Load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseJSON(cfg, args); err != nil {
		return nil, fmt.Errorf("json config: %w", err)
	}
	if err := parseEnv(cfg); err != nil {
		return nil, fmt.Errorf("env config: %w", err)
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, fmt.Errorf("flags: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfig is Load over os.Args.
func LoadConfig() (*Config, error) {
	return Load(os.Args[1:])
}
