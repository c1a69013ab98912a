package config

import (
	"encoding/json"
	"os"

	"github.com/LouisLiuNova/SyncHub/internal/flagx"
	"github.com/LouisLiuNova/SyncHub/internal/timex"
)

// JSONConfig is the on-disk shape of the config file. Durations accept both
// strings such as "5m" and integer nanoseconds. Absent fields keep their
// previous value.
type JSONConfig struct {
	HTTPAddr                      string          `json:"http_addr"`
	DatabaseDriver                string          `json:"database_driver"`
	DatabaseDSN                   string          `json:"database_dsn"`
	SecretKey                     string          `json:"secret_key"`
	AccessTokenValidityDuration   *timex.Duration `json:"access_token_validity_duration"`
	DownloadTokenValidityDuration *timex.Duration `json:"download_token_validity_duration"`
	BlobBackend                   string          `json:"blob_backend"`
	UploadDir                     string          `json:"upload_dir"`
	S3RootUser                    string          `json:"s3_root_user"`
	S3RootPassword                string          `json:"s3_root_password"`
	S3Bucket                      string          `json:"s3_bucket"`
	S3Region                      string          `json:"s3_region"`
	S3BaseEndpoint                string          `json:"s3_base_endpoint"`
	SendTimeout                   *timex.Duration `json:"send_timeout"`
	MaxParallelSends              int             `json:"max_parallel_sends"`
	LogLevel                      string          `json:"log_level"`
	AllowedOrigins                []string        `json:"allowed_origins"`
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

// parseJSON overlays the file named by -c/-config onto config. Without the
// flag nothing is loaded.
func parseJSON(config *Config, args []string) error {
	path := flagx.ConfigPath(args)
	if path == "" {
		return nil
	}

	file, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	c := &JSONConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		return err
	}

	setString(&config.HTTPAddr, c.HTTPAddr)
	setString(&config.DatabaseDriver, c.DatabaseDriver)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.SecretKey, c.SecretKey)
	setString(&config.BlobBackend, c.BlobBackend)
	setString(&config.UploadDir, c.UploadDir)
	setString(&config.S3RootUser, c.S3RootUser)
	setString(&config.S3RootPassword, c.S3RootPassword)
	setString(&config.S3Bucket, c.S3Bucket)
	setString(&config.S3Region, c.S3Region)
	setString(&config.S3BaseEndpoint, c.S3BaseEndpoint)
	setString(&config.LogLevel, c.LogLevel)

	if c.AccessTokenValidityDuration != nil {
		config.AccessTokenValidityDuration = c.AccessTokenValidityDuration.Duration
	}
	if c.DownloadTokenValidityDuration != nil {
		config.DownloadTokenValidityDuration = c.DownloadTokenValidityDuration.Duration
	}
	if c.SendTimeout != nil {
		config.SendTimeout = c.SendTimeout.Duration
	}
	if c.MaxParallelSends != 0 {
		config.MaxParallelSends = c.MaxParallelSends
	}
	if c.AllowedOrigins != nil {
		config.AllowedOrigins = c.AllowedOrigins
	}

	return nil
}
