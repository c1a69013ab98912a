package config

import (
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix namespaces environment overrides, e.g. SYNCHUB_DATABASE_DSN.
const EnvPrefix = "SYNCHUB"

// parseEnv overlays SYNCHUB_* environment variables onto config. Only
// variables that are set take effect.
func parseEnv(config *Config) error {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	str := func(key string, dst *string) {
		if v.IsSet(key) {
			*dst = v.GetString(key)
		}
	}

	str("http_addr", &config.HTTPAddr)
	str("database_driver", &config.DatabaseDriver)
	str("database_dsn", &config.DatabaseDSN)
	str("secret_key", &config.SecretKey)
	str("blob_backend", &config.BlobBackend)
	str("upload_dir", &config.UploadDir)
	str("s3_root_user", &config.S3RootUser)
	str("s3_root_password", &config.S3RootPassword)
	str("s3_bucket", &config.S3Bucket)
	str("s3_region", &config.S3Region)
	str("s3_base_endpoint", &config.S3BaseEndpoint)
	str("log_level", &config.LogLevel)

	if v.IsSet("access_token_validity_duration") {
		config.AccessTokenValidityDuration = v.GetDuration("access_token_validity_duration")
	}
	if v.IsSet("download_token_validity_duration") {
		config.DownloadTokenValidityDuration = v.GetDuration("download_token_validity_duration")
	}
	if v.IsSet("send_timeout") {
		config.SendTimeout = v.GetDuration("send_timeout")
	}
	if v.IsSet("max_parallel_sends") {
		config.MaxParallelSends = v.GetInt("max_parallel_sends")
	}
	if v.IsSet("allowed_origins") {
		config.AllowedOrigins = splitList(v.GetString("allowed_origins"))
	}

	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
