package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, ":8000", c.HTTPAddr)
	assert.Equal(t, "sqlite", c.DatabaseDriver)
	assert.Equal(t, "secretKey", c.SecretKey)
	assert.Equal(t, 30*time.Minute, c.AccessTokenValidityDuration)
	assert.Equal(t, 5*time.Minute, c.DownloadTokenValidityDuration)
	assert.Equal(t, BlobBackendLocal, c.BlobBackend)
	assert.Equal(t, "uploads", c.UploadDir)
	assert.Equal(t, "synchub", c.S3Bucket)
	assert.Equal(t, 5*time.Second, c.SendTimeout)
	assert.Equal(t, 32, c.MaxParallelSends)
	assert.Equal(t, []string{"*"}, c.AllowedOrigins)
	assert.NoError(t, c.Validate())
}

func TestLoad_UsesDefaultsWithoutArgs(t *testing.T) {
	c, err := Load(nil)
	require.NoError(t, err)

	var want Config
	want.LoadDefaults()
	assert.Equal(t, &want, c)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad driver", func(c *Config) { c.DatabaseDriver = "oracle" }},
		{"empty dsn", func(c *Config) { c.DatabaseDSN = "" }},
		{"empty secret", func(c *Config) { c.SecretKey = "" }},
		{"zero token ttl", func(c *Config) { c.AccessTokenValidityDuration = 0 }},
		{"bad backend", func(c *Config) { c.BlobBackend = "ftp" }},
		{"s3 without bucket", func(c *Config) { c.BlobBackend = BlobBackendS3; c.S3Bucket = "" }},
		{"local without dir", func(c *Config) { c.UploadDir = "" }},
		{"zero parallel", func(c *Config) { c.MaxParallelSends = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c Config
			c.LoadDefaults()
			tt.mutate(&c)
			assert.Error(t, c.Validate())
		})
	}
}

func TestLoad_Precedence(t *testing.T) {
	path := writeTempJSON(t, "", "", map[string]any{
		"http_addr":    ":7000",
		"database_dsn": "from-json",
		"log_level":    "debug",
	})
	t.Setenv("SYNCHUB_DATABASE_DSN", "from-env")
	t.Setenv("SYNCHUB_S3_BUCKET", "env-bucket")

	c, err := Load([]string{"-c", path, "-b", "flag-bucket"})
	require.NoError(t, err)

	assert.Equal(t, ":7000", c.HTTPAddr)
	assert.Equal(t, "debug", c.LogLevel)
	assert.Equal(t, "from-env", c.DatabaseDSN)
	assert.Equal(t, "flag-bucket", c.S3Bucket)
}

func TestLoad_InvalidResult(t *testing.T) {
	_, err := Load([]string{"-S", "ftp"})
	assert.ErrorContains(t, err, "unsupported blob backend")
}
