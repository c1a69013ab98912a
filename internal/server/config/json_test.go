package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, dir, name string, data map[string]any) string {
	t.Helper()
	if dir == "" {
		dir = t.TempDir()
	}
	if name == "" {
		name = "cfg.json"
	}
	path := filepath.Join(dir, name)
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJSON_SourcesAndPrecedence(t *testing.T) {
	dir := t.TempDir()
	path := writeTempJSON(t, dir, "flag.json", map[string]any{
		"http_addr":                        "www.example:9000",
		"database_driver":                  "pgx",
		"database_dsn":                     "postgres://x",
		"secret_key":                       "my_secret_key",
		"access_token_validity_duration":   "1m",
		"download_token_validity_duration": int64(90 * time.Second),
		"blob_backend":                     "s3",
		"s3_bucket":                        "bucket",
		"send_timeout":                     "250ms",
		"max_parallel_sends":               8,
		"allowed_origins":                  []string{"http://a.test"},
	})

	t.Run("loads from json", func(t *testing.T) {
		cfg := &Config{}
		cfg.LoadDefaults()
		require.NoError(t, parseJSON(cfg, []string{"-config", path}))

		assert.Equal(t, "www.example:9000", cfg.HTTPAddr)
		assert.Equal(t, "pgx", cfg.DatabaseDriver)
		assert.Equal(t, "postgres://x", cfg.DatabaseDSN)
		assert.Equal(t, "my_secret_key", cfg.SecretKey)
		assert.Equal(t, time.Minute, cfg.AccessTokenValidityDuration)
		assert.Equal(t, 90*time.Second, cfg.DownloadTokenValidityDuration)
		assert.Equal(t, "s3", cfg.BlobBackend)
		assert.Equal(t, "bucket", cfg.S3Bucket)
		assert.Equal(t, 250*time.Millisecond, cfg.SendTimeout)
		assert.Equal(t, 8, cfg.MaxParallelSends)
		assert.Equal(t, []string{"http://a.test"}, cfg.AllowedOrigins)

		assert.Equal(t, "uploads", cfg.UploadDir, "absent keys keep defaults")
		assert.Equal(t, "us-east-1", cfg.S3Region)
	})

	t.Run("no config flag, no changes", func(t *testing.T) {
		cfg := &Config{HTTPAddr: "defaults:1234", SendTimeout: time.Second}
		require.NoError(t, parseJSON(cfg, []string{"-a", ":1"}))

		assert.Equal(t, "defaults:1234", cfg.HTTPAddr)
		assert.Equal(t, time.Second, cfg.SendTimeout)
	})

	t.Run("invalid JSON", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{ this is not valid json`), 0o600))

		assert.Error(t, parseJSON(&Config{}, []string{"-c", bad}))
	})

	t.Run("missing file", func(t *testing.T) {
		assert.Error(t, parseJSON(&Config{}, []string{"-c", filepath.Join(dir, "nope.json")}))
	})
}
