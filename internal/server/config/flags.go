package config

import (
	"flag"
	"io"
	"strings"
	"time"

	"github.com/LouisLiuNova/SyncHub/internal/flagx"
)

var ownFlags = []string{"-a", "-d", "-D", "-s", "-t", "-T", "-S", "-f", "-u", "-p", "-b", "-g", "-e", "-w", "-n", "-l", "-o"}

// parseFlags populates Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8000")
//	-d string   database DSN
//	-D string   database driver: pgx or sqlite
//	-s string   JWT HMAC secret key
//	-t int      session token validity, minutes
//	-T int      download token validity, minutes
//	-S string   blob backend: local or s3
//	-f string   upload directory for the local backend
//	-u string   S3 root user
//	-p string   S3 root password
//	-b string   S3 bucket name
//	-g string   S3 region
//	-e string   S3 base endpoint (e.g., "http://127.0.0.1:9000/")
//	-w duration per-connection broadcast send timeout
//	-n int      max parallel broadcast sends
//	-l string   log level: debug, info, warn, error
//	-o string   comma-separated allowed origins
//
// args are filtered to the flags above with flagx.FilterArgs first, so flags
// owned by other loaders (-c/-config) do not cause parse errors.
func parseFlags(config *Config, args []string) error {
	args = flagx.FilterArgs(args, ownFlags)

	fs := flag.NewFlagSet("synchub", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&config.HTTPAddr, "a", config.HTTPAddr, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.DatabaseDriver, "D", config.DatabaseDriver, "database driver (pgx|sqlite)")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")

	accessTokenValidity := fs.Int("t", int(config.AccessTokenValidityDuration.Minutes()), "access token validity (in minutes)")
	downloadTokenValidity := fs.Int("T", int(config.DownloadTokenValidityDuration.Minutes()), "download token validity (in minutes)")

	fs.StringVar(&config.BlobBackend, "S", config.BlobBackend, "blob backend (local|s3)")
	fs.StringVar(&config.UploadDir, "f", config.UploadDir, "upload directory")
	fs.StringVar(&config.S3RootUser, "u", config.S3RootUser, "S3 root user")
	fs.StringVar(&config.S3RootPassword, "p", config.S3RootPassword, "S3 root password")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 bucket")
	fs.StringVar(&config.S3Region, "g", config.S3Region, "S3 region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")
	fs.DurationVar(&config.SendTimeout, "w", config.SendTimeout, "broadcast send timeout")
	fs.IntVar(&config.MaxParallelSends, "n", config.MaxParallelSends, "max parallel broadcast sends")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")
	origins := fs.String("o", strings.Join(config.AllowedOrigins, ","), "allowed origins")

	if err := fs.Parse(args); err != nil {
		return err
	}

	// minute-granular flags only override when given explicitly
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "t":
			config.AccessTokenValidityDuration = time.Duration(*accessTokenValidity) * time.Minute
		case "T":
			config.DownloadTokenValidityDuration = time.Duration(*downloadTokenValidity) * time.Minute
		case "o":
			config.AllowedOrigins = splitList(*origins)
		}
	})
	return nil
}
