// Package blob stores uploaded file contents under opaque storage keys,
// either in a local directory or in an S3-compatible bucket.
package blob

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Store is opaque byte storage. Open and Remove return common.ErrorNotFound
// for an unknown key.
type Store interface {
	Put(ctx context.Context, key string, r io.Reader, size int64) error
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Remove(ctx context.Context, key string) error
}

// NewKey builds a collision-resistant storage key that keeps the original
// file name as a suffix.
func NewKey(filename string, now time.Time) string {
	return fmt.Sprintf("%d/%02d/%02d/%v_%s", now.Year(), now.Month(), now.Day(), uuid.New(), cleanName(filename))
}

func cleanName(filename string) string {
	name := path.Base(strings.ReplaceAll(filename, `\`, "/"))
	switch name {
	case ".", "/", "..", "":
		return "file"
	}
	return name
}
