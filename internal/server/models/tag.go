package models

import "time"

// Tag is a named category with a display color pair. Names are unique under
// case-insensitive comparison.
type Tag struct {
	ID        int64
	Name      string
	ColorBg   string
	ColorText string
	CreatedAt time.Time
}
