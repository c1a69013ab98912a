package models

import "time"

// ClipboardItem is a shared text snippet. Tag holds the tag name rather than
// a reference, so deleting a tag leaves existing items untouched.
type ClipboardItem struct {
	ID        int64
	Content   string
	Tag       string
	CreatedAt time.Time
	UserID    int64
	// UserName is filled by list queries that join the owner.
	UserName string
}

// FileItem describes an uploaded file. The bytes live in the blob store
// under StorageKey.
type FileItem struct {
	ID         int64
	FileName   string
	StorageKey string
	Size       int64
	Tag        string
	CreatedAt  time.Time
	UserID     int64
	UserName   string
}
