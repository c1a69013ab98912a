package rest

import (
	"fmt"
	"time"

	"github.com/LouisLiuNova/SyncHub/internal/server/models"
)

const timestampLayout = "2006-01-02 15:04"

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type tagResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	ColorBg   string `json:"color_bg"`
	ColorText string `json:"color_text"`
}

type clipboardResponse struct {
	ID        int64  `json:"id"`
	Content   string `json:"content"`
	Tag       string `json:"tag"`
	CreatedAt string `json:"created_at"`
	User      string `json:"user"`
	IsOwner   bool   `json:"is_owner"`
}

type fileResponse struct {
	ID        int64  `json:"id"`
	FileName  string `json:"filename"`
	Size      string `json:"size"`
	Tag       string `json:"tag"`
	CreatedAt string `json:"created_at"`
	User      string `json:"user"`
	IsOwner   bool   `json:"is_owner"`
}

type linkResponse struct {
	URL       string    `json:"url"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

func newTagResponse(t *models.Tag) tagResponse {
	return tagResponse{ID: t.ID, Name: t.Name, ColorBg: t.ColorBg, ColorText: t.ColorText}
}

// formatSize renders bytes as kilobytes with one decimal, e.g. "2.0 KB".
func formatSize(n int64) string {
	return fmt.Sprintf("%.1f KB", float64(n)/1024)
}

func (s *Server) formatTime(t time.Time) string {
	return t.In(s.loc).Format(timestampLayout)
}

func (s *Server) newClipboardResponse(it *models.ClipboardItem, caller models.Identity) clipboardResponse {
	return clipboardResponse{
		ID:        it.ID,
		Content:   it.Content,
		Tag:       it.Tag,
		CreatedAt: s.formatTime(it.CreatedAt),
		User:      it.UserName,
		IsOwner:   caller.Owns(it.UserID),
	}
}

func (s *Server) newFileResponse(f *models.FileItem, caller models.Identity) fileResponse {
	return fileResponse{
		ID:        f.ID,
		FileName:  f.FileName,
		Size:      formatSize(f.Size),
		Tag:       f.Tag,
		CreatedAt: s.formatTime(f.CreatedAt),
		User:      f.UserName,
		IsOwner:   caller.Owns(f.UserID),
	}
}
