// Package rest exposes the sync API over HTTP and pushes change topics to
// WebSocket clients.
package rest

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/LouisLiuNova/SyncHub/internal/logging"
	"github.com/LouisLiuNova/SyncHub/internal/server/hub"
	"github.com/LouisLiuNova/SyncHub/internal/server/models"
	"github.com/go-chi/chi/v5"
)

const shutdownTimeout = 10 * time.Second

type Authenticator interface {
	Authenticate(ctx context.Context, token string) (models.Identity, error)
	AuthenticateDownload(ctx context.Context, token string, fileID int64) (models.Identity, error)
}

type UserService interface {
	Register(ctx context.Context, username, password string) (*models.User, error)
	Login(ctx context.Context, username, password string) (string, error)
}

type TagService interface {
	List(ctx context.Context) ([]*models.Tag, error)
	Create(ctx context.Context, id models.Identity, name, colorBg, colorText string) (*models.Tag, error)
	Delete(ctx context.Context, id models.Identity, tagID int64) error
}

type ClipboardService interface {
	List(ctx context.Context) ([]*models.ClipboardItem, error)
	Create(ctx context.Context, id models.Identity, content, tag string) (*models.ClipboardItem, error)
	Delete(ctx context.Context, id models.Identity, itemID int64) error
}

type FileService interface {
	List(ctx context.Context) ([]*models.FileItem, error)
	Upload(ctx context.Context, id models.Identity, filename, tag string, r io.Reader, size int64) (*models.FileItem, error)
	Delete(ctx context.Context, id models.Identity, fileID int64) error
	Open(ctx context.Context, fileID int64) (*models.FileItem, io.ReadCloser, error)
	DownloadToken(ctx context.Context, id models.Identity, fileID int64) (string, time.Time, error)
}

// Registry is the part of the hub the WebSocket endpoint needs.
type Registry interface {
	Register(c hub.Conn)
	Unregister(c hub.Conn) bool
}

// Deps are the collaborators behind the HTTP surface.
type Deps struct {
	Auth           Authenticator
	Users          UserService
	Tags           TagService
	Clipboard      ClipboardService
	Files          FileService
	Hub            Registry
	AllowedOrigins []string
}

type Server struct {
	address string
	deps    Deps
	logger  logging.Logger
	loc     *time.Location
	router  chi.Router
}

func NewServer(address string, deps Deps, l logging.Logger) *Server {
	s := &Server{
		address: address,
		deps:    deps,
		logger:  l.With("module", "http_server"),
		loc:     time.Local,
	}
	s.router = s.routes()
	return s
}

// Handler returns the fully wired router.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

// Serve is Run over an existing listener.
func (s *Server) Serve(ctx context.Context, listen net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}

	done := make(chan error, 1)
	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		done <- srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return <-done
}
