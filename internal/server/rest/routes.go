package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.accessLog)
	r.Use(middleware.Recoverer)
	r.Use(s.cors)

	r.Get("/healthz", s.handleHealth)
	r.Post("/token", s.handleLogin)
	r.Post("/register", s.handleRegister)
	r.Get("/ws", s.handleWebSocket)

	r.Route("/api", func(r chi.Router) {
		// download carries its own token check
		r.Get("/download/{fileID}", s.handleDownload)

		r.Group(func(r chi.Router) {
			r.Use(s.requireIdentity)

			registerTagRoutes(r, s)
			registerClipboardRoutes(r, s)
			registerFileRoutes(r, s)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeDetail(w, http.StatusNotFound, "Not Found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeDetail(w, http.StatusMethodNotAllowed, "Method Not Allowed")
	})

	return r
}

func registerTagRoutes(r chi.Router, s *Server) {
	r.Get("/tags", s.handleListTags)
	r.Post("/tags", s.handleCreateTag)
	r.Delete("/tags/{tagID}", s.handleDeleteTag)
}

func registerClipboardRoutes(r chi.Router, s *Server) {
	r.Get("/clipboard", s.handleListClipboard)
	r.Post("/clipboard", s.handleCreateClipboard)
	r.Delete("/clipboard/{itemID}", s.handleDeleteClipboard)
}

func registerFileRoutes(r chi.Router, s *Server) {
	r.Get("/files", s.handleListFiles)
	r.Post("/upload", s.handleUpload)
	r.Delete("/files/{fileID}", s.handleDeleteFile)
	r.Post("/files/{fileID}/link", s.handleFileLink)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "OK"})
}
