package rest

import (
	"errors"
	"net/http"

	"github.com/LouisLiuNova/SyncHub/internal/common"
)

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	f, err := parseFields(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	v, err := f.require("username", "password")
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	token, err := s.deps.Users.Login(r.Context(), v[0], v[1])
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			writeDetail(w, http.StatusNotFound, "User not found")
			return
		}
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, tokenResponse{AccessToken: token, TokenType: "bearer"})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	f, err := parseFields(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	v, err := f.require("username", "password")
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if _, err := s.deps.Users.Register(r.Context(), v[0], v[1]); err != nil {
		if errors.Is(err, common.ErrAlreadyExists) {
			writeDetail(w, http.StatusBadRequest, "Username already registered")
			return
		}
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: "User created successfully"})
}
