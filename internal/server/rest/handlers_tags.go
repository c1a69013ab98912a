package rest

import (
	"errors"
	"net/http"

	"github.com/LouisLiuNova/SyncHub/internal/common"
)

func (s *Server) handleListTags(w http.ResponseWriter, r *http.Request) {
	tags, err := s.deps.Tags.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	out := make([]tagResponse, 0, len(tags))
	for _, t := range tags {
		out = append(out, newTagResponse(t))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateTag(w http.ResponseWriter, r *http.Request) {
	id, _ := identityFrom(r.Context())

	f, err := parseFields(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	v, err := f.require("name")
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	tag, err := s.deps.Tags.Create(r.Context(), id, v[0], f["color_bg"], f["color_text"])
	if err != nil {
		if errors.Is(err, common.ErrAlreadyExists) {
			writeDetail(w, http.StatusBadRequest, "Tag already exists")
			return
		}
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, newTagResponse(tag))
}

func (s *Server) handleDeleteTag(w http.ResponseWriter, r *http.Request) {
	id, _ := identityFrom(r.Context())

	tagID, err := pathID(r, "tagID")
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if err := s.deps.Tags.Delete(r.Context(), id, tagID); err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: "Deleted"})
}
