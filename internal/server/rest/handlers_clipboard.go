package rest

import (
	"net/http"
)

func (s *Server) handleListClipboard(w http.ResponseWriter, r *http.Request) {
	id, _ := identityFrom(r.Context())

	items, err := s.deps.Clipboard.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	out := make([]clipboardResponse, 0, len(items))
	for _, it := range items {
		out = append(out, s.newClipboardResponse(it, id))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateClipboard(w http.ResponseWriter, r *http.Request) {
	id, _ := identityFrom(r.Context())

	f, err := parseFields(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	v, err := f.require("content")
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	item, err := s.deps.Clipboard.Create(r.Context(), id, v[0], f["tag"])
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, s.newClipboardResponse(item, id))
}

func (s *Server) handleDeleteClipboard(w http.ResponseWriter, r *http.Request) {
	id, _ := identityFrom(r.Context())

	itemID, err := pathID(r, "itemID")
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if err := s.deps.Clipboard.Delete(r.Context(), id, itemID); err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: "Deleted"})
}
