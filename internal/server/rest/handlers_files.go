package rest

import (
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"path"
	"strconv"

	"github.com/LouisLiuNova/SyncHub/internal/common"
)

func (s *Server) handleListFiles(w http.ResponseWriter, r *http.Request) {
	id, _ := identityFrom(r.Context())

	files, err := s.deps.Files.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	out := make([]fileResponse, 0, len(files))
	for _, f := range files {
		out = append(out, s.newFileResponse(f, id))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	id, _ := identityFrom(r.Context())

	if err := r.ParseMultipartForm(maxMultipartInMem); err != nil {
		s.writeError(w, r, fmt.Errorf("multipart body with a file field is required: %w", common.ErrorValidation))
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		s.writeError(w, r, fmt.Errorf("field \"file\" is required: %w", common.ErrorValidation))
		return
	}
	defer file.Close()

	item, err := s.deps.Files.Upload(r.Context(), id, header.Filename, r.PostFormValue("tag"), file, header.Size)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, s.newFileResponse(item, id))
}

func (s *Server) handleDeleteFile(w http.ResponseWriter, r *http.Request) {
	id, _ := identityFrom(r.Context())

	fileID, err := pathID(r, "fileID")
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if err := s.deps.Files.Delete(r.Context(), id, fileID); err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: "Deleted"})
}

// handleFileLink mints a download URL whose token only unlocks this file.
func (s *Server) handleFileLink(w http.ResponseWriter, r *http.Request) {
	id, _ := identityFrom(r.Context())

	fileID, err := pathID(r, "fileID")
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	token, expiresAt, err := s.deps.Files.DownloadToken(r.Context(), id, fileID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	link := "/api/download/" + strconv.FormatInt(fileID, 10) + "?" +
		url.Values{common.AccessTokenQueryParam: {token}}.Encode()
	writeJSON(w, http.StatusOK, linkResponse{URL: link, Token: token, ExpiresAt: expiresAt})
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	fileID, err := pathID(r, "fileID")
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if _, err := s.deps.Auth.AuthenticateDownload(r.Context(), tokenFrom(r), fileID); err != nil {
		s.writeError(w, r, err)
		return
	}

	item, rc, err := s.deps.Files.Open(r.Context(), fileID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	defer rc.Close()

	ctype := mime.TypeByExtension(path.Ext(item.FileName))
	if ctype == "" {
		ctype = "application/octet-stream"
	}
	w.Header().Set("Content-Type", ctype)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": item.FileName}))

	if rs, ok := rc.(io.ReadSeeker); ok {
		http.ServeContent(w, r, item.FileName, item.CreatedAt, rs)
		return
	}

	w.Header().Set("Content-Length", strconv.FormatInt(item.Size, 10))
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, rc); err != nil {
		s.logger.Warn(r.Context(), "download interrupted", "file_id", fileID, "error", err)
	}
}
