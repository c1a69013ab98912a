package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"strconv"

	"github.com/LouisLiuNova/SyncHub/internal/common"
	"github.com/go-chi/chi/v5"
)

const (
	maxJSONBody       = 1 << 20
	maxMultipartInMem = 32 << 20
)

// fields reads a flat request body sent as JSON, url-encoded or multipart
// form. Only string values are kept.
type fields map[string]string

func parseFields(r *http.Request) (fields, error) {
	ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))

	if ct == "application/json" {
		raw := map[string]any{}
		dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxJSONBody))
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("malformed JSON body: %w", common.ErrorValidation)
		}
		out := make(fields, len(raw))
		for k, v := range raw {
			if str, ok := v.(string); ok {
				out[k] = str
			}
		}
		return out, nil
	}

	if err := r.ParseMultipartForm(maxMultipartInMem); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		return nil, fmt.Errorf("malformed form body: %w", common.ErrorValidation)
	}
	out := fields{}
	for k, v := range r.PostForm {
		if len(v) > 0 {
			out[k] = v[0]
		}
	}
	return out, nil
}

// require returns the value of each named field or a validation error
// naming the first missing one.
func (f fields) require(names ...string) ([]string, error) {
	out := make([]string, len(names))
	for i, n := range names {
		v, ok := f[n]
		if !ok {
			return nil, fmt.Errorf("field %q is required: %w", n, common.ErrorValidation)
		}
		out[i] = v
	}
	return out, nil
}

func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s: %w", name, common.ErrorValidation)
	}
	return id, nil
}
