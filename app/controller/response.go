package controller

import (
	"encoding/json"
	"log"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
)

// writeJSON sets content type and status and encodes body
func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("❌ Failed to encode response: %v", err)
	}
}

// articleParam returns the decoded {article} path segment.
// chi matches on RawPath when it is set, so only then is the value still escaped.
func articleParam(r *http.Request) string {
	raw := chi.URLParam(r, "article")
	if r.URL.RawPath == "" {
		return raw
	}
	article, err := url.PathUnescape(raw)
	if err != nil {
		return raw
	}
	return article
}
