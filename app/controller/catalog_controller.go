package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/GameIsFlash/Purchase-Generator/app/session"
	"github.com/GameIsFlash/Purchase-Generator/repository"
)

// CatalogController handles HTTP requests for catalog search and reload
type CatalogController struct {
	session *session.Session
}

// NewCatalogController creates a new CatalogController
func NewCatalogController(s *session.Session) *CatalogController {
	return &CatalogController{session: s}
}

// Search handles GET /catalog/search?q=
func (c *CatalogController) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	results := c.session.Search(query)

	log.Printf("🔍 Search %q: %d results", query, len(results))
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"query":   query,
		"results": results,
	})
}

// Reload handles POST /catalog/reload
func (c *CatalogController) Reload(w http.ResponseWriter, r *http.Request) {
	catalog, err := c.session.ReloadCatalog(r.Context())
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to load catalog: %v", err), catalogErrorStatus(err))
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"articles": catalog.Len(),
		"rows":     catalog.RowCount(),
	})
}

// UpdatePaths handles PUT /settings/paths
// Empty fields keep their current value; the catalog is reloaded afterwards
func (c *CatalogController) UpdatePaths(w http.ResponseWriter, r *http.Request) {
	var req session.Paths
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	catalog, err := c.session.UpdatePaths(r.Context(), req)
	if err != nil {
		http.Error(w, fmt.Sprintf("Paths updated but catalog failed to load: %v", err), catalogErrorStatus(err))
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"paths":    c.session.Paths(),
		"articles": catalog.Len(),
	})
}

func catalogErrorStatus(err error) int {
	switch {
	case errors.Is(err, repository.ErrDatabaseNotFound), errors.Is(err, repository.ErrImagesDirNotFound):
		return http.StatusNotFound
	case errors.Is(err, repository.ErrMissingColumn):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
