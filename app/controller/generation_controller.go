package controller

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/GameIsFlash/Purchase-Generator/app/session"

	"github.com/go-chi/chi/v5"
)

// GenerationController starts document generation and reports job state
type GenerationController struct {
	session *session.Session
}

// NewGenerationController creates a new GenerationController
func NewGenerationController(s *session.Session) *GenerationController {
	return &GenerationController{session: s}
}

// StartPurchase handles POST /generate/purchase
func (c *GenerationController) StartPurchase(w http.ResponseWriter, r *http.Request) {
	c.start(w, r, c.session.StartPurchaseGeneration)
}

// StartAvailability handles POST /generate/availability
func (c *GenerationController) StartAvailability(w http.ResponseWriter, r *http.Request) {
	c.start(w, r, c.session.StartAvailabilityGeneration)
}

func (c *GenerationController) start(w http.ResponseWriter, r *http.Request, start func(context.Context) (*session.GenerationTask, error)) {
	task, err := start(r.Context())
	if errors.Is(err, session.ErrGenerationInProgress) {
		http.Error(w, "Generation already in progress", http.StatusConflict)
		return
	}
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to start generation: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Location", "/jobs/"+task.ID())
	writeJSON(w, http.StatusAccepted, task.Snapshot())
}

// GetJob handles GET /jobs/{id}
func (c *GenerationController) GetJob(w http.ResponseWriter, r *http.Request) {
	task, err := c.session.Job(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Job not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, task.Snapshot())
}
