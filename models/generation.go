package models

import "time"

// GenerationKind identifies which documents a generation run produces
type GenerationKind string

const (
	GenerationPurchase     GenerationKind = "purchase"
	GenerationAvailability GenerationKind = "availability"
)

// GenerationState is the lifecycle state of a generation run
type GenerationState string

const (
	GenerationIdle      GenerationState = "idle"
	GenerationRunning   GenerationState = "running"
	GenerationCompleted GenerationState = "completed"
	GenerationFailed    GenerationState = "failed"
)

// GenerationResult is the aggregate outcome of one run.
// Completed runs may still carry per-line or per-supplier Errors.
type GenerationResult struct {
	ID                string          `json:"id"`
	Kind              GenerationKind  `json:"kind"`
	State             GenerationState `json:"state"`
	Files             []string        `json:"files"`
	Errors            []string        `json:"errors"`
	FatalError        string          `json:"fatalError,omitempty"`
	NothingToPurchase bool            `json:"nothingToPurchase,omitempty"`
	StartedAt         time.Time       `json:"startedAt"`
	FinishedAt        *time.Time      `json:"finishedAt,omitempty"`
}
